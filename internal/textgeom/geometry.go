// Package textgeom turns a line of text into extruded box geometry by
// rasterising it with a font.Face and merging lit pixels into row spans.
package textgeom

import (
	"errors"
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var ErrEmptyText = errors.New("textgeom: empty text")

// alphaCutoff decides which anti-aliased pixels count as filled.
const alphaCutoff = 128

// Mask is a rasterised line of text, row-major with row 0 at the top.
type Mask struct {
	W, H int
	Bits []bool
}

func (m Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.Bits[y*m.W+x]
}

// Filled counts lit pixels.
func (m Mask) Filled() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// Rasterize draws text on a tight canvas whose height is the face's
// ascent plus descent.
func Rasterize(face font.Face, text string) (Mask, error) {
	if text == "" {
		return Mask{}, ErrEmptyText
	}
	metrics := face.Metrics()
	w := font.MeasureString(face, text).Ceil()
	h := (metrics.Ascent + metrics.Descent).Ceil()
	if w <= 0 || h <= 0 {
		return Mask{}, ErrEmptyText
	}

	img := image.NewAlpha(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Alpha{A: 255}),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: metrics.Ascent},
	}
	d.DrawString(text)

	mask := Mask{W: w, H: h, Bits: make([]bool, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mask.Bits[y*w+x] = img.AlphaAt(x, y).A >= alphaCutoff
		}
	}
	return mask, nil
}

// Box is one solid piece of the geometry in the text's local space.
type Box struct {
	Center rl.Vector3
	Size   rl.Vector3
}

// Geometry is extruded text centred on the origin, filling Size exactly.
type Geometry struct {
	Boxes []Box
	Size  rl.Vector3
}

// Extrude maps the mask onto a box of the given full size. Each horizontal
// run of lit pixels becomes a single Box.
func Extrude(mask Mask, size rl.Vector3) Geometry {
	g := Geometry{Size: size}
	if mask.W == 0 || mask.H == 0 {
		return g
	}
	cw := size.X / float32(mask.W)
	ch := size.Y / float32(mask.H)
	left := -size.X / 2
	top := size.Y / 2

	for y := 0; y < mask.H; y++ {
		x := 0
		for x < mask.W {
			if !mask.At(x, y) {
				x++
				continue
			}
			start := x
			for x < mask.W && mask.At(x, y) {
				x++
			}
			run := float32(x - start)
			g.Boxes = append(g.Boxes, Box{
				Center: rl.Vector3{
					X: left + (float32(start)+run/2)*cw,
					Y: top - (float32(y)+0.5)*ch,
				},
				Size: rl.Vector3{X: run * cw, Y: ch, Z: size.Z},
			})
		}
	}
	return g
}

// Build rasterises and extrudes text in one step.
func Build(face font.Face, text string, size rl.Vector3) (Geometry, error) {
	mask, err := Rasterize(face, text)
	if err != nil {
		return Geometry{}, err
	}
	return Extrude(mask, size), nil
}

// BuildToHeight sizes the geometry to the given height and depth and
// derives the width from the rasterised aspect ratio.
func BuildToHeight(face font.Face, text string, height, depth float32) (Geometry, error) {
	mask, err := Rasterize(face, text)
	if err != nil {
		return Geometry{}, err
	}
	width := height * float32(mask.W) / float32(mask.H)
	return Extrude(mask, rl.Vector3{X: width, Y: height, Z: depth}), nil
}

// Bounds returns the min/max corners covered by the boxes.
func (g Geometry) Bounds() rl.BoundingBox {
	var bb rl.BoundingBox
	for i, b := range g.Boxes {
		half := rl.Vector3Scale(b.Size, 0.5)
		lo := rl.Vector3Subtract(b.Center, half)
		hi := rl.Vector3Add(b.Center, half)
		if i == 0 {
			bb.Min, bb.Max = lo, hi
			continue
		}
		bb.Min = rl.Vector3Min(bb.Min, lo)
		bb.Max = rl.Vector3Max(bb.Max, hi)
	}
	return bb
}
