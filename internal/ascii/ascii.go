// Package ascii maps a rendered RGBA frame onto a grid of characters by
// luminance.
package ascii

import (
	"errors"
	"image/color"
	"math"
	"strings"
)

// RowStep samples every other source row so glyph cells, about twice as
// tall as wide, keep the image's proportions.
const RowStep = 2

var ErrCharset = errors.New("ascii: charset needs at least two characters")

// Converter holds a charset ordered from lightest to densest glyph.
type Converter struct {
	charset []rune
	invert  bool
}

func NewConverter(charset string, invert bool) (*Converter, error) {
	runes := []rune(charset)
	if len(runes) < 2 {
		return nil, ErrCharset
	}
	return &Converter{charset: runes, invert: invert}, nil
}

// Brightness is perceptual luminance in [0, 1].
func Brightness(c color.RGBA) float64 {
	return (0.3*float64(c.R) + 0.59*float64(c.G) + 0.11*float64(c.B)) / 255
}

// Index returns the charset position for a brightness value.
func (c *Converter) Index(brightness float64) int {
	n := len(c.charset)
	if brightness < 0 {
		brightness = 0
	} else if brightness > 1 {
		brightness = 1
	}
	idx := int(math.Floor((1 - brightness) * float64(n-1)))
	if c.invert {
		idx = n - idx - 1
	}
	return idx
}

func (c *Converter) Glyph(px color.RGBA) rune {
	return c.charset[c.Index(Brightness(px))]
}

// Frame is a grid of glyphs, one string per row.
type Frame struct {
	Cols, Rows int
	Lines      []string
}

func (f Frame) String() string {
	return strings.Join(f.Lines, "\n")
}

// Convert reads a row-major width x height pixel buffer with row 0 at the
// top and produces one glyph per pixel of every RowStep-th row.
func (c *Converter) Convert(pixels []color.RGBA, width, height int) Frame {
	if width <= 0 || height <= 0 || len(pixels) < width*height {
		return Frame{}
	}
	f := Frame{Cols: width}
	var b strings.Builder
	for y := 0; y < height; y += RowStep {
		b.Reset()
		row := pixels[y*width : (y+1)*width]
		for _, px := range row {
			b.WriteRune(c.Glyph(px))
		}
		f.Lines = append(f.Lines, b.String())
	}
	f.Rows = len(f.Lines)
	return f
}

// Cell is the on-screen size of one glyph in output pixels.
type Cell struct {
	W, H float32
}

// CellFor returns the glyph cell that stretches a cols x rows frame across
// a width x height output.
func CellFor(f Frame, width, height int) Cell {
	if f.Cols == 0 || f.Rows == 0 {
		return Cell{}
	}
	return Cell{W: float32(width) / float32(f.Cols), H: float32(height) / float32(f.Rows)}
}
