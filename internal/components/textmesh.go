package components

import (
	"asciidrop/internal/engine"
	"asciidrop/internal/textgeom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TextMesh draws extruded text geometry at its GameObject's transform.
type TextMesh struct {
	engine.BaseComponent
	Text     string
	Geometry textgeom.Geometry
	Color    rl.Color
}

func NewTextMesh(text string, geom textgeom.Geometry, color rl.Color) *TextMesh {
	return &TextMesh{Text: text, Geometry: geom, Color: color}
}

// Size returns the full local extents of the text block.
func (t *TextMesh) Size() rl.Vector3 {
	return t.Geometry.Size
}

func (t *TextMesh) Draw() {
	g := t.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	pos := g.WorldPosition()
	rot := g.WorldRotation()
	scale := g.WorldScale()

	// rlgl applies the last call first, so this matches RotationMatrix (X, Y, Z)
	rl.PushMatrix()
	rl.Translatef(pos.X, pos.Y, pos.Z)
	rl.Rotatef(rot.Z, 0, 0, 1)
	rl.Rotatef(rot.Y, 0, 1, 0)
	rl.Rotatef(rot.X, 1, 0, 0)
	rl.Scalef(scale.X, scale.Y, scale.Z)
	for _, b := range t.Geometry.Boxes {
		rl.DrawCube(b.Center, b.Size.X, b.Size.Y, b.Size.Z, t.Color)
	}
	rl.PopMatrix()
}
