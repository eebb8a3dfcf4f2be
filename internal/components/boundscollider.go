package components

import (
	"asciidrop/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BoundsCollider is a pick-only volume in the owner's local space. It never
// takes part in the physics simulation.
type BoundsCollider struct {
	engine.BaseComponent
	Local rl.BoundingBox
}

func NewBoundsCollider(local rl.BoundingBox) *BoundsCollider {
	return &BoundsCollider{Local: local}
}

// WorldBounds transforms the eight local corners by the owner's world
// matrix and returns their axis-aligned hull.
func (b *BoundsCollider) WorldBounds() rl.BoundingBox {
	g := b.GetGameObject()
	if g == nil {
		return b.Local
	}
	m := g.WorldMatrix()
	lo, hi := b.Local.Min, b.Local.Max

	var out rl.BoundingBox
	for i := 0; i < 8; i++ {
		c := rl.Vector3{X: lo.X, Y: lo.Y, Z: lo.Z}
		if i&1 != 0 {
			c.X = hi.X
		}
		if i&2 != 0 {
			c.Y = hi.Y
		}
		if i&4 != 0 {
			c.Z = hi.Z
		}
		w := rl.Vector3Transform(c, m)
		if i == 0 {
			out.Min, out.Max = w, w
			continue
		}
		out.Min = rl.Vector3Min(out.Min, w)
		out.Max = rl.Vector3Max(out.Max, w)
	}
	return out
}
