package components

import (
	"asciidrop/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BoxCollider is an oriented box centered on its GameObject. Size is the
// full extent before scale.
type BoxCollider struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{Size: size}
}

// NewBoxColliderHalfExtents builds a collider from half extents.
func NewBoxColliderHalfExtents(half rl.Vector3) *BoxCollider {
	return NewBoxCollider(rl.Vector3Scale(half, 2))
}

// GetCenter returns the world-space center of this collider
func (b *BoxCollider) GetCenter() rl.Vector3 {
	g := b.GetGameObject()
	if g == nil {
		return b.Offset
	}
	if b.Offset == (rl.Vector3{}) {
		return g.WorldPosition()
	}
	rot := g.Transform.RotationMatrix()
	return rl.Vector3Add(g.WorldPosition(), rl.Vector3Transform(b.Offset, rot))
}

// GetWorldSize returns Size multiplied by the object's world scale.
func (b *BoxCollider) GetWorldSize() rl.Vector3 {
	g := b.GetGameObject()
	if g == nil {
		return b.Size
	}
	s := g.WorldScale()
	return rl.Vector3{X: b.Size.X * s.X, Y: b.Size.Y * s.Y, Z: b.Size.Z * s.Z}
}

// HalfExtents returns half of the world size.
func (b *BoxCollider) HalfExtents() rl.Vector3 {
	return rl.Vector3Scale(b.GetWorldSize(), 0.5)
}
