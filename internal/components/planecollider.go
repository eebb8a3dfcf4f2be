package components

import (
	"asciidrop/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PlaneCollider is an infinite static half-space: points p with
// dot(p, Normal) < Distance are inside.
type PlaneCollider struct {
	engine.BaseComponent
	Normal   rl.Vector3
	Distance float32
}

// NewGroundPlane returns an upward facing plane at height y.
func NewGroundPlane(y float32) *PlaneCollider {
	return &PlaneCollider{Normal: rl.Vector3{Y: 1}, Distance: y}
}

// SignedDistance is positive above the plane.
func (p *PlaneCollider) SignedDistance(point rl.Vector3) float32 {
	return rl.Vector3DotProduct(point, p.Normal) - p.Distance
}
