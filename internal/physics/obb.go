package physics

import (
	"math"

	"asciidrop/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB is an oriented box in world space.
type OBB struct {
	Center   rl.Vector3
	HalfSize rl.Vector3    // along Axes
	Axes     [3]rl.Vector3 // rotated local X, Y, Z
}

// NewOBB builds a box from its center, full size and Euler rotation in
// degrees, rotated in the same X, Y, Z order as engine.Transform.
func NewOBB(center, size, rotation rl.Vector3) OBB {
	rot := engine.Transform{Rotation: rotation}.RotationMatrix()
	return OBB{
		Center:   center,
		HalfSize: rl.Vector3Scale(size, 0.5),
		Axes: [3]rl.Vector3{
			rl.Vector3Normalize(rl.Vector3{X: rot.M0, Y: rot.M1, Z: rot.M2}),
			rl.Vector3Normalize(rl.Vector3{X: rot.M4, Y: rot.M5, Z: rot.M6}),
			rl.Vector3Normalize(rl.Vector3{X: rot.M8, Y: rot.M9, Z: rot.M10}),
		},
	}
}

// NewAABBasOBB is an unrotated OBB.
func NewAABBasOBB(center, size rl.Vector3) OBB {
	return NewOBB(center, size, rl.Vector3{})
}

// extent is the box's half-width along axis.
func (o OBB) extent(axis rl.Vector3) float32 {
	return o.HalfSize.X*absf(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*absf(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*absf(rl.Vector3DotProduct(o.Axes[2], axis))
}

// separatingAxes lists the 15 SAT candidates: three face normals per box
// and the nine edge cross products. Parallel edges give zero vectors.
func (a OBB) separatingAxes(b OBB) [15]rl.Vector3 {
	var axes [15]rl.Vector3
	copy(axes[:3], a.Axes[:])
	copy(axes[3:6], b.Axes[:])
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axes[6+3*i+j] = rl.Vector3CrossProduct(a.Axes[i], b.Axes[j])
		}
	}
	return axes
}

// ResolveOBB returns the minimum translation that pushes a out of b, or
// zero when the boxes are separated or only touching.
func (a OBB) ResolveOBB(b OBB) rl.Vector3 {
	t := rl.Vector3Subtract(b.Center, a.Center)
	minPenetration := float32(math.MaxFloat32)
	var mtv rl.Vector3

	for _, axis := range a.separatingAxes(b) {
		if rl.Vector3Length(axis) < 0.0001 {
			continue
		}
		axis = rl.Vector3Normalize(axis)

		dist := rl.Vector3DotProduct(t, axis)
		penetration := a.extent(axis) + b.extent(axis) - absf(dist)
		if penetration < 0 {
			return rl.Vector3Zero()
		}
		if penetration < minPenetration {
			minPenetration = penetration
			// Away from b
			if dist < 0 {
				mtv = rl.Vector3Scale(axis, penetration)
			} else {
				mtv = rl.Vector3Scale(axis, -penetration)
			}
		}
	}
	return mtv
}

// ClosestPointOnOBB clamps point into the box. Points inside are returned
// unchanged.
func ClosestPointOnOBB(o OBB, point rl.Vector3) rl.Vector3 {
	local := rl.Vector3Subtract(point, o.Center)
	half := [3]float32{o.HalfSize.X, o.HalfSize.Y, o.HalfSize.Z}
	result := o.Center
	for i, axis := range o.Axes {
		d := clampf(rl.Vector3DotProduct(local, axis), -half[i], half[i])
		result = rl.Vector3Add(result, rl.Vector3Scale(axis, d))
	}
	return result
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// NewOBBFromBox scales size before building the box.
func NewOBBFromBox(center, size, rotation, scale rl.Vector3) OBB {
	return NewOBB(center, rl.Vector3Multiply(size, scale), rotation)
}

// Corners returns the eight world-space corners.
func (o OBB) Corners() [8]rl.Vector3 {
	var out [8]rl.Vector3
	for i := 0; i < 8; i++ {
		sx, sy, sz := float32(-1), float32(-1), float32(-1)
		if i&1 != 0 {
			sx = 1
		}
		if i&2 != 0 {
			sy = 1
		}
		if i&4 != 0 {
			sz = 1
		}
		c := o.Center
		c = rl.Vector3Add(c, rl.Vector3Scale(o.Axes[0], sx*o.HalfSize.X))
		c = rl.Vector3Add(c, rl.Vector3Scale(o.Axes[1], sy*o.HalfSize.Y))
		c = rl.Vector3Add(c, rl.Vector3Scale(o.Axes[2], sz*o.HalfSize.Z))
		out[i] = c
	}
	return out
}

// Bounds returns the world axis-aligned box enclosing the OBB.
func (o OBB) Bounds() AABB {
	var ext rl.Vector3
	for i, h := range [3]float32{o.HalfSize.X, o.HalfSize.Y, o.HalfSize.Z} {
		ax := o.Axes[i]
		ext.X += absf(ax.X) * h
		ext.Y += absf(ax.Y) * h
		ext.Z += absf(ax.Z) * h
	}
	return AABB{Min: rl.Vector3Subtract(o.Center, ext), Max: rl.Vector3Add(o.Center, ext)}
}
