package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestRayAABB(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2})

	tests := []struct {
		name   string
		origin rl.Vector3
		dir    rl.Vector3
		hit    bool
		dist   float32
	}{
		{"front", rl.Vector3{Z: 10}, rl.Vector3{Z: -1}, true, 9},
		{"miss", rl.Vector3{X: 5, Z: 10}, rl.Vector3{Z: -1}, false, 0},
		{"behind", rl.Vector3{Z: 10}, rl.Vector3{Z: 1}, false, 0},
		{"inside", rl.Vector3{}, rl.Vector3{X: 1}, true, 1},
		{"edge", rl.Vector3{X: 1, Z: 10}, rl.Vector3{Z: -1}, true, 9},
	}

	for _, tt := range tests {
		hit, ok := RayAABB(tt.origin, tt.dir, box, 100)
		if ok != tt.hit {
			t.Errorf("%s: expected hit=%v, got %v", tt.name, tt.hit, ok)
			continue
		}
		if ok && abs(hit.Distance-tt.dist) > 1e-4 {
			t.Errorf("%s: expected distance %v, got %v", tt.name, tt.dist, hit.Distance)
		}
	}
}

func TestRayAABBMaxDistance(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2})
	if _, ok := RayAABB(rl.Vector3{Z: 10}, rl.Vector3{Z: -1}, box, 5); ok {
		t.Error("Hit beyond maxDistance should be rejected")
	}
}

func TestOBBResolvePushesApart(t *testing.T) {
	a := NewAABBasOBB(rl.Vector3{Y: 15}, rl.Vector3{X: 20, Y: 20, Z: 20})
	b := NewAABBasOBB(rl.Vector3{}, rl.Vector3{X: 20, Y: 20, Z: 20})

	push := a.ResolveOBB(b)
	if abs(push.Y-5) > 1e-4 || push.X != 0 || push.Z != 0 {
		t.Errorf("Expected push (0,5,0), got %v", push)
	}

	far := NewAABBasOBB(rl.Vector3{Y: 50}, rl.Vector3{X: 20, Y: 20, Z: 20})
	if push := far.ResolveOBB(b); push != rl.Vector3Zero() {
		t.Errorf("Separated boxes should not push, got %v", push)
	}

	touching := NewAABBasOBB(rl.Vector3{Y: 20}, rl.Vector3{X: 20, Y: 20, Z: 20})
	if push := touching.ResolveOBB(b); rl.Vector3Length(push) > 1e-4 {
		t.Errorf("Touching boxes should not push, got %v", push)
	}
}

func TestOBBBoundsOfRotatedBox(t *testing.T) {
	o := NewOBB(rl.Vector3{}, rl.Vector3{X: 80, Y: 80, Z: 20}, rl.Vector3{Z: 90})
	bb := o.Bounds()
	if abs(bb.Max.X-40) > 1e-3 || abs(bb.Max.Y-40) > 1e-3 || abs(bb.Max.Z-10) > 1e-3 {
		t.Errorf("Unexpected bounds %v", bb)
	}

	grown := AABB{
		Min: rl.Vector3SubtractValue(bb.Min, 1e-3),
		Max: rl.Vector3AddValue(bb.Max, 1e-3),
	}
	for _, c := range o.Corners() {
		if !grown.Contains(c) {
			t.Errorf("Corner %v outside bounds", c)
		}
	}
}

func TestStepperFixedSteps(t *testing.T) {
	s := NewStepper(DefaultStep, DefaultMaxSteps)
	steps := 0
	count := func(dt float32) {
		if dt != DefaultStep {
			t.Errorf("Expected fixed dt %v, got %v", DefaultStep, dt)
		}
		steps++
	}

	if n := s.Advance(0.004, count); n != 0 {
		t.Errorf("Expected 0 steps for a short frame, got %d", n)
	}
	if n := s.Advance(0.005, count); n != 1 {
		t.Errorf("Expected carried remainder to produce 1 step, got %d", n)
	}
	if n := s.Advance(0.02, count); n != 2 {
		t.Errorf("Expected 2 steps, got %d", n)
	}
	if steps != 3 {
		t.Errorf("Expected 3 steps total, got %d", steps)
	}
}

func TestStepperCapsCatchUp(t *testing.T) {
	s := NewStepper(DefaultStep, 8)
	n := s.Advance(1.0, func(float32) {})
	if n != 8 {
		t.Errorf("Expected cap of 8 steps, got %d", n)
	}
	if s.Remainder() != 0 {
		t.Errorf("Expected backlog dropped, remainder %v", s.Remainder())
	}

	if n := s.Advance(0, func(float32) {}); n != 0 {
		t.Errorf("Expected no steps after dropped backlog, got %d", n)
	}
}
