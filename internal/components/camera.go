package components

import (
	"asciidrop/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Camera is a perspective camera at its GameObject's world position,
// looking at Target.
type Camera struct {
	engine.BaseComponent
	FOV    float32 // vertical, degrees
	Near   float32
	Far    float32
	Aspect float32
	Target rl.Vector3
	Up     rl.Vector3
}

func NewCamera() *Camera {
	return &Camera{
		FOV:    70,
		Near:   1,
		Far:    2000,
		Aspect: 1,
		Up:     rl.Vector3{Y: 1},
	}
}

// SetViewport updates the aspect ratio for a W x H output.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

func (c *Camera) Position() rl.Vector3 {
	if g := c.GetGameObject(); g != nil {
		return g.WorldPosition()
	}
	return rl.Vector3{}
}

func (c *Camera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         c.Up,
		Fovy:       c.FOV,
		Projection: rl.CameraPerspective,
	}
}
