// Package camera holds the free-look orbit controller used before the icons
// are shown.
package camera

import (
	"math"

	"github.com/charmbracelet/harmonica"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	maxPitch       = 85.0
	defaultFPS     = 60
	springFreq     = 6.0
	springDamping  = 1.0
	defaultMinDist = 100.0
	defaultMaxDist = 1500.0
)

// Input is one frame of pointer state relevant to the orbit.
type Input struct {
	Drag  rl.Vector2 // pixels moved with the left button held
	Wheel float32    // wheel notches, positive zooms in
}

// Orbit circles Target at Distance. Drag input moves goal angles and the
// visible angles follow them on critically damped springs.
type Orbit struct {
	Target      rl.Vector3
	RotateSpeed float32 // degrees per pixel
	ZoomStep    float32 // fraction of distance per wheel notch
	MinDistance float32
	MaxDistance float32

	yaw, pitch, dist             float64
	yawVel, pitchVel, distVel    float64
	goalYaw, goalPitch, goalDist float64

	spring   harmonica.Spring
	disposed bool
}

// NewOrbit starts at position looking at target.
func NewOrbit(position, target rl.Vector3, fps int) *Orbit {
	if fps <= 0 {
		fps = defaultFPS
	}
	o := &Orbit{
		RotateSpeed: 0.3,
		ZoomStep:    0.1,
		MinDistance: defaultMinDist,
		MaxDistance: defaultMaxDist,
		spring:      harmonica.NewSpring(harmonica.FPS(fps), springFreq, springDamping),
	}
	o.Jump(position, target)
	return o
}

// Jump moves the orbit to position with no easing.
func (o *Orbit) Jump(position, target rl.Vector3) {
	o.Target = target
	offset := rl.Vector3Subtract(position, target)
	dist := float64(rl.Vector3Length(offset))
	if dist < 1e-6 {
		offset = rl.Vector3{Z: 1}
		dist = 1
	}
	o.yaw = math.Atan2(float64(offset.X), float64(offset.Z)) * 180 / math.Pi
	o.pitch = math.Asin(clamp(float64(offset.Y)/dist, -1, 1)) * 180 / math.Pi
	o.dist = dist
	o.goalYaw, o.goalPitch, o.goalDist = o.yaw, o.pitch, o.dist
	o.yawVel, o.pitchVel, o.distVel = 0, 0, 0
}

// Update applies one frame of input. It does nothing once disposed.
func (o *Orbit) Update(in Input) {
	if o.disposed {
		return
	}
	o.goalYaw -= float64(in.Drag.X * o.RotateSpeed)
	o.goalPitch = clamp(o.goalPitch+float64(in.Drag.Y*o.RotateSpeed), -maxPitch, maxPitch)
	if in.Wheel != 0 {
		o.goalDist *= 1 - float64(in.Wheel*o.ZoomStep)
	}
	o.goalDist = clamp(o.goalDist, float64(o.MinDistance), float64(o.MaxDistance))

	o.yaw, o.yawVel = o.spring.Update(o.yaw, o.yawVel, o.goalYaw)
	o.pitch, o.pitchVel = o.spring.Update(o.pitch, o.pitchVel, o.goalPitch)
	o.dist, o.distVel = o.spring.Update(o.dist, o.distVel, o.goalDist)
}

// Position is the current eye position.
func (o *Orbit) Position() rl.Vector3 {
	yawRad := o.yaw * math.Pi / 180
	pitchRad := o.pitch * math.Pi / 180
	offset := rl.Vector3{
		X: float32(o.dist * math.Cos(pitchRad) * math.Sin(yawRad)),
		Y: float32(o.dist * math.Sin(pitchRad)),
		Z: float32(o.dist * math.Cos(pitchRad) * math.Cos(yawRad)),
	}
	return rl.Vector3Add(o.Target, offset)
}

func (o *Orbit) Angles() (yaw, pitch float32) {
	return float32(o.yaw), float32(o.pitch)
}

func (o *Orbit) Distance() float32 {
	return float32(o.dist)
}

// Dispose stops the orbit from reacting to input for good.
func (o *Orbit) Dispose() {
	o.disposed = true
}

func (o *Orbit) Disposed() bool {
	return o.disposed
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
