package components

import (
	"asciidrop/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// LandingCue reports the first contact of a falling body with anything
// tagged GroundTag, along with the body's speed at that moment.
type LandingCue struct {
	engine.BaseComponent
	GroundTag string
	MinSpeed  float32
	OnLand    func(speed float32)
	landed    bool
}

func NewLandingCue(onLand func(speed float32)) *LandingCue {
	return &LandingCue{GroundTag: "ground", MinSpeed: 20, OnLand: onLand}
}

func (l *LandingCue) OnCollisionEnter(other *engine.GameObject) {
	if l.landed || other == nil || !other.HasTag(l.GroundTag) {
		return
	}
	g := l.GetGameObject()
	if g == nil {
		return
	}
	rb := engine.GetComponent[*Rigidbody](g)
	if rb == nil {
		return
	}
	speed := rl.Vector3Length(rb.Velocity)
	if speed < l.MinSpeed {
		return
	}
	l.landed = true
	if l.OnLand != nil {
		l.OnLand(speed)
	}
}

func (l *LandingCue) OnCollisionExit(other *engine.GameObject) {}
