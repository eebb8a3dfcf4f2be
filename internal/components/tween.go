package components

import (
	"asciidrop/internal/engine"

	"github.com/gen2brain/raylib-go/easings"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// EaseFunc has the easings package signature: time, begin, change, duration.
type EaseFunc func(t, b, c, d float32) float32

// Tween moves its GameObject from From to To over Duration seconds.
type Tween struct {
	engine.BaseComponent
	From     rl.Vector3
	To       rl.Vector3
	Duration float32
	Ease     EaseFunc
	OnDone   func()
	elapsed  float32
	done     bool
}

func NewTween(from, to rl.Vector3, duration float32) *Tween {
	return &Tween{
		From:     from,
		To:       to,
		Duration: duration,
		Ease:     easings.CubicOut,
	}
}

func (t *Tween) Start() {
	if g := t.GetGameObject(); g != nil {
		g.Transform.Position = t.From
	}
}

func (t *Tween) Done() bool {
	return t.done
}

func (t *Tween) Update(deltaTime float32) {
	if t.done {
		return
	}
	g := t.GetGameObject()
	if g == nil {
		return
	}

	t.elapsed += deltaTime
	if t.Duration <= 0 || t.elapsed >= t.Duration {
		g.Transform.Position = t.To
		t.done = true
		if t.OnDone != nil {
			t.OnDone()
		}
		return
	}

	ease := t.Ease
	if ease == nil {
		ease = easings.LinearNone
	}
	g.Transform.Position = rl.Vector3{
		X: ease(t.elapsed, t.From.X, t.To.X-t.From.X, t.Duration),
		Y: ease(t.elapsed, t.From.Y, t.To.Y-t.From.Y, t.Duration),
		Z: ease(t.elapsed, t.From.Z, t.To.Z-t.From.Z, t.Duration),
	}
}
