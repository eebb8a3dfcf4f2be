package components

import (
	"asciidrop/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Default sleep thresholds, sized for scenes measured in hundreds of units.
const (
	DefaultSleepVelocity = 4.0  // units/sec
	DefaultSleepAngular  = 6.0  // deg/sec
	DefaultSleepTime     = 0.5  // seconds below both thresholds
	DefaultAngularDrag   = 0.98 // per 1/60 s
)

type Rigidbody struct {
	engine.BaseComponent
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // degrees per second on each axis
	Mass            float32
	Restitution     float32 // 0 = no bounce, 1 = perfect bounce
	Friction        float32 // 0 = ice, 1 = stops immediately
	AngularDamping  float32
	UseGravity      bool

	SleepVelocity float32
	SleepAngular  float32
	SleepTime     float32
	CanSleep      bool
	IsSleeping    bool
	sleepTimer    float32
}

func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Mass:           1.0,
		Restitution:    0.6,
		Friction:       0.1,
		AngularDamping: DefaultAngularDrag,
		UseGravity:     true,
		SleepVelocity:  DefaultSleepVelocity,
		SleepAngular:   DefaultSleepAngular,
		SleepTime:      DefaultSleepTime,
		CanSleep:       true,
	}
}

// InverseMass returns 0 for non-positive masses so they behave as immovable.
func (r *Rigidbody) InverseMass() float32 {
	if r.Mass <= 0 {
		return 0
	}
	return 1 / r.Mass
}

// Wake forces the rigidbody out of sleep state
func (r *Rigidbody) Wake() {
	r.IsSleeping = false
	r.sleepTimer = 0
}

// TrySleep puts the body to sleep after it stayed below both thresholds for SleepTime.
func (r *Rigidbody) TrySleep(deltaTime float32) {
	if !r.CanSleep || r.IsSleeping {
		return
	}

	speed := rl.Vector3Length(r.Velocity)
	angSpeed := rl.Vector3Length(r.AngularVelocity)

	if speed < r.SleepVelocity && angSpeed < r.SleepAngular {
		r.sleepTimer += deltaTime

		// Extra damping near rest keeps resting contacts from jittering
		r.Velocity = rl.Vector3Scale(r.Velocity, 0.9)
		r.AngularVelocity = rl.Vector3Scale(r.AngularVelocity, 0.9)

		if r.sleepTimer >= r.SleepTime {
			r.IsSleeping = true
			r.Velocity = rl.Vector3{}
			r.AngularVelocity = rl.Vector3{}
		}
	} else {
		r.sleepTimer = 0
	}
}
