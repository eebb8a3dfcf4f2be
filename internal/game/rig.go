package game

import (
	"asciidrop/internal/camera"
	"asciidrop/internal/components"
	"asciidrop/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// cameraRig moves the camera object. The orbit drives it while free-look
// is on; after FixFront a tween glides it to the front pose and the orbit
// picks up from there unless it was disposed.
type cameraRig struct {
	obj      *engine.GameObject
	cam      *components.Camera
	orbit    *camera.Orbit
	glide    float32
	freeLook bool
	tween    *components.Tween
}

func newCameraRig(obj *engine.GameObject, cam *components.Camera, fps int, glide float32, freeLook bool) *cameraRig {
	return &cameraRig{
		obj:      obj,
		cam:      cam,
		orbit:    camera.NewOrbit(obj.Transform.Position, cam.Target, fps),
		glide:    glide,
		freeLook: freeLook,
	}
}

func (r *cameraRig) Update(in camera.Input) {
	if r.tween != nil && !r.tween.Done() {
		return
	}
	if !r.freeLook || r.orbit.Disposed() {
		return
	}
	r.orbit.Update(in)
	r.obj.Transform.Position = r.orbit.Position()
	r.cam.Target = r.orbit.Target
}

func (r *cameraRig) FixFront(position, target rl.Vector3) {
	r.orbit.Jump(position, target)
	r.cam.Target = target

	if r.tween != nil {
		r.tween.From = r.obj.Transform.Position
		r.tween.To = position
		return
	}
	r.tween = components.NewTween(r.obj.Transform.Position, position, r.glide)
	r.obj.AddComponent(r.tween)
}

func (r *cameraRig) DisposeControls() {
	r.orbit.Dispose()
}
