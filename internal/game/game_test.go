package game

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"asciidrop/internal/camera"
	"asciidrop/internal/components"
	"asciidrop/internal/config"
	"asciidrop/internal/engine"
	"asciidrop/internal/sequence"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func newTestRig(freeLook bool) (*cameraRig, *engine.GameObject) {
	obj := engine.NewGameObject("Camera")
	obj.Transform.Position = rl.Vector3{Y: 250, Z: 450}
	cam := components.NewCamera()
	obj.AddComponent(cam)
	return newCameraRig(obj, cam, 60, 0.5, freeLook), obj
}

func TestRigOrbitsWithDrag(t *testing.T) {
	rig, obj := newTestRig(true)
	start := obj.Transform.Position

	for i := 0; i < 30; i++ {
		rig.Update(camera.Input{Drag: rl.Vector2{X: 10}})
	}
	if obj.Transform.Position == start {
		t.Error("Expected drag to move the camera")
	}
	d := rl.Vector3Length(obj.Transform.Position)
	if d < 513 || d > 515 {
		t.Errorf("Expected distance to stay near 514, got %v", d)
	}
}

func TestRigIgnoresInputWithoutFreeLook(t *testing.T) {
	rig, obj := newTestRig(false)
	start := obj.Transform.Position
	rig.Update(camera.Input{Drag: rl.Vector2{X: 50}, Wheel: 3})
	if obj.Transform.Position != start {
		t.Errorf("Expected camera to stay at %v, got %v", start, obj.Transform.Position)
	}
}

func TestRigFixFrontGlidesAndDisposes(t *testing.T) {
	rig, obj := newTestRig(true)
	front := sequence.FrontPosition

	rig.FixFront(front, sequence.FrontTarget)
	rig.DisposeControls()

	// Input during the glide is ignored
	rig.Update(camera.Input{Drag: rl.Vector2{X: 100}})
	obj.Update(0.25)
	if obj.Transform.Position == front {
		t.Error("Expected the glide to take time")
	}

	obj.Update(0.3)
	if obj.Transform.Position != front {
		t.Errorf("Expected camera at %v after the glide, got %v", front, obj.Transform.Position)
	}
	if rig.cam.Target != sequence.FrontTarget {
		t.Errorf("Expected camera to look at %v, got %v", sequence.FrontTarget, rig.cam.Target)
	}

	rig.Update(camera.Input{Drag: rl.Vector2{X: 100}})
	if obj.Transform.Position != front {
		t.Error("Expected disposed controls to leave the camera alone")
	}
}

func TestRigResumesOrbitAfterGlide(t *testing.T) {
	rig, obj := newTestRig(true)
	rig.FixFront(sequence.FrontPosition, sequence.FrontTarget)
	obj.Update(1)

	rig.Update(camera.Input{})
	got := obj.Transform.Position
	if rl.Vector3Distance(got, sequence.FrontPosition) > 1e-2 {
		t.Errorf("Expected orbit to continue from the front pose, got %v", got)
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		state sequence.State
		ready bool
		want  string
	}{
		{sequence.StateSpawning, false, ""},
		{sequence.StateSpawning, true, hintSpace},
		{sequence.StateRevealing, true, hintSpace},
		{sequence.StateInteractive, false, hintClick},
	}
	for _, tt := range tests {
		if got := hint(tt.state, tt.ready); got != tt.want {
			t.Errorf("hint(%s, %v): expected %q, got %q", tt.state, tt.ready, tt.want, got)
		}
	}
}

func TestToggleDebugLogsPhysicsStats(t *testing.T) {
	cfg, err := config.Preset(config.PresetClassic)
	if err != nil {
		t.Fatal(err)
	}
	g := New(cfg, Options{})

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	g.toggleDebug()
	if !g.hud.Debug {
		t.Fatal("Expected debug overlay on")
	}
	out := buf.String()
	if !strings.Contains(out, "Physics: 0 dynamic, 0 sleeping, 1 static") {
		t.Errorf("Expected physics summary, got %q", out)
	}

	buf.Reset()
	g.toggleDebug()
	if g.hud.Debug {
		t.Error("Expected debug overlay off")
	}
	if buf.Len() != 0 {
		t.Errorf("Closing the overlay should not log, got %q", buf.String())
	}
}
