package world

import (
	"testing"

	"asciidrop/internal/components"
	"asciidrop/internal/config"
	"asciidrop/internal/engine"
	"asciidrop/internal/letters"
	"asciidrop/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func newTestWorld(t *testing.T, preset string) (*World, *config.Config) {
	cfg, err := config.Preset(preset)
	if err != nil {
		t.Fatalf("Preset(%q): %v", preset, err)
	}
	return New(cfg), cfg
}

func TestNewAssemblesScene(t *testing.T) {
	w, cfg := newTestWorld(t, config.PresetPortfolio)

	if !w.Ground.HasTag(GroundTag) || !w.Physics.Contains(w.Ground) {
		t.Error("Expected a tagged ground plane in the simulation")
	}
	if len(w.Scene.FindByTag(GroundTag)) != 1 {
		t.Error("Expected the ground in the scene")
	}

	p := cfg.Camera.Position
	if got := w.Camera.Position(); got != (rl.Vector3{X: p[0], Y: p[1], Z: p[2]}) {
		t.Errorf("Expected camera at %v, got %v", p, got)
	}
	if w.Camera.FOV != 70 || w.Camera.Far != cfg.Camera.Far {
		t.Errorf("Expected FOV 70 and far %v, got %v and %v", cfg.Camera.Far, w.Camera.FOV, w.Camera.Far)
	}

	if len(w.Lights) != 2 {
		t.Fatalf("Expected 2 lights, got %d", len(w.Lights))
	}
	if w.Lights[0].Intensity != 3 || w.Lights[1].Intensity != 1 {
		t.Errorf("Expected intensities 3 and 1, got %v and %v", w.Lights[0].Intensity, w.Lights[1].Intensity)
	}
	if got := w.Lights[1].GetPosition(); got.X != -500 || got.Y != -500 || got.Z != -500 {
		t.Errorf("Expected fill light at -500, got %v", got)
	}
}

func TestGravityFromPreset(t *testing.T) {
	w, _ := newTestWorld(t, config.PresetClassic)

	box := engine.NewGameObject("Box")
	box.Transform.Position = rl.Vector3{Y: 100}
	box.AddComponent(components.NewRigidbody())
	box.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1}))
	w.Physics.AddObject(box)

	w.Step(physics.DefaultStep)
	rb := engine.GetComponent[*components.Rigidbody](box)
	if rb.Velocity.X >= 0 || rb.Velocity.Y >= 0 || rb.Velocity.Z >= 0 {
		t.Errorf("Expected classic gravity to pull along -X, -Y and -Z, got %v", rb.Velocity)
	}
}

func TestStepSyncsLetters(t *testing.T) {
	w, _ := newTestWorld(t, config.PresetPortfolio)

	mesh := engine.NewGameObject("mesh")
	mesh.Transform.Position = rl.Vector3{Y: 300}
	body := engine.NewGameObject("body")
	body.AddComponent(components.NewRigidbody())
	body.AddComponent(components.NewBoxCollider(rl.Vector3{X: 10, Y: 10, Z: 10}))
	l, err := letters.NewLetter("A", mesh, body)
	if err != nil {
		t.Fatal(err)
	}
	w.Registry.Add(l)
	w.Registry.Attach(l)

	if n := w.Step(1.0 / 60.0); n != 2 {
		t.Errorf("Expected 2 steps at 60 FPS, got %d", n)
	}
	if mesh.Transform.Position != body.Transform.Position {
		t.Errorf("Expected mesh to follow body, got %v vs %v", mesh.Transform.Position, body.Transform.Position)
	}
	if mesh.Transform.Position.Y >= 300 {
		t.Errorf("Expected the letter to start falling, got y=%v", mesh.Transform.Position.Y)
	}
}

func TestResize(t *testing.T) {
	w, _ := newTestWorld(t, config.PresetClassic)
	w.Resize(1920, 1080)
	if w.Camera.Aspect != float32(1920)/1080 {
		t.Errorf("Expected aspect 16:9, got %v", w.Camera.Aspect)
	}
	w.Resize(0, 100)
	if w.Camera.Aspect != float32(1920)/1080 {
		t.Errorf("Expected degenerate sizes to be ignored, got %v", w.Camera.Aspect)
	}
}
