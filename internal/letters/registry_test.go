package letters

import (
	"errors"
	"testing"

	"asciidrop/internal/components"
	"asciidrop/internal/engine"
	"asciidrop/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type fixture struct {
	scene    *engine.Scene
	world    *physics.PhysicsWorld
	registry *Registry
}

func newFixture() *fixture {
	world := physics.NewPhysicsWorld(rl.Vector3{Y: -250})
	ground := engine.NewGameObject("Ground")
	ground.Tags = []string{"ground"}
	ground.AddComponent(components.NewGroundPlane(0))
	world.AddObject(ground)

	return &fixture{
		scene:    engine.NewScene("Test"),
		world:    world,
		registry: NewRegistry(world),
	}
}

func (f *fixture) spawn(t *testing.T, text string, x, y, tilt float32) *Letter {
	t.Helper()
	mesh := engine.NewGameObject(text)
	mesh.Transform.Position = rl.Vector3{X: x, Y: y}
	mesh.Transform.Rotation = rl.Vector3{Z: tilt}
	f.scene.AddGameObject(mesh)

	body := engine.NewGameObject(text + " body")
	body.Transform = mesh.Transform
	body.AddComponent(components.NewRigidbody())
	body.AddComponent(components.NewBoxColliderHalfExtents(rl.Vector3{X: 40 * float32(len(text)), Y: 40, Z: 10}))

	l, err := NewLetter(text, mesh, body)
	if err != nil {
		t.Fatalf("NewLetter failed: %v", err)
	}
	f.registry.Add(l)
	return l
}

func TestNewLetterRejectsHalfPopulated(t *testing.T) {
	mesh := engine.NewGameObject("mesh")
	if _, err := NewLetter("A", mesh, nil); !errors.Is(err, ErrIncomplete) {
		t.Errorf("Expected ErrIncomplete for nil body, got %v", err)
	}
	if _, err := NewLetter("A", nil, mesh); !errors.Is(err, ErrIncomplete) {
		t.Errorf("Expected ErrIncomplete for nil mesh, got %v", err)
	}
}

func TestSyncInvariantForAnyStepCount(t *testing.T) {
	for _, steps := range []int{0, 1, 7, 120, 600} {
		f := newFixture()
		letters := []*Letter{
			f.spawn(t, "A", 0, 600, 3),
			f.spawn(t, "BB", 300, 500, -4),
		}
		f.registry.AttachAll()

		for i := 0; i < steps; i++ {
			f.world.Step(physics.DefaultStep)
			f.registry.Sync()
		}

		for _, l := range letters {
			if l.Mesh.Transform.Position != l.Body.Transform.Position {
				t.Errorf("steps=%d %s: mesh position %v != body position %v",
					steps, l.Text, l.Mesh.Transform.Position, l.Body.Transform.Position)
			}
			if l.Mesh.Transform.Rotation != l.Body.Transform.Rotation {
				t.Errorf("steps=%d %s: mesh rotation %v != body rotation %v",
					steps, l.Text, l.Mesh.Transform.Rotation, l.Body.Transform.Rotation)
			}
		}
	}
}

func TestAttachReconcilesMovedMesh(t *testing.T) {
	f := newFixture()
	l := f.spawn(t, "A", 0, 600, 0)

	// Drift the mesh before physics takes over
	l.Mesh.Transform.Position = rl.Vector3{X: -123, Y: 456, Z: 7}
	l.Mesh.Transform.Rotation = rl.Vector3{Z: 2.5}

	if n := f.registry.AttachAll(); n != 1 {
		t.Fatalf("Expected 1 attach, got %d", n)
	}

	if l.Body.Transform.Position != (rl.Vector3{X: -123, Y: 456, Z: 7}) {
		t.Errorf("Body should start at the mesh position, got %v", l.Body.Transform.Position)
	}
	if l.Body.Transform.Rotation.Z != 2.5 {
		t.Errorf("Body should start at the mesh rotation, got %v", l.Body.Transform.Rotation)
	}
	if !f.world.Contains(l.Body) {
		t.Error("Body should be in the physics world after attach")
	}
}

func TestSyncIgnoresUnattached(t *testing.T) {
	f := newFixture()
	l := f.spawn(t, "A", 0, 600, 0)
	l.Body.Transform.Position = rl.Vector3{Y: -999}

	f.registry.Sync()

	if l.Mesh.Transform.Position.Y != 600 {
		t.Errorf("Unattached mesh should not follow its body, got %v", l.Mesh.Transform.Position)
	}
	if f.world.Contains(l.Body) {
		t.Error("Body should not be simulated before attach")
	}
}

func TestAttachAllIsIdempotent(t *testing.T) {
	f := newFixture()
	f.spawn(t, "A", 0, 600, 0)
	f.registry.AttachAll()

	if n := f.registry.AttachAll(); n != 0 {
		t.Errorf("Second AttachAll should attach nothing, got %d", n)
	}
	if f.world.DynamicObjectCount() != 1 {
		t.Errorf("Expected 1 body in world, got %d", f.world.DynamicObjectCount())
	}
}

func TestClearEmptiesSceneWorldAndRegistry(t *testing.T) {
	f := newFixture()
	a := f.spawn(t, "A", 0, 600, 0)
	bb := f.spawn(t, "BB", 200, 600, 0)
	f.registry.Attach(a)

	if n := f.registry.Clear(f.scene); n != 2 {
		t.Errorf("Expected 2 cleared, got %d", n)
	}

	if f.registry.Len() != 0 {
		t.Errorf("Registry should be empty, has %d", f.registry.Len())
	}
	if f.scene.Contains(a.Mesh) || f.scene.Contains(bb.Mesh) {
		t.Error("Meshes should be removed from the scene")
	}
	if f.world.DynamicObjectCount() != 0 {
		t.Errorf("Bodies should be removed from the world, %d remain", f.world.DynamicObjectCount())
	}
}

func TestLettersSnapshot(t *testing.T) {
	f := newFixture()
	f.spawn(t, "A", 0, 600, 0)

	snap := f.registry.Letters()
	snap[0] = nil

	if f.registry.Letters()[0] == nil {
		t.Error("Letters should return a copy")
	}
}
