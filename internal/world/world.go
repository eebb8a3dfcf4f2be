// Package world assembles the static parts of the scene and owns the
// simulation that the letters fall through.
package world

import (
	"log"

	"asciidrop/internal/components"
	"asciidrop/internal/config"
	"asciidrop/internal/engine"
	"asciidrop/internal/letters"
	"asciidrop/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const GroundTag = "ground"

// lightRig is the fixed two-light setup: a strong key light up front and a
// weak fill from below.
var lightRig = []struct {
	pos       rl.Vector3
	intensity float32
}{
	{rl.Vector3{X: 500, Y: 500, Z: 500}, 3},
	{rl.Vector3{X: -500, Y: -500, Z: -500}, 1},
}

type World struct {
	Scene    *engine.Scene
	Physics  *physics.PhysicsWorld
	Stepper  *physics.Stepper
	Registry *letters.Registry

	Ground       *engine.GameObject
	CameraObject *engine.GameObject
	Camera       *components.Camera
	Lights       []*components.PointLight

	debug bool
}

func New(cfg *config.Config) *World {
	g := cfg.Scene.Gravity
	phys := physics.NewPhysicsWorld(rl.Vector3{X: g[0], Y: g[1], Z: g[2]})

	w := &World{
		Scene:    engine.NewScene("Main"),
		Physics:  phys,
		Stepper:  physics.NewStepper(physics.DefaultStep, physics.DefaultMaxSteps),
		Registry: letters.NewRegistry(phys),
		debug:    cfg.Debug,
	}

	w.createGround()
	w.createCamera(cfg)
	w.createLights()

	w.Scene.Start()
	return w
}

func (w *World) createGround() {
	w.Ground = engine.NewGameObject("Ground")
	w.Ground.Tags = []string{GroundTag}
	w.Ground.AddComponent(components.NewGroundPlane(0))
	w.Scene.AddGameObject(w.Ground)
	w.Physics.AddObject(w.Ground)
}

func (w *World) createCamera(cfg *config.Config) {
	p := cfg.Camera.Position
	w.CameraObject = engine.NewGameObject("Camera")
	w.CameraObject.Transform.Position = rl.Vector3{X: p[0], Y: p[1], Z: p[2]}

	w.Camera = components.NewCamera()
	w.Camera.FOV = cfg.Camera.FOV
	w.Camera.Near = cfg.Camera.Near
	w.Camera.Far = cfg.Camera.Far
	w.Camera.SetViewport(cfg.Window.Width, cfg.Window.Height)
	w.CameraObject.AddComponent(w.Camera)
	w.Scene.AddGameObject(w.CameraObject)
}

func (w *World) createLights() {
	for _, l := range lightRig {
		obj := engine.NewGameObject("PointLight")
		obj.Transform.Position = l.pos
		light := components.NewPointLight(l.intensity)
		obj.AddComponent(light)
		w.Scene.AddGameObject(obj)
		w.Lights = append(w.Lights, light)
	}
}

// Step runs the fixed steps due for elapsed seconds and copies the bodies'
// poses back onto the letter meshes. It returns the number of steps run.
func (w *World) Step(elapsed float32) int {
	n := w.Stepper.Advance(elapsed, w.Physics.Step)
	w.Registry.Sync()
	if w.debug && n == w.Stepper.MaxSteps {
		log.Printf("Physics: frame hit the %d step cap", n)
	}
	return n
}

func (w *World) Update(deltaTime float32) {
	w.Scene.Update(deltaTime)
}

// Resize keeps the camera's aspect in step with the output.
func (w *World) Resize(width, height int) {
	w.Camera.SetViewport(width, height)
}

// Unload frees the GPU models still in the scene.
func (w *World) Unload() {
	for _, root := range w.Scene.GameObjects {
		root.Walk(func(g *engine.GameObject) bool {
			if r := engine.GetComponent[*components.ModelRenderer](g); r != nil {
				r.Unload()
			}
			return true
		})
	}
}
