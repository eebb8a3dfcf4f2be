// Stress test: drops growing numbers of text blocks onto the ground and
// times the fixed-step simulation until every block is asleep.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"asciidrop/internal/components"
	"asciidrop/internal/config"
	"asciidrop/internal/engine"
	"asciidrop/internal/letters"
	"asciidrop/internal/physics"
	"asciidrop/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Simulated time after which a run is reported as unsettled
const maxSimTime = 20.0

func main() {
	preset := flag.String("preset", config.PresetClassic, "preset supplying gravity and block size")
	flag.Parse()

	cfg, err := config.Preset(*preset)
	if err != nil {
		panic(fmt.Sprintf("Failed to load preset: %v", err))
	}
	fmt.Printf("Preset %s | gravity %v | block %vx%vx%v\n\n", cfg.Preset, cfg.Scene.Gravity,
		cfg.Scene.TextSize, cfg.Scene.TextSize, cfg.Scene.TextDepth)

	for _, count := range []int{2, 10, 50, 100, 250, 500} {
		testDrop(cfg, count)
	}
}

func testDrop(cfg *config.Config, count int) {
	w := world.New(cfg)
	rng := rand.New(rand.NewSource(42)) // Consistent results

	// Spread blocks over a square that grows with count to keep density similar
	spread := cfg.Scene.TextSize * float32(4+count/10)
	half := rl.Vector3{X: cfg.Scene.TextSize / 2, Y: cfg.Scene.TextSize / 2, Z: cfg.Scene.TextDepth / 2}

	for i := 0; i < count; i++ {
		mesh := engine.NewGameObject(fmt.Sprintf("Block_%d", i))
		mesh.Transform.Position = rl.Vector3{
			X: rng.Float32()*spread - spread/2,
			Y: cfg.Scene.DropHeight + rng.Float32()*cfg.Scene.DropHeight,
			Z: rng.Float32()*spread - spread/2,
		}
		mesh.Transform.Rotation.Z = (rng.Float32()*2 - 1) * cfg.Scene.MaxTiltDeg

		body := engine.NewGameObject(mesh.Name + "_body")
		body.AddComponent(components.NewRigidbody())
		body.AddComponent(components.NewBoxColliderHalfExtents(half))

		l, err := letters.NewLetter(mesh.Name, mesh, body)
		if err != nil {
			panic(err)
		}
		w.Scene.AddGameObject(mesh)
		w.Registry.Add(l)
	}
	w.Registry.AttachAll()

	start := time.Now()
	steps := 0
	for float32(steps)*physics.DefaultStep < maxSimTime {
		steps += w.Step(physics.DefaultStep)
		if w.Physics.SleepingCount() == count {
			break
		}
	}
	wall := time.Since(start)

	simTime := float32(steps) * physics.DefaultStep
	status := "settled"
	if w.Physics.SleepingCount() < count {
		status = fmt.Sprintf("%d awake", count-w.Physics.SleepingCount())
	}
	fmt.Printf("%4d blocks: %6.2fs simulated in %5d steps | %9v/step | %s\n",
		count, simTime, steps, (wall / time.Duration(max(steps, 1))).Round(time.Microsecond), status)
}
