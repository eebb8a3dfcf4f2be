// Package game owns every subsystem and runs the frame loop.
package game

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"asciidrop/internal/assets"
	"asciidrop/internal/audio"
	"asciidrop/internal/camera"
	"asciidrop/internal/config"
	"asciidrop/internal/interact"
	"asciidrop/internal/present"
	"asciidrop/internal/render"
	"asciidrop/internal/sequence"
	"asciidrop/internal/textgeom"
	"asciidrop/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/image/font"
)

const (
	LogFile = "asciidrop.log"

	ambient = 0.08
	// Pending asset completions the loader can hold before workers block
	completionBuffer = 16
)

type Options struct {
	Terminal bool
}

type Game struct {
	Config   *config.Config
	World    *world.World
	Director *sequence.Director
	Clicks   *interact.Manager
	Renderer *render.Renderer
	Models   *assets.Manager
	Loader   *assets.Loader
	Sound    *audio.SoundManager

	opts    Options
	rig     *cameraRig
	window  *present.Window
	surface present.Surface
	hud     present.HUD
	logFile *os.File
	steps   int
}

func New(cfg *config.Config, opts Options) *Game {
	w := world.New(cfg)
	return &Game{
		Config: cfg,
		World:  w,
		Clicks: interact.NewManager(w.Camera),
		Models: assets.NewManager(),
		Loader: assets.NewLoader(completionBuffer),
		Sound:  audio.NewSoundManager(cfg.Audio.Volume),
		opts:   opts,
		rig: newCameraRig(w.CameraObject, w.Camera, cfg.Window.FPS,
			cfg.Timing.CameraGlide.Seconds(), cfg.Camera.FreeLook),
		hud: present.HUD{Debug: cfg.Debug, Resolution: cfg.ASCII.Resolution},
	}
}

// Run opens the surfaces, plays the sequence and returns when the user
// quits.
func (g *Game) Run() error {
	if err := g.openSurfaces(); err != nil {
		return err
	}
	defer g.closeSurfaces()

	if err := g.initRenderer(); err != nil {
		return err
	}
	defer g.Renderer.Unload()
	defer g.Models.Unload()
	defer g.World.Unload()

	g.initAudio()
	defer g.Sound.Cleanup()

	if err := g.initDirector(); err != nil {
		return err
	}
	defer g.Director.Close()

	g.Director.Start()
	log.Printf("Game: running preset %q", g.Config.Preset)

	last := time.Now()
	for {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		in := g.surface.Poll()
		if in.Quit {
			return nil
		}
		g.Frame(dt, in)

		if g.opts.Terminal {
			g.pace(now)
		}
	}
}

// Frame runs one iteration of the loop: controls, physics, letter sync,
// clicks, scene, sequence, then draw.
func (g *Game) Frame(dt float32, in present.Input) {
	if in.Resized {
		g.resize()
	}
	if in.ToggleDebug {
		g.toggleDebug()
	}

	g.rig.Update(camera.Input{Drag: in.Drag, Wheel: in.Wheel})

	g.steps = g.World.Step(dt)

	for _, c := range in.Clicks {
		g.Clicks.Click(c.X, c.Y)
	}
	g.Clicks.Update()

	g.World.Update(dt)

	if in.Space {
		g.Director.Space()
	}
	g.Director.Update(dt)

	g.draw()
}

func (g *Game) draw() {
	frame := g.Renderer.Render(g.World.Camera, g.World.Scene.GameObjects)

	g.hud.Hint = hint(g.Director.State(), g.Director.SpaceReady())
	g.hud.State = g.Director.State().String()
	g.hud.Letters = g.World.Registry.Len()
	g.hud.Icons = len(g.Director.Icons())
	g.hud.Steps = g.steps
	g.hud.Culled = g.Renderer.Culled()
	g.hud.FPS = int(rl.GetFPS())

	muted := g.hud.Muted
	g.surface.Present(frame, &g.hud)

	if g.hud.Resolution != g.Renderer.Viewport.Resolution && !g.opts.Terminal {
		g.Renderer.SetResolution(g.hud.Resolution)
	}
	if g.hud.Muted != muted {
		g.Sound.SetMuted(g.hud.Muted)
	}
}

// toggleDebug flips the overlay and logs a physics summary when it opens.
func (g *Game) toggleDebug() {
	g.hud.Debug = !g.hud.Debug
	if g.hud.Debug {
		g.World.Physics.LogStats()
	}
}

func (g *Game) resize() {
	w, h := g.surface.Size()
	g.Renderer.Resize(w, h)
	g.World.Resize(w, h)
	g.Clicks.SetViewport(w, h)
}

// pace sleeps out the rest of the frame. The window paces itself in
// EndDrawing; the terminal has nothing that blocks.
func (g *Game) pace(start time.Time) {
	if g.Config.Window.FPS <= 0 {
		return
	}
	frame := time.Second / time.Duration(g.Config.Window.FPS)
	if d := frame - time.Since(start); d > 0 {
		time.Sleep(d)
	}
}

func (g *Game) openSurfaces() error {
	cfg := g.Config
	if g.opts.Terminal {
		f, err := os.OpenFile(LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		g.logFile = f
		log.SetOutput(f)
	}

	// The renderer needs a GL context even when output goes to the terminal
	g.window = present.OpenWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, cfg.Window.FPS, g.opts.Terminal)
	g.surface = g.window

	if g.opts.Terminal {
		term, err := present.OpenTerminal()
		if err != nil {
			g.window.Close()
			return err
		}
		g.surface = term
	}
	return nil
}

func (g *Game) closeSurfaces() {
	if g.surface != present.Surface(g.window) {
		g.surface.Close()
	}
	g.window.Close()
	if g.logFile != nil {
		log.SetOutput(os.Stderr)
		g.logFile.Close()
	}
}

func (g *Game) initRenderer() error {
	w, h := g.surface.Size()
	res := g.Config.ASCII.Resolution
	if g.opts.Terminal {
		res = 1
	}

	r, err := render.NewRenderer(render.NewViewport(w, h, res), g.Config.ASCII.Charset, g.Config.ASCII.Invert)
	if err != nil {
		return err
	}
	if err := r.Initialize(); err != nil {
		return err
	}
	r.Ambient = ambient
	r.SetLights(g.World.Lights)
	g.Renderer = r

	g.World.Resize(w, h)
	g.Clicks.SetViewport(w, h)
	return nil
}

func (g *Game) initAudio() {
	if !g.Config.Audio.Enabled {
		return
	}
	if err := g.Sound.Initialize(); err != nil {
		log.Printf("Audio: disabled: %v", err)
		return
	}
	if err := g.Sound.PlayMusicFile(g.Config.Audio.Music); err != nil {
		log.Printf("Audio: %v", err)
	}
}

func (g *Game) initDirector() error {
	cfg := g.Config
	d, err := sequence.NewDirector(sequence.Deps{
		Config:   cfg,
		Scene:    g.World.Scene,
		Registry: g.World.Registry,
		Loader:   g.Loader,
		Fonts: func(ctx context.Context) (font.Face, error) {
			return textgeom.LoadFace(cfg.Font.Face, cfg.Font.Size)
		},
		Fetcher: assets.NewFetcher(cfg.Interactive.CacheDir),
		Builder: &iconBuilder{models: g.Models, shader: g.Renderer.Shader},
		Clicks:  g.Clicks,
		Rig:     g.rig,
		Opener:  interact.SystemOpener{},
		OnLand:  g.Sound.PlayThud,
	})
	if err != nil {
		return err
	}
	g.Director = d
	return nil
}
