package sequence

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"asciidrop/internal/assets"
	"asciidrop/internal/components"
	"asciidrop/internal/config"
	"asciidrop/internal/engine"
	"asciidrop/internal/interact"
	"asciidrop/internal/letters"
	"asciidrop/internal/textgeom"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/image/font"
)

const (
	TagLetter = "letter"
	TagLabel  = "label"
	TagIcon   = "icon"
)

// Camera pose used once the icons are shown.
var (
	FrontPosition = rl.Vector3{Z: 500}
	FrontTarget   = rl.Vector3{}
)

var errNoFace = errors.New("font source returned no face")

// FontSource returns a face for one text. It runs off the main thread and
// must return a face that is not shared with other calls.
type FontSource func(ctx context.Context) (font.Face, error)

// Fetcher makes an icon source available locally.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (string, error)
}

// IconBuilder turns a fetched icon into a scene object. It runs on the main
// thread and may touch GPU state.
type IconBuilder interface {
	Build(spec config.IconSpec, path string) (*engine.GameObject, error)
}

// Clickables receives every placed icon.
type Clickables interface {
	Add(root *engine.GameObject, onClick func())
}

// CameraRig is the part of the camera setup the director can change.
type CameraRig interface {
	FixFront(position, target rl.Vector3)
	DisposeControls()
}

// Icon is a placed, clickable icon.
type Icon struct {
	Name string
	Link string
	Root *engine.GameObject
}

// Deps is everything the director mutates or calls. Rig, Opener, Rand and
// OnLand may be nil.
type Deps struct {
	Config   *config.Config
	Scene    *engine.Scene
	Registry *letters.Registry
	Loader   *assets.Loader
	Fonts    FontSource
	Fetcher  Fetcher
	Builder  IconBuilder
	Clicks   Clickables
	Rig      CameraRig
	Opener   interact.Opener
	Rand     *rand.Rand
	OnLand   func(speed float32)
}

// Director binds scene changes to the states of a Machine.
type Director struct {
	Deps
	machine *Machine

	textCtx     context.Context
	cancelText  context.CancelFunc
	labelCtx    context.Context
	cancelLabel context.CancelFunc
	iconCtx     context.Context
	cancelIcons context.CancelFunc

	label *engine.GameObject
	icons []Icon
}

func NewDirector(deps Deps) (*Director, error) {
	switch {
	case deps.Config == nil:
		return nil, errors.New("sequence: config is required")
	case deps.Scene == nil || deps.Registry == nil || deps.Loader == nil:
		return nil, errors.New("sequence: scene, registry and loader are required")
	case deps.Fonts == nil || deps.Fetcher == nil || deps.Builder == nil || deps.Clicks == nil:
		return nil, errors.New("sequence: font source, fetcher, icon builder and clickables are required")
	}
	if deps.Rand == nil {
		seed := deps.Config.Scene.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		deps.Rand = rand.New(rand.NewSource(seed))
	}

	d := &Director{Deps: deps}
	d.textCtx, d.cancelText = context.WithCancel(context.Background())
	d.labelCtx, d.cancelLabel = context.WithCancel(context.Background())
	d.iconCtx, d.cancelIcons = context.WithCancel(context.Background())

	cfg := deps.Config
	d.machine = NewMachine(StateSpawning, []Transition{
		{From: StateSpawning, To: StateSettling, After: cfg.Timing.Settle.Duration},
		{From: StateSettling, To: StateRevealing, After: cfg.Timing.Reveal.Duration},
		{From: StateSpawning, To: StateInteractive, Event: EventSpace, Guard: d.spaceAllowed},
		{From: StateSettling, To: StateInteractive, Event: EventSpace, Guard: d.spaceAllowed},
		{From: StateRevealing, To: StateInteractive, Event: EventSpace, Guard: d.spaceAllowed},
	})
	d.machine.OnEnter(StateSpawning, d.spawnTexts)
	d.machine.OnEnter(StateSettling, d.settle)
	d.machine.OnEnter(StateRevealing, d.reveal)
	d.machine.OnEnter(StateInteractive, d.showIcons)
	return d, nil
}

// Start enters Spawning and requests the texts.
func (d *Director) Start() {
	d.machine.Start()
}

// Update advances timers by dt seconds, then delivers finished loads.
func (d *Director) Update(dt float32) {
	d.Tick(time.Duration(float64(dt) * float64(time.Second)))
}

func (d *Director) Tick(dt time.Duration) {
	d.machine.Update(dt)
	d.Loader.Drain()
}

// Space requests the Interactive phase. It reports whether the phase began.
func (d *Director) Space() bool {
	if d.machine.Advance(EventSpace) {
		return true
	}
	if d.Config.Debug {
		log.Printf("Sequence: space ignored in %s", d.machine.State())
	}
	return false
}

func (d *Director) State() State {
	return d.machine.State()
}

func (d *Director) TimeInState() time.Duration {
	return d.machine.TimeInState()
}

// Label returns the label object once it is in the scene.
func (d *Director) Label() *engine.GameObject {
	return d.label
}

func (d *Director) Icons() []Icon {
	out := make([]Icon, len(d.icons))
	copy(out, d.icons)
	return out
}

// Close cancels every outstanding load.
func (d *Director) Close() {
	d.cancelText()
	d.cancelLabel()
	d.cancelIcons()
}

// SpaceReady reports whether Space would start the Interactive phase now.
func (d *Director) SpaceReady() bool {
	return d.machine.State() != StateInteractive && d.spaceAllowed()
}

func (d *Director) spaceAllowed() bool {
	return !d.Config.Interactive.RequireLabel || d.label != nil
}

// acceptText reports whether a text finishing now still belongs on screen.
func (d *Director) acceptText() bool {
	switch d.machine.State() {
	case StateSpawning, StateSettling:
		return true
	case StateRevealing:
		return !d.Config.Scene.ClearOnReveal
	}
	return false
}

func (d *Director) spawnTexts() {
	for _, spec := range d.Config.Scene.Texts {
		d.requestText(d.textCtx, "text "+spec.Text, spec, d.addLetter)
	}
	log.Printf("Sequence: %s, %d texts requested", StateSpawning, len(d.Config.Scene.Texts))
}

// requestText builds text geometry off the main thread and hands it to
// place on the next drain.
func (d *Director) requestText(ctx context.Context, key string, spec config.TextSpec, place func(config.TextSpec, textgeom.Geometry)) {
	size, depth := d.Config.Scene.TextSize, d.Config.Scene.TextDepth
	d.Loader.Go(ctx, key, func(ctx context.Context) (any, error) {
		face, err := d.Fonts(ctx)
		if err != nil {
			return nil, err
		}
		if face == nil {
			return nil, errNoFace
		}
		return textgeom.BuildToHeight(face, spec.Text, size, depth)
	}, func(value any, err error) {
		if err != nil {
			log.Printf("Sequence: %s failed: %v", key, err)
			return
		}
		place(spec, value.(textgeom.Geometry))
	})
}

// anchor converts a lower-left text position to the centre of its geometry.
func anchor(spec config.TextSpec, geom textgeom.Geometry, lift float32) rl.Vector3 {
	return rl.Vector3{
		X: spec.X + geom.Size.X/2,
		Y: spec.Y + geom.Size.Y/2 + lift,
	}
}

func (d *Director) addLetter(spec config.TextSpec, geom textgeom.Geometry) {
	if !d.acceptText() {
		log.Printf("Sequence: dropping late text %q in %s", spec.Text, d.machine.State())
		return
	}
	cfg := d.Config.Scene

	tilt := float32(0)
	if cfg.MaxTiltDeg > 0 {
		tilt = (d.Rand.Float32()*2 - 1) * cfg.MaxTiltDeg
	}

	mesh := engine.NewGameObject("Text " + spec.Text)
	mesh.Tags = []string{TagLetter}
	mesh.Transform.Position = anchor(spec, geom, cfg.DropHeight)
	mesh.Transform.Rotation = rl.Vector3{Z: tilt}
	mesh.AddComponent(components.NewTextMesh(spec.Text, geom, rl.White))

	n := float32(len([]rune(spec.Text)))
	body := engine.NewGameObject("Body " + spec.Text)
	body.Transform = mesh.Transform
	body.AddComponent(components.NewRigidbody())
	body.AddComponent(components.NewBoxColliderHalfExtents(rl.Vector3{
		X: cfg.TextSize / 2 * n,
		Y: cfg.TextSize / 2,
		Z: cfg.TextDepth / 2,
	}))
	if d.OnLand != nil {
		body.AddComponent(components.NewLandingCue(d.OnLand))
	}

	l, err := letters.NewLetter(spec.Text, mesh, body)
	if err != nil {
		log.Printf("Sequence: %v", err)
		return
	}
	d.Scene.AddGameObject(mesh)
	d.Registry.Add(l)

	// Settling already armed the others
	if d.machine.State() != StateSpawning {
		d.Registry.Attach(l)
	}
}

func (d *Director) settle() {
	n := d.Registry.AttachAll()
	log.Printf("Sequence: %s, %d bodies attached", StateSettling, n)
}

func (d *Director) reveal() {
	if d.Config.Scene.ClearOnReveal {
		d.cancelText()
		n := d.Registry.Clear(d.Scene)
		log.Printf("Sequence: cleared %d letters", n)
	}
	d.requestText(d.labelCtx, "label", d.Config.Scene.Label, d.addLabel)
	log.Printf("Sequence: %s", StateRevealing)
}

func (d *Director) addLabel(spec config.TextSpec, geom textgeom.Geometry) {
	if d.machine.State() != StateRevealing || d.label != nil {
		return
	}
	to := anchor(spec, geom, 0)
	from := rl.Vector3Add(to, rl.Vector3{Y: d.Config.Scene.TextSize})

	label := engine.NewGameObject("Label")
	label.Tags = []string{TagLabel}
	label.Transform.Position = from
	label.AddComponent(components.NewTextMesh(spec.Text, geom, rl.White))
	label.AddComponent(components.NewTween(from, to, d.Config.Timing.LabelTween.Seconds()))

	d.Scene.AddGameObject(label)
	d.label = label
}

func (d *Director) showIcons() {
	d.cancelText()
	d.cancelLabel()

	n := d.Registry.Clear(d.Scene)
	if d.label != nil {
		d.Scene.RemoveGameObject(d.label)
		d.label = nil
	}

	ic := d.Config.Interactive
	if d.Rig != nil {
		if ic.FixCamera {
			d.Rig.FixFront(FrontPosition, FrontTarget)
		}
		if ic.DisposeControls {
			d.Rig.DisposeControls()
		}
	}

	for i, spec := range ic.Icons {
		d.requestIcon(i, spec)
	}
	log.Printf("Sequence: %s, cleared %d letters, %d icons requested", StateInteractive, n, len(ic.Icons))
}

func (d *Director) requestIcon(index int, spec config.IconSpec) {
	key := "icon " + spec.Name
	d.Loader.Go(d.iconCtx, key, func(ctx context.Context) (any, error) {
		return d.Fetcher.Fetch(ctx, spec.Source)
	}, func(value any, err error) {
		if err != nil {
			log.Printf("Sequence: %s failed: %v", key, err)
			return
		}
		if err := d.placeIcon(index, spec, value.(string)); err != nil {
			log.Printf("Sequence: %s failed: %v", key, err)
		}
	})
}

func (d *Director) placeIcon(index int, spec config.IconSpec, path string) error {
	root, err := d.Builder.Build(spec, path)
	if err != nil {
		return fmt.Errorf("build %s: %w", path, err)
	}
	if root == nil {
		return fmt.Errorf("build %s: no object", path)
	}

	ic := d.Config.Interactive
	root.Tags = append(root.Tags, TagIcon)
	root.Transform.Position = rl.Vector3{X: ic.StartX + float32(index)*ic.Spacing, Y: ic.RowY}
	root.Transform.Scale = rl.Vector3{X: ic.IconScale, Y: ic.IconScale, Z: ic.IconScale}

	d.Scene.AddGameObject(root)
	link := spec.Link
	d.Clicks.Add(root, func() { d.open(link) })
	d.icons = append(d.icons, Icon{Name: spec.Name, Link: link, Root: root})
	return nil
}

func (d *Director) open(link string) {
	if d.Opener == nil {
		log.Printf("Sequence: no opener for %s", link)
		return
	}
	if err := d.Opener.Open(link); err != nil {
		log.Printf("Sequence: open %s: %v", link, err)
	}
}
