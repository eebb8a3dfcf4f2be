// Package interact turns pointer clicks into per-object click handlers by
// casting camera rays against pick volumes.
package interact

import (
	"errors"
	"fmt"
	"math"
	"net/url"

	"asciidrop/internal/components"
	"asciidrop/internal/engine"
	"asciidrop/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// maxPickDistance bounds click rays.
const maxPickDistance = 1e5

var ErrBadLink = errors.New("interact: link must be an http or https URL")

// Opener navigates to a link outside the demo.
type Opener interface {
	Open(link string) error
}

// SystemOpener opens links in the platform's default browser.
type SystemOpener struct{}

func (SystemOpener) Open(link string) error {
	if err := CheckLink(link); err != nil {
		return err
	}
	rl.OpenURL(link)
	return nil
}

// CheckLink accepts absolute http(s) URLs only.
func CheckLink(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadLink, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrBadLink, link)
	}
	return nil
}

// NDC maps a pixel inside rect to normalized device coordinates, with +Y up.
func NDC(px, py float32, rect rl.Rectangle) rl.Vector2 {
	if rect.Width <= 0 || rect.Height <= 0 {
		return rl.Vector2{}
	}
	return rl.Vector2{
		X: (px-rect.X)/rect.Width*2 - 1,
		Y: -((py-rect.Y)/rect.Height)*2 + 1,
	}
}

// RayFromCamera builds the perspective ray through ndc. It needs no window,
// unlike rl.GetMouseRay.
func RayFromCamera(cam rl.Camera3D, ndc rl.Vector2, aspect float32) rl.Ray {
	forward := rl.Vector3Normalize(rl.Vector3Subtract(cam.Target, cam.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, cam.Up))
	up := rl.Vector3CrossProduct(right, forward)

	tanHalf := float32(math.Tan(float64(cam.Fovy) * math.Pi / 360))
	dir := rl.Vector3Add(forward, rl.Vector3Scale(right, ndc.X*tanHalf*aspect))
	dir = rl.Vector3Add(dir, rl.Vector3Scale(up, ndc.Y*tanHalf))

	return rl.Ray{Position: cam.Position, Direction: rl.Vector3Normalize(dir)}
}

type target struct {
	root    *engine.GameObject
	onClick func()
}

// Manager owns the clickable objects. Clicks are queued by the input layer
// and handled in Update on the main loop.
type Manager struct {
	Camera   *components.Camera
	Viewport rl.Rectangle

	targets []*target
	clicks  []rl.Vector2
}

func NewManager(cam *components.Camera) *Manager {
	return &Manager{Camera: cam}
}

// SetViewport records the on-screen rectangle clicks are measured against.
func (m *Manager) SetViewport(width, height int) {
	m.Viewport = rl.Rectangle{Width: float32(width), Height: float32(height)}
}

// Add registers root and its whole subtree. Adding the same root again
// replaces its handler.
func (m *Manager) Add(root *engine.GameObject, onClick func()) {
	for _, t := range m.targets {
		if t.root == root {
			t.onClick = onClick
			return
		}
	}
	m.targets = append(m.targets, &target{root: root, onClick: onClick})
}

func (m *Manager) Remove(root *engine.GameObject) {
	for i, t := range m.targets {
		if t.root == root {
			m.targets = append(m.targets[:i], m.targets[i+1:]...)
			return
		}
	}
}

func (m *Manager) Len() int {
	return len(m.targets)
}

// Click queues a click at pixel coordinates.
func (m *Manager) Click(px, py float32) {
	m.clicks = append(m.clicks, rl.Vector2{X: px, Y: py})
}

// Update handles queued clicks and returns how many hit something.
func (m *Manager) Update() int {
	clicks := m.clicks
	m.clicks = m.clicks[:0]
	if m.Camera == nil {
		return 0
	}

	hits := 0
	for _, c := range clicks {
		ray := RayFromCamera(m.Camera.GetRaylibCamera(), NDC(c.X, c.Y, m.Viewport), m.Camera.Aspect)
		root, _, ok := m.Pick(ray)
		if !ok {
			continue
		}
		hits++
		if t := m.find(root); t != nil && t.onClick != nil {
			t.onClick()
		}
	}
	return hits
}

// Pick returns the registered root owning the nearest pick volume along ray.
func (m *Manager) Pick(ray rl.Ray) (*engine.GameObject, physics.RaycastHit, bool) {
	var best physics.RaycastHit
	best.Distance = maxPickDistance
	found := false

	for _, t := range m.targets {
		t.root.Walk(func(obj *engine.GameObject) bool {
			if !obj.Active {
				return false
			}
			bc := engine.GetComponent[*components.BoundsCollider](obj)
			if bc == nil {
				return true
			}
			box := physics.AABBFromBoundingBox(bc.WorldBounds())
			if hit, ok := physics.RayAABB(ray.Position, ray.Direction, box, best.Distance); ok && hit.Distance < best.Distance {
				best = hit
				best.GameObject = obj
				found = true
			}
			return true
		})
	}
	if !found {
		return nil, physics.RaycastHit{}, false
	}

	root := m.Resolve(best.GameObject)
	if root == nil {
		return nil, physics.RaycastHit{}, false
	}
	return root, best, true
}

// Resolve walks up from a hit sub-object to the registered root.
func (m *Manager) Resolve(obj *engine.GameObject) *engine.GameObject {
	for o := obj; o != nil; o = o.Parent {
		if m.find(o) != nil {
			return o
		}
	}
	return nil
}

func (m *Manager) find(root *engine.GameObject) *target {
	for _, t := range m.targets {
		if t.root == root {
			return t
		}
	}
	return nil
}
