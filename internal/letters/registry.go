// Package letters pairs each falling text mesh with its physics body and
// keeps the two in step.
package letters

import (
	"errors"

	"asciidrop/internal/engine"
)

var ErrIncomplete = errors.New("letters: letter needs both a mesh and a body")

// Simulation is the part of the physics world the registry drives.
type Simulation interface {
	AddObject(g *engine.GameObject)
	RemoveObject(g *engine.GameObject)
}

// Letter is one spawned text block. Mesh lives in the scene; Body lives in
// the simulation once attached.
type Letter struct {
	Text     string
	Mesh     *engine.GameObject
	Body     *engine.GameObject
	attached bool
}

func NewLetter(text string, mesh, body *engine.GameObject) (*Letter, error) {
	if mesh == nil || body == nil {
		return nil, ErrIncomplete
	}
	return &Letter{Text: text, Mesh: mesh, Body: body}, nil
}

func (l *Letter) Attached() bool {
	return l.attached
}

// Registry is owned by the main loop and is not safe for concurrent use.
type Registry struct {
	sim     Simulation
	letters []*Letter
}

func NewRegistry(sim Simulation) *Registry {
	return &Registry{sim: sim}
}

func (r *Registry) Add(l *Letter) {
	if l == nil {
		return
	}
	r.letters = append(r.letters, l)
}

// Attach copies the mesh's current pose onto the body and hands the body
// to the simulation.
func (r *Registry) Attach(l *Letter) {
	if l.attached {
		return
	}
	l.Body.Transform.Position = l.Mesh.Transform.Position
	l.Body.Transform.Rotation = l.Mesh.Transform.Rotation
	r.sim.AddObject(l.Body)
	l.attached = true
}

// AttachAll attaches every pending letter and returns how many it attached.
func (r *Registry) AttachAll() int {
	n := 0
	for _, l := range r.letters {
		if !l.attached {
			r.Attach(l)
			n++
		}
	}
	return n
}

// Sync copies body pose onto mesh for every attached letter.
func (r *Registry) Sync() {
	for _, l := range r.letters {
		if !l.attached {
			continue
		}
		l.Mesh.Transform.Position = l.Body.Transform.Position
		l.Mesh.Transform.Rotation = l.Body.Transform.Rotation
	}
}

// Clear removes every mesh from scene and every attached body from the
// simulation, and leaves the registry empty before returning.
func (r *Registry) Clear(scene *engine.Scene) int {
	n := len(r.letters)
	for _, l := range r.letters {
		if scene != nil {
			scene.RemoveGameObject(l.Mesh)
		}
		if l.attached {
			r.sim.RemoveObject(l.Body)
			l.attached = false
		}
	}
	r.letters = nil
	return n
}

func (r *Registry) Len() int {
	return len(r.letters)
}

// AttachedCount returns how many letters are in the simulation.
func (r *Registry) AttachedCount() int {
	n := 0
	for _, l := range r.letters {
		if l.attached {
			n++
		}
	}
	return n
}

// Letters returns a snapshot of the registered letters.
func (r *Registry) Letters() []*Letter {
	out := make([]*Letter, len(r.letters))
	copy(out, r.letters)
	return out
}
