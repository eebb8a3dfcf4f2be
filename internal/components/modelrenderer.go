package components

import (
	"unsafe"

	"asciidrop/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type ModelRenderer struct {
	engine.BaseComponent
	Model  rl.Model
	Color  rl.Color
	Shared bool // owned by a cache; Unload leaves it alone
	loaded bool
}

// NewModelRenderer takes ownership of model; Unload releases it.
func NewModelRenderer(model rl.Model, color rl.Color) *ModelRenderer {
	return &ModelRenderer{
		Model:  model,
		Color:  color,
		loaded: true,
	}
}

// Materials exposes every material of the model, not just the first.
func (m *ModelRenderer) Materials() []rl.Material {
	if m.Model.MaterialCount == 0 || m.Model.Materials == nil {
		return nil
	}
	return unsafe.Slice(m.Model.Materials, m.Model.MaterialCount)
}

func (m *ModelRenderer) Meshes() []rl.Mesh {
	if m.Model.MeshCount == 0 || m.Model.Meshes == nil {
		return nil
	}
	return unsafe.Slice(m.Model.Meshes, m.Model.MeshCount)
}

// SetShader points every material at shader. Materials may be shared with
// other renderers of the same model, so Color is applied as a draw tint.
func (m *ModelRenderer) SetShader(shader rl.Shader) {
	mats := m.Materials()
	for i := range mats {
		mats[i].Shader = shader
	}
}

func (m *ModelRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active || !m.loaded {
		return
	}
	m.Model.Transform = g.WorldMatrix()
	rl.DrawModel(m.Model, rl.Vector3Zero(), 1.0, m.Color)
}

// NewSharedModelRenderer draws a model owned by someone else, such as
// assets.Manager.
func NewSharedModelRenderer(model rl.Model, color rl.Color) *ModelRenderer {
	r := NewModelRenderer(model, color)
	r.Shared = true
	return r
}

func (m *ModelRenderer) Unload() {
	if m.loaded && !m.Shared {
		rl.UnloadModel(m.Model)
	}
	m.loaded = false
}
