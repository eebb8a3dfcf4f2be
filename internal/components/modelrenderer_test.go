package components

import (
	"testing"

	"asciidrop/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// cachedModel stands in for a model owned by assets.Manager: two materials,
// each with a white diffuse map.
func cachedModel() (rl.Model, []rl.Material) {
	maps := []rl.MaterialMap{{Color: rl.White}, {Color: rl.White}}
	mats := []rl.Material{{Maps: &maps[0]}, {Maps: &maps[1]}}
	return rl.Model{MaterialCount: int32(len(mats)), Materials: &mats[0]}, mats
}

func TestSharedModelKeepsPerRendererTint(t *testing.T) {
	model, mats := cachedModel()
	shader := rl.Shader{ID: 7}

	sky := NewSharedModelRenderer(model, rl.SkyBlue)
	gray := NewSharedModelRenderer(model, rl.LightGray)
	sky.SetShader(shader)
	gray.SetShader(shader)

	for i, mat := range mats {
		if mat.Shader.ID != 7 {
			t.Errorf("material %d: expected shader 7, got %d", i, mat.Shader.ID)
		}
		if mat.Maps.Color != rl.White {
			t.Errorf("material %d: shared diffuse should stay white, got %v", i, mat.Maps.Color)
		}
	}
	if sky.Color != rl.SkyBlue || gray.Color != rl.LightGray {
		t.Errorf("Expected independent tints, got %v and %v", sky.Color, gray.Color)
	}
}

func TestModelRendererMaterialsAndMeshes(t *testing.T) {
	model, _ := cachedModel()
	r := NewSharedModelRenderer(model, rl.White)
	if len(r.Materials()) != 2 {
		t.Errorf("Expected 2 materials, got %d", len(r.Materials()))
	}
	if r.Meshes() != nil {
		t.Errorf("Expected no meshes, got %d", len(r.Meshes()))
	}
}

func TestSharedModelRendererUnloadLeavesCache(t *testing.T) {
	r := NewSharedModelRenderer(rl.Model{}, rl.White)
	obj := engine.NewGameObject("Icon")
	obj.AddComponent(r)

	// Shared renderers never call into raylib on Unload
	r.Unload()
	r.Draw()
	if !r.Shared {
		t.Error("Expected shared renderer")
	}
}
