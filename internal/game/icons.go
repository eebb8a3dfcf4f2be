package game

import (
	"fmt"

	"asciidrop/internal/assets"
	"asciidrop/internal/components"
	"asciidrop/internal/config"
	"asciidrop/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// iconBuilder turns a fetched model into an icon: the model renderer on the
// root and one pickable child per mesh. Main thread only.
type iconBuilder struct {
	models *assets.Manager
	shader rl.Shader
}

func (b *iconBuilder) Build(spec config.IconSpec, path string) (*engine.GameObject, error) {
	model, err := b.models.LoadModel(path)
	if err != nil {
		return nil, err
	}

	root := engine.NewGameObject(spec.Name)
	renderer := components.NewSharedModelRenderer(model, assets.LookupColor(spec.Color))
	renderer.SetShader(b.shader)
	root.AddComponent(renderer)

	for i, mesh := range renderer.Meshes() {
		part := engine.NewGameObject(fmt.Sprintf("%s.mesh%d", spec.Name, i))
		part.AddComponent(components.NewBoundsCollider(rl.GetMeshBoundingBox(mesh)))
		root.AddChild(part)
	}
	if len(root.Children) == 0 {
		return nil, fmt.Errorf("model %s has no meshes", path)
	}
	return root, nil
}
