package assets

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Color name mapping for icon tints
var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Gold":      rl.Gold,
	"White":     rl.White,
	"Gray":      rl.Gray,
	"LightGray": rl.LightGray,
	"DarkGray":  rl.DarkGray,
	"Pink":      rl.Pink,
	"Maroon":    rl.Maroon,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"SkyBlue":   rl.SkyBlue,
	"DarkBlue":  rl.DarkBlue,
	"Lime":      rl.Lime,
	"DarkGreen": rl.DarkGreen,
}

// LookupColor returns a raylib color from a name string
func LookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return rl.White
}

// Manager owns GPU models. It must only be used from the thread that
// created the window.
type Manager struct {
	models map[string]rl.Model
}

func NewManager() *Manager {
	return &Manager{models: make(map[string]rl.Model)}
}

// LoadModel loads a model file or a builtin:<shape> source, caching by
// source string.
func (m *Manager) LoadModel(source string) (rl.Model, error) {
	if model, exists := m.models[source]; exists {
		return model, nil
	}

	var model rl.Model
	if shape, ok := strings.CutPrefix(source, BuiltinPrefix); ok {
		mesh, err := builtinMesh(shape)
		if err != nil {
			return rl.Model{}, err
		}
		model = rl.LoadModelFromMesh(mesh)
	} else {
		model = rl.LoadModel(source)
	}
	if model.MeshCount == 0 {
		return rl.Model{}, fmt.Errorf("load model %s: no meshes", source)
	}

	m.models[source] = model
	return model, nil
}

func builtinMesh(shape string) (rl.Mesh, error) {
	switch shape {
	case "cube":
		return rl.GenMeshCube(1, 1, 1), nil
	case "sphere":
		return rl.GenMeshSphere(0.5, 16, 16), nil
	case "torus":
		return rl.GenMeshTorus(0.25, 1, 16, 32), nil
	case "knot":
		return rl.GenMeshKnot(0.5, 0.2, 16, 64), nil
	case "cylinder":
		return rl.GenMeshCylinder(0.5, 1, 24), nil
	}
	return rl.Mesh{}, fmt.Errorf("unknown builtin shape %q", shape)
}

func (m *Manager) Unload() {
	for _, model := range m.models {
		rl.UnloadModel(model)
	}
	m.models = make(map[string]rl.Model)
}
