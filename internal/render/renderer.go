// Package render draws the scene into a small offscreen target and turns
// the result into an ASCII frame.
package render

import (
	_ "embed"
	"fmt"

	"asciidrop/internal/ascii"
	"asciidrop/internal/components"
	"asciidrop/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const maxLights = 4

//go:embed shaders/flat.vs
var flatVS string

//go:embed shaders/flat.fs
var flatFS string

type Renderer struct {
	Shader     rl.Shader
	Target     rl.RenderTexture2D
	Viewport   Viewport
	Background rl.Color
	Ambient    float32

	converter *ascii.Converter
	culled    int
}

func NewRenderer(vp Viewport, charset string, invert bool) (*Renderer, error) {
	conv, err := ascii.NewConverter(charset, invert)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		Viewport:   vp,
		Background: rl.Black,
		converter:  conv,
	}, nil
}

// Initialize needs a live GL context.
func (r *Renderer) Initialize() error {
	r.Shader = rl.LoadShaderFromMemory(flatVS, flatFS)
	if !rl.IsShaderValid(r.Shader) {
		return fmt.Errorf("flat shader failed to compile")
	}
	r.loadTarget()
	return nil
}

func (r *Renderer) loadTarget() {
	if r.Target.ID != 0 {
		rl.UnloadRenderTexture(r.Target)
	}
	w, h := r.Viewport.Target()
	r.Target = rl.LoadRenderTexture(int32(w), int32(h))
}

// Resize follows the window and rebuilds the target when its size changes.
func (r *Renderer) Resize(width, height int) {
	if r.Viewport.Resize(width, height) {
		r.loadTarget()
	}
}

// SetResolution rescales the offscreen target.
func (r *Renderer) SetResolution(resolution float32) {
	if r.Viewport.SetResolution(resolution) {
		r.loadTarget()
	}
}

// SetLights uploads point light positions and intensities. Unused slots
// get zero intensity.
func (r *Renderer) SetLights(lights []*components.PointLight) {
	if len(lights) > maxLights {
		lights = lights[:maxLights]
	}

	positions := make([]float32, 3*maxLights)
	intensities := make([]float32, maxLights)
	for i, l := range lights {
		p := l.GetPosition()
		positions[3*i], positions[3*i+1], positions[3*i+2] = p.X, p.Y, p.Z
		intensities[i] = l.Intensity
	}

	rl.SetShaderValueV(r.Shader, rl.GetShaderLocation(r.Shader, "lightPos"), positions, rl.ShaderUniformVec3, maxLights)
	rl.SetShaderValueV(r.Shader, rl.GetShaderLocation(r.Shader, "lightIntensity"), intensities, rl.ShaderUniformFloat, maxLights)
	rl.SetShaderValue(r.Shader, rl.GetShaderLocation(r.Shader, "ambient"), []float32{r.Ambient}, rl.ShaderUniformFloat)
}

// Render draws every Drawer under objects into the target and converts the
// pixels to glyphs.
func (r *Renderer) Render(cam *components.Camera, objects []*engine.GameObject) ascii.Frame {
	w, h := r.Viewport.Target()
	camera := cam.GetRaylibCamera()
	aspect := float32(w) / float32(h)
	frustum := ExtractFrustum(camera, aspect, cam.Near, cam.Far)

	rl.BeginTextureMode(r.Target)
	rl.ClearBackground(r.Background)
	rl.BeginMode3D(camera)
	rl.SetMatrixProjection(Projection(camera, aspect, cam.Near, cam.Far))
	rl.BeginShaderMode(r.Shader)

	// Immediate-mode drawers emit world-space vertices and need an identity
	// model matrix; DrawModel overwrites it per mesh, so models go last.
	immediate, models := r.collect(&frustum, objects)
	rl.SetShaderValueMatrix(r.Shader, rl.GetShaderLocation(r.Shader, "matModel"), rl.MatrixIdentity())
	for _, d := range immediate {
		d.Draw()
	}
	rl.DrawRenderBatchActive()
	for _, d := range models {
		d.Draw()
	}

	rl.EndShaderMode()
	rl.EndMode3D()
	rl.EndTextureMode()

	return r.readback(w, h)
}

// collect gathers the visible drawers under objects, split into immediate
// drawers and model renderers.
func (r *Renderer) collect(f *Frustum, objects []*engine.GameObject) (immediate, models []engine.Drawer) {
	r.culled = 0
	for _, root := range objects {
		root.Walk(func(g *engine.GameObject) bool {
			if !g.Active {
				return false
			}
			if !r.visible(f, g) {
				r.culled++
				return true
			}
			for _, c := range g.Components() {
				switch d := c.(type) {
				case *components.ModelRenderer:
					models = append(models, d)
				case engine.Drawer:
					immediate = append(immediate, d)
				}
			}
			return true
		})
	}
	return immediate, models
}

// visible culls objects with a known extent; anything else is drawn.
func (r *Renderer) visible(f *Frustum, g *engine.GameObject) bool {
	if tm := engine.GetComponent[*components.TextMesh](g); tm != nil {
		s := rl.Vector3Multiply(tm.Size(), g.WorldScale())
		return f.ContainsSphere(g.WorldPosition(), rl.Vector3Length(s)/2)
	}
	if bc := engine.GetComponent[*components.BoundsCollider](g); bc != nil {
		return f.ContainsBox(bc.WorldBounds())
	}
	return true
}

func (r *Renderer) readback(w, h int) ascii.Frame {
	img := rl.LoadImageFromTexture(r.Target.Texture)
	defer rl.UnloadImage(img)

	// Render textures are stored bottom-up
	rl.ImageFlipVertical(img)
	pixels := rl.LoadImageColors(img)
	defer rl.UnloadImageColors(pixels)

	return r.converter.Convert(pixels, w, h)
}

// Culled is how many objects the last Render skipped.
func (r *Renderer) Culled() int {
	return r.culled
}

func (r *Renderer) Unload() {
	rl.UnloadShader(r.Shader)
	if r.Target.ID != 0 {
		rl.UnloadRenderTexture(r.Target)
	}
}
