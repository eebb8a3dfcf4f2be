package config

import "time"

const DefaultCharset = " abcdef.:-|/"

func base() *Config {
	c := &Config{}
	c.Window.Width = 1280
	c.Window.Height = 720
	c.Window.FPS = 60

	c.Camera.FOV = 70
	c.Camera.Near = 1
	c.Camera.FreeLook = true

	c.Scene.DropHeight = 500
	c.Scene.MaxTiltDeg = 5
	c.Scene.TextSize = 80
	c.Scene.TextDepth = 20

	c.Timing.Settle = Duration{5 * time.Second}
	c.Timing.LabelTween = Duration{800 * time.Millisecond}
	c.Timing.CameraGlide = Duration{600 * time.Millisecond}

	c.Interactive.RequireLabel = true
	c.Interactive.CacheDir = ".cache/icons"

	c.ASCII.Charset = DefaultCharset
	c.ASCII.Resolution = 0.3
	c.ASCII.Invert = true

	c.Audio.Enabled = true
	c.Audio.Volume = 0.6

	c.Font.Face = "gobold"
	c.Font.Size = 32
	return c
}

func classic() *Config {
	c := base()
	c.Preset = PresetClassic
	c.Window.Title = "danielcuesta.dev"
	c.Camera.Position = Vec3{0, 150, 500}
	c.Camera.Far = 1000

	c.Scene.Texts = []TextSpec{
		{Text: "Daniel Cuesta", X: -400, Y: 100},
		{Text: "Desarrollador Web", X: -500, Y: 0},
	}
	c.Scene.Label = TextSpec{Text: "danielcuesta.dev", X: -400, Y: 100}
	c.Scene.Gravity = Vec3{-30, -300, -30}
	c.Timing.Reveal = Duration{2 * time.Second}

	c.Interactive.FixCamera = true
	c.Interactive.DisposeControls = true
	c.Interactive.StartX = -200
	c.Interactive.Spacing = 200
	c.Interactive.RowY = 0
	c.Interactive.IconScale = 50
	c.Interactive.Icons = []IconSpec{
		{
			Name:   "LinkedIn",
			Source: "https://raw.githubusercontent.com/KhronosGroup/glTF-Sample-Models/main/2.0/Box/glTF/Box.gltf",
			Link:   "https://www.linkedin.com/in/yourprofile/",
			Color:  "SkyBlue",
		},
		{Name: "GitHub", Source: "assets/models/github.gltf", Link: "https://github.com/yourprofile", Color: "LightGray"},
	}
	return c
}

func portfolio() *Config {
	c := base()
	c.Preset = PresetPortfolio
	c.Window.Title = "hevcuesta.github.io"
	c.Camera.Position = Vec3{0, 250, 450}
	c.Camera.Far = 2000

	c.Scene.Texts = []TextSpec{
		{Text: "Daniel Cuesta", X: -400, Y: 100},
		{Text: "Desarrollador", X: -500, Y: 0},
	}
	c.Scene.Label = TextSpec{Text: "hevcuesta.github.io", X: -400, Y: 100}
	c.Scene.Gravity = Vec3{0, -250, 0}
	c.Scene.ClearOnReveal = true
	c.Timing.Reveal = Duration{4 * time.Second}

	c.Interactive.StartX = -400
	c.Interactive.Spacing = 600
	c.Interactive.RowY = -50
	c.Interactive.IconScale = 100
	c.Interactive.Icons = []IconSpec{
		{Name: "LinkedIn", Source: "assets/models/linkedin.gltf", Link: "https://www.linkedin.com/in/daniel-cuesta-moreno/", Color: "SkyBlue"},
		{Name: "GitHub", Source: "assets/models/github.gltf", Link: "https://github.com/tuusuario", Color: "LightGray"},
	}
	return c
}
