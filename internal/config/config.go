// Package config holds the demo's tunables: two built-in presets that
// mirror the shipped variants, optionally overridden by a TOML file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	PresetClassic   = "classic"
	PresetPortfolio = "portfolio"
)

// Duration decodes TOML strings such as "5s" or "2500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Seconds is a float32 convenience for frame math.
func (d Duration) Seconds() float32 {
	return float32(d.Duration.Seconds())
}

// TextSpec places a text block by its lower-left corner.
type TextSpec struct {
	Text string  `toml:"text"`
	X    float32 `toml:"x"`
	Y    float32 `toml:"y"`
}

type IconSpec struct {
	Name   string `toml:"name"`
	Source string `toml:"source"` // path, http(s) URL or builtin:<shape>
	Link   string `toml:"link"`
	Color  string `toml:"color"` // raylib color name, White when unknown
}

type Vec3 [3]float32

type Config struct {
	Preset string `toml:"preset"`
	Debug  bool   `toml:"debug"`

	Window struct {
		Width  int    `toml:"width"`
		Height int    `toml:"height"`
		Title  string `toml:"title"`
		FPS    int    `toml:"fps"`
	} `toml:"window"`

	Camera struct {
		Position Vec3    `toml:"position"`
		FOV      float32 `toml:"fov"`
		Near     float32 `toml:"near"`
		Far      float32 `toml:"far"`
		FreeLook bool    `toml:"free_look"`
	} `toml:"camera"`

	Scene struct {
		Texts         []TextSpec `toml:"texts"`
		Label         TextSpec   `toml:"label"`
		Gravity       Vec3       `toml:"gravity"`
		DropHeight    float32    `toml:"drop_height"`
		MaxTiltDeg    float32    `toml:"max_tilt_deg"`
		ClearOnReveal bool       `toml:"clear_on_reveal"`
		TextSize      float32    `toml:"text_size"`
		TextDepth     float32    `toml:"text_depth"`
		Seed          int64      `toml:"seed"`
	} `toml:"scene"`

	Timing struct {
		Settle      Duration `toml:"settle"`
		Reveal      Duration `toml:"reveal"`
		LabelTween  Duration `toml:"label_tween"`
		CameraGlide Duration `toml:"camera_glide"`
	} `toml:"timing"`

	Interactive struct {
		RequireLabel    bool       `toml:"require_label"`
		FixCamera       bool       `toml:"fix_camera"`
		DisposeControls bool       `toml:"dispose_controls"`
		Icons           []IconSpec `toml:"icons"`
		StartX          float32    `toml:"start_x"`
		Spacing         float32    `toml:"spacing"`
		RowY            float32    `toml:"row_y"`
		IconScale       float32    `toml:"icon_scale"`
		CacheDir        string     `toml:"cache_dir"`
	} `toml:"interactive"`

	ASCII struct {
		Charset    string  `toml:"charset"`
		Resolution float32 `toml:"resolution"`
		Invert     bool    `toml:"invert"`
	} `toml:"ascii"`

	Audio struct {
		Enabled bool    `toml:"enabled"`
		Music   string  `toml:"music"`
		Volume  float64 `toml:"volume"`
	} `toml:"audio"`

	Font struct {
		Face string  `toml:"face"`
		Size float64 `toml:"size"`
	} `toml:"font"`
}

// Preset returns a fresh copy of a named preset.
func Preset(name string) (*Config, error) {
	switch strings.ToLower(name) {
	case "", PresetClassic:
		return classic(), nil
	case PresetPortfolio:
		return portfolio(), nil
	}
	return nil, fmt.Errorf("unknown preset %q", name)
}

// Load starts from the named preset and overlays the TOML file at path,
// if any. A preset named in the file wins over the argument.
func Load(path, preset string) (*Config, error) {
	var head toml.MetaData
	if path != "" {
		var top struct {
			Preset string `toml:"preset"`
		}
		md, err := toml.DecodeFile(path, &top)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		if top.Preset != "" {
			preset = top.Preset
		}
		head = md
	}

	cfg, err := Preset(preset)
	if err != nil {
		return nil, err
	}

	if path != "" {
		// Arrays of tables replace the preset's lists outright; decoding
		// into the existing slice would inherit fields per index.
		if head.IsDefined("scene", "texts") {
			cfg.Scene.Texts = nil
		}
		if head.IsDefined("interactive", "icons") {
			cfg.Interactive.Icons = nil
		}
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every out-of-range field at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.FPS >= 0, "window.fps must not be negative")
	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera.fov must be in (0, 180), got %v", c.Camera.FOV)
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near, "camera near/far must satisfy 0 < near < far")
	for i, t := range c.Scene.Texts {
		check(t.Text != "", "scene.texts[%d] is empty", i)
	}
	check(c.Scene.Label.Text != "", "scene.label.text is empty")
	check(c.Scene.MaxTiltDeg >= 0 && c.Scene.MaxTiltDeg <= 90, "scene.max_tilt_deg must be in [0, 90]")
	check(c.Scene.TextSize > 0 && c.Scene.TextDepth > 0, "scene text size and depth must be positive")
	check(c.Timing.Settle.Duration >= 0 && c.Timing.Reveal.Duration >= 0, "timing delays must not be negative")
	for i, icon := range c.Interactive.Icons {
		check(icon.Source != "", "interactive.icons[%d].source is empty", i)
		check(icon.Link != "", "interactive.icons[%d].link is empty", i)
	}
	check(c.Interactive.IconScale > 0, "interactive.icon_scale must be positive")
	check(len([]rune(c.ASCII.Charset)) >= 2, "ascii.charset needs at least two characters")
	check(c.ASCII.Resolution > 0 && c.ASCII.Resolution <= 1, "ascii.resolution must be in (0, 1]")
	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be in [0, 1]")

	return errors.Join(errs...)
}
