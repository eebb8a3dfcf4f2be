package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "asciidrop.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset        string
		reveal        time.Duration
		clearOnReveal bool
		startX        float32
		spacing       float32
		scale         float32
		label         string
	}{
		{PresetClassic, 2 * time.Second, false, -200, 200, 50, "danielcuesta.dev"},
		{PresetPortfolio, 4 * time.Second, true, -400, 600, 100, "hevcuesta.github.io"},
	}

	for _, tt := range tests {
		cfg, err := Preset(tt.preset)
		if err != nil {
			t.Fatalf("Preset(%q) failed: %v", tt.preset, err)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s preset invalid: %v", tt.preset, err)
		}
		if cfg.Timing.Settle.Duration != 5*time.Second {
			t.Errorf("%s: expected 5s settle, got %v", tt.preset, cfg.Timing.Settle)
		}
		if cfg.Timing.Reveal.Duration != tt.reveal {
			t.Errorf("%s: expected reveal %v, got %v", tt.preset, tt.reveal, cfg.Timing.Reveal)
		}
		if cfg.Scene.ClearOnReveal != tt.clearOnReveal {
			t.Errorf("%s: expected clear_on_reveal %v", tt.preset, tt.clearOnReveal)
		}
		if cfg.Interactive.StartX != tt.startX || cfg.Interactive.Spacing != tt.spacing || cfg.Interactive.IconScale != tt.scale {
			t.Errorf("%s: unexpected icon row %v/%v/%v", tt.preset,
				cfg.Interactive.StartX, cfg.Interactive.Spacing, cfg.Interactive.IconScale)
		}
		if cfg.Scene.Label.Text != tt.label {
			t.Errorf("%s: expected label %q, got %q", tt.preset, tt.label, cfg.Scene.Label.Text)
		}
		if !cfg.Interactive.RequireLabel {
			t.Errorf("%s: Space should wait for the label by default", tt.preset)
		}
	}
}

func TestPresetsAreIndependent(t *testing.T) {
	a, _ := Preset(PresetClassic)
	a.Scene.Texts[0].Text = "changed"

	b, _ := Preset(PresetClassic)
	if b.Scene.Texts[0].Text != "Daniel Cuesta" {
		t.Error("Preset should return a fresh copy")
	}
}

func TestUnknownPreset(t *testing.T) {
	if _, err := Preset("neon"); err == nil {
		t.Error("Expected error for unknown preset")
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeConfig(t, `
preset = "portfolio"
debug = true

[timing]
settle = "1500ms"

[scene]
texts = [{ text = "A", x = 0, y = 0 }, { text = "BB", x = 10, y = 0 }]

[interactive]
require_label = false
`)

	cfg, err := Load(path, PresetClassic)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Preset != PresetPortfolio {
		t.Errorf("Preset in file should win, got %q", cfg.Preset)
	}
	if !cfg.Debug {
		t.Error("debug not decoded")
	}
	if cfg.Timing.Settle.Duration != 1500*time.Millisecond {
		t.Errorf("Expected 1.5s settle, got %v", cfg.Timing.Settle)
	}
	if cfg.Timing.Reveal.Duration != 4*time.Second {
		t.Errorf("Unset keys should keep preset values, got reveal %v", cfg.Timing.Reveal)
	}
	if len(cfg.Scene.Texts) != 2 || cfg.Scene.Texts[1].Text != "BB" {
		t.Errorf("Unexpected texts %+v", cfg.Scene.Texts)
	}
	if cfg.Interactive.RequireLabel {
		t.Error("require_label override not applied")
	}
}

func TestLoadReplacesPresetLists(t *testing.T) {
	path := writeConfig(t, `
[[interactive.icons]]
name = "Mine"
source = "builtin:cube"
link = "https://example.com/me"

[[scene.texts]]
text = "Hi"
`)

	cfg, err := Load(path, PresetClassic)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Interactive.Icons) != 1 {
		t.Fatalf("Expected 1 icon, got %+v", cfg.Interactive.Icons)
	}
	icon := cfg.Interactive.Icons[0]
	if icon.Link != "https://example.com/me" || icon.Color != "" {
		t.Errorf("Icon should not inherit preset fields, got %+v", icon)
	}
	if len(cfg.Scene.Texts) != 1 || cfg.Scene.Texts[0].X != 0 || cfg.Scene.Texts[0].Y != 0 {
		t.Errorf("Text should not inherit preset coordinates, got %+v", cfg.Scene.Texts)
	}
	if cfg.Scene.Label.Text != "danielcuesta.dev" {
		t.Errorf("Unset tables should keep preset values, got %q", cfg.Scene.Label.Text)
	}
}

func TestLoadIconWithoutLinkFails(t *testing.T) {
	path := writeConfig(t, `
[[interactive.icons]]
name = "Mine"
source = "builtin:cube"
`)
	_, err := Load(path, PresetClassic)
	if err == nil || !strings.Contains(err.Error(), "interactive.icons[0].link is empty") {
		t.Errorf("Expected missing link error, got %v", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		body string
		key  string
	}{
		{"[ascii]\ncharsett = \"ab\"\n", "charsett"},
		// Glyph cells are sized by the output surface, not configured
		{"[ascii]\ncell_width = 8\n", "cell_width"},
	}
	for _, tt := range tests {
		_, err := Load(writeConfig(t, tt.body), "")
		if err == nil || !strings.Contains(err.Error(), tt.key) {
			t.Errorf("Expected unknown key error for %s, got %v", tt.key, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml"), ""); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("", PresetPortfolio)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Preset != PresetPortfolio {
		t.Errorf("Expected portfolio, got %q", cfg.Preset)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"charset", func(c *Config) { c.ASCII.Charset = "x" }, "ascii.charset"},
		{"resolution", func(c *Config) { c.ASCII.Resolution = 0 }, "ascii.resolution"},
		{"fov", func(c *Config) { c.Camera.FOV = 200 }, "camera.fov"},
		{"icon link", func(c *Config) { c.Interactive.Icons[0].Link = "" }, "link is empty"},
		{"tilt", func(c *Config) { c.Scene.MaxTiltDeg = -1 }, "max_tilt_deg"},
		{"volume", func(c *Config) { c.Audio.Volume = 2 }, "audio.volume"},
	}

	for _, tt := range tests {
		cfg, _ := Preset(PresetClassic)
		tt.mutate(cfg)
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), tt.field) {
			t.Errorf("%s: expected error mentioning %q, got %v", tt.name, tt.field, err)
		}
	}
}

func TestBadDuration(t *testing.T) {
	path := writeConfig(t, `
[timing]
settle = "soon"
`)
	if _, err := Load(path, ""); err == nil {
		t.Error("Expected error for unparsable duration")
	}
}
