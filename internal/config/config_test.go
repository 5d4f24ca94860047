package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.json")

	cfg := Default()
	cfg.Editor.CloseRadiusPx = 14
	cfg.Export.Format = "webp"
	cfg.Export.Lossless = true
	cfg.Suggest.Enabled = true

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	got, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if got.Editor.CloseRadiusPx != 14 {
		t.Errorf("close_radius_px = %v, want 14", got.Editor.CloseRadiusPx)
	}
	if got.Export.Format != "webp" || !got.Export.Lossless {
		t.Errorf("export = %+v", got.Export)
	}
	if !got.Suggest.Enabled {
		t.Errorf("suggest.enabled lost on round trip")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Errorf("missing file should error")
	}
}

func TestLoadFromFileBadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Errorf("bad JSON should error")
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Editor.WheelZoomStep != 1.1 {
		t.Errorf("expected defaults, got %+v", cfg.Editor)
	}
}

func TestLoadOrDefaultRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	cfg := Default()
	cfg.Export.Quality = 0
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}
	if _, err := LoadOrDefault(path); err == nil {
		t.Errorf("invalid config should error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(c *Config) {}, true},
		{"zero close radius", func(c *Config) { c.Editor.CloseRadiusPx = 0 }, false},
		{"wheel step below one", func(c *Config) { c.Editor.WheelZoomStep = 0.9 }, false},
		{"button step exactly one", func(c *Config) { c.Editor.ButtonZoomStep = 1 }, false},
		{"zero thumb width", func(c *Config) { c.Thumbnail.Width = 0 }, false},
		{"quality too high", func(c *Config) { c.Export.Quality = 101 }, false},
		{"unknown format", func(c *Config) { c.Export.Format = "bmp" }, false},
		{"jpeg alias ok", func(c *Config) { c.Export.Format = "jpeg" }, true},
		{"suggest disabled ignores host", func(c *Config) { c.Suggest.Host = "" }, true},
		{"suggest enabled needs host", func(c *Config) { c.Suggest.Enabled = true; c.Suggest.Host = "" }, false},
		{"suggest enabled needs model", func(c *Config) { c.Suggest.Enabled = true; c.Suggest.Model = "" }, false},
		{"suggest enabled needs timeout", func(c *Config) { c.Suggest.Enabled = true; c.Suggest.TimeoutSec = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && err == nil {
				t.Errorf("Validate() = nil, want error")
			}
		})
	}
}
