package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	Editor    EditorConfig    `json:"editor"`
	Thumbnail ThumbnailConfig `json:"thumbnail"`
	Export    ExportConfig    `json:"export"`
	Suggest   SuggestConfig   `json:"suggest"`
}

// EditorConfig holds configuration for selection and viewport behavior
type EditorConfig struct {
	CloseRadiusPx  float64 `json:"close_radius_px"`
	WheelZoomStep  float64 `json:"wheel_zoom_step"`
	ButtonZoomStep float64 `json:"button_zoom_step"`
}

// ThumbnailConfig holds configuration for crop list thumbnails
type ThumbnailConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ExportConfig holds configuration for crop output
type ExportConfig struct {
	Format    string `json:"format"`
	Quality   int    `json:"quality"`
	Lossless  bool   `json:"lossless"`
	OutputDir string `json:"output_dir"`
}

// SuggestConfig holds configuration for model-assisted selection
type SuggestConfig struct {
	Enabled    bool   `json:"enabled"`
	Host       string `json:"host"`
	Model      string `json:"model"`
	TimeoutSec int    `json:"timeout_sec"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			CloseRadiusPx:  10,
			WheelZoomStep:  1.1,
			ButtonZoomStep: 1.2,
		},
		Thumbnail: ThumbnailConfig{
			Width:  160,
			Height: 120,
		},
		Export: ExportConfig{
			Format:    "png",
			Quality:   90,
			Lossless:  false,
			OutputDir: "./crops",
		},
		Suggest: SuggestConfig{
			Enabled:    false,
			Host:       "http://localhost:11434",
			Model:      "llava",
			TimeoutSec: 300,
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// LoadOrDefault loads the configuration at path, falling back to
// defaults when the file does not exist. An empty path means the
// default location.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = GetConfigPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	cfg, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Editor.CloseRadiusPx <= 0 {
		return fmt.Errorf("editor.close_radius_px must be positive")
	}

	if c.Editor.WheelZoomStep <= 1 {
		return fmt.Errorf("editor.wheel_zoom_step must be greater than 1")
	}

	if c.Editor.ButtonZoomStep <= 1 {
		return fmt.Errorf("editor.button_zoom_step must be greater than 1")
	}

	if c.Thumbnail.Width < 1 || c.Thumbnail.Height < 1 {
		return fmt.Errorf("thumbnail dimensions must be positive")
	}

	if c.Export.Quality < 1 || c.Export.Quality > 100 {
		return fmt.Errorf("export.quality must be between 1 and 100")
	}

	switch c.Export.Format {
	case "png", "jpg", "jpeg", "webp":
	default:
		return fmt.Errorf("export.format must be one of png, jpg, jpeg, webp")
	}

	if c.Suggest.Enabled {
		if c.Suggest.Host == "" {
			return fmt.Errorf("suggest.host cannot be empty when suggest is enabled")
		}
		if c.Suggest.Model == "" {
			return fmt.Errorf("suggest.model cannot be empty when suggest is enabled")
		}
		if c.Suggest.TimeoutSec < 1 {
			return fmt.Errorf("suggest.timeout_sec must be positive")
		}
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "cropdeck", "config.json")
}
