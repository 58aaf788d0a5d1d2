// Package appconfig holds the driver-facing configuration: window
// scale, audio parameters, controller key bindings and debug knobs,
// loaded from and saved to a JSON file the way the teacher's
// internal/app/config.go does.
package appconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the full set of host-driver settings.
type Config struct {
	Window WindowConfig `json:"window"`
	Audio  AudioConfig  `json:"audio"`
	Input  InputConfig  `json:"input"`
	Debug  DebugConfig  `json:"debug"`
}

// WindowConfig controls the ebiten window.
type WindowConfig struct {
	Scale      int  `json:"scale"`
	Fullscreen bool `json:"fullscreen"`
	VSync      bool `json:"vsync"`
}

// AudioConfig controls the APU sample sink.
type AudioConfig struct {
	Enabled    bool    `json:"enabled"`
	SampleRate int     `json:"sample_rate"`
	Volume     float64 `json:"volume"`
}

// KeyMapping names one player's eight button bindings as ebiten key
// names (e.g. "ArrowUp", "KeyZ").
type KeyMapping struct {
	Up, Down, Left, Right string
	A, B, Start, Select   string
}

// InputConfig holds both controllers' key bindings.
type InputConfig struct {
	Player1 KeyMapping `json:"player1"`
	Player2 KeyMapping `json:"player2"`
}

// DebugConfig carries the headless/offline run knobs.
type DebugConfig struct {
	TargetFrame int  `json:"target_frame"`
	Verbose     bool `json:"verbose"`
}

// Default returns the out-of-the-box configuration: 3x window scale,
// 48kHz audio at half volume, and the conventional WASD+arrow bindings.
func Default() *Config {
	return &Config{
		Window: WindowConfig{Scale: 3, VSync: true},
		Audio:  AudioConfig{Enabled: true, SampleRate: 48000, Volume: 0.5},
		Input: InputConfig{
			Player1: KeyMapping{
				Up: "ArrowUp", Down: "ArrowDown", Left: "ArrowLeft", Right: "ArrowRight",
				A: "KeyX", B: "KeyZ", Start: "Enter", Select: "ShiftRight",
			},
			Player2: KeyMapping{
				Up: "KeyW", Down: "KeyS", Left: "KeyA", Right: "KeyD",
				A: "KeyK", B: "KeyJ", Start: "KeyP", Select: "KeyO",
			},
		},
	}
}

// Load reads a config from path, falling back to Default if the file
// doesn't exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("appconfig: read %s: %w", path, err)
	}
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("appconfig: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as indented JSON, creating parent directories
// as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("appconfig: mkdir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("appconfig: marshal: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultPath returns the conventional per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "gones-config.json"
	}
	return filepath.Join(dir, "gones", "config.json")
}
