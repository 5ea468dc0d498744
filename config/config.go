package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// SynthOutputConfig selects the MIDI output.
type SynthOutputConfig struct {
	PortName  string  `json:"portName,omitempty"`
	BendRange float64 `json:"bendRange,omitempty"` // semitones
}

// UIConfig stores editor preferences.
type UIConfig struct {
	LastTempo    int     `json:"lastTempo,omitempty"`
	LastDocument string  `json:"lastDocument,omitempty"`
	TimeGrid     float64 `json:"timeGrid,omitempty"`
	PalettePath  string  `json:"palettePath,omitempty"`
}

// Config is the main configuration structure.
type Config struct {
	SynthOutput SynthOutputConfig `json:"synthOutput,omitempty"`
	UI          UIConfig          `json:"ui,omitempty"`
	Resolution  float64           `json:"resolution,omitempty"` // scheduler tick, seconds
	Debug       bool              `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SynthOutput: SynthOutputConfig{BendRange: 2},
		UI: UIConfig{
			LastTempo: 120,
			TimeGrid:  0.25,
		},
		Resolution: 0.01,
	}
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "notefield"), nil
}

// ConfigPath returns the full path to config.json.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Resolution <= 0 {
		cfg.Resolution = 0.01
	}
	if cfg.SynthOutput.BendRange <= 0 {
		cfg.SynthOutput.BendRange = 2
	}
	return &cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
