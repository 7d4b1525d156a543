// Package config persists performance settings as JSON under ~/.config.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go-accompany/bayes"
)

// Config is the saved performance configuration. The note mapping is read
// through Identify on every hit; it is passed around explicitly rather than
// held as ambient state.
type Config struct {
	KickNote  uint8 `json:"kickNote"`
	SnareNote uint8 `json:"snareNote"`
	RimNote   uint8 `json:"rimNote"`

	Tempo   int    `json:"tempo,omitempty"`
	InPort  string `json:"inPort,omitempty"`
	OutPort string `json:"outPort,omitempty"`
}

// Default returns the GM drum mapping at 120 BPM.
func Default() *Config {
	return &Config{
		KickNote:  36,
		SnareNote: 38,
		RimNote:   37,
		Tempo:     120,
	}
}

// Identify maps a raw note number onto the instrument set; unmapped notes
// are None.
func (c *Config) Identify(note uint8) bayes.Instrument {
	switch note {
	case c.KickNote:
		return bayes.Kick
	case c.SnareNote:
		return bayes.Snare
	case c.RimNote:
		return bayes.Rim
	default:
		return bayes.None
	}
}

// Dir returns the config directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-accompany"), nil
}

// Path returns the full path to config.json.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := Path()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
