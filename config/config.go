// Package config loads the optional TOML configuration file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user settings. A missing file yields Default().
type Config struct {
	// Limit caps how many revisions a listing requests.
	Limit int `toml:"limit"`
	// Plain selects the huh list instead of the full picker TUI.
	Plain bool `toml:"plain"`

	JJ JJConfig `toml:"jj"`
}

// JJConfig scopes jj-specific settings.
type JJConfig struct {
	// BaseRevset is ANDed with every jj listing when non-empty.
	BaseRevset string `toml:"base_revset"`
	// Trunk bounds range-start candidates.
	Trunk string `toml:"trunk"`
}

func Default() Config {
	return Config{
		Limit: 50,
		JJ:    JJConfig{Trunk: "trunk()"},
	}
}

// Load reads $REVPICK_CONFIG, falling back to
// ~/.config/revpick/config.toml. A missing file is not an error.
func Load() (Config, error) {
	path := os.Getenv("REVPICK_CONFIG")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(home, ".config", "revpick", "config.toml")
	}
	return LoadFile(path)
}

// LoadFile reads the config at path, applying defaults for absent keys.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), err
	}
	if cfg.Limit <= 0 {
		cfg.Limit = Default().Limit
	}
	if cfg.JJ.Trunk == "" {
		cfg.JJ.Trunk = Default().JJ.Trunk
	}
	return cfg, nil
}
