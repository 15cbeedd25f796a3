package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTetris loads engine configuration.
// Search order: customPath -> ~/.denris/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default
// Keys missing from the file keep their default values.
func LoadTetris(customPath string) (TetrisConfig, error) {
	cfg, err := load("tetris.yaml", customPath, defaultTetrisYAML, DefaultTetrisConfig())
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadKeys loads key bindings with the same search order as LoadTetris,
// using keys.yaml.
func LoadKeys(customPath string) (KeyBindings, error) {
	keys, err := load("keys.yaml", customPath, defaultKeysYAML, DefaultKeyBindings())
	if err != nil {
		return keys, err
	}
	if err := keys.Validate(); err != nil {
		return keys, err
	}
	return keys, nil
}

// load decodes the first configuration found on top of fallback. Only an
// explicit customPath is allowed to fail; broken files elsewhere are skipped.
func load[T any](filename, customPath string, embedded []byte, fallback T) (T, error) {
	decode := func(data []byte) (T, error) {
		cfg := fallback
		err := yaml.Unmarshal(data, &cfg)
		return cfg, err
	}

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fallback, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return fallback, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if cfg, err := decode(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decode(embedded)
	if err != nil {
		return fallback, nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// UserConfigPath returns the path to a user config file, or empty if home is unavailable.
func UserConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".denris", "configs", filename)
}
