// Package tetris registers the falling-block game modes: a single-player
// marathon and a two-player versus match on one keyboard.
package tetris

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/denris/internal/config"
	"github.com/vovakirdan/denris/internal/multiplayer"
	engine "github.com/vovakirdan/denris/internal/tetris"
)

// Settings applied by the CLI before a game is created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
	matchSaver       multiplayer.MatchResultSaver
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back to
// the loaded configuration.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetLogger sets the logger handed to every engine.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// SetMatchSaver sets where finished versus matches are recorded.
func SetMatchSaver(s multiplayer.MatchResultSaver) {
	matchSaver = s
}

// loadEngineConfig resolves the engine parameters from the config search
// path and the difficulty preset.
func loadEngineConfig() engine.Config {
	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		logger.Warn("using default config", "error", err)
		cfg = config.DefaultTetrisConfig()
	}
	if difficultyPreset != "" {
		config.ApplyTetrisPreset(&cfg, difficultyPreset)
	}
	return cfg.Engine()
}
