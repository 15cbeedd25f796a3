// Package config provides YAML-based game configuration loading, key
// bindings and difficulty presets for denris.
package config

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/denris/internal/tetris"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// TetrisConfig contains all configuration for the falling-block engine.
type TetrisConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Timing  TimingConfig  `yaml:"timing"`
	Queue   QueueConfig   `yaml:"queue"`
	Scoring ScoringConfig `yaml:"scoring"`
}

// BoardConfig defines the playfield dimensions.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig defines gravity, lock delay and animation timing.
type TimingConfig struct {
	BaseInterval   Duration `yaml:"base_interval"`    // Fall interval at level 1
	SoftDropFactor int      `yaml:"soft_drop_factor"` // Interval divisor while soft dropping
	LockDelay      Duration `yaml:"lock_delay"`
	LockMoves      int      `yaml:"lock_moves"`
	ClearDelay     Duration `yaml:"clear_delay"`
	RotateCooldown Duration `yaml:"rotate_cooldown"`
}

// QueueConfig defines the next-piece preview.
type QueueConfig struct {
	Preview int `yaml:"preview"`
}

// ScoringConfig defines level progression.
type ScoringConfig struct {
	StartLevel    int `yaml:"start_level"`
	LinesPerLevel int `yaml:"lines_per_level"`
}

// Duration is a time.Duration written in YAML as a string such as "500ms".
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("config: duration at line %d: %w", value.Line, err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: duration at line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration in its string form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Validate checks that the configuration describes a playable game.
func (c TetrisConfig) Validate() error {
	switch {
	case c.Board.Width < 4:
		return fmt.Errorf("%w: board.width must be at least 4, got %d", ErrInvalidConfig, c.Board.Width)
	case c.Board.Height < 4:
		return fmt.Errorf("%w: board.height must be at least 4, got %d", ErrInvalidConfig, c.Board.Height)
	case c.Queue.Preview < 1:
		return fmt.Errorf("%w: queue.preview must be at least 1, got %d", ErrInvalidConfig, c.Queue.Preview)
	case c.Timing.BaseInterval <= 0:
		return fmt.Errorf("%w: timing.base_interval must be positive", ErrInvalidConfig)
	case c.Timing.SoftDropFactor < 1:
		return fmt.Errorf("%w: timing.soft_drop_factor must be at least 1, got %d", ErrInvalidConfig, c.Timing.SoftDropFactor)
	case c.Timing.LockDelay < 0, c.Timing.ClearDelay < 0, c.Timing.RotateCooldown < 0:
		return fmt.Errorf("%w: timing delays must not be negative", ErrInvalidConfig)
	case c.Timing.LockMoves < 1:
		return fmt.Errorf("%w: timing.lock_moves must be at least 1, got %d", ErrInvalidConfig, c.Timing.LockMoves)
	case c.Scoring.StartLevel < 1:
		return fmt.Errorf("%w: scoring.start_level must be at least 1, got %d", ErrInvalidConfig, c.Scoring.StartLevel)
	case c.Scoring.LinesPerLevel < 1:
		return fmt.Errorf("%w: scoring.lines_per_level must be at least 1, got %d", ErrInvalidConfig, c.Scoring.LinesPerLevel)
	}
	return nil
}

// Engine converts the file representation into engine parameters.
func (c TetrisConfig) Engine() tetris.Config {
	return tetris.Config{
		Width:          c.Board.Width,
		Height:         c.Board.Height,
		PreviewCount:   c.Queue.Preview,
		BaseInterval:   c.Timing.BaseInterval.Std(),
		SoftDropFactor: c.Timing.SoftDropFactor,
		LockDelay:      c.Timing.LockDelay.Std(),
		LockMoves:      c.Timing.LockMoves,
		ClearDelay:     c.Timing.ClearDelay.Std(),
		RotateCooldown: c.Timing.RotateCooldown.Std(),
		StartLevel:     c.Scoring.StartLevel,
		LinesPerLevel:  c.Scoring.LinesPerLevel,
	}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty validates a preset name. An empty name selects no preset
// and leaves the loaded configuration untouched.
func ParseDifficulty(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal or hard)", ErrInvalidConfig, name)
	}
}

// ApplyTetrisPreset adjusts the starting level and lock delay for a preset.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Scoring.StartLevel = 1
		cfg.Timing.LockDelay = Duration(700 * time.Millisecond)
	case DifficultyNormal:
		cfg.Scoring.StartLevel = 5
		cfg.Timing.LockDelay = Duration(500 * time.Millisecond)
	case DifficultyHard:
		cfg.Scoring.StartLevel = 10
		cfg.Timing.LockDelay = Duration(300 * time.Millisecond)
	}
}
