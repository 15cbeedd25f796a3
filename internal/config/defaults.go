package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

//go:embed defaults/keys.yaml
var defaultKeysYAML []byte

// DefaultTetrisConfig returns the default engine configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
		},
		Timing: TimingConfig{
			BaseInterval:   Duration(time.Second),
			SoftDropFactor: 20,
			LockDelay:      Duration(500 * time.Millisecond),
			LockMoves:      15,
			ClearDelay:     Duration(300 * time.Millisecond),
			RotateCooldown: Duration(50 * time.Millisecond),
		},
		Queue: QueueConfig{
			Preview: 3,
		},
		Scoring: ScoringConfig{
			StartLevel:    1,
			LinesPerLevel: 10,
		},
	}
}

// DefaultKeyBindings returns the default two-player key layout.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Player1: PlayerKeys{
			MoveLeft:  []string{"a"},
			MoveRight: []string{"d"},
			SoftDrop:  []string{"s"},
			HardDrop:  []string{" "},
			RotateCW:  []string{"w"},
			RotateCCW: []string{"q"},
			Rotate180: []string{"x"},
			Hold:      []string{"c"},
		},
		Player2: PlayerKeys{
			MoveLeft:  []string{"left"},
			MoveRight: []string{"right"},
			SoftDrop:  []string{"down"},
			HardDrop:  []string{"enter"},
			RotateCW:  []string{"up"},
			RotateCCW: []string{"/"},
			Rotate180: []string{"."},
			Hold:      []string{"m"},
		},
		Pause:   []string{"p"},
		Restart: []string{"r"},
		Quit:    []string{"esc", "ctrl+c"},
	}
}
