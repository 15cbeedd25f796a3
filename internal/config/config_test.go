package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/denris/internal/core"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadTetris("")
	if err != nil {
		t.Fatalf("LoadTetris: %v", err)
	}
	if diff := cmp.Diff(DefaultTetrisConfig(), cfg); diff != "" {
		t.Errorf("embedded tetris.yaml drifted (-hardcoded +embedded):\n%s", diff)
	}

	keys, err := LoadKeys("")
	if err != nil {
		t.Fatalf("LoadKeys: %v", err)
	}
	if diff := cmp.Diff(DefaultKeyBindings(), keys); diff != "" {
		t.Errorf("embedded keys.yaml drifted (-hardcoded +embedded):\n%s", diff)
	}
}

func TestLoadTetrisPartialFile(t *testing.T) {
	path := writeFile(t, "tetris.yaml", `
board:
  width: 12
timing:
  lock_delay: 250ms
`)
	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris: %v", err)
	}
	if cfg.Board.Width != 12 || cfg.Board.Height != 20 {
		t.Errorf("board = %+v, want 12x20", cfg.Board)
	}
	if cfg.Timing.LockDelay.Std() != 250*time.Millisecond {
		t.Errorf("lock delay = %v, want 250ms", cfg.Timing.LockDelay.Std())
	}
	if cfg.Timing.BaseInterval.Std() != time.Second {
		t.Errorf("base interval = %v, want default 1s", cfg.Timing.BaseInterval.Std())
	}
}

func TestLoadTetrisUserDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".denris", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tetris.yaml"), []byte("queue:\n  preview: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadTetris("")
	if err != nil {
		t.Fatalf("LoadTetris: %v", err)
	}
	if cfg.Queue.Preview != 5 {
		t.Errorf("preview = %d, want 5 from the user file", cfg.Queue.Preview)
	}
}

func TestLoadTetrisErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{"bad duration", "timing:\n  lock_delay: soon\n", false},
		{"bad yaml", "board: [", false},
		{"narrow board", "board:\n  width: 2\n", true},
		{"no preview", "queue:\n  preview: 0\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTetris(writeFile(t, "tetris.yaml", tt.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.Is(err, ErrInvalidConfig); got != tt.invalid {
				t.Errorf("errors.Is(ErrInvalidConfig) = %v, want %v (%v)", got, tt.invalid, err)
			}
		})
	}

	if _, err := LoadTetris(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom file did not fail")
	}
}

func TestEngineConversion(t *testing.T) {
	cfg := DefaultTetrisConfig()
	cfg.Board.Width = 8
	e := cfg.Engine()
	if e.Width != 8 || e.Height != 20 || e.PreviewCount != 3 {
		t.Errorf("dimensions = %dx%d preview %d", e.Width, e.Height, e.PreviewCount)
	}
	if e.LockDelay != 500*time.Millisecond || e.LockMoves != 15 {
		t.Errorf("lock = %v/%d", e.LockDelay, e.LockMoves)
	}
}

func TestDifficultyPresets(t *testing.T) {
	tests := []struct {
		name      string
		level     int
		lockDelay time.Duration
	}{
		{"easy", 1, 700 * time.Millisecond},
		{"normal", 5, 500 * time.Millisecond},
		{"hard", 10, 300 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preset, err := ParseDifficulty(tt.name)
			if err != nil {
				t.Fatalf("ParseDifficulty: %v", err)
			}
			cfg := DefaultTetrisConfig()
			ApplyTetrisPreset(&cfg, preset)
			if cfg.Scoring.StartLevel != tt.level || cfg.Timing.LockDelay.Std() != tt.lockDelay {
				t.Errorf("level=%d lock=%v", cfg.Scoring.StartLevel, cfg.Timing.LockDelay.Std())
			}
		})
	}

	if _, err := ParseDifficulty("nightmare"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unknown preset error = %v", err)
	}
	preset, err := ParseDifficulty("")
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultTetrisConfig()
	ApplyTetrisPreset(&cfg, preset)
	if diff := cmp.Diff(DefaultTetrisConfig(), cfg); diff != "" {
		t.Errorf("empty preset changed config:\n%s", diff)
	}
}

func TestKeyBindingsRejectDuplicates(t *testing.T) {
	keys := DefaultKeyBindings()
	keys.Player2.Hold = []string{"a"}
	if err := keys.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("duplicate key error = %v", err)
	}

	keys = DefaultKeyBindings()
	keys.Player1.Hold = nil
	if err := keys.Validate(); err == nil {
		t.Error("unbound action accepted")
	}

	keys = DefaultKeyBindings()
	keys.Player1.MoveLeft = []string{"a", "a"}
	if err := keys.Validate(); err != nil {
		t.Errorf("repeated key for one action rejected: %v", err)
	}
}

func TestPlayerKeysBindings(t *testing.T) {
	b := DefaultKeyBindings().Player1.Bindings()
	if len(b) != 8 {
		t.Fatalf("got %d actions, want 8", len(b))
	}
	if b[3].Action != core.ActionHardDrop || b[3].Keys[0] != " " {
		t.Errorf("hard drop binding = %+v", b[3])
	}
}
