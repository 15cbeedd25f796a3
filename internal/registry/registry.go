// Package registry holds the game modes the CLI and menu can start. Each mode
// package registers its factories from init(), so the platform discovers
// the single-player marathon ("tetris") and the versus match
// ("tetris_versus") by importing internal/games/tetris for its side effects.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/denris/internal/core"
)

// Game is a playable mode. Implementations keep all rules in pure Go; the
// platform owns timing, key mapping and the terminal.
type Game interface {
	// ID is the stable name used on the command line and as the ranking key.
	ID() string

	// Title is the name shown in menus and listings.
	Title() string

	// Reset starts a fresh game for the given screen, tick rate and seed.
	// It is called before the first Step and again on every restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one fixed tick with player 1's actions.
	Step(in core.InputFrame) core.StepResult

	// Render draws the game into a cleared screen buffer.
	Render(dst *core.Screen)

	// State reports score, lines, level, pause and game over.
	State() core.GameState
}

// MultiGame is a mode where two players share one keyboard. The platform
// routes each player's keys into their own frame and calls StepMulti
// instead of Step.
type MultiGame interface {
	Game

	// StepMulti advances the game by one tick with both players' actions.
	StepMulti(in core.MultiInputFrame) core.StepResult
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID          string
	Title       string
	Multiplayer bool
}

// Factory creates a new instance of a mode.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu    sync.RWMutex
	modes = make(map[string]entry)
)

// Register adds a mode. The factory is called once to read the title and
// whether the mode takes two players. Registering an ID twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := modes[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	_, multi := g.(MultiGame)
	modes[id] = entry{
		info:    GameInfo{ID: id, Title: g.Title(), Multiplayer: multi},
		factory: f,
	}
}

// List returns every registered mode sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(modes))
	for _, e := range modes {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create returns a new instance of the mode with the given ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := modes[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}
