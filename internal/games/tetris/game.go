package tetris

import (
	"time"

	"github.com/vovakirdan/denris/internal/core"
	"github.com/vovakirdan/denris/internal/registry"
	engine "github.com/vovakirdan/denris/internal/tetris"
)

func init() {
	registry.Register("tetris", func() registry.Game { return New() })
	registry.Register("tetris_versus", func() registry.Game { return NewVersus() })
}

// tickDuration converts the platform tick rate into engine time.
func tickDuration(rate int) time.Duration {
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// softDropLatch is how many ticks soft drop stays held after a key press.
// Terminals report presses and auto-repeat but never releases, so the
// accelerated fall has to time out on its own.
func softDropLatch(rate int) int {
	return max(1, rate/6)
}

// controller feeds one player's actions into an engine.
type controller struct {
	softHold int
	latch    int
}

// apply runs the piece commands in a frame. Pause and restart are handled
// by the caller since they act on the whole game.
func (c *controller) apply(e *engine.Engine, in core.InputFrame) {
	if in.Has(core.ActionLeft) {
		e.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		e.MoveRight()
	}
	if in.Has(core.ActionRotateCW) {
		e.RotateClockwise()
	}
	if in.Has(core.ActionRotateCCW) {
		e.RotateCounterClockwise()
	}
	if in.Has(core.ActionRotate180) {
		e.Rotate180()
	}
	if in.Has(core.ActionHold) {
		e.Hold()
	}
	if in.Has(core.ActionSoftDrop) {
		e.MoveDown()
		e.SoftDrop(true)
		c.softHold = c.latch
	} else if c.softHold > 0 {
		c.softHold--
		if c.softHold == 0 {
			e.SoftDrop(false)
		}
	}
	if in.Has(core.ActionHardDrop) {
		e.HardDrop()
	}
}

func (c *controller) reset(latch int) {
	c.softHold = 0
	c.latch = latch
}

// Game is the single-player marathon.
type Game struct {
	engine  *engine.Engine
	runtime core.RuntimeConfig
	tick    time.Duration
	ctl     controller
}

// New creates a new game instance. The engine is built on Reset.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset loads the configuration and starts a fresh game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.tick = tickDuration(runtime.TickRate)
	g.ctl.reset(softDropLatch(runtime.TickRate))

	g.engine = engine.NewEngine(loadEngineConfig(), runtime.Seed)
	g.engine.SetLogger(logger)
	g.engine.Start()
}

// Step applies one tick of input and advances the engine clock by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.engine.Reset()
		g.engine.Start()
		g.ctl.reset(g.ctl.latch)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.engine.PauseToggle()
	}
	g.ctl.apply(g.engine, in)
	g.engine.Advance(g.tick)
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.engine.Score(),
		Lines:    g.engine.Lines(),
		Level:    g.engine.Level(),
		GameOver: g.engine.IsGameOver(),
		Paused:   g.engine.IsPaused(),
	}
}

// Snapshot returns the engine snapshot.
func (g *Game) Snapshot() engine.Snapshot {
	return g.engine.Snapshot()
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}

// Render draws the playfield centred on the screen.
func (g *Game) Render(dst *core.Screen) {
	s := g.engine.Snapshot()
	w, h := fieldSize(s)
	if dst.Width() < w || dst.Height() < h+1 {
		drawTooSmall(dst, w, h+1)
		return
	}
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h - 1) / 2
	drawField(dst, s, x, y, "DENRIS")
	if s.GameOver {
		dst.DrawTextCentered(y+h, "r restart · esc quit")
	}
}
