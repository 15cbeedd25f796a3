package tetris

import (
	"fmt"
	"time"

	"github.com/vovakirdan/denris/internal/core"
	"github.com/vovakirdan/denris/internal/multiplayer"
	engine "github.com/vovakirdan/denris/internal/tetris"
)

const versusGap = 4

// Versus is a two-player match on one keyboard.
type Versus struct {
	match   *multiplayer.Match
	runtime core.RuntimeConfig
	tick    time.Duration
	ctl     [2]controller
}

// NewVersus creates a versus game. The match is built on Reset.
func NewVersus() *Versus {
	return &Versus{}
}

// ID returns the unique identifier for this game.
func (v *Versus) ID() string {
	return "tetris_versus"
}

// Title returns the display name for this game.
func (v *Versus) Title() string {
	return "Tetris Versus"
}

// Reset loads the configuration and starts a new match.
func (v *Versus) Reset(runtime core.RuntimeConfig) {
	v.runtime = runtime
	v.tick = tickDuration(runtime.TickRate)
	for i := range v.ctl {
		v.ctl[i].reset(softDropLatch(runtime.TickRate))
	}

	v.match = multiplayer.NewMatch(loadEngineConfig(), runtime.Seed)
	v.match.SetLogger(logger)
	v.match.SetResultSaver(matchSaver)
	v.match.Start()
}

// Step treats a single input frame as player 1.
func (v *Versus) Step(in core.InputFrame) core.StepResult {
	multi := core.NewMultiInputFrame()
	multi.ByPlayer[multiplayer.Player1] = in.Clone()
	return v.StepMulti(multi)
}

// StepMulti applies both players' input and advances the match by one tick.
func (v *Versus) StepMulti(in core.MultiInputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		v.match.Reset()
		v.match.Start()
		for i := range v.ctl {
			v.ctl[i].reset(v.ctl[i].latch)
		}
		return core.StepResult{State: v.State()}
	}
	if in.Has(core.ActionPause) {
		v.match.PauseToggle()
	}
	if !v.match.Done() {
		for i, p := range []multiplayer.PlayerID{multiplayer.Player1, multiplayer.Player2} {
			v.ctl[i].apply(v.match.Engine(p), in.Player(p))
		}
	}
	v.match.Advance(v.tick)
	return core.StepResult{State: v.State()}
}

// State reports player 1's figures; GameOver means the match has ended.
func (v *Versus) State() core.GameState {
	e := v.match.Engine(multiplayer.Player1)
	return core.GameState{
		Score:    e.Score(),
		Lines:    e.Lines(),
		Level:    e.Level(),
		GameOver: v.match.Done(),
		Paused:   v.match.Paused(),
	}
}

// Match exposes the underlying match.
func (v *Versus) Match() *multiplayer.Match {
	return v.match
}

// Render draws both playfields side by side.
func (v *Versus) Render(dst *core.Screen) {
	s1 := v.match.Engine(multiplayer.Player1).Snapshot()
	s2 := v.match.Engine(multiplayer.Player2).Snapshot()
	fw, fh := fieldSize(s1)
	w, h := fw*2+versusGap, fh+1
	if dst.Width() < w || dst.Height() < h {
		drawTooSmall(dst, w, h)
		return
	}
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2
	drawField(dst, s1, x, y, "P1")
	drawField(dst, s2, x+fw+versusGap, y, "P2")

	if result, done := v.match.Result(); done {
		dst.DrawTextCentered(y+fh, resultLine(result)+" · r rematch · esc quit")
	}
}

func resultLine(r multiplayer.MatchResult) string {
	if r.Draw() {
		return "DRAW"
	}
	return fmt.Sprintf("PLAYER %d WINS", int(r.Winner))
}

// Snapshots returns both players' snapshots.
func (v *Versus) Snapshots() (engine.Snapshot, engine.Snapshot) {
	return v.match.Engine(multiplayer.Player1).Snapshot(), v.match.Engine(multiplayer.Player2).Snapshot()
}
