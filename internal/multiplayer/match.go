package multiplayer

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/denris/internal/tetris"
)

// Match mediates a local versus game. Both engines share one seed so they
// see the same piece sequence; each engine's attacks are routed into the
// other's pending garbage.
type Match struct {
	id      MatchID
	cfg     tetris.Config
	seed    int64 // configured seed, 0 picks a fresh one every round
	round   int64 // seed of the current round
	engines [2]*tetris.Engine

	elapsed time.Duration
	paused  bool
	done    bool
	result  MatchResult

	saver  MatchResultSaver // Optional, can be nil
	logger *log.Logger
	now    func() time.Time
}

// NewMatch creates a match. Engines are created immediately but spawn their
// first piece on Start or the first Advance.
func NewMatch(cfg tetris.Config, seed int64) *Match {
	m := &Match{
		cfg:    cfg,
		seed:   seed,
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	m.Reset()
	return m
}

// SetLogger routes match and engine debug events to l.
func (m *Match) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	m.logger = l
	for i, e := range m.engines {
		e.SetLogger(l.With("player", i+1))
	}
}

// SetResultSaver sets the optional match result saver.
func (m *Match) SetResultSaver(saver MatchResultSaver) {
	m.saver = saver
}

// ID returns the current round's identifier.
func (m *Match) ID() MatchID { return m.id }

// Seed returns the seed shared by both engines this round.
func (m *Match) Seed() int64 { return m.round }

// Elapsed returns the virtual time played this round.
func (m *Match) Elapsed() time.Duration { return m.elapsed }

// Engine returns the engine of player p. Commands for that player go
// straight to it.
func (m *Match) Engine(p PlayerID) *tetris.Engine {
	if p == Player2 {
		return m.engines[1]
	}
	return m.engines[0]
}

// Start spawns the first piece on both boards.
func (m *Match) Start() {
	for _, e := range m.engines {
		e.Start()
	}
	m.checkEnd()
}

// Advance moves both engines forward by dt and ends the match when either
// tops out.
func (m *Match) Advance(dt time.Duration) {
	if m.done || m.checkEnd() || m.paused {
		return
	}
	for _, e := range m.engines {
		e.Advance(dt)
	}
	m.elapsed += dt
	m.checkEnd()
}

// PauseToggle pauses or resumes both players together.
func (m *Match) PauseToggle() {
	if m.done {
		return
	}
	m.paused = !m.paused
	for _, e := range m.engines {
		if e.IsPaused() != m.paused {
			e.PauseToggle()
		}
	}
}

// Paused reports whether the match is paused.
func (m *Match) Paused() bool { return m.paused }

// Done reports whether the match has ended.
func (m *Match) Done() bool { return m.done }

// Result returns the outcome once the match has ended.
func (m *Match) Result() (MatchResult, bool) {
	return m.result, m.done
}

// Cancel ends a running match without a winner.
func (m *Match) Cancel() {
	if m.done {
		return
	}
	m.finish(MatchEndReasonCancelled, 0)
}

// Reset starts a new round. A match created without a seed draws a fresh
// one; otherwise the same seed is replayed.
func (m *Match) Reset() {
	m.round = m.seed
	if m.round == 0 {
		m.round = m.now().UnixNano()
	}
	m.id = newMatchID()
	for i := range m.engines {
		if m.engines[i] == nil {
			m.engines[i] = tetris.NewEngine(m.cfg, m.round)
			m.engines[i].SetLogger(m.logger.With("player", i+1))
		} else {
			m.engines[i].ResetSeed(m.round)
		}
	}
	m.engines[0].SetAttackSink(func(n int) { m.route(Player1, n) })
	m.engines[1].SetAttackSink(func(n int) { m.route(Player2, n) })

	m.elapsed = 0
	m.paused = false
	m.done = false
	m.result = MatchResult{}
	m.logger.Debug("match reset", "match", m.id, "seed", m.round)
}

// route delivers an attack from one player to the other's garbage queue.
func (m *Match) route(from PlayerID, lines int) {
	to := from.Opponent()
	m.Engine(to).ReceiveGarbage(lines)
	m.logger.Debug("attack", "from", int(from), "to", int(to), "lines", lines)
}

// checkEnd finishes the match if a player has topped out and reports
// whether it is over.
func (m *Match) checkEnd() bool {
	if m.done {
		return true
	}
	p1, p2 := m.engines[0], m.engines[1]
	over1, over2 := p1.IsGameOver(), p2.IsGameOver()
	switch {
	case over1 && over2:
		var winner PlayerID
		switch {
		case p1.Score() > p2.Score():
			winner = Player1
		case p2.Score() > p1.Score():
			winner = Player2
		}
		m.finish(MatchEndReasonDoubleTopOut, winner)
	case over1:
		m.finish(MatchEndReasonTopOut, Player2)
	case over2:
		m.finish(MatchEndReasonTopOut, Player1)
	default:
		return false
	}
	return true
}

func (m *Match) finish(reason MatchEndReason, winner PlayerID) {
	p1, p2 := m.engines[0], m.engines[1]
	m.done = true
	m.result = MatchResult{
		MatchID:  m.id,
		Seed:     m.round,
		Reason:   reason,
		Winner:   winner,
		Score1:   p1.Score(),
		Score2:   p2.Score(),
		Lines1:   p1.Lines(),
		Lines2:   p2.Lines(),
		Sent1:    p1.AttackSent(),
		Sent2:    p2.AttackSent(),
		Duration: m.elapsed,
		EndedAt:  m.now(),
	}
	m.logger.Info("match ended", "match", m.id, "reason", reason, "winner", int(winner),
		"score1", m.result.Score1, "score2", m.result.Score2)

	if m.saver != nil {
		if err := m.saver.SaveMatchResult(m.result); err != nil {
			m.logger.Warn("cannot save match result", "match", m.id, "error", err)
		}
	}
}
