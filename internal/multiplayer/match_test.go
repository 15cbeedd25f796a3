package multiplayer

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/denris/internal/tetris"
)

type recordingSaver struct {
	results []MatchResult
	err     error
}

func (r *recordingSaver) SaveMatchResult(result MatchResult) error {
	r.results = append(r.results, result)
	return r.err
}

func testMatch(seed int64) *Match {
	cfg := tetris.DefaultConfig()
	cfg.ClearDelay = 0
	m := NewMatch(cfg, seed)
	m.Start()
	return m
}

// topOut stacks hard drops in the spawn columns until the engine is over.
func topOut(t *testing.T, e *tetris.Engine) {
	t.Helper()
	for i := 0; i < 200 && !e.IsGameOver(); i++ {
		e.HardDrop()
	}
	if !e.IsGameOver() {
		t.Fatal("engine did not top out")
	}
}

func TestEnginesShareSequence(t *testing.T) {
	m := testMatch(77)
	s1 := m.Engine(Player1).Snapshot()
	s2 := m.Engine(Player2).Snapshot()
	if s1.Active != s2.Active {
		t.Errorf("first pieces differ: %v vs %v", s1.Active, s2.Active)
	}
	if diff := cmp.Diff(s1.Next, s2.Next); diff != "" {
		t.Errorf("queues differ (-p1 +p2):\n%s", diff)
	}
	if m.Engine(Player1) == m.Engine(Player2) {
		t.Error("players share one engine")
	}
}

func TestAttackRoutesToOpponent(t *testing.T) {
	m := testMatch(5)
	m.route(Player1, 2)
	m.route(Player2, 4)
	if got := m.Engine(Player2).PendingGarbage(); got != 2 {
		t.Errorf("player 2 pending = %d, want 2", got)
	}
	if got := m.Engine(Player1).PendingGarbage(); got != 4 {
		t.Errorf("player 1 pending = %d, want 4", got)
	}
}

func TestTopOutEndsMatch(t *testing.T) {
	m := testMatch(5)
	saver := &recordingSaver{}
	m.SetResultSaver(saver)

	m.Advance(100 * time.Millisecond)
	topOut(t, m.Engine(Player1))
	m.Advance(100 * time.Millisecond)

	result, ok := m.Result()
	if !ok || !m.Done() {
		t.Fatal("match not finished after top out")
	}
	if result.Winner != Player2 || result.Reason != MatchEndReasonTopOut {
		t.Errorf("winner=%d reason=%v, want player 2 by top out", result.Winner, result.Reason)
	}
	if result.Duration != 100*time.Millisecond {
		t.Errorf("duration = %v, want 100ms", result.Duration)
	}
	if len(saver.results) != 1 || saver.results[0].MatchID != m.ID() {
		t.Errorf("saver got %+v", saver.results)
	}

	m.Advance(time.Second)
	if m.Elapsed() != 100*time.Millisecond {
		t.Error("finished match kept advancing")
	}
}

func TestDoubleTopOutIsDraw(t *testing.T) {
	m := testMatch(8)
	topOut(t, m.Engine(Player1))
	topOut(t, m.Engine(Player2))
	m.Advance(time.Millisecond)

	result, ok := m.Result()
	if !ok {
		t.Fatal("match not finished")
	}
	if result.Reason != MatchEndReasonDoubleTopOut || !result.Draw() {
		t.Errorf("reason=%v winner=%d, want a double top out draw", result.Reason, result.Winner)
	}
}

func TestSaverErrorDoesNotBlockResult(t *testing.T) {
	m := testMatch(3)
	m.SetResultSaver(&recordingSaver{err: errors.New("disk full")})
	m.Cancel()
	result, ok := m.Result()
	if !ok || result.Reason != MatchEndReasonCancelled || !result.Draw() {
		t.Errorf("cancel result = %+v, done = %v", result, ok)
	}
}

func TestPauseTogglesBothPlayers(t *testing.T) {
	m := testMatch(3)
	m.PauseToggle()
	if !m.Engine(Player1).IsPaused() || !m.Engine(Player2).IsPaused() {
		t.Fatal("pause did not reach both engines")
	}
	m.Advance(time.Second)
	if m.Elapsed() != 0 {
		t.Error("paused match advanced")
	}
	m.PauseToggle()
	if m.Paused() || m.Engine(Player1).IsPaused() {
		t.Error("resume did not reach the engines")
	}
}

func TestResetReplaysSeed(t *testing.T) {
	m := testMatch(21)
	first := m.Engine(Player1).Snapshot().Next
	firstID := m.ID()
	topOut(t, m.Engine(Player2))
	m.Advance(time.Millisecond)
	if !m.Done() {
		t.Fatal("match not done")
	}

	m.Reset()
	m.Start()
	if m.Done() || m.Engine(Player2).IsGameOver() {
		t.Fatal("reset left the match finished")
	}
	if m.Seed() != 21 {
		t.Errorf("seed = %d, want 21", m.Seed())
	}
	if m.ID() == firstID {
		t.Errorf("replayed round kept match ID %s", firstID)
	}
	if diff := cmp.Diff(first, m.Engine(Player1).Snapshot().Next); diff != "" {
		t.Errorf("replayed queue differs (-want +got):\n%s", diff)
	}
}

func TestUnseededMatchPicksSharedSeed(t *testing.T) {
	m := testMatch(0)
	if m.Seed() == 0 {
		t.Fatal("round seed not chosen")
	}
	if m.Engine(Player1).Seed() != m.Engine(Player2).Seed() {
		t.Error("engines seeded differently")
	}
}
