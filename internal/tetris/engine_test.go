package tetris

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ClearDelay = 0
	cfg.RotateCooldown = 0
	return cfg
}

func startedEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e := NewEngine(cfg, 42)
	e.Start()
	if !e.Snapshot().HasActive {
		t.Fatal("no active piece after Start")
	}
	return e
}

// setActive replaces the active piece, keeping the engine's bookkeeping.
func (e *Engine) setActive(p Piece, col int) {
	e.place(p)
	e.pos.Col = col
}

func TestStartSpawnsFromQueue(t *testing.T) {
	e := NewEngine(testConfig(), 42)
	before := e.Snapshot()
	if before.HasActive || before.State != StateSpawning {
		t.Fatalf("engine active before Start: %+v", before.State)
	}
	e.Start()
	after := e.Snapshot()
	if after.Active != before.Next[0] {
		t.Errorf("active = %v, want queue head %v", after.Active, before.Next[0])
	}
	if len(after.Next) != 3 {
		t.Errorf("preview length = %d, want 3", len(after.Next))
	}
	if diff := cmp.Diff(before.Next[1:], after.Next[:2]); diff != "" {
		t.Errorf("queue did not shift (-want +got):\n%s", diff)
	}
	wantCol := (10 - after.Active.Shape().Size) / 2
	if after.Position != (Position{Row: 0, Col: wantCol}) {
		t.Errorf("spawn position = %+v, want row 0 col %d", after.Position, wantCol)
	}
}

func TestGravity(t *testing.T) {
	e := startedEngine(t, testConfig())
	e.Advance(999 * time.Millisecond)
	if row := e.Snapshot().Position.Row; row != 0 {
		t.Fatalf("row = %d before first fall, want 0", row)
	}
	e.Advance(time.Millisecond)
	if row := e.Snapshot().Position.Row; row != 1 {
		t.Errorf("row = %d after one interval, want 1", row)
	}
}

func TestSoftDropSpeedsUpGravity(t *testing.T) {
	e := startedEngine(t, testConfig())
	e.SoftDrop(true)
	e.Advance(50 * time.Millisecond)
	if row := e.Snapshot().Position.Row; row != 1 {
		t.Errorf("row = %d after 50ms of soft drop, want 1", row)
	}
	e.SoftDrop(false)
	if e.SoftDropping() {
		t.Error("soft drop still held")
	}
}

func TestHigherLevelFallsFaster(t *testing.T) {
	cfg := testConfig()
	cfg.StartLevel = 4
	e := startedEngine(t, cfg)
	e.Advance(250 * time.Millisecond)
	if row := e.Snapshot().Position.Row; row != 1 {
		t.Errorf("row = %d after 250ms at level 4, want 1", row)
	}
}

func TestSingleLineClear(t *testing.T) {
	e := startedEngine(t, testConfig())
	fillRow(e.board, 19, 3, 4, 5, 6)
	e.setActive(NewPiece(KindI), 3)
	e.HardDrop()

	s := e.Snapshot()
	if s.Lines != 1 {
		t.Errorf("lines = %d, want 1", s.Lines)
	}
	if s.Score != 40 {
		t.Errorf("score = %d, want 40", s.Score)
	}
	for c := 0; c < 10; c++ {
		if s.Board[19][c].Filled() {
			t.Fatalf("bottom row not cleared: %v", s.Board[19])
		}
	}
	if s.PiecesPlaced != 1 {
		t.Errorf("pieces placed = %d, want 1", s.PiecesPlaced)
	}
}

func TestTetrisScoresAndAttacks(t *testing.T) {
	cfg := testConfig()
	cfg.StartLevel = 2
	e := startedEngine(t, cfg)
	var sent []int
	e.SetAttackSink(func(n int) { sent = append(sent, n) })
	for r := 16; r < 20; r++ {
		fillRow(e.board, r, 9)
	}
	// Vertical I occupies column 2 of its box.
	e.setActive(NewPiece(KindI).WithOrientation(1), 7)
	e.HardDrop()

	s := e.Snapshot()
	if s.Lines != 4 || s.Score != 2400 {
		t.Errorf("lines=%d score=%d, want 4 and 2400", s.Lines, s.Score)
	}
	if diff := cmp.Diff([]int{4}, sent); diff != "" {
		t.Errorf("attack (-want +got):\n%s", diff)
	}
	if s.AttackSent != 4 {
		t.Errorf("attack sent = %d, want 4", s.AttackSent)
	}
}

func TestScoringTable(t *testing.T) {
	tests := []struct {
		lines, level, score, attack int
	}{
		{0, 1, 0, 0},
		{1, 1, 40, 0},
		{2, 1, 100, 1},
		{3, 3, 900, 2},
		{4, 2, 2400, 4},
	}
	for _, tt := range tests {
		if got := LineScore(tt.lines, tt.level); got != tt.score {
			t.Errorf("LineScore(%d, %d) = %d, want %d", tt.lines, tt.level, got, tt.score)
		}
		if got := AttackFor(tt.lines); got != tt.attack {
			t.Errorf("AttackFor(%d) = %d, want %d", tt.lines, got, tt.attack)
		}
	}
}

func TestLevelUpEveryTenLines(t *testing.T) {
	e := startedEngine(t, testConfig())
	for i := 0; i < 10; i++ {
		fillRow(e.board, 19, 3, 4, 5, 6)
		e.setActive(NewPiece(KindI), 3)
		e.HardDrop()
	}
	s := e.Snapshot()
	if s.Lines != 10 || s.Level != 2 {
		t.Errorf("lines=%d level=%d, want 10 and 2", s.Lines, s.Level)
	}
	if s.Score != 400 {
		t.Errorf("score = %d, want 400", s.Score)
	}
}

func TestClearAnimationDelaysScoring(t *testing.T) {
	cfg := testConfig()
	cfg.ClearDelay = 300 * time.Millisecond
	e := startedEngine(t, cfg)
	fillRow(e.board, 19, 3, 4, 5, 6)
	e.setActive(NewPiece(KindI), 3)
	e.HardDrop()

	s := e.Snapshot()
	if s.State != StateClearing || s.Score != 0 {
		t.Fatalf("state=%v score=%d, want clearing and 0", s.State, s.Score)
	}
	if !s.Clearing(19) {
		t.Errorf("row 19 not marked as clearing: %v", s.ClearingRows)
	}
	e.HardDrop()
	if e.PiecesPlaced() != 1 {
		t.Error("hard drop accepted during clear animation")
	}

	e.Advance(300 * time.Millisecond)
	s = e.Snapshot()
	if s.Score != 40 || s.State != StateFalling || !s.HasActive {
		t.Errorf("after clear: score=%d state=%v active=%v", s.Score, s.State, s.HasActive)
	}
}

// groundO places an O piece resting on the floor with lock delay running.
func groundO(t *testing.T, e *Engine, col int) {
	t.Helper()
	e.setActive(NewPiece(KindO), col)
	for e.MoveDown() {
	}
	if e.State() != StateLockPending {
		t.Fatalf("state = %v, want lock-pending", e.State())
	}
}

func TestLockDelayExpires(t *testing.T) {
	e := startedEngine(t, testConfig())
	groundO(t, e, 4)
	e.Advance(499 * time.Millisecond)
	if e.PiecesPlaced() != 0 {
		t.Fatal("locked before lock delay elapsed")
	}
	e.Advance(time.Millisecond)
	if e.PiecesPlaced() != 1 {
		t.Fatal("not locked after lock delay")
	}
	if !e.Snapshot().Board[19][4].Filled() {
		t.Error("O not written to the floor")
	}
}

func TestLockAfterFifteenMoves(t *testing.T) {
	e := startedEngine(t, testConfig())
	groundO(t, e, 4)
	for i := 0; i < 14; i++ {
		if i%2 == 0 {
			e.MoveLeft()
		} else {
			e.MoveRight()
		}
	}
	if e.PiecesPlaced() != 0 {
		t.Fatal("locked before the move budget ran out")
	}
	e.MoveLeft()
	if e.PiecesPlaced() != 1 {
		t.Error("fifteenth grounded move did not lock")
	}
}

func TestMovingOffLedgeCancelsLockDelay(t *testing.T) {
	e := startedEngine(t, testConfig())
	e.board.Set(19, 4, Garbage)
	e.board.Set(19, 5, Garbage)
	groundO(t, e, 4)
	e.MoveLeft()
	if e.State() != StateLockPending {
		t.Fatalf("still supported, state = %v", e.State())
	}
	e.MoveLeft()
	if e.State() != StateFalling {
		t.Errorf("off the ledge, state = %v, want falling", e.State())
	}
}

func TestRotationCooldown(t *testing.T) {
	cfg := testConfig()
	cfg.RotateCooldown = 50 * time.Millisecond
	e := startedEngine(t, cfg)
	e.setActive(NewPiece(KindT), 3)
	if !e.RotateClockwise() {
		t.Fatal("first rotation rejected")
	}
	if e.RotateClockwise() {
		t.Error("rotation inside cooldown accepted")
	}
	e.Advance(50 * time.Millisecond)
	if !e.RotateCounterClockwise() {
		t.Error("rotation after cooldown rejected")
	}
	if got := e.Snapshot().Active.Orientation; got != 0 {
		t.Errorf("orientation = %d, want 0", got)
	}
}

func TestRotate180(t *testing.T) {
	e := startedEngine(t, testConfig())
	e.setActive(NewPiece(KindT), 3)
	e.MoveDown()
	e.MoveDown()
	if !e.Rotate180() {
		t.Fatal("half turn rejected in open space")
	}
	if got := e.Snapshot().Active.Orientation; got != 2 {
		t.Errorf("orientation = %d, want 2", got)
	}
}

func TestHold(t *testing.T) {
	e := startedEngine(t, testConfig())
	first := e.Snapshot()

	if !e.Hold() {
		t.Fatal("first hold rejected")
	}
	s := e.Snapshot()
	if !s.HasHeld || s.Held.Kind != first.Active.Kind {
		t.Errorf("held = %v, want %v", s.Held, first.Active)
	}
	if s.Active != first.Next[0] {
		t.Errorf("active = %v, want %v", s.Active, first.Next[0])
	}
	if s.CanHold || e.Hold() {
		t.Error("second hold in the same turn allowed")
	}

	e.HardDrop()
	if !e.Snapshot().CanHold {
		t.Fatal("hold not re-enabled after lock")
	}
	e.RotateClockwise()
	e.Hold()
	s = e.Snapshot()
	if s.Active != NewPiece(first.Active.Kind) {
		t.Errorf("swapped in %v, want %v in spawn orientation", s.Active, first.Active.Kind)
	}
	if s.Position.Row != 0 {
		t.Errorf("swapped piece at row %d, want 0", s.Position.Row)
	}
}

func TestGarbageAppliedAtSpawn(t *testing.T) {
	e := NewEngine(testConfig(), 3)
	e.ReceiveGarbage(1)
	e.ReceiveGarbage(1)
	if e.PendingGarbage() != 2 {
		t.Fatalf("pending = %d, want 2", e.PendingGarbage())
	}
	e.Start()

	s := e.Snapshot()
	if s.PendingGarbage != 0 {
		t.Errorf("pending = %d after spawn, want 0", s.PendingGarbage)
	}
	for _, r := range []int{18, 19} {
		holes := 0
		for _, c := range s.Board[r] {
			switch c {
			case Empty:
				holes++
			case Garbage:
			default:
				t.Errorf("row %d holds non-garbage cell %d", r, c)
			}
		}
		if holes != 1 {
			t.Errorf("row %d has %d holes, want 1", r, holes)
		}
	}
	if s.Position.Row != 0 {
		t.Errorf("spawn row = %d, want 0", s.Position.Row)
	}
}

func TestGarbageTopOut(t *testing.T) {
	e := startedEngine(t, testConfig())
	e.board.Set(1, 0, Garbage)
	e.ReceiveGarbage(2)
	e.HardDrop()
	if !e.IsGameOver() {
		t.Error("garbage pushing blocks off the top did not end the game")
	}
}

func TestSpawnBlockedTopsOut(t *testing.T) {
	e := NewEngine(testConfig(), 9)
	for c := 3; c <= 6; c++ {
		e.board.Set(0, c, Garbage)
		e.board.Set(1, c, Garbage)
	}
	e.Start()
	if !e.IsGameOver() {
		t.Fatal("blocked spawn did not end the game")
	}

	e.MoveLeft()
	e.PauseToggle()
	if e.IsPaused() {
		t.Error("pause toggled after game over")
	}
	e.Advance(time.Second)
}

func TestGravityLocksPieceGroundedAboveBoard(t *testing.T) {
	e := startedEngine(t, testConfig())
	fillRow(e.board, 2, 9)
	// Vertical I with its top two cells above the visible rows, resting on row 2.
	e.setActive(NewPiece(KindI).WithOrientation(1), 4)
	e.pos.Row = -2
	if !e.grounded() {
		t.Fatal("piece not grounded")
	}

	e.Advance(time.Second)
	s := e.Snapshot()
	if s.PiecesPlaced != 1 {
		t.Errorf("pieces placed = %d, want 1", s.PiecesPlaced)
	}
	if !s.GameOver {
		t.Errorf("lock above the board did not top out, state %v at %+v", s.State, s.Position)
	}
}

func TestSoftDropReleaseWhilePaused(t *testing.T) {
	e := startedEngine(t, testConfig())
	e.SoftDrop(true)
	e.PauseToggle()
	e.SoftDrop(false)
	if e.SoftDropping() {
		t.Fatal("release ignored while paused")
	}
	e.SoftDrop(true)
	if e.SoftDropping() {
		t.Error("soft drop engaged while paused")
	}

	e.PauseToggle()
	e.Advance(999 * time.Millisecond)
	if row := e.Snapshot().Position.Row; row != 0 {
		t.Errorf("row = %d after resume, want normal gravity", row)
	}
}

func TestPauseFreezesGame(t *testing.T) {
	e := startedEngine(t, testConfig())
	e.PauseToggle()
	e.Advance(5 * time.Second)
	if e.MoveLeft() {
		t.Error("move accepted while paused")
	}
	if row := e.Snapshot().Position.Row; row != 0 {
		t.Errorf("piece fell while paused, row %d", row)
	}
	e.PauseToggle()
	e.Advance(time.Second)
	if row := e.Snapshot().Position.Row; row != 1 {
		t.Errorf("row = %d after resume, want 1", row)
	}
}

func TestResetFromGameOver(t *testing.T) {
	e := NewEngine(testConfig(), 11)
	first := e.Snapshot().Next
	fillRow(e.board, 0)
	fillRow(e.board, 1)
	e.Start()
	if !e.IsGameOver() {
		t.Fatal("setup did not top out")
	}

	e.Reset()
	s := e.Snapshot()
	if s.GameOver || s.Score != 0 || s.Lines != 0 || s.Level != 1 || s.HasHeld {
		t.Errorf("state not reset: %+v", s)
	}
	for r, row := range s.Board {
		for _, c := range row {
			if c.Filled() {
				t.Fatalf("row %d not empty after reset", r)
			}
		}
	}
	if diff := cmp.Diff(first, s.Next); diff != "" {
		t.Errorf("seeded reset changed the queue (-want +got):\n%s", diff)
	}
	e.Start()
	if e.IsGameOver() || !e.Snapshot().HasActive {
		t.Error("no playable piece after reset")
	}
}

func TestSameSeedSameGame(t *testing.T) {
	play := func() Snapshot {
		e := NewEngine(testConfig(), 2024)
		e.Start()
		for i := 0; i < 12; i++ {
			if i%3 == 0 {
				e.MoveLeft()
			}
			e.RotateClockwise()
			e.HardDrop()
			e.Advance(100 * time.Millisecond)
		}
		return e.Snapshot()
	}
	if diff := cmp.Diff(play(), play()); diff != "" {
		t.Errorf("runs diverged (-a +b):\n%s", diff)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	e := startedEngine(t, testConfig())
	s := e.Snapshot()
	s.Board[19][0] = Garbage
	s.Next[0] = NewPiece(KindZ)
	if e.Snapshot().Board[19][0].Filled() {
		t.Error("snapshot board aliases the engine")
	}
}

func TestGhostMarksLandingRow(t *testing.T) {
	e := startedEngine(t, testConfig())
	e.setActive(NewPiece(KindO), 4)
	s := e.Snapshot()
	if s.Ghost != (Position{Row: 18, Col: 4}) {
		t.Errorf("ghost = %+v, want row 18 col 4", s.Ghost)
	}
	if !s.GhostAt(19, 5) || s.GhostAt(19, 6) {
		t.Error("GhostAt does not match the O footprint")
	}
	if !s.ActiveAt(0, 4) {
		t.Error("ActiveAt(0, 4) = false")
	}
}
