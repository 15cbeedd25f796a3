package tetris

// Snapshot is a read-only copy of everything a renderer needs. Mutating it
// never affects the engine.
type Snapshot struct {
	Width  int
	Height int
	Board  [][]Cell

	Active    Piece
	HasActive bool
	Position  Position
	Ghost     Position

	Held    Piece
	HasHeld bool
	CanHold bool
	Next    []Piece

	Score          int
	Level          int
	Lines          int
	PiecesPlaced   int
	AttackSent     int
	PendingGarbage int

	State        State
	Paused       bool
	GameOver     bool
	ClearingRows []int
}

// Snapshot captures the current game state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Width:          e.board.Width(),
		Height:         e.board.Height(),
		Board:          e.board.Rows(),
		Active:         e.piece,
		HasActive:      e.hasPiece,
		Position:       e.pos,
		Held:           e.held,
		HasHeld:        e.hasHeld,
		CanHold:        e.canHold,
		Next:           append([]Piece(nil), e.queue...),
		Score:          e.score,
		Level:          e.level,
		Lines:          e.lines,
		PiecesPlaced:   e.placed,
		AttackSent:     e.sent,
		PendingGarbage: e.pending,
		State:          e.state,
		Paused:         e.paused,
		GameOver:       e.state == StateGameOver,
		ClearingRows:   append([]int(nil), e.clearing...),
	}
	if e.hasPiece {
		s.Ghost = Position{Row: e.board.DropRow(e.pos, e.piece.Shape()), Col: e.pos.Col}
	}
	return s
}

// Clearing reports whether row is part of the running clear animation.
func (s Snapshot) Clearing(row int) bool {
	for _, r := range s.ClearingRows {
		if r == row {
			return true
		}
	}
	return false
}

// ActiveAt reports whether the active piece covers (row, col).
func (s Snapshot) ActiveAt(row, col int) bool {
	return s.HasActive && covers(s.Active, s.Position, row, col)
}

// GhostAt reports whether the landing preview covers (row, col).
func (s Snapshot) GhostAt(row, col int) bool {
	return s.HasActive && covers(s.Active, s.Ghost, row, col)
}

func covers(p Piece, pos Position, row, col int) bool {
	r, c := row-pos.Row, col-pos.Col
	return p.Shape().Filled(r, c)
}

func (e *Engine) Score() int { return e.score }
func (e *Engine) Level() int { return e.level }
func (e *Engine) Lines() int { return e.lines }
func (e *Engine) PiecesPlaced() int { return e.placed }
func (e *Engine) AttackSent() int { return e.sent }
func (e *Engine) PendingGarbage() int { return e.pending }
func (e *Engine) State() State { return e.state }
func (e *Engine) IsPaused() bool { return e.paused }
func (e *Engine) IsGameOver() bool { return e.state == StateGameOver }
