package tetris

import "testing"

func TestRotationCandidateCounts(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		dir  Rotation
		want int
	}{
		{"T clockwise", KindT, RotateCW, 5},
		{"I counter-clockwise", KindI, RotateCCW, 5},
		{"O clockwise", KindO, RotateCW, 1},
		{"T half turn", KindT, Rotate180, 25},
		{"O half turn", KindO, Rotate180, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RotationCandidates(NewPiece(tt.kind), tt.dir)
			if len(got) != tt.want {
				t.Fatalf("got %d candidates, want %d", len(got), tt.want)
			}
			if got[0].Offset != (Offset{}) {
				t.Errorf("first offset = %+v, want zero", got[0].Offset)
			}
		})
	}
}

func TestRotationCandidateOrientation(t *testing.T) {
	p := NewPiece(KindJ)
	tests := []struct {
		dir  Rotation
		want int
	}{
		{RotateCW, 1},
		{RotateCCW, 3},
		{Rotate180, 2},
	}
	for _, tt := range tests {
		for _, c := range RotationCandidates(p, tt.dir) {
			if c.Piece.Orientation != tt.want {
				t.Errorf("dir %d: orientation %d, want %d", tt.dir, c.Piece.Orientation, tt.want)
			}
		}
	}
}

func TestJLSTZKicksAreReversible(t *testing.T) {
	for tr, offsets := range kicksJLSTZ {
		back := kicksJLSTZ[transition{tr.to, tr.from}]
		for i, off := range offsets {
			if back[i] != (Offset{Row: -off.Row, Col: -off.Col}) {
				t.Errorf("%d>%d kick %d = %+v, reverse = %+v", tr.from, tr.to, i, off, back[i])
			}
		}
	}
}

func TestWallKickOffLeftWall(t *testing.T) {
	b := NewBoard(10, 20)
	// Vertical I hugging the left wall; the plain turn back to horizontal
	// would stick out past column 0.
	p := NewPiece(KindI).WithOrientation(3)
	pos := Position{Row: 5, Col: -1}
	if !b.IsValid(pos, p.Shape()) {
		t.Fatal("start position invalid")
	}
	for _, c := range RotationCandidates(p, RotateCW) {
		next := Position{Row: pos.Row + c.Offset.Row, Col: pos.Col + c.Offset.Col}
		if b.IsValid(next, c.Piece.Shape()) {
			if c.Offset == (Offset{}) {
				t.Fatal("unkicked rotation should not fit")
			}
			return
		}
	}
	t.Fatal("no kick fits")
}
