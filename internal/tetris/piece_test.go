package tetris

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEveryOrientationHasFourCells(t *testing.T) {
	for _, k := range Kinds {
		for o := 0; o < 4; o++ {
			s := NewPiece(k).WithOrientation(o).Shape()
			n := 0
			for r := 0; r < s.Size; r++ {
				for c := 0; c < s.Size; c++ {
					if s.Filled(r, c) {
						n++
					}
				}
			}
			if n != 4 {
				t.Errorf("%v orientation %d: %d cells, want 4", k, o, n)
			}
		}
	}
}

func TestClockwiseEqualsThreeCounterClockwise(t *testing.T) {
	for _, k := range Kinds {
		for o := 0; o < 4; o++ {
			s := NewPiece(k).WithOrientation(o).Shape()
			cw := s.rotateCW()
			ccw := s.rotateCCW().rotateCCW().rotateCCW()
			if diff := cmp.Diff(cw, ccw); diff != "" {
				t.Errorf("%v orientation %d mismatch (-cw +3ccw):\n%s", k, o, diff)
			}
		}
	}
}

func TestFourTurnsRestoreShape(t *testing.T) {
	for _, k := range Kinds {
		base := NewPiece(k).Shape()
		s := base
		for range 4 {
			s = s.rotateCW()
		}
		if diff := cmp.Diff(base, s); diff != "" {
			t.Errorf("%v after four turns (-want +got):\n%s", k, diff)
		}
	}
}

func TestWithOrientationWraps(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0}, {3, 3}, {4, 0}, {5, 1}, {-1, 3}, {-6, 2},
	}
	for _, tt := range tests {
		if got := NewPiece(KindT).WithOrientation(tt.in).Orientation; got != tt.want {
			t.Errorf("WithOrientation(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	want := "IJLOSTZ"
	got := ""
	for _, k := range Kinds {
		got += k.String()
	}
	if got != want {
		t.Errorf("kinds = %q, want %q", got, want)
	}
}
