package tetris

// Offset is a kick translation applied to a piece anchor. Row grows downward.
type Offset struct {
	Row, Col int
}

// Rotation is a requested turn direction.
type Rotation int

const (
	RotateCW  Rotation = 1
	RotateCCW Rotation = -1
	Rotate180 Rotation = 2
)

// Candidate is one rotation attempt: the rotated piece and the kick to try.
type Candidate struct {
	Piece  Piece
	Offset Offset
}

type transition struct {
	from, to int
}

// Kick tables for J, L, S, T, Z keyed by orientation transition.
var kicksJLSTZ = map[transition][]Offset{
	{0, 1}: {{0, 0}, {0, -1}, {1, -1}, {-2, 0}, {-2, -1}},
	{1, 0}: {{0, 0}, {0, 1}, {-1, 1}, {2, 0}, {2, 1}},
	{1, 2}: {{0, 0}, {0, 1}, {-1, 1}, {2, 0}, {2, 1}},
	{2, 1}: {{0, 0}, {0, -1}, {1, -1}, {-2, 0}, {-2, -1}},
	{2, 3}: {{0, 0}, {0, 1}, {1, 1}, {-2, 0}, {-2, 1}},
	{3, 2}: {{0, 0}, {0, -1}, {-1, -1}, {2, 0}, {2, -1}},
	{3, 0}: {{0, 0}, {0, -1}, {-1, -1}, {2, 0}, {2, -1}},
	{0, 3}: {{0, 0}, {0, 1}, {1, 1}, {-2, 0}, {-2, 1}},
}

var kicksI = map[transition][]Offset{
	{0, 1}: {{0, 0}, {0, -2}, {0, 1}, {1, -2}, {-2, 1}},
	{1, 0}: {{0, 0}, {0, 2}, {0, -1}, {-1, 2}, {2, -1}},
	{1, 2}: {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
	{2, 1}: {{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{2, 3}: {{0, 0}, {0, 2}, {0, -1}, {2, 2}, {-1, -1}},
	{3, 2}: {{0, 0}, {0, -2}, {0, 1}, {-2, -2}, {1, 1}},
	{3, 0}: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
	{0, 3}: {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
}

var kicksO = []Offset{{0, 0}}

// kicks returns the ordered kick list for a quarter turn of kind k.
func kicks(k Kind, from, to int) []Offset {
	switch k {
	case KindO:
		return kicksO
	case KindI:
		return kicksI[transition{from, to}]
	default:
		return kicksJLSTZ[transition{from, to}]
	}
}

// RotationCandidates lists the attempts for turning p in direction dir, in
// the order they must be tried. The caller commits to the first candidate
// whose shape fits at anchor+offset and otherwise leaves the piece unchanged.
//
// A half turn has no table of its own: it is every combination of two
// clockwise quarter turns, with the two kicks summed.
func RotationCandidates(p Piece, dir Rotation) []Candidate {
	switch dir {
	case RotateCW, RotateCCW:
		return quarterTurn(p, int(dir))
	case Rotate180:
		first := quarterTurn(p, 1)
		out := make([]Candidate, 0, len(first)*len(first))
		for _, a := range first {
			for _, b := range quarterTurn(a.Piece, 1) {
				out = append(out, Candidate{
					Piece:  b.Piece,
					Offset: Offset{Row: a.Offset.Row + b.Offset.Row, Col: a.Offset.Col + b.Offset.Col},
				})
			}
		}
		return out
	default:
		return nil
	}
}

func quarterTurn(p Piece, step int) []Candidate {
	target := p.WithOrientation(p.Orientation + step)
	offsets := kicks(p.Kind, p.Orientation, target.Orientation)
	out := make([]Candidate, len(offsets))
	for i, off := range offsets {
		out[i] = Candidate{Piece: target, Offset: off}
	}
	return out
}
