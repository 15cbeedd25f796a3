// Package tetris implements an authoritative falling-block puzzle engine:
// the seven-piece catalog, the bag randomizer, SRS rotation with wall kicks,
// the board collision model and the timing-driven game state machine.
// Rendering and input live elsewhere; the engine only exposes snapshots and
// accepts commands.
package tetris

// Kind enumerates the seven piece kinds.
type Kind uint8

const (
	KindI Kind = iota
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// NumKinds is the number of distinct piece kinds.
const NumKinds = 7

// Kinds lists every piece kind in catalog order.
var Kinds = [NumKinds]Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}

func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindO:
		return "O"
	case KindS:
		return "S"
	case KindT:
		return "T"
	case KindZ:
		return "Z"
	default:
		return "?"
	}
}

// Shape is a square occupancy matrix of size 2, 3 or 4.
// Cells outside Size x Size are always false.
type Shape struct {
	Size  int
	Cells [4][4]bool
}

// Filled reports whether the cell at shape row r, column c is occupied.
func (s Shape) Filled(r, c int) bool {
	if r < 0 || c < 0 || r >= s.Size || c >= s.Size {
		return false
	}
	return s.Cells[r][c]
}

// rotateCW returns the shape turned a quarter turn clockwise.
func (s Shape) rotateCW() Shape {
	out := Shape{Size: s.Size}
	n := s.Size
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			out.Cells[c][n-1-r] = s.Cells[r][c]
		}
	}
	return out
}

// rotateCCW returns the shape turned a quarter turn counter-clockwise.
func (s Shape) rotateCCW() Shape {
	out := Shape{Size: s.Size}
	n := s.Size
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			out.Cells[n-1-c][r] = s.Cells[r][c]
		}
	}
	return out
}

func parseShape(rows ...string) Shape {
	s := Shape{Size: len(rows)}
	for r, row := range rows {
		for c, ch := range row {
			s.Cells[r][c] = ch == '#'
		}
	}
	return s
}

var spawnShapes = [NumKinds]Shape{
	KindI: parseShape(
		"....",
		"####",
		"....",
		"....",
	),
	KindJ: parseShape(
		"#..",
		"###",
		"...",
	),
	KindL: parseShape(
		"..#",
		"###",
		"...",
	),
	KindO: parseShape(
		"##",
		"##",
	),
	KindS: parseShape(
		".##",
		"##.",
		"...",
	),
	KindT: parseShape(
		".#.",
		"###",
		"...",
	),
	KindZ: parseShape(
		"##.",
		".##",
		"...",
	),
}

// shapes holds every kind's four orientations, index 0 = spawn,
// each following index one clockwise step further.
var shapes = buildOrientations()

func buildOrientations() [NumKinds][4]Shape {
	var out [NumKinds][4]Shape
	for k, base := range spawnShapes {
		out[k][0] = base
		for o := 1; o < 4; o++ {
			out[k][o] = out[k][o-1].rotateCW()
		}
	}
	return out
}

// Piece is an immutable piece value: a kind in one orientation.
// Rotating produces a new Piece.
type Piece struct {
	Kind        Kind
	Orientation int // 0=spawn, 1=R, 2=180, 3=L
}

// NewPiece returns a piece of the given kind in spawn orientation.
func NewPiece(k Kind) Piece {
	return Piece{Kind: k}
}

// Shape returns the occupancy matrix for the piece's orientation.
func (p Piece) Shape() Shape {
	return shapes[p.Kind][p.Orientation&3]
}

// Color returns the board cell value the piece leaves when locked.
func (p Piece) Color() Cell {
	return Cell(p.Kind)
}

// WithOrientation returns the same kind at orientation o (mod 4).
func (p Piece) WithOrientation(o int) Piece {
	return Piece{Kind: p.Kind, Orientation: ((o % 4) + 4) % 4}
}

func (p Piece) String() string {
	return p.Kind.String()
}
