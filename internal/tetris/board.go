package tetris

// Cell is a board cell: Empty, a piece color (the locking piece's Kind) or Garbage.
type Cell int8

const (
	Empty   Cell = -1
	Garbage Cell = NumKinds
)

// Filled reports whether the cell holds a block.
func (c Cell) Filled() bool {
	return c != Empty
}

// Position is the anchor of a piece's bounding box on the board.
// Row may be negative while the piece is above the visible area.
type Position struct {
	Row, Col int
}

// Board is the fixed visible grid. Rows above row 0 are treated as always
// empty for collision purposes and are never stored.
type Board struct {
	width  int
	height int
	cells  [][]Cell
}

// NewBoard creates an empty board.
func NewBoard(width, height int) *Board {
	b := &Board{width: width, height: height}
	b.cells = make([][]Cell, height)
	for r := range b.cells {
		b.cells[r] = emptyRow(width)
	}
	return b
}

func emptyRow(width int) []Cell {
	row := make([]Cell, width)
	for c := range row {
		row[c] = Empty
	}
	return row
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of visible rows.
func (b *Board) Height() int { return b.height }

// At returns the cell at (row, col). Out-of-range coordinates read as Empty.
func (b *Board) At(row, col int) Cell {
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		return Empty
	}
	return b.cells[row][col]
}

// Set writes a cell. Out-of-range coordinates are ignored.
func (b *Board) Set(row, col int, c Cell) {
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		return
	}
	b.cells[row][col] = c
}

// Clear empties every cell.
func (b *Board) Clear() {
	for r := range b.cells {
		b.cells[r] = emptyRow(b.width)
	}
}

// Rows returns a deep copy of the grid, row 0 first.
func (b *Board) Rows() [][]Cell {
	out := make([][]Cell, b.height)
	for r, row := range b.cells {
		out[r] = append([]Cell(nil), row...)
	}
	return out
}

// IsValid is the single placement predicate: every occupied shape cell must
// lie within the columns, above the floor, and on an empty cell (rows < 0
// always count as empty).
func (b *Board) IsValid(pos Position, s Shape) bool {
	for r := 0; r < s.Size; r++ {
		for c := 0; c < s.Size; c++ {
			if !s.Cells[r][c] {
				continue
			}
			row, col := pos.Row+r, pos.Col+c
			if col < 0 || col >= b.width || row >= b.height {
				return false
			}
			if row >= 0 && b.cells[row][col].Filled() {
				return false
			}
		}
	}
	return true
}

// Lock writes the piece into the board. It reports true when any occupied
// cell ended above row 0, which is a top-out; those cells are not stored.
func (b *Board) Lock(p Piece, pos Position) (aboveTop bool) {
	s := p.Shape()
	color := p.Color()
	for r := 0; r < s.Size; r++ {
		for c := 0; c < s.Size; c++ {
			if !s.Cells[r][c] {
				continue
			}
			row, col := pos.Row+r, pos.Col+c
			if row < 0 {
				aboveTop = true
				continue
			}
			b.Set(row, col, color)
		}
	}
	return aboveTop
}

// CompletedRows returns the indices of every full row, top to bottom.
func (b *Board) CompletedRows() []int {
	var rows []int
	for r, row := range b.cells {
		full := true
		for _, c := range row {
			if !c.Filled() {
				full = false
				break
			}
		}
		if full {
			rows = append(rows, r)
		}
	}
	return rows
}

// RemoveRows deletes the given rows and prepends as many empty rows at the
// top. The remaining rows keep their relative order.
func (b *Board) RemoveRows(rows []int) {
	if len(rows) == 0 {
		return
	}
	drop := make(map[int]bool, len(rows))
	for _, r := range rows {
		if r >= 0 && r < b.height {
			drop[r] = true
		}
	}
	kept := make([][]Cell, 0, b.height)
	for r, row := range b.cells {
		if !drop[r] {
			kept = append(kept, row)
		}
	}
	fresh := make([][]Cell, 0, b.height)
	for range b.height - len(kept) {
		fresh = append(fresh, emptyRow(b.width))
	}
	b.cells = append(fresh, kept...)
}

// InjectGarbage pushes count garbage rows in from the bottom. Each row is
// filled with Garbage except one hole column chosen by hole(width). It
// reports true when any row pushed off the top held a block.
func (b *Board) InjectGarbage(count int, hole func(n int) int) (toppedOut bool) {
	if count <= 0 {
		return false
	}
	if count > b.height {
		// Garbage rows themselves would be pushed off the top.
		toppedOut = true
		count = b.height
	}
	for _, row := range b.cells[:count] {
		for _, c := range row {
			if c.Filled() {
				toppedOut = true
			}
		}
	}
	kept := b.cells[count:]
	cells := make([][]Cell, 0, b.height)
	cells = append(cells, kept...)
	for range count {
		row := make([]Cell, b.width)
		for c := range row {
			row[c] = Garbage
		}
		row[hole(b.width)] = Empty
		cells = append(cells, row)
	}
	b.cells = cells
	return toppedOut
}

// DropRow returns the lowest row the shape can reach by falling straight
// down from pos.
func (b *Board) DropRow(pos Position, s Shape) int {
	row := pos.Row
	for b.IsValid(Position{Row: row + 1, Col: pos.Col}, s) {
		row++
	}
	return row
}
