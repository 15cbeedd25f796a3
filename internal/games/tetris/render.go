package tetris

import (
	"fmt"

	"github.com/vovakirdan/denris/internal/core"
	engine "github.com/vovakirdan/denris/internal/tetris"
)

// Visual characters for rendering
const (
	BlockChar = '█'
	GhostChar = '░'
	ClearChar = '▒'
	EmptyChar = '·'
)

const (
	panelWidth = 12
	panelGap   = 1
)

// kindColors maps board cells to screen colors. Index NumKinds is garbage.
var kindColors = [engine.NumKinds + 1]core.Color{
	engine.KindI:    core.ColorCyan,
	engine.KindJ:    core.ColorBlue,
	engine.KindL:    core.ColorOrange,
	engine.KindO:    core.ColorYellow,
	engine.KindS:    core.ColorGreen,
	engine.KindT:    core.ColorMagenta,
	engine.KindZ:    core.ColorRed,
	engine.NumKinds: core.ColorGray,
}

func cellColor(c engine.Cell) core.Color {
	if c < 0 || int(c) >= len(kindColors) {
		return core.ColorDefault
	}
	return kindColors[c]
}

// fieldSize returns the screen footprint of one playfield: the framed board
// plus its side panel.
func fieldSize(s engine.Snapshot) (w, h int) {
	return s.Width*2 + 2 + panelGap + panelWidth, s.Height + 2
}

// drawField renders a board, its frame and side panel with the top-left
// corner at (x, y).
func drawField(dst *core.Screen, s engine.Snapshot, x, y int, title string) {
	boardW := s.Width*2 + 2
	dst.DrawBox(core.NewRect(x, y, boardW, s.Height+2))
	if title != "" {
		dst.DrawText(x+2, y, " "+title+" ")
	}

	for row := 0; row < s.Height; row++ {
		sy := y + 1 + row
		clearing := s.Clearing(row)
		for col := 0; col < s.Width; col++ {
			sx := x + 1 + col*2
			cell := s.Board[row][col]
			switch {
			case clearing:
				drawCell(dst, sx, sy, ClearChar, core.ColorWhite)
			case s.ActiveAt(row, col):
				drawCell(dst, sx, sy, BlockChar, cellColor(s.Active.Color()))
			case cell.Filled():
				drawCell(dst, sx, sy, BlockChar, cellColor(cell))
			case s.GhostAt(row, col):
				drawCell(dst, sx, sy, GhostChar, cellColor(s.Active.Color()))
			default:
				dst.SetColored(sx, sy, ' ', core.ColorDim)
				dst.SetColored(sx+1, sy, EmptyChar, core.ColorDim)
			}
		}
	}

	drawPanel(dst, s, x+boardW+panelGap, y)

	switch {
	case s.GameOver:
		drawBanner(dst, x, y, boardW, s.Height, "GAME OVER")
	case s.Paused:
		drawBanner(dst, x, y, boardW, s.Height, "PAUSED")
	}
}

func drawCell(dst *core.Screen, x, y int, r rune, c core.Color) {
	dst.SetColored(x, y, r, c)
	dst.SetColored(x+1, y, r, c)
}

func drawPanel(dst *core.Screen, s engine.Snapshot, x, y int) {
	dst.DrawTextColored(x, y, "HOLD", core.ColorWhite)
	if s.HasHeld {
		drawPreview(dst, s.Held, x, y+1, !s.CanHold)
	}

	dst.DrawTextColored(x, y+4, "NEXT", core.ColorWhite)
	for i, p := range s.Next {
		drawPreview(dst, p, x, y+5+i*3, false)
	}

	sy := y + 6 + len(s.Next)*3
	dst.DrawTextColored(x, sy, "SCORE", core.ColorWhite)
	dst.DrawText(x, sy+1, fmt.Sprintf("%d", s.Score))
	dst.DrawText(x, sy+2, fmt.Sprintf("LEVEL %d", s.Level))
	dst.DrawText(x, sy+3, fmt.Sprintf("LINES %d", s.Lines))
	if s.PendingGarbage > 0 {
		dst.DrawTextColored(x, sy+4, fmt.Sprintf("INCOMING %d", s.PendingGarbage), core.ColorRed)
	}
}

// drawPreview draws a piece's occupied cells, trimmed to their bounding box.
func drawPreview(dst *core.Screen, p engine.Piece, x, y int, dim bool) {
	shape := p.Shape()
	minR, minC := shape.Size, shape.Size
	for r := 0; r < shape.Size; r++ {
		for c := 0; c < shape.Size; c++ {
			if shape.Filled(r, c) {
				minR = min(minR, r)
				minC = min(minC, c)
			}
		}
	}
	color := cellColor(p.Color())
	if dim {
		color = core.ColorDim
	}
	for r := 0; r < shape.Size; r++ {
		for c := 0; c < shape.Size; c++ {
			if shape.Filled(r, c) {
				drawCell(dst, x+(c-minC)*2, y+r-minR, BlockChar, color)
			}
		}
	}
}

// drawBanner centres text on the board over a blanked three-row band.
func drawBanner(dst *core.Screen, x, y, w, h int, text string) {
	ty := y + h/2
	tx := x + (w-len(text)-2)/2
	dst.FillRect(core.NewRect(tx, ty-1, len(text)+2, 3), ' ')
	dst.DrawTextColored(tx, ty, " "+text+" ", core.ColorYellow)
}

// drawTooSmall reports the minimum terminal size instead of a clipped board.
func drawTooSmall(dst *core.Screen, needW, needH int) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, "Terminal too small")
	dst.DrawTextCentered(y, fmt.Sprintf("need %dx%d, have %dx%d", needW, needH, dst.Width(), dst.Height()))
}
