package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorCyan)
	cell := s.GetCell(5, 5)
	if cell.Rune != 'X' || cell.Color != ColorCyan {
		t.Errorf("GetCell(5, 5) = %+v, expected X in cyan", cell)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawBoxAndText(t *testing.T) {
	s := NewScreen(12, 4)
	s.DrawBox(NewRect(0, 0, 12, 4))
	s.DrawText(2, 1, "Score")

	if got := s.Row(0); got != "┌──────────┐" {
		t.Errorf("top row = %q", got)
	}
	if !strings.Contains(s.Row(1), "Score") {
		t.Errorf("row 1 = %q, expected it to contain Score", s.Row(1))
	}
	if got := s.Row(3); got != "└──────────┘" {
		t.Errorf("bottom row = %q", got)
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(1, 1, '#')
	s.Resize(6, 3)

	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("Resize() = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize should clear content")
	}
}

func TestPlayerOpponent(t *testing.T) {
	if Player1.Opponent() != Player2 || Player2.Opponent() != Player1 {
		t.Error("Opponent() should swap player slots")
	}
}

func TestMultiInputFrame(t *testing.T) {
	m := NewMultiInputFrame()
	m.Set(Player2, ActionHold)

	if !m.Player(Player2).Has(ActionHold) {
		t.Error("Player2 should have Hold")
	}
	if m.Player(Player1).Has(ActionHold) {
		t.Error("Player1 should not have Hold")
	}
	if !m.Has(ActionHold) {
		t.Error("Has should report an action from any player")
	}

	m.Clear()
	if m.Has(ActionHold) {
		t.Error("Clear should reset every player frame")
	}
}
