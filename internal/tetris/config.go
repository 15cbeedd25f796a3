package tetris

import "time"

// Config holds the engine's rule and timing parameters.
type Config struct {
	Width          int           // Board columns
	Height         int           // Visible board rows
	PreviewCount   int           // Length of the next-piece queue
	BaseInterval   time.Duration // Automatic fall interval at level 1
	SoftDropFactor int           // Fall interval divisor while soft drop is held
	LockDelay      time.Duration // Grace period once grounded
	LockMoves      int           // Moves/rotations allowed while grounded
	ClearDelay     time.Duration // Line-clear animation pause; 0 clears at once
	RotateCooldown time.Duration // Rotations closer together than this are dropped
	StartLevel     int           // Level after reset
	LinesPerLevel  int           // Lines needed per level increase
}

// DefaultConfig returns the standard 10x20 rule set.
func DefaultConfig() Config {
	return Config{
		Width:          10,
		Height:         20,
		PreviewCount:   3,
		BaseInterval:   time.Second,
		SoftDropFactor: 20,
		LockDelay:      500 * time.Millisecond,
		LockMoves:      15,
		ClearDelay:     300 * time.Millisecond,
		RotateCooldown: 50 * time.Millisecond,
		StartLevel:     1,
		LinesPerLevel:  10,
	}
}

// withDefaults replaces values that must be positive with the defaults.
// Zero delays are legal and kept.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.PreviewCount <= 0 {
		c.PreviewCount = d.PreviewCount
	}
	if c.BaseInterval <= 0 {
		c.BaseInterval = d.BaseInterval
	}
	if c.SoftDropFactor <= 0 {
		c.SoftDropFactor = d.SoftDropFactor
	}
	if c.LockMoves <= 0 {
		c.LockMoves = d.LockMoves
	}
	if c.StartLevel <= 0 {
		c.StartLevel = d.StartLevel
	}
	if c.LinesPerLevel <= 0 {
		c.LinesPerLevel = d.LinesPerLevel
	}
	if c.LockDelay < 0 {
		c.LockDelay = 0
	}
	if c.ClearDelay < 0 {
		c.ClearDelay = 0
	}
	if c.RotateCooldown < 0 {
		c.RotateCooldown = 0
	}
	return c
}
