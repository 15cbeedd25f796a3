package config

import (
	"fmt"

	"github.com/vovakirdan/denris/internal/core"
)

// KeyBindings maps terminal key names (as Bubble Tea reports them, e.g.
// "a", "left", " " for space) to game actions.
type KeyBindings struct {
	Player1 PlayerKeys `yaml:"player1"`
	Player2 PlayerKeys `yaml:"player2"`
	Pause   []string   `yaml:"pause"`
	Restart []string   `yaml:"restart"`
	Quit    []string   `yaml:"quit"`
}

// PlayerKeys holds one player's piece controls.
type PlayerKeys struct {
	MoveLeft  []string `yaml:"move_left"`
	MoveRight []string `yaml:"move_right"`
	SoftDrop  []string `yaml:"soft_drop"`
	HardDrop  []string `yaml:"hard_drop"`
	RotateCW  []string `yaml:"rotate_cw"`
	RotateCCW []string `yaml:"rotate_ccw"`
	Rotate180 []string `yaml:"rotate_180"`
	Hold      []string `yaml:"hold"`
}

// Bindings lists the player's keys per action in display order.
func (p PlayerKeys) Bindings() []ActionKeys {
	return []ActionKeys{
		{core.ActionLeft, p.MoveLeft},
		{core.ActionRight, p.MoveRight},
		{core.ActionSoftDrop, p.SoftDrop},
		{core.ActionHardDrop, p.HardDrop},
		{core.ActionRotateCW, p.RotateCW},
		{core.ActionRotateCCW, p.RotateCCW},
		{core.ActionRotate180, p.Rotate180},
		{core.ActionHold, p.Hold},
	}
}

// ActionKeys pairs an action with the keys that trigger it.
type ActionKeys struct {
	Action core.Action
	Keys   []string
}

// Global lists the keys shared by both players.
func (k KeyBindings) Global() []ActionKeys {
	return []ActionKeys{
		{core.ActionPause, k.Pause},
		{core.ActionRestart, k.Restart},
		{core.ActionQuit, k.Quit},
	}
}

// Validate rejects bindings where one key triggers two different actions,
// or where an action has no key at all.
func (k KeyBindings) Validate() error {
	seen := make(map[string]string)
	check := func(owner string, groups []ActionKeys) error {
		for _, g := range groups {
			if len(g.Keys) == 0 {
				return fmt.Errorf("%w: %s %v has no key", ErrInvalidConfig, owner, g.Action)
			}
			name := owner + " " + g.Action.String()
			for _, key := range g.Keys {
				if prev, ok := seen[key]; ok && prev != name {
					return fmt.Errorf("%w: key %q bound to both %s and %s", ErrInvalidConfig, key, prev, name)
				}
				seen[key] = name
			}
		}
		return nil
	}
	if err := check("global", k.Global()); err != nil {
		return err
	}
	if err := check("player1", k.Player1.Bindings()); err != nil {
		return err
	}
	return check("player2", k.Player2.Bindings())
}
