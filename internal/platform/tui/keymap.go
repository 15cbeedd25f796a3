package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/denris/internal/config"
	"github.com/vovakirdan/denris/internal/core"
)

var actionHelp = map[core.Action]string{
	core.ActionLeft:      "left",
	core.ActionRight:     "right",
	core.ActionSoftDrop:  "soft drop",
	core.ActionHardDrop:  "hard drop",
	core.ActionRotateCW:  "rotate cw",
	core.ActionRotateCCW: "rotate ccw",
	core.ActionRotate180: "rotate 180",
	core.ActionHold:      "hold",
	core.ActionPause:     "pause",
	core.ActionRestart:   "restart",
	core.ActionQuit:      "quit",
}

// actionBinding ties a bubbles key binding to the action it triggers.
type actionBinding struct {
	action  core.Action
	binding key.Binding
}

// GameKeyMap translates Bubble Tea key messages into game actions.
// It is built from the configured key bindings, so players can remap keys
// without touching code.
type GameKeyMap struct {
	players [2][]actionBinding
	global  []actionBinding
	Help    key.Binding
	versus  bool
}

// NewGameKeyMap builds the key map. In solo mode both players' keys drive
// player 1, so either side of the keyboard works.
func NewGameKeyMap(kb config.KeyBindings, versus bool) GameKeyMap {
	return GameKeyMap{
		players: [2][]actionBinding{
			newBindings(kb.Player1.Bindings()),
			newBindings(kb.Player2.Bindings()),
		},
		global: newBindings(kb.Global()),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		versus: versus,
	}
}

func newBindings(groups []config.ActionKeys) []actionBinding {
	out := make([]actionBinding, 0, len(groups))
	for _, g := range groups {
		out = append(out, actionBinding{
			action: g.Action,
			binding: key.NewBinding(
				key.WithKeys(g.Keys...),
				key.WithHelp(keyLabel(g.Keys), actionHelp[g.Action]),
			),
		})
	}
	return out
}

// keyLabel renders key names for the help line.
func keyLabel(keys []string) string {
	labels := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		labels[i] = k
	}
	return strings.Join(labels, "/")
}

// MapKey returns the player and action a key triggers. Global keys report
// player 1. Unbound keys return ActionNone.
func (km GameKeyMap) MapKey(msg tea.KeyMsg) (core.PlayerID, core.Action) {
	for _, b := range km.global {
		if key.Matches(msg, b.binding) {
			return core.Player1, b.action
		}
	}
	for i, bindings := range km.players {
		for _, b := range bindings {
			if !key.Matches(msg, b.binding) {
				continue
			}
			if km.versus && i == 1 {
				return core.Player2, b.action
			}
			return core.Player1, b.action
		}
	}
	return core.Player1, core.ActionNone
}

// MapKeyToFrame records the key's action in a multi-player frame.
// Returns true if the key was a quit request.
func (km GameKeyMap) MapKeyToFrame(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	player, action := km.MapKey(msg)
	switch action {
	case core.ActionNone:
		return false
	case core.ActionQuit:
		return true
	}
	frame.Set(player, action)
	return false
}

func bindingsOf(list []actionBinding) []key.Binding {
	out := make([]key.Binding, len(list))
	for i, b := range list {
		out[i] = b.binding
	}
	return out
}

// ShortHelp returns key bindings for the short help view.
func (km GameKeyMap) ShortHelp() []key.Binding {
	short := make([]key.Binding, 0, 8)
	for _, b := range km.players[0] {
		switch b.action {
		case core.ActionLeft, core.ActionRight, core.ActionHardDrop, core.ActionRotateCW, core.ActionHold:
			short = append(short, b.binding)
		}
	}
	short = append(short, bindingsOf(km.global)...)
	return append(short, km.Help)
}

// FullHelp returns key bindings for the full help view.
func (km GameKeyMap) FullHelp() [][]key.Binding {
	full := [][]key.Binding{bindingsOf(km.players[0])}
	if km.versus {
		full = append(full, bindingsOf(km.players[1]))
	}
	return append(full, append(bindingsOf(km.global), km.Help))
}

// MenuKeyMap defines the key bindings for the mode menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns the menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
