package tui

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/denris/internal/config"
	"github.com/vovakirdan/denris/internal/core"
	"github.com/vovakirdan/denris/internal/registry"
	"github.com/vovakirdan/denris/internal/storage"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Options configures a game session.
type Options struct {
	Store  *storage.Store
	Keys   config.KeyBindings
	Logger *log.Logger
	// Player is the name stored with rankings. Empty means the OS user.
	Player string
}

// Model is the Bubble Tea model for running a game mode.
type Model struct {
	game      registry.Game
	multi     registry.MultiGame // nil for single-player games
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	fixedSeed bool
	player    string
	keys      GameKeyMap
	help      help.Model
	input     core.MultiInputFrame
	gameState core.GameState
	quitting  bool
	saved     bool // Whether the ranking has been saved for the current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) *Model {
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = currentUser()
	}

	multi, _ := game.(registry.MultiGame)
	return &Model{
		game:      game,
		multi:     multi,
		screen:    core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:     opts.Store,
		logger:    opts.Logger,
		config:    cfg,
		fixedSeed: fixed,
		player:    opts.Player,
		keys:      NewGameKeyMap(opts.Keys, multi != nil),
		help:      help.New(),
		input:     core.NewMultiInputFrame(),
	}
}

// currentUser returns the login name used for rankings.
func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

// Init starts the game and the tick loop.
func (m *Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	player, action := m.keys.MapKey(msg)
	switch action {
	case core.ActionNone:
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionRestart:
		if m.fixedSeed {
			// The game replays its seed.
			m.input.Set(player, action)
			return m, nil
		}
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.saved = false
		m.input.Clear()
	default:
		m.input.Set(player, action)
	}
	return m, nil
}

// handleTick runs one simulation step.
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	var result core.StepResult
	if m.multi != nil {
		result = m.multi.StepMulti(m.input)
	} else {
		result = m.game.Step(m.input.Player(core.Player1))
	}
	m.gameState = result.State

	if !m.gameState.GameOver {
		m.saved = false
	} else if !m.saved {
		m.saveRanking()
		m.saved = true
	}

	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRanking records a finished single-player game. Versus matches are
// recorded by the match itself.
func (m *Model) saveRanking() {
	if m.multi != nil || m.store == nil || m.gameState.Score == 0 {
		return
	}
	s := m.gameState
	if _, err := m.store.SaveRanking(m.game.ID(), m.player, s.Score, s.Lines, s.Level); err != nil {
		m.logger.Warn("could not save ranking", "error", err)
		return
	}
	m.logger.Info("ranking saved", "game", m.game.ID(), "player", m.player, "score", s.Score)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".denris", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// GameState returns the state after the last tick.
func (m *Model) GameState() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(NewModel(game, cfg, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
