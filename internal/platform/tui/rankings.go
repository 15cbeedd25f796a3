package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/denris/internal/multiplayer"
	"github.com/vovakirdan/denris/internal/storage"
)

// RankingsKeyMap defines the key bindings for the rankings screen.
type RankingsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RankingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RankingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultRankingsKeyMap returns default key bindings.
func DefaultRankingsKeyMap() RankingsKeyMap {
	return RankingsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "rankings/versus"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RankingsModel shows the leaderboard for one game and the recent versus
// matches in a scrollable table.
type RankingsModel struct {
	store    *storage.Store
	gameID   string
	limit    int
	versus   bool
	rankings []storage.Ranking
	matches  []storage.VersusMatch
	err      error
	table    table.Model
	help     help.Model
	keys     RankingsKeyMap
	width    int
	height   int
	quitting bool
}

// NewRankingsModel loads the rankings for gameID.
func NewRankingsModel(store *storage.Store, gameID string, limit, width, height int) RankingsModel {
	if limit <= 0 {
		limit = storage.DefaultRankingLimit
	}
	m := RankingsModel{
		store:  store,
		gameID: gameID,
		limit:  limit,
		keys:   DefaultRankingsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

// reload fetches the rows for the current view and rebuilds the table.
func (m *RankingsModel) reload() {
	m.err = nil
	if m.store != nil {
		if m.versus {
			m.matches, m.err = m.store.RecentMatches(m.limit)
		} else {
			m.rankings, m.err = m.store.TopRankings(m.gameID, m.limit)
		}
	}
	m.table = m.createTable()
}

func (m RankingsModel) columns() []table.Column {
	if m.versus {
		return []table.Column{
			{Title: "Result", Width: 16},
			{Title: "P1", Width: 8},
			{Title: "P2", Width: 8},
			{Title: "Sent", Width: 7},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: 12},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Name", Width: 14},
		{Title: "Score", Width: 9},
		{Title: "Lines", Width: 6},
		{Title: "Level", Width: 6},
		{Title: "Date", Width: 12},
	}
}

func (m RankingsModel) rows() []table.Row {
	if m.versus {
		rows := make([]table.Row, len(m.matches))
		for i, v := range m.matches {
			result := v.EndReason
			switch {
			case v.Winner != 0:
				result = fmt.Sprintf("P%d (%s)", v.Winner, v.EndReason)
			case v.EndReason != multiplayer.MatchEndReasonCancelled.String():
				result = "draw"
			}
			rows[i] = table.Row{
				result,
				fmt.Sprintf("%d", v.Score1),
				fmt.Sprintf("%d", v.Score2),
				fmt.Sprintf("%d-%d", v.Sent1, v.Sent2),
				v.Duration.Round(time.Second).String(),
				v.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows
	}
	rows := make([]table.Row, len(m.rankings))
	for i, r := range m.rankings {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.Name,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Lines),
			fmt.Sprintf("%d", r.Level),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// createTable creates a table for the current view.
func (m RankingsModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(m.rows()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Init initializes the rankings model.
func (m RankingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the rankings screen.
func (m RankingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Switch):
			m.versus = !m.versus
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the rankings screen.
func (m RankingsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := fmt.Sprintf("RANKINGS - %s", m.gameID)
	if m.versus {
		title = "RECENT VERSUS MATCHES"
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.tableContent()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tableContent renders the table or a placeholder.
func (m RankingsModel) tableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 4)
	switch {
	case m.err != nil:
		return emptyStyle.Render("Could not load: " + m.err.Error())
	case m.store == nil:
		return emptyStyle.Render("No rankings database.")
	case len(m.table.Rows()) == 0 && m.versus:
		return emptyStyle.Render("No versus matches yet.")
	case len(m.table.Rows()) == 0:
		return emptyStyle.Render("No rankings recorded yet.\nFinish a game to set one!")
	}
	return m.table.View()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunRankings runs the interactive rankings screen.
func RunRankings(store *storage.Store, gameID string, limit, width, height int) error {
	p := tea.NewProgram(NewRankingsModel(store, gameID, limit, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
