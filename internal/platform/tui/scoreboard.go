package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pacman-arcade/internal/registry"
	"github.com/vovakirdan/pacman-arcade/internal/storage"
)

const (
	scoreboardLimit = 100 // rows loaded per cabinet
	maxNameWidth    = 12
	mazeBlue        = lipgloss.Color("21")
)

// ScoreboardKeyMap defines the key bindings for the high-score screen.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextCab key.Binding
	PrevCab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevCab, k.NextCab, k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up", "scroll")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down", "scroll")),
		NextCab: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("right", "next cabinet")),
		PrevCab: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("left", "prev cabinet")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the stored high scores of one cabinet at a time.
// Rows set by the current player are marked.
type ScoreboardModel struct {
	cabinets []registry.GameInfo
	cursor   int
	store    *storage.Store
	player   string
	scores   []storage.ScoreEntry
	stats    *storage.GameStats
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
	back     bool
}

// NewScoreboardModel creates the high-score screen for player.
func NewScoreboardModel(store *storage.Store, width, height int, player string) ScoreboardModel {
	m := ScoreboardModel{
		cabinets: registry.List(),
		store:    store,
		player:   player,
		keys:     DefaultScoreboardKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	nameWidth := 8
	if m.width >= 60 {
		nameWidth = maxNameWidth
	}
	columns := []table.Column{
		{Title: "", Width: 1},
		{Title: "RANK", Width: 4},
		{Title: "NAME", Width: nameWidth},
		{Title: "SCORE", Width: 8},
		{Title: "LVL", Width: 3},
	}
	if m.width >= 50 {
		columns = append(columns, table.Column{Title: "DATE", Width: 10})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	th := GetTheme()
	s := table.DefaultStyles()
	s.Header = s.Header.
		Inherit(th.MenuSubtitle).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(mazeBlue).
		BorderBottom(true).
		Bold(true)
	s.Selected = th.MenuItemActive
	t.SetStyles(s)
	return t
}

// load reads the rows and totals of the selected cabinet.
func (m *ScoreboardModel) load() {
	m.scores, m.stats = nil, nil
	if m.store != nil && len(m.cabinets) > 0 {
		id := m.cabinets[m.cursor].ID
		if scores, err := m.store.TopScores(id, scoreboardLimit); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	withDate := len(m.table.Columns()) > 5
	rows := make([]table.Row, 0, len(m.scores))
	for i, s := range m.scores {
		mark := ""
		if m.player != "" && s.Name == m.player {
			mark = "*"
		}
		lvl := "-"
		if s.Level > 0 {
			lvl = fmt.Sprint(s.Level)
		}
		row := table.Row{mark, ordinal(i + 1), truncateName(s.Name, maxNameWidth), fmt.Sprintf("%8d", s.Score), lvl}
		if withDate {
			row = append(row, s.CreatedAt.Format("2006-01-02"))
		}
		rows = append(rows, row)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// ordinal renders a rank the way the cabinet's score table does.
func ordinal(n int) string {
	suffix := "TH"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "ST"
		case 2:
			suffix = "ND"
		case 3:
			suffix = "RD"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// truncateName shortens a player name to fit its column.
func truncateName(name string, width int) string {
	if name == "" {
		return "?"
	}
	r := []rune(name)
	if len(r) > width {
		return string(r[:width-1]) + "."
	}
	return name
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextCab):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevCab):
			m.step(-1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.newTable()
		m.fillRows()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// step moves the cabinet cursor by d, wrapping around.
func (m *ScoreboardModel) step(d int) {
	if len(m.cabinets) == 0 {
		return
	}
	m.cursor = (m.cursor + d + len(m.cabinets)) % len(m.cabinets)
	m.load()
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}
	th := GetTheme()
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerStyled(th.MenuTitle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerStyled(m.marquee(), m.width))
	b.WriteString("\n")
	if line := m.statsLine(); line != "" {
		b.WriteString(centerStyled(th.StatusText.Render(line), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	frame := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(mazeBlue).
		Padding(0, 1)
	if len(m.scores) == 0 {
		empty := th.MenuDescription.Italic(true).Padding(1, 2).
			Render("No scores recorded yet.\nInsert a coin to set a high score!")
		b.WriteString(centerBlock(frame.Render(empty), m.width))
	} else {
		b.WriteString(centerBlock(frame.Render(m.table.View()), m.width))
	}

	b.WriteString("\n\n")
	b.WriteString(centerStyled(th.MenuControls.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

// marquee lists the cabinets with the selected one lit.
func (m ScoreboardModel) marquee() string {
	th := GetTheme()
	parts := make([]string, len(m.cabinets))
	for i, c := range m.cabinets {
		title := strings.ToUpper(c.Title)
		if i == m.cursor {
			parts[i] = th.MenuItemActive.Render("[" + title + "]")
		} else {
			parts[i] = th.MenuItemNormal.Render(" " + title + " ")
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width && len(m.cabinets) > 0 {
		return th.MenuItemActive.Render("< " + strings.ToUpper(m.cabinets[m.cursor].Title) + " >")
	}
	return line
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%d games  best %d  average %.0f", m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore)
}

// centerBlock centers every line of a rendered block as one unit.
func centerBlock(block string, width int) string {
	w := lipgloss.Width(block)
	if w >= width {
		return block
	}
	return lipgloss.NewStyle().MarginLeft((width - w) / 2).Render(block)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the high-score screen. It reports whether the user
// went back to the menu rather than quitting.
func RunScoreboard(store *storage.Store, width, height int, player string) (bool, error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height, player), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
