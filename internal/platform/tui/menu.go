package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pacman-arcade/internal/core"
	"github.com/vovakirdan/pacman-arcade/internal/registry"
	"github.com/vovakirdan/pacman-arcade/internal/storage"
)

// MenuItem represents a selectable cabinet in the menu.
type MenuItem struct {
	GameID     string
	Title      string
	Difficulty string // Preset picked on the second screen
}

// DifficultyOption is one entry of the difficulty screen.
type DifficultyOption struct {
	Preset      string
	Description string
}

// difficultyOptions are offered after a cabinet is picked.
var difficultyOptions = []DifficultyOption{
	{"normal", "Arcade settings, ghosts speed up with each level"},
	{"easy", "Five lives and longer power pellets"},
	{"hard", "Two lives, ghosts leave the cage sooner"},
	{"fixed", "Level one difficulty forever"},
}

// MenuModel is the Bubble Tea model for the cabinet picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	diffCursor     int
	inDifficulty   bool
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	help           help.Model
	quitting       bool
	selected       *MenuItem // Set when user selects a cabinet and difficulty
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title})
	}

	return MenuModel{
		items:     items,
		cursor:    0,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inDifficulty {
			return m.handleDifficultyKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			m.inDifficulty = true
			m.diffCursor = 0
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// handleDifficultyKey processes input on the difficulty screen.
func (m MenuModel) handleDifficultyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.diffCursor > 0 {
			m.diffCursor--
		}
	case MenuActionDown:
		if m.diffCursor < len(difficultyOptions)-1 {
			m.diffCursor++
		}
	case MenuActionSelect:
		selected := m.items[m.cursor]
		selected.Difficulty = difficultyOptions[m.diffCursor].Preset
		m.selected = &selected
		return m, tea.Quit // Exit menu to start game
	case MenuActionBack:
		m.inDifficulty = false
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inDifficulty {
		return m.viewDifficulty()
	}

	t := GetTheme()
	var b strings.Builder

	// Title
	b.WriteString("\n")
	b.WriteString(centerStyled(t.MenuTitle.Render("P A C - M A N"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerStyled(t.MenuSubtitle.Render("Select a cabinet"), m.width))
	b.WriteString("\n\n")

	// Cabinet list
	for i, item := range m.items {
		line := fmt.Sprintf("  %s", item.Title)
		style := t.MenuItemNormal
		if i == m.cursor {
			line = fmt.Sprintf("> %s", item.Title)
			style = t.MenuItemActive
		}
		if m.store != nil {
			if high, err := m.store.HighScore(item.GameID); err == nil && high > 0 {
				line += fmt.Sprintf("  (high %d)", high)
			}
		}
		b.WriteString(centerStyled(style.Render(line), m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerStyled(t.MenuControls.Render(controls), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerStyled(t.StatusText.Render("In game: ")+m.help.View(m.keyMapper.Keys()), m.width))
	b.WriteString("\n")
	if m.store == nil {
		b.WriteString("\n")
		b.WriteString(centerStyled(t.StatusError.Render("Scores database unavailable, scores will not be saved"), m.width))
		b.WriteString("\n")
	}

	return b.String()
}

// viewDifficulty renders the difficulty screen.
func (m MenuModel) viewDifficulty() string {
	t := GetTheme()
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerStyled(t.MenuTitle.Render(strings.ToUpper(m.items[m.cursor].Title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerStyled(t.MenuSubtitle.Render("Select difficulty:"), m.width))
	b.WriteString("\n\n")

	for i, opt := range difficultyOptions {
		cursor := "  "
		style := t.MenuItemNormal
		if i == m.diffCursor {
			cursor = "> "
			style = t.MenuItemActive
		}
		b.WriteString(centerStyled(style.Render(fmt.Sprintf("%s%-8s", cursor, opt.Preset)), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerStyled(t.MenuDescription.Render(difficultyOptions[m.diffCursor].Description), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerStyled(t.MenuControls.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerStyled centers text that may carry ANSI styling.
func centerStyled(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Difficulty      string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.GameID = m.Selected().GameID
		result.Difficulty = m.Selected().Difficulty
	} else {
		result.Quit = true
	}

	return result, nil
}
