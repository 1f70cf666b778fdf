package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/pacman-arcade/internal/core"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/model"
	"github.com/vovakirdan/pacman-arcade/internal/registry"
	"github.com/vovakirdan/pacman-arcade/internal/storage"
)

// highScoreTable is implemented by games that show a named high-score table.
type highScoreTable interface {
	SetPlayerName(name string)
	SetHighScores(scores []model.HighScore)
}

// snapshotter is implemented by games that can describe their state.
type snapshotter interface {
	Snapshot() model.Snapshot
}

// Model is the Bubble Tea model for running a cabinet.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	player     string
	sessionID  string
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game. Scores are
// recorded under player and a fresh session ID.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = model.UpdatesPerSecond
	}

	if t, ok := game.(highScoreTable); ok {
		t.SetPlayerName(player)
		t.SetHighScores(loadHighScores(store, game.ID()))
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		player:     player,
		sessionID:  uuid.NewString(),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// loadHighScores reads the stored table for a game, best first.
func loadHighScores(store *storage.Store, gameID string) []model.HighScore {
	if store == nil {
		return nil
	}
	entries, err := store.TopScores(gameID, model.MaxHighScores)
	if err != nil {
		return nil
	}
	scores := make([]model.HighScore, 0, len(entries))
	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = "?"
		}
		scores = append(scores, model.HighScore{Score: e.Score, Name: name})
	}
	return scores
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	// Initialize the game
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only between games or while paused
	if key.Matches(msg, m.keyMapper.Keys().Back) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionScreenshot) {
		m.saveScreenshot()
	}

	return m, nil
}

// handleResize processes window resize events. The game redraws itself
// for whatever size it is given, so the simulation keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	prev := m.gameState

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save score on the tick the game ends
	if m.gameState.GameOver && !prev.GameOver && m.gameState.Score > 0 {
		m.saveScore()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished game.
func (m Model) saveScore() {
	if m.store == nil {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.Record(storage.ScoreEntry{
		GameID:    m.game.ID(),
		Name:      m.player,
		SessionID: m.sessionID,
		Level:     m.gameState.Level,
		Score:     m.gameState.Score,
	})
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	base := filepath.Join(dir, fmt.Sprintf("%s_%s", m.game.ID(), timestamp))

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(base+".txt", []byte(m.screen.String()), 0o600)

	// The simulation state goes next to it
	if s, ok := m.game.(snapshotter); ok {
		if data, err := yaml.Marshal(s.Snapshot()); err == nil {
			//nolint:errcheck // Best-effort save
			os.WriteFile(base+".yaml", data, 0o600)
		}
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// SessionID returns the ID scores of this run are recorded under.
func (m Model) SessionID() string {
	return m.sessionID
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// RunResult describes how a cabinet run ended.
type RunResult struct {
	BackToMenu bool   // Player asked to go back to the menu
	SessionID  string // Scores of this run are recorded under this ID
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) (RunResult, error) {
	m := NewModel(game, store, cfg, player)
	result := RunResult{SessionID: m.SessionID()}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return result, err
	}
	if fm, ok := finalModel.(Model); ok {
		result.BackToMenu = fm.BackToMenu()
	}
	return result, nil
}
