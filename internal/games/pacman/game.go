// Package pacman adapts the maze simulation to the arcade platform. It
// registers one game per cabinet variant, maps platform actions to the
// cabinet's joystick and buttons, and draws the model into a core.Screen.
package pacman

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pacman-arcade/internal/config"
	"github.com/vovakirdan/pacman-arcade/internal/core"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/assets"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/model"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/move"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/sprite"
	"github.com/vovakirdan/pacman-arcade/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// assetDir is a directory with levels/ and demos/ trees replacing the
// embedded assets.
var assetDir string

// logger receives model diagnostics. Nil discards them.
var logger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = ""
	}
}

// SetAssetDir loads levels and demos from dir instead of the embedded set.
// An empty dir restores the embedded assets.
func SetAssetDir(dir string) {
	assetDir = dir
}

// SetLogger routes model diagnostics to l.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game is one cabinet: a model plus what the platform needs around it.
type Game struct {
	variant model.Variant
	m       *model.Model

	// Configuration
	runtime    core.RuntimeConfig
	cfg        config.PacmanConfig
	difficulty *config.DifficultyManager
	preset     config.DifficultyPreset
	loadErr    error

	// High scores carried across Reset
	playerName string
	highScores []model.HighScore

	// last is the most recent finished game, reported by State while the
	// cabinet sits in attract mode.
	last model.GameResult
}

// New creates a game for the given variant.
func New(v model.Variant) *Game {
	return &Game{variant: v, playerName: "PLAYER"}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.variant.Title()
}

// Model returns the running simulation.
func (g *Game) Model() *model.Model {
	return g.m
}

// Err returns the asset error that stopped the last Reset, if any.
func (g *Game) Err() error {
	return g.loadErr
}

// SetDifficulty overrides the package-wide preset for this game. It takes
// effect on the next Reset.
func (g *Game) SetDifficulty(preset string) {
	g.preset = config.ParsePreset(preset)
}

// SetPlayerName sets the name finished games are recorded under.
func (g *Game) SetPlayerName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	g.playerName = name
}

// SetHighScores seeds the high-score table shown in the HUD. It survives
// Reset.
func (g *Game) SetHighScores(scores []model.HighScore) {
	g.highScores = append([]model.HighScore(nil), scores...)
	if g.m != nil {
		g.m.SetHighScores(model.NewHighScoreList(g.highScores...))
	}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.last = model.GameResult{}
	g.loadErr = nil

	// Load game config
	cfg, err := config.LoadPacman(configPath)
	if err != nil {
		cfg = config.DefaultPacmanConfig()
	}

	// Apply difficulty preset if set
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	if preset != "" {
		config.ApplyPacmanPreset(&cfg, preset)
	}

	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	opts := g.options()
	scripts, err := loadScripts(cfg.Ghosts.Scripts)
	if err != nil {
		opts.Logger.Warn("ghost scripts skipped", "err", err)
	}
	opts.Scripts = scripts

	g.m = model.New(opts)
	if len(g.highScores) > 0 {
		g.m.SetHighScores(model.NewHighScoreList(g.highScores...))
	}
	g.m.AddListener(model.ListenerFunc(g.gameUpdated))

	loader := assets.Default()
	if assetDir != "" {
		loader = assets.NewLoader(os.DirFS(assetDir))
	}
	if err := loader.Install(g.m); err != nil {
		g.loadErr = fmt.Errorf("assets: %w", err)
	}
}

// options maps the loaded config onto model options.
func (g *Game) options() model.Options {
	t := g.cfg.Timing
	l := logger
	if l == nil {
		l = log.New(io.Discard)
	}
	return model.Options{
		Variant:              g.variant,
		Seed:                 g.runtime.Seed,
		Lives:                g.cfg.Game.Lives,
		ExtraLifePoints:      g.cfg.Game.ExtraLifePoints,
		GhostBaseScore:       g.cfg.Scoring.GhostBase,
		MaxGhostPower:        g.cfg.Scoring.MaxGhostPower,
		MaxPelletSeconds:     t.MaxPelletSeconds,
		MinPelletSeconds:     t.MinPelletSeconds,
		WearOffSeconds:       t.PelletWearingOffSeconds,
		SecondsBetweenGhosts: t.SecondsBetweenGhosts,
		DemoSeconds:          t.DemoSeconds,
		ReadySeconds:         t.ReadySeconds,
		DeathCleanupSeconds:  t.DeathCleanupSeconds,
		DeathReviveSeconds:   t.DeathReviveSeconds,
		Difficulty:           g.difficulty,
		Logger:               l.WithPrefix(string(g.variant)),
	}
}

// loadScripts reads the Lua chase policies named in the config. Files that
// cannot be read are left out and reported together.
func loadScripts(paths map[string]string) (map[sprite.Name]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	scripts := make(map[sprite.Name]string, len(paths))
	var errs []error
	for name, p := range paths {
		if strings.HasPrefix(p, "~") {
			home, err := os.UserHomeDir()
			if err != nil {
				errs = append(errs, fmt.Errorf("script for %s: %w", name, err))
				continue
			}
			p = filepath.Join(home, p[1:])
		}
		data, err := os.ReadFile(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("script for %s: %w", name, err))
			continue
		}
		scripts[sprite.Name(strings.ToLower(name))] = string(data)
	}
	return scripts, errors.Join(errs...)
}

// gameUpdated keeps the final result and the high-score table current.
func (g *Game) gameUpdated(m *model.Model, n model.Notification) {
	switch n.Event {
	case model.EventNewGame:
		g.last = model.GameResult{}
	case model.EventGameOver:
		res, ok := n.Source.(model.GameResult)
		if !ok {
			return
		}
		g.last = res
		if res.Score > 0 && m.HighScores().Record(g.playerName, res.Score) {
			g.highScores = m.HighScores().Scores()
		}
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.m == nil || g.loadErr != nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionCoin) {
		g.m.InsertCoin()
	}
	if in.Has(core.ActionConfirm) && g.m.IsGameOver() {
		g.m.NewGame(1)
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		if g.m.IsPaused() {
			g.m.Unpause()
		} else {
			g.m.Pause()
		}
	}

	switch {
	case in.Has(core.ActionUp):
		g.m.SetDesiredDirection(move.Up)
	case in.Has(core.ActionDown):
		g.m.SetDesiredDirection(move.Down)
	case in.Has(core.ActionLeft):
		g.m.SetDesiredDirection(move.Left)
	case in.Has(core.ActionRight):
		g.m.SetDesiredDirection(move.Right)
	}

	g.m.Update()
	return core.StepResult{State: g.State()}
}

// Snapshot captures the simulation state for tests and tooling.
func (g *Game) Snapshot() model.Snapshot {
	return g.m.Snapshot()
}

// LastResult returns how the most recent game ended. It is zero while a
// game runs and before the first one finishes.
func (g *Game) LastResult() model.GameResult {
	return g.last
}

// State returns the current game state. Once a game ends the score is the
// final one, until the next game starts.
func (g *Game) State() core.GameState {
	if g.m == nil {
		return core.GameState{GameOver: true}
	}
	if g.m.IsGameOver() {
		return core.GameState{
			Score:    g.last.Score,
			Level:    g.last.Level,
			GameOver: true,
		}
	}
	return core.GameState{
		Score:  g.m.Score(),
		Level:  g.m.LevelNumber(),
		Paused: g.m.IsPaused(),
	}
}

// Register the games with the registry
func init() {
	for _, v := range model.Variants {
		registry.Register(string(v), func() registry.Game {
			return New(v)
		})
	}
}
