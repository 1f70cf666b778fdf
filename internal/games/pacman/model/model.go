// Package model runs the game: it owns the active level and its actors,
// advances them one tick at a time, resolves collisions and scoring, and
// tells listeners what happened.
//
// A Model is not safe for concurrent use. Its owner calls Update and the
// mutators serially; listeners run on the same goroutine after each tick.
package model

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pacman-arcade/internal/core"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/level"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/move"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/sprite"
)

// UpdatesPerSecond is the fixed tick rate every timer is expressed in.
const UpdatesPerSecond = sprite.TicksPerSecond

// Variant selects which set of levels and demos a model plays.
type Variant string

const (
	PacMan   Variant = "pacman"
	MsPacMan Variant = "mspacman"
)

// Variants lists every variant in display order.
var Variants = []Variant{PacMan, MsPacMan}

// ParseVariant maps a name such as "mspacman" to its variant.
func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown variant %q", s)
}

// Title returns the cabinet name of the variant.
func (v Variant) Title() string {
	if v == MsPacMan {
		return "Ms. Pac-Man"
	}
	return "Pac-Man"
}

// State is the overall game state.
type State int

const (
	GameOver State = iota
	InProgress
	Paused
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case GameOver:
		return "GameOver"
	case InProgress:
		return "InProgress"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// NewGame result codes.
const (
	Started          = 0
	NotEnoughCredits = -1
	AlreadyRunning   = -2
	NoLevels         = -3
)

// Difficulty tunes ghosts and pellets by level number. The config
// package's DifficultyManager implements it.
type Difficulty interface {
	MoveAgainPercent(level int) int
	PelletSeconds(level, max, min int) int
}

// Options configures a model. Zero fields take the value from
// DefaultOptions.
type Options struct {
	Variant Variant
	Seed    int64

	Lives           int
	ExtraLifePoints int
	GhostBaseScore  int
	MaxGhostPower   int

	MaxPelletSeconds     int
	MinPelletSeconds     int
	WearOffSeconds       int
	SecondsBetweenGhosts int
	DemoSeconds          int
	ReadySeconds         int
	DeathCleanupSeconds  int
	DeathReviveSeconds   int

	Difficulty Difficulty
	// Scripts maps a ghost to the Lua source of its chase policy.
	Scripts map[sprite.Name]string
	Logger  *log.Logger
}

// DefaultOptions returns the arcade settings.
func DefaultOptions() Options {
	return Options{
		Variant:              PacMan,
		Lives:                3,
		ExtraLifePoints:      10000,
		GhostBaseScore:       sprite.GhostScore,
		MaxGhostPower:        4,
		MaxPelletSeconds:     7,
		MinPelletSeconds:     2,
		WearOffSeconds:       2,
		SecondsBetweenGhosts: 6,
		DemoSeconds:          21,
		ReadySeconds:         2,
		DeathCleanupSeconds:  1,
		DeathReviveSeconds:   3,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Variant == "" {
		o.Variant = d.Variant
	}
	fill := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&o.Lives, d.Lives)
	fill(&o.ExtraLifePoints, d.ExtraLifePoints)
	fill(&o.GhostBaseScore, d.GhostBaseScore)
	fill(&o.MaxGhostPower, d.MaxGhostPower)
	fill(&o.MaxPelletSeconds, d.MaxPelletSeconds)
	fill(&o.MinPelletSeconds, d.MinPelletSeconds)
	fill(&o.WearOffSeconds, d.WearOffSeconds)
	fill(&o.SecondsBetweenGhosts, d.SecondsBetweenGhosts)
	fill(&o.DemoSeconds, d.DemoSeconds)
	fill(&o.ReadySeconds, d.ReadySeconds)
	fill(&o.DeathCleanupSeconds, d.DeathCleanupSeconds)
	fill(&o.DeathReviveSeconds, d.DeathReviveSeconds)
	if o.DeathReviveSeconds <= o.DeathCleanupSeconds {
		o.DeathReviveSeconds = o.DeathCleanupSeconds + 1
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

type levelEntry struct {
	lv      *level.Level
	variant Variant
	actors  int
}

type demoEntry struct {
	demo    *Demo
	variant Variant
}

// Model is the game simulation.
type Model struct {
	opts Options
	log  *log.Logger
	rng  *rand.Rand

	levels  []levelEntry
	demos   []demoEntry
	current *level.Level
	cast    *cast

	highScores *HighScoreList

	state        State
	credits      int
	lives        int
	score        int
	ghostPower   int
	lastGhost    int
	levelNumber  int
	pelletTime   int
	desired      move.Move
	updates      int
	gameOverTime int
	ticks        uint64
	shutdown     bool
	// fresh is set until the first ready period of a game has spent a life.
	fresh bool

	listeners    []registration
	nextListener ListenerID
	pending      []Notification
	inTick       bool

	rec     *recorder
	recDone *Demo
}

// New creates a model in the game-over state on the blank level.
func New(opts Options) *Model {
	opts = opts.withDefaults()
	m := &Model{
		opts:       opts,
		log:        opts.Logger,
		rng:        rand.New(rand.NewSource(opts.Seed)),
		highScores: DefaultHighScores(),
	}
	m.setGameOver()
	return m
}

// Variant returns the game type being played.
func (m *Model) Variant() Variant { return m.opts.Variant }

// State returns the game state.
func (m *Model) State() State { return m.state }

// IsGameOver reports whether no game is being played.
func (m *Model) IsGameOver() bool { return m.state == GameOver }

// InProgress reports whether a game is running and not paused.
func (m *Model) InProgress() bool { return m.state == InProgress }

// IsPaused reports whether the running game is paused.
func (m *Model) IsPaused() bool { return m.state == Paused }

// IsShutdown reports whether Shutdown was called.
func (m *Model) IsShutdown() bool { return m.shutdown }

// Credits returns the number of coins inserted and not yet spent.
func (m *Model) Credits() int { return m.credits }

// Lives returns the spare lives left.
func (m *Model) Lives() int { return m.lives }

// Score returns the current score.
func (m *Model) Score() int { return m.score }

// GhostPower returns the doubling exponent applied to the next ghost eaten.
func (m *Model) GhostPower() int { return m.ghostPower }

// LastGhostScore returns the points the most recent ghost was worth.
func (m *Model) LastGhostScore() int { return m.lastGhost }

// LevelNumber returns how many levels have been started this game.
func (m *Model) LevelNumber() int { return m.levelNumber }

// PelletSeconds returns how long a power pellet scares ghosts on this level.
func (m *Model) PelletSeconds() int { return m.pelletTime }

// UpdateCounter returns the unpaused ticks run since the level began.
func (m *Model) UpdateCounter() int { return m.updates }

// Ticks returns the total ticks run since the model was created.
func (m *Model) Ticks() uint64 { return m.ticks }

// Level returns the active level.
func (m *Model) Level() *level.Level { return m.current }

// Player returns the player, or nil on levels without one.
func (m *Model) Player() *sprite.Player { return m.cast.player }

// Ghosts returns the ghosts of the active level in spawn order.
func (m *Model) Ghosts() []*sprite.Ghost { return m.cast.ghosts }

// Fruit returns the bonus fruit, or nil.
func (m *Model) Fruit() *sprite.Fruit { return m.cast.fruit }

// ModeCounts returns how many ghosts are in each mode.
func (m *Model) ModeCounts() *sprite.ModeCounts { return m.cast.counts }

// HighScores returns the high-score list.
func (m *Model) HighScores() *HighScoreList { return m.highScores }

// SetHighScores replaces the high-score list.
func (m *Model) SetHighScores(l *HighScoreList) { m.highScores = l }

// HighScore returns the best of the current score and the list.
func (m *Model) HighScore() int {
	return max(m.score, m.highScores.HighScore())
}

// JustStarted reports whether the level is in its opening "ready" period.
func (m *Model) JustStarted() bool {
	return m.state == InProgress && m.updates < m.opts.ReadySeconds*UpdatesPerSecond
}

// SetDesiredDirection sets the way the player wants to go. Only the sign
// of each axis matters.
func (m *Model) SetDesiredDirection(dir move.Move) {
	m.desired = dir.Normalize()
}

// DesiredMove returns the player's requested move scaled to its speed.
func (m *Model) DesiredMove() move.Move {
	return m.desired.Times(sprite.PlayerSpeed)
}

// AddLevel makes lv available to games of variant v. Levels without a
// player spawn or without ghosts are rejected.
func (m *Model) AddLevel(lv *level.Level, v Variant) error {
	n, err := countActors(lv)
	if err != nil {
		return err
	}
	m.levels = append(m.levels, levelEntry{lv: lv, variant: v, actors: n})
	return nil
}

// Levels returns the names of the levels added for variant v.
func (m *Model) Levels(v Variant) []string {
	var names []string
	for _, e := range m.levels {
		if e.variant == v {
			names = append(names, e.lv.Name())
		}
	}
	return names
}

// InsertCoin adds a credit. On the attract screen the first credit shows
// the start prompt.
func (m *Model) InsertCoin() {
	m.credits++
	if m.state == GameOver {
		switch m.credits {
		case 1:
			m.setGameOver()
			m.current.PutWord("PUSH START BUTTON", 6, 13, core.ColorOrange)
			m.current.PutWord(m.playersText(), 8, 17, core.ColorCyan)
			m.current.PutWord(fmt.Sprintf("BONUS PAC-MAN FOR %d PTS", m.opts.ExtraLifePoints), 1, 21, core.ColorBrightYellow)
			m.current.PutWord("@ 1980 MIDWAY MFG. CO.", 4, 25, core.ColorPink)
		case 2:
			m.current.PutWord(m.playersText(), 8, 17, core.ColorCyan)
		}
	}
	m.notify(EventCoinInserted, nil)
}

func (m *Model) playersText() string {
	if m.credits >= 2 {
		return "1 OR 2 PLAYERS"
	}
	return "1 PLAYER ONLY"
}

// NewGame starts a game for the given number of players, spending one
// credit each. It returns Started, NotEnoughCredits, AlreadyRunning or
// NoLevels.
func (m *Model) NewGame(players int) int {
	players = max(players, 1)
	if m.credits < players {
		return NotEnoughCredits
	}
	if m.state != GameOver {
		return AlreadyRunning
	}
	if len(m.Levels(m.opts.Variant)) == 0 {
		return NoLevels
	}

	m.credits -= players
	m.gameOverTime = 0
	m.levelNumber = 0
	m.score = 0
	m.lives = m.opts.Lives

	m.gotoRandomValidLevel()
	m.state = InProgress
	m.fresh = true
	m.log.Debug("new game", "variant", m.opts.Variant, "level", m.current.Name())
	m.notify(EventNewGame, nil)
	return Started
}

// GameResult is how a finished game ended. It is the Source of the
// GameOver notification, since the score is reset before listeners run.
type GameResult struct {
	Score int
	Level int
}

// EndGame finishes the current game and returns to the attract loop.
func (m *Model) EndGame() {
	m.notify(EventGameOver, GameResult{Score: m.score, Level: m.levelNumber})
	m.setGameOver()
}

// Pause suspends a running game. It reports whether the state changed.
func (m *Model) Pause() bool {
	if m.state != InProgress {
		return false
	}
	m.state = Paused
	m.notify(EventGamePaused, nil)
	return true
}

// Unpause resumes a paused game. It reports whether the state changed.
func (m *Model) Unpause() bool {
	if m.state != Paused {
		return false
	}
	m.state = InProgress
	m.notify(EventGameUnpaused, nil)
	return true
}

// Shutdown stops the model for good. Later updates do nothing.
func (m *Model) Shutdown() {
	if m.shutdown {
		return
	}
	m.shutdown = true
	m.state = GameOver
	m.cast.release()
	m.notify(EventShuttingDown, nil)
}

// setGameOver resets the game state and shows the blank level.
func (m *Model) setGameOver() {
	m.state = GameOver
	m.gameOverTime = 0
	m.levelNumber = 0
	m.score = 0
	m.lives = m.opts.Lives
	m.ghostPower = 0

	m.setCurrentLevel(level.Blank())
	m.pelletTime = m.pelletSecondsFor(m.levelNumber)
}

func (m *Model) pelletSecondsFor(n int) int {
	if m.opts.Difficulty != nil {
		return m.opts.Difficulty.PelletSeconds(n, m.opts.MaxPelletSeconds, m.opts.MinPelletSeconds)
	}
	return max(m.opts.MinPelletSeconds, m.opts.MaxPelletSeconds-n)
}

// gotoRandomValidLevel switches to a random level of the model's variant.
func (m *Model) gotoRandomValidLevel() {
	var candidates []levelEntry
	for _, e := range m.levels {
		if e.variant == m.opts.Variant {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		m.log.Warn("no levels for variant", "variant", m.opts.Variant)
		return
	}

	e := candidates[m.rng.Intn(len(candidates))]
	m.setCurrentLevel(e.lv)
	m.pelletTime = m.pelletSecondsFor(m.levelNumber)
	m.levelNumber++
	m.log.Debug("level started", "name", e.lv.Name(), "number", m.levelNumber, "pellet_seconds", m.pelletTime)
}

// setCurrentLevel discards the old actors and builds the level's own.
func (m *Model) setCurrentLevel(lv *level.Level) {
	if m.rec != nil && !m.rec.armed {
		m.finishRecording()
	}
	if m.cast != nil {
		m.cast.release()
	}
	m.desired = move.Left
	m.ghostPower = 0
	m.updates = 0

	m.current = lv
	lv.Regenerate()
	c, err := m.buildCast(lv)
	if err != nil {
		// AddLevel has already validated every level that gets here.
		panic(err)
	}
	m.cast = c
	m.armRecording()
	m.notify(EventNewLevel, nil)
}
