// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade.
package config

// PacmanConfig contains all configuration for Pac-Man and Ms. Pac-Man.
type PacmanConfig struct {
	Game       PacmanGame       `yaml:"game"`
	Timing     PacmanTiming     `yaml:"timing"`
	Scoring    PacmanScoring    `yaml:"scoring"`
	Ghosts     PacmanGhosts     `yaml:"ghosts"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PacmanGame defines the cabinet settings.
type PacmanGame struct {
	Variant         string `yaml:"variant"` // "pacman" or "mspacman"
	Lives           int    `yaml:"lives"`
	ExtraLifePoints int    `yaml:"extra_life_points"`
}

// PacmanTiming defines the game timers, in seconds.
type PacmanTiming struct {
	MaxPelletSeconds        int `yaml:"max_pellet_seconds"`
	MinPelletSeconds        int `yaml:"min_pellet_seconds"`
	PelletWearingOffSeconds int `yaml:"pellet_wearing_off_seconds"`
	SecondsBetweenGhosts    int `yaml:"seconds_between_ghosts"`
	DemoSeconds             int `yaml:"demo_seconds"`
	ReadySeconds            int `yaml:"ready_seconds"`
	DeathCleanupSeconds     int `yaml:"death_cleanup_seconds"`
	DeathReviveSeconds      int `yaml:"death_revive_seconds"`
}

// PacmanScoring defines ghost scoring.
type PacmanScoring struct {
	GhostBase     int `yaml:"ghost_base"`      // Score for the first ghost of a pellet
	MaxGhostPower int `yaml:"max_ghost_power"` // Doublings before the ghost score stops growing
}

// PacmanGhosts defines optional scripted ghost behaviour.
type PacmanGhosts struct {
	// Scripts maps a ghost name (blinky, pinky, inky, clyde) to a Lua file.
	Scripts map[string]string `yaml:"scripts"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // Level number at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	MoveAgainPercent int `yaml:"move_again_percent"` // Chance of a ghost double step at max difficulty
	PelletReduction  int `yaml:"pellet_reduction"`   // Seconds taken off pellet time at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. Unknown names are normal.
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyHard, DifficultyFixed:
		return p
	default:
		return DifficultyNormal
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
