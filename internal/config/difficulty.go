package config

import "math"

// DifficultyManager calculates game parameters from the level number.
// It satisfies the model's Difficulty interface.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty (0.0 to 1.0) for a level number, where the
// first level of a game is 1.
func (d *DifficultyManager) Level(levelNumber int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 1 {
		maxAt = 2 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "level":
		progress = float64(levelNumber-1) / (maxAt - 1)
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// MoveAgainPercent returns the chance, in percent, that a ghost takes a
// second step in one tick.
func (d *DifficultyManager) MoveAgainPercent(levelNumber int) int {
	pct := int(d.Level(levelNumber) * float64(d.cfg.Scaling.MoveAgainPercent))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// PelletSeconds returns how long ghosts stay scared on a level. It starts
// from maxSeconds less the level number, loses up to pellet_reduction more
// with difficulty, and never drops below minSeconds.
func (d *DifficultyManager) PelletSeconds(levelNumber, maxSeconds, minSeconds int) int {
	reduction := int(d.Level(levelNumber) * float64(d.cfg.Scaling.PelletReduction))
	result := maxSeconds - levelNumber - reduction
	if result < minSeconds {
		result = minSeconds
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
