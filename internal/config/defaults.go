package config

import (
	_ "embed"
)

//go:embed defaults/pacman.yaml
var defaultPacmanYAML []byte

// DefaultPacmanConfig returns the default Pac-Man configuration.
func DefaultPacmanConfig() PacmanConfig {
	return PacmanConfig{
		Game: PacmanGame{
			Variant:         "pacman",
			Lives:           3,
			ExtraLifePoints: 10000,
		},
		Timing: PacmanTiming{
			MaxPelletSeconds:        7,
			MinPelletSeconds:        2,
			PelletWearingOffSeconds: 2,
			SecondsBetweenGhosts:    6,
			DemoSeconds:             21,
			ReadySeconds:            2,
			DeathCleanupSeconds:     1,
			DeathReviveSeconds:      3,
		},
		Scoring: PacmanScoring{
			GhostBase:     200,
			MaxGhostPower: 4,
		},
		Ghosts: PacmanGhosts{
			Scripts: map[string]string{},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 8,
			},
			Scaling: ScalingConfig{
				MoveAgainPercent: 20,
				PelletReduction:  2,
			},
		},
	}
}
