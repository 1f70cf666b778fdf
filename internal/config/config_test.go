package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg PacmanConfig
	if err := yaml.Unmarshal(defaultPacmanYAML, &cfg); err != nil {
		t.Fatalf("embedded pacman.yaml does not parse: %v", err)
	}
	if want := DefaultPacmanConfig(); !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded config = %+v, expected %+v", cfg, want)
	}
}

func TestLoadPacmanCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pacman.yaml")
	data := []byte("game:\n  variant: mspacman\n  lives: 4\nghosts:\n  scripts:\n    clyde: clyde.lua\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPacman(path)
	if err != nil {
		t.Fatalf("LoadPacman() failed: %v", err)
	}
	if cfg.Game.Variant != "mspacman" || cfg.Game.Lives != 4 {
		t.Errorf("Game = %+v, expected mspacman with 4 lives", cfg.Game)
	}
	if cfg.Ghosts.Scripts["clyde"] != "clyde.lua" {
		t.Errorf("Scripts = %v, expected clyde.lua for clyde", cfg.Ghosts.Scripts)
	}
}

func TestLoadPacmanErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("game: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.yaml")},
		{"invalid yaml", bad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadPacman(tt.path); err == nil {
				t.Errorf("LoadPacman(%q) succeeded, expected an error", tt.path)
			}
		})
	}
}

func TestApplyPacmanPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		initial float64
		lives   int
		between int
	}{
		{DifficultyEasy, true, 0.0, 5, 8},
		{DifficultyNormal, true, 0.3, 3, 6},
		{DifficultyHard, true, 0.7, 2, 4},
		{DifficultyFixed, false, 0.0, 3, 6},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultPacmanConfig()
			ApplyPacmanPreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Difficulty.InitialLevel != tt.initial {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tt.initial)
			}
			if cfg.Game.Lives != tt.lives {
				t.Errorf("Lives = %d, expected %d", cfg.Game.Lives, tt.lives)
			}
			if cfg.Timing.SecondsBetweenGhosts != tt.between {
				t.Errorf("SecondsBetweenGhosts = %d, expected %d", cfg.Timing.SecondsBetweenGhosts, tt.between)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := map[string]DifficultyPreset{
		"easy":   DifficultyEasy,
		"hard":   DifficultyHard,
		"fixed":  DifficultyFixed,
		"normal": DifficultyNormal,
		"":       DifficultyNormal,
		"silly":  DifficultyNormal,
	}
	for in, want := range tests {
		if got := ParsePreset(in); got != want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestDifficultyLevel(t *testing.T) {
	cfg := DefaultPacmanConfig().Difficulty
	d := NewDifficultyManager(cfg)

	tests := []struct {
		level int
		want  float64
	}{
		{1, 0.0},
		{8, 1.0},
		{20, 1.0},
	}
	for _, tt := range tests {
		if got := d.Level(tt.level); got != tt.want {
			t.Errorf("Level(%d) = %v, expected %v", tt.level, got, tt.want)
		}
	}

	prev := -1.0
	for n := 1; n <= 10; n++ {
		got := d.Level(n)
		if got < prev {
			t.Errorf("Level(%d) = %v dropped below Level(%d) = %v", n, got, n-1, prev)
		}
		prev = got
	}

	d.SetEnabled(false)
	d.SetInitialLevel(1.5)
	if got := d.Level(5); got != 1.0 {
		t.Errorf("disabled Level() = %v, expected the clamped initial level 1.0", got)
	}
}

func TestDifficultyScaling(t *testing.T) {
	d := NewDifficultyManager(DefaultPacmanConfig().Difficulty)

	if got := d.MoveAgainPercent(1); got != 0 {
		t.Errorf("MoveAgainPercent(1) = %d, expected 0", got)
	}
	if got := d.MoveAgainPercent(8); got != 20 {
		t.Errorf("MoveAgainPercent(8) = %d, expected 20", got)
	}

	tests := []struct {
		level int
		want  int
	}{
		{1, 6},
		{3, 4},
		{8, 2},
	}
	for _, tt := range tests {
		if got := d.PelletSeconds(tt.level, 7, 2); got != tt.want {
			t.Errorf("PelletSeconds(%d, 7, 2) = %d, expected %d", tt.level, got, tt.want)
		}
	}

	fixed := NewDifficultyManager(DifficultyConfig{Progression: ProgressionConfig{Type: "none"}})
	if got := fixed.PelletSeconds(1, 7, 2); got != 6 {
		t.Errorf("fixed PelletSeconds(1, 7, 2) = %d, expected 6", got)
	}
}
