package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pacman-arcade/internal/platform/tui"
	"github.com/vovakirdan/pacman-arcade/internal/registry"
	"github.com/vovakirdan/pacman-arcade/internal/storage"
)

// difficultySetter is implemented by cabinets with per-game presets.
type difficultySetter interface {
	SetDifficulty(preset string)
}

func runMenu(_ *cobra.Command, _ []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig()
	seeded := cfg.Seed != 0

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, playerName())
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating cabinet: %v\n", err)
			continue
		}
		// The --difficulty flag wins over the menu choice
		if d, ok := game.(difficultySetter); ok && flagDifficulty == "" {
			d.SetDifficulty(menuResult.Difficulty)
		}

		// Fresh seed for each game unless one was given
		if !seeded {
			cfg.Seed = time.Now().UnixNano()
		}

		result, err := tui.Run(game, store, cfg, playerName())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running cabinet: %v\n", err)
		}
		if !result.BackToMenu {
			break
		}
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
