package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pacman-arcade/internal/core"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/model"
	"github.com/vovakirdan/pacman-arcade/internal/platform/tui"
	"github.com/vovakirdan/pacman-arcade/internal/registry"
	"github.com/vovakirdan/pacman-arcade/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [cabinet]",
	Short: "Play a cabinet",
	Long: `Start the given cabinet (pacman when omitted). It boots into attract
mode: insert a coin, then press start.

Controls:
  Arrows/WASD  - Steer
  C/5          - Insert coin
  Enter/1      - Start (needs a credit)
  P/Esc        - Pause
  B            - Back (while paused or between games)
  Ctrl+S       - Screenshot to ~/.arcade/screenshots
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Five lives, longer power pellets
  normal - Arcade settings
  hard   - Two lives, ghosts leave the cage sooner
  fixed  - No progression, level one difficulty forever

Examples:
  pacman play
  pacman play mspacman
  pacman play --difficulty hard --seed 42
  pacman play --config ./my-pacman.yaml --log-file pacman.log`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := string(model.PacMan)
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if cabinet exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown cabinet %q\n", gameID)
		fmt.Fprintf(os.Stderr, "Available cabinets: %s\n", strings.Join(registry.IDs(), ", "))
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating cabinet: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	result, runErr := tui.Run(game, store, runtimeConfig(), playerName())

	// Close store before potential exit
	if store != nil {
		printSession(store, result.SessionID)
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running cabinet: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// printSession summarizes the games recorded by one run.
func printSession(store *storage.Store, sessionID string) {
	scores, err := store.SessionScores(sessionID)
	if err != nil || len(scores) == 0 {
		return
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	fmt.Printf("%d game(s) this session, best %d on level %d\n", len(scores), best.Score, best.Level)
}
