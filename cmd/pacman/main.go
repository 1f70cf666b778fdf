// pacman runs the Pac-Man and Ms. Pac-Man cabinets in the terminal.
//
// Usage:
//
//	pacman                   - Start the cabinet picker menu
//	pacman play [cabinet]    - Play a cabinet directly
//	pacman list              - List cabinets and their mazes
//	pacman demo validate F   - Check a recorded demo against the mazes
//	pacman scores [cabinet]  - Show, export or import high scores
//	pacman serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Cabinet config YAML (default: ~/.arcade/configs/pacman.yaml)
//	--difficulty <preset> - easy, normal, hard or fixed
//	--assets <dir>        - Load mazes and demos from a directory
//	--log-file <path>     - Write diagnostics to a file
//	--player <name>       - Name for the high score table
//	--mono                - Grayscale menus
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pacman-arcade/internal/games/pacman"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/model"
	"github.com/vovakirdan/pacman-arcade/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagAssets     string
	flagLogFile    string
	flagPlayer     string
	flagMono       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pacman",
	Short: "Pac-Man and Ms. Pac-Man in your terminal",
	Long: `A faithful 30 Hz maze chase for the terminal, with both the
Pac-Man and the Ms. Pac-Man cabinets.

Without a subcommand the cabinet picker menu starts. After a game
you return to the menu to play again.

Available commands:
  play     - Play a cabinet directly
  list     - Show cabinets and their mazes
  demo     - Inspect recorded attract-mode demos
  scores   - View, export or import high scores
  serve    - Start SSH server for remote play

Examples:
  pacman
  pacman play mspacman --difficulty easy
  pacman list
  pacman scores pacman --export scores.yaml
  pacman serve --ssh :2222`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return configureCabinets()
	},
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", model.UpdatesPerSecond, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to cabinet config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Directory with levels/ and demos/ to use instead of the bundled mazes")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write diagnostics to this file")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Name for the high score table (default: $USER)")
	rootCmd.PersistentFlags().BoolVar(&flagMono, "mono", false, "Grayscale menus (also set by NO_COLOR)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// configureCabinets hands the global flags to the cabinet package before
// any game is created.
func configureCabinets() error {
	switch flagDifficulty {
	case "", "easy", "normal", "hard", "fixed":
	default:
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	pacman.SetConfigPath(flagConfig)
	pacman.SetDifficultyPreset(flagDifficulty)
	pacman.SetAssetDir(flagAssets)

	if flagMono || os.Getenv("NO_COLOR") != "" {
		tui.SetTheme(tui.MonochromeTheme())
	}

	logger, err := newLogger(flagLogFile)
	if err != nil {
		return err
	}
	pacman.SetLogger(logger)
	return nil
}

// playerName returns the name scores are recorded under.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "PLAYER"
}
