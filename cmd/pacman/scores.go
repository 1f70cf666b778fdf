package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/model"
	"github.com/vovakirdan/pacman-arcade/internal/registry"
	"github.com/vovakirdan/pacman-arcade/internal/storage"
)

var (
	flagExport string
	flagImport string
	flagLimit  int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [cabinet]",
	Short: "Show, export or import high scores",
	Long: `Display the top high scores of a cabinet (pacman when omitted).

With --export the full score history is written as YAML; with --import
a file in the same format replaces the cabinet's scores. --clear deletes
them.

Examples:
  pacman scores
  pacman scores mspacman --limit 20
  pacman scores pacman --export backup.yaml
  pacman scores pacman --import backup.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagExport, "export", "", "Write all scores to a YAML file")
	scoresCmd.Flags().StringVar(&flagImport, "import", "", "Replace scores with those in a YAML file")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", model.MaxHighScores, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score of the cabinet")
	scoresCmd.MarkFlagsMutuallyExclusive("export", "import", "clear")
}

// scoreFile is the YAML layout of an exported score table.
type scoreFile struct {
	Cabinet string        `yaml:"cabinet"`
	Scores  []scoreRecord `yaml:"scores"`
}

type scoreRecord struct {
	Name      string    `yaml:"name"`
	Score     int       `yaml:"score"`
	Level     int       `yaml:"level,omitempty"`
	SessionID string    `yaml:"session,omitempty"`
	Date      time.Time `yaml:"date,omitempty"`
}

func runScores(_ *cobra.Command, args []string) {
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

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagExport != "":
		err = exportScores(store, gameID, flagExport)
	case flagImport != "":
		err = importScores(store, gameID, flagImport)
	case flagClear:
		if err = store.ClearScores(gameID); err == nil {
			fmt.Printf("Cleared all %s scores\n", gameID)
		}
	default:
		err = printScores(store, gameID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func printScores(store *storage.Store, gameID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'pacman play %s' to set the first high score!\n", gameID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %s\n", "Rank", "Name", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %s\n", "----", "----", "-----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %-8d  %-5d  %s\n", i+1, entry.Name, entry.Score, entry.Level, dateStr)
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}

func exportScores(store *storage.Store, gameID, path string) error {
	entries, err := store.AllScores(gameID)
	if err != nil {
		return err
	}

	out := scoreFile{Cabinet: gameID, Scores: make([]scoreRecord, 0, len(entries))}
	for _, e := range entries {
		out.Scores = append(out.Scores, scoreRecord{
			Name:      e.Name,
			Score:     e.Score,
			Level:     e.Level,
			SessionID: e.SessionID,
			Date:      e.CreatedAt,
		})
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding scores: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Exported %d scores to %s\n", len(out.Scores), path)
	return nil
}

func importScores(store *storage.Store, gameID, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var in scoreFile
	if err := yaml.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if in.Cabinet != "" && in.Cabinet != gameID {
		return fmt.Errorf("%s holds %s scores, not %s", path, in.Cabinet, gameID)
	}

	entries := make([]storage.ScoreEntry, 0, len(in.Scores))
	for _, s := range in.Scores {
		if s.Score < 0 {
			return fmt.Errorf("%s: negative score for %q", path, s.Name)
		}
		entries = append(entries, storage.ScoreEntry{
			Name:      s.Name,
			SessionID: s.SessionID,
			Level:     s.Level,
			Score:     s.Score,
		})
	}
	if err := store.ReplaceScores(gameID, entries); err != nil {
		return err
	}
	fmt.Printf("Imported %d scores into %s\n", len(entries), gameID)
	return nil
}
