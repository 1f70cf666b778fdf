package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/assets"
	"github.com/vovakirdan/pacman-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cabinets and their mazes",
	Long: `Shows every registered cabinet and the mazes it plays, in order,
with their size and dot count. Use --assets to inspect a maze directory.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No cabinets available.")
		return
	}

	levels, err := assetLoader().LoadLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mazes: %v\n", err)
		os.Exit(1)
	}

	for _, g := range games {
		fmt.Printf("%s (%s)\n", g.Title, g.ID)
		n := 0
		for _, lv := range levels {
			if string(lv.Variant) != g.ID {
				continue
			}
			n++
			fmt.Printf("  %2d. %-12s %2dx%-2d  %3d dots\n",
				n, lv.Level.Name(), lv.Level.Width(), lv.Level.Height(), lv.Level.TotalDots())
		}
		if n == 0 {
			fmt.Println("  (no mazes)")
		}
		fmt.Println()
	}

	fmt.Println("Run 'pacman play <id>' to play a cabinet.")
}

// assetLoader returns the loader for --assets, or the bundled assets.
func assetLoader() *assets.Loader {
	if flagAssets != "" {
		return assets.NewLoader(os.DirFS(flagAssets))
	}
	return assets.Default()
}
