package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/model"
)

var flagDemoCabinet string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Inspect recorded attract-mode demos",
}

var demoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the demos played in attract mode",
	RunE: func(_ *cobra.Command, _ []string) error {
		demos, err := assetLoader().LoadDemos()
		if err != nil {
			return err
		}
		if len(demos) == 0 {
			fmt.Println("No demos available.")
			return nil
		}
		for _, d := range demos {
			fmt.Printf("  %-9s %-20s level %-12s %5d ticks  %d tracks\n",
				d.Variant, d.Demo.Name, d.Demo.Level, d.Demo.Len(), len(d.Demo.Tracks))
		}
		return nil
	},
}

var demoValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check that a demo file plays on the cabinet's mazes",
	Long: `Parses a demo file and checks it against the mazes of a cabinet:
the level must exist and have an actor for every track, and every
track must hold the same number of moves.

Examples:
  pacman demo validate ./my.dem
  pacman demo validate ./my.dem --cabinet mspacman`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		v, err := model.ParseVariant(flagDemoCabinet)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		d, err := model.ParseDemo(filepath.Base(args[0]), f)
		if err != nil {
			return err
		}

		opts := model.DefaultOptions()
		opts.Variant = v
		m := model.New(opts)
		levels, err := assetLoader().LoadLevels()
		if err != nil {
			return err
		}
		for _, lv := range levels {
			if err := m.AddLevel(lv.Level, lv.Variant); err != nil {
				return fmt.Errorf("%s: %w", lv.Path, err)
			}
		}
		if err := m.ValidateDemo(d); err != nil {
			return err
		}

		fmt.Printf("%s: ok, %d ticks on %s with %d tracks\n", d.Name, d.Len(), d.Level, len(d.Tracks))
		return nil
	},
}

func init() {
	demoValidateCmd.Flags().StringVar(&flagDemoCabinet, "cabinet", string(model.PacMan), "Cabinet whose mazes the demo is checked against")
	demoCmd.AddCommand(demoListCmd)
	demoCmd.AddCommand(demoValidateCmd)
}
