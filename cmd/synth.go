package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marente/fathom/internal/synth"
)

var synthAll bool

var synthCmd = &cobra.Command{
	Use:   "synth [dive-id]",
	Short: "Synthesize a depth profile from a dive's summary numbers",
	Long: `Synthesize a depth profile from a dive's summary numbers.

The generated profile descends and ascends at a constant rate and, when the
mean depth is known, reproduces it as closely as the geometry allows. Given a
dive ID the profile is (re)generated for that dive, replacing whatever samples
it had. With --all, every dive currently without samples gets one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if synthAll == (len(args) == 1) {
			return fmt.Errorf("pass exactly one of a dive id or --all")
		}

		store, book, err := openBook()
		if err != nil {
			return err
		}

		if synthAll {
			n := 0
			for i := range book.Dives {
				if book.Dives[i].HasProfile() {
					continue
				}
				synth.Synthesize(&book.Dives[i])
				if book.Dives[i].HasProfile() {
					n++
				}
			}
			if err := store.Save(book); err != nil {
				return err
			}
			cmd.Printf("Synthesized profiles for %d dive(s)\n", n)
			return nil
		}

		rec, err := findDive(book, args[0])
		if err != nil {
			return err
		}
		synth.Synthesize(rec)
		if err := store.Save(book); err != nil {
			return err
		}
		if rec.HasProfile() {
			cmd.Printf("Synthesized a %d-point profile for dive %s\n", rec.SampleCount, shortID(rec.ID))
		} else {
			cmd.Printf("Dive %s has no usable summary data; profile left empty\n", shortID(rec.ID))
		}
		return nil
	},
}

func init() {
	synthCmd.Flags().BoolVar(&synthAll, "all", false, "synthesize profiles for every dive without samples")
	rootCmd.AddCommand(synthCmd)
}
