package cmd

import (
	"github.com/spf13/cobra"

	"github.com/marente/fathom/internal/dive"
	"github.com/marente/fathom/internal/logbook"
	"github.com/marente/fathom/internal/tui"
)

var plainOutput bool

var showCmd = &cobra.Command{
	Use:   "show <dive-id>",
	Short: "View a dive and its depth profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, book, err := openBook()
		if err != nil {
			return err
		}
		rec, err := findDive(book, args[0])
		if err != nil {
			return err
		}

		if plainOutput {
			printDive(cmd, rec)
			return nil
		}
		return tui.Run(rec)
	},
}

// printDive writes a plain-text summary and chart to stdout.
func printDive(cmd *cobra.Command, rec *dive.Record) {
	site := rec.Site
	if site == "" {
		site = "Unnamed site"
	}
	cmd.Printf("## %s — %s\n", site, rec.Start.Format("2006-01-02 15:04 MST"))
	cmd.Printf("  Duration:   %s\n", logbook.FormatDuration(rec.Duration))
	cmd.Printf("  Max depth:  %s\n", logbook.FormatDepth(rec.MaxDepth))
	if rec.MeanDepth > 0 {
		cmd.Printf("  Mean depth: %s\n", logbook.FormatDepth(rec.MeanDepth))
	}
	if rec.Model != "" {
		cmd.Printf("  Computer:   %s\n", rec.Model)
	}
	if rec.Synthetic {
		cmd.Println("  Profile:    synthesized from summary data")
	}
	cmd.Println()
	cmd.Print(tui.RenderChart(rec, 64, 16))
	for _, n := range rec.Notes {
		cmd.Printf("  * (%s) %s\n", n.Timestamp.Format("2006-01-02 15:04"), n.Message)
	}
}

func init() {
	showCmd.Flags().BoolVar(&plainOutput, "plain", false, "print a plain-text summary instead of the TUI")
	rootCmd.AddCommand(showCmd)
}
