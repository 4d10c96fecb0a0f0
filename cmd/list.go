package cmd

import (
	"github.com/spf13/cobra"

	"github.com/marente/fathom/internal/logbook"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the dives in the logbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, book, err := openBook()
		if err != nil {
			return err
		}
		if len(book.Dives) == 0 {
			cmd.Println("Logbook is empty. Log a dive with 'fathom add' or 'fathom import'.")
			return nil
		}

		cmd.Printf("%-10s %-16s %-20s %9s %9s %8s\n",
			"ID", "DATE", "SITE", "DURATION", "MAX", "PROFILE")
		for _, d := range book.Dives {
			site := d.Site
			if site == "" {
				site = "—"
			}
			if len(site) > 20 {
				site = site[:19] + "…"
			}
			profile := "none"
			switch {
			case d.Synthetic:
				profile = "synth"
			case d.HasProfile():
				profile = "real"
			}
			cmd.Printf("%-10s %-16s %-20s %9s %9s %8s\n",
				shortID(d.ID),
				d.Start.Format("2006-01-02 15:04"),
				site,
				logbook.FormatDuration(d.Duration),
				logbook.FormatDepth(d.MaxDepth),
				profile,
			)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
