package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/marente/fathom/internal/dive"
)

var noteCmd = &cobra.Command{
	Use:   "note <dive-id> <message>",
	Short: "Add a note to a dive",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, book, err := openBook()
		if err != nil {
			return err
		}
		rec, err := findDive(book, args[0])
		if err != nil {
			return err
		}

		rec.Notes = append(rec.Notes, dive.Note{
			Timestamp: time.Now(),
			Message:   args[1],
		})

		if err := store.Save(book); err != nil {
			return err
		}
		cmd.Println("Note added.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
}
