package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/marente/fathom/internal/logbook"
	"github.com/marente/fathom/internal/synth"
	"github.com/marente/fathom/internal/watch"
)

var importWatch bool

var importCmd = &cobra.Command{
	Use:   "import [file...]",
	Short: "Import dive computer exports (JSON, YAML, or fathom Markdown reports)",
	Long: `Import dive computer exports (JSON, YAML, or fathom Markdown reports).

Dives that arrive without depth samples get a synthetic profile derived from
their summary numbers. With --watch, fathom keeps watching the import
directory and picks up new exports as they appear.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !importWatch && len(args) == 0 {
			return fmt.Errorf("nothing to import: pass files or use --watch")
		}

		for _, path := range args {
			n, err := importFile(path)
			if err != nil {
				return err
			}
			cmd.Printf("Imported %d dive(s) from %s\n", n, path)
		}

		if !importWatch {
			return nil
		}

		dir := cfg.ImportDir
		if dir == "" {
			return fmt.Errorf("no import directory configured: set import_dir or run 'fathom setup'")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		cmd.Printf("Watching %s for new dive logs (ctrl-c to stop)\n", dir)
		w := &watch.Watcher{}
		return w.Run(ctx, dir, func(path string) error {
			n, err := importFile(path)
			if err != nil {
				return err
			}
			cmd.Printf("Imported %d dive(s) from %s\n", n, path)
			return nil
		})
	},
}

// importFile parses one export file and appends its dives to the logbook,
// synthesizing profiles for dives that have no samples.
func importFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("file not found: %s", path)
		}
		return 0, err
	}

	recs, err := logbook.ParserFor(filepath.Ext(path)).Parse(data)
	if err != nil {
		return 0, err
	}

	store, book, err := openBook()
	if err != nil {
		return 0, err
	}

	for i := range recs {
		if recs[i].ID == "" {
			recs[i].ID = uuid.New().String()
		}
		if !recs[i].HasProfile() {
			synth.Synthesize(&recs[i])
		}
		book.Dives = append(book.Dives, recs[i])
	}
	if err := store.Save(book); err != nil {
		return 0, err
	}
	return len(recs), nil
}

func init() {
	importCmd.Flags().BoolVar(&importWatch, "watch", false, "keep watching the configured import directory")
	rootCmd.AddCommand(importCmd)
}
