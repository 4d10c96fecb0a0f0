package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/marente/fathom/internal/logbook"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <dive-id>",
	Short: "Export a dive as a shareable report",
	Long: `Export a dive as a shareable report.

Markdown reports embed the full record, so they can be re-imported losslessly
with 'fathom import'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, book, err := openBook()
		if err != nil {
			return err
		}
		rec, err := findDive(book, args[0])
		if err != nil {
			return err
		}

		format := exportFormat
		if format == "" {
			format = cfg.DefaultFormat
		}

		out, err := logbook.RendererFor(format).Render(rec)
		if err != nil {
			return err
		}

		if exportOutput == "" || exportOutput == "-" {
			cmd.Print(string(out))
			return nil
		}
		if err := os.WriteFile(exportOutput, out, 0o644); err != nil {
			return err
		}
		cmd.Printf("Wrote %s\n", exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "output format: markdown or json (default from config)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
