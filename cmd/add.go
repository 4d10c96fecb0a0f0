package cmd

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/marente/fathom/internal/dive"
	"github.com/marente/fathom/internal/logbook"
	"github.com/marente/fathom/internal/synth"
)

var (
	addSite      string
	addDate      string
	addDuration  time.Duration
	addMaxDepth  float64
	addMeanDepth float64
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a dive by hand from its summary numbers",
	Long: `Log a dive by hand from its summary numbers.

A hand-entered dive has no depth samples, so fathom synthesizes a plausible
profile from the duration, maximum depth, and (when given) mean depth.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, book, err := openBook()
		if err != nil {
			return err
		}

		start := time.Now()
		if addDate != "" {
			start, err = parseDiveDate(addDate)
			if err != nil {
				return err
			}
		}

		rec := dive.Record{
			ID:        uuid.New().String(),
			Site:      addSite,
			Start:     start,
			Duration:  int(addDuration.Seconds()),
			MaxDepth:  metersToMM(addMaxDepth),
			MeanDepth: metersToMM(addMeanDepth),
		}
		synth.Synthesize(&rec)

		book.Dives = append(book.Dives, rec)
		if err := store.Save(book); err != nil {
			return err
		}

		cmd.Printf("Logged dive %s", shortID(rec.ID))
		if rec.Site != "" {
			cmd.Printf(" at %s", rec.Site)
		}
		cmd.Printf(" (%s, max %s", logbook.FormatDuration(rec.Duration), logbook.FormatDepth(rec.MaxDepth))
		if rec.HasProfile() {
			cmd.Printf(", %d-point synthetic profile)", rec.SampleCount)
		} else {
			cmd.Printf(", no profile)")
		}
		cmd.Println()
		return nil
	},
}

// parseDiveDate accepts "2006-01-02" or "2006-01-02 15:04" in local time.
func parseDiveDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD or YYYY-MM-DD HH:MM)", s)
}

// metersToMM converts a meter flag value to whole millimeters.
func metersToMM(m float64) int {
	return int(math.Round(m * 1000))
}

// shortID returns the leading segment of a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	addCmd.Flags().StringVar(&addSite, "site", "", "dive site name")
	addCmd.Flags().StringVar(&addDate, "date", "", "dive date (YYYY-MM-DD or \"YYYY-MM-DD HH:MM\", default now)")
	addCmd.Flags().DurationVar(&addDuration, "duration", 0, "total dive time (e.g. 45m, 1h10m)")
	addCmd.Flags().Float64Var(&addMaxDepth, "max-depth", 0, "maximum depth in meters")
	addCmd.Flags().Float64Var(&addMeanDepth, "mean-depth", 0, "mean depth in meters (0 = unknown)")
	addCmd.MarkFlagRequired("duration")
	addCmd.MarkFlagRequired("max-depth")
	rootCmd.AddCommand(addCmd)
}
