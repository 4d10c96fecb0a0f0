package logbook

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/marente/fathom/internal/dive"
)

// Renderer serializes a dive record for export.
type Renderer interface {
	Render(rec *dive.Record) ([]byte, error)
}

// RendererFor returns the renderer for a format name ("json" or "markdown").
func RendererFor(format string) Renderer {
	if strings.ToLower(format) == "json" {
		return &JSONRenderer{}
	}
	return &MarkdownRenderer{}
}

// JSONRenderer renders a dive record as indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(rec *dive.Record) ([]byte, error) {
	return json.MarshalIndent(rec, "", "  ")
}

// MarkdownRenderer renders a dive record as a human-readable report with an
// embedded base64 JSON payload for lossless round-trip parsing.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(rec *dive.Record) ([]byte, error) {
	// Marshal the record to JSON and base64-encode it for the embedded payload.
	jsonBytes, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal dive record: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(jsonBytes)

	var sb strings.Builder

	// Sentinel and embedded payload.
	sb.WriteString("<!-- fathom-dive-version: 1 -->\n")
	fmt.Fprintf(&sb, "<!-- fathom-data: %s -->\n\n", encoded)

	// Title.
	site := rec.Site
	if site == "" {
		site = "Unnamed site"
	}
	fmt.Fprintf(&sb, "# Dive — %s — %s\n\n", site, rec.Start.Format("2006-01-02 15:04 MST"))

	// ## Summary
	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- Duration: %s\n", FormatDuration(rec.Duration))
	fmt.Fprintf(&sb, "- Max depth: %s\n", FormatDepth(rec.MaxDepth))
	if rec.MeanDepth > 0 {
		fmt.Fprintf(&sb, "- Mean depth: %s\n", FormatDepth(rec.MeanDepth))
	}
	if rec.Model != "" {
		fmt.Fprintf(&sb, "- Computer: %s", rec.Model)
		if rec.Serial != "" {
			fmt.Fprintf(&sb, " (s/n %s", rec.Serial)
			if rec.Firmware != "" {
				fmt.Fprintf(&sb, ", fw %s", rec.Firmware)
			}
			sb.WriteString(")")
		}
		sb.WriteString("\n")
	}
	if rec.Synthetic {
		sb.WriteString("- Profile: synthesized from summary data\n")
	}
	sb.WriteString("\n")

	// ## Profile
	sb.WriteString("## Profile\n\n")
	samples := rec.ActiveSamples()
	if len(samples) == 0 {
		sb.WriteString("_No depth samples._\n")
	} else {
		sb.WriteString("| Time | Depth |\n")
		sb.WriteString("|------|-------|\n")
		for _, w := range samples {
			fmt.Fprintf(&sb, "| %s | %s |\n", FormatDuration(w.Time), FormatDepth(w.Depth))
		}
	}
	sb.WriteString("\n")

	// ## Notes
	if len(rec.Notes) > 0 {
		sb.WriteString("## Notes\n\n")
		for _, n := range rec.Notes {
			fmt.Fprintf(&sb, "- (%s) %s\n", n.Timestamp.Format("2006-01-02 15:04"), n.Message)
		}
		sb.WriteString("\n")
	}

	return []byte(sb.String()), nil
}

// FormatDuration renders a second count as m:ss or h:mm:ss.
func FormatDuration(seconds int) string {
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatDepth renders a millimeter depth in meters with one decimal.
func FormatDepth(mm int) string {
	return fmt.Sprintf("%.1f m", float64(mm)/1000)
}
