// Package logbook imports dive records from exported log files and renders
// them back out for sharing.
package logbook

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/marente/fathom/internal/dive"
)

// Parser deserializes an exported dive log into records.
type Parser interface {
	Parse(data []byte) ([]dive.Record, error)
}

// ParserFor returns the parser for a file extension (with or without the
// leading dot). Unrecognized extensions get the JSON parser.
func ParserFor(ext string) Parser {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		return &YAMLParser{}
	case "md", "markdown":
		return &MarkdownParser{}
	default:
		return &JSONParser{}
	}
}

// JSONParser parses a JSON export: a logbook document, a bare array of
// records, or a single record object.
type JSONParser struct{}

func (p *JSONParser) Parse(data []byte) ([]dive.Record, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var recs []dive.Record
		if err := json.Unmarshal(data, &recs); err != nil {
			return nil, fmt.Errorf("failed to parse JSON dive log: %w", err)
		}
		return validate(recs)
	}

	// A document with a "dives" key is a full logbook export; anything else
	// is treated as a single record.
	var book dive.Logbook
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("failed to parse JSON dive log: %w", err)
	}
	if book.Dives != nil {
		return validate(book.Dives)
	}

	var rec dive.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse JSON dive log: %w", err)
	}
	return validate([]dive.Record{rec})
}

// yamlDive is the hand-written YAML import shape. Depths are given in meters
// (fractional values allowed) and converted to millimeters on import.
type yamlDive struct {
	Site      string    `yaml:"site"`
	Start     time.Time `yaml:"start"`
	Duration  int       `yaml:"duration"`   // seconds
	MaxDepth  float64   `yaml:"max_depth"`  // meters
	MeanDepth float64   `yaml:"mean_depth"` // meters; 0 or absent = unknown
	Model     string    `yaml:"model"`
	DeviceID  uint32    `yaml:"device_id"`
	Serial    string    `yaml:"serial"`
	Firmware  string    `yaml:"firmware"`
}

// yamlDoc is the top-level YAML import document.
type yamlDoc struct {
	Dives []yamlDive `yaml:"dives"`
}

// YAMLParser parses a hand-written YAML dive log.
type YAMLParser struct{}

func (p *YAMLParser) Parse(data []byte) ([]dive.Record, error) {
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML dive log: %w", err)
	}
	if len(doc.Dives) == 0 {
		return nil, fmt.Errorf("failed to parse YAML dive log: no dives found")
	}

	recs := make([]dive.Record, 0, len(doc.Dives))
	for _, y := range doc.Dives {
		recs = append(recs, dive.Record{
			Site:      y.Site,
			Start:     y.Start,
			Duration:  y.Duration,
			MaxDepth:  metersToMM(y.MaxDepth),
			MeanDepth: metersToMM(y.MeanDepth),
			Model:     y.Model,
			DeviceID:  y.DeviceID,
			Serial:    y.Serial,
			Firmware:  y.Firmware,
		})
	}
	return validate(recs)
}

// MarkdownParser parses a Markdown dive report by extracting the embedded
// base64 JSON payload from the sentinel comments, so exported reports can be
// re-imported losslessly.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(data []byte) ([]dive.Record, error) {
	content := string(data)

	// Require the version sentinel.
	if !strings.Contains(content, "<!-- fathom-dive-version: 1 -->") {
		return nil, fmt.Errorf("not a valid dive report: missing version sentinel")
	}

	// Extract the base64 payload from <!-- fathom-data: <base64> -->.
	const prefix = "<!-- fathom-data: "
	const suffix = " -->"
	start := strings.Index(content, prefix)
	if start == -1 {
		return nil, fmt.Errorf("not a valid dive report: missing data payload")
	}
	start += len(prefix)
	end := strings.Index(content[start:], suffix)
	if end == -1 {
		return nil, fmt.Errorf("not a valid dive report: malformed data payload")
	}
	encoded := content[start : start+end]

	jsonBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("not a valid dive report: corrupted base64 payload: %w", err)
	}

	var rec dive.Record
	if err := json.Unmarshal(jsonBytes, &rec); err != nil {
		return nil, fmt.Errorf("not a valid dive report: failed to parse embedded JSON: %w", err)
	}
	return validate([]dive.Record{rec})
}

// metersToMM converts a fractional meter depth to whole millimeters.
func metersToMM(m float64) int {
	return int(math.Round(m * 1000))
}

// validate rejects records whose summary scalars could not have come from a
// real dive. Zero values are allowed (the synthesizer treats them as unknown
// or degenerate); negative values are import errors.
func validate(recs []dive.Record) ([]dive.Record, error) {
	for i := range recs {
		r := &recs[i]
		if r.Duration < 0 {
			return nil, fmt.Errorf("dive %d: negative duration %d", i+1, r.Duration)
		}
		if r.MaxDepth < 0 {
			return nil, fmt.Errorf("dive %d: negative max depth %d", i+1, r.MaxDepth)
		}
		if r.MeanDepth < 0 {
			return nil, fmt.Errorf("dive %d: negative mean depth %d", i+1, r.MeanDepth)
		}
		if r.SampleCount < 0 || r.SampleCount > len(r.Samples) {
			r.SampleCount = len(r.Samples)
		}
	}
	return recs, nil
}
