package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds all configurable fathom settings.
type Config struct {
	Units         string `json:"units"`          // "metric" | "imperial" (display only)
	DefaultFormat string `json:"default_format"` // "markdown" | "json"
	LogbookPath   string `json:"logbook_path"`   // override the XDG default
	ImportDir     string `json:"import_dir"`     // default directory for import --watch
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		Units:         "metric",
		DefaultFormat: "markdown",
	}
}

// LoadGlobal reads ~/.config/fathom/config.json.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, ".config", "fathom", "config.json")
	return loadFile(path, true)
}

// LoadProject reads .fathomconfig in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".fathomconfig", false)
}

// loadFile reads and parses a JSON config file at path.
// If returnDefaults is true, returns defaults when the file is absent.
// If returnDefaults is false, returns nil when the file is absent.
func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge combines global and project configs, with project taking precedence.
// Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()

	// Apply global values over defaults.
	if global != nil {
		if global.Units != "" {
			result.Units = global.Units
		}
		if global.DefaultFormat != "" {
			result.DefaultFormat = global.DefaultFormat
		}
		if global.LogbookPath != "" {
			result.LogbookPath = global.LogbookPath
		}
		if global.ImportDir != "" {
			result.ImportDir = global.ImportDir
		}
	}

	// Apply project values over global.
	if project != nil {
		if project.Units != "" {
			result.Units = project.Units
		}
		if project.DefaultFormat != "" {
			result.DefaultFormat = project.DefaultFormat
		}
		if project.LogbookPath != "" {
			result.LogbookPath = project.LogbookPath
		}
		if project.ImportDir != "" {
			result.ImportDir = project.ImportDir
		}
	}

	return result
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
