// Package prefs manages the user's persistent fathom preferences.
// Preferences live at ~/.config/fathom/profile.json and are created once via
// the interactive setup flow, then referenced on every command.
package prefs

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Prefs holds user-level preferences set during first-run setup.
type Prefs struct {
	Name          string `json:"name"`
	Units         string `json:"units"`          // "metric" | "imperial"
	DefaultFormat string `json:"default_format"` // "markdown" | "json"
	ImportDir     string `json:"import_dir"`     // where dive computer exports land
}

// prefsPath returns the path to the preferences file.
func prefsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fathom", "profile.json"), nil
}

// ConfigDir returns the fathom config directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fathom"), nil
}

// Exists reports whether a preferences file is present on disk.
func Exists() bool {
	p, err := prefsPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// Load reads the preferences from disk. Returns an error if the file is
// missing or malformed.
func Load() (*Prefs, error) {
	p, err := prefsPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("preferences not found — run 'fathom setup' to configure: %w", err)
	}
	var pr Prefs
	if err := json.Unmarshal(data, &pr); err != nil {
		return nil, fmt.Errorf("malformed preferences at %s: %w", p, err)
	}
	return &pr, nil
}

// Save writes the preferences to disk, creating the config directory if needed.
func Save(pr *Prefs) error {
	p, err := prefsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(pr, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

// RunSetup runs the interactive setup wizard and saves the resulting
// preferences. If existing is non-nil, it is used as the default for each
// prompt (edit mode).
func RunSetup(existing *Prefs) (*Prefs, error) {
	r := bufio.NewReader(os.Stdin)

	ask := func(prompt, defaultVal string) (string, error) {
		if defaultVal != "" {
			fmt.Printf("%s [%s]: ", prompt, defaultVal)
		} else {
			fmt.Printf("%s: ", prompt)
		}
		line, err := r.ReadString('\n')
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return defaultVal, nil
		}
		return line, nil
	}

	pr := &Prefs{
		Units:         "metric",
		DefaultFormat: "markdown",
	}
	if existing != nil {
		*pr = *existing
	}

	fmt.Println()
	fmt.Println("  ┌─────────────────────────────────┐")
	fmt.Println("  │   fathom — first-time setup     │")
	fmt.Println("  └─────────────────────────────────┘")
	fmt.Println()

	var err error

	pr.Name, err = ask("  Your name (shown in dive reports)", pr.Name)
	if err != nil {
		return nil, err
	}

	units, err := ask("  Display units (metric/imperial)", pr.Units)
	if err != nil {
		return nil, err
	}
	if strings.ToLower(units) == "imperial" {
		pr.Units = "imperial"
	} else {
		pr.Units = "metric"
	}

	format, err := ask("  Default export format (markdown/json)", pr.DefaultFormat)
	if err != nil {
		return nil, err
	}
	if format == "json" {
		pr.DefaultFormat = "json"
	} else {
		pr.DefaultFormat = "markdown"
	}

	pr.ImportDir, err = ask("  Dive computer export directory (optional)", pr.ImportDir)
	if err != nil {
		return nil, err
	}

	fmt.Println()
	return pr, nil
}
