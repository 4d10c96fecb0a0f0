package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/marente/fathom/internal/config"
	"github.com/marente/fathom/internal/dive"
	"github.com/marente/fathom/internal/prefs"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

// activePrefs holds the loaded user preferences.
var activePrefs *prefs.Prefs

var rootCmd = &cobra.Command{
	Use:   "fathom",
	Short: "Keep a dive logbook and synthesize depth profiles for dives without samples",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup check for the setup command itself.
		if cmd.Name() == "setup" {
			return nil
		}

		// First-run: preferences missing → run setup wizard automatically.
		// Only do this when stdin is an interactive terminal.
		if !prefs.Exists() {
			if term.IsTerminal(os.Stdin.Fd()) {
				fmt.Println()
				fmt.Println("  Welcome to fathom! Looks like this is your first time.")
				if err := runSetup(true); err != nil {
					return err
				}
			}
			// Non-interactive (tests, pipes): continue with defaults.
		}

		// Load preferences (optional — may not exist in non-interactive environments).
		if prefs.Exists() {
			p, err := prefs.Load()
			if err != nil {
				return fmt.Errorf("loading preferences: %w", err)
			}
			activePrefs = p
		}

		// Load and merge config files.
		global, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		project, err := config.LoadProject()
		if err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		cfg = config.Merge(global, project)

		// Preference values fill in config gaps.
		if activePrefs != nil {
			if cfg.Units == "" || cfg.Units == "metric" {
				if activePrefs.Units != "" {
					cfg.Units = activePrefs.Units
				}
			}
			if cfg.DefaultFormat == "" || cfg.DefaultFormat == "markdown" {
				if activePrefs.DefaultFormat != "" {
					cfg.DefaultFormat = activePrefs.DefaultFormat
				}
			}
			if cfg.ImportDir == "" && activePrefs.ImportDir != "" {
				cfg.ImportDir = activePrefs.ImportDir
			}
		}

		return nil
	},
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetConfig returns the merged configuration for use by subcommands.
func GetConfig() config.Config {
	return cfg
}

// openStore returns the logbook store, honoring a configured path override.
func openStore() (dive.Store, error) {
	return dive.NewStore(cfg.LogbookPath)
}

// openBook loads the logbook, creating an empty one on first use.
func openBook() (dive.Store, *dive.Logbook, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	book, err := dive.LoadOrCreate(store)
	if err != nil {
		return nil, nil, err
	}
	return store, book, nil
}

// findDive resolves a dive ID or unambiguous ID prefix.
func findDive(book *dive.Logbook, id string) (*dive.Record, error) {
	rec := book.Find(id)
	if rec == nil {
		return nil, fmt.Errorf("no dive with id %q (try 'fathom list')", id)
	}
	return rec, nil
}
