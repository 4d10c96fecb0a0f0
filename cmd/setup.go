package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marente/fathom/internal/prefs"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure fathom (re-run anytime to edit settings)",
	// Bypass the normal PersistentPreRunE so setup works before preferences exist.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(false)
	},
}

// runSetup runs the interactive setup wizard.
// If firstRun is true, a welcome message is shown.
func runSetup(firstRun bool) error {
	if firstRun {
		fmt.Println()
		fmt.Println("  Welcome to fathom! Let's get you set up.")
	}

	// Load existing preferences as defaults if present.
	var existing *prefs.Prefs
	if prefs.Exists() {
		p, err := prefs.Load()
		if err == nil {
			existing = p
		}
	}

	pr, err := prefs.RunSetup(existing)
	if err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}

	if err := prefs.Save(pr); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	fmt.Println("  ✓ Preferences saved.")
	fmt.Println("  Setup complete. Run 'fathom add' to log your first dive.")
	fmt.Println()
	return nil
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
