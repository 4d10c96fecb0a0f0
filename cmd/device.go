package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marente/fathom/internal/device"
)

var deviceModel string

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Manage dive computer identity on logbook records",
}

var deviceSetCmd = &cobra.Command{
	Use:   "set <dive-id> <device-id>",
	Short: "Assign a device ID to a dive and fill in serial/firmware from matching dives",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[1], 0, 32)
		if err != nil {
			return fmt.Errorf("invalid device id %q: %w", args[1], err)
		}

		store, book, err := openBook()
		if err != nil {
			return err
		}
		rec, err := findDive(book, args[0])
		if err != nil {
			return err
		}
		if deviceModel != "" {
			rec.Model = deviceModel
		}

		device.SetDeviceID(book, rec, uint32(id))

		if err := store.Save(book); err != nil {
			return err
		}
		cmd.Printf("Dive %s: device 0x%08x", shortID(rec.ID), rec.DeviceID)
		if rec.Serial != "" {
			cmd.Printf(", s/n %s", rec.Serial)
		}
		if rec.Firmware != "" {
			cmd.Printf(", fw %s", rec.Firmware)
		}
		cmd.Println()
		return nil
	},
}

func init() {
	deviceSetCmd.Flags().StringVar(&deviceModel, "model", "", "dive computer model name")
	deviceCmd.AddCommand(deviceSetCmd)
	rootCmd.AddCommand(deviceCmd)
}
