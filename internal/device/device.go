// Package device merges device identity metadata across logbook records.
//
// Dive computers report a numeric device ID with every download, but the
// serial number and firmware version may only be present on some records.
// When a device ID is assigned to a record, the missing fields are filled in
// from any other record downloaded from the same device.
package device

import "github.com/marente/fathom/internal/dive"

// SetDeviceID records deviceID on rec and then visits every record in the
// book with the same device ID and model name, copying its serial number and
// firmware version onto rec the first time either is seen and rec does not
// already have one. A zero deviceID is a no-op. The merge is idempotent.
func SetDeviceID(book *dive.Logbook, rec *dive.Record, deviceID uint32) {
	if deviceID == 0 {
		return
	}
	rec.DeviceID = deviceID
	for i := range book.Dives {
		mergeIdentity(rec, &book.Dives[i])
	}
}

// mergeIdentity copies serial/firmware from src onto dst when both records
// identify the same physical device.
func mergeIdentity(dst, src *dive.Record) {
	if dst.DeviceID != src.DeviceID {
		return
	}
	if dst.Model == "" || src.Model == "" || dst.Model != src.Model {
		return
	}
	if src.Serial != "" && dst.Serial == "" {
		dst.Serial = src.Serial
	}
	if src.Firmware != "" && dst.Firmware == "" {
		dst.Firmware = src.Firmware
	}
}
