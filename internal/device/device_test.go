package device_test

import (
	"reflect"
	"testing"

	"github.com/marente/fathom/internal/device"
	"github.com/marente/fathom/internal/dive"
)

func TestSetDeviceIDCopiesIdentity(t *testing.T) {
	book := &dive.Logbook{Dives: []dive.Record{
		{ID: "a", Model: "Suunto D5", DeviceID: 0xdeadbeef, Serial: "12345", Firmware: "2.1.0"},
		{ID: "b", Model: "Suunto D5"},
	}}
	rec := &book.Dives[1]

	device.SetDeviceID(book, rec, 0xdeadbeef)

	if rec.DeviceID != 0xdeadbeef {
		t.Fatalf("DeviceID = %#x, want 0xdeadbeef", rec.DeviceID)
	}
	if rec.Serial != "12345" {
		t.Errorf("Serial = %q, want %q", rec.Serial, "12345")
	}
	if rec.Firmware != "2.1.0" {
		t.Errorf("Firmware = %q, want %q", rec.Firmware, "2.1.0")
	}
}

func TestSetDeviceIDRequiresMatchingModel(t *testing.T) {
	book := &dive.Logbook{Dives: []dive.Record{
		{ID: "a", Model: "Suunto D5", DeviceID: 7, Serial: "12345"},
		{ID: "b", Model: "Shearwater Perdix"},
	}}
	rec := &book.Dives[1]

	device.SetDeviceID(book, rec, 7)

	if rec.Serial != "" {
		t.Errorf("Serial copied across model mismatch: %q", rec.Serial)
	}
}

func TestSetDeviceIDKeepsExistingFields(t *testing.T) {
	book := &dive.Logbook{Dives: []dive.Record{
		{ID: "a", Model: "Suunto D5", DeviceID: 7, Serial: "11111", Firmware: "1.0"},
		{ID: "b", Model: "Suunto D5", Serial: "22222"},
	}}
	rec := &book.Dives[1]

	device.SetDeviceID(book, rec, 7)

	// Serial was already set and must not be overwritten; firmware was
	// missing and is filled in.
	if rec.Serial != "22222" {
		t.Errorf("Serial overwritten: %q", rec.Serial)
	}
	if rec.Firmware != "1.0" {
		t.Errorf("Firmware = %q, want %q", rec.Firmware, "1.0")
	}
}

func TestSetDeviceIDZeroIsNoOp(t *testing.T) {
	book := &dive.Logbook{Dives: []dive.Record{
		{ID: "a", Model: "Suunto D5", DeviceID: 7, Serial: "12345"},
		{ID: "b", Model: "Suunto D5"},
	}}
	rec := &book.Dives[1]

	device.SetDeviceID(book, rec, 0)

	if rec.DeviceID != 0 || rec.Serial != "" {
		t.Errorf("zero device ID mutated record: %+v", rec)
	}
}

func TestSetDeviceIDIdempotent(t *testing.T) {
	book := &dive.Logbook{Dives: []dive.Record{
		{ID: "a", Model: "Suunto D5", DeviceID: 7, Serial: "12345", Firmware: "2.1.0"},
		{ID: "b", Model: "Suunto D5"},
	}}
	rec := &book.Dives[1]

	device.SetDeviceID(book, rec, 7)
	first := *rec
	device.SetDeviceID(book, rec, 7)

	if !reflect.DeepEqual(*rec, first) {
		t.Errorf("second merge changed record:\nfirst:  %+v\nsecond: %+v", first, *rec)
	}
}
