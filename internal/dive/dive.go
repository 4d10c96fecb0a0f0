// Package dive defines the logbook data model: dive records, depth
// waypoints, and the on-disk logbook document.
package dive

import "time"

// Waypoint is one (time, depth) vertex of a piecewise-linear dive profile.
// Bearing and NDL are nil when the source of the waypoint had no information
// to populate them, which is always the case for synthesized profiles.
type Waypoint struct {
	Time    int  `json:"time"`              // seconds from dive start
	Depth   int  `json:"depth"`             // millimeters
	Bearing *int `json:"bearing,omitempty"` // degrees
	NDL     *int `json:"ndl,omitempty"`     // no-decompression limit, seconds
}

// Record is a single dive in the logbook.
type Record struct {
	ID        string    `json:"id"`
	Site      string    `json:"site,omitempty"`
	Start     time.Time `json:"start"`
	Duration  int       `json:"duration"`             // seconds
	MaxDepth  int       `json:"max_depth"`            // mm
	MeanDepth int       `json:"mean_depth,omitempty"` // mm; 0 means unknown

	// Device identity, filled in by the device package when a download
	// source is known.
	Model    string `json:"model,omitempty"`
	DeviceID uint32 `json:"device_id,omitempty"`
	Serial   string `json:"serial,omitempty"`
	Firmware string `json:"firmware,omitempty"`

	// Samples is the waypoint buffer; only the first SampleCount entries
	// are meaningful. Synthesized profiles always allocate 6 slots and
	// express shorter shapes by reducing SampleCount.
	Samples     []Waypoint `json:"samples,omitempty"`
	SampleCount int        `json:"sample_count"`

	// LastManualTime is the latest time whose depth was entered by hand
	// rather than recorded by a computer. Synthesis sets it to Duration.
	LastManualTime int  `json:"last_manual_time,omitempty"`
	Synthetic      bool `json:"synthetic,omitempty"`

	Notes []Note `json:"notes,omitempty"`
}

// Note is a free-form annotation attached to a dive.
type Note struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Logbook is the on-disk store document.
type Logbook struct {
	Version int      `json:"version"`
	Dives   []Record `json:"dives"`
}

// AllocSamples resizes r's waypoint buffer to exactly n zero-valued slots
// and sets the active count to n. Existing sample data is discarded.
func (r *Record) AllocSamples(n int) {
	r.Samples = make([]Waypoint, n)
	r.SampleCount = n
}

// ActiveSamples returns the meaningful prefix of the waypoint buffer.
func (r *Record) ActiveSamples() []Waypoint {
	if r.SampleCount > len(r.Samples) {
		return r.Samples
	}
	return r.Samples[:r.SampleCount]
}

// HasProfile reports whether r carries any usable depth samples.
func (r *Record) HasProfile() bool {
	return r.SampleCount > 0
}

// DepthAt returns the piecewise-linear interpolated depth at time t over the
// given waypoints. Times outside the profile clamp to the nearest endpoint.
func DepthAt(s []Waypoint, t int) int {
	if len(s) == 0 {
		return 0
	}
	if t <= s[0].Time {
		return s[0].Depth
	}
	for i := 1; i < len(s); i++ {
		if t > s[i].Time {
			continue
		}
		span := s[i].Time - s[i-1].Time
		if span == 0 {
			return s[i].Depth
		}
		rise := s[i].Depth - s[i-1].Depth
		return s[i-1].Depth + rise*(t-s[i-1].Time)/span
	}
	return s[len(s)-1].Depth
}

// Find returns a pointer to the dive with the given ID, or nil. Prefix
// matches are accepted when unambiguous, so users can pass the short form
// of a UUID.
func (b *Logbook) Find(id string) *Record {
	var match *Record
	for i := range b.Dives {
		d := &b.Dives[i]
		if d.ID == id {
			return d
		}
		if len(id) >= 4 && len(d.ID) > len(id) && d.ID[:len(id)] == id {
			if match != nil {
				return nil // ambiguous prefix
			}
			match = d
		}
	}
	return match
}
