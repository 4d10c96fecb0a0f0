// Package synth generates a believable depth profile for a dive that has
// summary scalars but no recorded depth samples.
//
// The generated profile is a six-waypoint shape
//
//	(0, 0) → (t1, max) → (t2, max) → (t3, d) → (t4, d) → (duration, 0)
//
// whose time-weighted average depth reproduces the dive's stated mean depth
// and whose descent and ascent segments all share one constant slope. With
// max depth, mean depth, and duration fixed and the slope and the shoulder
// depth d chosen up front, the four interior times have a unique closed-form
// solution; no search is needed, only an ordering check afterwards.
package synth

import (
	"math"

	"github.com/marente/fathom/internal/dive"
)

const (
	safetyStopDepth = 5000 // mm
	safetyStopHold  = 180  // seconds

	// minSlope is the slowest ascent/descent rate the builder will accept,
	// 5 m per minute in mm per second.
	minSlope = 5000.0 / 60
)

// params is one slope / shoulder-depth candidate for the constrained solver.
type params struct {
	slope     float64 // mm per second
	depthFrac float64 // shoulder depth as a fraction of max depth
}

// attempts is the fallback chain, ordered from realistic to deliberately
// absurd. The last entry exists purely to force a feasible ordering when no
// sane rate can reproduce the average.
var attempts = []params{
	{5000.0 / 60, 0.33},
	{10000.0 / 60, 0.10},
	{10000, 0.01},
}

// solve computes the four interior waypoints for the six-point constrained
// shape and writes them into s[1..4]. It reports false, leaving s untouched,
// when the computed times are not ordered within [0, duration].
//
// Derivation: writing tFrac for the "excess" time duration·(1 − avg/max),
// the area constraint and the equal-slope constraints reduce to
//
//	t1 = max/slope
//	t4 = duration − t1·depthFrac
//	t3 = t4 − (tFrac − t1)/(1 − depthFrac)
//	t2 = t3 − t1·(1 − depthFrac)
//
// each rounded to the nearest whole second.
func solve(s []dive.Waypoint, maxDepth, avgDepth, duration int, slope, depthFrac float64) bool {
	tFrac := float64(duration) * (1 - float64(avgDepth)/float64(maxDepth))
	t1 := int(math.Round(float64(maxDepth) / slope))
	t4 := int(math.Round(float64(duration) - float64(t1)*depthFrac))
	t3 := int(math.Round(float64(t4) - (tFrac-float64(t1))/(1-depthFrac)))
	t2 := int(math.Round(float64(t3) - float64(t1)*(1-depthFrac)))

	if t1 < 0 || t1 > t2 || t2 > t3 || t3 > t4 || t4 > duration {
		return false
	}

	d := int(math.Round(float64(maxDepth) * depthFrac))
	s[1].Time, s[1].Depth = t1, maxDepth
	s[2].Time, s[2].Depth = t2, maxDepth
	s[3].Time, s[3].Depth = t3, d
	s[4].Time, s[4].Depth = t4, d
	return true
}

// buildNoAvg fills in a profile when no mean depth is known and no area
// constraint can be imposed. Short or shallow dives become a plain trapezoid;
// anything deeper than 10 m and longer than 10 minutes gets a 3 minute safety
// stop at 5 m before the final ascent.
func buildNoAvg(s []dive.Waypoint, maxDepth, duration int, slope float64) {
	descent := int(math.Round(float64(maxDepth) / slope))
	if maxDepth < 10000 || duration < 600 {
		s[1].Time, s[1].Depth = descent, maxDepth
		s[2].Time, s[2].Depth = duration-descent, maxDepth
		return
	}
	stopAscent := int(math.Round(safetyStopDepth / slope))
	s[1].Time, s[1].Depth = descent, maxDepth
	s[2].Time, s[2].Depth = duration-descent-safetyStopHold, maxDepth
	s[3].Time, s[3].Depth = duration-stopAscent-safetyStopHold, safetyStopDepth
	s[4].Time, s[4].Depth = duration-stopAscent, safetyStopDepth
}

// Synthesize replaces rec's waypoint buffer with a synthetic profile derived
// from its summary scalars (Duration, MaxDepth, MeanDepth). It mutates only
// rec, performs no I/O, and always returns normally: every abnormal input is
// handled by a value-level branch, never an error.
//
// A dive with zero duration or zero max depth gets an empty profile. A dive
// with no mean depth gets the heuristic no-average shape. Otherwise the
// constrained solver is tried with each parameter pair in the fallback chain;
// if even the absurd last pair cannot order the waypoints, the profile keeps
// only its two fixed endpoints. Callers must not assume a non-trivial profile
// is always produced.
func Synthesize(rec *dive.Record) {
	rec.AllocSamples(6)
	s := rec.Samples

	duration := rec.Duration
	maxDepth := rec.MaxDepth
	avgDepth := rec.MeanDepth

	s[5].Time = duration

	if duration == 0 || maxDepth == 0 {
		rec.SampleCount = 0
		return
	}

	rec.LastManualTime = duration
	rec.Synthetic = true

	// No average to hit: aim for a sane slope, but bow to the insanity of
	// the supplied data.
	if avgDepth == 0 {
		buildNoAvg(s, maxDepth, duration, math.Max(2*float64(maxDepth)/float64(duration), minSlope))
		if s[3].Time == 0 { // just a 4 point profile
			rec.SampleCount = 4
			s[3].Time = duration
		}
		return
	}

	// An average at or above max depth, or implausibly shallow, is not a
	// usable average. Substitute one that is.
	if avgDepth < maxDepth/10 || avgDepth >= maxDepth {
		avgDepth = (maxDepth + 10000) / 3
		if avgDepth > maxDepth {
			avgDepth = maxDepth * 2 / 3
		}
	}
	if avgDepth == 0 {
		avgDepth = 1
	}

	for _, p := range attempts {
		if solve(s, maxDepth, avgDepth, duration, p.slope, p.depthFrac) {
			return
		}
	}

	// Even the absurd slope failed the ordering check. Give up: the profile
	// keeps only its (0,0) and (duration,0) endpoints.
}
