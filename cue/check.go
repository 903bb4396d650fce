package cue

import (
	"fmt"
	"math"
)

const (
	minCueSpacing = 1.0
	minTypicalBPM = 60.0
	maxTypicalBPM = 200.0
	patternBars   = 64
)

// Check returns advisory warnings for a generated cue set. None of them
// stop an export.
func Check(points []Point, bpm, duration float64) []string {
	var warnings []string

	if len(points) == 0 {
		warnings = append(warnings, "no cues generated")
	}

	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		if spacing := cur.Time - prev.Time; spacing < minCueSpacing {
			warnings = append(warnings, fmt.Sprintf(
				"cues %q and %q are %.0fms apart (minimum %.0fms recommended)",
				prev.Label, cur.Label, spacing*1000, minCueSpacing*1000))
		}
	}

	for _, p := range points {
		if p.OffGrid {
			warnings = append(warnings, fmt.Sprintf(
				"cue %q could not be snapped inside the track and is off the bar grid at %.3fs",
				p.Label, p.Time))
		}
	}

	if bar, err := BarSeconds(bpm); err == nil {
		if pattern := bar * patternBars; duration < pattern {
			warnings = append(warnings, fmt.Sprintf(
				"track may be too short for the full cue pattern: needs ~%.0fs, track is %.0fs",
				pattern, duration))
		}
	}

	if bpm < minTypicalBPM || bpm > maxTypicalBPM {
		warnings = append(warnings, fmt.Sprintf(
			"BPM %.1f is outside the typical range (%.0f-%.0f), verify the tempo",
			bpm, minTypicalBPM, maxTypicalBPM))
	}

	return warnings
}

// FormatTime renders seconds as mm:ss, truncating fractions.
func FormatTime(seconds float64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%s%02d:%02d", sign, total/60, total%60)
}
