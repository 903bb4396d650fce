package cue

import (
	"fmt"
	"math"
	"strings"
)

// TieBreak decides where a time exactly half way between two grid lines goes.
type TieBreak int

const (
	// HalfDown rounds exact halves toward the lower grid index.
	HalfDown TieBreak = iota
	// HalfUp rounds exact halves toward the higher grid index.
	HalfUp
	// HalfEven rounds exact halves to the even grid index.
	HalfEven
)

func (t TieBreak) String() string {
	switch t {
	case HalfDown:
		return "half-down"
	case HalfUp:
		return "half-up"
	case HalfEven:
		return "half-even"
	default:
		return fmt.Sprintf("tiebreak(%d)", int(t))
	}
}

// ParseTieBreak accepts the names produced by TieBreak.String.
func ParseTieBreak(value string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "half-down":
		return HalfDown, nil
	case "half-up":
		return HalfUp, nil
	case "half-even":
		return HalfEven, nil
	}
	return HalfDown, fmt.Errorf("unknown tie break %q (want half-down, half-up or half-even)", value)
}

// Snap moves t to the nearest reference + k*interval. A non-positive or
// non-finite interval leaves t untouched.
func Snap(t, reference, interval float64, tie TieBreak) float64 {
	if !(interval > 0) || math.IsInf(interval, 0) {
		return t
	}
	x := (t - reference) / interval
	k := math.Floor(x)
	switch frac := x - k; {
	case frac > 0.5:
		k++
	case frac == 0.5:
		switch tie {
		case HalfUp:
			k++
		case HalfEven:
			if math.Mod(k, 2) != 0 {
				k++
			}
		}
	}
	return reference + k*interval
}

// SnapToBeat quantizes t to a beat subdivision grid anchored at zero.
// resolution 4 snaps to quarter notes, 8 to eighths, 2 to half notes.
// Exact halves round to the even grid index.
func SnapToBeat(t, bpm float64, resolution int) (float64, error) {
	if !(bpm > 0) || math.IsInf(bpm, 0) {
		return 0, invalid(KindInvalidBPM, "must be positive and finite, got %v", bpm)
	}
	if resolution <= 0 {
		return 0, fmt.Errorf("grid resolution must be positive, got %d", resolution)
	}
	beat := 60 / bpm
	interval := beat / (float64(resolution) / 4)
	return Snap(t, 0, interval, HalfEven), nil
}
