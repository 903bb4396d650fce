package cue

import "math"

// Grid enables bar snapping relative to a reference "bar zero" time.
type Grid struct {
	Reference float64
	Tie       TieBreak
}

type options struct {
	grid *Grid
}

// Option customizes Generate.
type Option func(*options)

// WithGrid snaps every emitted cue to the nearest bar line counted from
// grid.Reference.
func WithGrid(grid Grid) Option {
	return func(o *options) {
		g := grid
		o.grid = &g
	}
}

// BarSeconds returns the length of one 4/4 bar at the given tempo.
func BarSeconds(bpm float64) (float64, error) {
	if !(bpm > 0) || math.IsInf(bpm, 0) {
		return 0, invalid(KindInvalidBPM, "must be positive and finite, got %v", bpm)
	}
	return 60 / bpm * BeatsPerBar, nil
}

// Generate computes the cue set around a drop.
//
// Every candidate cue is kept only if it lands inside [0, duration); the
// drop itself must be inside that window or the whole call fails. Cues are
// never clamped into range. When a grid is configured, a snapped time that
// would leave the window falls back to the raw time so snapping cannot
// change which offsets are returned.
func Generate(bpm, drop, duration float64, opts ...Option) ([]Point, error) {
	bar, err := BarSeconds(bpm)
	if err != nil {
		return nil, err
	}
	if !(duration > 0) || math.IsInf(duration, 0) {
		return nil, invalid(KindInvalidDuration, "must be positive and finite, got %v", duration)
	}
	if !inRange(drop, duration) {
		return nil, invalid(KindDropOutOfRange, "%v is outside [0, %v)", drop, duration)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	points := make([]Point, 0, len(layout))
	for _, slot := range layout {
		t := drop + float64(slot.Offset)*bar
		if !inRange(t, duration) {
			continue
		}
		offGrid := false
		if o.grid != nil {
			if snapped := Snap(t, o.grid.Reference, bar, o.grid.Tie); inRange(snapped, duration) {
				t = snapped
			} else {
				offGrid = true
			}
		}
		p := slot.at(t)
		p.OffGrid = offGrid
		points = append(points, p)
	}
	return points, nil
}

func inRange(t, duration float64) bool {
	return t >= 0 && t < duration
}
