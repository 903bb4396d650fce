package rekordbox

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/zenibako/autocue/cue"
)

const (
	numMemory  = -1
	maxHotCues = 8
)

// ErrNoHotCueSlot is returned when all eight hot cue pads are taken.
var ErrNoHotCueSlot = errors.New("no free hot cue slot")

// WriteOptions control how existing cue marks are treated.
type WriteOptions struct {
	RemoveMemory bool
	RemoveHot    bool
}

// CueWriter inserts generated cues into library tracks.
type CueWriter struct {
	lib  *Library
	opts WriteOptions
}

// Writer returns a CueWriter bound to the library.
func (l *Library) Writer(opts WriteOptions) *CueWriter {
	return &CueWriter{lib: l, opts: opts}
}

// WriteCues replaces or merges the track's cue marks with cues. The track
// is left untouched when an error is returned.
func (w *CueWriter) WriteCues(trackID string, cues []cue.Point) error {
	track, ok := w.lib.Track(trackID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTrackNotFound, trackID)
	}

	marks := make([]PositionMark, 0, len(track.Marks)+len(cues))
	removed := 0
	for _, mark := range track.Marks {
		if w.removes(mark) {
			removed++
			continue
		}
		marks = append(marks, mark)
	}

	for _, point := range cues {
		mark := newMark(point)
		if point.IsHot() {
			slot, err := freeHotSlot(marks)
			if err != nil {
				return fmt.Errorf("track %s: %w", trackID, err)
			}
			mark.Num = strconv.Itoa(slot)
		} else if hasMemoryAt(marks, mark.Start) {
			log.Debug("Memory cue already present", "trackID", trackID, "start", mark.Start)
			continue
		}
		marks = append(marks, mark)
	}

	track.Marks = marks
	log.Debug("Updated track marks", "trackID", trackID, "removed", removed, "marks", len(marks))
	return nil
}

func (w *CueWriter) removes(mark PositionMark) bool {
	if mark.Type != MarkTypeCue {
		return false
	}
	num, err := strconv.Atoi(mark.Num)
	if err != nil {
		return false
	}
	if num < 0 {
		return w.opts.RemoveMemory
	}
	return w.opts.RemoveHot
}

func newMark(point cue.Point) PositionMark {
	mark := PositionMark{
		Name:  point.Label,
		Type:  MarkTypeCue,
		Start: formatStart(point.Time),
		Num:   strconv.Itoa(numMemory),
	}
	if rgb, ok := ColorRGB(point.Color); ok {
		mark.Red = strconv.Itoa(int(rgb.R))
		mark.Green = strconv.Itoa(int(rgb.G))
		mark.Blue = strconv.Itoa(int(rgb.B))
	}
	return mark
}

// freeHotSlot prefers pad A (0), then the first unused pad.
func freeHotSlot(marks []PositionMark) (int, error) {
	var used [maxHotCues]bool
	for _, mark := range marks {
		num, err := strconv.Atoi(mark.Num)
		if err != nil || num < 0 || num >= maxHotCues {
			continue
		}
		used[num] = true
	}
	for slot := range used {
		if !used[slot] {
			return slot, nil
		}
	}
	return 0, ErrNoHotCueSlot
}

func hasMemoryAt(marks []PositionMark, start string) bool {
	at := parseFloat(start)
	for _, mark := range marks {
		if mark.Type != MarkTypeCue {
			continue
		}
		if num, err := strconv.Atoi(mark.Num); err != nil || num != numMemory {
			continue
		}
		if math.Abs(parseFloat(mark.Start)-at) < 0.0005 {
			return true
		}
	}
	return false
}

func formatStart(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}
