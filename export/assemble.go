package export

import (
	"math"
	"time"

	"github.com/zenibako/autocue/cue"
	"github.com/zenibako/autocue/session"
)

// Options tunes cue generation during assembly.
type Options struct {
	// SnapToGrid aligns cues to bar lines counted from each track's
	// GridStart instead of from the drop.
	SnapToGrid bool
	TieBreak   cue.TieBreak
}

// Assemble folds a session snapshot into a report, one record per track in
// session order. Generator errors become Invalidated records; nothing here
// fails the batch. Pending tracks are reported as skipped.
func Assemble(snap session.Snapshot, at time.Time, opts Options) Report {
	report := Report{
		SessionID: snap.ID,
		CreatedAt: at,
		Complete:  snap.Complete,
		Records:   make([]Record, 0, len(snap.Tracks)),
	}

	for i, track := range snap.Tracks {
		report.Records = append(report.Records, assembleTrack(track, snap.Outcomes[i], opts))
	}
	return report
}

func assembleTrack(track session.Track, outcome session.Outcome, opts Options) Record {
	record := Record{
		TrackID: track.ID,
		Track:   track.DisplayName(),
		Status:  StatusSkippedByUser,
		Cues:    []cue.Point{},
	}
	if outcome.State != session.Marked {
		return record
	}

	drop := outcome.Drop
	if !math.IsNaN(drop) && !math.IsInf(drop, 0) {
		record.Drop = &drop
	}

	var genOpts []cue.Option
	if opts.SnapToGrid {
		genOpts = append(genOpts, cue.WithGrid(cue.Grid{Reference: track.GridStart, Tie: opts.TieBreak}))
	}

	points, err := cue.Generate(track.BPM, drop, track.Duration, genOpts...)
	if err != nil {
		return record.invalidate(err.Error())
	}

	record.Status = StatusExported
	record.Cues = points
	record.Warnings = cue.Check(points, track.BPM, track.Duration)
	return record
}
