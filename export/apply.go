package export

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/zenibako/autocue/cue"
)

// LibraryWriter persists a track's cues into the library document.
type LibraryWriter interface {
	WriteCues(trackID string, cues []cue.Point) error
}

// Apply hands every exported record to w, in report order. A record whose
// write fails is downgraded to Invalidated; the rest of the batch carries
// on. The input report is not modified.
func Apply(r Report, w LibraryWriter) Report {
	out := r
	out.Records = make([]Record, len(r.Records))
	copy(out.Records, r.Records)

	for i, rec := range out.Records {
		switch rec.Status {
		case StatusExported:
			if err := w.WriteCues(rec.TrackID, rec.Cues); err != nil {
				log.Error("Failed to write cues", "track", rec.Track, "error", err)
				out.Records[i] = rec.invalidate(fmt.Sprintf("write: %v", err))
				continue
			}
			log.Info("Wrote cues", "track", rec.Track, "cues", len(rec.Cues))
			for _, warning := range rec.Warnings {
				log.Warn("Cue warning", "track", rec.Track, "warning", warning)
			}
		case StatusInvalidated:
			log.Warn("Track invalidated", "track", rec.Track, "reason", rec.Reason)
		case StatusSkippedByUser:
			log.Debug("Track skipped", "track", rec.Track)
		}
	}

	s := out.Summary()
	log.Info("Export applied", "exported", s.Exported, "invalidated", s.Invalidated, "skipped", s.Skipped, "cues", s.Cues)
	return out
}
