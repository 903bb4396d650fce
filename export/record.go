package export

import (
	"github.com/zenibako/autocue/cue"
)

// Status is the per-track export result.
type Status string

const (
	StatusExported      Status = "exported"
	StatusInvalidated   Status = "invalidated"
	StatusSkippedByUser Status = "skipped_by_user"
)

// Record is one track's entry in a report. Cues is empty unless Status is
// StatusExported; Reason is set only for StatusInvalidated.
type Record struct {
	TrackID  string      `json:"track_id"`
	Track    string      `json:"track"`
	Status   Status      `json:"status"`
	Reason   string      `json:"reason,omitempty"`
	Drop     *float64    `json:"drop,omitempty"`
	Cues     []cue.Point `json:"cues"`
	Warnings []string    `json:"warnings,omitempty"`
}

func (r Record) invalidate(reason string) Record {
	r.Status = StatusInvalidated
	r.Reason = reason
	r.Cues = []cue.Point{}
	return r
}
