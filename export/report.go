package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ArtifactTimeFormat names export artifacts; it sorts lexically and is safe
// in file names.
const ArtifactTimeFormat = "2006-01-02T15-04-05"

// Report is the result of one export.
type Report struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	Complete  bool      `json:"complete"`
	Records   []Record  `json:"records"`
}

// Summary counts records by status.
type Summary struct {
	Exported    int `json:"exported"`
	Invalidated int `json:"invalidated"`
	Skipped     int `json:"skipped"`
	Cues        int `json:"cues"`
	Warnings    int `json:"warnings"`
}

// Summary tallies the report.
func (r Report) Summary() Summary {
	var s Summary
	for _, rec := range r.Records {
		switch rec.Status {
		case StatusExported:
			s.Exported++
			s.Cues += len(rec.Cues)
		case StatusInvalidated:
			s.Invalidated++
		case StatusSkippedByUser:
			s.Skipped++
		}
		s.Warnings += len(rec.Warnings)
	}
	return s
}

// Exported returns only the records that carry cues.
func (r Report) Exported() []Record {
	var out []Record
	for _, rec := range r.Records {
		if rec.Status == StatusExported {
			out = append(out, rec)
		}
	}
	return out
}

// JSON serializes the report.
func (r Report) JSON(indent bool) (string, error) {
	var data []byte
	var err error
	if indent {
		data, err = json.MarshalIndent(r, "", "  ")
	} else {
		data, err = json.Marshal(r)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal export report: %w", err)
	}
	return string(data), nil
}

// ArtifactName derives the export file name from the source library file,
// e.g. "rekordbox_autocue_2024-05-01T21-15-00.xml".
func ArtifactName(source string, at time.Time) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if source == "" || base == "" || base == "." || base == string(filepath.Separator) {
		base = "rekordbox"
	}
	return fmt.Sprintf("%s_autocue_%s.xml", base, at.Format(ArtifactTimeFormat))
}
