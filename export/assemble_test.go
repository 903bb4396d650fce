package export

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/zenibako/autocue/cue"
	"github.com/zenibako/autocue/session"
)

var exportTime = time.Date(2024, 5, 1, 21, 15, 0, 0, time.UTC)

func mixedSession(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.New([]session.Track{
		{ID: "10", Title: "Valid", Artist: "A", BPM: 128, Duration: 300},
		{ID: "11", Title: "Broken BPM", Artist: "B", BPM: 0, Duration: 300},
		{ID: "12", Title: "Skipped", Artist: "C", BPM: 126, Duration: 260},
	})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	if err := s.MarkCurrent(60); err != nil {
		t.Fatalf("mark valid: %v", err)
	}
	if err := s.MarkCurrent(60); err != nil {
		t.Fatalf("mark broken: %v", err)
	}
	if err := s.SkipCurrent(); err != nil {
		t.Fatalf("skip: %v", err)
	}
	return s
}

func TestAssembleMixedSession(t *testing.T) {
	s := mixedSession(t)
	report := Assemble(s.Snapshot(), exportTime, Options{})

	if len(report.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(report.Records))
	}

	wantStatus := []Status{StatusExported, StatusInvalidated, StatusSkippedByUser}
	wantIDs := []string{"10", "11", "12"}
	for i, rec := range report.Records {
		if rec.Status != wantStatus[i] {
			t.Errorf("record %d: status %s, want %s", i, rec.Status, wantStatus[i])
		}
		if rec.TrackID != wantIDs[i] {
			t.Errorf("record %d: track %s, want %s", i, rec.TrackID, wantIDs[i])
		}
	}

	if got := len(report.Records[0].Cues); got != 5 {
		t.Errorf("expected 5 cues for the valid track, got %d", got)
	}
	if report.Records[0].Drop == nil || *report.Records[0].Drop != 60 {
		t.Errorf("expected drop 60 on exported record, got %v", report.Records[0].Drop)
	}

	invalid := report.Records[1]
	if len(invalid.Cues) != 0 || !strings.Contains(invalid.Reason, "invalid BPM") {
		t.Errorf("unexpected invalidated record: %+v", invalid)
	}

	skipped := report.Records[2]
	if skipped.Cues == nil || len(skipped.Cues) != 0 || skipped.Reason != "" {
		t.Errorf("unexpected skipped record: %+v", skipped)
	}

	if report.SessionID != s.ID() || !report.CreatedAt.Equal(exportTime) || !report.Complete {
		t.Errorf("unexpected report header: %+v", report)
	}
}

func TestAssemblePendingBecomesSkipped(t *testing.T) {
	s, _ := session.New([]session.Track{
		{ID: "1", BPM: 128, Duration: 300},
		{ID: "2", BPM: 128, Duration: 300},
	})
	_ = s.MarkCurrent(100)

	report := Assemble(s.Snapshot(), exportTime, Options{})
	if len(report.Records) != 2 {
		t.Fatalf("pending track dropped from report: %+v", report.Records)
	}
	if report.Records[1].Status != StatusSkippedByUser {
		t.Fatalf("expected pending track to be skipped, got %s", report.Records[1].Status)
	}
	if report.Complete {
		t.Fatal("report of an unfinished session should not be complete")
	}
}

func TestAssembleInvalidDurationAndDrop(t *testing.T) {
	s, _ := session.New([]session.Track{
		{ID: "no-duration", BPM: 128, Duration: 0},
	})
	_ = s.MarkCurrent(30)

	report := Assemble(s.Snapshot(), exportTime, Options{})
	rec := report.Records[0]
	if rec.Status != StatusInvalidated || !strings.Contains(rec.Reason, "invalid track duration") {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestAssembleRejectedDrops(t *testing.T) {
	snap := session.Snapshot{
		ID: "s",
		Tracks: []session.Track{
			{ID: "late", BPM: 128, Duration: 240},
			{ID: "nan", BPM: 128, Duration: 240},
		},
		Outcomes: []session.Outcome{
			{State: session.Marked, Drop: 500},
			{State: session.Marked, Drop: math.NaN()},
		},
		Complete: true,
	}

	report := Assemble(snap, exportTime, Options{})
	for _, rec := range report.Records {
		if rec.Status != StatusInvalidated || !strings.Contains(rec.Reason, "drop out of range") {
			t.Errorf("track %s: unexpected record %+v", rec.TrackID, rec)
		}
	}
	if report.Records[0].Drop == nil || *report.Records[0].Drop != 500 {
		t.Errorf("expected the rejected drop to be reported, got %v", report.Records[0].Drop)
	}
	if report.Records[1].Drop != nil {
		t.Errorf("non-finite drop must not be reported, got %v", *report.Records[1].Drop)
	}
	if _, err := report.JSON(false); err != nil {
		t.Fatalf("report with a rejected drop must encode: %v", err)
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	snap := mixedSession(t).Snapshot()
	first := Assemble(snap, exportTime, Options{})
	second := Assemble(snap, exportTime, Options{})
	if !reflect.DeepEqual(first, second) {
		t.Fatal("Assemble produced different reports for the same snapshot")
	}
}

func TestAssembleSnapsToTrackGrid(t *testing.T) {
	s, _ := session.New([]session.Track{
		{ID: "1", BPM: 120, Duration: 300, GridStart: 0.5},
	})
	_ = s.MarkCurrent(61.3)

	report := Assemble(s.Snapshot(), exportTime, Options{SnapToGrid: true, TieBreak: cue.HalfDown})
	rec := report.Records[0]
	for _, p := range rec.Cues {
		if p.Offset == 0 && p.Time != 60.5 {
			t.Fatalf("expected drop snapped to 60.5, got %v", p.Time)
		}
	}
}

func TestAssembleAttachesWarnings(t *testing.T) {
	s, _ := session.New([]session.Track{{ID: "short", BPM: 120, Duration: 40}})
	_ = s.MarkCurrent(5)

	rec := Assemble(s.Snapshot(), exportTime, Options{}).Records[0]
	if rec.Status != StatusExported || len(rec.Cues) != 2 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if len(rec.Warnings) == 0 {
		t.Fatal("expected a too-short warning")
	}
}

type fakeWriter struct {
	written map[string][]cue.Point
	fail    map[string]error
}

func (w *fakeWriter) WriteCues(trackID string, cues []cue.Point) error {
	if err := w.fail[trackID]; err != nil {
		return err
	}
	if w.written == nil {
		w.written = make(map[string][]cue.Point)
	}
	w.written[trackID] = cues
	return nil
}

func TestApplyWritesExportedRecords(t *testing.T) {
	report := Assemble(mixedSession(t).Snapshot(), exportTime, Options{})
	writer := &fakeWriter{}

	applied := Apply(report, writer)

	if len(writer.written) != 1 || len(writer.written["10"]) != 5 {
		t.Fatalf("unexpected writes: %+v", writer.written)
	}
	if !reflect.DeepEqual(applied, report) {
		t.Fatal("successful apply should not change the report")
	}
}

func TestApplyDowngradesWriteFailures(t *testing.T) {
	report := Assemble(mixedSession(t).Snapshot(), exportTime, Options{})
	writer := &fakeWriter{fail: map[string]error{"10": errors.New("track not found")}}

	applied := Apply(report, writer)

	rec := applied.Records[0]
	if rec.Status != StatusInvalidated || rec.Reason != "write: track not found" || len(rec.Cues) != 0 {
		t.Fatalf("unexpected record after failed write: %+v", rec)
	}
	if report.Records[0].Status != StatusExported {
		t.Fatal("Apply modified its input report")
	}
	if s := applied.Summary(); s.Exported != 0 || s.Invalidated != 2 || s.Skipped != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}
