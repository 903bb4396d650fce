package session

import (
	"errors"
	"math"
	"testing"

	"github.com/zenibako/autocue/cue"
)

func testTracks() []Track {
	return []Track{
		{ID: "1", Title: "First", Artist: "A", BPM: 128, Duration: 300},
		{ID: "2", Title: "Second", Artist: "B", BPM: 124, Duration: 280},
		{ID: "3", Title: "Third", BPM: 174, Duration: 250},
	}
}

func TestMarkAllTracksCompletesSession(t *testing.T) {
	s, err := New(testTracks())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	for i, drop := range []float64{60, 45.5, 90} {
		track, err := s.CurrentTrack()
		if err != nil {
			t.Fatalf("CurrentTrack at %d: %v", i, err)
		}
		if track.ID != testTracks()[i].ID {
			t.Fatalf("expected track %s, got %s", testTracks()[i].ID, track.ID)
		}
		if err := s.MarkCurrent(drop); err != nil {
			t.Fatalf("MarkCurrent(%v): %v", drop, err)
		}
	}

	if !s.Done() || s.Position() != 3 {
		t.Fatalf("expected complete session at position 3, got done=%v pos=%d", s.Done(), s.Position())
	}
	if _, err := s.CurrentTrack(); !errors.Is(err, ErrSessionComplete) {
		t.Fatalf("expected ErrSessionComplete, got %v", err)
	}

	outcome, ok := s.Outcome("2")
	if !ok || outcome.State != Marked || outcome.Drop != 45.5 {
		t.Fatalf("unexpected outcome for track 2: %+v ok=%v", outcome, ok)
	}
}

func TestOperationsAfterCompleteLeaveStateUnchanged(t *testing.T) {
	s, _ := New(testTracks()[:1])
	if err := s.SkipCurrent(); err != nil {
		t.Fatalf("SkipCurrent: %v", err)
	}
	before := s.Snapshot()

	if err := s.MarkCurrent(10); !errors.Is(err, ErrSessionComplete) {
		t.Errorf("MarkCurrent after complete: expected ErrSessionComplete, got %v", err)
	}
	if err := s.SkipCurrent(); !errors.Is(err, ErrSessionComplete) {
		t.Errorf("SkipCurrent after complete: expected ErrSessionComplete, got %v", err)
	}
	if err := s.Stage(10); !errors.Is(err, ErrSessionComplete) {
		t.Errorf("Stage after complete: expected ErrSessionComplete, got %v", err)
	}
	if err := s.Advance(); !errors.Is(err, ErrSessionComplete) {
		t.Errorf("Advance after complete: expected ErrSessionComplete, got %v", err)
	}

	after := s.Snapshot()
	if after.Outcomes[0] != before.Outcomes[0] || s.Position() != 1 {
		t.Fatalf("state changed after complete: before %+v after %+v", before, after)
	}
}

func TestStageCanBeRepeatedBeforeAdvance(t *testing.T) {
	s, _ := New(testTracks())

	if err := s.Stage(10); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if err := s.Stage(12.5); err != nil {
		t.Fatalf("second Stage: %v", err)
	}
	if drop, ok := s.Staged(); !ok || drop != 12.5 {
		t.Fatalf("expected staged 12.5, got %v ok=%v", drop, ok)
	}
	if s.Position() != 0 {
		t.Fatal("Stage must not advance the cursor")
	}

	if err := s.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if outcome, _ := s.Outcome("1"); outcome.State != Marked || outcome.Drop != 12.5 {
		t.Fatalf("unexpected committed outcome: %+v", outcome)
	}
	if _, ok := s.Staged(); ok {
		t.Fatal("staged drop should be cleared after Advance")
	}
}

func TestAdvanceWithoutStageLeavesPending(t *testing.T) {
	s, _ := New(testTracks())
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if outcome, _ := s.Outcome("1"); outcome.State != Pending {
		t.Fatalf("expected pending, got %v", outcome.State)
	}
}

func TestDecidedOutcomeIsImmutable(t *testing.T) {
	s, _ := New(testTracks())
	_ = s.MarkCurrent(30)
	_ = s.SkipCurrent()

	if outcome, _ := s.Outcome("1"); outcome.State != Marked || outcome.Drop != 30 {
		t.Fatalf("first track outcome changed: %+v", outcome)
	}
	if outcome, _ := s.Outcome("2"); outcome.State != Skipped {
		t.Fatalf("expected skipped, got %+v", outcome)
	}
}

func TestMarkRejectsInvalidDrop(t *testing.T) {
	tests := []struct {
		name string
		drop float64
	}{
		{"negative", -1},
		{"at end", 300},
		{"past end", 301},
		{"nan", math.NaN()},
		{"infinite", math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := New(testTracks())
			err := s.MarkCurrent(tt.drop)
			if !errors.Is(err, cue.ErrDropOutOfRange) {
				t.Fatalf("expected ErrDropOutOfRange, got %v", err)
			}
			if s.Position() != 0 {
				t.Fatal("cursor moved after a rejected mark")
			}
			if outcome, _ := s.Outcome("1"); outcome.State != Pending {
				t.Fatalf("outcome changed after a rejected mark: %+v", outcome)
			}
		})
	}
}

func TestMarkAllowsAnyDropWhenDurationUnknown(t *testing.T) {
	s, _ := New([]Track{{ID: "x", BPM: 120}})
	if err := s.MarkCurrent(500); err != nil {
		t.Fatalf("expected mark to be accepted, got %v", err)
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	tracks := append(testTracks(), Track{ID: "2"})
	if _, err := New(tracks); !errors.Is(err, ErrDuplicateTrack) {
		t.Fatalf("expected ErrDuplicateTrack, got %v", err)
	}
}

func TestEmptySessionIsComplete(t *testing.T) {
	s, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !s.Done() {
		t.Fatal("empty session should be complete")
	}
	if _, err := s.CurrentTrack(); !errors.Is(err, ErrSessionComplete) {
		t.Fatalf("expected ErrSessionComplete, got %v", err)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	tracks := testTracks()
	s, _ := New(tracks)
	tracks[0].BPM = 1

	snap := s.Snapshot()
	_ = s.MarkCurrent(20)

	if snap.Outcomes[0].State != Pending {
		t.Fatal("snapshot changed after mark")
	}
	if snap.Tracks[0].BPM != 128 {
		t.Fatal("session kept a reference to the caller's slice")
	}
	if snap.Complete {
		t.Fatal("snapshot of a fresh session should not be complete")
	}
	if s.Snapshot().Marked() != 1 {
		t.Fatal("expected one marked track")
	}
}

func TestDisplayName(t *testing.T) {
	tracks := testTracks()
	if got := tracks[0].DisplayName(); got != "A - First" {
		t.Errorf("got %q", got)
	}
	if got := tracks[2].DisplayName(); got != "Third" {
		t.Errorf("got %q", got)
	}
	if got := (Track{ID: "9"}).DisplayName(); got != "track 9" {
		t.Errorf("got %q", got)
	}
}
