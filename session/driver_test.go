package session

import (
	"context"
	"errors"
	"math"
	"testing"
)

type scriptPicker struct {
	decisions []Decision
	requests  []Request
	err       error
}

func (p *scriptPicker) Pick(ctx context.Context, req Request) (Decision, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return Decision{}, p.err
	}
	d := p.decisions[0]
	p.decisions = p.decisions[1:]
	return d, nil
}

type recordingObserver struct {
	decided []Outcome
	ended   []Snapshot
}

func (o *recordingObserver) TrackDecided(track Track, outcome Outcome, index, total int) {
	o.decided = append(o.decided, outcome)
}

func (o *recordingObserver) SessionEnded(snap Snapshot) {
	o.ended = append(o.ended, snap)
}

func TestRunWalksEveryTrack(t *testing.T) {
	s, _ := New(testTracks())
	picker := &scriptPicker{decisions: []Decision{
		{Action: ActionMark, Drop: 60},
		{Action: ActionSkip},
		{Action: ActionMark, Drop: 30},
	}}
	observer := &recordingObserver{}

	if err := Run(context.Background(), s, picker, observer); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !s.Done() {
		t.Fatal("expected session to be complete")
	}

	if len(picker.requests) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(picker.requests))
	}
	for i, req := range picker.requests {
		if req.Index != i || req.Total != 3 || req.Track.ID != testTracks()[i].ID {
			t.Errorf("unexpected request %d: %+v", i, req)
		}
	}

	wantStates := []State{Marked, Skipped, Marked}
	if len(observer.decided) != len(wantStates) {
		t.Fatalf("expected %d decisions, got %d", len(wantStates), len(observer.decided))
	}
	for i, want := range wantStates {
		if observer.decided[i].State != want {
			t.Errorf("decision %d: got %v want %v", i, observer.decided[i].State, want)
		}
	}
	if len(observer.ended) != 1 || !observer.ended[0].Complete {
		t.Fatalf("expected one complete SessionEnded, got %+v", observer.ended)
	}
}

func TestRunQuitLeavesRemainingPending(t *testing.T) {
	s, _ := New(testTracks())
	picker := &scriptPicker{decisions: []Decision{
		{Action: ActionMark, Drop: 60},
		{Action: ActionQuit},
	}}
	observer := &recordingObserver{}

	if err := Run(context.Background(), s, picker, observer); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if s.Done() {
		t.Fatal("session should not be complete after quit")
	}
	for _, id := range []string{"2", "3"} {
		if outcome, _ := s.Outcome(id); outcome.State != Pending {
			t.Errorf("track %s: expected pending, got %v", id, outcome.State)
		}
	}
	if len(observer.ended) != 1 || observer.ended[0].Complete {
		t.Fatalf("expected one incomplete SessionEnded, got %+v", observer.ended)
	}
}

func TestRunPropagatesPickerError(t *testing.T) {
	s, _ := New(testTracks())
	boom := errors.New("boom")
	err := Run(context.Background(), s, &scriptPicker{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected picker error, got %v", err)
	}
	if s.Position() != 0 {
		t.Fatal("cursor moved after picker error")
	}
}

func TestRunContinuesPastRejectedDrop(t *testing.T) {
	s, _ := New(testTracks())
	picker := &scriptPicker{decisions: []Decision{
		{Action: ActionMark, Drop: 999},
		{Action: ActionMark, Drop: math.Inf(1)},
		{Action: ActionMark, Drop: 30},
	}}
	observer := &recordingObserver{}

	if err := Run(context.Background(), s, picker, observer); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !s.Done() || len(observer.decided) != 3 {
		t.Fatalf("expected every track decided, done=%v decided=%d", s.Done(), len(observer.decided))
	}

	snap := s.Snapshot()
	if snap.Outcomes[0].State != Marked || snap.Outcomes[0].Drop != 999 {
		t.Errorf("rejected drop should be kept for export, got %+v", snap.Outcomes[0])
	}
	if snap.Outcomes[1].State != Marked || !math.IsInf(snap.Outcomes[1].Drop, 1) {
		t.Errorf("unexpected outcome %+v", snap.Outcomes[1])
	}
	if snap.Outcomes[2] != (Outcome{State: Marked, Drop: 30}) {
		t.Errorf("unexpected outcome %+v", snap.Outcomes[2])
	}
}

func TestRunRejectsUnknownAction(t *testing.T) {
	s, _ := New(testTracks())
	picker := &scriptPicker{decisions: []Decision{{Action: "maybe"}}}
	if err := Run(context.Background(), s, picker); err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	s, _ := New(testTracks())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	picker := &scriptPicker{}
	if err := Run(ctx, s, picker); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(picker.requests) != 0 {
		t.Fatal("picker should not be asked after cancellation")
	}
}

func TestRunOnCompleteSessionIsNoop(t *testing.T) {
	s, _ := New(nil)
	picker := &scriptPicker{}
	if err := Run(context.Background(), s, picker); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(picker.requests) != 0 {
		t.Fatal("picker should not be asked for an empty session")
	}
}
