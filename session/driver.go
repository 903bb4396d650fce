package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/zenibako/autocue/cue"
)

// Action is the picker's answer for one track.
type Action string

const (
	ActionMark Action = "mark"
	ActionSkip Action = "skip"
	// ActionQuit ends the walk early; undecided tracks stay Pending.
	ActionQuit Action = "quit"
)

// Request asks for the drop of one track.
type Request struct {
	Track Track
	Index int
	Total int
}

// Decision answers a Request. Drop is read only for ActionMark.
type Decision struct {
	Action Action
	Drop   float64
}

// Picker supplies drop decisions. Implementations may block on a human.
type Picker interface {
	Pick(ctx context.Context, req Request) (Decision, error)
}

// Observer is told about every decision and about the end of the walk.
type Observer interface {
	TrackDecided(track Track, outcome Outcome, index, total int)
	SessionEnded(snap Snapshot)
}

// Run asks picker for a decision on every remaining track, in order. It
// returns early on ActionQuit, on a picker error, or when ctx is done. A
// drop the session rejects does not stop the walk; the track is recorded
// as Marked with that drop and fails cue generation at export.
func Run(ctx context.Context, s *Session, picker Picker, observers ...Observer) error {
	defer func() {
		snap := s.Snapshot()
		for _, o := range observers {
			o.SessionEnded(snap)
		}
	}()

	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}

		track, err := s.CurrentTrack()
		if err != nil {
			return err
		}
		index := s.Position()

		decision, err := picker.Pick(ctx, Request{Track: track, Index: index, Total: s.Len()})
		if err != nil {
			return fmt.Errorf("pick drop for track %s: %w", track.ID, err)
		}

		switch decision.Action {
		case ActionMark:
			if err := s.MarkCurrent(decision.Drop); err != nil {
				var invalid *cue.ValidationError
				if !errors.As(err, &invalid) {
					return fmt.Errorf("mark track %s: %w", track.ID, err)
				}
				// A bad drop costs only this track: the export records it
				// as invalidated.
				log.Warn("Drop rejected, track will be invalidated", "track", track.DisplayName(), "error", err)
				if err := s.markUnchecked(decision.Drop); err != nil {
					return err
				}
				break
			}
			log.Info("Marked drop", "track", track.DisplayName(), "drop", decision.Drop, "position", fmt.Sprintf("%d/%d", index+1, s.Len()))
		case ActionSkip:
			if err := s.SkipCurrent(); err != nil {
				return err
			}
			log.Info("Skipped track", "track", track.DisplayName(), "position", fmt.Sprintf("%d/%d", index+1, s.Len()))
		case ActionQuit:
			log.Warn("Session stopped early", "decided", index, "total", s.Len())
			return nil
		default:
			return fmt.Errorf("unexpected picker action %q for track %s", decision.Action, track.ID)
		}

		outcome, _ := s.Outcome(track.ID)
		for _, o := range observers {
			o.TrackDecided(track, outcome, index, s.Len())
		}
	}

	log.Info("Session complete", "id", s.ID(), "tracks", s.Len())
	return nil
}
