package session

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/zenibako/autocue/cue"
)

var (
	// ErrSessionComplete is returned by every cursor operation once the
	// last track has been decided.
	ErrSessionComplete = errors.New("session complete")
	// ErrDuplicateTrack rejects a track list that repeats an identifier.
	ErrDuplicateTrack = errors.New("duplicate track")
)

// Track is the slice of library data the session and the generator need.
type Track struct {
	ID       string  `json:"id"`
	Title    string  `json:"title,omitempty"`
	Artist   string  `json:"artist,omitempty"`
	Key      string  `json:"key,omitempty"`
	Location string  `json:"location,omitempty"`
	BPM      float64 `json:"bpm"`
	Duration float64 `json:"duration"`

	// GridStart is the time of the first downbeat, used as bar zero when
	// cues are snapped to the beat grid.
	GridStart float64 `json:"grid_start,omitempty"`
}

// DisplayName returns "Artist - Title", falling back to the identifier.
func (t Track) DisplayName() string {
	switch {
	case t.Artist != "" && t.Title != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return "track " + t.ID
	}
}

// State is a track's outcome within a session.
type State int

const (
	Pending State = iota
	Marked
	Skipped
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Marked:
		return "marked"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome records what happened to a track. Drop is only meaningful when
// State is Marked.
type Outcome struct {
	State State   `json:"state"`
	Drop  float64 `json:"drop,omitempty"`
}

// Session walks a playlist once, front to back. The cursor never moves
// backwards and a track's outcome is fixed once the cursor leaves it.
type Session struct {
	id       string
	tracks   []Track
	outcomes []Outcome
	index    map[string]int
	cursor   int
	staged   *float64
}

// New creates a session over tracks. An empty list gives a session that is
// already complete.
func New(tracks []Track) (*Session, error) {
	s := &Session{
		id:       uuid.NewString(),
		tracks:   make([]Track, len(tracks)),
		outcomes: make([]Outcome, len(tracks)),
		index:    make(map[string]int, len(tracks)),
	}
	copy(s.tracks, tracks)

	for i, track := range s.tracks {
		if _, exists := s.index[track.ID]; exists {
			return nil, fmt.Errorf("%w: %q appears more than once", ErrDuplicateTrack, track.ID)
		}
		s.index[track.ID] = i
	}

	log.Debug("Created session", "id", s.id, "tracks", len(tracks))
	return s, nil
}

// ID identifies the session in reports and history.
func (s *Session) ID() string {
	return s.id
}

// Len is the number of tracks in the session.
func (s *Session) Len() int {
	return len(s.tracks)
}

// Position is the cursor index; it equals Len once complete.
func (s *Session) Position() int {
	return s.cursor
}

// Done reports whether the cursor has passed the last track.
func (s *Session) Done() bool {
	return s.cursor >= len(s.tracks)
}

// CurrentTrack returns the track under the cursor.
func (s *Session) CurrentTrack() (Track, error) {
	if s.Done() {
		return Track{}, ErrSessionComplete
	}
	return s.tracks[s.cursor], nil
}

// Stage records a drop for the current track without advancing. It can be
// called repeatedly; the last value wins when Advance commits it.
func (s *Session) Stage(drop float64) error {
	track, err := s.CurrentTrack()
	if err != nil {
		return err
	}
	if err := checkDrop(track, drop); err != nil {
		return err
	}
	d := drop
	s.staged = &d
	return nil
}

// Staged returns the drop waiting to be committed for the current track.
func (s *Session) Staged() (float64, bool) {
	if s.staged == nil || s.Done() {
		return 0, false
	}
	return *s.staged, true
}

// Advance commits the staged drop, if any, as Marked and moves to the next
// track. Without a staged drop the track stays Pending.
func (s *Session) Advance() error {
	if s.Done() {
		return ErrSessionComplete
	}
	if s.staged != nil {
		s.outcomes[s.cursor] = Outcome{State: Marked, Drop: *s.staged}
	}
	s.next()
	return nil
}

// MarkCurrent sets the current track's drop and advances.
func (s *Session) MarkCurrent(drop float64) error {
	if err := s.Stage(drop); err != nil {
		return err
	}
	return s.Advance()
}

// markUnchecked records drop as Marked without range checks and advances.
func (s *Session) markUnchecked(drop float64) error {
	if s.Done() {
		return ErrSessionComplete
	}
	s.outcomes[s.cursor] = Outcome{State: Marked, Drop: drop}
	s.next()
	return nil
}

// SkipCurrent marks the current track as skipped and advances.
func (s *Session) SkipCurrent() error {
	if s.Done() {
		return ErrSessionComplete
	}
	s.outcomes[s.cursor] = Outcome{State: Skipped}
	s.next()
	return nil
}

// Outcome looks up a track's outcome by identifier.
func (s *Session) Outcome(id string) (Outcome, bool) {
	i, ok := s.index[id]
	if !ok {
		return Outcome{}, false
	}
	return s.outcomes[i], true
}

func (s *Session) next() {
	track := s.tracks[s.cursor]
	outcome := s.outcomes[s.cursor]
	log.Debug("Track decided", "track", track.ID, "state", outcome.State, "drop", outcome.Drop)
	s.staged = nil
	s.cursor++
}

// Snapshot is a read-only copy of a session's state.
type Snapshot struct {
	ID       string
	Tracks   []Track
	Outcomes []Outcome
	Complete bool
}

// Snapshot copies the session so later mutations cannot leak into a report.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:       s.id,
		Tracks:   make([]Track, len(s.tracks)),
		Outcomes: make([]Outcome, len(s.outcomes)),
		Complete: s.Done(),
	}
	copy(snap.Tracks, s.tracks)
	copy(snap.Outcomes, s.outcomes)
	return snap
}

// Marked counts tracks with a committed drop.
func (snap Snapshot) Marked() int {
	n := 0
	for _, o := range snap.Outcomes {
		if o.State == Marked {
			n++
		}
	}
	return n
}

// checkDrop enforces 0 <= drop < duration. The upper bound is only
// checked when the library gave the track a usable duration; a broken
// duration is reported later by the generator.
func checkDrop(track Track, drop float64) error {
	if math.IsNaN(drop) || math.IsInf(drop, 0) || drop < 0 {
		return &cue.ValidationError{
			Kind:   cue.KindDropOutOfRange,
			Detail: fmt.Sprintf("track %s: drop %v must be a non-negative time", track.ID, drop),
		}
	}
	if track.Duration > 0 && drop >= track.Duration {
		return &cue.ValidationError{
			Kind:   cue.KindDropOutOfRange,
			Detail: fmt.Sprintf("track %s: drop %v is past the track end (%v)", track.ID, drop, track.Duration),
		}
	}
	return nil
}
