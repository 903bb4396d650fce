package picker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/zenibako/autocue/cue"
	"github.com/zenibako/autocue/session"
)

// PreviewFunc renders extra context for a track, such as a waveform.
// An empty result is omitted from the prompt.
type PreviewFunc func(ctx context.Context, track session.Track) string

// FormPicker asks a human for each drop with huh prompts.
type FormPicker struct {
	Preview PreviewFunc
	// SnapResolution quantizes the entered drop to a beat subdivision
	// (4 = quarter notes). Zero leaves the drop as typed.
	SnapResolution int
}

// Pick implements session.Picker. Aborting the prompt with ctrl+c is
// treated as a quit, not an error.
func (p *FormPicker) Pick(ctx context.Context, req session.Request) (session.Decision, error) {
	track := req.Track
	log.Infof("Track %d/%d: %s", req.Index+1, req.Total, track.DisplayName())

	description := describe(track)
	if p.Preview != nil {
		if preview := p.Preview(ctx, track); preview != "" {
			description += "\n\n" + preview
		}
	}

	var choice string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("What should happen with %s?", track.DisplayName())).
				Description(description).
				Options(
					huh.NewOption("Mark the drop", string(session.ActionMark)),
					huh.NewOption("Skip this track (no cues)", string(session.ActionSkip)),
					huh.NewOption("Quit and export what is decided", string(session.ActionQuit)),
				).
				Value(&choice),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return session.Decision{Action: session.ActionQuit}, nil
		}
		return session.Decision{}, fmt.Errorf("failed to get user input for track %s: %w", track.ID, err)
	}

	if session.Action(choice) != session.ActionMark {
		return session.Decision{Action: session.Action(choice)}, nil
	}

	var entered string
	input := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Drop time").
				Description("Seconds (83.5), mm:ss (1:23.5) or hh:mm:ss").
				Value(&entered).
				Validate(dropValidator(track)),
		),
	)
	if err := input.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return session.Decision{Action: session.ActionQuit}, nil
		}
		return session.Decision{}, fmt.Errorf("failed to read drop time for track %s: %w", track.ID, err)
	}

	drop, err := ParseDropTime(entered)
	if err != nil {
		return session.Decision{}, err
	}
	return session.Decision{Action: session.ActionMark, Drop: p.snap(drop, track)}, nil
}

func (p *FormPicker) snap(drop float64, track session.Track) float64 {
	if p.SnapResolution <= 0 {
		return drop
	}
	offset, err := cue.SnapToBeat(drop-track.GridStart, track.BPM, p.SnapResolution)
	if err != nil {
		return drop
	}
	snapped := offset + track.GridStart
	if snapped < 0 || (track.Duration > 0 && snapped >= track.Duration) {
		return drop
	}
	if snapped != drop {
		log.Debugf("Snapped drop %.3f to beat at %.3f", drop, snapped)
	}
	return snapped
}

func describe(track session.Track) string {
	var parts []string
	if track.BPM > 0 {
		parts = append(parts, fmt.Sprintf("%.2f BPM", track.BPM))
	} else {
		parts = append(parts, "BPM unknown")
	}
	if track.Duration > 0 {
		parts = append(parts, cue.FormatTime(track.Duration))
	}
	if track.Key != "" {
		parts = append(parts, track.Key)
	}
	return strings.Join(parts, " · ")
}

// dropValidator accepts times inside [0, duration). The upper bound is
// only checked when the duration is known.
func dropValidator(track session.Track) func(string) error {
	return func(value string) error {
		drop, err := ParseDropTime(value)
		if err != nil {
			return err
		}
		if track.Duration > 0 && drop >= track.Duration {
			return fmt.Errorf("drop must be before the end of the track (%s)", cue.FormatTime(track.Duration))
		}
		return nil
	}
}
