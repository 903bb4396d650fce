package picker

import (
	"math"
	"strings"
	"testing"

	"github.com/zenibako/autocue/session"
)

func TestDropValidator(t *testing.T) {
	validate := dropValidator(session.Track{ID: "1", Duration: 300})

	for _, ok := range []string{"0", "60", "4:59.9"} {
		if err := validate(ok); err != nil {
			t.Errorf("Expected %q to be accepted, got %v", ok, err)
		}
	}
	for _, bad := range []string{"5:00", "301", "soon", "-1"} {
		if err := validate(bad); err == nil {
			t.Errorf("Expected %q to be rejected", bad)
		}
	}

	unknown := dropValidator(session.Track{ID: "2"})
	if err := unknown("999"); err != nil {
		t.Errorf("Unknown duration should accept any non-negative time, got %v", err)
	}
}

func TestFormPickerSnap(t *testing.T) {
	track := session.Track{ID: "1", BPM: 120, Duration: 300, GridStart: 0.25}
	p := &FormPicker{SnapResolution: 4}

	// Beats fall at 0.25 + n*0.5.
	if got := p.snap(60.1, track); math.Abs(got-60.25) > 1e-9 {
		t.Errorf("Expected 60.25, got %v", got)
	}

	off := &FormPicker{}
	if got := off.snap(60.1, track); got != 60.1 {
		t.Errorf("Snapping disabled should keep the typed drop, got %v", got)
	}

	noTempo := session.Track{ID: "2", Duration: 300}
	if got := p.snap(60.1, noTempo); got != 60.1 {
		t.Errorf("Unknown BPM should keep the typed drop, got %v", got)
	}

	// Snapping past the end keeps the typed value.
	short := session.Track{ID: "3", BPM: 120, Duration: 10}
	if got := p.snap(9.9, short); got != 9.9 {
		t.Errorf("Expected in-range drop to be kept, got %v", got)
	}
}

func TestDescribe(t *testing.T) {
	got := describe(session.Track{BPM: 128, Duration: 300, Key: "8A"})
	for _, want := range []string{"128.00 BPM", "05:00", "8A"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %q in %q", want, got)
		}
	}
	if got := describe(session.Track{}); got != "BPM unknown" {
		t.Errorf("Expected BPM unknown, got %q", got)
	}
}
