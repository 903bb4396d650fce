package rekordbox

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/zenibako/autocue/cue"
)

// BPM parses AverageBpm. A missing or malformed value yields 0, which the
// cue generator reports as an invalid BPM.
func (t *Track) BPM() float64 {
	return parseFloat(t.AverageBpm)
}

// Duration parses TotalTime, in seconds.
func (t *Track) Duration() float64 {
	return parseFloat(t.TotalTime)
}

// GridStart returns the time of the downbeat at the first tempo anchor, or
// 0 when the track has no beat grid.
func (t *Track) GridStart() float64 {
	if len(t.Tempos) == 0 {
		return 0
	}
	first := t.Tempos[0]
	start := parseFloat(first.Inizio)
	bpm := parseFloat(first.Bpm)
	beat, err := strconv.Atoi(strings.TrimSpace(first.Battito))
	if bpm <= 0 || err != nil || beat <= 1 {
		return start
	}
	return start - float64((beat-1)%cue.BeatsPerBar)*60/bpm
}

// AudioPath decodes Location into a local file path.
func (t *Track) AudioPath() string {
	return decodeLocation(t.Location)
}

func decodeLocation(location string) string {
	if location == "" {
		return ""
	}
	if !strings.HasPrefix(location, "file:") {
		return location
	}

	u, err := url.Parse(location)
	if err != nil {
		// Fall back to prefix stripping for locations with stray characters.
		path := strings.TrimPrefix(location, "file://localhost")
		path = strings.TrimPrefix(path, "file://")
		if unescaped, uerr := url.PathUnescape(path); uerr == nil {
			path = unescaped
		}
		return filepath.FromSlash(path)
	}

	path := u.Path
	if runtime.GOOS == "windows" && len(path) > 2 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path)
}

func parseFloat(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return f
}
