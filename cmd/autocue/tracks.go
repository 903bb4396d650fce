package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/zenibako/autocue/audio"
	"github.com/zenibako/autocue/rekordbox"
	"github.com/zenibako/autocue/session"
)

// sessionTracks converts playlist entries into session tracks. Repeated
// TrackIDs keep their first position. Tracks the library left without a
// title or length are probed from the audio file when it is reachable.
func sessionTracks(tracks []*rekordbox.Track) []session.Track {
	seen := make(map[string]bool, len(tracks))
	out := make([]session.Track, 0, len(tracks))

	for _, t := range tracks {
		if seen[t.TrackID] {
			log.Warn("Track appears more than once in playlist, keeping the first", "trackID", t.TrackID, "name", t.Name)
			continue
		}
		seen[t.TrackID] = true

		track := session.Track{
			ID:        t.TrackID,
			Title:     t.Name,
			Artist:    t.Artist,
			Key:       t.Tonality,
			Location:  t.AudioPath(),
			BPM:       t.BPM(),
			Duration:  t.Duration(),
			GridStart: t.GridStart(),
		}
		if track.Duration <= 0 || track.Title == "" {
			fillFromAudio(&track)
		}
		out = append(out, track)
	}
	return out
}

func fillFromAudio(track *session.Track) {
	if track.Location == "" {
		return
	}
	if _, err := os.Stat(track.Location); err != nil {
		log.Debug("Audio file not reachable for probing", "trackID", track.ID, "path", track.Location)
		return
	}

	info, err := audio.Probe(track.Location)
	if err != nil {
		log.Warn("Failed to probe audio file", "trackID", track.ID, "error", err)
		return
	}
	if track.Title == "" {
		track.Title = info.Title
	}
	if track.Artist == "" {
		track.Artist = info.Artist
	}
	if track.Duration <= 0 && info.Duration > 0 {
		log.Info("Using duration from audio file", "track", track.DisplayName(), "duration", info.Duration)
		track.Duration = info.Duration
	}
}
