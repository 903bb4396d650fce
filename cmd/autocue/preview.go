package main

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/zenibako/autocue/audio"
	"github.com/zenibako/autocue/config"
	"github.com/zenibako/autocue/cue"
	"github.com/zenibako/autocue/history"
	"github.com/zenibako/autocue/picker"
	"github.com/zenibako/autocue/session"
)

// phraseBars is the spacing of the ticks drawn under the waveform.
const phraseBars = 16

// trackPreview shows the previous drop from history and a waveform with
// phrase ticks above the drop prompt. Either part is left out when it is
// disabled or unavailable.
func trackPreview(cfg *config.Config, store *history.Store) picker.PreviewFunc {
	provider := audio.Provider{
		Decoder: audio.Decoder{
			Binary:     cfg.Waveform.FFmpegBinary,
			SampleRate: cfg.Waveform.SampleRate,
		},
		Bins: cfg.Waveform.Bins,
	}
	width := cfg.Waveform.Width

	return func(ctx context.Context, track session.Track) string {
		var lines []string

		if store != nil {
			drop, ok, err := store.LastDrop(ctx, track.ID)
			if err != nil {
				log.Debug("History lookup failed", "trackID", track.ID, "error", err)
			} else if ok {
				lines = append(lines, "Last drop: "+cue.FormatTime(drop))
			}
		}

		if cfg.Waveform.Enabled && track.Location != "" {
			envelope, length, err := provider.Waveform(ctx, track.Location)
			if err != nil {
				log.Warn("Waveform unavailable", "track", track.DisplayName(), "error", err)
			} else {
				if length <= 0 {
					length = track.Duration
				}
				lines = append(lines,
					audio.Sparkline(envelope, width),
					audio.Ticks(audio.Grid{BPM: track.BPM, Start: track.GridStart, Duration: length, EveryBars: phraseBars}, width),
				)
			}
		}

		return strings.Join(lines, "\n")
	}
}
