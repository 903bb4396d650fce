package audio

import (
	"math"
	"strings"

	"github.com/zenibako/autocue/cue"
)

var levels = []rune("▁▂▃▄▅▆▇█")

// Grid places phrase ticks under a sparkline.
type Grid struct {
	BPM       float64
	Start     float64
	Duration  float64
	EveryBars int
}

// Sparkline renders envelope as width block characters, scaled to the
// loudest column.
func Sparkline(envelope []float64, width int) string {
	if width <= 0 || len(envelope) == 0 {
		return ""
	}

	cols := resample(envelope, width)
	peak := 0.0
	for _, v := range cols {
		peak = math.Max(peak, v)
	}

	var b strings.Builder
	for _, v := range cols {
		idx := 0
		if peak > 0 {
			idx = int(math.Round(v / peak * float64(len(levels)-1)))
		}
		b.WriteRune(levels[idx])
	}
	return b.String()
}

// Ticks renders a ruler of width columns with '|' at every g.EveryBars
// bars from the grid start. Columns without a tick are spaces.
func Ticks(g Grid, width int) string {
	if width <= 0 {
		return ""
	}
	ruler := []rune(strings.Repeat(" ", width))

	bar, err := cue.BarSeconds(g.BPM)
	if err != nil || g.Duration <= 0 {
		return string(ruler)
	}
	every := g.EveryBars
	if every <= 0 {
		every = 16
	}
	step := bar * float64(every)

	for t := g.Start; t < g.Duration; t += step {
		if t < 0 {
			continue
		}
		col := int(t / g.Duration * float64(width))
		if col >= 0 && col < width {
			ruler[col] = '|'
		}
	}
	return string(ruler)
}

// resample averages envelope into width columns, or stretches it when
// there are fewer points than columns.
func resample(envelope []float64, width int) []float64 {
	cols := make([]float64, width)
	n := len(envelope)
	for i := range cols {
		start := i * n / width
		end := (i + 1) * n / width
		if end <= start {
			cols[i] = envelope[start]
			continue
		}
		var sum float64
		for _, v := range envelope[start:end] {
			sum += v
		}
		cols[i] = sum / float64(end-start)
	}
	return cols
}
