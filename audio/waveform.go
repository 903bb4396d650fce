package audio

import (
	"context"
	"math"
)

// DefaultBins is the envelope resolution used when none is configured.
const DefaultBins = 1024

// Envelope reduces samples to bins RMS amplitudes. The last bin absorbs
// any remainder. Audio shorter than bins is returned as absolute sample
// values instead.
func Envelope(samples []float64, bins int) []float64 {
	if len(samples) == 0 {
		return []float64{}
	}
	if bins <= 0 {
		bins = DefaultBins
	}

	per := len(samples) / bins
	if per == 0 {
		out := make([]float64, len(samples))
		for i, s := range samples {
			out[i] = math.Abs(s)
		}
		return out
	}

	out := make([]float64, bins)
	for i := range out {
		start := i * per
		end := start + per
		if i == bins-1 {
			end = len(samples)
		}
		var sum float64
		for _, s := range samples[start:end] {
			sum += s * s
		}
		out[i] = math.Sqrt(sum / float64(end-start))
	}
	return out
}

// Provider produces waveform envelopes for audio files.
type Provider struct {
	Decoder Decoder
	Bins    int
}

// Waveform decodes path and returns its envelope along with the decoded
// length in seconds.
func (p Provider) Waveform(ctx context.Context, path string) ([]float64, float64, error) {
	samples, rate, err := p.Decoder.Decode(ctx, path)
	if err != nil {
		return nil, 0, err
	}
	return Envelope(samples, p.Bins), float64(len(samples)) / float64(rate), nil
}
