package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrFFmpegNotFound is returned when the configured ffmpeg binary cannot
// be located.
var ErrFFmpegNotFound = errors.New("ffmpeg not found")

// DefaultSampleRate keeps decoding cheap; the envelope does not need more.
const DefaultSampleRate = 22050

// Decoder turns audio files into mono PCM by shelling out to ffmpeg.
type Decoder struct {
	Binary     string
	SampleRate int
}

// Decode returns mono samples scaled to [-1, 1] and the sample rate used.
func (d Decoder) Decode(ctx context.Context, path string) ([]float64, int, error) {
	bin := d.Binary
	if bin == "" {
		bin = "ffmpeg"
	}
	rate := d.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}

	resolved, err := exec.LookPath(bin)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s", ErrFFmpegNotFound, bin)
	}

	cmd := exec.CommandContext(ctx, resolved,
		"-nostdin",
		"-i", path,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(rate),
		"-ac", "1",
		"-loglevel", "error",
		"pipe:1",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, 0, fmt.Errorf("ffmpeg decode %s: %w: %s", path, err, msg)
		}
		return nil, 0, fmt.Errorf("ffmpeg decode %s: %w", path, err)
	}

	samples := pcmToFloat(out)
	log.Debug("Decoded audio", "path", path, "samples", len(samples), "rate", rate)
	return samples, rate, nil
}

// pcmToFloat converts little-endian s16 PCM. A trailing odd byte is dropped.
func pcmToFloat(pcm []byte) []float64 {
	samples := make([]float64, len(pcm)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2]))
		samples[i] = float64(v) / 32768
	}
	return samples
}
