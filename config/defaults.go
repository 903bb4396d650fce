package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultLockTimeout    = 10
	defaultTieBreak       = "half-down"
	defaultBeatResolution = 4
	defaultFFmpegBinary   = "ffmpeg"
	defaultBins           = 1024
	defaultSampleRate     = 22050
	defaultWidth          = 96
	defaultOSCHost        = "127.0.0.1"
	defaultOSCPort        = 53000
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
)

// Default returns a configuration populated with repository defaults.
func Default() Config {
	return Config{
		Library: Library{
			LockTimeout: defaultLockTimeout,
		},
		Cues: Cues{
			TieBreak:       defaultTieBreak,
			BeatResolution: defaultBeatResolution,
		},
		Waveform: Waveform{
			Enabled:      true,
			FFmpegBinary: defaultFFmpegBinary,
			Bins:         defaultBins,
			SampleRate:   defaultSampleRate,
			Width:        defaultWidth,
		},
		Notify: Notify{
			OSCHost: defaultOSCHost,
			OSCPort: defaultOSCPort,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath(),
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

func defaultHistoryPath() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "autocue", "history.db")
	}
	return "~/.local/share/autocue/history.db"
}
