package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/zenibako/autocue/cue"
)

//go:embed sample_config.toml
var sampleConfig string

// Library locates the rekordbox XML export and where results go.
type Library struct {
	XMLPath     string `toml:"xml_path"`
	OutputDir   string `toml:"output_dir"`
	LockTimeout int    `toml:"lock_timeout"` // seconds
}

// Cues controls how generated cues are written.
type Cues struct {
	RemoveExistingMemory bool   `toml:"remove_existing_memory"`
	RemoveExistingHot    bool   `toml:"remove_existing_hot"`
	SnapToGrid           bool   `toml:"snap_to_grid"`
	TieBreak             string `toml:"tie_break"`
	SnapDropToBeat       bool   `toml:"snap_drop_to_beat"`
	BeatResolution       int    `toml:"beat_resolution"`
}

// Waveform controls the preview shown while picking drops.
type Waveform struct {
	Enabled      bool   `toml:"enabled"`
	FFmpegBinary string `toml:"ffmpeg_binary"`
	Bins         int    `toml:"bins"`
	SampleRate   int    `toml:"sample_rate"`
	Width        int    `toml:"width"`
}

// Notify configures OSC progress messages.
type Notify struct {
	OSCEnabled bool   `toml:"osc_enabled"`
	OSCHost    string `toml:"osc_host"`
	OSCPort    int    `toml:"osc_port"`
}

// History configures the run log database.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for autocue.
type Config struct {
	Library  Library  `toml:"library"`
	Cues     Cues     `toml:"cues"`
	Waveform Waveform `toml:"waveform"`
	Notify   Notify   `toml:"notify"`
	History  History  `toml:"history"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/autocue/config.toml")
}

// Load locates, parses, normalizes and validates a configuration file.
// It returns the config, the path that was resolved and whether a file
// existed there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("autocue.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// TieBreak returns the parsed cues.tie_break value.
func (c *Config) TieBreak() cue.TieBreak {
	tie, _ := cue.ParseTieBreak(c.Cues.TieBreak)
	return tie
}

// LockWait is how long a save waits for another writer's lock.
func (c *Config) LockWait() time.Duration {
	return time.Duration(c.Library.LockTimeout) * time.Second
}

// OSCTarget returns host and port when OSC notifications are enabled.
func (c *Config) OSCTarget() (string, int, bool) {
	if !c.Notify.OSCEnabled {
		return "", 0, false
	}
	return c.Notify.OSCHost, c.Notify.OSCPort, true
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath applies the config path rules (~ expansion, absolute) to a
// path given on the command line.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
