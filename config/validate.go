package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/zenibako/autocue/cue"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateCues(); err != nil {
		return err
	}
	if err := c.validateWaveform(); err != nil {
		return err
	}
	if err := c.validateNotify(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLibrary() error {
	if c.Library.LockTimeout < 0 {
		return errors.New("library.lock_timeout must be zero or positive")
	}
	return nil
}

func (c *Config) validateCues() error {
	if _, err := cue.ParseTieBreak(c.Cues.TieBreak); err != nil {
		return fmt.Errorf("cues.tie_break: %w", err)
	}
	switch c.Cues.BeatResolution {
	case 1, 2, 4, 8, 16:
	default:
		return fmt.Errorf("cues.beat_resolution must be one of 1, 2, 4, 8, 16 (got %d)", c.Cues.BeatResolution)
	}
	return nil
}

func (c *Config) validateWaveform() error {
	if c.Waveform.Bins < 0 {
		return errors.New("waveform.bins must be positive")
	}
	if c.Waveform.SampleRate < 4000 || c.Waveform.SampleRate > 192000 {
		return fmt.Errorf("waveform.sample_rate must be between 4000 and 192000 (got %d)", c.Waveform.SampleRate)
	}
	if c.Waveform.Width < 16 {
		return fmt.Errorf("waveform.width must be at least 16 columns (got %d)", c.Waveform.Width)
	}
	return nil
}

func (c *Config) validateNotify() error {
	if !c.Notify.OSCEnabled {
		return nil
	}
	if c.Notify.OSCPort < 1 || c.Notify.OSCPort > 65535 {
		return fmt.Errorf("notify.osc_port must be between 1 and 65535 (got %d)", c.Notify.OSCPort)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("logging.format must be text, json or logfmt (got %q)", c.Logging.Format)
	}
	return nil
}
