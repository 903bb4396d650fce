package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeLibrary(); err != nil {
		return err
	}
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeCues()
	c.normalizeWaveform()
	c.normalizeNotify()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeLibrary() error {
	if strings.TrimSpace(c.Library.XMLPath) == "" {
		if value, ok := os.LookupEnv("AUTOCUE_XML"); ok {
			c.Library.XMLPath = value
		}
	}
	var err error
	if c.Library.XMLPath, err = expandPath(strings.TrimSpace(c.Library.XMLPath)); err != nil {
		return fmt.Errorf("library.xml_path: %w", err)
	}
	if c.Library.OutputDir, err = expandPath(strings.TrimSpace(c.Library.OutputDir)); err != nil {
		return fmt.Errorf("library.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeHistory() error {
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath()
	}
	var err error
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeCues() {
	c.Cues.TieBreak = strings.ToLower(strings.TrimSpace(c.Cues.TieBreak))
	if c.Cues.TieBreak == "" {
		c.Cues.TieBreak = defaultTieBreak
	}
	if c.Cues.BeatResolution == 0 {
		c.Cues.BeatResolution = defaultBeatResolution
	}
}

func (c *Config) normalizeWaveform() {
	c.Waveform.FFmpegBinary = strings.TrimSpace(c.Waveform.FFmpegBinary)
	if c.Waveform.FFmpegBinary == "" {
		c.Waveform.FFmpegBinary = defaultFFmpegBinary
	}
	if c.Waveform.Bins == 0 {
		c.Waveform.Bins = defaultBins
	}
	if c.Waveform.SampleRate == 0 {
		c.Waveform.SampleRate = defaultSampleRate
	}
	if c.Waveform.Width == 0 {
		c.Waveform.Width = defaultWidth
	}
}

func (c *Config) normalizeNotify() {
	c.Notify.OSCHost = strings.TrimSpace(c.Notify.OSCHost)
	if c.Notify.OSCHost == "" {
		c.Notify.OSCHost = defaultOSCHost
	}
	if c.Notify.OSCPort == 0 {
		c.Notify.OSCPort = defaultOSCPort
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
