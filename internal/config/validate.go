package config

import (
	"errors"
	"fmt"
	"math"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSegmentation(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSegmentation() error {
	if c.Segmentation.MaxChars < 1 {
		return errors.New("segmentation.max_chars must be at least 1")
	}
	if c.Segmentation.PauseThreshold < 0 || math.IsNaN(c.Segmentation.PauseThreshold) {
		return errors.New("segmentation.pause_threshold must be zero or positive")
	}
	if c.Segmentation.MinCueDuration <= 0 || math.IsNaN(c.Segmentation.MinCueDuration) {
		return errors.New("segmentation.min_cue_duration must be positive")
	}
	switch c.Segmentation.Mode {
	case ModeSentence, ModeSpan:
	default:
		return fmt.Errorf("segmentation.mode: unsupported value %q (want %q or %q)", c.Segmentation.Mode, ModeSentence, ModeSpan)
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.Format {
	case FormatSRT, FormatVTT:
		return nil
	default:
		return fmt.Errorf("output.format: unsupported value %q (want %q or %q)", c.Output.Format, FormatSRT, FormatVTT)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
