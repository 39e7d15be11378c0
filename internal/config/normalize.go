package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix scopes environment overrides, e.g. CAPTIONER_MAX_CHARS.
const envPrefix = "CAPTIONER"

// envOverrides lists the settings that may be supplied through the
// environment. Pointer fields stay nil when the variable is unset so file
// values survive.
type envOverrides struct {
	MaxChars       *int     `envconfig:"MAX_CHARS"`
	PauseThreshold *float64 `envconfig:"PAUSE_THRESHOLD"`
	Mode           *string  `envconfig:"MODE"`
	MinCueDuration *float64 `envconfig:"MIN_CUE_DURATION"`
	OutputFormat   *string  `envconfig:"OUTPUT_FORMAT"`
	Hallucinations *bool    `envconfig:"FILTER_HALLUCINATIONS"`
	FFprobeBinary  *string  `envconfig:"FFPROBE"`
	StateDir       *string  `envconfig:"STATE_DIR"`
	LogDir         *string  `envconfig:"LOG_DIR"`
	LogFormat      *string  `envconfig:"LOG_FORMAT"`
	LogLevel       *string  `envconfig:"LOG_LEVEL"`
}

func (c *Config) normalize() error {
	if err := c.applyEnv(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSegmentation()
	c.normalizeOutput()
	c.normalizeLogging()
	return nil
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	if env.MaxChars != nil {
		c.Segmentation.MaxChars = *env.MaxChars
	}
	if env.PauseThreshold != nil {
		c.Segmentation.PauseThreshold = *env.PauseThreshold
	}
	if env.Mode != nil {
		c.Segmentation.Mode = *env.Mode
	}
	if env.MinCueDuration != nil {
		c.Segmentation.MinCueDuration = *env.MinCueDuration
	}
	if env.OutputFormat != nil {
		c.Output.Format = *env.OutputFormat
	}
	if env.Hallucinations != nil {
		c.Filter.Hallucinations = *env.Hallucinations
	}
	if env.FFprobeBinary != nil {
		c.Media.FFprobeBinary = *env.FFprobeBinary
	}
	if env.StateDir != nil {
		c.Paths.StateDir = *env.StateDir
	}
	if env.LogDir != nil {
		c.Paths.LogDir = *env.LogDir
	}
	if env.LogFormat != nil {
		c.Logging.Format = *env.LogFormat
	}
	if env.LogLevel != nil {
		c.Logging.Level = *env.LogLevel
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Output.Dir, err = expandPath(strings.TrimSpace(c.Output.Dir)); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSegmentation() {
	c.Segmentation.Mode = strings.ToLower(strings.TrimSpace(c.Segmentation.Mode))
	if c.Segmentation.Mode == "" {
		c.Segmentation.Mode = ModeSentence
	}
	if c.Segmentation.MinCueDuration == 0 {
		c.Segmentation.MinCueDuration = defaultMinCueDuration
	}
}

func (c *Config) normalizeOutput() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = FormatSRT
	}
	c.Media.FFprobeBinary = strings.TrimSpace(c.Media.FFprobeBinary)
	if c.Media.FFprobeBinary == "" {
		c.Media.FFprobeBinary = defaultFFprobeBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
