package segment

import (
	"fmt"
	"math"
	"strings"

	"captioner/internal/services"
)

// Segmentation modes.
const (
	ModeSentence = "sentence"
	ModeSpan     = "span"
)

// Defaults applied by DefaultConfig.
const (
	DefaultMaxChars       = 42
	DefaultPauseThreshold = 0.7
)

// Config controls cue boundaries.
type Config struct {
	// MaxChars is the buffered text length, in characters, that forces a flush.
	MaxChars int
	// PauseThreshold is the silence in seconds that ends a cue when exceeded.
	PauseThreshold float64
	// Mode selects sentence grouping or one cue per span. Empty means sentence.
	Mode string
}

// DefaultConfig returns the sentence-mode defaults.
func DefaultConfig() Config {
	return Config{MaxChars: DefaultMaxChars, PauseThreshold: DefaultPauseThreshold, Mode: ModeSentence}
}

// Validate reports configuration the segmenter cannot run with.
func (c Config) Validate() error {
	if c.MaxChars < 1 {
		return invalid(fmt.Sprintf("max_chars must be >= 1, got %d", c.MaxChars))
	}
	if math.IsNaN(c.PauseThreshold) || math.IsInf(c.PauseThreshold, 0) || c.PauseThreshold < 0 {
		return invalid(fmt.Sprintf("pause_threshold must be a non-negative number, got %v", c.PauseThreshold))
	}
	switch c.mode() {
	case ModeSentence, ModeSpan:
	default:
		return invalid(fmt.Sprintf("unsupported mode %q", c.Mode))
	}
	return nil
}

func (c Config) mode() string {
	mode := strings.ToLower(strings.TrimSpace(c.Mode))
	if mode == "" {
		return ModeSentence
	}
	return mode
}

func invalid(message string) error {
	return services.Wrap(services.ErrMalformedInput, "segment", "config", message, nil)
}
