package captions

import (
	"fmt"
	"strings"

	"captioner/internal/config"
	"captioner/internal/reconcile"
	"captioner/internal/segment"
	"captioner/internal/services"
	"captioner/internal/transcript"
)

// Format selects the subtitle syntax produced by Render.
type Format string

const (
	FormatSRT Format = config.FormatSRT
	FormatVTT Format = config.FormatVTT
)

// ParseFormat accepts "srt" or "vtt" in any case. Empty means SRT.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", config.FormatSRT:
		return FormatSRT, nil
	case config.FormatVTT:
		return FormatVTT, nil
	default:
		return "", services.Wrap(services.ErrMalformedInput, "captions", "format",
			fmt.Sprintf("unsupported subtitle format %q", value), nil)
	}
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	if f == FormatVTT {
		return ".vtt"
	}
	return ".srt"
}

// FilterOptions toggles post-segmentation cue cleanup.
type FilterOptions struct {
	// Hallucinations removes recognizer artifacts such as isolated
	// "thank you" cues and music-symbol-only cues.
	Hallucinations bool
}

// Request is one caption build.
type Request struct {
	Transcript     transcript.Result
	Duration       reconcile.Duration
	Segmentation   segment.Config
	MinCueDuration float64
	Filter         FilterOptions
	Format         Format
}

// RequestFromConfig returns a Request carrying the configured thresholds.
// The caller supplies the transcript and, when known, the duration.
func RequestFromConfig(cfg *config.Config) Request {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	return Request{
		Segmentation: segment.Config{
			MaxChars:       cfg.Segmentation.MaxChars,
			PauseThreshold: cfg.Segmentation.PauseThreshold,
			Mode:           cfg.Segmentation.Mode,
		},
		MinCueDuration: cfg.Segmentation.MinCueDuration,
		Filter:         FilterOptions{Hallucinations: cfg.Filter.Hallucinations},
		Format:         Format(strings.ToLower(strings.TrimSpace(cfg.Output.Format))),
	}
}

// Result carries the cues and the intermediate artifacts of a build.
type Result struct {
	Cues  []transcript.Cue
	Shape transcript.Shape
	// Spans are the reconciled spans fed to the segmenter.
	Spans     []transcript.Span
	Decisions []reconcile.Decision
	// Reasons is parallel to Cues.
	Reasons  []segment.FlushReason
	Removals []Removal
}
