package captions

import (
	"captioner/internal/reconcile"
	"captioner/internal/segment"
	"captioner/internal/srt"
	"captioner/internal/transcript"
)

// Build runs the pipeline up to, but not including, rendering.
func Build(req Request) (Result, error) {
	spans, shape, err := transcript.Normalize(req.Transcript)
	if err != nil {
		return Result{}, err
	}
	result := Result{Shape: shape}
	if err := req.Segmentation.Validate(); err != nil {
		return result, err
	}
	if len(spans) == 0 {
		return result, nil
	}

	result.Spans, result.Decisions = reconcile.Reconcile(spans, req.Duration, reconcile.Options{
		MinCueDuration: req.MinCueDuration,
	})

	cues, reasons, err := segment.SegmentWithReasons(result.Spans, req.Segmentation)
	if err != nil {
		return result, err
	}

	if req.Filter.Hallucinations {
		videoSeconds, _ := req.Duration.Get()
		remove, removals := markHallucinations(cues, videoSeconds)
		cues = keepUnmarked(cues, remove)
		reasons = keepUnmarked(reasons, remove)
		renumber(cues)
		result.Removals = removals
	}

	result.Cues = cues
	result.Reasons = reasons
	return result, nil
}

// Render builds the cues and serializes them in the requested format. An
// empty transcript renders as the empty string in SRT.
func Render(req Request) (string, Result, error) {
	format, err := ParseFormat(string(req.Format))
	if err != nil {
		return "", Result{}, err
	}
	result, err := Build(req)
	if err != nil {
		return "", result, err
	}
	return renderCues(format, result.Cues), result, nil
}

func renderCues(format Format, cues []transcript.Cue) string {
	if format == FormatVTT {
		return srt.RenderVTT(cues)
	}
	return srt.Render(cues)
}

func keepUnmarked[T any](items []T, remove []bool) []T {
	kept := make([]T, 0, len(items))
	for i, item := range items {
		if !remove[i] {
			kept = append(kept, item)
		}
	}
	return kept
}

func renumber(cues []transcript.Cue) {
	for i := range cues {
		cues[i].Index = i + 1
	}
}
