package srt

import (
	"fmt"
	"math"

	"captioner/internal/transcript"
)

// DurationToleranceSeconds is how far the last cue may end from the media
// length before the track is flagged.
const DurationToleranceSeconds = 8.0

// Validate checks a parsed cue track and returns the problems found. An empty
// result means the track passed. videoSeconds <= 0 skips the duration check.
func Validate(cues []transcript.Cue, videoSeconds float64) []string {
	if len(cues) == 0 {
		return []string{"empty_subtitle_file"}
	}

	var issues []string
	var last float64
	for i, cue := range cues {
		if cue.Index != i+1 {
			issues = append(issues, fmt.Sprintf("index_gap: position %d has index %d", i+1, cue.Index))
		}
		if cue.End < cue.Start {
			issues = append(issues, fmt.Sprintf("negative_duration: cue %d", cue.Index))
		}
		if i > 0 && cue.Start < cues[i-1].Start {
			issues = append(issues, fmt.Sprintf("non_monotonic_start: cue %d", cue.Index))
		}
		if cue.Text == "" {
			issues = append(issues, fmt.Sprintf("empty_text: cue %d", cue.Index))
		}
		if cue.End > last {
			last = cue.End
		}
	}
	if last == 0 {
		issues = append(issues, "no_valid_timestamps")
	}

	if videoSeconds > 0 && last > 0 {
		delta := videoSeconds - last
		if math.Abs(delta) > DurationToleranceSeconds {
			issues = append(issues, fmt.Sprintf("duration_mismatch: delta=%.1fs", delta))
		}
	}
	return issues
}
