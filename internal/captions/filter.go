package captions

import (
	"regexp"
	"strings"
	"unicode"

	"captioner/internal/transcript"
)

// Removal reasons reported by the hallucination filter.
const (
	RemovalIsolated      = "isolated_hallucination"
	RemovalRepeated      = "repeated_hallucination"
	RemovalMusic         = "music_symbols"
	RemovalTrailing      = "trailing_hallucination"
	RemovalTrailingMusic = "trailing_music"
)

const (
	isolationGapSeconds = 30.0
	repeatGapSeconds    = 10.0
	repeatMinRun        = 3
	// The trailing sweep only runs on media long enough to have credits.
	trailingWindowSeconds  = 300.0
	trailingMinimumSeconds = 2 * trailingWindowSeconds
)

// Removal records a cue dropped by the filter.
type Removal struct {
	Cue    transcript.Cue
	Reason string
}

// Phrases speech recognizers emit over silence or credits (normalized form).
var hallucinationPhrases = map[string]bool{
	"thank you":              true,
	"thank you for watching": true,
	"thanks for watching":    true,
	"please subscribe":       true,
	"like and subscribe":     true,
	"well be right back":     true,
	"bye":                    true,
	"bye bye":                true,
	"see you next time":      true,
	"see you later":          true,
}

// FilterCues removes hallucination artifacts and renumbers the survivors.
// videoSeconds enables the trailing sweep for feature-length media; pass 0
// when the length is unknown.
func FilterCues(cues []transcript.Cue, videoSeconds float64) ([]transcript.Cue, []Removal) {
	remove, removals := markHallucinations(cues, videoSeconds)
	kept := keepUnmarked(cues, remove)
	renumber(kept)
	return kept, removals
}

// markHallucinations flags cues to drop. Repeated runs are found first, then
// isolated phrases and music cues, then anything matching in the final
// minutes of long media regardless of isolation.
func markHallucinations(cues []transcript.Cue, videoSeconds float64) ([]bool, []Removal) {
	remove := make([]bool, len(cues))
	if len(cues) == 0 {
		return remove, nil
	}
	var removals []Removal
	mark := func(i int, reason string) {
		remove[i] = true
		removals = append(removals, Removal{Cue: cues[i], Reason: reason})
	}

	markRepeated(cues, mark)

	for i := range cues {
		if remove[i] {
			continue
		}
		isolated := gapBefore(cues, i) >= isolationGapSeconds && gapAfter(cues, i) >= isolationGapSeconds
		if !isolated {
			continue
		}
		switch {
		case hallucinationPhrases[normalizeText(cues[i].Text)]:
			mark(i, RemovalIsolated)
		case isMusicCue(cues[i].Text):
			mark(i, RemovalMusic)
		}
	}

	if videoSeconds >= trailingMinimumSeconds {
		threshold := videoSeconds - trailingWindowSeconds
		for i := range cues {
			if remove[i] || cues[i].Start < threshold {
				continue
			}
			switch {
			case hallucinationPhrases[normalizeText(cues[i].Text)]:
				mark(i, RemovalTrailing)
			case isMusicCue(cues[i].Text):
				mark(i, RemovalTrailingMusic)
			}
		}
	}
	return remove, removals
}

// markRepeated flags runs of identical normalized text where every gap
// between neighbours exceeds repeatGapSeconds.
func markRepeated(cues []transcript.Cue, mark func(int, string)) {
	i := 0
	for i < len(cues) {
		norm := normalizeText(cues[i].Text)
		if norm == "" {
			i++
			continue
		}
		end := i + 1
		for end < len(cues) {
			if normalizeText(cues[end].Text) != norm {
				break
			}
			if cues[end].Start-cues[end-1].End <= repeatGapSeconds {
				break
			}
			end++
		}
		if end-i >= repeatMinRun {
			for j := i; j < end; j++ {
				mark(j, RemovalRepeated)
			}
		}
		i = end
	}
}

func gapBefore(cues []transcript.Cue, i int) float64 {
	if i == 0 {
		return cues[i].Start
	}
	return cues[i].Start - cues[i-1].End
}

func gapAfter(cues []transcript.Cue, i int) float64 {
	if i >= len(cues)-1 {
		return 1e9
	}
	return cues[i+1].Start - cues[i].End
}

var nonWordRe = regexp.MustCompile(`[^a-z0-9\s]`)

func normalizeText(s string) string {
	s = strings.ToLower(s)
	s = nonWordRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// isMusicCue reports whether text holds only music notation and whitespace.
func isMusicCue(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	for _, r := range text {
		switch {
		case r == '\u00B6', r == '\u266A', r == '\u266B', r == '*':
		case unicode.IsSpace(r):
		default:
			return false
		}
	}
	return true
}
