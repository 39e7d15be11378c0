package segment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"captioner/internal/services"
	"captioner/internal/transcript"
)

// FlushReason names the condition that closed a cue.
type FlushReason string

const (
	ReasonEndOfInput  FlushReason = "end_of_input"
	ReasonPunctuation FlushReason = "punctuation"
	ReasonPause       FlushReason = "pause"
	ReasonLength      FlushReason = "length"
	// ReasonSpan marks cues produced one per span in span mode.
	ReasonSpan FlushReason = "span"
)

// Segment groups resolved spans into indexed cues.
func Segment(spans []transcript.Span, cfg Config) ([]transcript.Cue, error) {
	cues, _, err := SegmentWithReasons(spans, cfg)
	return cues, err
}

// SegmentWithReasons is Segment that also returns, per cue, the condition that
// flushed it.
func SegmentWithReasons(spans []transcript.Span, cfg Config) ([]transcript.Cue, []FlushReason, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	for i, span := range spans {
		if !span.Resolved() {
			return nil, nil, services.Wrap(services.ErrMalformedInput, "segment", "spans",
				fmt.Sprintf("span %d has unresolved timestamps", i), nil)
		}
	}
	if len(spans) == 0 {
		return nil, nil, nil
	}

	var (
		cues    []transcript.Cue
		reasons []FlushReason
		buf     buffer
	)
	for i, span := range spans {
		buf.add(span)
		reason, ok := flushReason(spans, i, &buf, cfg)
		if !ok {
			continue
		}
		if cue, ok := buf.flush(); ok {
			cues = append(cues, cue)
			reasons = append(reasons, reason)
		}
	}
	for i := range cues {
		cues[i].Index = i + 1
	}
	return cues, reasons, nil
}

func flushReason(spans []transcript.Span, i int, buf *buffer, cfg Config) (FlushReason, bool) {
	last := i == len(spans)-1
	span := spans[i]
	switch {
	case last:
		return ReasonEndOfInput, true
	case cfg.mode() == ModeSpan:
		return ReasonSpan, true
	case endsSentence(span.Text):
		return ReasonPunctuation, true
	case spans[i+1].Start.Seconds-span.End.Seconds > cfg.PauseThreshold:
		return ReasonPause, true
	case buf.length() >= cfg.MaxChars:
		return ReasonLength, true
	}
	return "", false
}

func endsSentence(text string) bool {
	text = strings.TrimSpace(text)
	return strings.HasSuffix(text, ".") || strings.HasSuffix(text, "?") || strings.HasSuffix(text, "!")
}

// buffer accumulates the spans of the cue in progress.
type buffer struct {
	texts []string
	start float64
	end   float64
	runes int
}

func (b *buffer) add(span transcript.Span) {
	if len(b.texts) == 0 {
		b.start = span.Start.Seconds
	} else {
		b.runes++
	}
	b.texts = append(b.texts, span.Text)
	b.runes += utf8.RuneCountInString(span.Text)
	b.end = span.End.Seconds
}

// length is the character count of the space-joined buffer text.
func (b *buffer) length() int {
	return b.runes
}

func (b *buffer) flush() (transcript.Cue, bool) {
	defer b.reset()
	text := strings.TrimSpace(strings.Join(b.texts, " "))
	if text == "" {
		return transcript.Cue{}, false
	}
	return transcript.Cue{Text: text, Start: b.start, End: b.end}, true
}

func (b *buffer) reset() {
	b.texts = b.texts[:0]
	b.runes = 0
	b.start, b.end = 0, 0
}
