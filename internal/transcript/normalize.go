package transcript

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Shape identifies which recognizer layout a Result uses.
type Shape int

const (
	ShapeEmpty Shape = iota
	ShapeChunks
	ShapeWords
	ShapeSegments
	ShapeText
)

func (s Shape) String() string {
	switch s {
	case ShapeChunks:
		return "chunks"
	case ShapeWords:
		return "words"
	case ShapeSegments:
		return "segments"
	case ShapeText:
		return "text"
	default:
		return "empty"
	}
}

// DetectShape picks the record list Normalize will read. Precedence is
// chunks, words, segments, then the aggregate text.
func DetectShape(r Result) Shape {
	switch {
	case len(r.Chunks) > 0:
		return ShapeChunks
	case len(r.Words) > 0:
		return ShapeWords
	case len(r.Segments) > 0:
		return ShapeSegments
	case r.Text != nil && strings.TrimSpace(*r.Text) != "":
		return ShapeText
	default:
		return ShapeEmpty
	}
}

// Normalize converts a recognizer result into ordered spans. Record order is
// preserved and spans whose text is empty after cleaning are dropped.
func Normalize(r Result) ([]Span, Shape, error) {
	if err := r.Validate(); err != nil {
		return nil, ShapeEmpty, err
	}

	shape := DetectShape(r)
	var spans []Span
	switch shape {
	case ShapeChunks:
		spans = make([]Span, 0, len(r.Chunks))
		for _, chunk := range r.Chunks {
			spans = appendSpan(spans, *chunk.Text, timestampAt(chunk.Timestamp, 0), timestampAt(chunk.Timestamp, 1))
		}
	case ShapeWords:
		spans = appendWords(make([]Span, 0, len(r.Words)), r.Words)
	case ShapeSegments:
		spans = make([]Span, 0, len(r.Segments))
		for _, segment := range r.Segments {
			if len(segment.Words) > 0 {
				spans = appendWords(spans, segment.Words)
				continue
			}
			spans = appendSpan(spans, *segment.Text, timeFrom(segment.Start), timeFrom(segment.End))
		}
	case ShapeText:
		// The end is left for the reconciler to fill from the media duration.
		spans = appendSpan(nil, *r.Text, At(0), Time{})
	}
	return spans, shape, nil
}

func appendWords(spans []Span, words []Word) []Span {
	for _, word := range words {
		if word.Type == "spacing" {
			continue
		}
		spans = appendSpan(spans, *word.Text, timeFrom(word.Start), timeFrom(word.End))
	}
	return spans
}

func appendSpan(spans []Span, text string, start, end Time) []Span {
	cleaned := CleanText(text)
	if cleaned == "" {
		return spans
	}
	return append(spans, Span{Text: cleaned, Start: start, End: end})
}

func timestampAt(pair []*float64, idx int) Time {
	if idx >= len(pair) {
		return Time{}
	}
	return timeFrom(pair[idx])
}

// CleanText trims the text, composes it to NFC, and collapses internal
// whitespace runs to single spaces.
func CleanText(text string) string {
	return strings.Join(strings.Fields(norm.NFC.String(text)), " ")
}
