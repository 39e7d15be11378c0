package segment

import (
	"errors"
	"strings"
	"testing"

	"captioner/internal/services"
	"captioner/internal/transcript"
)

func word(text string, start, end float64) transcript.Span {
	return transcript.Span{Text: text, Start: transcript.At(start), End: transcript.At(end)}
}

func TestSegmentPunctuationAndEndOfInput(t *testing.T) {
	spans := []transcript.Span{
		word("Hi", 0, 0.4),
		word("there.", 0.4, 0.9),
		word("Bye", 1.0, 1.3),
	}
	cues, reasons, err := SegmentWithReasons(spans, Config{MaxChars: 42, PauseThreshold: 0.7})
	if err != nil {
		t.Fatalf("SegmentWithReasons: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d: %+v", len(cues), cues)
	}
	if cues[0] != (transcript.Cue{Index: 1, Text: "Hi there.", Start: 0, End: 0.9}) {
		t.Fatalf("unexpected first cue %+v", cues[0])
	}
	if cues[1] != (transcript.Cue{Index: 2, Text: "Bye", Start: 1.0, End: 1.3}) {
		t.Fatalf("unexpected second cue %+v", cues[1])
	}
	if reasons[0] != ReasonPunctuation || reasons[1] != ReasonEndOfInput {
		t.Fatalf("unexpected reasons %v", reasons)
	}
}

func TestSegmentDocumentedPunctuationExample(t *testing.T) {
	spans := []transcript.Span{
		word("Hi", 0, 0.3),
		word("there.", 0.3, 0.8),
		word("Bye", 0.9, 1.2),
	}
	cues, err := Segment(spans, Config{MaxChars: 42, PauseThreshold: 0.7})
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	want := []transcript.Cue{
		{Index: 1, Text: "Hi there.", Start: 0, End: 0.8},
		{Index: 2, Text: "Bye", Start: 0.9, End: 1.2},
	}
	if len(cues) != len(want) {
		t.Fatalf("expected %d cues, got %+v", len(want), cues)
	}
	for i := range want {
		if cues[i] != want[i] {
			t.Fatalf("cue %d: got %+v, want %+v", i, cues[i], want[i])
		}
	}
}

func TestSegmentPauseFlush(t *testing.T) {
	spans := []transcript.Span{
		word("so", 0, 0.3),
		word("anyway", 0.3, 0.8),
		word("later", 2.0, 2.4),
	}
	cues, reasons, err := SegmentWithReasons(spans, Config{MaxChars: 100, PauseThreshold: 0.7})
	if err != nil {
		t.Fatalf("SegmentWithReasons: %v", err)
	}
	if len(cues) != 2 || cues[0].Text != "so anyway" || cues[0].End != 0.8 {
		t.Fatalf("unexpected cues %+v", cues)
	}
	if reasons[0] != ReasonPause {
		t.Fatalf("expected pause flush, got %v", reasons[0])
	}
}

func TestSegmentPauseMustExceedThreshold(t *testing.T) {
	spans := []transcript.Span{
		word("a", 0, 1),
		word("b", 1.5, 2),
	}
	cues, err := Segment(spans, Config{MaxChars: 100, PauseThreshold: 0.5})
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(cues) != 1 || cues[0].Text != "a b" {
		t.Fatalf("gap equal to threshold should not flush, got %+v", cues)
	}
}

func TestSegmentLengthFlush(t *testing.T) {
	var spans []transcript.Span
	for i := 0; i < 20; i++ {
		start := float64(i) * 0.2
		spans = append(spans, word("word", start, start+0.2))
	}
	cues, reasons, err := SegmentWithReasons(spans, Config{MaxChars: 14, PauseThreshold: 1})
	if err != nil {
		t.Fatalf("SegmentWithReasons: %v", err)
	}
	// "word word word" is 14 characters.
	if len(cues) != 7 {
		t.Fatalf("expected 7 cues, got %d", len(cues))
	}
	for i, cue := range cues[:6] {
		if cue.Text != "word word word" || reasons[i] != ReasonLength {
			t.Fatalf("cue %d: %q via %v", i, cue.Text, reasons[i])
		}
	}
	if cues[6].Text != "word word" || reasons[6] != ReasonEndOfInput {
		t.Fatalf("unexpected final cue %q via %v", cues[6].Text, reasons[6])
	}
}

func TestSegmentLengthCountsCharacters(t *testing.T) {
	spans := []transcript.Span{
		word("h\u00e9\u00e9", 0, 1),
		word("ok", 1, 2),
	}
	// Three characters but five bytes; only a byte count would reach 4.
	cues, err := Segment(spans, Config{MaxChars: 4, PauseThreshold: 5})
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(cues) != 1 || cues[0].Text != "h\u00e9\u00e9 ok" {
		t.Fatalf("expected a single cue, got %+v", cues)
	}
}

func TestSegmentSingleSpan(t *testing.T) {
	cues, err := Segment([]transcript.Span{word("Done.", 0, 1)}, DefaultConfig())
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(cues) != 1 || cues[0].Index != 1 {
		t.Fatalf("expected exactly one cue, got %+v", cues)
	}
}

func TestSegmentEmpty(t *testing.T) {
	cues, err := Segment(nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(cues) != 0 {
		t.Fatalf("expected no cues, got %+v", cues)
	}
}

func TestSegmentSpanMode(t *testing.T) {
	spans := []transcript.Span{
		word("first phrase", 0, 1),
		word("second phrase", 1, 2),
		word("third", 2, 3),
	}
	cues, reasons, err := SegmentWithReasons(spans, Config{MaxChars: 100, PauseThreshold: 5, Mode: ModeSpan})
	if err != nil {
		t.Fatalf("SegmentWithReasons: %v", err)
	}
	if len(cues) != 3 {
		t.Fatalf("expected one cue per span, got %d", len(cues))
	}
	if reasons[0] != ReasonSpan || reasons[2] != ReasonEndOfInput {
		t.Fatalf("unexpected reasons %v", reasons)
	}
}

func TestSegmentIndicesDenseAndStartsMonotonic(t *testing.T) {
	spans := []transcript.Span{
		word("One.", 0, 0.5),
		word("Two", 0.5, 1),
		word("three!", 1, 1.5),
		word("four", 3, 3.5),
		word("five?", 3.5, 4),
	}
	cues, err := Segment(spans, DefaultConfig())
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	for i, cue := range cues {
		if cue.Index != i+1 {
			t.Fatalf("cue %d has index %d", i, cue.Index)
		}
		if cue.End < cue.Start {
			t.Fatalf("cue %d ends before it starts", i)
		}
		if i > 0 && cue.Start < cues[i-1].Start {
			t.Fatalf("cue %d starts before previous", i)
		}
		if strings.TrimSpace(cue.Text) == "" {
			t.Fatalf("cue %d is empty", i)
		}
	}
}

func TestSegmentRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name  string
		spans []transcript.Span
		cfg   Config
	}{
		{"zero max chars", nil, Config{MaxChars: 0}},
		{"negative pause", nil, Config{MaxChars: 10, PauseThreshold: -1}},
		{"unknown mode", nil, Config{MaxChars: 10, Mode: "paragraph"}},
		{"unresolved span", []transcript.Span{{Text: "x", Start: transcript.At(0)}}, DefaultConfig()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Segment(tc.spans, tc.cfg); !errors.Is(err, services.ErrMalformedInput) {
				t.Fatalf("expected malformed input, got %v", err)
			}
		})
	}
}
