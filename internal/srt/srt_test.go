package srt

import (
	"math"
	"strings"
	"testing"

	"captioner/internal/transcript"
)

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{1.001, "00:00:01,001"},
		{1.0019, "00:00:01,001"},
		{1.9999, "00:00:01,999"},
		{61.25, "00:01:01,250"},
		{3723.004, "01:02:03,004"},
		{360000, "100:00:00,000"},
		{-2, "00:00:00,000"},
	}
	for _, tc := range cases {
		if got := FormatTimestamp(tc.seconds); got != tc.want {
			t.Fatalf("FormatTimestamp(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
	if got := FormatVTTTimestamp(1.5); got != "00:00:01.500" {
		t.Fatalf("FormatVTTTimestamp = %q", got)
	}
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp(" 01:02:03,004 ")
	if err != nil {
		t.Fatalf("ParseTimestamp: %v", err)
	}
	if math.Abs(got-3723.004) > 1e-9 {
		t.Fatalf("expected 3723.004, got %v", got)
	}
	if got, err := ParseTimestamp("00:00:01.500"); err != nil || got != 1.5 {
		t.Fatalf("period separator: %v %v", got, err)
	}
	for _, bad := range []string{"", "00:00:01", "1:2,3,4", "aa:00:00,000", "00:61:00,000"} {
		if _, err := ParseTimestamp(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestRenderSingleCue(t *testing.T) {
	got := Render([]transcript.Cue{{Index: 1, Text: "hello", Start: 0, End: 1.5}})
	if got != "1\n00:00:00,000 --> 00:00:01,500\nhello\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderSeparatesBlocks(t *testing.T) {
	cues := []transcript.Cue{
		{Index: 1, Text: "Hi there.", Start: 0, End: 0.9},
		{Index: 2, Text: "Bye", Start: 1, End: 1.3},
	}
	want := "1\n00:00:00,000 --> 00:00:00,900\nHi there.\n\n2\n00:00:01,000 --> 00:00:01,300\nBye\n"
	got := Render(cues)
	if got != want {
		t.Fatalf("unexpected output %q", got)
	}
	if Render(cues) != got {
		t.Fatal("rendering is not deterministic")
	}
	if strings.HasSuffix(got, "\n\n") {
		t.Fatal("expected no trailing blank line")
	}
}

func TestRenderIdempotent(t *testing.T) {
	cues := []transcript.Cue{
		{Index: 1, Text: "Hi there.", Start: 0, End: 0.8},
		{Index: 2, Text: "fractional", Start: 1.0009, End: 2.3456789},
		{Index: 3, Text: "late", Start: 3723.004, End: 3725.5},
	}
	original := append([]transcript.Cue(nil), cues...)

	renderers := map[string]func([]transcript.Cue) string{"srt": Render, "vtt": RenderVTT}
	for name, render := range renderers {
		first := render(cues)
		second := render(cues)
		if first != second {
			t.Fatalf("%s: output differs between renders:\n%q\n%q", name, first, second)
		}
		if first == "" {
			t.Fatalf("%s: expected output", name)
		}
	}
	for i := range original {
		if cues[i] != original[i] {
			t.Fatalf("cue %d mutated: %+v, was %+v", i, cues[i], original[i])
		}
	}
	if got := Render(cues); !strings.Contains(got, "00:00:01,000 --> 00:00:02,345") {
		t.Fatalf("expected truncated milliseconds, got %q", got)
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
	if got := RenderVTT(nil); got != "WEBVTT\n" {
		t.Fatalf("expected bare header, got %q", got)
	}
}

func TestRenderVTT(t *testing.T) {
	got := RenderVTT([]transcript.Cue{{Index: 1, Text: "hello", Start: 0.25, End: 1.5}})
	want := "WEBVTT\n\n1\n00:00:00.250 --> 00:00:01.500\nhello\n"
	if got != want {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestParseRoundTrip(t *testing.T) {
	cues := []transcript.Cue{
		{Index: 1, Text: "first line", Start: 0.5, End: 2},
		{Index: 2, Text: "second line", Start: 2.25, End: 4.75},
	}
	parsed, err := Parse(strings.NewReader(Render(cues)))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed) != len(cues) {
		t.Fatalf("expected %d cues, got %d", len(cues), len(parsed))
	}
	for i := range cues {
		if parsed[i] != cues[i] {
			t.Fatalf("cue %d: got %+v want %+v", i, parsed[i], cues[i])
		}
	}
}

func TestParseSkipsBrokenBlocks(t *testing.T) {
	content := "\ufeff1\r\n00:00:00,000 --> 00:00:01,000\r\nok\r\n\r\nnot a cue\r\n\r\n3\r\n00:00:02,000 --> 00:00:03,000\r\nmulti\r\nline\r\n"
	cues, skipped, err := ParseString(content)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if len(cues) != 2 || skipped != 1 {
		t.Fatalf("expected 2 cues and 1 skipped, got %d and %d", len(cues), skipped)
	}
	if cues[1].Text != "multi\nline" {
		t.Fatalf("unexpected multi-line text %q", cues[1].Text)
	}
}

func TestValidate(t *testing.T) {
	good := []transcript.Cue{
		{Index: 1, Text: "a", Start: 0, End: 1},
		{Index: 2, Text: "b", Start: 1, End: 20},
	}
	if issues := Validate(good, 25); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
	if issues := Validate(nil, 0); len(issues) != 1 || issues[0] != "empty_subtitle_file" {
		t.Fatalf("unexpected issues %v", issues)
	}

	bad := []transcript.Cue{
		{Index: 1, Text: "a", Start: 5, End: 4},
		{Index: 3, Text: "b", Start: 2, End: 3},
	}
	issues := Validate(bad, 100)
	joined := strings.Join(issues, "; ")
	for _, want := range []string{"negative_duration", "index_gap", "non_monotonic_start", "duration_mismatch"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %s in %q", want, joined)
		}
	}
}
