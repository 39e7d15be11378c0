package srt

import (
	"strconv"
	"strings"

	"captioner/internal/transcript"
)

// Render serializes cues as SubRip text. Each block is
// "index\nstart --> end\ntext\n" and blocks are separated by one empty line.
// No cues renders as the empty string.
func Render(cues []transcript.Cue) string {
	var sb strings.Builder
	for i, cue := range cues {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strconv.Itoa(cue.Index))
		sb.WriteByte('\n')
		sb.WriteString(FormatTimestamp(cue.Start))
		sb.WriteString(" --> ")
		sb.WriteString(FormatTimestamp(cue.End))
		sb.WriteByte('\n')
		sb.WriteString(cue.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderVTT serializes cues as WebVTT text with cue identifiers.
func RenderVTT(cues []transcript.Cue) string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n")
	for _, cue := range cues {
		sb.WriteByte('\n')
		sb.WriteString(strconv.Itoa(cue.Index))
		sb.WriteByte('\n')
		sb.WriteString(FormatVTTTimestamp(cue.Start))
		sb.WriteString(" --> ")
		sb.WriteString(FormatVTTTimestamp(cue.End))
		sb.WriteByte('\n')
		sb.WriteString(cue.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}
