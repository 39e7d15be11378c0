package srt

import (
	"io"
	"strconv"
	"strings"

	"captioner/internal/services"
	"captioner/internal/transcript"
)

// Parse reads SubRip text. Blocks that lack an index, a timing line, or text
// are skipped; a file with no readable blocks yields no cues.
func Parse(r io.Reader) ([]transcript.Cue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, services.Wrap(services.ErrMalformedInput, "srt", "read", "read subtitle data", err)
	}
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}

	var cues []transcript.Cue
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		cue, ok := parseBlock(block)
		if !ok {
			continue
		}
		cues = append(cues, cue)
	}
	return cues, nil
}

func parseBlock(block string) (transcript.Cue, bool) {
	lines := strings.Split(block, "\n")
	if len(lines) < 3 {
		return transcript.Cue{}, false
	}
	index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return transcript.Cue{}, false
	}
	startText, endText, ok := strings.Cut(lines[1], "-->")
	if !ok {
		return transcript.Cue{}, false
	}
	start, err := ParseTimestamp(startText)
	if err != nil {
		return transcript.Cue{}, false
	}
	end, err := ParseTimestamp(endText)
	if err != nil {
		return transcript.Cue{}, false
	}
	return transcript.Cue{
		Index: index,
		Text:  strings.Join(lines[2:], "\n"),
		Start: start,
		End:   end,
	}, true
}

// countBlocks counts non-empty blocks, readable or not.
func countBlocks(content string) int {
	content = strings.TrimSpace(strings.ReplaceAll(content, "\r\n", "\n"))
	if content == "" {
		return 0
	}
	count := 0
	for _, block := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count
}

// ParseString is Parse over an in-memory document that also reports how many
// blocks could not be read.
func ParseString(content string) ([]transcript.Cue, int, error) {
	cues, err := Parse(strings.NewReader(content))
	if err != nil {
		return nil, 0, err
	}
	return cues, max(countBlocks(content)-len(cues), 0), nil
}
