package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// Recognizer documents in each supported shape.
const (
	ChunkTranscript = `{"text":" Hello there. Bye","chunks":[
  {"text":" Hello there.","timestamp":[0.0,1.5]},
  {"text":" Bye","timestamp":[2.0,null]}
]}`

	WordTranscript = `{"words":[
  {"word":"Hi","start":0.0,"end":0.4},
  {"word":"there.","start":0.4,"end":0.9},
  {"word":"Bye","start":1.0,"end":1.3}
]}`

	SegmentTranscript = `{"segments":[
  {"text":"First sentence.","start":0.0,"end":2.0},
  {"text":"Second sentence.","start":2.5,"end":4.0}
]}`

	MalformedTranscript = `{"chunks":[{"timestamp":[0.0,1.0]}]}`
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteTranscript writes a recognizer document into dir and returns its path.
func WriteTranscript(t testing.TB, dir, name, doc string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(dir, name), doc)
}
