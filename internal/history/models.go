package history

import "time"

// Status is the outcome of a run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Run is one recorded render.
type Run struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	// Source is the transcript path, or "-" for stdin.
	Source string `json:"source"`
	// Output is the written subtitle path; empty when printed to stdout.
	Output       string `json:"output,omitempty"`
	Format       string `json:"format"`
	Shape        string `json:"shape"`
	SpanCount    int    `json:"span_count"`
	CueCount     int    `json:"cue_count"`
	RemovedCount int    `json:"removed_count"`
	// DurationSeconds is the media length used for reconciliation, if any.
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	Status          Status   `json:"status"`
	ErrorMessage    string   `json:"error,omitempty"`
}
