package reconcile

import "captioner/internal/transcript"

// DefaultMinCueDuration keeps an otherwise unresolvable cue visible.
const DefaultMinCueDuration = 0.5

// Candidate is the neighbourhood of one span at the moment its end is resolved.
type Candidate struct {
	// Start is the span's already-resolved start.
	Start float64
	// End is the span's end as reported by the recognizer.
	End transcript.Time
	// NextStart is the following span's reported start; absent for the last span.
	NextStart transcript.Time
	// Last is true for the final span of the sequence.
	Last bool
	// Duration is the total media length, when known.
	Duration Duration
	// MinCueDuration is the fallback cue length.
	MinCueDuration float64
}

// Policy resolves a span end or declines so the next policy is consulted.
type Policy struct {
	Name    string
	Resolve func(Candidate) (float64, bool)
}

// Policy names reported in decisions.
const (
	PolicyKeep          = "keep"
	PolicyNextStart     = "next_start"
	PolicyTotalDuration = "total_duration"
	PolicyMinimum       = "minimum"
)

var (
	// KeepEnd keeps a reported end that lies after the start.
	KeepEnd = Policy{Name: PolicyKeep, Resolve: func(c Candidate) (float64, bool) {
		if c.End.Valid && c.End.Seconds > c.Start {
			return c.End.Seconds, true
		}
		return 0, false
	}}

	// NextStart borrows the following span's start for interior spans.
	NextStart = Policy{Name: PolicyNextStart, Resolve: func(c Candidate) (float64, bool) {
		if c.Last || !c.NextStart.Valid || c.NextStart.Seconds <= c.Start {
			return 0, false
		}
		return c.NextStart.Seconds, true
	}}

	// TotalDuration extends the final span to the end of the media.
	TotalDuration = Policy{Name: PolicyTotalDuration, Resolve: func(c Candidate) (float64, bool) {
		total, ok := c.Duration.Get()
		if !c.Last || !ok || total <= c.Start {
			return 0, false
		}
		return total, true
	}}

	// Minimum gives the span a fixed visible length.
	Minimum = Policy{Name: PolicyMinimum, Resolve: func(c Candidate) (float64, bool) {
		return c.Start + minCueDuration(c.MinCueDuration), true
	}}
)

// DefaultPolicies returns the precedence used by Reconcile when none is given.
func DefaultPolicies() []Policy {
	return []Policy{KeepEnd, NextStart, TotalDuration, Minimum}
}

func minCueDuration(value float64) float64 {
	if value > 0 {
		return value
	}
	return DefaultMinCueDuration
}
