package transcript

import "math"

// Time is an optional offset in seconds from the start of the media.
type Time struct {
	Seconds float64
	Valid   bool
}

// At returns a present Time.
func At(seconds float64) Time {
	return Time{Seconds: seconds, Valid: true}
}

// Get returns the seconds value and whether it is present.
func (t Time) Get() (float64, bool) {
	return t.Seconds, t.Valid
}

// timeFrom converts a decoded nullable timestamp. Negative or non-finite
// values are reported by recognizers for unknown times and are treated as absent.
func timeFrom(value *float64) Time {
	if value == nil {
		return Time{}
	}
	v := *value
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return Time{}
	}
	return At(v)
}

// Span is a timed piece of transcript text prior to segmentation.
type Span struct {
	Text  string
	Start Time
	End   Time
}

// Resolved reports whether both times are present and ordered.
func (s Span) Resolved() bool {
	return s.Start.Valid && s.End.Valid && s.End.Seconds >= s.Start.Seconds
}

// Cue is a finalized, indexed caption.
type Cue struct {
	Index int
	Text  string
	Start float64
	End   float64
}

// Duration returns the on-screen time of the cue in seconds.
func (c Cue) Duration() float64 {
	return c.End - c.Start
}
