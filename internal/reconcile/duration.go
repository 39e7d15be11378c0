package reconcile

import (
	"fmt"
	"math"

	"captioner/internal/services"
)

// Duration is the optional total length of the source media. The zero value
// means the length is unknown.
type Duration struct {
	seconds float64
	known   bool
}

// NewDuration validates a supplied media length. Non-positive or non-finite
// values are rejected rather than ignored.
func NewDuration(seconds float64) (Duration, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return Duration{}, services.Wrap(services.ErrMalformedInput, "reconcile", "duration",
			fmt.Sprintf("total duration must be positive, got %v", seconds), nil)
	}
	return Duration{seconds: seconds, known: true}, nil
}

// Get returns the length in seconds and whether it is known.
func (d Duration) Get() (float64, bool) {
	return d.seconds, d.known
}

func (d Duration) String() string {
	if !d.known {
		return "unknown"
	}
	return fmt.Sprintf("%.3fs", d.seconds)
}
