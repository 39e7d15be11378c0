package reconcile

import "captioner/internal/transcript"

// Options tunes reconciliation.
type Options struct {
	// MinCueDuration overrides DefaultMinCueDuration when positive.
	MinCueDuration float64
	// Policies overrides DefaultPolicies when non-empty.
	Policies []Policy
}

// Decision records how one span was resolved.
type Decision struct {
	Index int
	// Policy names the end policy that produced the span's end.
	Policy string
	// StartRepaired is set when the reported start was absent or out of order.
	StartRepaired bool
}

// Reconcile returns spans with both times present, End >= Start, and starts
// that never decrease. Order and length are preserved.
func Reconcile(spans []transcript.Span, duration Duration, opts Options) ([]transcript.Span, []Decision) {
	if len(spans) == 0 {
		return nil, nil
	}
	policies := opts.Policies
	if len(policies) == 0 {
		policies = DefaultPolicies()
	}

	resolved := make([]transcript.Span, len(spans))
	decisions := make([]Decision, len(spans))
	for i, span := range spans {
		start, repaired := resolveStart(span.Start, i, resolved)

		candidate := Candidate{
			Start:          start,
			End:            span.End,
			Last:           i == len(spans)-1,
			Duration:       duration,
			MinCueDuration: opts.MinCueDuration,
		}
		if !candidate.Last {
			candidate.NextStart = spans[i+1].Start
		}
		end, policy := resolveEnd(candidate, policies)

		resolved[i] = transcript.Span{
			Text:  span.Text,
			Start: transcript.At(start),
			End:   transcript.At(end),
		}
		decisions[i] = Decision{Index: i, Policy: policy, StartRepaired: repaired}
	}
	return resolved, decisions
}

// resolveStart fills an absent start from the previous span's end (0 for the
// first span). A start earlier than the previous span's start is treated as
// absent so starts stay monotonic.
func resolveStart(start transcript.Time, i int, resolved []transcript.Span) (float64, bool) {
	if i == 0 {
		if start.Valid {
			return start.Seconds, false
		}
		return 0, true
	}
	prev := resolved[i-1]
	if start.Valid && start.Seconds >= prev.Start.Seconds {
		return start.Seconds, false
	}
	return prev.End.Seconds, true
}

func resolveEnd(c Candidate, policies []Policy) (float64, string) {
	for _, policy := range policies {
		if policy.Resolve == nil {
			continue
		}
		if end, ok := policy.Resolve(c); ok && end >= c.Start {
			return end, policy.Name
		}
	}
	end, _ := Minimum.Resolve(c)
	return end, Minimum.Name
}
