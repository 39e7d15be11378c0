// Package reconcile repairs missing and contradictory span timestamps.
//
// Start times are filled from the previous span; end times are resolved by an
// ordered list of policies (keep a valid end, borrow the next span's start,
// use the media duration for the final span, or fall back to a minimum cue
// length). The first policy that produces an end after the span's start wins,
// and the winning policy is reported per span so the precedence can be audited.
package reconcile
