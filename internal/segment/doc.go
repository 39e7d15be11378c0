// Package segment groups resolved transcript spans into caption cues.
//
// Spans accumulate in a buffer until a flush condition holds. Conditions are
// checked in priority order: end of input, sentence punctuation, a pause
// longer than the configured threshold before the next span, and finally the
// readability ceiling on buffered text length. Cue indices are assigned once
// segmentation completes so they always run 1..N.
package segment
