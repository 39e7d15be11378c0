// Package transcript defines the caption data model and adapts raw recognizer
// output into it.
//
// Recognizers report timing in several shapes: chunk lists with nullable
// [start, end] pairs, flat word lists, or segment lists that may nest words.
// Normalize detects the shape once and produces an ordered []Span so the
// reconcile, segment, and srt packages never branch on where the data came
// from.
package transcript
