// Package captions composes transcript normalization, timestamp
// reconciliation, sentence segmentation, optional hallucination filtering,
// and subtitle rendering into a single request/result pipeline.
//
// Build and Render are pure functions of their Request. Service wraps them
// with structured logging of the per-span decisions for callers that want an
// audit trail.
package captions
