// Package services defines shared utilities consumed by the caption pipeline
// stages and the CLI wrappers around them.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, stage names and the source
//     transcript for logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures with errors.Is and map them to exit codes.
//
// Use these helpers when wiring new stage logic so error handling and
// observability stay uniform across the pipeline.
package services
