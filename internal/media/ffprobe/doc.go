// Package ffprobe wraps the ffprobe binary to discover how long a media file
// runs. The duration feeds timestamp reconciliation as the fallback end of
// the final caption.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual stream properties
//   - Format: container-level metadata
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
package ffprobe
