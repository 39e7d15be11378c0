// Package main hosts the captioner CLI entrypoint and command graph.
//
// The Cobra-based command tree reads recognizer JSON from a file or stdin,
// optionally probes the source media for its duration, runs the caption
// pipeline, and writes SubRip or WebVTT output. It also validates existing
// subtitle files, lists the local run history, and scaffolds configuration.
//
// Keep this package lean: caption behaviour lives in internal/captions and
// its stage packages; commands here only resolve configuration and flags.
package main
