// Package config loads, normalizes, and validates captioner configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours CAPTIONER_* environment overrides
// for the segmentation and logging knobs. The Config type centralizes every
// setting the CLI needs so segmentation thresholds, output format, and state
// directories are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical formats, and clear validation errors.
package config
