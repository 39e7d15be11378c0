// Package output places rendered subtitles on disk. Writes go through a
// temporary file that is renamed into place while an advisory lock on
// "<target>.lock" keeps concurrent captioner runs from interleaving.
package output
