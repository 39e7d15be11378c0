// Package srt renders caption cues as SubRip and WebVTT text and reads SubRip
// files back for validation.
package srt
