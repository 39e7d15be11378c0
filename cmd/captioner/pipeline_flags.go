package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"captioner/internal/captions"
	"captioner/internal/config"
	"captioner/internal/logging"
	"captioner/internal/media/ffprobe"
	"captioner/internal/reconcile"
	"captioner/internal/services"
	"captioner/internal/transcript"
)

// pipelineFlags are the per-run overrides shared by render and inspect.
type pipelineFlags struct {
	duration float64
	probe    string
	maxChars int
	pause    float64
	mode     string
	format   string
	filter   bool
	minCue   float64
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Float64Var(&f.duration, "duration", 0, "Media duration in seconds (fallback end of the final cue)")
	flags.StringVar(&f.probe, "probe", "", "Media file to probe with ffprobe for its duration")
	flags.IntVar(&f.maxChars, "max-chars", 0, "Characters that force a new cue (overrides segmentation.max_chars)")
	flags.Float64Var(&f.pause, "pause", 0, "Silence in seconds that ends a cue (overrides segmentation.pause_threshold)")
	flags.StringVar(&f.mode, "mode", "", "Segmentation mode: sentence or span")
	flags.StringVar(&f.format, "format", "", "Subtitle format: srt or vtt")
	flags.BoolVar(&f.filter, "filter", false, "Remove recognizer hallucinations (overrides filter.hallucinations)")
	flags.Float64Var(&f.minCue, "min-cue-duration", 0, "Fallback cue length in seconds for spans without an end")
}

// request builds a caption request from configuration and explicitly set flags.
func (f *pipelineFlags) request(cmd *cobra.Command, cfg *config.Config) (captions.Request, error) {
	req := captions.RequestFromConfig(cfg)
	flags := cmd.Flags()
	if flags.Changed("max-chars") {
		req.Segmentation.MaxChars = f.maxChars
	}
	if flags.Changed("pause") {
		req.Segmentation.PauseThreshold = f.pause
	}
	if flags.Changed("mode") {
		req.Segmentation.Mode = f.mode
	}
	if flags.Changed("filter") {
		req.Filter.Hallucinations = f.filter
	}
	if flags.Changed("min-cue-duration") {
		req.MinCueDuration = f.minCue
	}
	if flags.Changed("format") {
		req.Format = captions.Format(f.format)
	}
	format, err := captions.ParseFormat(string(req.Format))
	if err != nil {
		return captions.Request{}, err
	}
	req.Format = format
	return req, nil
}

// resolveDuration prefers an explicit --duration over probing. A probe that
// reports no usable length leaves the duration unknown.
func (f *pipelineFlags) resolveDuration(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (reconcile.Duration, error) {
	return resolveDuration(ctx, cmd.Flags().Changed("duration"), f.duration, f.probe, cfg, logger)
}

func resolveDuration(ctx context.Context, explicit bool, seconds float64, probe string, cfg *config.Config, logger *slog.Logger) (reconcile.Duration, error) {
	if explicit {
		return reconcile.NewDuration(seconds)
	}
	probe = strings.TrimSpace(probe)
	if probe == "" {
		return reconcile.Duration{}, nil
	}
	result, err := ffprobe.Inspect(ctx, cfg.FFprobeBinary(), probe)
	if err != nil {
		return reconcile.Duration{}, err
	}
	length, ok := result.Duration()
	if !ok {
		logging.WarnWithContext(logger, "media duration unavailable", "probe_duration_missing",
			logging.String("media_path", probe),
			logging.String(logging.FieldErrorHint, "pass --duration to set the media length explicitly"),
			logging.String(logging.FieldImpact, "the final cue falls back to the minimum cue duration"),
		)
		return reconcile.Duration{}, nil
	}
	if logger != nil {
		logger.Debug("media duration probed",
			logging.String("media_path", probe),
			logging.Seconds("duration_seconds", length),
			logging.Int("audio_streams", result.AudioStreamCount()),
		)
	}
	return reconcile.NewDuration(length)
}

// readTranscript decodes recognizer JSON from path, or from stdin when path is "-".
func readTranscript(cmd *cobra.Command, path string) (transcript.Result, error) {
	path = strings.TrimSpace(path)
	var reader io.Reader
	if path == "-" {
		reader = cmd.InOrStdin()
	} else {
		file, err := os.Open(path)
		if err != nil {
			return transcript.Result{}, services.Wrap(services.ErrNotFound, "cli", "read transcript",
				fmt.Sprintf("open %s", path), err)
		}
		defer file.Close()
		reader = file
	}
	return transcript.Decode(reader)
}
