package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"captioner/internal/captions"
	"captioner/internal/config"
	"captioner/internal/history"
	"captioner/internal/logging"
	"captioner/internal/output"
	"captioner/internal/services"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var flags pipelineFlags
	var outputPath string
	var toStdout bool
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "render <transcript.json|->",
		Short: "Render a recognizer transcript as a subtitle file",
		Long: `Render reads recognizer JSON (chunk, word, segment, or plain text shape),
repairs missing timestamps, groups words into sentence cues, and writes SubRip
or WebVTT output. Use "-" to read the transcript from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			source := strings.TrimSpace(args[0])
			runID := uuid.NewString()
			runCtx := services.WithRequestID(cmd.Context(), runID)
			runCtx = services.WithStage(runCtx, "render")
			runCtx = services.WithSource(runCtx, source)

			run := history.Run{ID: runID, Source: source}
			written, err := renderTranscript(runCtx, cmd, cfg, logger, &flags, source, outputPath, toStdout, &run)
			if err != nil {
				run.Status = history.StatusFailed
				run.ErrorMessage = err.Error()
			}
			if !noHistory {
				recordRun(runCtx, cfg, logger, run)
			}
			if err != nil {
				return err
			}

			if !toStdout && written != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d cues to %s\n", run.CueCount, written)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Subtitle destination (default: transcript name with the format extension)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print subtitles to stdout instead of writing a file")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in the history database")
	return cmd
}

// renderTranscript runs one render and fills run with its outcome. It returns
// the written path, or "" when printing to stdout.
func renderTranscript(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, flags *pipelineFlags, source, outputPath string, toStdout bool, run *history.Run) (string, error) {
	req, err := flags.request(cmd, cfg)
	if err != nil {
		return "", err
	}
	run.Format = string(req.Format)

	if strings.TrimSpace(outputPath) == "-" {
		toStdout = true
	}
	target := ""
	if !toStdout {
		target = strings.TrimSpace(outputPath)
		if target == "" {
			target, err = output.Path(source, cfg.Output.Dir, req.Format.Extension())
			if err != nil {
				return "", err
			}
		}
	}

	req.Transcript, err = readTranscript(cmd, source)
	if err != nil {
		return "", err
	}
	req.Duration, err = flags.resolveDuration(ctx, cmd, cfg, logger)
	if err != nil {
		return "", err
	}
	if seconds, ok := req.Duration.Get(); ok {
		run.DurationSeconds = &seconds
	}

	rendered, result, err := captions.NewService(logger).Render(ctx, req)
	run.Shape = result.Shape.String()
	run.SpanCount = len(result.Spans)
	run.CueCount = len(result.Cues)
	run.RemovedCount = len(result.Removals)
	if err != nil {
		return "", err
	}

	if toStdout {
		_, err := fmt.Fprint(cmd.OutOrStdout(), rendered)
		return "", err
	}
	if err := output.WriteFile(target, rendered); err != nil {
		return "", err
	}
	run.Output = target
	if len(result.Cues) == 0 {
		logging.WarnWithContext(logging.WithContext(ctx, logger), "transcript produced no cues", "empty_transcript",
			logging.String(logging.FieldErrorHint, "check that the recognizer output contains text"),
			logging.String(logging.FieldImpact, "an empty subtitle file was written"),
		)
	}
	return target, nil
}

// recordRun stores the run outcome; history failures never fail the render.
func recordRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, run history.Run) {
	store, err := history.Open(cfg)
	if err == nil {
		defer store.Close()
		_, err = store.Record(ctx, run)
	}
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, logger), "failed to record run history", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check paths.state_dir permissions"),
			logging.String(logging.FieldImpact, "this run will not appear in captioner history"),
		)
	}
}
