package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"captioner/internal/services"
	"captioner/internal/srt"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var duration float64
	var probe string

	cmd := &cobra.Command{
		Use:   "validate <file.srt>",
		Short: "Check a SubRip file for structural and timing problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			path := strings.TrimSpace(args[0])
			data, err := os.ReadFile(path)
			if err != nil {
				return services.Wrap(services.ErrNotFound, "cli", "validate", fmt.Sprintf("read %s", path), err)
			}
			cues, skipped, err := srt.ParseString(string(data))
			if err != nil {
				return err
			}

			runCtx := services.WithStage(cmd.Context(), "validate")
			media, err := resolveDuration(runCtx, cmd.Flags().Changed("duration"), duration, probe, cfg, logger)
			if err != nil {
				return err
			}
			videoSeconds, _ := media.Get()
			issues := srt.Validate(cues, videoSeconds)

			status := newStatusWriter(cmd.OutOrStdout())
			status.section(path)
			status.line("Cues", statusInfo, strconv.Itoa(len(cues)))
			if skipped > 0 {
				status.line("Unreadable blocks", statusWarn, strconv.Itoa(skipped))
			}
			if videoSeconds > 0 {
				status.line("Media duration", statusInfo, media.String())
			}
			if len(issues) == 0 {
				status.line("Validation", statusOK, "no issues found")
				return nil
			}
			for _, issue := range issues {
				status.line("Issue", statusError, issue)
			}
			return services.Wrap(services.ErrMalformedInput, "cli", "validate",
				fmt.Sprintf("%s has %d issue(s)", path, len(issues)), nil)
		},
	}

	cmd.Flags().Float64Var(&duration, "duration", 0, "Media duration in seconds for the length check")
	cmd.Flags().StringVar(&probe, "probe", "", "Media file to probe with ffprobe for the length check")
	return cmd
}
