package main

import (
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand() *cobra.Command {
	var configFlag string
	var verbose bool

	ctx := newCommandContext(&configFlag, &verbose)

	rootCmd := &cobra.Command{
		Use:           "captioner",
		Short:         "Turn speech recognizer transcripts into subtitle files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `captioner converts the JSON transcript emitted by a speech recognizer
(chunks, word timestamps or segments) into SubRip or WebVTT subtitles.

Spans without an end time are closed using the next span's start, the
media duration (from --duration or ffprobe), or a minimum cue length.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadDotEnv(); err != nil {
				return err
			}
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log per-span decisions at debug level")

	rootCmd.AddCommand(
		newRenderCommand(ctx),
		newInspectCommand(ctx),
		newValidateCommand(ctx),
		newHistoryCommand(ctx),
		newConfigCommand(ctx),
	)

	return rootCmd
}
