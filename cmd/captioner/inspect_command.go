package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"captioner/internal/captions"
	"captioner/internal/services"
	"captioner/internal/srt"
	"captioner/internal/transcript"
)

type inspectCue struct {
	Index    int     `json:"index"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Reason   string  `json:"reason"`
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
}

type inspectRemoval struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

type inspectReport struct {
	Shape      string           `json:"shape"`
	SpanCount  int              `json:"span_count"`
	StartFixes int              `json:"starts_repaired"`
	Duration   string           `json:"duration"`
	Policies   map[string]int   `json:"end_policies"`
	Cues       []inspectCue     `json:"cues"`
	Removed    []inspectRemoval `json:"removed,omitempty"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var flags pipelineFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <transcript.json|->",
		Short: "Show the cue plan for a transcript without writing files",
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
			req, err := flags.request(cmd, cfg)
			if err != nil {
				return err
			}
			if req.Transcript, err = readTranscript(cmd, args[0]); err != nil {
				return err
			}
			runCtx := services.WithSource(services.WithStage(cmd.Context(), "inspect"), args[0])
			if req.Duration, err = flags.resolveDuration(runCtx, cmd, cfg, logger); err != nil {
				return err
			}

			result, err := captions.NewService(logger).Build(runCtx, req)
			if err != nil {
				return err
			}
			report := buildInspectReport(req, result)
			if asJSON {
				return writeJSON(cmd, report)
			}
			printInspectReport(cmd, report)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the cue plan as JSON")
	return cmd
}

func buildInspectReport(req captions.Request, result captions.Result) inspectReport {
	report := inspectReport{
		Shape:     result.Shape.String(),
		SpanCount: len(result.Spans),
		Policies:  make(map[string]int),
		Cues:      make([]inspectCue, 0, len(result.Cues)),
		Duration:  req.Duration.String(),
	}
	for _, removal := range result.Removals {
		report.Removed = append(report.Removed, inspectRemoval{
			Index:  removal.Cue.Index,
			Text:   removal.Cue.Text,
			Reason: removal.Reason,
		})
	}
	for _, decision := range result.Decisions {
		report.Policies[decision.Policy]++
		if decision.StartRepaired {
			report.StartFixes++
		}
	}
	for i, cue := range result.Cues {
		reason := ""
		if i < len(result.Reasons) {
			reason = string(result.Reasons[i])
		}
		report.Cues = append(report.Cues, inspectCue{
			Index:    cue.Index,
			Start:    cue.Start,
			End:      cue.End,
			Reason:   reason,
			Text:     cue.Text,
			Duration: cue.Duration(),
		})
	}
	return report
}

func printInspectReport(cmd *cobra.Command, report inspectReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Shape: %s\n", report.Shape)
	fmt.Fprintf(out, "Spans: %d (starts repaired: %d)\n", report.SpanCount, report.StartFixes)
	fmt.Fprintf(out, "Media duration: %s\n", report.Duration)
	if len(report.Policies) > 0 {
		fmt.Fprintf(out, "End policies: %s\n", formatPolicies(report.Policies))
	}
	if len(report.Cues) == 0 {
		fmt.Fprintln(out, "No cues")
		return
	}

	rows := make([][]string, 0, len(report.Cues))
	for _, cue := range report.Cues {
		rows = append(rows, []string{
			strconv.Itoa(cue.Index),
			srt.FormatTimestamp(cue.Start),
			srt.FormatTimestamp(cue.End),
			strconv.FormatFloat(cue.Duration, 'f', 3, 64),
			cue.Reason,
			truncate(cue.Text, 60),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]column{{title: "#", numeric: true}, {title: "Start"}, {title: "End"}, {title: "Secs", numeric: true}, {title: "Flush"}, {title: "Text"}},
		rows,
	))
	for _, removal := range report.Removed {
		fmt.Fprintf(out, "Filtered: %q (%s)\n", removal.Text, removal.Reason)
	}
}

func formatPolicies(policies map[string]int) string {
	order := []string{"keep", "next_start", "total_duration", "minimum"}
	parts := make([]string, 0, len(policies))
	for _, name := range order {
		if count, ok := policies[name]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", name, count))
		}
	}
	return strings.Join(parts, " ")
}

func truncate(text string, limit int) string {
	runes := []rune(transcript.CleanText(text))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit-1]) + "…"
}
