package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"captioner/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent render runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, runs)
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortID(run.ID),
					run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					string(run.Status),
					run.Shape,
					run.Format,
					strconv.Itoa(run.CueCount),
					truncate(displayTarget(run), 48),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]column{{title: "ID"}, {title: "When"}, {title: "Status"}, {title: "Shape"}, {title: "Format"}, {title: "Cues", numeric: true}, {title: "Output"}},
				rows,
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultListLimit, "Number of runs to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit runs as JSON")

	cmd.AddCommand(newHistoryShowCommand(ctx))
	cmd.AddCommand(newHistoryClearCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one run (an ID prefix is enough)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:        %s\n", run.ID)
			fmt.Fprintf(out, "When:      %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Status:    %s\n", run.Status)
			fmt.Fprintf(out, "Source:    %s\n", run.Source)
			fmt.Fprintf(out, "Output:    %s\n", displayTarget(run))
			fmt.Fprintf(out, "Format:    %s\n", run.Format)
			fmt.Fprintf(out, "Shape:     %s\n", run.Shape)
			fmt.Fprintf(out, "Spans:     %d\n", run.SpanCount)
			fmt.Fprintf(out, "Cues:      %d (filtered %d)\n", run.CueCount, run.RemovedCount)
			if run.DurationSeconds != nil {
				fmt.Fprintf(out, "Duration:  %.3fs\n", *run.DurationSeconds)
			}
			if run.ErrorMessage != "" {
				fmt.Fprintf(out, "Error:     %s\n", run.ErrorMessage)
			}
			return nil
		},
	}
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s)\n", removed)
			return nil
		},
	}
}

func openHistory(ctx *commandContext) (*history.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	return history.Open(cfg)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func displayTarget(run history.Run) string {
	switch {
	case run.Output != "":
		return run.Output
	case run.Status == history.StatusFailed:
		return "-"
	default:
		return "stdout"
	}
}
