package captions

import (
	"context"
	"log/slog"

	"captioner/internal/logging"
	"captioner/internal/reconcile"
	"captioner/internal/segment"
)

// Service runs caption builds and logs what each stage decided.
type Service struct {
	logger *slog.Logger
}

// NewService returns a Service logging under the captions component. A nil
// logger discards output.
func NewService(logger *slog.Logger) *Service {
	return &Service{logger: logging.NewComponentLogger(logger, "captions")}
}

// Build runs Build and logs the outcome.
func (s *Service) Build(ctx context.Context, req Request) (Result, error) {
	logger := logging.WithContext(ctx, s.logger)
	result, err := Build(req)
	if err != nil {
		logging.WarnWithContext(logger, "caption build failed", "caption_build_failed",
			logging.Error(err),
			logging.String("shape", result.Shape.String()),
			logging.String(logging.FieldErrorHint, "check the transcript JSON and segmentation settings"),
			logging.String(logging.FieldImpact, "no subtitle file was produced"),
		)
		return result, err
	}
	s.logResult(ctx, logger, req, result)
	return result, nil
}

// Render runs Render and logs the outcome.
func (s *Service) Render(ctx context.Context, req Request) (string, Result, error) {
	format, err := ParseFormat(string(req.Format))
	if err != nil {
		return "", Result{}, err
	}
	result, err := s.Build(ctx, req)
	if err != nil {
		return "", result, err
	}
	return renderCues(format, result.Cues), result, nil
}

func (s *Service) logResult(ctx context.Context, logger *slog.Logger, req Request, result Result) {
	policies := make(map[string]int)
	repairedStarts := 0
	for _, decision := range result.Decisions {
		policies[decision.Policy]++
		if decision.StartRepaired {
			repairedStarts++
		}
	}
	flushes := make(map[segment.FlushReason]int)
	for _, reason := range result.Reasons {
		flushes[reason]++
	}

	attrs := []slog.Attr{
		logging.String(logging.FieldEventType, "captions_built"),
		logging.String("shape", result.Shape.String()),
		logging.Int("span_count", len(result.Spans)),
		logging.Int("cue_count", len(result.Cues)),
		logging.Int("starts_repaired", repairedStarts),
		logging.Int("cues_removed", len(result.Removals)),
		logging.String("duration", req.Duration.String()),
	}
	for _, name := range []string{reconcile.PolicyKeep, reconcile.PolicyNextStart, reconcile.PolicyTotalDuration, reconcile.PolicyMinimum} {
		if count := policies[name]; count > 0 {
			attrs = append(attrs, logging.Int("end_"+name, count))
		}
	}
	for _, reason := range []segment.FlushReason{segment.ReasonPunctuation, segment.ReasonPause, segment.ReasonLength, segment.ReasonSpan} {
		if count := flushes[reason]; count > 0 {
			attrs = append(attrs, logging.Int("flush_"+string(reason), count))
		}
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "captions built", attrs...)

	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	for _, decision := range result.Decisions {
		span := result.Spans[decision.Index]
		attrs := logging.DecisionAttrs("end_time", decision.Policy, reconcileReason(decision))
		attrs = append(attrs, logging.Int("span_index", decision.Index))
		attrs = append(attrs, logging.Timing(span.Start.Seconds, span.End.Seconds)...)
		logger.LogAttrs(ctx, slog.LevelDebug, "span timing resolved", attrs...)
	}
	for _, removal := range result.Removals {
		attrs := []logging.Attr{
			logging.Int("cue_index", removal.Cue.Index),
			logging.String("cue_text", removal.Cue.Text),
			logging.String("reason", removal.Reason),
		}
		attrs = append(attrs, logging.Timing(removal.Cue.Start, removal.Cue.End)...)
		logger.LogAttrs(ctx, slog.LevelDebug, "filter removed cue", attrs...)
	}
}

func reconcileReason(decision reconcile.Decision) string {
	if decision.StartRepaired {
		return "start repaired from previous span"
	}
	return "start as reported"
}
