package captions

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"captioner/internal/logging"
	"captioner/internal/services"
)

func TestServiceRenderLogsDecisions(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "captions.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	svc := NewService(logger)

	ctx := services.WithRequestID(context.Background(), "run-42")
	out, result, err := svc.Render(ctx, request(t, `{"chunks":[{"text":"a","timestamp":[0,null]},{"text":"b.","timestamp":[1,2]}]}`))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out == "" || len(result.Cues) == 0 {
		t.Fatalf("expected rendered cues, got %q", out)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	log := string(content)
	for _, fragment := range []string{
		`"event_type":"captions_built"`,
		`"component":"captions"`,
		`"request_id":"run-42"`,
		`"end_next_start":1`,
		`"decision_result":"next_start"`,
	} {
		if !strings.Contains(log, fragment) {
			t.Fatalf("expected %s in log:\n%s", fragment, log)
		}
	}
}

func TestServiceBuildWarnsOnFailure(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "captions.log")
	logger, err := logging.New(logging.Options{Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	req := request(t, `{"words":[{"start":0,"end":1}]}`)
	if _, err := NewService(logger).Build(context.Background(), req); !errors.Is(err, services.ErrMalformedInput) {
		t.Fatalf("expected malformed input, got %v", err)
	}
	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(content), "event_type=caption_build_failed") {
		t.Fatalf("expected warning line, got %q", content)
	}
}

func TestNewServiceNilLogger(t *testing.T) {
	if _, err := NewService(nil).Build(context.Background(), request(t, `{"text":"hi"}`)); err != nil {
		t.Fatalf("Build: %v", err)
	}
}
