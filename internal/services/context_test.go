package services_test

import (
	"context"
	"testing"

	"captioner/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "reconcile")
	ctx = services.WithRequestID(ctx, "req-123")
	ctx = services.WithSource(ctx, "episode.json")

	if stage, ok := services.StageFromContext(ctx); !ok || stage != "reconcile" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
	if source, ok := services.SourceFromContext(ctx); !ok || source != "episode.json" {
		t.Fatalf("unexpected source: %v %v", source, ok)
	}
}

func TestStageBlankPreservesContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	ctx = services.WithRequestID(ctx, "")
	if _, ok := services.RequestIDFromContext(ctx); ok {
		t.Fatal("expected no request id value")
	}
	if _, ok := services.SourceFromContext(context.TODO()); ok {
		t.Fatal("expected no source value")
	}
}
