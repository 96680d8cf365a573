package services_test

import (
	"context"
	"testing"

	"diptych/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRequestID(ctx, "run-123")
	ctx = services.WithFolder(ctx, "/photos/batch")

	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "run-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
	if folder, ok := services.FolderFromContext(ctx); !ok || folder != "/photos/batch" {
		t.Fatalf("unexpected folder: %v %v", folder, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRequestID(ctx, "")
	ctx = services.WithFolder(ctx, "")
	if _, ok := services.RequestIDFromContext(ctx); ok {
		t.Fatal("expected no request id value")
	}
	if _, ok := services.FolderFromContext(ctx); ok {
		t.Fatal("expected no folder value")
	}
}
