package services

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	folderKey    contextKey = "folder"
)

// WithRequestID annotates context with a correlation identifier for one run.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithFolder annotates context with the folder a run operates on.
func WithFolder(ctx context.Context, folder string) context.Context {
	if folder == "" {
		return ctx
	}
	return context.WithValue(ctx, folderKey, folder)
}

// FolderFromContext returns the run folder if present.
func FolderFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(folderKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
