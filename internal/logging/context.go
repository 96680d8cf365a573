package logging

import (
	"context"
	"log/slog"

	"diptych/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldCorrelationID is the standardized structured logging key for run correlation identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldFolder is the standardized structured logging key for the scanned folder.
	FieldFolder = "folder"
	// FieldImage is the standardized structured logging key for a single image path.
	FieldImage = "image"
	// FieldImageA is the standardized structured logging key for the first image of a pair.
	FieldImageA = "image_a"
	// FieldImageB is the standardized structured logging key for the second image of a pair.
	FieldImageB = "image_b"
	// FieldDistance is the standardized structured logging key for a fingerprint distance.
	FieldDistance = "distance"
	// FieldAlgorithm is the standardized structured logging key for the hash algorithm name.
	FieldAlgorithm = "algorithm"
	// FieldEventType is the standardized structured logging key for warning/error event classes.
	FieldEventType = "event_type"
	// FieldErrorHint is the standardized structured logging key for operator guidance on failures.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldAlert flags warnings or anomalies that should stand out in structured logs.
	FieldAlert = "alert"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	if folder, ok := services.FolderFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldFolder, folder))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
