// Package merge applies the union of two matched images' keyword fields back
// to both files.
package merge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"diptych/internal/logging"
	"diptych/internal/match"
	"diptych/internal/metadata"
)

// Sentinel markers separating the two failure phases of a pair merge. A read
// failure means the pair is skipped; a write failure means values may be
// missing on disk and must be surfaced.
var (
	ErrReadFields  = errors.New("read metadata fields")
	ErrWriteFields = errors.New("write metadata fields")
)

// ToolClient is the slice of the exiftool client the merger needs.
type ToolClient interface {
	ReadFields(ctx context.Context, path string) (metadata.FieldSet, error)
	WriteFields(ctx context.Context, path string, fields metadata.FieldSet) error
}

// Result records one merged pair: the combined field values and how many
// values each image was missing before the merge.
type Result struct {
	Pair   match.Pair
	Union  metadata.FieldSet
	AddedA int
	AddedB int
}

// Merger unions the keyword fields of matched image pairs and writes the
// missing values back to each image.
type Merger struct {
	tool   ToolClient
	logger *slog.Logger
}

// NewMerger constructs a Merger. A nil logger disables logging.
func NewMerger(tool ToolClient, logger *slog.Logger) *Merger {
	return &Merger{tool: tool, logger: logging.NewComponentLogger(logger, "merge")}
}

// MergePair reads both images, unions their keyword fields, and writes each
// image's missing values back. Writing only the missing values keeps reruns
// from duplicating list entries: exiftool's += appends unconditionally.
// Failures carry ErrReadFields or ErrWriteFields for the caller's
// skip-versus-fail decision.
func (m *Merger) MergePair(ctx context.Context, pair match.Pair) (Result, error) {
	fieldsA, err := m.tool.ReadFields(ctx, pair.A)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrReadFields, pair.A, err)
	}
	fieldsB, err := m.tool.ReadFields(ctx, pair.B)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrReadFields, pair.B, err)
	}

	union := fieldsA.Union(fieldsB)
	result := Result{Pair: pair, Union: union}

	result.AddedA, err = m.applyMissing(ctx, pair.A, fieldsA, union)
	if err != nil {
		return result, err
	}
	result.AddedB, err = m.applyMissing(ctx, pair.B, fieldsB, union)
	if err != nil {
		return result, err
	}

	m.logger.Info("merged pair",
		logging.String(logging.FieldImageA, pair.A),
		logging.String(logging.FieldImageB, pair.B),
		logging.Int(logging.FieldDistance, pair.Distance),
		logging.Int("added_a", result.AddedA),
		logging.Int("added_b", result.AddedB))
	return result, nil
}

func (m *Merger) applyMissing(ctx context.Context, path string, current, union metadata.FieldSet) (int, error) {
	missing := union.Diff(current)
	if missing.IsEmpty() {
		m.logger.Debug("image already carries the union", logging.String(logging.FieldImage, path))
		return 0, nil
	}
	if err := m.tool.WriteFields(ctx, path, missing); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrWriteFields, path, err)
	}
	m.logger.Info("added metadata values",
		logging.String(logging.FieldImage, path),
		logging.String("keywords", missing.Keywords.Join()),
		logging.Int("values", missing.Count()))
	return missing.Count(), nil
}
