package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"diptych/internal/config"
	"diptych/internal/fingerprint"
	"diptych/internal/hashcache"
	"diptych/internal/logging"
	"diptych/internal/match"
	"diptych/internal/merge"
	"diptych/internal/preflight"
	"diptych/internal/services"
	"diptych/internal/services/exiftool"
)

// MetadataTool is the exiftool surface the workflow needs: field access for
// merging plus a version probe for readiness.
type MetadataTool interface {
	merge.ToolClient
	Version(ctx context.Context) (string, error)
}

// Runner coordinates scanning, fingerprinting, matching, and merging for one
// folder at a time.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
	tool   MetadataTool
	merger *merge.Merger
	lock   *flock.Flock
}

// Option configures optional Runner behavior.
type Option func(*Runner)

// WithToolClient replaces the default exiftool client (used in tests).
func WithToolClient(tool MetadataTool) Option {
	return func(r *Runner) {
		if tool != nil {
			r.tool = tool
		}
	}
}

// NewRunner constructs a runner from the given config. A nil logger disables
// logging.
func NewRunner(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("workflow requires configuration")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	runner := &Runner{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "workflow"),
		lock:   flock.New(cfg.LockPath()),
	}
	for _, opt := range opts {
		opt(runner)
	}

	if runner.tool == nil {
		tool, err := exiftool.New(cfg.ExifToolBinary(),
			exiftool.WithCharset(cfg.ExifTool.Charset),
			exiftool.WithTimeout(cfg.ExifToolTimeout()),
			exiftool.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("init exiftool client: %w", err)
		}
		runner.tool = tool
	}
	runner.merger = merge.NewMerger(runner.tool, logger)

	return runner, nil
}

// Run executes the full merge workflow against folder: every image pair whose
// fingerprint distance falls within the configured threshold has its keyword
// fields unioned and written back to both files.
//
// Pairs whose metadata cannot be read are skipped. Pairs whose metadata cannot
// be written are recorded as failed and reported through the returned error
// once the remaining pairs have been processed.
func (r *Runner) Run(ctx context.Context, folder string) (*RunSummary, error) {
	start := time.Now()

	folder, err := config.ExpandPath(folder)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "workflow", "run", "resolve folder path", err)
	}

	runID := uuid.NewString()
	ctx = services.WithRequestID(ctx, runID)
	ctx = services.WithFolder(ctx, folder)
	logger := logging.WithContext(ctx, r.logger)

	algorithm, err := fingerprint.ParseAlgorithm(r.cfg.Matcher.Algorithm)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "workflow", "run", "select hash algorithm", err)
	}

	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "workflow", "run", "prepare directories", err)
	}
	if check := preflight.CheckDirectoryAccess("target folder", folder); !check.Passed {
		return nil, services.Wrap(services.ErrValidation, "workflow", "preflight", check.Detail, nil)
	}

	version, err := r.tool.Version(ctx)
	if err != nil {
		return nil, err
	}

	summary := &RunSummary{
		RunID:     runID,
		Folder:    folder,
		Algorithm: algorithm,
		Threshold: r.cfg.Matcher.Threshold,
	}

	logger.Info("run started",
		logging.String(logging.FieldAlgorithm, string(algorithm)),
		logging.Int("threshold", summary.Threshold),
		logging.String("exiftool_version", version),
	)

	locked, err := r.lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "workflow", "lock", "acquire run lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrTransient, "workflow", "lock", "another diptych run is already active", nil)
	}
	defer func() {
		if unlockErr := r.lock.Unlock(); unlockErr != nil {
			logger.Warn("failed to release run lock",
				logging.Error(unlockErr),
				logging.String("lock", r.cfg.LockPath()),
			)
		}
	}()

	images, err := listImages(folder)
	if err != nil {
		return nil, err
	}
	summary.Scanned = len(images)

	prints, cacheHits, skipped, err := r.fingerprintAll(ctx, logger, images, algorithm)
	if err != nil {
		return summary, err
	}
	summary.Fingerprints = len(prints)
	summary.CacheHits = cacheHits
	summary.SkippedFiles = skipped

	pairs, err := match.Find(prints, summary.Threshold)
	if err != nil {
		return summary, fmt.Errorf("match fingerprints: %w", err)
	}
	summary.Matched = len(pairs)

	for _, pair := range pairs {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return summary, ctxErr
		}

		result, mergeErr := r.merger.MergePair(ctx, pair)
		switch {
		case mergeErr == nil:
			summary.Merged = append(summary.Merged, result)
		case errors.Is(mergeErr, merge.ErrReadFields):
			logging.WarnWithContext(logger, "skipping pair: metadata read failed", "pair_skipped",
				logging.String(logging.FieldImageA, pair.A),
				logging.String(logging.FieldImageB, pair.B),
				logging.Error(mergeErr),
				logging.String(logging.FieldErrorHint, "check that exiftool can read both files"),
				logging.String(logging.FieldImpact, "pair left unmerged"),
			)
			summary.SkippedPairs = append(summary.SkippedPairs, PairFailure{Pair: pair, Err: mergeErr})
		case errors.Is(mergeErr, merge.ErrWriteFields):
			logging.ErrorWithContext(logger, "pair merge failed: metadata write failed", "pair_write_failed",
				logging.String(logging.FieldImageA, pair.A),
				logging.String(logging.FieldImageB, pair.B),
				logging.Error(mergeErr),
				logging.String(logging.FieldErrorHint, "images in this pair may hold partial metadata; re-run after fixing the write error"),
			)
			summary.FailedPairs = append(summary.FailedPairs, PairFailure{Pair: pair, Err: mergeErr})
		default:
			return summary, fmt.Errorf("merge pair %s and %s: %w", pair.A, pair.B, mergeErr)
		}
	}

	summary.Duration = time.Since(start)
	logger.Info("run complete",
		logging.Int("scanned", summary.Scanned),
		logging.Int("matched", summary.Matched),
		logging.Int("merged", len(summary.Merged)),
		logging.Int("skipped_pairs", len(summary.SkippedPairs)),
		logging.Int("failed_pairs", len(summary.FailedPairs)),
		logging.Int("values_added", summary.ValuesAdded()),
		logging.Duration("duration", summary.Duration),
	)

	if failed := len(summary.FailedPairs); failed > 0 {
		return summary, services.Wrap(services.ErrExternalTool, "workflow", "run",
			fmt.Sprintf("%d of %d matched pairs failed to merge", failed, summary.Matched), nil)
	}
	return summary, nil
}

func (r *Runner) fingerprintAll(
	ctx context.Context,
	logger *slog.Logger,
	images []string,
	algorithm fingerprint.Algorithm,
) (map[string]*fingerprint.Fingerprint, int, []string, error) {
	prints := make(map[string]*fingerprint.Fingerprint, len(images))
	var skipped []string
	cacheHits := 0

	cache := r.openCache(logger)
	if cache != nil {
		defer cache.Close()
	}

	for _, path := range images {
		if err := ctx.Err(); err != nil {
			return nil, 0, nil, err
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, 0, nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if cache != nil {
			bits, ok, cacheErr := cache.Lookup(ctx, path, string(algorithm), info.Size(), info.ModTime())
			if cacheErr != nil {
				logging.WarnWithContext(logger, "fingerprint cache lookup failed", "cache_lookup_failed",
					logging.String(logging.FieldImage, path),
					logging.Error(cacheErr),
					logging.String(logging.FieldImpact, "hash recomputed"),
				)
			} else if ok {
				prints[path] = fingerprint.FromBits(bits, algorithm)
				cacheHits++
				continue
			}
		}

		fp, err := fingerprint.Compute(path, algorithm)
		if err != nil {
			if errors.Is(err, fingerprint.ErrDecode) && !r.cfg.Scan.StrictDecode {
				logging.WarnWithContext(logger, "skipping undecodable file", "decode_failed",
					logging.String(logging.FieldImage, path),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "re-encode the file or remove it from the folder"),
					logging.String(logging.FieldImpact, "file excluded from matching"),
				)
				skipped = append(skipped, path)
				continue
			}
			return nil, 0, nil, err
		}
		prints[path] = fp

		if cache != nil {
			if saveErr := cache.Save(ctx, path, string(algorithm), fp.Bits(), info.Size(), info.ModTime()); saveErr != nil {
				logging.WarnWithContext(logger, "fingerprint cache save failed", "cache_save_failed",
					logging.String(logging.FieldImage, path),
					logging.Error(saveErr),
					logging.String(logging.FieldImpact, "hash will be recomputed next run"),
				)
			}
		}

		logger.Debug("fingerprinted image",
			logging.String(logging.FieldImage, path),
			logging.String("hash", fp.String()),
		)
	}

	return prints, cacheHits, skipped, nil
}

func (r *Runner) openCache(logger *slog.Logger) *hashcache.Store {
	if !r.cfg.FingerprintCache.Enabled {
		return nil
	}
	store, err := hashcache.Open(r.cfg.FingerprintCachePath())
	if err != nil {
		logging.WarnWithContext(logger, "fingerprint cache unavailable", "cache_unavailable",
			logging.String("path", r.cfg.FingerprintCachePath()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete the cache file if it is corrupt"),
			logging.String(logging.FieldImpact, "hashes recomputed for every file"),
		)
		return nil
	}
	return store
}
