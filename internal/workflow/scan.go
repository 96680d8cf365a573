package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"diptych/internal/config"
	"diptych/internal/fingerprint"
	"diptych/internal/logging"
	"diptych/internal/match"
	"diptych/internal/preflight"
	"diptych/internal/services"
)

// Scan fingerprints the folder and reports matched pairs without writing any
// metadata. It takes no lock because it never modifies the images.
func (r *Runner) Scan(ctx context.Context, folder string) (*ScanReport, error) {
	start := time.Now()

	folder, err := config.ExpandPath(folder)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "workflow", "scan", "resolve folder path", err)
	}

	ctx = services.WithRequestID(ctx, uuid.NewString())
	ctx = services.WithFolder(ctx, folder)
	logger := logging.WithContext(ctx, r.logger)

	algorithm, err := fingerprint.ParseAlgorithm(r.cfg.Matcher.Algorithm)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "workflow", "scan", "select hash algorithm", err)
	}

	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "workflow", "scan", "prepare directories", err)
	}
	if check := preflight.CheckDirectoryAccess("target folder", folder); !check.Passed {
		return nil, services.Wrap(services.ErrValidation, "workflow", "preflight", check.Detail, nil)
	}

	images, err := listImages(folder)
	if err != nil {
		return nil, err
	}

	prints, cacheHits, skipped, err := r.fingerprintAll(ctx, logger, images, algorithm)
	if err != nil {
		return nil, err
	}

	pairs, err := match.Find(prints, r.cfg.Matcher.Threshold)
	if err != nil {
		return nil, fmt.Errorf("match fingerprints: %w", err)
	}

	report := &ScanReport{
		Folder:       folder,
		Algorithm:    algorithm,
		Threshold:    r.cfg.Matcher.Threshold,
		CacheHits:    cacheHits,
		SkippedFiles: skipped,
		Pairs:        pairs,
		Duration:     time.Since(start),
	}
	for _, path := range images {
		fp, ok := prints[path]
		if !ok {
			continue
		}
		report.Images = append(report.Images, ImageFingerprint{Path: path, Hash: fp.String()})
	}

	logger.Info("scan complete",
		logging.String(logging.FieldAlgorithm, string(algorithm)),
		logging.Int("images", len(report.Images)),
		logging.Int("matched", len(report.Pairs)),
		logging.Duration("duration", report.Duration),
	)
	return report, nil
}

// listImages returns the supported image files directly inside folder. The
// scan is deliberately non-recursive; subdirectories are ignored.
func listImages(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", folder, err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !fingerprint.IsSupported(entry.Name()) {
			continue
		}
		images = append(images, filepath.Join(folder, entry.Name()))
	}
	return images, nil
}
