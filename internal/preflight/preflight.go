package preflight

import (
	"context"
	"path/filepath"

	"diptych/internal/config"
	"diptych/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config and
// target folder. Folder checks are skipped when folder is empty so the config
// validate command can run without a target.
func RunAll(ctx context.Context, cfg *config.Config, folder string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if folder != "" {
		results = append(results, CheckDirectoryAccess("Target folder", folder))
	}

	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	if cfg.FingerprintCache.Enabled {
		results = append(results, CheckDirectoryAccess("Cache directory", filepath.Dir(cfg.FingerprintCachePath())))
	}

	for _, status := range CheckSystemDeps(ctx, cfg) {
		result := Result{Name: status.Name, Passed: status.Available}
		if status.Available {
			result.Detail = status.Command
		} else {
			result.Detail = status.Detail
		}
		results = append(results, result)
	}

	return results
}

// Failed returns the subset of results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}

// CheckSystemDeps evaluates the external binaries diptych shells out to.
// Both the workflow runner and the config validate command use this to avoid
// duplicating the requirements list.
func CheckSystemDeps(_ context.Context, cfg *config.Config) []deps.Status {
	return []deps.Status{
		deps.ResolveExifTool(cfg.ExifToolBinary()),
	}
}
