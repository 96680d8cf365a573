package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"diptych/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.CacheDir = filepath.Join(base, "cache")
	for _, dir := range []string{cfgVal.Paths.LogDir, cfgVal.Paths.CacheDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithThreshold overrides the match distance threshold on the test config.
func WithThreshold(threshold int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matcher.Threshold = threshold
	}
}

// WithAlgorithm overrides the hash algorithm on the test config.
func WithAlgorithm(algorithm string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matcher.Algorithm = algorithm
	}
}

// WithLenientDecode disables strict decoding so undecodable files are skipped.
func WithLenientDecode() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.StrictDecode = false
	}
}

// WithFingerprintCache enables the sqlite fingerprint cache under the test's
// temp directory.
func WithFingerprintCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.FingerprintCache.Enabled = true
		b.cfg.FingerprintCache.Path = filepath.Join(b.baseDir, "cache", "fingerprints.db")
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, exiftool is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"exiftool"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
