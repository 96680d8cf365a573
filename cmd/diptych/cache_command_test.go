package main

import (
	"testing"
)

func TestCacheStatsAndClear(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, "-c", env.configPath, "cache", "stats")
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	requireContains(t, out, "Fingerprint cache is disabled")
	requireContains(t, out, "Entries: 0")

	out, _, err = runCLI(t, "-c", env.configPath, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Removed 0 cached fingerprints")
}

func TestCacheStatsAfterCachedRun(t *testing.T) {
	env := setupCLITestEnv(t)
	env.enableFingerprintCache(t)
	folder := t.TempDir()
	writePairFolder(t, folder)

	if _, _, err := runCLI(t, "-c", env.configPath, folder); err != nil {
		t.Fatalf("merge run: %v", err)
	}

	out, _, err := runCLI(t, "-c", env.configPath, "cache", "stats")
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	requireContains(t, out, "Entries: 3")
	requireContains(t, out, "average")
}
