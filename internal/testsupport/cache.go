package testsupport

import (
	"testing"

	"diptych/internal/config"
	"diptych/internal/hashcache"
)

// MustOpenCache opens the configured fingerprint cache for tests and registers
// cleanup.
func MustOpenCache(t testing.TB, cfg *config.Config) *hashcache.Store {
	t.Helper()

	store, err := hashcache.Open(cfg.FingerprintCachePath())
	if err != nil {
		t.Fatalf("hashcache.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
