// Package hashcache persists computed fingerprints in SQLite so repeated runs
// over large folders skip the decode-and-hash work for unchanged files.
package hashcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages fingerprint persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the fingerprint database at dbPath.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Lookup returns the cached bits for (path, algorithm) when the stored file
// size and modification time still match. A stale or missing row is a miss,
// not an error.
func (s *Store) Lookup(ctx context.Context, path, algorithm string, size int64, modTime time.Time) (uint64, bool, error) {
	var bits int64
	err := s.db.QueryRowContext(ctx,
		`SELECT bits FROM fingerprints
         WHERE path = ? AND algorithm = ? AND size = ? AND mod_time_ns = ?`,
		path, algorithm, size, modTime.UnixNano(),
	).Scan(&bits)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup fingerprint: %w", err)
	}
	return uint64(bits), true, nil
}

// Save upserts the fingerprint for (path, algorithm) together with the file
// state it was computed from.
func (s *Store) Save(ctx context.Context, path, algorithm string, bits uint64, size int64, modTime time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO fingerprints (path, algorithm, bits, size, mod_time_ns, cached_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(path, algorithm) DO UPDATE SET
             bits = excluded.bits,
             size = excluded.size,
             mod_time_ns = excluded.mod_time_ns,
             cached_at = excluded.cached_at`,
		path, algorithm, int64(bits), size, modTime.UnixNano(),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save fingerprint: %w", err)
	}
	return nil
}

// Stats summarizes cache contents for the cache stats command.
type Stats struct {
	Total        int64
	PerAlgorithm map[string]int64
}

// Stats reports row counts per algorithm.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{PerAlgorithm: make(map[string]int64)}

	rows, err := s.db.QueryContext(ctx,
		"SELECT algorithm, COUNT(1) FROM fingerprints GROUP BY algorithm")
	if err != nil {
		return Stats{}, fmt.Errorf("query cache stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var algorithm string
		var count int64
		if err := rows.Scan(&algorithm, &count); err != nil {
			return Stats{}, fmt.Errorf("scan cache stats: %w", err)
		}
		stats.PerAlgorithm[algorithm] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate cache stats: %w", err)
	}
	return stats, nil
}

// Clear removes every cached fingerprint and returns the number of rows
// deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM fingerprints")
	if err != nil {
		return 0, fmt.Errorf("clear cache: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted rows: %w", err)
	}
	return deleted, nil
}
