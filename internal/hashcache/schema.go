package hashcache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

const schemaVersion = 1

// ErrSchemaMismatch indicates the on-disk cache was created by an
// incompatible version of diptych.
var ErrSchemaMismatch = errors.New("cache schema version mismatch")

func (s *Store) initSchema(ctx context.Context) error {
	var name string
	err := s.db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'schema_version'",
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return s.createSchema(ctx)
	}
	if err != nil {
		return fmt.Errorf("inspect cache schema: %w", err)
	}

	var version int
	if err := s.db.QueryRowContext(ctx,
		"SELECT version FROM schema_version",
	).Scan(&version); err != nil {
		return fmt.Errorf("read cache schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: found %d, want %d (delete %s to rebuild)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create cache schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record cache schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
