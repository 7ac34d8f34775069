package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
)

// SchemaVersion is the version written by InitializeSchema
const SchemaVersion = 1

const schema = `
	CREATE TABLE IF NOT EXISTS entities (
		id BIGSERIAL PRIMARY KEY,
		type TEXT NOT NULL,
		external_id TEXT NOT NULL,
		properties JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE(type, external_id)
	);

	CREATE TABLE IF NOT EXISTS relations (
		id BIGSERIAL PRIMARY KEY,
		subject_type TEXT NOT NULL,
		subject_id TEXT NOT NULL,
		relation TEXT NOT NULL,
		object_type TEXT NOT NULL,
		object_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE(subject_type, subject_id, relation, object_type, object_id)
	);

	CREATE INDEX IF NOT EXISTS idx_relations_subject ON relations(subject_type, subject_id);
	CREATE INDEX IF NOT EXISTS idx_relations_object ON relations(object_type, object_id);
`

// Migrator creates the tables the Store reads and writes
type Migrator struct {
	DB     *sql.DB
	logger *slog.Logger
}

// Open opens a database/sql handle using the lib/pq driver
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// NewMigrator creates a new migrator
func NewMigrator(db *sql.DB, logger *slog.Logger) *Migrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Migrator{DB: db, logger: logger}
}

// CurrentVersion returns the applied schema version, 0 when none
func (m *Migrator) CurrentVersion(ctx context.Context) (int, error) {
	var version int
	err := m.DB.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(version), 0) FROM schema_versions
	`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

// InitializeSchema applies the schema when the database is behind SchemaVersion.
// It reports whether anything was applied.
func (m *Migrator) InitializeSchema(ctx context.Context) (bool, error) {
	if _, err := m.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_versions (
			version INT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`); err != nil {
		return false, fmt.Errorf("failed to create schema_versions: %w", err)
	}

	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return false, err
	}
	if current >= SchemaVersion {
		m.logger.Debug("schema up to date", "version", current)
		return false, nil
	}

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to apply schema: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO schema_versions (version) VALUES ($1)
	`, SchemaVersion); err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to record version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	m.logger.Info("schema applied", "from", current, "to", SchemaVersion)
	return true, nil
}
