package sqlite

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/zjrosen/promptline/internal/log"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// The migrate database drivers for SQLite register their own "sqlite3"
// driver, which collides with ncruces. Only the source side of migrate is
// used; versions are tracked in schema_migrations by hand.
const createVersionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	applied_at INTEGER NOT NULL DEFAULT (unixepoch())
)`

func openMigrations() (source.Driver, error) {
	drv, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations: %w", err)
	}
	return drv, nil
}

// migrate applies every up migration newer than the recorded version, each in
// its own transaction, and returns how many ran.
func (db *DB) migrate() (int, error) {
	if _, err := db.conn.Exec(createVersionTable); err != nil {
		return 0, fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	current, err := db.SchemaVersion()
	if err != nil {
		return 0, err
	}

	src, err := openMigrations()
	if err != nil {
		return 0, err
	}
	defer func() { _ = src.Close() }()

	applied := 0
	version, err := src.First()
	for err == nil {
		if version > current {
			if err := db.apply(src, version); err != nil {
				return applied, err
			}
			applied++
		}
		version, err = src.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return applied, fmt.Errorf("failed to read migrations: %w", err)
	}
	return applied, nil
}

func (db *DB) apply(src source.Driver, version uint) error {
	r, name, err := src.ReadUp(version)
	if err != nil {
		return fmt.Errorf("failed to read migration %d: %w", version, err)
	}
	body, err := io.ReadAll(r)
	_ = r.Close()
	if err != nil {
		return fmt.Errorf("failed to read migration %d: %w", version, err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(string(body)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migration %d (%s) failed: %w", version, name, err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to record migration %d: %w", version, err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug(log.CatDB, "Applied migration", "version", version, "name", name)
	return nil
}

// SchemaVersion returns the highest applied migration version, or 0.
func (db *DB) SchemaVersion() (uint, error) {
	var v int64
	err := db.conn.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return uint(v), nil
}
