// Package sqlite persists prompt history in a local SQLite database.
package sqlite

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/promptline/internal/log"
)

// DB owns the connection to the history database.
type DB struct {
	conn *sql.DB
	path string
}

// NewDB opens (or creates) the database at path and brings the schema up to
// date. The parent directory is created with 0700 permissions. An existing
// database file is copied to path+".bak" before any migration runs.
func NewDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	existed := fileExists(path)

	dsn := "file:" + path +
		"?_pragma=busy_timeout(5000)" +
		"&_pragma=foreign_keys(1)" +
		"&_pragma=journal_mode(wal)"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn, path: path}

	if existed {
		if err := db.backup(); err != nil {
			log.ErrorErr(log.CatDB, "Pre-migration backup failed", err, "path", path)
		}
	}
	applied, err := db.migrate()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	log.Info(log.CatDB, "Database ready", "path", path, "migrations_applied", applied)
	return db, nil
}

// Connection returns the underlying *sql.DB.
func (db *DB) Connection() *sql.DB {
	return db.conn
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// HistoryRepository returns a history store scoped to sessionID that keeps at
// most limit entries (0 means unlimited). The cache is loaded immediately.
func (db *DB) HistoryRepository(sessionID string, limit int) (*HistoryRepository, error) {
	repo := newHistoryRepository(db.conn, sessionID, limit)
	if err := repo.Reload(); err != nil {
		return nil, err
	}
	return repo, nil
}

// backup checkpoints the WAL and copies the database file next to itself.
func (db *DB) backup() error {
	if _, err := db.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("failed to checkpoint wal: %w", err)
	}

	src, err := os.Open(db.path)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(db.path+".bak", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	log.Debug(log.CatDB, "Backed up database", "path", db.path+".bak")
	return dst.Close()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
