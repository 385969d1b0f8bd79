package sqlite

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/zjrosen/promptline/internal/history"
	"github.com/zjrosen/promptline/internal/log"
)

// HistoryRepository is a history.Store backed by SQLite. Entries from every
// session are visible; sessionID only tags what this process writes.
//
// Entries are served from an in-memory copy so navigation never touches the
// database. Reload refreshes the copy after another process has written.
type HistoryRepository struct {
	db        *sql.DB
	sessionID string
	limit     int
	now       func() time.Time

	mu      sync.RWMutex
	entries []string
}

var _ history.Store = (*HistoryRepository)(nil)

func newHistoryRepository(db *sql.DB, sessionID string, limit int) *HistoryRepository {
	return &HistoryRepository{
		db:        db,
		sessionID: sessionID,
		limit:     limit,
		now:       time.Now,
	}
}

// Append stores entry and prunes the oldest rows past the limit.
func (r *HistoryRepository) Append(entry string) error {
	_, err := r.db.Exec(
		`INSERT INTO history (session_id, entry, created_at) VALUES (?, ?, ?)`,
		r.sessionID, entry, r.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	if err := r.prune(); err != nil {
		return err
	}

	r.mu.Lock()
	r.entries = append(r.entries, entry)
	if r.limit > 0 && len(r.entries) > r.limit {
		r.entries = append([]string(nil), r.entries[len(r.entries)-r.limit:]...)
	}
	r.mu.Unlock()
	return nil
}

// Entries returns the cached entries, oldest first.
func (r *HistoryRepository) Entries() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.entries))
	copy(out, r.entries)
	return out
}

// Reload replaces the cache with the newest rows in the database.
func (r *HistoryRepository) Reload() error {
	models, err := r.query(r.limit)
	if err != nil {
		return err
	}
	entries := make([]string, len(models))
	for i, m := range models {
		entries[i] = m.Entry
	}

	r.mu.Lock()
	r.entries = entries
	r.mu.Unlock()
	log.Debug(log.CatDB, "History reloaded", "entries", len(entries))
	return nil
}

// List returns up to limit of the newest entries, oldest first. A limit of 0
// returns everything.
func (r *HistoryRepository) List(limit int) ([]HistoryEntry, error) {
	models, err := r.query(limit)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryEntry, len(models))
	for i := range models {
		out[i] = models[i].toEntry()
	}
	return out, nil
}

// Clear deletes every stored entry.
func (r *HistoryRepository) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM history`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	r.mu.Lock()
	r.entries = nil
	r.mu.Unlock()
	return nil
}

// SessionID returns the id stamped on entries written by this repository.
func (r *HistoryRepository) SessionID() string {
	return r.sessionID
}

func (r *HistoryRepository) query(limit int) ([]HistoryModel, error) {
	q := `SELECT id, session_id, entry, created_at FROM history ORDER BY id DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var models []HistoryModel
	for rows.Next() {
		var m HistoryModel
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Entry, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}

	// Newest first from the query; callers want oldest first.
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return models, nil
}

func (r *HistoryRepository) prune() error {
	if r.limit <= 0 {
		return nil
	}
	_, err := r.db.Exec(
		`DELETE FROM history WHERE id NOT IN (SELECT id FROM history ORDER BY id DESC LIMIT ?)`,
		r.limit,
	)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return nil
}
