package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jroosing/gordap/internal/helpers"
)

// Lookup outcomes as stored in history rows.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// History page size bounds. Callers asking for zero get the default;
// nobody gets more than the maximum per page.
const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 1000
)

// HistoryEntry is one recorded lookup.
type HistoryEntry struct {
	ID         int64
	Query      string
	Kind       string
	ServerURL  string
	Outcome    string
	Class      string
	DurationMS int64
	CreatedAt  time.Time
}

// RecordLookup appends a lookup to the history.
func (db *DB) RecordLookup(ctx context.Context, e HistoryEntry) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	query := `
		INSERT INTO lookup_history (query, kind, server_url, outcome, class, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.conn.ExecContext(ctx, query, e.Query, e.Kind, e.ServerURL, e.Outcome, e.Class, e.DurationMS)
	if err != nil {
		return fmt.Errorf("failed to record lookup for %s: %w", e.Query, err)
	}

	return nil
}

// RecentHistory retrieves the most recent lookups, newest first.
func (db *DB) RecentHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	limit = helpers.ClampInt(limit, 1, maxHistoryLimit)

	query := `
		SELECT id, query, kind, server_url, outcome, class, duration_ms, created_at
		FROM lookup_history
		ORDER BY id DESC
		LIMIT ?
	`
	return db.queryHistory(ctx, query, limit)
}

// HistoryForQuery retrieves past lookups of one query string, newest
// first.
func (db *DB) HistoryForQuery(ctx context.Context, q string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	limit = helpers.ClampInt(limit, 1, maxHistoryLimit)

	query := `
		SELECT id, query, kind, server_url, outcome, class, duration_ms, created_at
		FROM lookup_history
		WHERE query = ?
		ORDER BY id DESC
		LIMIT ?
	`
	return db.queryHistory(ctx, query, q, limit)
}

func (db *DB) queryHistory(ctx context.Context, query string, args ...any) ([]HistoryEntry, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Query, &e.Kind, &e.ServerURL, &e.Outcome, &e.Class, &e.DurationMS, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}

	return entries, nil
}

// CountByOutcome returns lookup counts grouped by outcome.
func (db *DB) CountByOutcome(ctx context.Context) (map[string]int64, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT outcome, COUNT(*) FROM lookup_history GROUP BY outcome
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count history: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var outcome string
		var n int64
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts[outcome] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating count rows: %w", err)
	}

	return counts, nil
}

// PruneHistory deletes entries older than the retention window and
// reports how many rows went away.
func (db *DB) PruneHistory(ctx context.Context, retention time.Duration) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	// CURRENT_TIMESTAMP stores UTC text, so compare in the same shape.
	cutoff := time.Now().Add(-retention).UTC().Format("2006-01-02 15:04:05")
	result, err := db.conn.ExecContext(ctx,
		"DELETE FROM lookup_history WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}
