// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aanand-mishra/airbear/internal/config"
	"github.com/aanand-mishra/airbear/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// createdAtLayout is fixed-width so created_at sorts lexically in time order.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.StoragePath, creates the attempts
// table if it does not already exist, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// Schema:
	//   id         - uuid assigned by the submission service
	//   form       - form name ("login", "register", "book-ride")
	//   fields     - JSON object of masked field values
	//   created_at - fixed-width RFC 3339 timestamp, UTC
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS attempts (
			id         TEXT PRIMARY KEY,
			form       TEXT NOT NULL,
			fields     TEXT NOT NULL,
			created_at TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// RecordAttempt inserts one attempt row. The field snapshot is stored as a
// JSON document; values are strings and booleans only.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) RecordAttempt(ctx context.Context, attempt types.Attempt) error {
	fields, err := json.Marshal(attempt.Fields)
	if err != nil {
		return fmt.Errorf("RecordAttempt: encode fields: %w", err)
	}

	stmt, err := s.Db.PrepareContext(ctx,
		"INSERT INTO attempts (id, form, fields, created_at) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("RecordAttempt: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		attempt.ID,
		attempt.Form,
		string(fields),
		attempt.CreatedAt.UTC().Format(createdAtLayout),
	)
	if err != nil {
		return fmt.Errorf("RecordAttempt: exec: %w", err)
	}

	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// ListAttempts returns attempts newest first. rowid breaks ties between
// attempts recorded within the same timestamp.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) ListAttempts(ctx context.Context, form string, limit int) ([]types.Attempt, error) {
	if limit <= 0 {
		// SQLite treats a negative LIMIT as "no limit".
		limit = -1
	}

	stmt, err := s.Db.PrepareContext(ctx, `
		SELECT id, form, fields, created_at FROM attempts
		WHERE (? = '' OR form = ?)
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`)
	if err != nil {
		return nil, fmt.Errorf("ListAttempts: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, form, form, limit)
	if err != nil {
		return nil, fmt.Errorf("ListAttempts: query: %w", err)
	}
	defer rows.Close()

	attempts := make([]types.Attempt, 0)

	for rows.Next() {
		var (
			attempt   types.Attempt
			fields    string
			createdAt string
		)
		if err := rows.Scan(&attempt.ID, &attempt.Form, &fields, &createdAt); err != nil {
			return nil, fmt.Errorf("ListAttempts: scan row: %w", err)
		}

		if err := json.Unmarshal([]byte(fields), &attempt.Fields); err != nil {
			return nil, fmt.Errorf("ListAttempts: decode fields of %s: %w", attempt.ID, err)
		}

		attempt.CreatedAt, err = time.Parse(createdAtLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("ListAttempts: parse created_at of %s: %w", attempt.ID, err)
		}

		attempts = append(attempts, attempt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListAttempts: rows iteration: %w", err)
	}

	return attempts, nil
}

// Close closes the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
