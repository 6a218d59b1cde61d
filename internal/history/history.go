// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package history is a SPEC_FULL.md supplement: persistent storage of
// submitted input lines per pane (not PTY output — persistent session
// replay stays a non-goal), backed by modernc.org/sqlite the way the
// pack's sa6mwa-centaurx tooling persists its own local state, with
// google/uuid identifying each entry.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/eqms/claude-workbench/internal/paneid"
)

// Entry is one submitted input line.
type Entry struct {
	ID        string
	Pane      paneid.PaneId
	Text      string
	CreatedAt time.Time
}

// Store persists submitted input lines to a local sqlite database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the sqlite database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %q: %w", path, err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS command_history (
			id TEXT PRIMARY KEY,
			pane TEXT NOT NULL,
			text TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Append records one submitted input line for pane.
func (s *Store) Append(ctx context.Context, pane paneid.PaneId, text string) error {
	if text == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO command_history (id, pane, text, created_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), pane.String(), text, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("history: append: %w", err)
	}
	return nil
}

// Recent returns the last n entries for pane, most recent first.
func (s *Store) Recent(ctx context.Context, pane paneid.PaneId, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, pane, text, created_at FROM command_history WHERE pane = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		pane.String(), n,
	)
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var paneName string
		var ts int64
		if err := rows.Scan(&e.ID, &paneName, &e.Text, &ts); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		e.Pane = pane
		e.CreatedAt = time.Unix(ts, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}
