// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Statements are kept to the subset SQLite and PostgreSQL share.
var schema = []string{
	// Approved terms, in catalog order
	`CREATE TABLE IF NOT EXISTS term (
    id TEXT PRIMARY KEY,
    term TEXT NOT NULL,
    analogy TEXT NOT NULL,
    category TEXT NOT NULL,
    position INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL
)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_term_position ON term(position)`,

	// Single-row counter handing out term positions. Updating it locks the
	// row, so concurrent inserts queue up instead of reading the same MAX.
	`CREATE TABLE IF NOT EXISTS term_position (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    last INTEGER NOT NULL
)`,
	`INSERT INTO term_position (id, last)
SELECT 1, (SELECT COALESCE(MAX(position), 0) FROM term)
WHERE NOT EXISTS (SELECT 1 FROM term_position)`,

	// Submissions awaiting or past review
	`CREATE TABLE IF NOT EXISTS submission (
    id TEXT PRIMARY KEY,
    term TEXT NOT NULL,
    analogy TEXT NOT NULL,
    category TEXT NOT NULL,
    submitted_by TEXT NOT NULL,
    email TEXT,
    status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
    reason TEXT,
    submitted_at TIMESTAMP NOT NULL,
    reviewed_at TIMESTAMP
)`,
	`CREATE INDEX IF NOT EXISTS idx_submission_status ON submission(status)`,
}
