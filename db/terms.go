// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/baseball-dictionary/auth"
	"github.com/danielhkuo/baseball-dictionary/models"
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TermRow is an approved term as stored.
type TermRow struct {
	ID       string
	Position int
	models.Term
}

// LoadTermRows returns every approved term in catalog order.
func LoadTermRows(ctx context.Context, q Querier) ([]TermRow, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, term, analogy, category, position
		FROM term
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query terms: %w", err)
	}
	defer rows.Close()

	var out []TermRow
	for rows.Next() {
		var r TermRow
		if err := rows.Scan(&r.ID, &r.Term.Term, &r.Analogy, &r.Category, &r.Position); err != nil {
			return nil, fmt.Errorf("failed to scan term: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate terms: %w", err)
	}
	return out, nil
}

// LoadTerms returns every approved term in catalog order.
func LoadTerms(ctx context.Context, q Querier) ([]models.Term, error) {
	rows, err := LoadTermRows(ctx, q)
	if err != nil {
		return nil, err
	}
	terms := make([]models.Term, 0, len(rows))
	for _, r := range rows {
		terms = append(terms, r.Term)
	}
	return terms, nil
}

// InsertTerm appends a term to the end of the catalog.
func InsertTerm(ctx context.Context, q Querier, t models.Term, now time.Time) (TermRow, error) {
	var next int
	err := q.QueryRowContext(ctx, `
		UPDATE term_position SET last = last + 1 WHERE id = 1 RETURNING last
	`).Scan(&next)
	if err != nil {
		return TermRow{}, fmt.Errorf("failed to allocate position: %w", err)
	}

	row := TermRow{ID: auth.GenerateID(), Position: next, Term: t}
	_, err = q.ExecContext(ctx, `
		INSERT INTO term (id, term, analogy, category, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, row.ID, t.Term, t.Analogy, t.Category, row.Position, now)
	if err != nil {
		return TermRow{}, fmt.Errorf("failed to insert term: %w", err)
	}
	return row, nil
}

// SeedTerms fills an empty catalog. It returns how many terms were written,
// which is zero when the catalog already has rows.
func SeedTerms(ctx context.Context, db *sql.DB, terms []models.Term) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM term`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count terms: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	for _, t := range terms {
		if _, err := InsertTerm(ctx, tx, t, now); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	return len(terms), nil
}
