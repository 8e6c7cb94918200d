// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package search

import (
	"context"

	"github.com/danielhkuo/baseball-dictionary/catalog"
	"github.com/danielhkuo/baseball-dictionary/models"
)

// Engine names the backend that produced a response.
type Engine string

const (
	EngineMeili   Engine = "meilisearch"
	EngineCatalog Engine = "catalog"
)

// Query describes a search request.
type Query struct {
	Text     string
	Category string // empty or "all" = every category
}

// Response is the catalog view for a query plus the backend that supplied
// the terms.
type Response struct {
	catalog.View
	Engine Engine `json:"engine"`
}

// TermRecord is the data we index for a term.
type TermRecord struct {
	ID       string `json:"id"`
	Term     string `json:"term"`
	Analogy  string `json:"analogy"`
	Category string `json:"category"`
	Position int    `json:"position"`
}

// Searcher supplies the indexed catalog in position order, narrowed to a
// category when one is given.
type Searcher interface {
	Terms(category string) ([]models.Term, error)
	Healthy() bool
}

// Indexer can push terms into a search index.
type Indexer interface {
	IndexTerm(rec TermRecord) error
	IndexTerms(recs []TermRecord) error
}

// TermSource loads the approved catalog for the in-process fallback.
type TermSource interface {
	LoadTerms(ctx context.Context) ([]models.Term, error)
}

// TermSourceFunc adapts a function to TermSource.
type TermSourceFunc func(ctx context.Context) ([]models.Term, error)

func (f TermSourceFunc) LoadTerms(ctx context.Context) ([]models.Term, error) {
	return f(ctx)
}
