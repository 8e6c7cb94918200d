// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/danielhkuo/baseball-dictionary/catalog"
	"github.com/danielhkuo/baseball-dictionary/models"
)

// Service reads candidate terms from the index when it is healthy and from
// the database otherwise. Matching and grouping always go through
// catalog.Filter.
type Service struct {
	engine Searcher
	index  Indexer
	source TermSource
}

// NewService creates a search service. meili may be nil if Meilisearch is
// not configured.
func NewService(meili *Meili, source TermSource) *Service {
	s := &Service{source: source}
	if meili != nil {
		s.engine = meili
		s.index = meili
	}
	return s
}

func (s *Service) Search(ctx context.Context, q Query) Response {
	category := strings.TrimSpace(q.Category)
	terms, engine := s.candidates(ctx, category)
	return Response{View: catalog.Filter(terms, category, q.Text), Engine: engine}
}

func (s *Service) candidates(ctx context.Context, category string) ([]models.Term, Engine) {
	// Unknown categories never match, whichever engine runs
	if category != "" && category != models.CategoryAll && !models.IsKnownCategory(category) {
		return nil, EngineCatalog
	}

	if s.engine != nil && s.engine.Healthy() {
		terms, err := s.engine.Terms(category)
		if err == nil {
			return terms, EngineMeili
		}
		slog.Warn("meilisearch error, falling back to catalog", "error", err)
	}

	terms, err := s.source.LoadTerms(ctx)
	if err != nil {
		slog.Error("search fallback failed", "error", err)
		return nil, EngineCatalog
	}
	return terms, EngineCatalog
}

// IndexTerm indexes an approved term (fire-and-forget).
func (s *Service) IndexTerm(rec TermRecord) {
	if s.index == nil || s.engine == nil || !s.engine.Healthy() {
		return
	}
	go func() {
		if err := s.index.IndexTerm(rec); err != nil {
			slog.Error("index term", "id", rec.ID, "term", rec.Term, "error", err)
		}
	}()
}

// ReindexAll pushes the whole catalog to the index.
func (s *Service) ReindexAll(recs []TermRecord) {
	if s.index == nil || s.engine == nil || !s.engine.Healthy() {
		return
	}
	if err := s.index.IndexTerms(recs); err != nil {
		slog.Error("reindex terms", "count", len(recs), "error", err)
		return
	}
	slog.Info("reindexed terms", "count", len(recs))
}
