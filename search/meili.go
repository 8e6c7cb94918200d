// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package search

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	meili "github.com/meilisearch/meilisearch-go"

	"github.com/danielhkuo/baseball-dictionary/models"
)

const (
	idxTerms = "baseball_terms"

	// pageSize is how many documents one request reads
	pageSize = 500
	// maxTotalHits lifts the engine's cap on how far paging can reach
	maxTotalHits = 100000
)

// Meili implements Searcher and Indexer via Meilisearch.
type Meili struct {
	client  meili.ServiceManager
	healthy atomic.Bool
	done    chan struct{}
}

// NewMeili creates a Meilisearch client and configures the term index. An
// unreachable server is not an error; the health loop keeps retrying.
func NewMeili(url, apiKey string) *Meili {
	client := meili.New(url, meili.WithAPIKey(apiKey))

	m := &Meili{
		client: client,
		done:   make(chan struct{}),
	}

	if _, err := client.Health(); err != nil {
		slog.Warn("meilisearch unavailable", "url", url, "error", err)
		m.healthy.Store(false)
	} else {
		m.healthy.Store(true)
		m.configureIndex()
	}

	go m.healthLoop()
	return m
}

func (m *Meili) configureIndex() {
	if _, err := m.client.CreateIndex(&meili.IndexConfig{
		Uid:        idxTerms,
		PrimaryKey: "id",
	}); err != nil {
		slog.Debug("create index (may already exist)", "index", idxTerms, "error", err)
	}

	index := m.client.Index(idxTerms)
	filterable := []interface{}{"category"}
	if _, err := index.UpdateFilterableAttributes(&filterable); err != nil {
		slog.Warn("update filterable attributes", "index", idxTerms, "error", err)
	}
	searchable := []string{"term", "analogy"}
	if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
		slog.Warn("update searchable attributes", "index", idxTerms, "error", err)
	}
	sortable := []string{"position"}
	if _, err := index.UpdateSortableAttributes(&sortable); err != nil {
		slog.Warn("update sortable attributes", "index", idxTerms, "error", err)
	}
	if _, err := index.UpdatePagination(&meili.Pagination{MaxTotalHits: maxTotalHits}); err != nil {
		slog.Warn("update pagination", "index", idxTerms, "error", err)
	}
}

func (m *Meili) healthLoop() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			_, err := m.client.Health()
			wasHealthy := m.healthy.Load()
			m.healthy.Store(err == nil)
			if err == nil && !wasHealthy {
				slog.Info("meilisearch recovered, reconfiguring index")
				m.configureIndex()
			}
		}
	}
}

// Close stops the background health monitor.
func (m *Meili) Close() {
	close(m.done)
}

// Healthy reports whether Meilisearch is reachable.
func (m *Meili) Healthy() bool {
	return m.healthy.Load()
}

// Terms pages through every indexed term in position order. Only the
// category is applied in the engine; text matching is left to the caller.
func (m *Meili) Terms(category string) ([]models.Term, error) {
	if !m.healthy.Load() {
		return nil, fmt.Errorf("meilisearch unhealthy")
	}

	var terms []models.Term
	for offset := int64(0); ; offset += pageSize {
		sr := termsPage(category, offset)
		resp, err := m.client.MultiSearch(&meili.MultiSearchRequest{
			Queries: []*meili.SearchRequest{sr},
		})
		if err != nil {
			m.healthy.Store(false)
			return nil, fmt.Errorf("meilisearch search: %w", err)
		}

		n := 0
		for _, r := range resp.Results {
			for _, hit := range r.Hits {
				terms = append(terms, hitToTerm(hit))
				n++
			}
		}
		if n < pageSize {
			return terms, nil
		}
	}
}

// termsPage builds a placeholder search for one page of the catalog.
func termsPage(category string, offset int64) *meili.SearchRequest {
	sr := &meili.SearchRequest{
		IndexUID: idxTerms,
		Sort:     []string{"position:asc"},
		Offset:   offset,
		Limit:    pageSize,
	}
	if f := categoryFilter(category); f != "" {
		sr.Filter = []string{f}
	}
	return sr
}

func categoryFilter(category string) string {
	if category == "" || category == models.CategoryAll {
		return ""
	}
	return fmt.Sprintf("category = %q", category)
}

func hitToTerm(hit meili.Hit) models.Term {
	return models.Term{
		Term:     decodeString(hit, "term"),
		Analogy:  decodeString(hit, "analogy"),
		Category: decodeString(hit, "category"),
	}
}

func decodeString(hit meili.Hit, key string) string {
	raw, ok := hit[key]
	if !ok {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

// IndexTerm adds or updates a term in the search index.
func (m *Meili) IndexTerm(rec TermRecord) error {
	_, err := m.client.Index(idxTerms).AddDocuments([]TermRecord{rec}, nil)
	return err
}

// IndexTerms bulk-indexes terms.
func (m *Meili) IndexTerms(recs []TermRecord) error {
	if len(recs) == 0 {
		return nil
	}
	_, err := m.client.Index(idxTerms).AddDocuments(recs, nil)
	return err
}
