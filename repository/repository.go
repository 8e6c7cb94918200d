// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package repository

import (
	"context"
	"sync"

	"github.com/danielhkuo/baseball-dictionary/models"
)

// Repository is the data access the catalog, submission form, and
// moderation controller depend on. One implementation is chosen at startup.
type Repository interface {
	Terms(ctx context.Context) ([]models.Term, error)
	Submit(ctx context.Context, req models.SubmitTermRequest) (models.SubmitTermResponse, error)
	Pending(ctx context.Context, key string) ([]models.Submission, error)
	Approve(ctx context.Context, key, id string) error
	Reject(ctx context.Context, key, id, reason string) error
}

// Cached loads the term list from the wrapped repository once and serves it
// from memory afterwards. All other calls pass straight through.
type Cached struct {
	Repository

	mu     sync.Mutex
	terms  []models.Term
	loaded bool
}

func NewCached(repo Repository) *Cached {
	return &Cached{Repository: repo}
}

// Terms returns the cached list, fetching it on first use. A failed fetch is
// not cached.
func (c *Cached) Terms(ctx context.Context) ([]models.Term, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.terms, nil
	}

	terms, err := c.Repository.Terms(ctx)
	if err != nil {
		return nil, err
	}
	c.terms = terms
	c.loaded = true
	return terms, nil
}

// Refresh drops the cached list so the next Terms call re-fetches.
func (c *Cached) Refresh() {
	c.mu.Lock()
	c.terms = nil
	c.loaded = false
	c.mu.Unlock()
}
