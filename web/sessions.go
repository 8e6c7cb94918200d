// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package web

import (
	"sync"
	"time"

	"github.com/danielhkuo/baseball-dictionary/moderation"
	"github.com/danielhkuo/baseball-dictionary/submission"
)

// DefaultIdleTimeout is how long an untouched browser session keeps its
// in-memory form and admin state.
const DefaultIdleTimeout = 30 * time.Minute

// visitor is the per-browser state behind one session cookie
type visitor struct {
	form     *submission.Lifecycle
	admin    *moderation.Controller
	restore  sync.Once
	lastSeen time.Time
}

// Registry holds one visitor per session id and evicts idle ones. The admin
// key outlives eviction in the credential store, so an evicted admin is
// logged back in on the next visit.
type Registry struct {
	idle       time.Duration
	newVisitor func(sessionID string) *visitor

	mu       sync.Mutex
	visitors map[string]*visitor
}

func newRegistry(idle time.Duration, newVisitor func(string) *visitor) *Registry {
	return &Registry{
		idle:       idle,
		newVisitor: newVisitor,
		visitors:   make(map[string]*visitor),
	}
}

// lookup returns the live visitor for sessionID without creating one.
func (r *Registry) lookup(sessionID string, now time.Time) (*visitor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.visitors[sessionID]
	if ok {
		v.lastSeen = now
	}
	return v, ok
}

// get returns the visitor for sessionID, creating it if needed.
func (r *Registry) get(sessionID string, now time.Time) *visitor {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.visitors[sessionID]
	if !ok {
		v = r.newVisitor(sessionID)
		r.visitors[sessionID] = v
	}
	v.lastSeen = now
	return v
}

// rekey moves the visitor under oldID to newID.
func (r *Registry) rekey(oldID, newID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.visitors[oldID]; ok {
		delete(r.visitors, oldID)
		r.visitors[newID] = v
	}
}

// Sweep drops visitors idle since before now-idle and returns how many went.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, v := range r.visitors {
		if now.Sub(v.lastSeen) < r.idle {
			continue
		}
		v.form.Stop()
		delete(r.visitors, id)
		evicted++
	}
	return evicted
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visitors)
}
