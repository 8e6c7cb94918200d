// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package moderation

import (
	"context"
	"sync"
)

// CredentialKey names the persisted admin credential within a session.
const CredentialKey = "baseball_admin_key"

// CredentialStore persists the admin key for the lifetime of one session.
type CredentialStore interface {
	Save(ctx context.Context, sessionID, key string) error
	Lookup(ctx context.Context, sessionID string) (string, bool, error)
	Revoke(ctx context.Context, sessionID string) error
}

// MemoryStore keeps credentials in process memory. Everything is lost on
// restart.
type MemoryStore struct {
	mu   sync.RWMutex
	keys map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string]map[string]string)}
}

func (m *MemoryStore) Save(_ context.Context, sessionID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	values, ok := m.keys[sessionID]
	if !ok {
		values = make(map[string]string)
		m.keys[sessionID] = values
	}
	values[CredentialKey] = key
	return nil
}

func (m *MemoryStore) Lookup(_ context.Context, sessionID string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	key, ok := m.keys[sessionID][CredentialKey]
	return key, ok, nil
}

func (m *MemoryStore) Revoke(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys[sessionID], CredentialKey)
	if len(m.keys[sessionID]) == 0 {
		delete(m.keys, sessionID)
	}
	return nil
}
