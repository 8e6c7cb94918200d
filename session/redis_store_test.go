// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	store, err := NewRedisStore("redis://"+s.Addr(), ttl)
	if err != nil {
		t.Fatalf("failed to create redis store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, s
}

func TestNewRedisStore(t *testing.T) {
	store, _ := setupTestRedis(t, 0)
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
	if store.ttl != DefaultTTL {
		t.Errorf("expected default ttl %v, got %v", DefaultTTL, store.ttl)
	}
}

func TestNewRedisStore_BadURL(t *testing.T) {
	if _, err := NewRedisStore("not-a-url", 0); err == nil {
		t.Error("expected error for invalid url")
	}
}

func TestSaveAndLookup(t *testing.T) {
	store, s := setupTestRedis(t, time.Hour)
	ctx := context.Background()

	if err := store.Save(ctx, "sess-1", "secret"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !s.Exists("baseball_admin_key:sess-1") {
		t.Fatal("expected key under baseball_admin_key prefix")
	}

	key, ok, err := store.Lookup(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !ok || key != "secret" {
		t.Errorf("expected secret, got %q (found=%v)", key, ok)
	}

	if _, ok, _ := store.Lookup(ctx, "sess-2"); ok {
		t.Error("expected other sessions to see nothing")
	}
}

func TestLookupExpired(t *testing.T) {
	store, s := setupTestRedis(t, time.Minute)
	ctx := context.Background()

	if err := store.Save(ctx, "sess", "secret"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	s.FastForward(2 * time.Minute)

	_, ok, err := store.Lookup(ctx, "sess")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if ok {
		t.Error("expected expired key to be gone")
	}
}

func TestLookupSlidesExpiry(t *testing.T) {
	store, s := setupTestRedis(t, time.Minute)
	ctx := context.Background()

	if err := store.Save(ctx, "sess", "secret"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	s.FastForward(45 * time.Second)
	if _, ok, _ := store.Lookup(ctx, "sess"); !ok {
		t.Fatal("expected key before expiry")
	}
	s.FastForward(45 * time.Second)
	if _, ok, _ := store.Lookup(ctx, "sess"); !ok {
		t.Error("expected lookup to refresh the ttl")
	}
}

func TestRevoke(t *testing.T) {
	store, _ := setupTestRedis(t, time.Hour)
	ctx := context.Background()

	if err := store.Save(ctx, "sess", "secret"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Revoke(ctx, "sess"); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if _, ok, _ := store.Lookup(ctx, "sess"); ok {
		t.Error("expected revoked key to be gone")
	}
}
