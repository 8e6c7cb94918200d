// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package session provides a Redis-backed credential store for admin
// sessions. Without REDIS_URL the web frontend falls back to
// moderation.MemoryStore.
package session
