// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrNoAdminKey      = errors.New("no admin key configured")
)

// GenerateID creates a random UUID for database records
func GenerateID() string {
	return uuid.NewString()
}

// GenerateSessionID creates a random secure token identifying a browser
// session
func GenerateSessionID() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// HashAdminKey returns the bcrypt hash to put in ADMIN_KEY_HASH
func HashAdminKey(key string, cost int) (string, error) {
	if key == "" {
		return "", ErrNoAdminKey
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash admin key: %w", err)
	}
	return string(hash), nil
}

// KeyVerifier checks admin keys against either a plain key or a bcrypt hash.
// The hash wins when both are set.
type KeyVerifier struct {
	plain string
	hash  []byte
}

func NewKeyVerifier(plain, hash string) (*KeyVerifier, error) {
	if plain == "" && hash == "" {
		return nil, ErrNoAdminKey
	}
	v := &KeyVerifier{plain: plain}
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("invalid admin key hash: %w", err)
		}
		v.hash = []byte(hash)
	}
	return v, nil
}

// Verify returns ErrInvalidAdminKey unless provided matches.
func (v *KeyVerifier) Verify(provided string) error {
	if provided == "" {
		return ErrInvalidAdminKey
	}
	if v.hash != nil {
		if err := bcrypt.CompareHashAndPassword(v.hash, []byte(provided)); err != nil {
			return ErrInvalidAdminKey
		}
		return nil
	}
	return ValidateAdminKey(provided, v.plain)
}

// ValidateAdminKey compares two keys in constant time
func ValidateAdminKey(provided, expected string) error {
	// Hash first so the comparison does not leak the key length
	p := sha256.Sum256([]byte(provided))
	e := sha256.Sum256([]byte(expected))
	if expected == "" || !hmac.Equal(p[:], e[:]) {
		return ErrInvalidAdminKey
	}
	return nil
}
