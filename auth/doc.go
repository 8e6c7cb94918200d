// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin key checks and identifier generation.

# Admin Keys

The API has one shared admin key. It is configured either in the clear
(ADMIN_API_KEY) or as a bcrypt hash (ADMIN_KEY_HASH):

	hash, err := auth.HashAdminKey(key, 0) // bcrypt.DefaultCost
	verifier, err := auth.NewKeyVerifier("", hash)
	err = verifier.Verify(r.Header.Get("X-API-Key"))

Plain keys are compared in constant time. Failures are always
ErrInvalidAdminKey.

# Session IDs

Session IDs are random 24-byte (192-bit) secrets, URL-safe base64 encoded:

	sid, err := auth.GenerateSessionID()

They key the admin credential store for a browser session.

# ID Generation

Database records use random UUIDs:

	id := auth.GenerateID()
*/
package auth
