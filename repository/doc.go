// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package repository is the single data-access surface for terms and
submissions.

Two implementations share the Repository interface:

  - HTTP calls the REST API exposed by the handlers package. Moderation calls
    carry the admin key in the X-API-Key header.
  - Sample serves the built-in dataset with simulated latency and accepts any
    non-empty admin key.

Failures are returned as *Error with a Kind:

	terms, err := repo.Terms(ctx)
	if repository.KindOf(err) == repository.KindNetwork {
		// retry later
	}

Cached wraps either implementation so the term list is fetched once per
process.
*/
package repository
