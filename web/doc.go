// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package web serves the dictionary pages.

Pages are rendered server-side from embedded html/template files over a
repository.Repository, so the same pages run against the live API or the
built-in sample data.

	srv, err := web.New(repo, credentialStore)
	srv.Register(mux)
	go srv.Run(ctx)

# Pages

	GET  /                    - Catalog (?category=&q=)
	GET  /submit              - Open the submission form
	POST /submit              - Submit; success closes the form after two seconds
	POST /submit/cancel       - Close the form
	GET  /admin               - Login or pending queue
	POST /admin/login
	POST /admin/logout
	GET  /admin/approve/{id}  - Confirmation (confirm=yes|no)
	GET  /admin/reject/{id}   - Reason prompt (action=reject|cancel)

# Sessions

Each browser gets a session cookie with no expiry. The session owns one
submission.Lifecycle and one moderation.Controller. A second POST /submit
while the first is in flight gets 409. Idle sessions are evicted by Run; the
admin key lives in the credential store and survives eviction.

Session ids come only from the server. A cookie naming an id that is neither
live nor holding a stored admin key is replaced, and every login attempt
moves the session to a new id.
*/
package web
