// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the dictionary API.

# Route Registration

NewRouter creates a configured http.ServeMux with all API endpoints:

	mux := router.NewRouter(db, cfg, router.Services{Search: svc, Notifier: mailer})

Nil services fall back to an in-process catalog search, no notifications,
and a plain-key check against cfg.AdminAPIKey. The web frontend registers its
pages on the same mux.

# Endpoints

Health:

	GET /health

Catalog (public):

	GET  /api/terms  - All approved terms in catalog order
	GET  /api/search - Filtered view (?q=&category=)
	POST /api/submit - Suggest a term

Review (requires X-API-Key):

	GET  /api/admin/submissions  - Pending submissions, oldest first
	POST /api/admin/approve/{id} - Add to catalog
	POST /api/admin/reject/{id}  - Discard, optional reason
*/
package router
