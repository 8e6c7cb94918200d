// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the dictionary API.

# Handler Types

Each handler is a struct holding the database and the services it talks to:

  - TermHandler: Catalog listing and search
  - SubmissionHandler: Public term suggestions
  - AdminHandler: Review queue (approve, reject)

	termHandler := handlers.NewTermHandler(db, searchService)

# Catalog

	GET /api/terms   → ListTerms (approved terms in catalog order)
	GET /api/search  → Search (?q=&category=)

Search returns the same grouped or single-category view the web catalog
renders. Terms come from Meilisearch when it is healthy and from the database
otherwise; matching is the catalog filter either way.

# Submissions

	POST /api/submit → Submit

A blank submittedBy is stored as "Anonymous" and a blank email as NULL.
Missing fields and unknown categories are rejected with 400.

# Review

Submissions move pending → approved | rejected exactly once:

	GET  /api/admin/submissions  → ListPending (oldest first)
	POST /api/admin/approve/{id} → Approve (appends the term to the catalog)
	POST /api/admin/reject/{id}  → Reject (optional {"reason": ...})

Unknown ids get 404, already reviewed ones 409. Review routes require the
X-API-Key header; the router wraps them with middleware.RequireAdminKey.
*/
package handlers
