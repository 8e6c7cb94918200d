// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Baseball Bathroom Dictionary
server.

The dictionary is a catalog of baseball terms explained as bathroom
analogies. Visitors browse and search the catalog and suggest new terms; an
admin approves or rejects suggestions before they appear.

# Starting the Server

The server reads an optional .env file, then environment variables, then CLI
flags:

	ADMIN_API_KEY=secret go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin-key secret

# Configuration

Required settings (one of):

  - ADMIN_API_KEY (-admin-key): Shared admin key
  - ADMIN_KEY_HASH (-admin-key-hash): bcrypt hash of the key, see
    `sitectl hash-key`

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:dictionary.db)
  - DATA_MODE (-mode): live or sample data for the web pages
  - API_URL (-api-url): API the web pages call (default: this server)
  - SEED_SAMPLE (-no-seed): Seed an empty catalog with the sample terms
  - REDIS_URL: Keep admin logins in Redis instead of memory
  - MEILI_URL, MEILI_MASTER_KEY: Search with Meilisearch
  - SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD, SMTP_FROM,
    ADMIN_EMAIL: Email notifications
  - LOG_LEVEL, LOG_FORMAT: Logging

# Architecture

  - catalog: Category and text filtering of the term list
  - submission: Submission form lifecycle
  - moderation: Admin login and review queue
  - repository: Data source for the pages (live API or sample data)
  - web: Server-rendered pages
  - handlers, router: JSON API
  - db, auth, middleware, models, cliparse: Storage, keys, HTTP helpers,
    types, configuration
  - search, session, notify, logger: Optional services
  - infra, cmd/sitectl: Static-site hosting stack and operator CLI

See package documentation for each component.
*/
package main
