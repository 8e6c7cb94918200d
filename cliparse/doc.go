// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadEnv reads an optional .env file, then ParseFlags returns a Config:

	if err := cliparse.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type (sqlite or postgres)
	-api-url          API base URL for the web frontend
	-mode             Web data mode (live or sample)
	-no-seed          Leave an empty catalog empty
	-admin-key        Admin API key
	-admin-key-hash   Bcrypt hash of the admin API key

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p              (default 3318)
	DATABASE_URL    → -d              (default file:dictionary.db for sqlite)
	DATABASE_TYPE   → -t              (default sqlite)
	API_URL         → -api-url        (default http://127.0.0.1:PORT/api)
	DATA_MODE       → -mode           (default live)
	SEED_SAMPLE     → -no-seed        (default true)
	ADMIN_API_KEY   → -admin-key
	ADMIN_KEY_HASH  → -admin-key-hash

Optional services are configured from the environment only:

	REDIS_URL                      admin sessions survive restarts
	MEILI_URL, MEILI_MASTER_KEY    full-text search
	SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD, SMTP_FROM, ADMIN_EMAIL

CLI flags take precedence over environment variables, and variables already
in the environment take precedence over .env.

# Validation

ParseFlags returns an error if:

  - neither ADMIN_API_KEY nor ADMIN_KEY_HASH is provided
  - DATABASE_TYPE is postgres and no DATABASE_URL is given
  - DATABASE_TYPE or DATA_MODE has an unknown value
*/
package cliparse
