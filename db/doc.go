// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles the database connection, schema, and the catalog queries
shared by the API and the search fallback.

# Drivers

DATABASE_TYPE selects the driver:

  - sqlite: modernc.org/sqlite, pure Go. Default for local runs and tests.
  - postgres: github.com/lib/pq.

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)

All SQL uses $N placeholders and no server-side defaults for timestamps, so
both drivers run the same statements.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - term: Approved terms; position fixes the catalog order and is unique
  - term_position: One-row counter that hands out the next position
  - submission: Suggested terms and their review state

Approving a submission copies it into term at the next position.

# Seeding

SeedTerms writes the built-in sample catalog into an empty term table.
*/
package db
