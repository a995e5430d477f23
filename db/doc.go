// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles SQL dialects and database schema creation.

# Dialects

Two SQL flavours are supported. Driver maps the configured database type:

	sqlite   → modernc.org/sqlite ("sqlite"), dialect SQLite
	postgres → github.com/lib/pq ("postgres"), dialect Postgres
	pgx      → github.com/jackc/pgx/v5/stdlib ("pgx"), dialect Postgres

Queries are written with $N placeholders. Rebind converts them to ?N for sqlite.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn, db.Postgres); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - candidates: people running for a position, with a vote_count counter
  - voters: registered voters (voter_id and email unique)
  - votes: one row per cast vote (voter_id unique)
  - audit_logs: append-only activity trail

# Relationships

	candidates 1──* votes
	voters     1──1 votes (at most one)

# Indexes

  - candidates.position
  - votes.candidate_id
  - audit_logs.timestamp
*/
package db
