// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ballot-box API server.

ballot-box records one vote per registered voter, keeps a running tally per
candidate, and writes an audit entry for every state change. Casting a vote is
atomic: the vote record, the candidate's counter, the voter's has_voted flag
and the audit entry commit together or not at all.

# Starting the Server

With no configuration the server uses a local SQLite file:

	go run .

Or against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .
	go run . -t pgx -d "postgres://..." -p 3318

# Configuration

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres (lib/pq) or pgx (default: sqlite)
  - DATABASE_URL (-d): connection string (default: file:ballot.db)
  - TX_TIMEOUT (--tx-timeout): bound on one transaction (default: 5s)
  - DB_MAX_OPEN_CONNS (--max-conns): pool size (default: 10)

A .env file in the working directory is read if present.

# Architecture

  - handlers: HTTP request handlers (registration, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging with request ids, JSON helpers
  - voting: the cast-vote transaction
  - registration: candidates, voters and schema setup
  - tally: candidate listing, results and consistency checks
  - audit: the append-only audit trail
  - store: connection pool, transactions and queries
  - db: schema and SQL dialects
  - metrics: Prometheus counters
  - models: Request/response and domain types, errors
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
