// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, conn *sql.DB, dialect Dialect) error {
	stmts := postgresSchema
	if dialect == SQLite {
		stmts = sqliteSchema
	}

	for _, stmt := range stmts {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Tables lists every table CreateSchema creates, children first.
var Tables = []string{"audit_logs", "votes", "voters", "candidates"}

var postgresSchema = []string{`
-- Candidates
CREATE TABLE IF NOT EXISTS candidates (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    party TEXT,
    position TEXT NOT NULL,
    description TEXT,
    vote_count BIGINT NOT NULL DEFAULT 0 CHECK (vote_count >= 0),
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX IF NOT EXISTS idx_candidates_position ON candidates(position)`,
	`
-- Voters
CREATE TABLE IF NOT EXISTS voters (
    id BIGSERIAL PRIMARY KEY,
    voter_id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE,
    registered_at TIMESTAMP NOT NULL DEFAULT NOW()
)`,
	`
-- Votes (one per voter for the whole election)
CREATE TABLE IF NOT EXISTS votes (
    id BIGSERIAL PRIMARY KEY,
    candidate_id BIGINT NOT NULL REFERENCES candidates(id),
    voter_id TEXT NOT NULL UNIQUE REFERENCES voters(voter_id),
    position TEXT NOT NULL,
    voted_at TIMESTAMP NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX IF NOT EXISTS idx_votes_candidate_id ON votes(candidate_id)`,
	`
-- Audit trail
CREATE TABLE IF NOT EXISTS audit_logs (
    id BIGSERIAL PRIMARY KEY,
    action TEXT NOT NULL,
    details TEXT,
    timestamp TIMESTAMP NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_logs_timestamp ON audit_logs(timestamp)`,
}

var sqliteSchema = []string{`
CREATE TABLE IF NOT EXISTS candidates (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    party TEXT,
    position TEXT NOT NULL,
    description TEXT,
    vote_count INTEGER NOT NULL DEFAULT 0 CHECK (vote_count >= 0),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE INDEX IF NOT EXISTS idx_candidates_position ON candidates(position)`,
	`
CREATE TABLE IF NOT EXISTS voters (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    voter_id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    has_voted BOOLEAN NOT NULL DEFAULT 0,
    registered_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`
CREATE TABLE IF NOT EXISTS votes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    candidate_id INTEGER NOT NULL REFERENCES candidates(id),
    voter_id TEXT NOT NULL UNIQUE REFERENCES voters(voter_id),
    position TEXT NOT NULL,
    voted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE INDEX IF NOT EXISTS idx_votes_candidate_id ON votes(candidate_id)`,
	`
CREATE TABLE IF NOT EXISTS audit_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    action TEXT NOT NULL,
    details TEXT,
    timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_logs_timestamp ON audit_logs(timestamp)`,
}
