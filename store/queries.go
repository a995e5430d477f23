// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/ballot-box/models"
)

// Single-statement reads below see one snapshot each. Inconsistencies spans
// two statements and runs them inside one read-only transaction.

// ListCandidates returns every candidate ordered by position, then votes
// (descending), then creation order.
func (s *Store) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, party, position, description, vote_count, created_at
		FROM candidates
		ORDER BY position ASC, vote_count DESC, id ASC
	`)
	if err != nil {
		return nil, unavailable("list candidates", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Party, &c.Position, &c.Description, &c.VoteCount, &c.CreatedAt); err != nil {
			return nil, unavailable("scan candidate", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list candidates", err)
	}
	return candidates, nil
}

// ListAudit returns the newest limit audit entries, newest first.
func (s *Store) ListAudit(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT id, action, details, timestamp
		FROM audit_logs
		ORDER BY timestamp DESC, id DESC
		LIMIT $1
	`), limit)
	if err != nil {
		return nil, unavailable("list audit entries", err)
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var e models.AuditEntry
		var details sql.NullString
		if err := rows.Scan(&e.ID, &e.Action, &details, &e.Timestamp); err != nil {
			return nil, unavailable("scan audit entry", err)
		}
		e.Details = details.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list audit entries", err)
	}
	return entries, nil
}

// Voter loads a voter by voter_id, or returns ErrNotFound.
func (s *Store) Voter(ctx context.Context, voterID string) (models.Voter, error) {
	var v models.Voter
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id, voter_id, name, email, has_voted, registered_at
		FROM voters
		WHERE voter_id = $1
	`), voterID).Scan(&v.ID, &v.VoterID, &v.Name, &v.Email, &v.HasVoted, &v.RegisteredAt)
	if err != nil {
		return models.Voter{}, classify("select voter", err)
	}
	return v, nil
}

// CountVotes returns how many vote records a voter has. It should never exceed one.
func (s *Store) CountVotes(ctx context.Context, voterID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT COUNT(*) FROM votes WHERE voter_id = $1
	`), voterID).Scan(&n)
	if err != nil {
		return 0, unavailable("count votes", err)
	}
	return n, nil
}

// Inconsistencies lists every candidate whose counter disagrees with its
// vote records and every voter whose flag disagrees with theirs.
// An empty result means the denormalized state is sound.
func (s *Store) Inconsistencies(ctx context.Context) (problems []string, retErr error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, unavailable("begin consistency check", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) && retErr == nil {
			retErr = unavailable("end consistency check", err)
		}
	}()

	problems = []string{}

	rows, err := tx.QueryContext(ctx, s.rebind(`
		SELECT c.id, c.vote_count, COUNT(v.id)
		FROM candidates c
		LEFT JOIN votes v ON v.candidate_id = c.id
		GROUP BY c.id, c.vote_count
		HAVING c.vote_count <> COUNT(v.id)
		ORDER BY c.id
	`))
	if err != nil {
		return nil, unavailable("check candidate counters", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, counter, records int64
		if err := rows.Scan(&id, &counter, &records); err != nil {
			return nil, unavailable("scan candidate counter", err)
		}
		problems = append(problems, fmt.Sprintf("candidate %d: vote_count %d but %d vote records", id, counter, records))
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("check candidate counters", err)
	}

	voterRows, err := tx.QueryContext(ctx, s.rebind(`
		SELECT r.voter_id, r.has_voted, COUNT(v.id)
		FROM voters r
		LEFT JOIN votes v ON v.voter_id = r.voter_id
		GROUP BY r.voter_id, r.has_voted
		HAVING (r.has_voted AND COUNT(v.id) <> 1) OR (NOT r.has_voted AND COUNT(v.id) <> 0)
		ORDER BY r.voter_id
	`))
	if err != nil {
		return nil, unavailable("check voter flags", err)
	}
	defer voterRows.Close()
	for voterRows.Next() {
		var voterID string
		var hasVoted bool
		var records int64
		if err := voterRows.Scan(&voterID, &hasVoted, &records); err != nil {
			return nil, unavailable("scan voter flag", err)
		}
		problems = append(problems, fmt.Sprintf("voter %s: has_voted=%t but %d vote records", voterID, hasVoted, records))
	}
	if err := voterRows.Err(); err != nil {
		return nil, unavailable("check voter flags", err)
	}

	return problems, nil
}
