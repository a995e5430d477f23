// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/danielhkuo/ballot-box/db"
	"github.com/danielhkuo/ballot-box/models"
)

// Tx is a single open transaction handed to InTx callbacks.
// It is only valid until the callback returns.
type Tx struct {
	tx      *sql.Tx
	dialect db.Dialect
}

func (t *Tx) rebind(query string) string {
	return db.Rebind(t.dialect, query)
}

// VoterHasVoted returns the has_voted flag, or ErrNotFound.
func (t *Tx) VoterHasVoted(ctx context.Context, voterID string) (bool, error) {
	var hasVoted bool
	err := t.tx.QueryRowContext(ctx, t.rebind(`
		SELECT has_voted FROM voters WHERE voter_id = $1
	`), voterID).Scan(&hasVoted)
	if err != nil {
		return false, classify("select voter", err)
	}
	return hasVoted, nil
}

// Candidate loads one candidate, or ErrNotFound.
func (t *Tx) Candidate(ctx context.Context, id int64) (models.Candidate, error) {
	var c models.Candidate
	err := t.tx.QueryRowContext(ctx, t.rebind(`
		SELECT id, name, party, position, description, vote_count, created_at
		FROM candidates
		WHERE id = $1
	`), id).Scan(&c.ID, &c.Name, &c.Party, &c.Position, &c.Description, &c.VoteCount, &c.CreatedAt)
	if err != nil {
		return models.Candidate{}, classify("select candidate", err)
	}
	return c, nil
}

// MarkVoted flips has_voted from false to true.
// It reports false when no row changed: the voter is unknown or some other
// transaction already set the flag.
func (t *Tx) MarkVoted(ctx context.Context, voterID string) (bool, error) {
	res, err := t.tx.ExecContext(ctx, t.rebind(`
		UPDATE voters SET has_voted = TRUE
		WHERE voter_id = $1 AND has_voted = FALSE
	`), voterID)
	if err != nil {
		return false, classify("mark voter", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, unavailable("mark voter", err)
	}
	return n == 1, nil
}

// InsertVote appends a vote record and returns its id.
func (t *Tx) InsertVote(ctx context.Context, v models.VoteRecord) (int64, error) {
	if v.VotedAt.IsZero() {
		v.VotedAt = time.Now().UTC()
	}
	var id int64
	err := t.tx.QueryRowContext(ctx, t.rebind(`
		INSERT INTO votes (candidate_id, voter_id, position, voted_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`), v.CandidateID, v.VoterID, v.Position, v.VotedAt).Scan(&id)
	if err != nil {
		return 0, classify("insert vote", err)
	}
	return id, nil
}

// IncrementVoteCount adds one to the candidate's counter, or returns ErrNotFound.
func (t *Tx) IncrementVoteCount(ctx context.Context, candidateID int64) error {
	res, err := t.tx.ExecContext(ctx, t.rebind(`
		UPDATE candidates SET vote_count = vote_count + 1 WHERE id = $1
	`), candidateID)
	if err != nil {
		return classify("increment vote count", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("increment vote count", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertCandidate stores a new candidate with a zero vote count.
func (t *Tx) InsertCandidate(ctx context.Context, c models.Candidate) (int64, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	var id int64
	err := t.tx.QueryRowContext(ctx, t.rebind(`
		INSERT INTO candidates (name, party, position, description, vote_count, created_at)
		VALUES ($1, $2, $3, $4, 0, $5)
		RETURNING id
	`), c.Name, c.Party, c.Position, c.Description, c.CreatedAt).Scan(&id)
	if err != nil {
		return 0, classify("insert candidate", err)
	}
	return id, nil
}

// InsertVoter stores a new voter that has not voted.
// A taken voter_id or email comes back as a *ConstraintError.
func (t *Tx) InsertVoter(ctx context.Context, v models.Voter) (int64, error) {
	if v.RegisteredAt.IsZero() {
		v.RegisteredAt = time.Now().UTC()
	}
	var id int64
	err := t.tx.QueryRowContext(ctx, t.rebind(`
		INSERT INTO voters (voter_id, name, email, has_voted, registered_at)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING id
	`), v.VoterID, v.Name, v.Email, v.RegisteredAt).Scan(&id)
	if err != nil {
		return 0, classify("insert voter", err)
	}
	return id, nil
}

// InsertAudit appends one audit entry.
func (t *Tx) InsertAudit(ctx context.Context, e models.AuditEntry) (int64, error) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	var id int64
	err := t.tx.QueryRowContext(ctx, t.rebind(`
		INSERT INTO audit_logs (action, details, timestamp)
		VALUES ($1, $2, $3)
		RETURNING id
	`), e.Action, e.Details, e.Timestamp).Scan(&id)
	if err != nil {
		return 0, classify("insert audit entry", err)
	}
	return id, nil
}
