// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/ballot-box/audit"
	"github.com/danielhkuo/ballot-box/models"
	"github.com/danielhkuo/ballot-box/store"
)

// Store runs a callback inside one transaction. *store.Store satisfies it.
type Store interface {
	InTx(ctx context.Context, fn func(ctx context.Context, tx *store.Tx) error) error
}

// Recorder writes the audit entry for a vote. *audit.Recorder satisfies it.
type Recorder interface {
	Record(ctx context.Context, w audit.Writer, action, details string) error
}

// Coordinator enforces one vote per voter and applies a cast vote atomically.
// It keeps no state between calls.
type Coordinator struct {
	store  Store
	audit  Recorder
	logger *slog.Logger
}

func NewCoordinator(s Store, rec Recorder, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{store: s, audit: rec, logger: logger}
}

// CastVote records voterID's single vote for candidateID.
//
// The voter, the candidate and the has_voted flag are checked and the vote
// record, the candidate's counter, the flag and the audit entry are written in
// one transaction. The flag is flipped with a compare-and-set, so when several
// calls race for one voter exactly one commits and the rest see ErrAlreadyVoted.
// A failed call leaves nothing behind.
func (c *Coordinator) CastVote(ctx context.Context, voterID string, candidateID int64) (models.CastVoteResult, error) {
	if strings.TrimSpace(voterID) == "" {
		return models.CastVoteResult{}, models.MissingField("voter_id")
	}
	if candidateID <= 0 {
		return models.CastVoteResult{}, models.MissingField("candidate_id")
	}

	var result models.CastVoteResult
	err := c.store.InTx(ctx, func(ctx context.Context, tx *store.Tx) error {
		hasVoted, err := tx.VoterHasVoted(ctx, voterID)
		if errors.Is(err, store.ErrNotFound) {
			return models.ErrVoterNotFound
		}
		if err != nil {
			return err
		}
		if hasVoted {
			return models.ErrAlreadyVoted
		}

		candidate, err := tx.Candidate(ctx, candidateID)
		if errors.Is(err, store.ErrNotFound) {
			return models.ErrCandidateNotFound
		}
		if err != nil {
			return err
		}

		// Lost a race with a concurrent vote by the same voter
		marked, err := tx.MarkVoted(ctx, voterID)
		if err != nil {
			return err
		}
		if !marked {
			return models.ErrAlreadyVoted
		}

		_, err = tx.InsertVote(ctx, models.VoteRecord{
			CandidateID: candidate.ID,
			VoterID:     voterID,
			Position:    candidate.Position,
		})
		if errors.Is(err, store.ErrUniqueViolation) {
			return models.ErrAlreadyVoted
		}
		if err != nil {
			return err
		}

		err = tx.IncrementVoteCount(ctx, candidate.ID)
		if errors.Is(err, store.ErrNotFound) {
			return models.ErrCandidateNotFound
		}
		if err != nil {
			return err
		}

		details := fmt.Sprintf("Voter %s voted for %s (%s)", voterID, candidate.Name, candidate.Position)
		if err := c.audit.Record(ctx, tx, models.ActionCastVote, details); err != nil {
			return err
		}

		result = models.CastVoteResult{
			CandidateName: candidate.Name,
			Position:      candidate.Position,
		}
		return nil
	})

	if err != nil {
		if models.IsStateConflict(err) {
			c.logger.Info("vote rejected", "voter_id", voterID, "candidate_id", candidateID, "reason", err)
		} else {
			c.logger.Error("failed to cast vote", "voter_id", voterID, "candidate_id", candidateID, "error", err)
		}
		return models.CastVoteResult{}, err
	}

	c.logger.Info("vote cast", "voter_id", voterID, "position", result.Position)
	return result, nil
}
