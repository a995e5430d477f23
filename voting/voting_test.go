// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/ballot-box/audit"
	"github.com/danielhkuo/ballot-box/models"
	"github.com/danielhkuo/ballot-box/store"
	"github.com/danielhkuo/ballot-box/testutil"
)

func newCoordinator(s *store.Store) *Coordinator {
	return NewCoordinator(s, audit.NewRecorder(s, nil), nil)
}

func TestCastVote_Scenario(t *testing.T) {
	s := testutil.SetupTestDB(t)
	c := newCoordinator(s)
	ctx := context.Background()

	testutil.CreateTestVoter(t, s, "V1", "Alice", "a@x.com")
	bob := testutil.CreateTestCandidate(t, s, "Bob", "Mayor", 0)

	result, err := c.CastVote(ctx, "V1", bob)
	if err != nil {
		t.Fatalf("CastVote() error = %v", err)
	}
	if result.CandidateName != "Bob" || result.Position != "Mayor" {
		t.Errorf("Expected Bob/Mayor, got %+v", result)
	}

	_, err = c.CastVote(ctx, "V1", bob)
	if !errors.Is(err, models.ErrAlreadyVoted) {
		t.Fatalf("Expected ErrAlreadyVoted on second vote, got %v", err)
	}

	voter, err := s.Voter(ctx, "V1")
	if err != nil {
		t.Fatalf("Voter() error = %v", err)
	}
	if !voter.HasVoted {
		t.Error("Expected has_voted to be true")
	}

	candidates, _ := s.ListCandidates(ctx)
	if candidates[0].VoteCount != 1 {
		t.Errorf("Expected vote_count 1, got %d", candidates[0].VoteCount)
	}

	entries, _ := s.ListAudit(ctx, 10)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 audit entry, got %d", len(entries))
	}
	if entries[0].Action != models.ActionCastVote || entries[0].Details != "Voter V1 voted for Bob (Mayor)" {
		t.Errorf("Unexpected audit entry: %+v", entries[0])
	}

	testutil.AssertConsistent(t, s)
}

func TestCastVote_Failures(t *testing.T) {
	s := testutil.SetupTestDB(t)
	c := newCoordinator(s)

	testutil.CreateTestVoter(t, s, "V1", "Alice", "a@x.com")
	bob := testutil.CreateTestCandidate(t, s, "Bob", "Mayor", 0)

	tests := []struct {
		name        string
		voterID     string
		candidateID int64
		wantErr     error
	}{
		{"unknown voter", "ghost", 1, models.ErrVoterNotFound},
		{"unknown voter with unknown candidate", "ghost", 999, models.ErrVoterNotFound},
		{"unknown candidate", "V1", bob + 100, models.ErrCandidateNotFound},
		{"empty voter id", "", bob, models.ErrMissingField},
		{"blank voter id", "   ", bob, models.ErrMissingField},
		{"missing candidate id", "V1", 0, models.ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.CastVote(context.Background(), tt.voterID, tt.candidateID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	// None of the failures may leave anything behind
	if n := testutil.CountRows(t, s, "votes"); n != 0 {
		t.Errorf("Expected no vote records, got %d", n)
	}
	if n := testutil.CountRows(t, s, "audit_logs"); n != 0 {
		t.Errorf("Expected no audit entries, got %d", n)
	}
	voter, _ := s.Voter(context.Background(), "V1")
	if voter.HasVoted {
		t.Error("Failed vote must not set has_voted")
	}
	testutil.AssertConsistent(t, s)
}

func TestCastVote_OneVoteAcrossPositions(t *testing.T) {
	s := testutil.SetupTestDB(t)
	c := newCoordinator(s)
	ctx := context.Background()

	testutil.CreateTestVoter(t, s, "V1", "Alice", "a@x.com")
	mayor := testutil.CreateTestCandidate(t, s, "Bob", "Mayor", 0)
	sheriff := testutil.CreateTestCandidate(t, s, "Carol", "Sheriff", 0)

	if _, err := c.CastVote(ctx, "V1", mayor); err != nil {
		t.Fatalf("CastVote() error = %v", err)
	}
	if _, err := c.CastVote(ctx, "V1", sheriff); !errors.Is(err, models.ErrAlreadyVoted) {
		t.Fatalf("Expected ErrAlreadyVoted for a different position, got %v", err)
	}
}

type failingRecorder struct{}

func (failingRecorder) Record(ctx context.Context, w audit.Writer, action, details string) error {
	return &models.StorageError{Op: "insert audit entry", Err: errors.New("disk full")}
}

func TestCastVote_AuditFailureRollsBack(t *testing.T) {
	s := testutil.SetupTestDB(t)
	c := NewCoordinator(s, failingRecorder{}, nil)
	ctx := context.Background()

	testutil.CreateTestVoter(t, s, "V1", "Alice", "a@x.com")
	bob := testutil.CreateTestCandidate(t, s, "Bob", "Mayor", 0)

	_, err := c.CastVote(ctx, "V1", bob)
	if !errors.Is(err, models.ErrStorageUnavailable) {
		t.Fatalf("Expected ErrStorageUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Expected underlying cause in error, got %q", err.Error())
	}

	if n := testutil.CountRows(t, s, "votes"); n != 0 {
		t.Errorf("Expected vote record to be rolled back, got %d", n)
	}
	voter, _ := s.Voter(ctx, "V1")
	if voter.HasVoted {
		t.Error("Expected has_voted to be rolled back")
	}
	testutil.AssertConsistent(t, s)

	// Retrying with a working recorder succeeds cleanly
	retry := newCoordinator(s)
	if _, err := retry.CastVote(ctx, "V1", bob); err != nil {
		t.Fatalf("Retry error = %v", err)
	}
	testutil.AssertConsistent(t, s)
}

// TestConcurrentCastVote_SameVoter launches many votes for one voter at once.
// Exactly one may succeed; the rest must see ErrAlreadyVoted.
func TestConcurrentCastVote_SameVoter(t *testing.T) {
	s := testutil.SetupTestDB(t)
	c := newCoordinator(s)

	testutil.CreateTestVoter(t, s, "V1", "Alice", "a@x.com")
	candidates := []int64{
		testutil.CreateTestCandidate(t, s, "Bob", "Mayor", 0),
		testutil.CreateTestCandidate(t, s, "Carol", "Mayor", 0),
		testutil.CreateTestCandidate(t, s, "Dave", "Sheriff", 0),
	}

	numAttempts := 12
	var successCount, alreadyVotedCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(attempt int) {
			defer wg.Done()

			_, err := c.CastVote(context.Background(), "V1", candidates[attempt%len(candidates)])
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, models.ErrAlreadyVoted):
				alreadyVotedCount.Add(1)
			default:
				t.Errorf("Unexpected error: %v", err)
			}
		}(i)
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful vote, got %d", successCount.Load())
	}
	if int(alreadyVotedCount.Load()) != numAttempts-1 {
		t.Errorf("Expected %d ErrAlreadyVoted, got %d", numAttempts-1, alreadyVotedCount.Load())
	}

	n, err := s.CountVotes(context.Background(), "V1")
	if err != nil {
		t.Fatalf("CountVotes() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Expected exactly 1 vote record for V1, got %d", n)
	}
	testutil.AssertConsistent(t, s)
}

// TestConcurrentCastVote_ManyVoters checks the candidate counter under
// concurrent votes from different voters.
func TestConcurrentCastVote_ManyVoters(t *testing.T) {
	s := testutil.SetupTestDB(t)
	c := newCoordinator(s)

	bob := testutil.CreateTestCandidate(t, s, "Bob", "Mayor", 0)
	numVoters := 10
	voterIDs := make([]string, numVoters)
	for i := 0; i < numVoters; i++ {
		voterIDs[i] = "V" + string(rune('A'+i))
		testutil.CreateTestVoter(t, s, voterIDs[i], "Voter", voterIDs[i]+"@x.com")
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup
	for _, id := range voterIDs {
		wg.Add(1)
		go func(voterID string) {
			defer wg.Done()
			if _, err := c.CastVote(context.Background(), voterID, bob); err != nil {
				t.Errorf("CastVote(%s) error = %v", voterID, err)
				return
			}
			successCount.Add(1)
		}(id)
	}
	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	candidates, _ := s.ListCandidates(context.Background())
	if candidates[0].VoteCount != int64(numVoters) {
		t.Errorf("Expected vote_count %d, got %d", numVoters, candidates[0].VoteCount)
	}
	testutil.AssertConsistent(t, s)
}
