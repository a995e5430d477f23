package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Audit action labels
const (
	ActionSetup         = "Database Setup"
	ActionAddCandidate  = "Add Candidate"
	ActionRegisterVoter = "Register Voter"
	ActionCastVote      = "Cast Vote"
)

// Response envelope status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// DefaultAuditLimit is the number of audit entries returned when no limit is given
const DefaultAuditLimit = 50

// Request types

type AddCandidateRequest struct {
	Name        string  `json:"name"`
	Party       *string `json:"party,omitempty"`
	Position    string  `json:"position"`
	Description *string `json:"description,omitempty"`
}

type RegisterVoterRequest struct {
	VoterID string `json:"voter_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

type CastVoteRequest struct {
	VoterID     string      `json:"voter_id"`
	CandidateID CandidateID `json:"candidate_id"`
}

// CandidateID accepts both 7 and "7" on the wire.
// Browsers post the value of a <select>, which is always a string.
type CandidateID int64

func (c *CandidateID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*c = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		s = strings.TrimSpace(raw)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("candidate_id must be an integer: %w", err)
	}
	*c = CandidateID(n)
	return nil
}

// Response types

type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type AddCandidateResponse struct {
	Status      string `json:"status"`
	CandidateID int64  `json:"candidate_id"`
	Message     string `json:"message"`
}

type CastVoteResponse struct {
	Status        string `json:"status"`
	CandidateName string `json:"candidate_name"`
	Position      string `json:"position"`
	Message       string `json:"message"`
}

type CandidatesResponse struct {
	Status string      `json:"status"`
	Data   []Candidate `json:"data"`
}

type AuditLogResponse struct {
	Status string       `json:"status"`
	Data   []AuditEntry `json:"data"`
}

type ResultsResponse struct {
	Status string `json:"status"`
	Results
}

// Domain types

type Candidate struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Party       *string   `json:"party,omitempty"`
	Position    string    `json:"position"`
	Description *string   `json:"description,omitempty"`
	VoteCount   int64     `json:"vote_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type Voter struct {
	ID           int64     `json:"id"`
	VoterID      string    `json:"voter_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	HasVoted     bool      `json:"has_voted"`
	RegisteredAt time.Time `json:"registered_at"`
}

// VoteRecord is immutable once written.
type VoteRecord struct {
	ID          int64     `json:"id"`
	CandidateID int64     `json:"candidate_id"`
	VoterID     string    `json:"-"` // Never expose in JSON
	Position    string    `json:"position"`
	VotedAt     time.Time `json:"voted_at"`
}

type AuditEntry struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// Tally types

// CastVoteResult is what a voter is told about their own vote.
type CastVoteResult struct {
	CandidateName string
	Position      string
}

type CandidateResult struct {
	Position   string  `json:"position"`
	Name       string  `json:"name"`
	Party      *string `json:"party,omitempty"`
	VoteCount  int64   `json:"vote_count"`
	Percentage float64 `json:"percentage"`
}

type PositionTotal struct {
	Position       string `json:"position"`
	TotalVotes     int64  `json:"total_votes"`
	CandidateCount int    `json:"candidate_count"`
}

type Results struct {
	Results        []CandidateResult `json:"results"`
	PositionTotals []PositionTotal   `json:"position_totals"`
}

// Total returns the totals row for a position, if it has any candidates.
func (r Results) Total(position string) (PositionTotal, bool) {
	for _, t := range r.PositionTotals {
		if t.Position == position {
			return t, true
		}
	}
	return PositionTotal{}, false
}

// Error response

type ErrorResponse struct {
	Status  string `json:"status,omitempty"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// VerifyResponse reports drift between stored counters and the vote records.
type VerifyResponse struct {
	Status     string   `json:"status"`
	Consistent bool     `json:"consistent"`
	Problems   []string `json:"problems"`
}
