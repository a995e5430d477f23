// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registration

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

// Store is the part of *store.Store the manager needs.
type Store interface {
	InTx(ctx context.Context, fn func(ctx context.Context, tx *store.Tx) error) error
	CreateSchema(ctx context.Context) error
}

// Recorder writes audit entries. *audit.Recorder satisfies it.
type Recorder interface {
	Record(ctx context.Context, w audit.Writer, action, details string) error
}

// Manager admits candidates and voters.
type Manager struct {
	store  Store
	audit  Recorder
	logger *slog.Logger
}

func NewManager(s Store, rec Recorder, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: s, audit: rec, logger: logger}
}

// AddCandidate creates a candidate with no votes and returns its id.
// Names need not be unique; party and description are optional.
func (m *Manager) AddCandidate(ctx context.Context, req models.AddCandidateRequest) (int64, error) {
	if strings.TrimSpace(req.Name) == "" {
		return 0, models.MissingField("name")
	}
	if strings.TrimSpace(req.Position) == "" {
		return 0, models.MissingField("position")
	}

	var id int64
	err := m.store.InTx(ctx, func(ctx context.Context, tx *store.Tx) error {
		var err error
		id, err = tx.InsertCandidate(ctx, models.Candidate{
			Name:        req.Name,
			Party:       emptyToNil(req.Party),
			Position:    req.Position,
			Description: emptyToNil(req.Description),
		})
		if err != nil {
			return err
		}

		details := fmt.Sprintf("Added candidate: %s for position: %s", req.Name, req.Position)
		return m.audit.Record(ctx, tx, models.ActionAddCandidate, details)
	})
	if err != nil {
		m.logger.Error("failed to add candidate", "name", req.Name, "position", req.Position, "error", err)
		return 0, err
	}

	m.logger.Info("candidate added", "candidate_id", id, "position", req.Position)
	return id, nil
}

// RegisterVoter admits a voter who has not voted yet.
// Both voter_id and email must be unused, otherwise ErrDuplicateVoter.
func (m *Manager) RegisterVoter(ctx context.Context, req models.RegisterVoterRequest) error {
	if strings.TrimSpace(req.VoterID) == "" {
		return models.MissingField("voter_id")
	}
	if strings.TrimSpace(req.Name) == "" {
		return models.MissingField("name")
	}
	if strings.TrimSpace(req.Email) == "" {
		return models.MissingField("email")
	}

	err := m.store.InTx(ctx, func(ctx context.Context, tx *store.Tx) error {
		_, err := tx.InsertVoter(ctx, models.Voter{
			VoterID: req.VoterID,
			Name:    req.Name,
			Email:   req.Email,
		})
		if errors.Is(err, store.ErrUniqueViolation) {
			return models.ErrDuplicateVoter
		}
		if err != nil {
			return err
		}

		details := fmt.Sprintf("Registered voter: %s with ID: %s", req.Name, req.VoterID)
		return m.audit.Record(ctx, tx, models.ActionRegisterVoter, details)
	})
	if errors.Is(err, models.ErrDuplicateVoter) {
		m.logger.Info("duplicate voter rejected", "voter_id", req.VoterID)
		return err
	}
	if err != nil {
		m.logger.Error("failed to register voter", "voter_id", req.VoterID, "error", err)
		return err
	}

	m.logger.Info("voter registered", "voter_id", req.VoterID)
	return nil
}

// Setup provisions the schema and records that it happened.
// Safe to call more than once.
func (m *Manager) Setup(ctx context.Context) error {
	if err := m.store.CreateSchema(ctx); err != nil {
		m.logger.Error("schema creation failed", "error", err)
		return err
	}

	err := m.store.InTx(ctx, func(ctx context.Context, tx *store.Tx) error {
		return m.audit.Record(ctx, tx, models.ActionSetup, "All voting tables created successfully")
	})
	if err != nil {
		m.logger.Error("failed to record setup", "error", err)
		return err
	}

	m.logger.Info("database schema ready")
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
