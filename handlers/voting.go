// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/danielhkuo/ballot-box/audit"
	"github.com/danielhkuo/ballot-box/metrics"
	"github.com/danielhkuo/ballot-box/middleware"
	"github.com/danielhkuo/ballot-box/models"
	"github.com/danielhkuo/ballot-box/store"
	"github.com/danielhkuo/ballot-box/voting"
)

type VotingHandler struct {
	coordinator *voting.Coordinator
	metrics     *metrics.Metrics
}

func NewVotingHandler(s *store.Store, m *metrics.Metrics) *VotingHandler {
	rec := audit.NewRecorder(s, nil)
	return &VotingHandler{
		coordinator: voting.NewCoordinator(s, rec, nil),
		metrics:     m,
	}
}

// CastVote handles POST /cast-vote
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := h.coordinator.CastVote(r.Context(), req.VoterID, int64(req.CandidateID))
	h.metrics.Observe("cast_vote", start, err)
	if err != nil {
		writeError(w, err)
		return
	}
	h.metrics.VoteCast(result.Position)

	middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{
		Status:        models.StatusSuccess,
		CandidateName: result.CandidateName,
		Position:      result.Position,
		Message:       "Vote cast successfully!",
	})
}
