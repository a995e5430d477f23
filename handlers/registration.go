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
	"github.com/danielhkuo/ballot-box/registration"
	"github.com/danielhkuo/ballot-box/store"
)

type RegistrationHandler struct {
	manager *registration.Manager
	metrics *metrics.Metrics
}

func NewRegistrationHandler(s *store.Store, m *metrics.Metrics) *RegistrationHandler {
	rec := audit.NewRecorder(s, nil)
	return &RegistrationHandler{
		manager: registration.NewManager(s, rec, nil),
		metrics: m,
	}
}

// SetupDatabase handles POST /setup-database
func (h *RegistrationHandler) SetupDatabase(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	err := h.manager.Setup(r.Context())
	h.metrics.Observe("setup_database", start, err)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Status:  models.StatusSuccess,
		Message: "Voting database setup completed!",
	})
}

// AddCandidate handles POST /add-candidate
func (h *RegistrationHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id, err := h.manager.AddCandidate(r.Context(), req)
	h.metrics.Observe("add_candidate", start, err)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.AddCandidateResponse{
		Status:      models.StatusSuccess,
		CandidateID: id,
		Message:     "Candidate added successfully!",
	})
}

// RegisterVoter handles POST /register-voter
func (h *RegistrationHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := h.manager.RegisterVoter(r.Context(), req)
	h.metrics.Observe("register_voter", start, err)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{
		Status:  models.StatusSuccess,
		Message: "Voter registered successfully!",
	})
}
