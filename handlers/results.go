// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/ballot-box/audit"
	"github.com/danielhkuo/ballot-box/metrics"
	"github.com/danielhkuo/ballot-box/middleware"
	"github.com/danielhkuo/ballot-box/models"
	"github.com/danielhkuo/ballot-box/store"
	"github.com/danielhkuo/ballot-box/tally"
)

type ResultsHandler struct {
	engine  *tally.Engine
	audit   *audit.Recorder
	metrics *metrics.Metrics
}

func NewResultsHandler(s *store.Store, m *metrics.Metrics) *ResultsHandler {
	return &ResultsHandler{
		engine:  tally.NewEngine(s, nil),
		audit:   audit.NewRecorder(s, nil),
		metrics: m,
	}
}

// GetCandidates handles GET /get-candidates
func (h *ResultsHandler) GetCandidates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	candidates, err := h.engine.GetCandidates(r.Context())
	h.metrics.Observe("get_candidates", start, err)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidatesResponse{
		Status: models.StatusSuccess,
		Data:   candidates,
	})
}

// GetResults handles GET /get-results
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	results, err := h.engine.GetResults(r.Context())
	h.metrics.Observe("get_results", start, err)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Status:  models.StatusSuccess,
		Results: results,
	})
}

// GetAuditLogs handles GET /get-audit-logs?limit=N
func (h *ResultsHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	entries, err := h.audit.ListRecent(r.Context(), limit)
	h.metrics.Observe("get_audit_logs", start, err)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AuditLogResponse{
		Status: models.StatusSuccess,
		Data:   entries,
	})
}

// VerifyTally handles GET /verify-tally
func (h *ResultsHandler) VerifyTally(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	problems, err := h.engine.Verify(r.Context())
	h.metrics.Observe("verify_tally", start, err)
	if err != nil {
		writeError(w, err)
		return
	}

	if problems == nil {
		problems = []string{}
	}
	middleware.JSONResponse(w, http.StatusOK, models.VerifyResponse{
		Status:     models.StatusSuccess,
		Consistent: len(problems) == 0,
		Problems:   problems,
	})
}
