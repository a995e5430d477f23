// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/ballot-box/cliparse"
	"github.com/danielhkuo/ballot-box/handlers"
	"github.com/danielhkuo/ballot-box/metrics"
	"github.com/danielhkuo/ballot-box/middleware"
	"github.com/danielhkuo/ballot-box/models"
	"github.com/danielhkuo/ballot-box/store"
)

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func NewRouter(s *store.Store, cfg cliparse.Config, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	registrationHandler := handlers.NewRegistrationHandler(s, m)
	votingHandler := handlers.NewVotingHandler(s, m)
	resultsHandler := handlers.NewResultsHandler(s, m)

	// Health check pings the store
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.Ping(r.Context()); err != nil {
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Database unreachable")
			return
		}
		middleware.JSONResponse(w, http.StatusOK, healthResponse{
			Status:   models.StatusSuccess,
			Database: cfg.DatabaseType,
		})
	})
	mux.Handle("GET /metrics", m.Handler())

	// Registration
	mux.HandleFunc("POST /setup-database", middleware.WithLogging(registrationHandler.SetupDatabase))
	mux.HandleFunc("POST /add-candidate", middleware.WithLogging(registrationHandler.AddCandidate))
	mux.HandleFunc("POST /register-voter", middleware.WithLogging(registrationHandler.RegisterVoter))

	// Voting
	mux.HandleFunc("POST /cast-vote", middleware.WithLogging(votingHandler.CastVote))

	// Tally and audit (read only)
	mux.HandleFunc("GET /get-candidates", middleware.WithLogging(resultsHandler.GetCandidates))
	mux.HandleFunc("GET /get-results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /get-audit-logs", middleware.WithLogging(resultsHandler.GetAuditLogs))
	mux.HandleFunc("GET /verify-tally", middleware.WithLogging(resultsHandler.VerifyTally))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballot-box API v1"))
	})

	return middleware.CORS(mux)
}
