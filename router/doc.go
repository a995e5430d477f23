// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ballot-box API.

# Route Registration

NewRouter builds an http.ServeMux with all endpoints and wraps it in CORS:

	handler := router.NewRouter(s, cfg, m)

# Endpoints

Operational:

	GET /health  - Store ping, reports the database type
	GET /metrics - Prometheus exposition

Registration:

	POST /setup-database - Create tables (idempotent)
	POST /add-candidate  - Add a candidate
	POST /register-voter - Register a voter

Voting:

	POST /cast-vote - Cast a voter's single vote

Tally and audit:

	GET /get-candidates - All candidates with counters
	GET /get-results    - Per-position totals and percentages
	GET /get-audit-logs - Newest audit entries (?limit=N)
	GET /verify-tally   - Counter/flag consistency check

All domain routes are wrapped with middleware.WithLogging.
*/
package router
