// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ballot-box API.

# Handler Types

Each handler is a struct wrapping one service from the domain packages:

  - RegistrationHandler: schema setup, candidates and voters (registration.Manager)
  - VotingHandler: casting votes (voting.Coordinator)
  - ResultsHandler: candidates, results, audit trail and tally checks
    (tally.Engine, audit.Recorder)

Handlers are created via constructor functions that accept the store and the
metrics registry:

	votingHandler := handlers.NewVotingHandler(s, m)

# Endpoints

	POST /setup-database  → SetupDatabase
	POST /add-candidate   → AddCandidate   {name, position, party?, description?}
	POST /register-voter  → RegisterVoter  {voter_id, name, email}
	POST /cast-vote       → CastVote       {voter_id, candidate_id}
	GET  /get-candidates  → GetCandidates
	GET  /get-results     → GetResults
	GET  /get-audit-logs  → GetAuditLogs   ?limit=N (default 50, max 1000)
	GET  /verify-tally    → VerifyTally

candidate_id may be sent as a number or as a numeric string.

# Responses

Every body carries "status": "success" or "error". Errors add "error" (the
HTTP status text) and "message":

	400  missing field, invalid JSON, bad limit
	404  voter or candidate not found
	409  voter already voted, duplicate voter_id or email
	503  storage unavailable (safe to retry)
	500  anything else

Each call is counted in the metrics registry by operation and outcome.
*/
package handlers
