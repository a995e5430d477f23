// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package registration admits candidates and voters.

	m := registration.NewManager(s, recorder, logger)

	id, err := m.AddCandidate(ctx, models.AddCandidateRequest{Name: "Bob", Position: "Mayor"})
	err = m.RegisterVoter(ctx, models.RegisterVoterRequest{VoterID: "V1", Name: "Alice", Email: "a@x.com"})

Empty required fields fail with models.ErrMissingField before the store is
touched. A voter_id or email that is already registered fails with
models.ErrDuplicateVoter; the store reports this as a typed uniqueness
violation, not by message text.

Each successful call writes its audit entry in the same transaction.

Setup creates the tables (IF NOT EXISTS) and records a "Database Setup" entry.
*/
package registration
