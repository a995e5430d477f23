// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, domain types and errors for the ballot box.

# Request Types

Types for parsing incoming JSON:

  - AddCandidateRequest: name, party, position, description
  - RegisterVoterRequest: voter_id, name, email
  - CastVoteRequest: voter_id, candidate_id (number or numeric string)

# Response Types

Every response carries status ("success" or "error"):

  - AddCandidateResponse: candidate_id, message
  - CastVoteResponse: candidate_name, position, message
  - CandidatesResponse, AuditLogResponse: data
  - ResultsResponse: results, position_totals
  - VerifyResponse: consistent, problems
  - ErrorResponse: error, message

# Domain Types

  - Candidate: someone running for a position, with a denormalized vote_count
  - Voter: registered voter with a has_voted flag
  - VoteRecord: one immutable vote (voter_id is never serialized)
  - AuditEntry: append-only activity record

# Errors

Validation errors are reported straight back to the caller:

	ErrMissingField   (via *FieldError)
	ErrDuplicateVoter

State-conflict errors are detected inside a transaction, which is then rolled back:

	ErrVoterNotFound
	ErrCandidateNotFound
	ErrAlreadyVoted

Infrastructure failures are *StorageError values, matched with:

	errors.Is(err, models.ErrStorageUnavailable)
*/
package models
