// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting casts votes.

# One Voter, One Vote

A voter gets a single vote for the whole election, not one per position.
CastVote checks, in order:

	voter exists        → else models.ErrVoterNotFound
	voter has not voted → else models.ErrAlreadyVoted
	candidate exists    → else models.ErrCandidateNotFound

then, in the same transaction:

	UPDATE voters SET has_voted = TRUE WHERE voter_id = ? AND has_voted = FALSE
	INSERT INTO votes (candidate_id, voter_id, position, ...)
	UPDATE candidates SET vote_count = vote_count + 1
	INSERT INTO audit_logs (...)

The first UPDATE is a compare-and-set. When it changes no row another
transaction already voted for this voter, and the call fails with
ErrAlreadyVoted. A UNIQUE index on votes.voter_id backs it up.

# Retries

State conflicts are final. After a *models.StorageError the same request
can be retried: it either succeeds or, if the earlier attempt did commit,
reports ErrAlreadyVoted.
*/
package voting
