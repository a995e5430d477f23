// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package audit keeps the append-only activity trail.

Entries are written inside the same transaction as the change they describe,
so a committed vote or registration always has its entry and a rolled-back
one never does:

	err := s.InTx(ctx, func(ctx context.Context, tx *store.Tx) error {
		// ... state change ...
		return recorder.Record(ctx, tx, models.ActionCastVote, details)
	})

Entries are never updated or deleted. ListRecent returns them newest first,
50 by default.
*/
package audit
