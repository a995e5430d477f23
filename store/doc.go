// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the ballot store: durable persistence for candidates,
voters, vote records and audit entries.

# Opening

	s, err := store.Open(ctx, "sqlite", "file:ballot.db", store.Options{})
	s, err := store.Open(ctx, "postgres", "postgres://...", store.Options{TxTimeout: 5 * time.Second})

The store is injected into every component; nothing holds a global connection.

# Transactions

Every state change goes through InTx:

	err := s.InTx(ctx, func(ctx context.Context, tx *store.Tx) error {
		if _, err := tx.InsertCandidate(ctx, c); err != nil {
			return err
		}
		_, err := tx.InsertAudit(ctx, entry)
		return err
	})

The callback's error rolls everything back. The transaction runs on a context
detached from the caller and bounded by Options.TxTimeout.

# Errors

Driver errors are classified without looking at message text:

  - ErrNotFound: the row does not exist
  - *ConstraintError (matches ErrUniqueViolation): pq/pgconn code 23505 or
    SQLITE_CONSTRAINT_UNIQUE
  - *models.StorageError (matches models.ErrStorageUnavailable): everything else
*/
package store
