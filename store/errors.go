// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/ballot-box/models"
)

var (
	ErrNotFound        = errors.New("store: row not found")
	ErrUniqueViolation = errors.New("store: unique constraint violated")
)

const pgUniqueViolation = "23505"

// ConstraintError is returned when an insert hits a uniqueness constraint.
type ConstraintError struct {
	Op         string
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	if e.Constraint == "" {
		return fmt.Sprintf("%s: unique constraint violated: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: unique constraint %s violated", e.Op, e.Constraint)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

func (e *ConstraintError) Is(target error) bool { return target == ErrUniqueViolation }

// classify turns a driver error into ErrNotFound, a *ConstraintError or a
// *models.StorageError. Nothing is decided from the error text.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if constraint, ok := uniqueViolation(err); ok {
		return &ConstraintError{Op: op, Constraint: constraint, Err: err}
	}
	return unavailable(op, err)
}

func unavailable(op string, err error) error {
	var se *models.StorageError
	if errors.As(err, &se) {
		return err
	}
	return &models.StorageError{Op: op, Err: err}
}

func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint, pqErr.Code == pgUniqueViolation
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName, pgErr.Code == pgUniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return "", true
		}
	}

	return "", false
}
