// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
)

// Validation errors
var (
	ErrMissingField   = errors.New("missing required field")
	ErrDuplicateVoter = errors.New("voter ID or email already exists")
)

// State-conflict errors
var (
	ErrVoterNotFound     = errors.New("voter not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrAlreadyVoted      = errors.New("voter has already cast their vote")
)

// ErrStorageUnavailable is matched by every *StorageError
var ErrStorageUnavailable = errors.New("storage unavailable")

// FieldError names the required field that was empty.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrMissingField
}

// MissingField returns a FieldError for the given field
func MissingField(field string) error {
	return &FieldError{Field: field}
}

// StorageError wraps a transient failure from the ballot store.
// The cause is kept for logging; callers should only look at the kind.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage unavailable: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}

// IsStateConflict reports whether err is a business-rule violation
// detected inside a transaction.
func IsStateConflict(err error) bool {
	return errors.Is(err, ErrVoterNotFound) ||
		errors.Is(err, ErrCandidateNotFound) ||
		errors.Is(err, ErrAlreadyVoted)
}

// IsValidation reports whether err is a caller mistake.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingField) || errors.Is(err, ErrDuplicateVoter)
}
