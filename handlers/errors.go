// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/ballot-box/middleware"
	"github.com/danielhkuo/ballot-box/models"
)

// statusFor maps a domain error to an HTTP status and a client-safe message.
// Storage causes are logged by the service layer and never echoed.
func statusFor(err error) (int, string) {
	var fieldErr *models.FieldError
	switch {
	case errors.As(err, &fieldErr):
		return http.StatusBadRequest, fieldErr.Error()
	case errors.Is(err, models.ErrDuplicateVoter):
		return http.StatusConflict, "Voter ID or email already exists"
	case errors.Is(err, models.ErrAlreadyVoted):
		return http.StatusConflict, "Voter has already cast their vote"
	case errors.Is(err, models.ErrVoterNotFound):
		return http.StatusNotFound, "Voter not found"
	case errors.Is(err, models.ErrCandidateNotFound):
		return http.StatusNotFound, "Candidate not found"
	case errors.Is(err, models.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, "Storage unavailable, please retry"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, message := statusFor(err)
	middleware.ErrorResponse(w, status, message)
}
