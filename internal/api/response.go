package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"clubsite/backend/internal/auth"
	"clubsite/backend/internal/repository"
	"clubsite/backend/internal/standings"

	"github.com/rs/zerolog/log"
)

var (
	// ErrInvalidInput marks malformed or invalid request bodies
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized marks requests without usable credentials
	ErrUnauthorized = errors.New("not authenticated")
)

type errorBody struct {
	Detail string `json:"detail"`
}

type messageBody struct {
	Message string `json:"message"`
}

// detailError carries the message shown to clients while keeping the cause for errors.Is
type detailError struct {
	detail string
	err    error
}

func (e *detailError) Error() string { return e.detail }
func (e *detailError) Unwrap() error { return e.err }

func withDetail(err error, detail string) error {
	return &detailError{detail: detail, err: err}
}

type mappedError struct {
	status int
	detail string
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Warn().Err(err).Msg("Failed to encode response")
	}
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, messageBody{Message: message})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	mapped := mapError(err)

	var de *detailError
	if errors.As(err, &de) {
		mapped.detail = de.detail
	}

	if mapped.status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", mapped.status).
			Msg("Request failed")
	}

	writeJSON(w, mapped.status, errorBody{Detail: mapped.detail})
}

func mapError(err error) mappedError {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return mappedError{status: http.StatusBadRequest, detail: err.Error()}
	case errors.Is(err, repository.ErrDuplicate):
		return mappedError{status: http.StatusBadRequest, detail: "Record already exists"}
	case errors.Is(err, auth.ErrTokenExpired):
		return mappedError{status: http.StatusUnauthorized, detail: "Token expired"}
	case errors.Is(err, auth.ErrInvalidToken):
		return mappedError{status: http.StatusUnauthorized, detail: "Invalid token"}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return mappedError{status: http.StatusUnauthorized, detail: "Incorrect email or password"}
	case errors.Is(err, ErrUnauthorized):
		return mappedError{status: http.StatusUnauthorized, detail: "Not authenticated"}
	case errors.Is(err, standings.ErrNotAvailable):
		return mappedError{status: http.StatusNotFound, detail: "Standings not available"}
	case errors.Is(err, repository.ErrNotFound):
		return mappedError{status: http.StatusNotFound, detail: "Not found"}
	case errors.Is(err, standings.ErrRefreshFailed):
		return mappedError{status: http.StatusServiceUnavailable, detail: "Failed to refresh standings"}
	default:
		return mappedError{status: http.StatusInternalServerError, detail: "Internal server error"}
	}
}
