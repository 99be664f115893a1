package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"clubsite/backend/internal/auth"
	"clubsite/backend/internal/models"
	"clubsite/backend/internal/repository"

	"github.com/rs/zerolog/log"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges email and password for an access token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := h.decodeJSON(r, &creds); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), strings.TrimSpace(creds.Email))
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, r, auth.ErrInvalidCredentials)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, creds.Password); err != nil {
		log.Warn().Str("email", user.Email).Msg("Failed login attempt")
		writeError(w, r, err)
		return
	}

	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: auth.TokenType})
}

// Register creates another admin account
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := h.decodeJSON(r, &creds); err != nil {
		writeError(w, r, err)
		return
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user := models.NewUser(strings.TrimSpace(creds.Email), hash, h.now())
	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			err = withDetail(err, "Email already registered")
		}
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Me returns the account behind the current token
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	email, ok := subjectFromContext(r.Context())
	if !ok {
		writeError(w, r, fmt.Errorf("%w: no subject in request", ErrUnauthorized))
		return
	}

	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = withDetail(err, "User not found")
		}
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
