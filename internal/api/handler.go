// Package api exposes the club site over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"clubsite/backend/internal/models"

	"github.com/go-playground/validator/v10"
)

const maxRequestBodyBytes = 1 << 20

// NewsStore persists news articles
type NewsStore interface {
	Create(ctx context.Context, n *models.News) error
	GetByID(ctx context.Context, id string) (*models.News, error)
	List(ctx context.Context, category string) ([]*models.News, error)
	Update(ctx context.Context, n *models.News) error
	Delete(ctx context.Context, id string) error
}

// PlayerStore persists squad members
type PlayerStore interface {
	Create(ctx context.Context, p *models.Player) error
	GetByID(ctx context.Context, id string) (*models.Player, error)
	List(ctx context.Context, position string) ([]*models.Player, error)
	Update(ctx context.Context, p *models.Player) error
	Delete(ctx context.Context, id string) error
}

// MatchStore persists fixtures and results
type MatchStore interface {
	Create(ctx context.Context, m *models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	List(ctx context.Context, status string) ([]*models.Match, error)
	Update(ctx context.Context, m *models.Match) error
	Delete(ctx context.Context, id string) error
}

// SettingsStore persists the site settings document
type SettingsStore interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, upd *models.SettingsUpdate) (*models.Settings, error)
}

// ContactStore persists contact form messages
type ContactStore interface {
	Create(ctx context.Context, m *models.ContactMessage) error
	List(ctx context.Context) ([]*models.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// UserStore persists admin accounts
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// StandingsService serves the league table
type StandingsService interface {
	Current(ctx context.Context) (*models.StandingsSnapshot, error)
	ForceRefresh(ctx context.Context) (*models.StandingsSnapshot, error)
}

// TokenIssuer signs and verifies access tokens
type TokenIssuer interface {
	TokenVerifier
	Issue(email string) (string, error)
}

// Dependencies groups everything the handlers need
type Dependencies struct {
	News      NewsStore
	Players   PlayerStore
	Matches   MatchStore
	Settings  SettingsStore
	Contacts  ContactStore
	Users     UserStore
	Standings StandingsService
	Tokens    TokenIssuer
}

// Handler implements the HTTP endpoints
type Handler struct {
	news      NewsStore
	players   PlayerStore
	matches   MatchStore
	settings  SettingsStore
	contacts  ContactStore
	users     UserStore
	standings StandingsService
	tokens    TokenIssuer
	validator *validator.Validate
	now       func() time.Time
}

// NewHandler creates a Handler
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		news:      deps.News,
		players:   deps.Players,
		matches:   deps.Matches,
		settings:  deps.Settings,
		contacts:  deps.Contacts,
		users:     deps.Users,
		standings: deps.Standings,
		tokens:    deps.Tokens,
		validator: validator.New(),
		now:       time.Now,
	}
}

// Root answers GET /api/
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, "FC Alexandria API")
}

// decodeJSON reads a single JSON object from the body and validates it
func (h *Handler) decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", ErrInvalidInput, err)
	}

	return h.validateRequest(dst)
}

func (h *Handler) validateRequest(payload any) error {
	if err := h.validator.Struct(payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", ErrInvalidInput, err)
	}
	return nil
}
