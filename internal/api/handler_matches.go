package api

import (
	"errors"
	"net/http"

	"clubsite/backend/internal/models"
	"clubsite/backend/internal/repository"
)

func matchNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return withDetail(err, "Match not found")
	}
	return err
}

// ListMatches returns fixtures latest first, optionally filtered by ?status=
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	items, err := h.matches.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	item, err := h.matches.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, matchNotFound(err))
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var in models.MatchInput
	if err := h.decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	item := in.ToMatch(h.now())
	if err := h.matches.Create(r.Context(), item); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	var in models.MatchInput
	if err := h.decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.matches.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, matchNotFound(err))
		return
	}

	in.Apply(item)
	if err := h.matches.Update(r.Context(), item); err != nil {
		writeError(w, r, matchNotFound(err))
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	if err := h.matches.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, matchNotFound(err))
		return
	}
	writeMessage(w, "Match deleted successfully")
}
