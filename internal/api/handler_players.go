package api

import (
	"errors"
	"net/http"

	"clubsite/backend/internal/models"
	"clubsite/backend/internal/repository"
)

func playerNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return withDetail(err, "Player not found")
	}
	return err
}

// ListPlayers returns the squad, optionally filtered by ?position=
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	items, err := h.players.List(r.Context(), r.URL.Query().Get("position"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	item, err := h.players.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, playerNotFound(err))
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var in models.PlayerInput
	if err := h.decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	item := in.ToPlayer(h.now())
	if err := h.players.Create(r.Context(), item); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	var in models.PlayerInput
	if err := h.decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.players.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, playerNotFound(err))
		return
	}

	in.Apply(item)
	if err := h.players.Update(r.Context(), item); err != nil {
		writeError(w, r, playerNotFound(err))
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	if err := h.players.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, playerNotFound(err))
		return
	}
	writeMessage(w, "Player deleted successfully")
}
