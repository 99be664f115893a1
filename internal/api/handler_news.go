package api

import (
	"errors"
	"net/http"

	"clubsite/backend/internal/models"
	"clubsite/backend/internal/repository"
)

func newsNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return withDetail(err, "News not found")
	}
	return err
}

// ListNews returns articles newest first, optionally filtered by ?category=
func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	items, err := h.news.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GetNews returns a single article
func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	item, err := h.news.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, newsNotFound(err))
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// CreateNews publishes an article
func (h *Handler) CreateNews(w http.ResponseWriter, r *http.Request) {
	var in models.NewsInput
	if err := h.decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	item := in.ToNews(h.now())
	if err := h.news.Create(r.Context(), item); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// UpdateNews replaces the editable fields of an article
func (h *Handler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	var in models.NewsInput
	if err := h.decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.news.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, newsNotFound(err))
		return
	}

	in.Apply(item, h.now())
	if err := h.news.Update(r.Context(), item); err != nil {
		writeError(w, r, newsNotFound(err))
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteNews removes an article
func (h *Handler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	if err := h.news.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, newsNotFound(err))
		return
	}
	writeMessage(w, "News deleted successfully")
}
