package api

import (
	"errors"
	"net/http"

	"clubsite/backend/internal/models"
	"clubsite/backend/internal/repository"
)

// GetSettings returns the site settings, creating defaults on first read
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings applies the non-null fields of the body
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var upd models.SettingsUpdate
	if err := h.decodeJSON(r, &upd); err != nil {
		writeError(w, r, err)
		return
	}

	var (
		settings *models.Settings
		err      error
	)
	if upd.IsEmpty() {
		settings, err = h.settings.Get(r.Context())
	} else {
		settings, err = h.settings.Update(r.Context(), &upd)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func contactNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return withDetail(err, "Message not found")
	}
	return err
}

// CreateContact stores a message from the public contact form
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var in models.ContactMessageInput
	if err := h.decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	msg := in.ToContactMessage(h.now())
	if err := h.contacts.Create(r.Context(), msg); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	items, err := h.contacts.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.contacts.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, contactNotFound(err))
		return
	}
	writeMessage(w, "Contact message deleted successfully")
}

func (h *Handler) MarkContactRead(w http.ResponseWriter, r *http.Request) {
	if err := h.contacts.MarkRead(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, contactNotFound(err))
		return
	}
	writeMessage(w, "Message marked as read")
}

// GetStandings returns the league table, refreshing once if none is stored yet
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	snap, err := h.standings.Current(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// RefreshStandings runs the pipeline now
func (h *Handler) RefreshStandings(w http.ResponseWriter, r *http.Request) {
	snap, err := h.standings.ForceRefresh(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
