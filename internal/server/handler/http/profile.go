// Package http provides HTTP handlers for user profile documents.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/echoplay/echoplay/internal/middleware"
	"github.com/echoplay/echoplay/internal/models"
	"github.com/echoplay/echoplay/internal/service"
)

// ProfileService defines the interface for profile-document operations
// required by the ProfileHandler.
type ProfileService interface {
	// Fetch returns the profile document for uid.
	Fetch(ctx context.Context, uid string) (*models.UserDocument, error)
	// Update applies a partial profile update.
	Update(ctx context.Context, uid string, update models.ProfileUpdate) error
	// Delete removes the account for uid.
	Delete(ctx context.Context, uid string) error
}

// ProfileHandler handles HTTP requests for profile documents.
type ProfileHandler struct {
	ProfileService ProfileService
}

// owns checks that the authenticated user is the owner of the document
// at {uid}; writes 403 and returns "" otherwise.
func owns(w http.ResponseWriter, r *http.Request) string {
	uid := chi.URLParam(r, "uid")
	if uid != middleware.GetUserIDFromContext(r.Context()) {
		http.Error(w, "not your document", http.StatusForbidden)
		return ""
	}
	return uid
}

// Get handles GET /api/users/{uid} requests.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid := owns(w, r)
	if uid == "" {
		return
	}

	doc, err := h.ProfileService.Fetch(r.Context(), uid)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(doc)
}

// Update handles PATCH /api/users/{uid} requests. The body is an
// explicit partial-update record; absent fields stay untouched.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid := owns(w, r)
	if uid == "" {
		return
	}

	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := h.ProfileService.Update(r.Context(), uid, update); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Delete handles DELETE /api/users/{uid} requests, removing the
// account and all its sessions.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid := owns(w, r)
	if uid == "" {
		return
	}

	if err := h.ProfileService.Delete(r.Context(), uid); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
