// Package http provides HTTP handlers for the account service:
// sign-up, sign-in, sign-out, and profile documents.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/echoplay/echoplay/internal/middleware"
	"github.com/echoplay/echoplay/internal/models"
	"github.com/echoplay/echoplay/internal/service"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// SignUp registers a new user and returns it with a session token.
	SignUp(ctx context.Context, username, email, password string) (*models.User, string, error)
	// SignIn verifies credentials and returns the user with a session token.
	SignIn(ctx context.Context, email, password string) (*models.User, string, error)
	// SignOut closes the session identified by token.
	SignOut(ctx context.Context, token string) error
}

// AuthHandler handles HTTP requests for sign-up, sign-in, and sign-out.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// SignUpRequest represents the JSON payload for user registration.
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest represents the JSON payload for signing in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the JSON body returned on successful sign-up or
// sign-in: the user's public identity plus the session token.
type authResponse struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

// SignUp handles user registration requests.
// It expects a JSON body with non-empty "username", "email", and
// "password" fields. Conflicting emails yield 409.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.SignUp(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			http.Error(w, "email already registered", http.StatusConflict)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(authResponse{
		UID:      user.UID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	})
}

// SignIn handles sign-in requests. Bad credentials yield 401 without
// distinguishing unknown email from wrong password.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(authResponse{
		UID:      user.UID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	})
}

// SignOut closes the authenticated session. The token comes from the
// auth middleware, not the body.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetTokenFromContext(r.Context())
	if token == "" {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	if err := h.AuthService.SignOut(r.Context(), token); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
