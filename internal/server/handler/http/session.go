package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/califeryan/goutte-server/internal/auth"
	"github.com/califeryan/goutte-server/internal/middleware"
)

// SessionService defines the login operations required by the HTTP handlers.
type SessionService interface {
	LoginPlayer(ctx context.Context, email, password string) (*auth.Session, error)
	LoginAdmin(ctx context.Context, pseudonyme, password, token string) (*auth.Session, error)
}

// SessionHandler handles player and administrator logins plus the
// authenticated-principal probe endpoints.
type SessionHandler struct {
	// Sessions performs credential checks and issues bearer tokens.
	Sessions SessionService
	// Players resolves the caller's own record for the profile endpoint.
	Players PlayerService
}

// LoginRequest represents the JSON payload for a player login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a player and returns a bearer token.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		http.Error(w, "missing credentials", http.StatusBadRequest)
		return
	}

	session, err := h.Sessions.LoginPlayer(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	player, err := h.Players.GetByID(r.Context(), session.Principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "login successful",
		"user":    player,
		"token":   session.Token,
	})
}

// AdminLoginRequest represents the JSON payload for an administrator login.
type AdminLoginRequest struct {
	Pseudonyme string `json:"pseudonyme"`
	Password   string `json:"password"`
	AuthToken  string `json:"authToken"`
}

// AdminLogin authenticates an administrator and returns a bearer token. On
// top of the credentials it requires the shared admin secret.
func (h *SessionHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Pseudonyme == "" || req.Password == "" {
		http.Error(w, "missing credentials", http.StatusBadRequest)
		return
	}

	session, err := h.Sessions.LoginAdmin(r.Context(), req.Pseudonyme, req.Password, req.AuthToken)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "admin login successful",
		"token":   session.Token,
	})
}

// Me returns the authenticated player's own record.
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipalFromContext(r.Context())
	if principal == nil || principal.Admin {
		http.Error(w, "player session required", http.StatusForbidden)
		return
	}

	player, err := h.Players.GetByID(r.Context(), principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": player})
}

// AdminMe confirms an administrator session and returns its id.
func (h *SessionHandler) AdminMe(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipalFromContext(r.Context())
	if principal == nil || !principal.Admin {
		http.Error(w, "administrator access required", http.StatusForbidden)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"userId": principal.ID})
}
