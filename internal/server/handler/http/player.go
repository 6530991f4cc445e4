package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/califeryan/goutte-server/internal/mailer"
	"github.com/califeryan/goutte-server/internal/middleware"
	"github.com/califeryan/goutte-server/internal/models"
	"github.com/califeryan/goutte-server/internal/service"
)

// PlayerService defines the player operations required by the HTTP handlers.
type PlayerService interface {
	Create(ctx context.Context, params service.CreatePlayerParams) (*models.Player, error)
	GetByID(ctx context.Context, id int64) (*models.Player, error)
	GetNameByID(ctx context.Context, id int64) (string, error)
	List(ctx context.Context) ([]models.Player, error)
	FindByEmail(ctx context.Context, email string) (*models.Player, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	Update(ctx context.Context, id int64, field string, value any) error
}

// PlayerHandler handles HTTP requests for player records.
type PlayerHandler struct {
	// PlayerService performs the underlying player operations.
	PlayerService PlayerService
	// Sender delivers registration and warning emails.
	Sender mailer.Sender
	// AdminToken is the shared secret gating bulk deletion.
	AdminToken string
	// Logger records delivery failures that must not fail the request.
	Logger *zap.Logger
}

// CreatePlayerRequest represents the JSON payload for player registration.
type CreatePlayerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Goal       string `json:"goal"`
	SecondGoal string `json:"secondGoal"`
	ThirdGoal  string `json:"thirdGoal"`
}

// Create handles player registration. It expects name, email, password and a
// first goal; the second and third goals are optional. The email must not be
// in use by another player — this check lives here, not in the store, and is
// racy under concurrent registration of the same address. After a successful
// insert, the welcome email is sent and emailSent flipped on delivery.
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Goal == "" {
		http.Error(w, "missing player fields", http.StatusBadRequest)
		return
	}

	_, err := h.PlayerService.FindByEmail(r.Context(), req.Email)
	if err == nil {
		http.Error(w, "email already registered", http.StatusConflict)
		return
	}
	if !errors.Is(err, models.ErrNotFound) {
		writeError(w, err)
		return
	}

	player, err := h.PlayerService.Create(r.Context(), service.CreatePlayerParams{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Goal:       req.Goal,
		SecondGoal: req.SecondGoal,
		ThirdGoal:  req.ThirdGoal,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.deliver(r.Context(), player.ID, player.Email, player.Name, false)

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "player": player})
}

// List returns all players.
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.PlayerService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if players == nil {
		players = []models.Player{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"players": players})
}

// GetByID returns one player record.
func (h *PlayerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid player id", http.StatusBadRequest)
		return
	}

	player, err := h.PlayerService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"player": player})
}

// GetName returns just the player's display name.
func (h *PlayerHandler) GetName(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid player id", http.StatusBadRequest)
		return
	}

	name, err := h.PlayerService.GetNameByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

// UpdateRequest represents the JSON payload for a field update. The value
// stays raw JSON; the dispatcher coerces it per field.
type UpdateRequest struct {
	UpdateType string          `json:"updateType"`
	ToUpdate   json.RawMessage `json:"toUpdate"`
}

// Update routes a field update to the dispatcher. The authenticated player
// may only update their own record; the ownership check happens here, the
// field routing and the reserved-id policy in the dispatcher.
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid player id", http.StatusBadRequest)
		return
	}

	principal := middleware.GetPrincipalFromContext(r.Context())
	if principal == nil || principal.ID != id {
		http.Error(w, "you may only update your own record", http.StatusForbidden)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UpdateType == "" || len(req.ToUpdate) == 0 {
		http.Error(w, "missing update fields", http.StatusBadRequest)
		return
	}

	var value any
	if err := json.Unmarshal(req.ToUpdate, &value); err != nil {
		http.Error(w, "invalid update value", http.StatusBadRequest)
		return
	}

	if err := h.PlayerService.Update(r.Context(), id, req.UpdateType, value); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Delete removes one player. The caller must be the player themself or an
// administrator.
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid player id", http.StatusBadRequest)
		return
	}

	principal := middleware.GetPrincipalFromContext(r.Context())
	if principal == nil || (principal.ID != id && !principal.Admin) {
		http.Error(w, "you may only delete your own record", http.StatusForbidden)
		return
	}

	if err := h.PlayerService.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// DeleteAll irreversibly removes every player. Gated by the shared admin
// secret passed as the authToken query parameter. The sequence counter is
// left alone, so ids are never reissued.
func (h *PlayerHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if h.AdminToken == "" || r.URL.Query().Get("authToken") != h.AdminToken {
		http.Error(w, "invalid admin token", http.StatusForbidden)
		return
	}

	if err := h.PlayerService.DeleteAll(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// EmailAvailable reports whether an email address is free to register.
func (h *PlayerHandler) EmailAvailable(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "missing email", http.StatusBadRequest)
		return
	}

	_, err := h.PlayerService.FindByEmail(r.Context(), email)
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]bool{"success": false})
	default:
		writeError(w, err)
	}
}

// ResendEmail re-sends the registration email to an existing player.
func (h *PlayerHandler) ResendEmail(w http.ResponseWriter, r *http.Request) {
	h.notify(w, r, false)
}

// SendWarning sends the inactivity warning email to an existing player.
func (h *PlayerHandler) SendWarning(w http.ResponseWriter, r *http.Request) {
	h.notify(w, r, true)
}

func (h *PlayerHandler) notify(w http.ResponseWriter, r *http.Request, warning bool) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid player id", http.StatusBadRequest)
		return
	}

	player, err := h.PlayerService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	h.deliver(r.Context(), player.ID, player.Email, player.Name, warning)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// deliver sends one notification email and, if delivery succeeded, flips the
// matching flag through the dispatcher. Delivery failures are logged, never
// surfaced: the player record is already in whatever state the caller put it.
func (h *PlayerHandler) deliver(ctx context.Context, id int64, email, name string, warning bool) {
	field := "emailSent"
	send := h.Sender.SendRegistration
	if warning {
		field = "warningSent"
		send = h.Sender.SendWarning
	}

	if err := send(email, name); err != nil {
		h.Logger.Warn("email delivery failed", zap.Int64("player", id), zap.Error(err))
		return
	}
	if err := h.PlayerService.Update(ctx, id, field, true); err != nil {
		h.Logger.Warn("failed to record email delivery", zap.Int64("player", id), zap.Error(err))
	}
}
