package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/califeryan/goutte-server/internal/models"
)

// AdminService defines the administrator operations required by the HTTP
// handlers.
type AdminService interface {
	GetByPseudonyme(ctx context.Context, pseudonyme string) (*models.AdminAccount, error)
	GetByID(ctx context.Context, id int64) (*models.AdminAccount, error)
	Create(ctx context.Context, pseudonyme, password string) (*models.AdminAccount, error)
}

// AdminHandler handles HTTP requests for administrator accounts.
type AdminHandler struct {
	// AdminService performs the underlying administrator operations.
	AdminService AdminService
	// AdminToken is the shared secret gating administrator creation.
	AdminToken string
}

// CreateAdminRequest represents the JSON payload for administrator creation.
type CreateAdminRequest struct {
	Name      string `json:"name"`
	Password  string `json:"password"`
	AuthToken string `json:"authToken"`
}

// Create adds an administrator account. Gated by the shared admin secret; the
// account lands in the reserved id range.
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Password == "" {
		http.Error(w, "missing admin fields", http.StatusBadRequest)
		return
	}
	if h.AdminToken == "" || req.AuthToken != h.AdminToken {
		http.Error(w, "invalid admin token", http.StatusForbidden)
		return
	}

	admin, err := h.AdminService.Create(r.Context(), req.Name, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "admin": admin})
}

// GetByID returns one administrator account by id.
func (h *AdminHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid admin id", http.StatusBadRequest)
		return
	}

	admin, err := h.AdminService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"admin": admin})
}

// GetByPseudonyme returns one administrator account looked up by login name,
// passed as the pseudonyme query parameter.
func (h *AdminHandler) GetByPseudonyme(w http.ResponseWriter, r *http.Request) {
	pseudonyme := r.URL.Query().Get("pseudonyme")
	if pseudonyme == "" {
		http.Error(w, "missing pseudonyme", http.StatusBadRequest)
		return
	}

	admin, err := h.AdminService.GetByPseudonyme(r.Context(), pseudonyme)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"admin": admin})
}
