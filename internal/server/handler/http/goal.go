package http

import (
	"context"
	"net/http"

	"github.com/califeryan/goutte-server/internal/models"
)

// GoalService defines the ledger reads required by the HTTP handlers.
type GoalService interface {
	List(ctx context.Context) ([]models.GoalEntry, error)
	ListByPlayer(ctx context.Context, playerID int64) ([]models.GoalEntry, error)
}

// GoalHandler handles HTTP requests for the goal validation ledger.
type GoalHandler struct {
	// GoalService performs the underlying ledger reads.
	GoalService GoalService
}

// List returns the full validation history.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.GoalService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if goals == nil {
		goals = []models.GoalEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"goals": goals})
}

// ListByPlayer returns the validation history for one player id.
func (h *GoalHandler) ListByPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid player id", http.StatusBadRequest)
		return
	}

	goals, err := h.GoalService.ListByPlayer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if goals == nil {
		goals = []models.GoalEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"goals": goals})
}
