package service

import (
	"context"
	"time"

	"github.com/califeryan/goutte-server/internal/models"
)

// GoalRepository defines the persistence operations needed by the
// GoalService. The ledger is append-only; there is no update or delete.
type GoalRepository interface {
	// Append records one goal validation and returns the stored entry.
	Append(ctx context.Context, playerID int64, name, doneGoal string, at time.Time) (*models.GoalEntry, error)
	// List retrieves every ledger entry.
	List(ctx context.Context) ([]models.GoalEntry, error)
	// ListByPlayer retrieves the ledger entries for one player id.
	ListByPlayer(ctx context.Context, playerID int64) ([]models.GoalEntry, error)
}

// GoalService exposes read access to the goal validation ledger.
type GoalService struct {
	// repo is the underlying persistence repository.
	repo GoalRepository
}

// NewGoalService constructs a GoalService with the provided GoalRepository.
func NewGoalService(repo GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

// List returns the full validation history.
func (s *GoalService) List(ctx context.Context) ([]models.GoalEntry, error) {
	return s.repo.List(ctx)
}

// ListByPlayer returns the validation history recorded for one player id.
// The entries survive player deletion; the id is a lookup key only.
func (s *GoalService) ListByPlayer(ctx context.Context, playerID int64) ([]models.GoalEntry, error) {
	return s.repo.ListByPlayer(ctx, playerID)
}
