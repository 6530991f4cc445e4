package service

import (
	"context"

	"github.com/califeryan/goutte-server/internal/models"
)

// AdminRepository defines the persistence operations required by the
// administrator service.
type AdminRepository interface {
	GetByPseudonyme(ctx context.Context, pseudonyme string) (*models.AdminAccount, error)
	GetByID(ctx context.Context, id int64) (*models.AdminAccount, error)
	Count(ctx context.Context) (int, error)
	MaxID(ctx context.Context) (int64, error)
	Insert(ctx context.Context, a *models.AdminAccount) error
}

// AdminService implements administrator account lookups, creation, and the
// one-time bootstrap seed.
type AdminService struct {
	repo   AdminRepository
	hasher PasswordHasher
}

// NewAdminService constructs an AdminService from its collaborators.
func NewAdminService(repo AdminRepository, hasher PasswordHasher) *AdminService {
	return &AdminService{repo: repo, hasher: hasher}
}

// GetByPseudonyme fetches an administrator by login name.
func (s *AdminService) GetByPseudonyme(ctx context.Context, pseudonyme string) (*models.AdminAccount, error) {
	return s.repo.GetByPseudonyme(ctx, pseudonyme)
}

// GetByID fetches an administrator by id.
func (s *AdminService) GetByID(ctx context.Context, id int64) (*models.AdminAccount, error) {
	return s.repo.GetByID(ctx, id)
}

// Bootstrap seeds the first administrator account if the store is empty. It
// runs the password through the same hashing capability used for players and
// places the account at the bottom of the reserved id range. Running it again
// on a non-empty store is a no-op.
func (s *AdminService) Bootstrap(ctx context.Context, pseudonyme, password string) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	return s.repo.Insert(ctx, &models.AdminAccount{
		ID:           models.AdminIDFloor,
		Pseudonyme:   pseudonyme,
		PasswordHash: hash,
	})
}

// Create adds an administrator with the next free id in the reserved range.
// The shared-secret gate on this operation belongs to the HTTP layer.
func (s *AdminService) Create(ctx context.Context, pseudonyme, password string) (*models.AdminAccount, error) {
	maxID, err := s.repo.MaxID(ctx)
	if err != nil {
		return nil, err
	}
	id := maxID + 1
	if id < models.AdminIDFloor {
		id = models.AdminIDFloor
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	admin := &models.AdminAccount{ID: id, Pseudonyme: pseudonyme, PasswordHash: hash}
	if err := s.repo.Insert(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}
