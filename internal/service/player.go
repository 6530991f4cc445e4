// Package service provides business-logic services for player progression,
// the goal validation ledger, and administrator accounts, delegating
// persistence to repository interfaces.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/califeryan/goutte-server/internal/clock"
	"github.com/califeryan/goutte-server/internal/models"
)

// SequenceAllocator issues strictly increasing player ids.
type SequenceAllocator interface {
	// NextID returns a fresh id. Two overlapping calls never return the same
	// value.
	NextID(ctx context.Context) (int64, error)
}

// PasswordHasher is the external hashing capability. The service never
// stores or logs a raw password.
type PasswordHasher interface {
	Hash(raw string) (string, error)
}

// PlayerRepository defines the persistence operations required by the
// player service.
type PlayerRepository interface {
	Insert(ctx context.Context, p *models.Player) error
	GetByID(ctx context.Context, id int64) (*models.Player, error)
	GetNameByID(ctx context.Context, id int64) (string, error)
	List(ctx context.Context) ([]models.Player, error)
	FindByEmail(ctx context.Context, email string) (*models.Player, error)
	DeleteByID(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error

	SetName(ctx context.Context, id int64, name string) error
	SetEmail(ctx context.Context, id int64, email string) error
	SetPasswordHash(ctx context.Context, id int64, hash string) error
	SetGoal(ctx context.Context, id int64, slot models.GoalSlot, text string, at time.Time) (*models.GoalEntry, error)
	SetLevel(ctx context.Context, id int64, level int, at time.Time) error
	SetMoney(ctx context.Context, id int64, money int64) error
	SetEmailSent(ctx context.Context, id int64, sent bool) error
	SetWarningSent(ctx context.Context, id int64, sent bool) error
}

// PlayerService implements player creation, lookups, deletion, and the
// field-update dispatcher.
type PlayerService struct {
	repo      PlayerRepository
	allocator SequenceAllocator
	hasher    PasswordHasher
	clock     clock.Clock
}

// NewPlayerService constructs a PlayerService from its collaborators.
func NewPlayerService(repo PlayerRepository, allocator SequenceAllocator, hasher PasswordHasher, clk clock.Clock) *PlayerService {
	return &PlayerService{repo: repo, allocator: allocator, hasher: hasher, clock: clk}
}

// CreatePlayerParams carries the caller-supplied fields for registration.
// Goals beyond the first may be empty.
type CreatePlayerParams struct {
	Name       string
	Email      string
	Password   string
	Goal       string
	SecondGoal string
	ThirdGoal  string
}

// Create allocates an id, fills in the progression defaults, and persists the
// new player. The goal validation timestamps start one day in the past so the
// player can validate immediately. Email uniqueness is the caller's
// responsibility; Create does not re-check it.
func (s *PlayerService) Create(ctx context.Context, params CreatePlayerParams) (*models.Player, error) {
	id, err := s.allocator.NextID(ctx)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	dayBefore := now.Add(-24 * time.Hour)

	player := &models.Player{
		ID:                 id,
		Name:               params.Name,
		Email:              params.Email,
		PasswordHash:       hash,
		Goal:               params.Goal,
		SecondGoal:         params.SecondGoal,
		ThirdGoal:          params.ThirdGoal,
		DateValidate:       dayBefore,
		DateValidateSecond: dayBefore,
		DateValidateThird:  dayBefore,
		Level:              0,
		LastLevelUp:        now,
		Money:              0,
		CreationDate:       now,
		EmailSent:          false,
		WarningSent:        false,
	}

	if err := s.repo.Insert(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// GetByID fetches one player record.
func (s *PlayerService) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	return s.repo.GetByID(ctx, id)
}

// GetNameByID returns a player's display name.
func (s *PlayerService) GetNameByID(ctx context.Context, id int64) (string, error) {
	return s.repo.GetNameByID(ctx, id)
}

// List returns all players in no guaranteed order.
func (s *PlayerService) List(ctx context.Context) ([]models.Player, error) {
	return s.repo.List(ctx)
}

// FindByEmail returns the player registered with the given address.
func (s *PlayerService) FindByEmail(ctx context.Context, email string) (*models.Player, error) {
	return s.repo.FindByEmail(ctx, email)
}

// Delete removes one player. Idempotent.
func (s *PlayerService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteByID(ctx, id)
}

// DeleteAll irreversibly removes every player. The admin-secret gate lives at
// the HTTP layer; the service performs no gating of its own.
func (s *PlayerService) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

// Update routes a named-field update to its store mutation. It is the only
// mutation entry point for player fields after creation.
//
// Ids in the reserved administrator range are rejected outright. Goal-field
// updates also append one entry to the validation ledger, atomically with the
// field write. An unrecognized field name mutates nothing. Whether the caller
// is allowed to touch this id is the caller's concern, not Update's.
func (s *PlayerService) Update(ctx context.Context, id int64, field string, value any) error {
	if id >= models.AdminIDFloor {
		return models.ErrProtectedID
	}

	now := s.clock.Now()

	switch field {
	case "name":
		name, err := asString(value)
		if err != nil {
			return err
		}
		return s.repo.SetName(ctx, id, name)
	case "email":
		email, err := asString(value)
		if err != nil {
			return err
		}
		return s.repo.SetEmail(ctx, id, email)
	case "password":
		raw, err := asString(value)
		if err != nil {
			return err
		}
		hash, err := s.hasher.Hash(raw)
		if err != nil {
			return err
		}
		return s.repo.SetPasswordHash(ctx, id, hash)
	case "goal":
		return s.updateGoal(ctx, id, models.GoalFirst, value, now)
	case "secondGoal":
		return s.updateGoal(ctx, id, models.GoalSecond, value, now)
	case "thirdGoal":
		return s.updateGoal(ctx, id, models.GoalThird, value, now)
	case "level":
		level, err := asInt64(value)
		if err != nil {
			return err
		}
		return s.repo.SetLevel(ctx, id, int(level), now)
	case "money":
		money, err := asInt64(value)
		if err != nil {
			return err
		}
		return s.repo.SetMoney(ctx, id, money)
	case "emailSent":
		sent, err := asBool(value)
		if err != nil {
			return err
		}
		return s.repo.SetEmailSent(ctx, id, sent)
	case "warningSent":
		sent, err := asBool(value)
		if err != nil {
			return err
		}
		return s.repo.SetWarningSent(ctx, id, sent)
	default:
		return models.ErrUnknownField
	}
}

func (s *PlayerService) updateGoal(ctx context.Context, id int64, slot models.GoalSlot, value any, at time.Time) error {
	text, err := asString(value)
	if err != nil {
		return err
	}
	_, err = s.repo.SetGoal(ctx, id, slot, text, at)
	return err
}

// asString, asInt64 and asBool coerce decoded JSON values to the type a
// field expects. Wrong types surface as models.ErrInvalidValue.

func asString(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", models.ErrInvalidValue
	}
	return s, nil
}

func asInt64(value any) (int64, error) {
	switch v := value.(type) {
	case float64:
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, models.ErrInvalidValue
		}
		return n, nil
	default:
		return 0, models.ErrInvalidValue
	}
}

func asBool(value any) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, models.ErrInvalidValue
	}
	return b, nil
}
