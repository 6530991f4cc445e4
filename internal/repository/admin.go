package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/califeryan/goutte-server/internal/models"
)

// PostgresAdminRepository implements administrator account persistence
// against a PostgreSQL database.
type PostgresAdminRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAdminRepository creates a new PostgresAdminRepository with the
// given database connection.
func NewPostgresAdminRepository(db *sql.DB) *PostgresAdminRepository {
	return &PostgresAdminRepository{DB: db}
}

// GetByPseudonyme fetches an administrator by login name. Returns
// models.ErrNotFound when no administrator matches.
func (s *PostgresAdminRepository) GetByPseudonyme(ctx context.Context, pseudonyme string) (*models.AdminAccount, error) {
	var a models.AdminAccount
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, pseudonyme, password_hash FROM admins WHERE pseudonyme = $1`,
		pseudonyme,
	).Scan(&a.ID, &a.Pseudonyme, &a.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get admin by pseudonyme: %w", err)
	}
	return &a, nil
}

// GetByID fetches an administrator by id. Returns models.ErrNotFound when no
// administrator matches.
func (s *PostgresAdminRepository) GetByID(ctx context.Context, id int64) (*models.AdminAccount, error) {
	var a models.AdminAccount
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, pseudonyme, password_hash FROM admins WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Pseudonyme, &a.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get admin by id: %w", err)
	}
	return &a, nil
}

// Count returns the number of administrator accounts.
func (s *PostgresAdminRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return n, nil
}

// MaxID returns the highest administrator id in use, or 0 when the table is
// empty. Used to place newly created administrators in the reserved range.
func (s *PostgresAdminRepository) MaxID(ctx context.Context) (int64, error) {
	var id int64
	err := s.DB.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM admins`).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("max admin id: %w", err)
	}
	return id, nil
}

// Insert persists a new administrator account. The pseudonyme must be unique;
// a conflict surfaces as a database error.
func (s *PostgresAdminRepository) Insert(ctx context.Context, a *models.AdminAccount) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO admins (id, pseudonyme, password_hash) VALUES ($1, $2, $3)
	`, a.ID, a.Pseudonyme, a.PasswordHash)
	if err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}
