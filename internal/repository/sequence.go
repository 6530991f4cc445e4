// Package repository provides Postgres persistence for players, goal
// validations, administrators, and the id sequence counter.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/califeryan/goutte-server/internal/models"
)

// PostgresSequenceRepository implements id allocation against a single
// counter row in the counters table.
type PostgresSequenceRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSequenceRepository creates a new PostgresSequenceRepository with
// the given database connection.
func NewPostgresSequenceRepository(db *sql.DB) *PostgresSequenceRepository {
	return &PostgresSequenceRepository{DB: db}
}

// NextID increments the player counter and returns the new value. The
// read-increment-write runs as a single UPDATE ... RETURNING statement, so
// concurrent calls can never observe the same prior value. Returns
// models.ErrAllocatorUninitialized if the counter row was never seeded.
func (s *PostgresSequenceRepository) NextID(ctx context.Context) (int64, error) {
	var id int64
	err := s.DB.QueryRowContext(
		ctx,
		`UPDATE counters SET value = value + 1 WHERE name = 'players' RETURNING value`,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, models.ErrAllocatorUninitialized
	}
	if err != nil {
		return 0, fmt.Errorf("next id: %w", err)
	}
	return id, nil
}
