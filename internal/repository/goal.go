package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/califeryan/goutte-server/internal/models"
)

// PostgresGoalRepository implements the append-only goal validation ledger
// against a PostgreSQL database. Entries are never updated or deleted.
type PostgresGoalRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresGoalRepository creates a new PostgresGoalRepository using the
// provided *sql.DB.
func NewPostgresGoalRepository(db *sql.DB) *PostgresGoalRepository {
	return &PostgresGoalRepository{DB: db}
}

// Append records one goal validation. There is no dedup and no validation of
// the goal text; the ledger accepts whatever the dispatcher hands it.
func (s *PostgresGoalRepository) Append(ctx context.Context, playerID int64, name, doneGoal string, at time.Time) (*models.GoalEntry, error) {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO goal_entries (player_id, name, done_goal, done_date)
		VALUES ($1, $2, $3, $4)
	`, playerID, name, doneGoal, at)
	if err != nil {
		return nil, fmt.Errorf("append goal entry: %w", err)
	}
	return &models.GoalEntry{PlayerID: playerID, Name: name, DoneGoal: doneGoal, DoneDate: at}, nil
}

func scanGoalEntries(rows *sql.Rows) ([]models.GoalEntry, error) {
	var entries []models.GoalEntry
	for rows.Next() {
		var e models.GoalEntry
		if err := rows.Scan(&e.PlayerID, &e.Name, &e.DoneGoal, &e.DoneDate); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// List fetches every ledger entry.
func (s *PostgresGoalRepository) List(ctx context.Context) ([]models.GoalEntry, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT player_id, name, done_goal, done_date FROM goal_entries`)
	if err != nil {
		return nil, fmt.Errorf("list goal entries: %w", err)
	}
	defer rows.Close()
	return scanGoalEntries(rows)
}

// ListByPlayer fetches the ledger entries recorded for one player id.
func (s *PostgresGoalRepository) ListByPlayer(ctx context.Context, playerID int64) ([]models.GoalEntry, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT player_id, name, done_goal, done_date FROM goal_entries WHERE player_id = $1`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list goal entries by player: %w", err)
	}
	defer rows.Close()
	return scanGoalEntries(rows)
}
