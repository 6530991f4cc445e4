package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/califeryan/goutte-server/internal/models"
)

// goalColumns returns the goal column and its paired validation-timestamp
// column for a slot.
func goalColumns(slot models.GoalSlot) (string, string) {
	switch slot {
	case models.GoalSecond:
		return "second_goal", "date_validate_second"
	case models.GoalThird:
		return "third_goal", "date_validate_third"
	default:
		return "goal", "date_validate"
	}
}

const playerColumns = `id, name, email, password_hash, goal, second_goal, third_goal,
	date_validate, date_validate_second, date_validate_third,
	level, last_level_up, money, creation_date, email_sent, warning_sent`

// PostgresPlayerRepository implements player persistence against a
// PostgreSQL database.
type PostgresPlayerRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresPlayerRepository creates a new PostgresPlayerRepository using
// the provided *sql.DB.
func NewPostgresPlayerRepository(db *sql.DB) *PostgresPlayerRepository {
	return &PostgresPlayerRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (*models.Player, error) {
	var p models.Player
	err := row.Scan(
		&p.ID, &p.Name, &p.Email, &p.PasswordHash,
		&p.Goal, &p.SecondGoal, &p.ThirdGoal,
		&p.DateValidate, &p.DateValidateSecond, &p.DateValidateThird,
		&p.Level, &p.LastLevelUp, &p.Money, &p.CreationDate,
		&p.EmailSent, &p.WarningSent,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Insert persists a fully populated player record. The id must already have
// been issued by the sequence allocator.
func (s *PostgresPlayerRepository) Insert(ctx context.Context, p *models.Player) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO players (`+playerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`,
		p.ID, p.Name, p.Email, p.PasswordHash,
		p.Goal, p.SecondGoal, p.ThirdGoal,
		p.DateValidate, p.DateValidateSecond, p.DateValidateThird,
		p.Level, p.LastLevelUp, p.Money, p.CreationDate,
		p.EmailSent, p.WarningSent,
	)
	if err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

// GetByID fetches one player by id. Returns models.ErrNotFound when no
// player has that id.
func (s *PostgresPlayerRepository) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	}
	return p, nil
}

// GetNameByID returns just the display name of the player with the given id.
func (s *PostgresPlayerRepository) GetNameByID(ctx context.Context, id int64) (string, error) {
	var name string
	err := s.DB.QueryRowContext(ctx, `SELECT name FROM players WHERE id = $1`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get player name: %w", err)
	}
	return name, nil
}

// List fetches all players. Order is not guaranteed.
func (s *PostgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+playerColumns+` FROM players`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		players = append(players, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

// FindByEmail fetches the player registered with the given email address.
// Returns models.ErrNotFound when no player matches.
func (s *PostgresPlayerRepository) FindByEmail(ctx context.Context, email string) (*models.Player, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE email = $1`, email)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find player by email: %w", err)
	}
	return p, nil
}

// DeleteByID removes one player. Deleting a nonexistent id is not an error.
func (s *PostgresPlayerRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return nil
}

// DeleteAll removes every player record. The sequence counter is untouched,
// so ids are never reused afterwards. Gating this behind the admin secret is
// the caller's job.
func (s *PostgresPlayerRepository) DeleteAll(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("delete all players: %w", err)
	}
	return nil
}

// setColumn runs a single-column UPDATE and maps a missing row to
// models.ErrNotFound. column is always one of the fixed names passed by the
// typed setters below, never caller input.
func (s *PostgresPlayerRepository) setColumn(ctx context.Context, id int64, column string, value any) error {
	res, err := s.DB.ExecContext(ctx,
		fmt.Sprintf(`UPDATE players SET %s = $2 WHERE id = $1`, column), id, value)
	if err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}
	if rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SetName updates the player's display name.
func (s *PostgresPlayerRepository) SetName(ctx context.Context, id int64, name string) error {
	return s.setColumn(ctx, id, "name", name)
}

// SetEmail updates the player's email. Uniqueness is not re-checked here.
func (s *PostgresPlayerRepository) SetEmail(ctx context.Context, id int64, email string) error {
	return s.setColumn(ctx, id, "email", email)
}

// SetPasswordHash stores a new password hash for the player.
func (s *PostgresPlayerRepository) SetPasswordHash(ctx context.Context, id int64, hash string) error {
	return s.setColumn(ctx, id, "password_hash", hash)
}

// SetMoney updates the player's currency balance.
func (s *PostgresPlayerRepository) SetMoney(ctx context.Context, id int64, money int64) error {
	return s.setColumn(ctx, id, "money", money)
}

// SetEmailSent updates the registration-email delivery flag.
func (s *PostgresPlayerRepository) SetEmailSent(ctx context.Context, id int64, sent bool) error {
	return s.setColumn(ctx, id, "email_sent", sent)
}

// SetWarningSent updates the warning-email delivery flag.
func (s *PostgresPlayerRepository) SetWarningSent(ctx context.Context, id int64, sent bool) error {
	return s.setColumn(ctx, id, "warning_sent", sent)
}

// SetLevel updates the player's level and refreshes the last-level-up
// timestamp.
func (s *PostgresPlayerRepository) SetLevel(ctx context.Context, id int64, level int, at time.Time) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE players SET level = $2, last_level_up = $3 WHERE id = $1`, id, level, at)
	if err != nil {
		return fmt.Errorf("update level: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update level: %w", err)
	}
	if rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SetGoal updates one goal slot together with its validation timestamp and
// appends the matching ledger entry, all in one transaction. The ledger entry
// denormalizes the player's current name. Either both writes land or neither
// does.
func (s *PostgresPlayerRepository) SetGoal(ctx context.Context, id int64, slot models.GoalSlot, text string, at time.Time) (*models.GoalEntry, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var name string
	err = tx.QueryRowContext(ctx, `SELECT name FROM players WHERE id = $1`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read player name: %w", err)
	}

	goalCol, dateCol := goalColumns(slot)
	_, err = tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE players SET %s = $2, %s = $3 WHERE id = $1`, goalCol, dateCol),
		id, text, at)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", goalCol, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO goal_entries (player_id, name, done_goal, done_date)
		VALUES ($1, $2, $3, $4)
	`, id, name, text, at)
	if err != nil {
		return nil, fmt.Errorf("append goal entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &models.GoalEntry{PlayerID: id, Name: name, DoneGoal: text, DoneDate: at}, nil
}
