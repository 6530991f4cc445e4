package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupGoalMock(t *testing.T) (*PostgresGoalRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresGoalRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

var goalColumnNames = []string{"player_id", "name", "done_goal", "done_date"}

func TestAppendGoal(t *testing.T) {
	repo, mock, cleanup := setupGoalMock(t)
	defer cleanup()

	at := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec(`INSERT INTO goal_entries`).
		WithArgs(int64(7), "Yanis", "lire 10 pages", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry, err := repo.Append(context.Background(), 7, "Yanis", "lire 10 pages", at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.PlayerID != 7 || entry.DoneGoal != "lire 10 pages" {
		t.Errorf("Append entry = %+v", entry)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListGoals(t *testing.T) {
	repo, mock, cleanup := setupGoalMock(t)
	defer cleanup()

	at := time.Now()
	rows := sqlmock.NewRows(goalColumnNames).
		AddRow(int64(7), "Yanis", "lire 10 pages", at).
		AddRow(int64(8), "Nora", "courir 5km", at)
	mock.ExpectQuery(`SELECT player_id, name, done_goal, done_date FROM goal_entries`).
		WillReturnRows(rows)

	entries, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List returned %d entries; want 2", len(entries))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListGoalsByPlayer(t *testing.T) {
	repo, mock, cleanup := setupGoalMock(t)
	defer cleanup()

	at := time.Now()
	mock.ExpectQuery(`SELECT player_id, name, done_goal, done_date FROM goal_entries WHERE player_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(goalColumnNames).AddRow(int64(7), "Yanis", "lire 10 pages", at))

	entries, err := repo.ListByPlayer(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].PlayerID != 7 {
		t.Errorf("ListByPlayer = %+v", entries)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListGoalsByPlayer_Empty(t *testing.T) {
	repo, mock, cleanup := setupGoalMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT player_id, name, done_goal, done_date FROM goal_entries WHERE player_id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(goalColumnNames))

	entries, err := repo.ListByPlayer(context.Background(), 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("ListByPlayer = %+v; want empty", entries)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListGoals_QueryError(t *testing.T) {
	repo, mock, cleanup := setupGoalMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT player_id, name, done_goal, done_date FROM goal_entries`).
		WillReturnError(errors.New("query failed"))

	if _, err := repo.List(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
