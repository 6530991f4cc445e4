package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/califeryan/goutte-server/internal/models"
)

func setupAdminMock(t *testing.T) (*PostgresAdminRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresAdminRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestGetAdminByPseudonyme_Found(t *testing.T) {
	repo, mock, cleanup := setupAdminMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, pseudonyme, password_hash FROM admins WHERE pseudonyme = $1`)).
		WithArgs("mumin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "pseudonyme", "password_hash"}).
			AddRow(int64(1000), "mumin", "$2a$10$hash"))

	admin, err := repo.GetByPseudonyme(context.Background(), "mumin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin.ID != 1000 || admin.Pseudonyme != "mumin" {
		t.Errorf("GetByPseudonyme = %+v", admin)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetAdminByPseudonyme_NotFound(t *testing.T) {
	repo, mock, cleanup := setupAdminMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, pseudonyme, password_hash FROM admins WHERE pseudonyme = $1`)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "pseudonyme", "password_hash"}))

	_, err := repo.GetByPseudonyme(context.Background(), "ghost")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("GetByPseudonyme error = %v; want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetAdminByID_Found(t *testing.T) {
	repo, mock, cleanup := setupAdminMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, pseudonyme, password_hash FROM admins WHERE id = $1`)).
		WithArgs(int64(1000)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "pseudonyme", "password_hash"}).
			AddRow(int64(1000), "mumin", "$2a$10$hash"))

	admin, err := repo.GetByID(context.Background(), 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin.Pseudonyme != "mumin" {
		t.Errorf("GetByID = %+v", admin)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCountAdmins(t *testing.T) {
	repo, mock, cleanup := setupAdminMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM admins`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d; want 1", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestMaxAdminID_EmptyTable(t *testing.T) {
	repo, mock, cleanup := setupAdminMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(MAX(id), 0) FROM admins`)).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(int64(0)))

	id, err := repo.MaxID(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 0 {
		t.Errorf("MaxID = %d; want 0", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestInsertAdmin(t *testing.T) {
	repo, mock, cleanup := setupAdminMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO admins (id, pseudonyme, password_hash) VALUES ($1, $2, $3)`)).
		WithArgs(int64(1001), "second", "$2a$10$hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), &models.AdminAccount{
		ID: 1001, Pseudonyme: "second", PasswordHash: "$2a$10$hash",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestInsertAdmin_DuplicatePseudonyme(t *testing.T) {
	repo, mock, cleanup := setupAdminMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO admins (id, pseudonyme, password_hash) VALUES ($1, $2, $3)`)).
		WithArgs(int64(1001), "mumin", "$2a$10$hash").
		WillReturnError(errors.New("duplicate key value violates unique constraint"))

	err := repo.Insert(context.Background(), &models.AdminAccount{
		ID: 1001, Pseudonyme: "mumin", PasswordHash: "$2a$10$hash",
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
