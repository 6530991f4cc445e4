package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingDispatcher struct {
	updates []int64
	err     error
}

func (d *recordingDispatcher) Update(ctx context.Context, id int64, field string, value any) error {
	if field != "warningSent" || value != true {
		return errors.New("unexpected dispatch")
	}
	d.updates = append(d.updates, id)
	return d.err
}

type recordingSender struct {
	warned []string
	err    error
}

func (s *recordingSender) SendRegistration(toEmail, name string) error { return nil }

func (s *recordingSender) SendWarning(toEmail, name string) error {
	if s.err != nil {
		return s.err
	}
	s.warned = append(s.warned, toEmail)
	return nil
}

func TestSweepInactive(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	cutoff := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, name, email FROM players").
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(int64(3), "Yanis", "y@x.com").
			AddRow(int64(5), "Nora", "n@x.com"))

	dispatcher := &recordingDispatcher{}
	sender := &recordingSender{}

	sweepInactive(context.Background(), conn, dispatcher, sender, cutoff, zap.NewNop())

	require.NoError(t, mock.ExpectationsWereMet())
	require.Equal(t, []string{"y@x.com", "n@x.com"}, sender.warned)
	require.Equal(t, []int64{3, 5}, dispatcher.updates)
}

func TestSweepInactive_DeliveryFailureSkipsFlag(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	cutoff := time.Now()
	mock.ExpectQuery("SELECT id, name, email FROM players").
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(int64(3), "Yanis", "y@x.com"))

	dispatcher := &recordingDispatcher{}
	sender := &recordingSender{err: errors.New("relay down")}

	sweepInactive(context.Background(), conn, dispatcher, sender, cutoff, zap.NewNop())

	require.NoError(t, mock.ExpectationsWereMet())
	require.Empty(t, dispatcher.updates, "warningSent must stay false so the player is retried")
}

func TestSweepInactive_QueryFailure(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	cutoff := time.Now()
	mock.ExpectQuery("SELECT id, name, email FROM players").
		WithArgs(cutoff).
		WillReturnError(errors.New("connection reset"))

	dispatcher := &recordingDispatcher{}
	sender := &recordingSender{}

	sweepInactive(context.Background(), conn, dispatcher, sender, cutoff, zap.NewNop())

	require.NoError(t, mock.ExpectationsWereMet())
	require.Empty(t, sender.warned)
	require.Empty(t, dispatcher.updates)
}
