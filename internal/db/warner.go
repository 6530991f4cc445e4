package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/califeryan/goutte-server/internal/mailer"
)

// Dispatcher is the field-update entry point the warner flips warningSent
// through after a successful delivery.
type Dispatcher interface {
	Update(ctx context.Context, id int64, field string, value any) error
}

// StartInactivityWarner periodically scans for players who have not validated
// any goal since the threshold and have not been warned yet, sends them the
// warning email, and marks warningSent through the dispatcher. The flag only
// flips when delivery succeeded, so an unreachable relay means the player is
// retried on the next sweep.
func StartInactivityWarner(
	ctx context.Context,
	db *sql.DB,
	dispatcher Dispatcher,
	sender mailer.Sender,
	interval time.Duration,
	threshold time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sweepInactive(ctx, db, dispatcher, sender, time.Now().Add(-threshold), log)
			}
		}
	}()
}

// sweepInactive runs one scan pass: every unwarned player whose latest goal
// validation predates the cutoff gets the warning email.
func sweepInactive(
	ctx context.Context,
	db *sql.DB,
	dispatcher Dispatcher,
	sender mailer.Sender,
	cutoff time.Time,
	log *zap.Logger,
) {
	rows, err := db.QueryContext(ctx, `
        SELECT id, name, email FROM players
         WHERE warning_sent = false
           AND GREATEST(date_validate, date_validate_second, date_validate_third) < $1
    `, cutoff)
	if err != nil {
		log.Error("failed to scan for inactive players", zap.Error(err))
		return
	}

	type target struct {
		id          int64
		name, email string
	}
	var targets []target
	for rows.Next() {
		var t target
		if err := rows.Scan(&t.id, &t.name, &t.email); err != nil {
			log.Error("failed to scan inactive player", zap.Error(err))
			break
		}
		targets = append(targets, t)
	}
	rows.Close()

	for _, t := range targets {
		if err := sender.SendWarning(t.email, t.name); err != nil {
			log.Error("failed to send warning email",
				zap.Int64("player", t.id), zap.Error(err))
			continue
		}
		if err := dispatcher.Update(ctx, t.id, "warningSent", true); err != nil {
			log.Error("failed to mark warning sent",
				zap.Int64("player", t.id), zap.Error(err))
			continue
		}
		log.Info("warned inactive player", zap.Int64("player", t.id))
	}
}
