package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS players (
    id BIGINT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    goal TEXT NOT NULL DEFAULT '',
    second_goal TEXT NOT NULL DEFAULT '',
    third_goal TEXT NOT NULL DEFAULT '',
    date_validate TIMESTAMPTZ NOT NULL,
    date_validate_second TIMESTAMPTZ NOT NULL,
    date_validate_third TIMESTAMPTZ NOT NULL,
    level INT NOT NULL DEFAULT 0,
    last_level_up TIMESTAMPTZ NOT NULL,
    money BIGINT NOT NULL DEFAULT 0,
    creation_date TIMESTAMPTZ NOT NULL,
    email_sent BOOLEAN NOT NULL DEFAULT FALSE,
    warning_sent BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS goal_entries (
    player_id BIGINT NOT NULL,
    name TEXT NOT NULL,
    done_goal TEXT NOT NULL,
    done_date TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS admins (
    id BIGINT PRIMARY KEY,
    pseudonyme TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS counters (
    name TEXT PRIMARY KEY,
    value BIGINT NOT NULL
);
`

// playerCounterSeed creates the player id counter at 0 so the first issued
// id is 1. Running it again is a no-op, which keeps the counter monotonic
// across restarts.
const playerCounterSeed = `
INSERT INTO counters (name, value) VALUES ('players', 0)
ON CONFLICT (name) DO NOTHING;
`

// InitPostgres opens the database, verifies the connection, and creates the
// schema plus the sequence counter record. It must run once at startup
// before any allocation happens.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if _, err := db.Exec(playerCounterSeed); err != nil {
		return nil, fmt.Errorf("seed counter: %w", err)
	}

	return db, nil
}
