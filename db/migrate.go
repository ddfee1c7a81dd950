package db

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order on every startup; all statements are idempotent.
// The users <-> teams foreign keys are circular, so both tables are created
// first and the users.team_id constraint is attached afterwards.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id          SERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		creator_id  INTEGER NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT teams_name_key UNIQUE (name)
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id            SERIAL PRIMARY KEY,
		username      TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		full_name     TEXT NOT NULL,
		email         TEXT NOT NULL,
		gender        TEXT CHECK (gender IN ('Male', 'Female', 'Other')),
		age_group     TEXT CHECK (age_group IN ('18-25', '26-35', '36-45', '46-55', '56+')),
		location      TEXT,
		team_id       INTEGER,
		avatar_key    TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT users_username_key UNIQUE (username),
		CONSTRAINT users_email_key UNIQUE (email)
	)`,

	`DO $$ BEGIN
		ALTER TABLE users ADD CONSTRAINT users_team_id_fkey
			FOREIGN KEY (team_id) REFERENCES teams (id) ON DELETE SET NULL;
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`DO $$ BEGIN
		ALTER TABLE teams ADD CONSTRAINT teams_creator_id_fkey
			FOREIGN KEY (creator_id) REFERENCES users (id);
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`CREATE TABLE IF NOT EXISTS sports (
		id              SERIAL PRIMARY KEY,
		name            TEXT NOT NULL,
		unit            TEXT NOT NULL,
		points_per_unit DOUBLE PRECISION NOT NULL CHECK (points_per_unit >= 0),
		description     TEXT NOT NULL DEFAULT '',
		CONSTRAINT sports_name_key UNIQUE (name)
	)`,

	`CREATE TABLE IF NOT EXISTS performances (
		id            SERIAL PRIMARY KEY,
		user_id       INTEGER NOT NULL,
		sport_id      INTEGER NOT NULL,
		value         DOUBLE PRECISION NOT NULL CHECK (value >= 0),
		points        DOUBLE PRECISION NOT NULL,
		date_recorded DATE NOT NULL,
		notes         TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT performances_user_id_fkey FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT performances_sport_id_fkey FOREIGN KEY (sport_id) REFERENCES sports (id)
	)`,

	`CREATE INDEX IF NOT EXISTS performances_user_id_idx ON performances (user_id, date_recorded DESC)`,
	`CREATE INDEX IF NOT EXISTS performances_sport_id_idx ON performances (sport_id)`,
	`CREATE INDEX IF NOT EXISTS users_team_id_idx ON users (team_id)`,
}

type seedSport struct {
	name          string
	unit          string
	pointsPerUnit float64
	description   string
}

// defaultSports is the fixed catalogue the application ships with. Rates are
// only applied to rows that do not exist yet, so operator edits survive
// restarts.
var defaultSports = []seedSport{
	{"Running", "km", 10.0, "Distance running - 10 points per km"},
	{"Cycling", "km", 3.0, "Cycling - 3 points per km"},
	{"Swimming", "km", 50.0, "Swimming - 50 points per km"},
	{"Walking", "km", 5.0, "Walking - 5 points per km"},
	{"Push-ups", "reps", 0.5, "Push-ups - 0.5 points per rep"},
	{"Sit-ups", "reps", 0.3, "Sit-ups - 0.3 points per rep"},
	{"Plank", "minutes", 2.0, "Plank hold - 2 points per minute"},
	{"Yoga", "sessions", 15.0, "Yoga session (30 min) - 15 points per session"},
	{"Weight Training", "sessions", 20.0, "Weight training (45 min) - 20 points per session"},
	{"Basketball", "hours", 12.0, "Basketball - 12 points per hour"},
	{"Tennis", "hours", 15.0, "Tennis - 15 points per hour"},
	{"Football/Soccer", "hours", 18.0, "Football/Soccer - 18 points per hour"},
}

// Migrate creates the schema and seeds the default sport catalogue.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	const insert = `
		INSERT INTO sports (name, unit, points_per_unit, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING`

	for _, s := range defaultSports {
		if _, err := db.ExecContext(ctx, insert, s.name, s.unit, s.pointsPerUnit, s.description); err != nil {
			return fmt.Errorf("failed to seed sport %q: %w", s.name, err)
		}
	}

	return nil
}
