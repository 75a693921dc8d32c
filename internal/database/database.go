package database

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/coolcalc/internal/config"
)

func Connect() (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", config.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// schema sticks to types Postgres and SQLite both accept.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS form_state (
		form_key   TEXT PRIMARY KEY,
		room_type  TEXT NOT NULL,
		stage      TEXT NOT NULL,
		payload    TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS calculations (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		room_type  TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		final_kw   DOUBLE PRECISION NOT NULL,
		total_tr   DOUBLE PRECISION NOT NULL,
		summary    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS calculations_user_created ON calculations (user_id, created_at)`,
}

func Migrate(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}
