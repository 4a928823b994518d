package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// NewConnection opens and verifies a Postgres connection from a DSN.
func NewConnection(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
