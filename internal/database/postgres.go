package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresDB stores computed-move records and serves the aggregate
// statistics behind /api/stats. The engine itself never reads from it.
type PostgresDB struct {
	db *sql.DB
}

// NewPostgresDB opens the connection, verifies it and bootstraps the
// schema.
func NewPostgresDB(databaseURL string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pgDB := &PostgresDB{db: db}
	if err := pgDB.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return pgDB, nil
}

func (p *PostgresDB) Close() error {
	return p.db.Close()
}

func (p *PostgresDB) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS computations (
			id UUID PRIMARY KEY,
			position TEXT NOT NULL,
			level INTEGER NOT NULL,
			chosen_column INTEGER NOT NULL,
			side_to_move VARCHAR(8) NOT NULL,
			moves_played INTEGER NOT NULL,
			winning_move BOOLEAN DEFAULT FALSE,
			duration_ms BIGINT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_computations_level ON computations(level)`,
		`CREATE INDEX IF NOT EXISTS idx_computations_column ON computations(chosen_column)`,
		`CREATE INDEX IF NOT EXISTS idx_computations_created_at ON computations(created_at)`,
	}

	for _, query := range queries {
		if _, err := p.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}
