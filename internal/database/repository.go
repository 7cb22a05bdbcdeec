package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ComputationRecord is one stored engine invocation.
type ComputationRecord struct {
	ID          uuid.UUID `json:"id"`
	Position    string    `json:"position"`
	Level       int       `json:"level"`
	Column      int       `json:"column"`
	SideToMove  string    `json:"side_to_move"`
	MovesPlayed int       `json:"moves_played"`
	WinningMove bool      `json:"winning_move"`
	DurationMs  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// EngineStats aggregates the computation log.
type EngineStats struct {
	TotalComputations int64         `json:"total_computations"`
	AverageDurationMs float64       `json:"average_duration_ms"`
	WinningMoves      int64         `json:"winning_moves"`
	ByLevel           map[int]int64 `json:"by_level"`
	ByColumn          map[int]int64 `json:"by_column"`
}

// RecordComputation inserts one computed-move record.
func (p *PostgresDB) RecordComputation(rec ComputationRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO computations (
			id, position, level, chosen_column, side_to_move,
			moves_played, winning_move, duration_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := p.db.Exec(query,
		rec.ID,
		rec.Position,
		rec.Level,
		rec.Column,
		rec.SideToMove,
		rec.MovesPlayed,
		rec.WinningMove,
		rec.DurationMs,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record computation: %w", err)
	}

	return nil
}

// GetStats returns aggregate statistics over every stored computation.
func (p *PostgresDB) GetStats() (*EngineStats, error) {
	stats := &EngineStats{
		ByLevel:  make(map[int]int64),
		ByColumn: make(map[int]int64),
	}

	query := `
		SELECT COUNT(*),
		       COALESCE(AVG(duration_ms), 0),
		       COALESCE(SUM(CASE WHEN winning_move THEN 1 ELSE 0 END), 0)
		FROM computations
	`
	err := p.db.QueryRow(query).Scan(
		&stats.TotalComputations,
		&stats.AverageDurationMs,
		&stats.WinningMoves,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate computations: %w", err)
	}

	if err := p.countBy("level", stats.ByLevel); err != nil {
		return nil, err
	}
	if err := p.countBy("chosen_column", stats.ByColumn); err != nil {
		return nil, err
	}

	return stats, nil
}

func (p *PostgresDB) countBy(column string, into map[int]int64) error {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM computations GROUP BY %s`, column, column)

	rows, err := p.db.Query(query)
	if err != nil {
		return fmt.Errorf("failed to group computations by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key int
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("failed to scan %s group: %w", column, err)
		}
		into[key] = count
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating %s groups: %w", column, err)
	}

	return nil
}

// RecentComputations returns the newest records first.
func (p *PostgresDB) RecentComputations(limit int) ([]ComputationRecord, error) {
	query := `
		SELECT id, position, level, chosen_column, side_to_move,
		       moves_played, winning_move, duration_ms, created_at
		FROM computations
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := p.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent computations: %w", err)
	}
	defer rows.Close()

	var records []ComputationRecord
	for rows.Next() {
		var rec ComputationRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Position,
			&rec.Level,
			&rec.Column,
			&rec.SideToMove,
			&rec.MovesPlayed,
			&rec.WinningMove,
			&rec.DurationMs,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan computation: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating computations: %w", err)
	}

	return records, nil
}
