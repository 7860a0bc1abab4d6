package simulation

import (
	"encoding/json"
	"fmt"

	"github.com/aristath/dca-lab/internal/database"
)

// Repository persists run summaries to the application database. Full
// ledgers stay in memory only; the stored summary is enough for the recent
// runs listing.
type Repository struct {
	db *database.DB
}

// NewRepository creates a new simulation repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// RunRecord is a persisted run summary
type RunRecord struct {
	ID        int64  `json:"id"`
	Symbol    string `json:"symbol"`
	Params    Params `json:"params"`
	Stats     Stats  `json:"stats"`
	CreatedAt string `json:"created_at"`
}

// SaveRun stores one run summary
func (r *Repository) SaveRun(symbol string, params Params, stats Stats) error {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT INTO simulation_runs (symbol, params, stats) VALUES (?, ?, ?)`,
		symbol, string(paramsJSON), string(statsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert simulation run: %w", err)
	}

	return nil
}

// Recent returns the most recent run summaries, newest first
func (r *Repository) Recent(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(
		`SELECT id, symbol, params, stats, created_at
		 FROM simulation_runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query simulation runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var paramsJSON, statsJSON string

		if err := rows.Scan(&rec.ID, &rec.Symbol, &paramsJSON, &statsJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan simulation run: %w", err)
		}

		if err := json.Unmarshal([]byte(paramsJSON), &rec.Params); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run params: %w", err)
		}
		if err := json.Unmarshal([]byte(statsJSON), &rec.Stats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run stats: %w", err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating simulation runs: %w", err)
	}

	return records, nil
}
