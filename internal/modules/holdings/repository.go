package holdings

import (
	"database/sql"
	"fmt"

	"github.com/aristath/dca-lab/internal/database"
	"github.com/aristath/dca-lab/internal/domain"
)

// Repository provides holdings persistence
type Repository struct {
	db *database.DB
}

// NewRepository creates a new holdings repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns every holding, planned ones included
func (r *Repository) GetAll() ([]Holding, error) {
	rows, err := r.db.Query(
		`SELECT id, ticker, shares, entry_price, asset_class, planned, created_at
		 FROM holdings
		 ORDER BY ticker ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	var holdings []Holding
	for rows.Next() {
		var h Holding
		var planned int
		var assetClass string

		if err := rows.Scan(&h.ID, &h.Ticker, &h.Shares, &h.EntryPrice, &assetClass, &planned, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		h.AssetClass = domain.AssetClass(assetClass)
		h.Planned = planned != 0

		holdings = append(holdings, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}

	return holdings, nil
}

// Get returns one holding by id
func (r *Repository) Get(id int64) (*Holding, error) {
	var h Holding
	var planned int
	var assetClass string

	err := r.db.QueryRow(
		`SELECT id, ticker, shares, entry_price, asset_class, planned, created_at
		 FROM holdings WHERE id = ?`, id,
	).Scan(&h.ID, &h.Ticker, &h.Shares, &h.EntryPrice, &assetClass, &planned, &h.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}

	h.AssetClass = domain.AssetClass(assetClass)
	h.Planned = planned != 0
	return &h, nil
}

// Create inserts a holding and returns its id
func (r *Repository) Create(h Holding) (int64, error) {
	planned := 0
	if h.Planned {
		planned = 1
	}

	res, err := r.db.Exec(
		`INSERT INTO holdings (ticker, shares, entry_price, asset_class, planned)
		 VALUES (?, ?, ?, ?, ?)`,
		h.Ticker, h.Shares, h.EntryPrice, string(h.AssetClass), planned,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert holding: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get holding id: %w", err)
	}

	return id, nil
}

// Update rewrites a holding's mutable fields
func (r *Repository) Update(h Holding) error {
	planned := 0
	if h.Planned {
		planned = 1
	}

	_, err := r.db.Exec(
		`UPDATE holdings SET ticker = ?, shares = ?, entry_price = ?, asset_class = ?, planned = ?
		 WHERE id = ?`,
		h.Ticker, h.Shares, h.EntryPrice, string(h.AssetClass), planned, h.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}

	return nil
}

// Delete removes a holding
func (r *Repository) Delete(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM holdings WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	return nil
}

// SaveScore records a scored snapshot for a holding
func (r *Repository) SaveScore(holdingID int64, riskScore float64, action string) error {
	_, err := r.db.Exec(
		`INSERT INTO holding_scores (holding_id, risk, action) VALUES (?, ?, ?)`,
		holdingID, riskScore, action,
	)
	if err != nil {
		return fmt.Errorf("failed to insert holding score: %w", err)
	}
	return nil
}
