package pricefeed

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/rs/zerolog"

	"github.com/aristath/dca-lab/internal/domain"
)

// HistoryDB provides read-only access to per-symbol historical price
// databases, one SQLite file per symbol under the history directory.
type HistoryDB struct {
	historyDir string
	log        zerolog.Logger
}

// NewHistoryDB creates a new history database accessor
func NewHistoryDB(historyDir string, log zerolog.Logger) *HistoryDB {
	return &HistoryDB{
		historyDir: historyDir,
		log:        log.With().Str("component", "history_db").Logger(),
	}
}

// History fetches the symbol's full daily close series in ascending order.
// Non-positive prices are dropped here so the risk computer never sees them.
func (h *HistoryDB) History(symbol string) ([]domain.PricePoint, error) {
	db, err := h.open(symbol)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `
		SELECT date, close_price
		FROM daily_prices
		ORDER BY date ASC
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily prices: %w", err)
	}
	defer rows.Close()

	var prices []domain.PricePoint
	for rows.Next() {
		var date string
		var closePrice float64

		if err := rows.Scan(&date, &closePrice); err != nil {
			return nil, fmt.Errorf("failed to scan daily price: %w", err)
		}

		if closePrice <= 0 {
			continue
		}

		t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
		if err != nil {
			h.log.Warn().Str("symbol", symbol).Str("date", date).Msg("Skipping unparseable price date")
			continue
		}

		prices = append(prices, domain.PricePoint{
			Timestamp: t.UnixMilli(),
			Price:     closePrice,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily prices: %w", err)
	}

	return prices, nil
}

// open opens the symbol's history database read-only
func (h *HistoryDB) open(symbol string) (*sql.DB, error) {
	safe := strings.ToUpper(strings.TrimSpace(symbol))
	if safe == "" || strings.ContainsAny(safe, "/\\") {
		return nil, fmt.Errorf("invalid symbol %q", symbol)
	}

	path := filepath.Join(h.historyDir, safe+".db")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no history database for %s: %w", safe, err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database for %s: %w", safe, err)
	}

	return db, nil
}
