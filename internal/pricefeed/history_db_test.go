package pricefeed

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func fixtureEnd() time.Time {
	return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
}

func writeFixtureDB(t *testing.T, dir, symbol string, rows [][2]interface{}) {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(dir, symbol+".db"))
	if err != nil {
		t.Fatalf("failed to create fixture database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE daily_prices (date TEXT PRIMARY KEY, close_price REAL)`); err != nil {
		t.Fatalf("failed to create fixture table: %v", err)
	}
	for _, row := range rows {
		if _, err := db.Exec(`INSERT INTO daily_prices (date, close_price) VALUES (?, ?)`, row[0], row[1]); err != nil {
			t.Fatalf("failed to insert fixture row: %v", err)
		}
	}
}

func TestHistoryDB_History(t *testing.T) {
	dir := t.TempDir()
	writeFixtureDB(t, dir, "ACME", [][2]interface{}{
		{"2024-01-03", 102.5},
		{"2024-01-01", 100.0},
		{"2024-01-02", 0.0}, // dropped
		{"2024-01-04", -5.0}, // dropped
	})

	h := NewHistoryDB(dir, zerolog.Nop())
	prices, err := h.History("acme")
	if err != nil {
		t.Fatalf("History error: %v", err)
	}

	if len(prices) != 2 {
		t.Fatalf("price count = %d, want 2 (non-positive rows dropped)", len(prices))
	}
	if prices[0].Price != 100.0 || prices[1].Price != 102.5 {
		t.Errorf("prices = %+v, want ascending by date", prices)
	}
	if prices[0].Timestamp >= prices[1].Timestamp {
		t.Error("timestamps not ascending")
	}
}

func TestHistoryDB_MissingSymbol(t *testing.T) {
	h := NewHistoryDB(t.TempDir(), zerolog.Nop())
	if _, err := h.History("GHOST"); err == nil {
		t.Error("expected error for missing history database")
	}
}

func TestHistoryDB_RejectsPathTraversal(t *testing.T) {
	h := NewHistoryDB(t.TempDir(), zerolog.Nop())
	for _, symbol := range []string{"", "../etc", "a/b"} {
		if _, err := h.History(symbol); err == nil {
			t.Errorf("expected error for symbol %q", symbol)
		}
	}
}

func TestFeed_FallsBackToSynthetic(t *testing.T) {
	history := NewHistoryDB(t.TempDir(), zerolog.Nop())
	synthetic := NewSynthetic(100, fixtureEnd())
	feed := NewFeed(history, synthetic, zerolog.Nop())

	prices, err := feed.History("GHOST")
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(prices) != 100 {
		t.Errorf("fallback series length = %d, want 100", len(prices))
	}
}

func TestFeed_PrefersRealHistory(t *testing.T) {
	dir := t.TempDir()
	writeFixtureDB(t, dir, "ACME", [][2]interface{}{
		{"2024-01-01", 100.0},
		{"2024-01-02", 101.0},
	})

	feed := NewFeed(NewHistoryDB(dir, zerolog.Nop()), NewSynthetic(100, fixtureEnd()), zerolog.Nop())

	prices, err := feed.History("ACME")
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(prices) != 2 {
		t.Errorf("series length = %d, want 2 from the history database", len(prices))
	}
}
