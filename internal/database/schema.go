package database

// schema holds the application tables. Price history lives in separate
// per-symbol read-only databases, not here.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS holdings (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		ticker      TEXT NOT NULL,
		shares      REAL NOT NULL,
		entry_price REAL NOT NULL,
		asset_class TEXT NOT NULL DEFAULT 'equity',
		planned     INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS holding_scores (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		holding_id INTEGER NOT NULL REFERENCES holdings(id) ON DELETE CASCADE,
		risk       REAL NOT NULL,
		action     TEXT NOT NULL,
		scored_at  TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS simulation_runs (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol     TEXT NOT NULL,
		params     TEXT NOT NULL,
		stats      TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_simulation_runs_created
		ON simulation_runs(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_holding_scores_holding
		ON holding_scores(holding_id, scored_at DESC)`,
}
