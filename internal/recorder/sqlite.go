package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists refresh outcomes to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read while the watcher writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quote_snapshots (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			item_id    TEXT NOT NULL,
			symbol     TEXT NOT NULL,
			price      REAL,
			price_gram REAL,
			prev_close REAL,
			change_abs REAL,
			change_pct REAL,
			error      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quote_ts ON quote_snapshots(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_quote_item ON quote_snapshots(item_id)`,

		`CREATE TABLE IF NOT EXISTS history_fetches (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			item_id    TEXT NOT NULL,
			window_key TEXT NOT NULL,
			points     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_ts ON history_fetches(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRefresh writes one row per tracked item for a settled batch.
func (r *SQLiteRecorder) RecordRefresh(snap *RefreshSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := snap.At.Unix()
	for _, it := range snap.Items {
		var price, priceGram, prevClose, change, changePct float64
		if q := it.Quote; q != nil {
			price = q.Price
			priceGram = q.PriceGram
			prevClose = q.PrevClose
			change = q.Change
			changePct = q.ChangePct
		}
		_, err := r.db.Exec(`INSERT INTO quote_snapshots
			(timestamp, item_id, symbol, price, price_gram, prev_close, change_abs, change_pct, error)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			ts, it.ID, string(it.Symbol),
			price, priceGram, prevClose, change, changePct, it.Err,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordHistoryFetch(evt *HistoryFetch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO history_fetches
		(timestamp, item_id, window_key, points)
		VALUES (?,?,?,?)`,
		time.Now().Unix(), evt.ItemID, string(evt.Window), evt.Points,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
