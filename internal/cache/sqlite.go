package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockBoard/internal/model"
)

// SQLiteStore keeps the memo cache in a SQLite database. The default DSN
// is an in-memory database, so cached series still live and die with the
// process; pointing it at a file is possible but not the intended use.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps an in-memory database alive across calls.
	db.SetMaxOpenConns(1)

	if !strings.Contains(dsn, ":memory:") {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite cache opened: %s", dsn)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS series_cache (
		symbol     TEXT NOT NULL,
		days       INTEGER NOT NULL,
		name       TEXT NOT NULL,
		points     TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (symbol, days, name)
	)`)
	return err
}

func (s *SQLiteStore) Get(key Key) (model.PriceSeries, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw string
	err := s.db.QueryRow(
		`SELECT points FROM series_cache WHERE symbol = ? AND days = ? AND name = ?`,
		key.Symbol, key.Days, key.Name,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return model.PriceSeries{}, false, nil
	}
	if err != nil {
		return model.PriceSeries{}, false, fmt.Errorf("cache get: %w", err)
	}

	var points []model.PricePoint
	if err := json.Unmarshal([]byte(raw), &points); err != nil {
		return model.PriceSeries{}, false, fmt.Errorf("cache decode: %w", err)
	}
	return model.PriceSeries{Name: key.Name, Symbol: key.Symbol, Points: points}, true, nil
}

func (s *SQLiteStore) Put(key Key, series model.PriceSeries) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(series.Points)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO series_cache (symbol, days, name, points, created_at) VALUES (?,?,?,?,?)`,
		key.Symbol, key.Days, key.Name, string(raw), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite cache")
	return s.db.Close()
}
