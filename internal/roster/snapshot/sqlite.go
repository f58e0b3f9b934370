package snapshot

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"caseboard/internal/client"
)

// storageKey is the single kv row the roster snapshot lives under.
const storageKey = "clients"

// SQLite stores the snapshot in a one-row key-value table inside a SQLite
// database file. The pure-Go driver keeps the binary free of cgo.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// kv table exists.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Load() ([]client.Client, bool, error) {
	var raw []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, storageKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot: %w", err)
	}
	clients, err := decode(raw)
	if err != nil {
		return nil, false, err
	}
	return clients, true, nil
}

func (s *SQLite) Save(clients []client.Client) error {
	data, err := encode(clients)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`, storageKey, data)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
