package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `CREATE TABLE IF NOT EXISTS keysTable (
	key TEXT PRIMARY KEY,
	flags INTEGER NOT NULL,
	bytes INTEGER,
	dataBlock TEXT
)`

const upsertQuery = `INSERT OR REPLACE INTO keysTable(key, flags, bytes, dataBlock) VALUES (?, ?, ?, ?)`
const deleteQuery = `DELETE FROM keysTable WHERE key = ?`
const listAllQuery = `SELECT key, flags, bytes, dataBlock FROM keysTable`

// SQLiteStore is the Store implementation backing the server. It
// holds one shared *sql.DB: database/sql's own connection pool
// serializes statements against the file, so a single handle is safe
// for every connection to share.
type SQLiteStore struct {
	db *sql.DB
}

// Open creates (if absent) the schema at path and returns a ready
// Store. path is resolved by the caller — storage itself does not
// know about the executable's directory.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	// SQLite only allows one writer at a time; pinning the pool to a
	// single connection turns database/sql's pool itself into the
	// serialization point for every caller sharing this handle.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Upsert(key string, flags uint16, n int, dataBlock []byte) error {
	_, err := s.db.Exec(upsertQuery, key, flags, n, dataBlock)
	if err != nil {
		return fmt.Errorf("storage: upsert %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) MultiGet(keys []string) ([]Entry, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		placeholders[i] = "?"
		args[i] = k
	}

	query := fmt.Sprintf(
		"SELECT key, flags, bytes, dataBlock FROM keysTable WHERE key IN (%s)",
		strings.Join(placeholders, ", "),
	)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: multiget: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (s *SQLiteStore) Delete(key string) (int64, error) {
	res, err := s.db.Exec(deleteQuery, key)
	if err != nil {
		return 0, fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) ListAll() ([]Entry, error) {
	rows, err := s.db.Query(listAllQuery)
	if err != nil {
		return nil, fmt.Errorf("storage: list all: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Flags, &e.Bytes, &e.DataBlock); err != nil {
			return nil, fmt.Errorf("storage: scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration: %w", err)
	}
	return entries, nil
}
