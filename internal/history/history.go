// Package history persists REPL input in a small SQLite database so
// sessions can be reviewed later.
package history

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id         TEXT PRIMARY KEY,
	entered_at INTEGER NOT NULL,
	source     TEXT NOT NULL,
	ok         INTEGER NOT NULL
);`

// Entry is one recorded snippet.
type Entry struct {
	ID        string
	EnteredAt time.Time
	Source    string
	OK        bool
}

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Append records one snippet with its acceptance outcome.
func (s *Store) Append(id, source string, ok bool) error {
	_, err := s.db.Exec(
		"INSERT INTO history (id, entered_at, source, ok) VALUES (?, ?, ?, ?)",
		id, time.Now().Unix(), source, boolToInt(ok),
	)
	return err
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		"SELECT id, entered_at, source, ok FROM history ORDER BY entered_at DESC, id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var enteredAt int64
		var ok int
		if err := rows.Scan(&e.ID, &enteredAt, &e.Source, &ok); err != nil {
			return nil, err
		}
		e.EnteredAt = time.Unix(enteredAt, 0)
		e.OK = ok == 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
