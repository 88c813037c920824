// Package history records connection events in a local SQLite database.
// The log is informational only: session state itself lives in the PID
// file, and recording failures never abort an operation.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/yllada/ocmgr/common"
)

// Event kinds recorded in the log.
const (
	KindConnect    = "connect"
	KindDisconnect = "disconnect"
	KindStale      = "stale-cleanup"
)

// Event is one recorded connection event.
type Event struct {
	ID     string
	Time   time.Time
	Kind   string
	Server string
	PID    int
}

// Store is a handle to the history database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id     TEXT PRIMARY KEY,
	ts     INTEGER NOT NULL,
	kind   TEXT NOT NULL,
	server TEXT NOT NULL,
	pid    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS events_ts ON events (ts DESC);
`

// Open opens (creating if needed) the history database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// DefaultPath returns the history database path under the user's data
// directory.
func DefaultPath() (string, error) {
	dataDir, err := common.GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, common.HistoryFileName), nil
}

// Record appends an event to the log.
func (s *Store) Record(kind, server string, pid int) error {
	_, err := s.db.Exec(
		"INSERT INTO events (id, ts, kind, server, pid) VALUES (?, ?, ?, ?, ?)",
		uuid.NewString(), time.Now().UnixNano(), kind, server, pid,
	)
	if err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}
	return nil
}

// Recent returns the most recent events, newest first.
func (s *Store) Recent(limit int) ([]Event, error) {
	rows, err := s.db.Query(
		"SELECT id, ts, kind, server, pid FROM events ORDER BY ts DESC, id LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var ts int64
		if err := rows.Scan(&e.ID, &ts, &e.Kind, &e.Server, &e.PID); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Time = time.Unix(0, ts)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
