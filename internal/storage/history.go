package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"gtp/internal/domain"
)

// History keeps one row per processor run in a local sqlite database, so
// failure trends survive report overwrites.
type History struct {
	path string
}

// NewHistory returns a History backed by the sqlite file at path. The file
// and its schema are created on first use.
func NewHistory(path string) *History {
	return &History{path: path}
}

const historySchema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	total_suites INTEGER NOT NULL,
	failed_suites INTEGER NOT NULL,
	checks INTEGER NOT NULL,
	errors INTEGER NOT NULL,
	duration_seconds REAL NOT NULL
)`

func (h *History) open() (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite3", h.path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return db, nil
}

// Append records one run.
func (h *History) Append(rec domain.HistoryRecord) error {
	db, err := h.open()
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec(
		`INSERT INTO runs (timestamp, total_suites, failed_suites, checks, errors, duration_seconds)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Timestamp, rec.TotalSuites, rec.FailedSuites, rec.Checks, rec.Errors, rec.DurationSeconds,
	)
	if err != nil {
		return fmt.Errorf("insert history record: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first. A limit of 0 or less
// returns everything.
func (h *History) List(limit int) ([]domain.HistoryRecord, error) {
	db, err := h.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `SELECT id, timestamp, total_suites, failed_suites, checks, errors, duration_seconds
		FROM runs ORDER BY id DESC`
	var rows *sql.Rows
	if limit > 0 {
		rows, err = db.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []domain.HistoryRecord
	for rows.Next() {
		var rec domain.HistoryRecord
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.TotalSuites, &rec.FailedSuites,
			&rec.Checks, &rec.Errors, &rec.DurationSeconds); err != nil {
			return nil, fmt.Errorf("scan history record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
