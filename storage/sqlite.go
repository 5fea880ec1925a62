package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLStore keeps the high score and history in a SQLite database.
// The driver is either "sqlite3" (cgo) or "sqlite" (pure Go).
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(driver, path string) (*SQLStore, error) {
	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLStore{db: db}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the tables if they do not exist
func (s *SQLStore) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS high_score (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			score INTEGER NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score INTEGER NOT NULL,
			played_at INTEGER NOT NULL
		)`,
	}
	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

func (s *SQLStore) LoadHighScore() (int, error) {
	var score int
	err := s.db.QueryRow(`SELECT score FROM high_score WHERE id = 1`).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load high score: %w", err)
	}
	return score, nil
}

func (s *SQLStore) SaveHighScore(score int) error {
	_, err := s.db.Exec(`
	INSERT INTO high_score (id, score, updated_at)
	VALUES (1, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
		score = excluded.score,
		updated_at = CURRENT_TIMESTAMP`, score)
	if err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	return nil
}

func (s *SQLStore) RecordScore(score int, at time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO scores (score, played_at) VALUES (?, ?)`, score, at.UnixMilli()); err != nil {
		return fmt.Errorf("record score: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM scores WHERE id NOT IN (SELECT id FROM scores ORDER BY id DESC LIMIT ?)`, HistoryLimit); err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return tx.Commit()
}

func (s *SQLStore) RecentScores(n int) ([]int, error) {
	if n <= 0 {
		n = HistoryLimit
	}
	rows, err := s.db.Query(`SELECT score FROM scores ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("recent scores: %w", err)
	}
	defer rows.Close()

	out := make([]int, 0, n)
	for rows.Next() {
		var score int
		if err := rows.Scan(&score); err != nil {
			return nil, err
		}
		out = append(out, score)
	}
	return out, rows.Err()
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
