// Package storage persists the high score and the history of finished games.
package storage

import (
	"errors"
	"fmt"
	"time"
)

// HistoryLimit caps how many finished games a store remembers
const HistoryLimit = 100

var ErrUnknownBackend = errors.New("unknown store backend")

// Store is the persistence contract used by the game and the web API.
// Implementations are safe for concurrent use.
type Store interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
	RecordScore(score int, at time.Time) error
	// RecentScores returns up to n scores, most recent first
	RecentScores(n int) ([]int, error)
	Close() error
}

// Stats is the JSON document kept on disk
type Stats struct {
	HighScore    int   `json:"highScore"`
	ScoreHistory []int `json:"scoreHistory"`
}

const (
	BackendJSON    = "json"
	BackendSQLite3 = "sqlite3" // cgo driver
	BackendSQLite  = "sqlite"  // pure Go driver
	BackendMemory  = "memory"
)

// Open creates the store for backend at path
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendJSON:
		return NewJSONStore(path), nil
	case BackendSQLite3, BackendSQLite:
		return NewSQLStore(backend, path)
	case BackendMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

func recent(history []int, n int) []int {
	if n <= 0 || n > len(history) {
		n = len(history)
	}
	out := make([]int, 0, n)
	for i := len(history) - 1; i >= len(history)-n; i-- {
		out = append(out, history[i])
	}
	return out
}

func trim(history []int) []int {
	if len(history) > HistoryLimit {
		history = history[len(history)-HistoryLimit:]
	}
	return history
}
