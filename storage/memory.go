package storage

import (
	"sync"
	"time"
)

// MemoryStore keeps everything in process, for tests and -store=memory
type MemoryStore struct {
	mu      sync.Mutex
	high    int
	history []int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) LoadHighScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.high, nil
}

func (m *MemoryStore) SaveHighScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.high = score
	return nil
}

func (m *MemoryStore) RecordScore(score int, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = trim(append(m.history, score))
	return nil
}

func (m *MemoryStore) RecentScores(n int) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return recent(m.history, n), nil
}

func (m *MemoryStore) Close() error { return nil }
