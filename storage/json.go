package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// JSONStore keeps Stats in a single indented JSON file
type JSONStore struct {
	mu   sync.Mutex
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) load() (Stats, error) {
	var stats Stats
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return stats, nil
	}
	if err != nil {
		return stats, fmt.Errorf("read stats: %w", err)
	}
	if err := json.Unmarshal(data, &stats); err != nil {
		return stats, fmt.Errorf("decode stats: %w", err)
	}
	return stats, nil
}

func (s *JSONStore) save(stats Stats) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *JSONStore) LoadHighScore() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats, err := s.load()
	return stats.HighScore, err
}

func (s *JSONStore) SaveHighScore(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats, err := s.load()
	if err != nil {
		// a corrupt file is replaced rather than blocking new records
		stats = Stats{}
	}
	stats.HighScore = score
	return s.save(stats)
}

func (s *JSONStore) RecordScore(score int, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats, err := s.load()
	if err != nil {
		return err
	}
	stats.ScoreHistory = trim(append(stats.ScoreHistory, score))
	return s.save(stats)
}

func (s *JSONStore) RecentScores(n int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats, err := s.load()
	if err != nil {
		return nil, err
	}
	return recent(stats.ScoreHistory, n), nil
}

func (s *JSONStore) Close() error { return nil }
