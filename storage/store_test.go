package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var playedAt = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func openBackend(t *testing.T, backend string) Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "scores")
	if backend == BackendJSON {
		path += ".json"
	} else {
		path += ".db"
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
	}
	s, err := Open(backend, path)
	if err != nil {
		if backend == BackendSQLite3 {
			t.Skipf("cgo sqlite driver unavailable: %v", err)
		}
		t.Fatalf("Open(%s): %v", backend, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreContract(t *testing.T) {
	for _, backend := range []string{BackendJSON, BackendSQLite, BackendSQLite3, BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			s := openBackend(t, backend)

			high, err := s.LoadHighScore()
			if err != nil || high != 0 {
				t.Fatalf("empty store: %d, %v", high, err)
			}
			if err := s.SaveHighScore(12); err != nil {
				t.Fatal(err)
			}
			if err := s.SaveHighScore(15); err != nil {
				t.Fatal(err)
			}
			if high, _ := s.LoadHighScore(); high != 15 {
				t.Errorf("high score = %d, want 15", high)
			}

			for _, score := range []int{3, 9, 15} {
				if err := s.RecordScore(score, playedAt); err != nil {
					t.Fatal(err)
				}
			}
			got, err := s.RecentScores(2)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 2 || got[0] != 15 || got[1] != 9 {
				t.Errorf("RecentScores(2) = %v, want [15 9]", got)
			}
			all, _ := s.RecentScores(0)
			if len(all) != 3 {
				t.Errorf("RecentScores(0) = %v", all)
			}
		})
	}
}

func TestHistoryIsCapped(t *testing.T) {
	for _, backend := range []string{BackendJSON, BackendSQLite, BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			s := openBackend(t, backend)
			for i := 0; i < HistoryLimit+5; i++ {
				if err := s.RecordScore(i, playedAt); err != nil {
					t.Fatal(err)
				}
			}
			all, err := s.RecentScores(0)
			if err != nil {
				t.Fatal(err)
			}
			if len(all) != HistoryLimit || all[0] != HistoryLimit+4 {
				t.Errorf("history len %d first %d", len(all), all[0])
			}
		})
	}
}

func TestJSONStoreFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamestats.json")
	s := NewJSONStore(path)
	s.SaveHighScore(7)
	s.RecordScore(7, playedAt)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var stats Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatal(err)
	}
	if stats.HighScore != 7 || len(stats.ScoreHistory) != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamestats.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewJSONStore(path)
	if _, err := s.LoadHighScore(); err == nil {
		t.Error("expected a decode error")
	}
	if err := s.SaveHighScore(4); err != nil {
		t.Fatalf("save over corrupt file: %v", err)
	}
	if high, err := s.LoadHighScore(); err != nil || high != 4 {
		t.Errorf("after save: %d, %v", high, err)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("redis", "x"); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("err = %v", err)
	}
}
