package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"testpick/internal/domain"
)

// Save prepends the results to the history, newest first, and trims it to the limit.
func (s *JSONStorage) Save(results ...domain.RunResult) error {
	if len(results) == 0 {
		return nil
	}

	entries, err := s.Load()
	if err != nil {
		return err
	}

	now := s.now()
	fresh := make([]domain.HistoryEntry, 0, len(results)+len(entries))
	// the last result given is the most recent one
	for i := len(results) - 1; i >= 0; i-- {
		fresh = append(fresh, NewEntry(results[i], now))
	}
	fresh = append(fresh, entries...)
	if s.limit > 0 && len(fresh) > s.limit {
		fresh = fresh[:s.limit]
	}

	data, err := json.MarshalIndent(domain.History{Entries: fresh}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// Load reads the history, newest first. A missing file is an empty history.
func (s *JSONStorage) Load() ([]domain.HistoryEntry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}

	var history domain.History
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return history.Entries, nil
}

// Last returns the most recent run
func (s *JSONStorage) Last() (*domain.HistoryEntry, error) {
	entries, err := s.Load()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoHistory
	}
	return &entries[0], nil
}
