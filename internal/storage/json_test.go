package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testpick/internal/config"
	"testpick/internal/domain"
)

func newTestStorage(t *testing.T, limit int) *JSONStorage {
	t.Helper()
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	cfg.HistoryLimit = limit

	s := NewJSONStorage(cfg)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func result(command string, success bool) domain.RunResult {
	return domain.RunResult{
		Invocation: domain.Invocation{Target: "main_test.go:21", Language: domain.LanguageGo, Command: command},
		Success:    success,
		Duration:   1500 * time.Millisecond,
		Summary:    domain.RunSummary{Passed: 3, Failed: 1, Failures: []string{"TestB"}},
	}
}

func TestJSONStorage_Last(t *testing.T) {
	s := newTestStorage(t, 5)

	_, err := s.Last()
	assert.ErrorIs(t, err, ErrNoHistory)

	require.NoError(t, s.Save(result("go test -run TestA", true)))
	require.NoError(t, s.Save(result("go test -run TestB", false)))

	last, err := s.Last()
	require.NoError(t, err)
	assert.Equal(t, "go test -run TestB", last.Command)
	assert.False(t, last.Success)
	assert.Equal(t, []string{"TestB"}, last.Failures)
	assert.Equal(t, "1.5s", last.Duration)
	assert.Equal(t, 1.5, last.DurationSeconds)
	assert.Equal(t, "2024-05-01T12:00:00Z", last.Timestamp)
}

func TestJSONStorage_SaveOrderAndLimit(t *testing.T) {
	s := newTestStorage(t, 3)

	require.NoError(t, s.Save(result("one", true)))
	require.NoError(t, s.Save(result("two", true), result("three", true)))
	require.NoError(t, s.Save(result("four", true)))

	entries, err := s.Load()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "four", entries[0].Command)
	assert.Equal(t, "three", entries[1].Command)
	assert.Equal(t, "two", entries[2].Command)
}

func TestJSONStorage_SaveNothing(t *testing.T) {
	s := newTestStorage(t, 3)

	require.NoError(t, s.Save())
	_, err := os.Stat(s.path)
	assert.True(t, os.IsNotExist(err))
}

func TestJSONStorage_LoadCorrupt(t *testing.T) {
	s := newTestStorage(t, 3)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.path), 0755))
	require.NoError(t, os.WriteFile(s.path, []byte("{not json"), 0644))

	_, err := s.Load()
	assert.ErrorContains(t, err, "parse history")
}
