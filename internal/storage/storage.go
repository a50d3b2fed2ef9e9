package storage

import (
	"errors"
	"time"

	"testpick/internal/config"
	"testpick/internal/domain"
)

// ErrNoHistory is returned when no run has been recorded yet
var ErrNoHistory = errors.New("no recorded runs")

// Storage persists and loads the run history (e.g. for the last command).
type Storage interface {
	Save(results ...domain.RunResult) error
	Load() ([]domain.HistoryEntry, error)
	Last() (*domain.HistoryEntry, error)
}

// JSONStorage stores the history in a JSON file under the project directory.
type JSONStorage struct {
	path  string
	limit int
	now   func() time.Time
}

// NewJSONStorage returns a Storage that reads/writes the config's history path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{
		path:  cfg.GetHistoryPath(),
		limit: cfg.HistoryLimit,
		now:   time.Now,
	}
}

// NewEntry converts a run result into a history entry
func NewEntry(result domain.RunResult, at time.Time) domain.HistoryEntry {
	return domain.HistoryEntry{
		Target:          result.Invocation.Target,
		Language:        result.Invocation.Language,
		Command:         result.Invocation.Command,
		Dir:             result.Invocation.Dir,
		Success:         result.Success,
		ExitCode:        result.ExitCode,
		Passed:          result.Summary.Passed,
		Failed:          result.Summary.Failed,
		Failures:        result.Summary.Failures,
		Duration:        result.Duration.String(),
		DurationSeconds: result.Duration.Seconds(),
		Timestamp:       at.Format(time.RFC3339),
	}
}
