package execution

import (
	"context"
	"time"

	"testpick/internal/domain"
)

// Executor executes rendered test commands and returns their results
type Executor interface {
	Execute(ctx context.Context, invocations []domain.Invocation) ([]domain.RunResult, time.Duration, error)
}
