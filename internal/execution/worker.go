package execution

import (
	"context"
	"sync"
	"time"

	"testpick/internal/domain"
	"testpick/internal/ui"
)

// WorkerPool manages a pool of workers for parallel command execution
type WorkerPool struct {
	workers  int
	failFast bool
	runner   *Runner
	progress *ui.ProgressBar
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(workers int, runner *Runner, failFast bool) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	return &WorkerPool{
		workers:  workers,
		failFast: failFast,
		runner:   runner,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute runs every invocation and returns the results in input order.
// With fail-fast, no new invocation starts after the first failure and the
// results of skipped invocations are left out.
func (wp *WorkerPool) Execute(ctx context.Context, invocations []domain.Invocation) ([]domain.RunResult, time.Duration, error) {
	if len(invocations) == 0 {
		return nil, 0, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		index int
		inv   domain.Invocation
	}

	queue := make(chan job)
	go func() {
		defer close(queue)
		for i, inv := range invocations {
			select {
			case <-ctx.Done():
				return
			case queue <- job{index: i, inv: inv}:
			}
		}
	}()

	results := make([]*domain.RunResult, len(invocations))

	var mu sync.Mutex
	var completed, passedCases, failedCases int
	var seenFailure bool
	startTime := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < wp.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				result := wp.runner.Run(ctx, j.inv)

				mu.Lock()
				if wp.failFast && seenFailure {
					mu.Unlock()
					continue
				}
				results[j.index] = &result
				completed++
				passedCases += result.Summary.Passed
				failedCases += result.Summary.Failed
				if wp.progress != nil {
					wp.progress.Update(completed, passedCases, failedCases)
				}
				if wp.failFast && !result.Success {
					seenFailure = true
					cancel()
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wp.progress != nil {
		wp.progress.Finish()
	}

	var out []domain.RunResult
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}

	if err := ctx.Err(); err != nil && !seenFailure {
		return out, time.Since(startTime), err
	}
	return out, time.Since(startTime), nil
}
