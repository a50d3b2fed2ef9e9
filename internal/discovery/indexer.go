package discovery

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"testpick/internal/domain"
)

// Enumerator lists the tests declared in a single file
type Enumerator interface {
	Enumerate(file string) ([]domain.TestEntry, error)
}

// FileTests holds the tests found in one file
type FileTests struct {
	File    string
	Entries []domain.TestEntry
}

// Indexer enumerates the tests of many files concurrently
type Indexer struct {
	enumerator Enumerator
	workers    int
}

// NewIndexer creates an Indexer running at most workers enumerations at once
func NewIndexer(enumerator Enumerator, workers int) *Indexer {
	if workers < 1 {
		workers = 1
	}
	return &Indexer{enumerator: enumerator, workers: workers}
}

// Index enumerates every file and returns the results in input order. Files
// without tests are omitted. progress, when set, is called after each file.
// The first enumeration error cancels the remaining work.
func (ix *Indexer) Index(ctx context.Context, files []string, progress func(done, total int)) ([]FileTests, error) {
	results := make([][]domain.TestEntry, len(files))

	var mu sync.Mutex
	done := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.workers)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			entries, err := ix.enumerator.Enumerate(file)
			if err != nil {
				return err
			}
			results[i] = entries

			if progress != nil {
				mu.Lock()
				done++
				progress(done, len(files))
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []FileTests
	for i, entries := range results {
		if len(entries) > 0 {
			out = append(out, FileTests{File: files[i], Entries: entries})
		}
	}
	return out, nil
}
