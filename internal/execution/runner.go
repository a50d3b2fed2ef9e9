package execution

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"testpick/internal/domain"
	"testpick/internal/parser"
)

// Runner executes a single rendered command through the shell
type Runner struct {
	shell  string
	stream io.Writer
}

// NewRunner creates a new Runner using sh
func NewRunner() *Runner {
	return &Runner{shell: "sh"}
}

// Stream makes the runner copy command output to w while capturing it
func (r *Runner) Stream(w io.Writer) *Runner {
	r.stream = w
	return r
}

// Run executes the invocation and waits for it to finish
func (r *Runner) Run(ctx context.Context, inv domain.Invocation) domain.RunResult {
	start := time.Now()

	cmd := exec.CommandContext(ctx, r.shell, "-c", inv.Command)
	cmd.Dir = inv.Dir
	cmd.Env = os.Environ()

	var output bytes.Buffer
	var w io.Writer = &output
	if r.stream != nil {
		w = io.MultiWriter(&output, r.stream)
	}
	cmd.Stdout = w
	cmd.Stderr = w

	err := cmd.Run()

	result := domain.RunResult{
		Invocation: inv,
		Success:    err == nil,
		Output:     output.String(),
		Duration:   time.Since(start),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		result.ExitCode = -1
		result.Error = err
	}

	result.Summary = parser.Summarize(inv.Language, result.Output, result.Success)
	return result
}

// Execute runs the invocations one after another in input order
func (r *Runner) Execute(ctx context.Context, invocations []domain.Invocation) ([]domain.RunResult, time.Duration, error) {
	start := time.Now()

	results := make([]domain.RunResult, 0, len(invocations))
	for _, inv := range invocations {
		if err := ctx.Err(); err != nil {
			return results, time.Since(start), err
		}
		results = append(results, r.Run(ctx, inv))
	}
	return results, time.Since(start), nil
}
