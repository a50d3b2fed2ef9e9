package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"testpick/internal/domain"
	"testpick/internal/execution"
	"testpick/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	env *env
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(e *env) *RunCommand {
	return &RunCommand{env: e}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	invocations := make([]domain.Invocation, 0, len(args))
	for _, target := range args {
		inv, err := rc.env.invocation(target)
		if err != nil {
			return err
		}
		rc.env.logger.Debug("rendered target", "target", target, "command", inv.Command)
		invocations = append(invocations, inv)
	}

	return execute(cmd, rc.env, invocations)
}

// execute runs the invocations, records them in the history and prints the
// summary. A single invocation streams its output to the terminal.
func execute(cmd *cobra.Command, e *env, invocations []domain.Invocation) error {
	var executor execution.Executor
	workers := 1

	if len(invocations) == 1 {
		executor = execution.NewRunner().Stream(cmd.OutOrStdout())
	} else {
		workers = e.cfg.GetWorkers()
		pool := execution.NewWorkerPool(workers, execution.NewRunner(), e.cfg.Flags.FailFast)
		pool.SetProgress(ui.NewProgressBar(len(invocations)))
		executor = pool
	}

	results, duration, err := executor.Execute(cmd.Context(), invocations)
	if err != nil {
		return err
	}

	// Save results
	if err := e.storage.Save(results...); err != nil {
		return fmt.Errorf("failed to save run history: %w", err)
	}

	ui.NewFormatter(cmd.OutOrStdout(), "").PrintRunSummary(results, duration, workers)

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d target(s)", ErrTestsFailed, failed, len(results))
	}
	return nil
}
