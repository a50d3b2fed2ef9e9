package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"testpick/internal/domain"
	"testpick/internal/picker"
	"testpick/internal/ui"
)

// PickCommand lets the user choose a test of a file interactively
type PickCommand struct {
	env *env
}

// NewPickCommand creates a new PickCommand
func NewPickCommand(e *env) *PickCommand {
	return &PickCommand{env: e}
}

// Execute runs the command
func (pc *PickCommand) Execute(cmd *cobra.Command, args []string) error {
	file := args[0]

	p, err := pc.env.registry.For(file)
	if err != nil {
		return err
	}

	entries, err := pc.env.registry.Enumerate(file)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w in %s", picker.ErrNoTests, file)
	}

	chosen, err := pc.env.viewer.Pick(file, entries)
	if err != nil {
		return err
	}
	if chosen == nil {
		return nil
	}

	if !pc.env.cfg.Flags.Run {
		ui.NewFormatter(cmd.OutOrStdout(), "").PrintCommand(chosen.Command)
		return nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	return execute(cmd, pc.env, []domain.Invocation{{
		Target:   fmt.Sprintf("%s:%d", file, chosen.Line),
		Language: p.Language(),
		Command:  chosen.Command,
		Dir:      dir,
	}})
}
