package commands

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"testpick/internal/domain"
	"testpick/internal/storage"
	"testpick/internal/ui"
)

// LastCommand shows or repeats the most recent run
type LastCommand struct {
	env *env
}

// NewLastCommand creates a new LastCommand
func NewLastCommand(e *env) *LastCommand {
	return &LastCommand{env: e}
}

// Execute runs the command
func (lc *LastCommand) Execute(cmd *cobra.Command, args []string) error {
	entry, err := lc.env.storage.Last()
	if errors.Is(err, storage.ErrNoHistory) {
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No recorded runs yet")
		return nil
	}
	if err != nil {
		return err
	}

	if !lc.env.cfg.Flags.Run {
		ui.NewFormatter(cmd.OutOrStdout(), "").PrintHistoryEntry(entry)
		return nil
	}

	return execute(cmd, lc.env, []domain.Invocation{{
		Target:   entry.Target,
		Language: entry.Language,
		Command:  entry.Command,
		Dir:      entry.Dir,
	}})
}
