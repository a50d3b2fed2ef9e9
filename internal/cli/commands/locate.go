package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"testpick/internal/domain"
	"testpick/internal/picker"
	"testpick/internal/ui"
)

// LocateCommand prints the command for the test under a cursor position
type LocateCommand struct {
	env *env
}

// NewLocateCommand creates a new LocateCommand
func NewLocateCommand(e *env) *LocateCommand {
	return &LocateCommand{env: e}
}

// Execute runs the command
func (lc *LocateCommand) Execute(cmd *cobra.Command, args []string) error {
	req := domain.Request{
		File:    args[0],
		Full:    lc.env.cfg.Flags.Full,
		Verbose: lc.env.cfg.Flags.Verbose,
	}
	if len(args) > 1 {
		line, err := parseLine(args[1])
		if err != nil {
			return err
		}
		// nothing precedes line 0, so no test can be found above it
		if line == 0 && !req.Full {
			if _, err := lc.env.registry.For(req.File); err != nil {
				return err
			}
			return fmt.Errorf("%w in %s at line 0", picker.ErrNoTests, req.File)
		}
		req.Line = line
	}

	command, err := lc.env.registry.Command(req)
	if err != nil {
		return err
	}

	ui.NewFormatter(cmd.OutOrStdout(), "").PrintCommand(command)
	return nil
}
