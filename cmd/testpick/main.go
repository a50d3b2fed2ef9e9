package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"testpick/internal/cli"
	"testpick/internal/cli/commands"
	"testpick/internal/config"
	"testpick/internal/picker"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "testpick FILE [LINE]",
		Short: "Print the command that runs the test under a line",
		Long: `testpick finds the test around a line of a test file, together with the
classes or modules enclosing it, and prints the command that runs only that
test with the language's test runner (pytest, cargo test, go test, PHPUnit).`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "testpick",
	})

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, logger)

	// Register all commands
	cmds.Register(rootCmd, &flags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	switch {
	case err == nil:
		return
	case errors.Is(err, picker.ErrNoTests), errors.Is(err, picker.ErrUnknownFileType):
		logger.Debug("nothing located", "err", err)
		fmt.Fprintln(os.Stderr, "Unable to find any tests")
	case errors.Is(err, commands.ErrTestsFailed):
		// the summary has already been printed
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}
