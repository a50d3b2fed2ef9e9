package commands

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"testpick/internal/cli"
	"testpick/internal/config"
	"testpick/internal/discovery"
	"testpick/internal/domain"
	"testpick/internal/picker"
	"testpick/internal/storage"
	"testpick/internal/ui"
)

// ErrTestsFailed is returned when at least one executed target failed
var ErrTestsFailed = errors.New("tests failed")

// env holds the configuration and the dependencies built from it once the
// flags have been parsed
type env struct {
	cfg    *config.Config
	logger *log.Logger

	registry *picker.Registry
	scanner  *discovery.Scanner
	filter   *discovery.Filter
	storage  storage.Storage
	viewer   ui.Viewer
}

// load reads the env file, applies the flags and builds the dependencies
func (e *env) load(flags *cli.Flags) error {
	if flags.Debug {
		e.logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		return err
	}
	*e.cfg = *cfg
	e.cfg.Flags = flags.ToConfigFlags()
	e.logger.Debug("loaded config", "env", flags.ConfigFile, "project", e.cfg.ProjectPath, "workers", e.cfg.GetWorkers())

	e.registry = picker.NewRegistry(e.cfg, e.logger)
	e.scanner = discovery.NewScanner(e.cfg.PathsToIgnore, e.registry.IsTestFile)
	e.filter = discovery.NewFilter()
	e.storage = storage.NewJSONStorage(e.cfg)
	if e.viewer == nil {
		e.viewer = ui.NewTestPicker()
	}
	return nil
}

// invocation renders the command for a FILE or FILE:LINE target
func (e *env) invocation(target string) (domain.Invocation, error) {
	file, line := parseTarget(target)

	p, err := e.registry.For(file)
	if err != nil {
		return domain.Invocation{}, err
	}

	command, err := e.registry.Command(domain.Request{
		File:    file,
		Line:    line,
		Full:    e.cfg.Flags.Full,
		Verbose: e.cfg.Flags.Verbose,
	})
	if err != nil {
		return domain.Invocation{}, err
	}

	dir, err := os.Getwd()
	if err != nil {
		return domain.Invocation{}, fmt.Errorf("resolve working directory: %w", err)
	}

	return domain.Invocation{Target: target, Language: p.Language(), Command: command, Dir: dir}, nil
}

// parseTarget splits FILE:LINE. Targets without a valid line suffix are
// returned whole with line 0.
func parseTarget(target string) (string, int) {
	i := strings.LastIndex(target, ":")
	if i <= 0 {
		return target, 0
	}
	line, err := strconv.Atoi(target[i+1:])
	if err != nil || line < 1 {
		return target, 0
	}
	return target[:i], line
}

// parseLine parses a 1-based line number argument. Line 0 is accepted and
// lies before the first line of every file.
func parseLine(arg string) (int, error) {
	line, err := strconv.Atoi(arg)
	if err != nil || line < 0 {
		return 0, fmt.Errorf("invalid line number %q: must be a non-negative integer", arg)
	}
	return line, nil
}

// Commands holds all CLI commands
type Commands struct {
	env *env

	Locate *LocateCommand
	List   *ListCommand
	Pick   *PickCommand
	Run    *RunCommand
	Last   *LastCommand
}

// NewCommands creates all commands sharing one configuration and logger
func NewCommands(cfg *config.Config, logger *log.Logger) *Commands {
	e := &env{cfg: cfg, logger: logger}

	return &Commands{
		env:    e,
		Locate: NewLocateCommand(e),
		List:   NewListCommand(e),
		Pick:   NewPickCommand(e),
		Run:    NewRunCommand(e),
		Last:   NewLastCommand(e),
	}
}

// Register registers all commands with cobra. The root command itself
// prints the command for FILE [LINE].
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	rootCmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Log scan decisions and configuration")
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", config.DefaultEnvFile, "Path to the env file with TESTPICK_* settings")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		return c.env.load(flags)
	}

	rootCmd.Args = cobra.RangeArgs(1, 2)
	rootCmd.RunE = c.Locate.Execute
	rootCmd.Flags().BoolVar(&flags.Full, "full", false, "Print the command for the full test suite")
	rootCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Ask the runner for verbose output")

	// List command
	listCmd := &cobra.Command{
		Use:   "list [PATH]",
		Short: "List discovered tests",
		Long:  "Scan a file or directory and list every test with the command that runs it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., 'test_*' or '*Payment*')")
	listCmd.Flags().StringVar(&flags.FileFilter, "files", "", "Only index test files whose name matches pattern (e.g., '*_test.go')")
	listCmd.Flags().BoolVarP(&flags.Table, "table", "t", false, "Show tests as a table with their commands")
	listCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of files indexed in parallel")
	rootCmd.AddCommand(listCmd)

	// Pick command
	pickCmd := &cobra.Command{
		Use:   "pick FILE",
		Short: "Choose a test interactively",
		Long:  "Display the tests of a file in an interactive list and print or run the chosen one",
		Args:  cobra.ExactArgs(1),
		RunE:  c.Pick.Execute,
	}
	pickCmd.Flags().BoolVarP(&flags.Run, "run", "r", false, "Run the chosen test instead of printing its command")
	rootCmd.AddCommand(pickCmd)

	// Run command
	runCmd := &cobra.Command{
		Use:   "run FILE[:LINE]...",
		Short: "Run the tests under the given positions",
		Long:  "Render the command of every target and execute them, in parallel when there are several",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.Run.Execute,
	}
	runCmd.Flags().BoolVar(&flags.Full, "full", false, "Run the full test suite of each target's runner")
	runCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Ask the runner for verbose output")
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of processors to use")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first failing target")
	rootCmd.AddCommand(runCmd)

	// Last command
	lastCmd := &cobra.Command{
		Use:   "last",
		Short: "Show or re-run the last recorded run",
		Args:  cobra.NoArgs,
		RunE:  c.Last.Execute,
	}
	lastCmd.Flags().BoolVarP(&flags.Run, "run", "r", false, "Run the last command again")
	rootCmd.AddCommand(lastCmd)
}
