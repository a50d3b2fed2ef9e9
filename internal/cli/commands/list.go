package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"testpick/internal/discovery"
	"testpick/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	env *env
}

// NewListCommand creates a new ListCommand
func NewListCommand(e *env) *ListCommand {
	return &ListCommand{env: e}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	path := lc.env.cfg.ProjectPath
	if len(args) > 0 {
		path = args[0]
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("test path does not exist: %s", path)
	}

	var files []discovery.FileTests
	root := ""
	if info.IsDir() {
		root = path
		if files, err = lc.index(cmd, path); err != nil {
			return err
		}
	} else {
		entries, err := lc.env.registry.Enumerate(path)
		if err != nil {
			return err
		}
		files = append(files, discovery.FileTests{File: path, Entries: entries})
	}

	// Filter tests
	var filtered []discovery.FileTests
	for _, ft := range files {
		ft.Entries = lc.env.filter.FilterEntries(ft.Entries, lc.env.cfg.Flags.NameFilter)
		if len(ft.Entries) > 0 {
			filtered = append(filtered, ft)
		}
	}

	out := cmd.OutOrStdout()
	if len(filtered) == 0 {
		color.New(color.FgYellow).Fprintln(out, "No tests found")
		return nil
	}

	formatter := ui.NewFormatter(out, root)
	if lc.env.cfg.Flags.Table {
		formatter.PrintTestTable(filtered)
		return nil
	}

	history, err := lc.env.storage.Load()
	if err != nil {
		lc.env.logger.Warn("ignoring run history", "err", err)
	}
	formatter.PrintTestTree(filtered, ui.FailedPaths(root, history))
	return nil
}

// index scans a directory and enumerates the tests of every test file
func (lc *ListCommand) index(cmd *cobra.Command, dir string) ([]discovery.FileTests, error) {
	paths, err := lc.env.scanner.Scan(dir)
	if err != nil {
		return nil, err
	}
	paths = lc.env.filter.FilterByName(paths, lc.env.cfg.Flags.FileFilter)
	lc.env.logger.Debug("scanned test files", "dir", dir, "count", len(paths), "files", lc.env.cfg.Flags.FileFilter)
	if len(paths) == 0 {
		return nil, nil
	}

	bar := ui.NewIndexBar(len(paths))
	indexer := discovery.NewIndexer(lc.env.registry, lc.env.cfg.GetWorkers())
	files, err := indexer.Index(cmd.Context(), paths, func(done, total int) {
		bar.Set(done)
	})
	bar.Finish()
	return files, err
}
