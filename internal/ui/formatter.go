package ui

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"testpick/internal/discovery"
	"testpick/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	out         io.Writer
	projectPath string
}

// NewFormatter creates a new Formatter writing to out. Paths are shown
// relative to projectPath when possible.
func NewFormatter(out io.Writer, projectPath string) *Formatter {
	return &Formatter{
		out:         out,
		projectPath: projectPath,
	}
}

// PrintCommand prints a rendered command with nothing around it, so the
// output can be consumed by editors and shells
func (f *Formatter) PrintCommand(command string) {
	fmt.Fprintln(f.out, command)
}

// PrintRunSummary prints the statistics box of a finished run
func (f *Formatter) PrintRunSummary(results []domain.RunResult, duration time.Duration, workers int) {
	var passedTargets, failedTargets, passedCases, failedCases int
	for _, r := range results {
		if r.Success {
			passedTargets++
		} else {
			failedTargets++
		}
		passedCases += r.Summary.Passed
		failedCases += r.Summary.Failed
	}

	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, color.CyanString("╔═══════════════════════════════════════════════════════════════╗"))
	fmt.Fprintln(f.out, color.CyanString("║                       Test Run Statistics                     ║"))
	fmt.Fprintln(f.out, color.CyanString("╚═══════════════════════════════════════════════════════════════╝"))

	rows := []struct {
		label string
		value string
		paint func(format string, a ...interface{}) string
	}{
		{"Targets", strconv.Itoa(len(results)), color.WhiteString},
		{"Passed Targets", strconv.Itoa(passedTargets), color.GreenString},
		{"Failed Targets", strconv.Itoa(failedTargets), color.RedString},
		{"Passed Test Cases", strconv.Itoa(passedCases), color.GreenString},
		{"Failed Test Cases", strconv.Itoa(failedCases), color.RedString},
		{"Duration", fmt.Sprintf("%.2fs", duration.Seconds()), color.WhiteString},
		{"Workers", strconv.Itoa(workers), color.WhiteString},
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ %s │\n", row.label, row.paint("%-27s", row.value))
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if failedTargets == 0 {
		fmt.Fprintln(f.out, color.GreenString("✓ All tests passed!"))
		return
	}

	fmt.Fprintln(f.out, color.RedString("✗ %d target(s) failed with %d test case failure(s)", failedTargets, failedCases))
	for _, r := range results {
		if r.Success {
			continue
		}
		fmt.Fprintln(f.out, color.YellowString("%s", r.Invocation.Target))
		if r.Error != nil {
			fmt.Fprintf(f.out, "    └── %s\n", color.RedString("%v", r.Error))
			continue
		}
		for j, name := range r.Summary.Failures {
			fmt.Fprintf(f.out, "%s%s\n", branch(j == len(r.Summary.Failures)-1, false), color.RedString("%s", name))
		}
	}
}

// PrintHistoryEntry prints a recorded run
func (f *Formatter) PrintHistoryEntry(entry *domain.HistoryEntry) {
	status := color.GreenString("passed")
	if !entry.Success {
		status = color.RedString("failed (exit %d)", entry.ExitCode)
	}

	fmt.Fprintf(f.out, "%s %s\n", color.CyanString("Target:"), entry.Target)
	fmt.Fprintf(f.out, "%s %s\n", color.CyanString("Command:"), entry.Command)
	fmt.Fprintf(f.out, "%s %s, %d passed, %d failed in %s\n", color.CyanString("Result:"), status, entry.Passed, entry.Failed, entry.Duration)
	fmt.Fprintf(f.out, "%s %s\n", color.CyanString("At:"), entry.Timestamp)
}

// PrintTestTree prints the discovered tests grouped by file.
// failedPaths is optional; if set, files in this set are marked with [F] in red (from the history).
func (f *Formatter) PrintTestTree(files []discovery.FileTests, failedPaths map[string]struct{}) {
	total := 0
	for _, ft := range files {
		total += len(ft.Entries)
	}
	fmt.Fprintln(f.out, color.GreenString("Found %d test(s) in %d file(s):", total, len(files)))
	fmt.Fprintln(f.out)

	for i, ft := range files {
		isLastFile := i == len(files)-1

		failMarker := ""
		if len(failedPaths) > 0 {
			if _, ok := failedPaths[NormalizedPathKey(f.projectPath, ft.File)]; ok {
				failMarker = " " + color.RedString("[F]")
			}
		}

		connector := "├── "
		if isLastFile {
			connector = "└── "
		}
		fmt.Fprintf(f.out, "%s%s\n", connector, color.CyanString("%s%s", f.relative(ft.File), failMarker))

		for j, e := range ft.Entries {
			isLastCase := j == len(ft.Entries)-1
			fmt.Fprintf(f.out, "%s%s %s\n",
				branch(isLastCase, !isLastFile),
				color.YellowString("%s", strings.Join(e.QualifiedName, "::")),
				color.HiBlackString(":%d", e.Line),
			)
		}
	}
}

// PrintTestTable prints the discovered tests as a table with their commands
func (f *Formatter) PrintTestTable(files []discovery.FileTests) {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Line", "Test", "Command"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	total := 0
	for _, ft := range files {
		for _, e := range ft.Entries {
			table.Append([]string{f.relative(e.File), strconv.Itoa(e.Line), strings.Join(e.QualifiedName, "::"), e.Command})
			total++
		}
	}

	table.SetFooter([]string{fmt.Sprintf("Total Files %d", len(files)), "", fmt.Sprintf("%d", total), ""})
	table.Render()
	fmt.Fprint(f.out, tableBuffer.String())
}

func (f *Formatter) relative(path string) string {
	if f.projectPath == "" {
		return path
	}
	if rel, err := filepath.Rel(f.projectPath, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// branch returns the tree prefix of a test line
func branch(isLast, parentContinues bool) string {
	indent := "    "
	if parentContinues {
		indent = "│   "
	}
	if isLast {
		return indent + "└── "
	}
	return indent + "├── "
}

// NormalizedPathKey returns a path key used to match history targets with discovered files
func NormalizedPathKey(projectPath, path string) string {
	if i := strings.LastIndex(path, ":"); i > 0 {
		if _, err := strconv.Atoi(path[i+1:]); err == nil {
			path = path[:i]
		}
	}

	p := path
	if projectPath != "" {
		if abs, err := filepath.Abs(path); err == nil {
			if root, err := filepath.Abs(projectPath); err == nil {
				if rel, err := filepath.Rel(root, abs); err == nil && !strings.HasPrefix(rel, "..") {
					p = rel
				}
			}
		}
	}
	return filepath.ToSlash(filepath.Clean(p))
}

// FailedPaths collects the normalized files of failed runs in the history
func FailedPaths(projectPath string, entries []domain.HistoryEntry) map[string]struct{} {
	failed := make(map[string]struct{})
	seen := make(map[string]bool)
	// entries are newest first; only the latest run of a file counts
	for _, e := range entries {
		key := NormalizedPathKey(projectPath, e.Target)
		if seen[key] {
			continue
		}
		seen[key] = true
		if !e.Success {
			failed[key] = struct{}{}
		}
	}
	return failed
}
