// Package picker maps a cursor position in a test file to the command that
// runs the test under it, one picker per supported language.
package picker

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"testpick/internal/config"
	"testpick/internal/domain"
	"testpick/internal/locator"
)

var (
	// ErrUnknownFileType is returned for files no picker handles
	ErrUnknownFileType = errors.New("unknown file type")
	// ErrNoTests is returned when nothing could be located around the line
	ErrNoTests = errors.New("unable to find any tests")
	// ErrNamespaceNotFound is returned when an enclosing scope was announced but not declared
	ErrNamespaceNotFound = errors.New("could not find mod")
	// ErrTestFunctionNotFound is returned when a test marker is not followed by a function
	ErrTestFunctionNotFound = errors.New("could not find test function")
	// ErrNotInSource is returned for Rust files outside a crate's src and tests directories
	ErrNotInSource = errors.New("file is not inside a src or tests directory")
)

// Picker locates tests in files of one language and renders runner commands
type Picker interface {
	// Language returns the language the picker handles
	Language() domain.Language

	// Handles reports whether the file belongs to this picker
	Handles(filename string) bool

	// IsTestFile reports whether the file name follows the runner's test file convention
	IsTestFile(filename string) bool

	// Markers returns the lines on which test declarations start
	Markers(lines []string) []int

	// Resolve locates the test around line. It returns nil when nothing is found.
	Resolve(file string, lines []string, line int) (*domain.Selection, error)

	// Render builds the command for a selection. A nil selection renders the
	// whole file, or the whole suite when req.Full is set.
	Render(sel *domain.Selection, req domain.Request) (string, error)
}

// Registry holds all registered pickers
type Registry struct {
	pickers []Picker
	logger  *log.Logger
}

// NewRegistry creates a registry with every supported picker
func NewRegistry(cfg *config.Config, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{
		pickers: []Picker{
			NewPythonPicker(cfg.Runners.Pytest),
			NewRustPicker(cfg.Runners.Cargo),
			NewGoPicker(cfg.Runners.Go),
			NewPHPPicker(cfg.Runners.PHPUnit),
		},
		logger: logger,
	}
}

// For returns the picker handling filename
func (r *Registry) For(filename string) (Picker, error) {
	for _, p := range r.pickers {
		if p.Handles(filename) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFileType, filename)
}

// IsTestFile reports whether any picker considers filename a test file
func (r *Registry) IsTestFile(filename string) bool {
	for _, p := range r.pickers {
		if p.Handles(filename) && p.IsTestFile(filename) {
			return true
		}
	}
	return false
}

// Command renders the command for a request
func (r *Registry) Command(req domain.Request) (string, error) {
	p, err := r.For(req.File)
	if err != nil {
		return "", err
	}

	if req.Full || req.Line <= 0 {
		r.logger.Debug("rendering without a line", "file", req.File, "language", p.Language(), "full", req.Full)
		return p.Render(nil, req)
	}

	sel, err := r.Resolve(p, req.File, req.Line)
	if err != nil {
		return "", err
	}
	return p.Render(sel, req)
}

// Resolve reads file and locates the test around line
func (r *Registry) Resolve(p Picker, file string, line int) (*domain.Selection, error) {
	lines, err := locator.ReadLines(file)
	if err != nil {
		return nil, err
	}

	sel, err := p.Resolve(file, lines, line)
	if err != nil {
		return nil, fmt.Errorf("%s:%d: %w", file, line, err)
	}
	if sel == nil {
		return nil, fmt.Errorf("%w in %s at line %d", ErrNoTests, file, line)
	}

	r.logger.Debug("resolved test", "file", file, "line", line, "declared", sel.Declared, "scope", strings.Join(sel.Scope, "::"))
	return sel, nil
}

// Enumerate lists every test declared in file with the command that runs it.
// Markers that cannot be resolved to a runnable test are skipped.
func (r *Registry) Enumerate(file string) ([]domain.TestEntry, error) {
	p, err := r.For(file)
	if err != nil {
		return nil, err
	}

	lines, err := locator.ReadLines(file)
	if err != nil {
		return nil, err
	}

	var entries []domain.TestEntry
	seen := make(map[int]bool)
	for _, line := range p.Markers(lines) {
		sel, err := p.Resolve(file, lines, line)
		if err != nil {
			r.logger.Debug("skipping test marker", "file", file, "line", line, "err", err)
			continue
		}
		// several markers may announce the same declaration
		if sel == nil || !sel.HasName || seen[sel.Declared] {
			continue
		}
		seen[sel.Declared] = true

		command, err := p.Render(sel, domain.Request{File: file, Line: line})
		if err != nil {
			return nil, err
		}

		entries = append(entries, domain.TestEntry{
			File:          file,
			Line:          sel.Declared,
			Name:          sel.Scope[len(sel.Scope)-1],
			QualifiedName: sel.Scope,
			Command:       command,
		})
	}

	r.logger.Debug("enumerated tests", "file", file, "count", len(entries))
	return entries, nil
}

// markerLines returns every line matching pattern, in file order
func markerLines(lines []string, pattern *regexp.Regexp) []int {
	var out []int
	for m := locator.LocateNext(lines, pattern, 0); m != nil; m = locator.LocateNext(lines, pattern, m.Line) {
		out = append(out, m.Line)
	}
	return out
}

// selectionFrom turns a located test case into a selection scoped by its namespaces
func selectionFrom(file string, line int, tc *domain.TestCase) *domain.Selection {
	sel := &domain.Selection{
		File:  file,
		Line:  line,
		Scope: tc.NamespaceNames(),
	}
	if len(tc.Namespaces) > 0 {
		sel.Declared = tc.Namespaces[len(tc.Namespaces)-1].Line
	}
	if tc.Name != nil {
		sel.Scope = append(sel.Scope, tc.Name.Ident())
		sel.Declared = tc.Name.Line
		sel.HasName = true
	}
	return sel
}

func hasExt(filename, ext string) bool {
	return strings.EqualFold(filepath.Ext(filename), ext)
}

func verboseFlag(verbose bool, flag string) string {
	if verbose {
		return " " + flag
	}
	return ""
}
