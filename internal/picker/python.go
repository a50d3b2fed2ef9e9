package picker

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"testpick/internal/domain"
	"testpick/internal/locator"
)

var (
	// def test_function():
	// async def test_coroutine():
	pythonTestPattern = regexp.MustCompile(`^\s*(async )?def (test_\w+)`)

	// class TestClass:
	// class TestClass(Base):
	pythonClassPattern = regexp.MustCompile(`^\s*class (\w+) ?.*:`)
)

// PythonPicker renders pytest node ids
type PythonPicker struct {
	runner string
}

// NewPythonPicker creates a PythonPicker using the given pytest binary
func NewPythonPicker(runner string) *PythonPicker {
	return &PythonPicker{runner: runner}
}

func (p *PythonPicker) Language() domain.Language { return domain.LanguagePython }

func (p *PythonPicker) Handles(filename string) bool { return hasExt(filename, ".py") }

func (p *PythonPicker) IsTestFile(filename string) bool {
	base := filepath.Base(filename)
	return strings.HasPrefix(base, "test_") || strings.HasSuffix(base, "_test.py")
}

func (p *PythonPicker) Markers(lines []string) []int {
	return markerLines(lines, pythonTestPattern)
}

func (p *PythonPicker) Resolve(file string, lines []string, line int) (*domain.Selection, error) {
	tc := locator.LocateNearest(lines, pythonTestPattern, pythonClassPattern, line, domain.Backward)
	if tc == nil {
		return nil, nil
	}
	return selectionFrom(file, line, tc), nil
}

func (p *PythonPicker) Render(sel *domain.Selection, req domain.Request) (string, error) {
	base := p.runner + verboseFlag(req.Verbose, "-v")
	if req.Full {
		return base, nil
	}
	if sel == nil {
		return fmt.Sprintf("%s %s", base, req.File), nil
	}
	return fmt.Sprintf("%s %s::%s", base, req.File, strings.Join(sel.Scope, "::")), nil
}
