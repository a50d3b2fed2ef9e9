package picker

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"testpick/internal/domain"
	"testpick/internal/locator"
)

// func TestThing(t *testing.T)
// func (s *Suite) TestThing()
var goTestPattern = regexp.MustCompile(`^\s*func (\(\w+ \*?\w+\) )?(Test\w+)`)

// GoPicker renders go test -run filters
type GoPicker struct {
	runner string
}

// NewGoPicker creates a GoPicker using the given go binary
func NewGoPicker(runner string) *GoPicker {
	return &GoPicker{runner: runner}
}

func (p *GoPicker) Language() domain.Language { return domain.LanguageGo }

func (p *GoPicker) Handles(filename string) bool { return hasExt(filename, ".go") }

func (p *GoPicker) IsTestFile(filename string) bool {
	return strings.HasSuffix(filepath.Base(filename), "_test.go")
}

func (p *GoPicker) Markers(lines []string) []int {
	return markerLines(lines, goTestPattern)
}

func (p *GoPicker) Resolve(file string, lines []string, line int) (*domain.Selection, error) {
	tc := locator.LocateNearest(lines, goTestPattern, nil, line, domain.Backward)
	if tc == nil {
		return nil, nil
	}

	sel := selectionFrom(file, line, tc)
	// a receiver group only participates for suite methods
	sel.Suite = len(tc.Name.Groups) == 3
	return sel, nil
}

func (p *GoPicker) Render(sel *domain.Selection, req domain.Request) (string, error) {
	base := p.runner + " test" + verboseFlag(req.Verbose, "-v")
	if req.Full {
		return base, nil
	}
	if sel == nil {
		return fmt.Sprintf("%s %s", base, req.File), nil
	}

	name := sel.Scope[len(sel.Scope)-1]
	if sel.Suite {
		return fmt.Sprintf("%s -testify.m ^%s$", base, name), nil
	}
	return fmt.Sprintf("%s -run %s", base, name), nil
}
