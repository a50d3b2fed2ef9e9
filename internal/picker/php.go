package picker

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"testpick/internal/domain"
	"testpick/internal/locator"
)

// Matches:
// - /** @test */
// - * @test (inside a multi-line docblock)
// - #[Test] or #[\PHPUnit\Framework\Attributes\Test]
const phpAnnotation = `^\s*(?:/\*\*\s*|\*\s*)?@test\b|^\s*#\[(?:\\?PHPUnit\\Framework\\Attributes\\)?Test\]`

var (
	// Matches:
	// - public function testCreateUser()
	// - protected static function test_user_login()
	// - final public function testSomething()
	// - any annotated method, through its annotation line
	phpTestPattern = regexp.MustCompile(`^\s*(?:(?:public|protected|private|static|final)\s+)*function\s+(test\w*)\s*\(|` + phpAnnotation)

	phpAnnotationPattern = regexp.MustCompile(phpAnnotation)

	// the method an annotation belongs to, possibly on the annotation line itself
	phpFunctionPattern = regexp.MustCompile(`\bfunction\s+(\w+)\s*\(`)

	// class UserTest extends TestCase
	// final class UserTest extends TestCase
	phpClassPattern = regexp.MustCompile(`^\s*(?:(?:abstract|final)\s+)*class\s+(\w+)`)
)

// PHPPicker renders PHPUnit --filter commands
type PHPPicker struct {
	runner string
}

// NewPHPPicker creates a PHPPicker. A relative runner path is resolved
// against the composer project root of the file being tested.
func NewPHPPicker(runner string) *PHPPicker {
	return &PHPPicker{runner: runner}
}

func (p *PHPPicker) Language() domain.Language { return domain.LanguagePHP }

func (p *PHPPicker) Handles(filename string) bool { return hasExt(filename, ".php") }

func (p *PHPPicker) IsTestFile(filename string) bool {
	return strings.HasSuffix(filepath.Base(filename), "Test.php")
}

func (p *PHPPicker) Markers(lines []string) []int {
	return markerLines(lines, phpTestPattern)
}

func (p *PHPPicker) Resolve(file string, lines []string, line int) (*domain.Selection, error) {
	tc := locator.LocateNearest(lines, phpTestPattern, phpClassPattern, line, domain.Backward)
	if tc == nil {
		return nil, nil
	}

	if tc.Name != nil && phpAnnotationPattern.MatchString(lines[tc.Name.Line-1]) {
		fn := annotatedMethod(lines, tc.Name.Line)
		if fn == nil {
			return nil, ErrTestFunctionNotFound
		}
		tc.Name = fn
	}
	return selectionFrom(file, line, tc), nil
}

// annotatedMethod returns the method declared on or after an annotation line
func annotatedMethod(lines []string, annotation int) *domain.LineMatch {
	if m := phpFunctionPattern.FindStringSubmatch(lines[annotation-1]); m != nil {
		return &domain.LineMatch{Line: annotation, Groups: m}
	}
	return locator.LocateNext(lines, phpFunctionPattern, annotation)
}

func (p *PHPPicker) Render(sel *domain.Selection, req domain.Request) (string, error) {
	base := p.binary(req.File) + verboseFlag(req.Verbose, "--testdox")
	if req.Full {
		return base, nil
	}
	if sel == nil {
		return fmt.Sprintf("%s %s", base, req.File), nil
	}
	return fmt.Sprintf("%s --filter '%s' %s", base, strings.Join(sel.Scope, "::"), req.File), nil
}

// binary resolves the runner against the composer root of file. Outside a
// composer project the runner is left relative to the working directory.
func (p *PHPPicker) binary(file string) string {
	if filepath.IsAbs(p.runner) || !strings.ContainsRune(p.runner, filepath.Separator) {
		return p.runner
	}
	root := locator.LocateRoot(file, "composer.json")
	if _, err := os.Stat(filepath.Join(root, "composer.json")); err != nil {
		return p.runner
	}
	return filepath.Join(root, p.runner)
}
