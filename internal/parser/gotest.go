package parser

import "regexp"

var (
	goPassedTest = regexp.MustCompile(`(?m)^\s*--- PASS: (\S+)`)
	goFailedTest = regexp.MustCompile(`(?m)^\s*--- FAIL: (\S+)`)
)

// GoTestParser parses go test output. Passing tests are only listed with -v.
type GoTestParser struct{}

// NewGoTestParser creates a new GoTestParser
func NewGoTestParser() *GoTestParser {
	return &GoTestParser{}
}

func (p *GoTestParser) ParseTestCounts(output string, success bool) (passed, failed int) {
	passed = len(goPassedTest.FindAllString(output, -1))
	failed = len(goFailedTest.FindAllString(output, -1))
	if passed > 0 || failed > 0 {
		return passed, failed
	}
	return fallbackCounts(success)
}

func (p *GoTestParser) ParseFailures(output string) []string {
	return names(goFailedTest, output)
}
