package parser

import "regexp"

var (
	pytestPassed = regexp.MustCompile(`(\d+) passed`)
	pytestFailed = regexp.MustCompile(`(\d+) failed`)
	pytestErrors = regexp.MustCompile(`(\d+) errors?\b`)

	// FAILED tests/test_api.py::TestClient::test_get - AssertionError
	pytestFailedTest = regexp.MustCompile(`(?m)^(?:FAILED|ERROR) (\S+)`)
)

// PytestParser parses the short summary of pytest
type PytestParser struct{}

// NewPytestParser creates a new PytestParser
func NewPytestParser() *PytestParser {
	return &PytestParser{}
}

// ParseTestCounts reads the final "N failed, M passed" line
func (p *PytestParser) ParseTestCounts(output string, success bool) (passed, failed int) {
	passed = firstInt(pytestPassed, output)
	failed = firstInt(pytestFailed, output) + firstInt(pytestErrors, output)
	if passed > 0 || failed > 0 {
		return passed, failed
	}
	return fallbackCounts(success)
}

// ParseFailures returns the node ids listed in the short test summary
func (p *PytestParser) ParseFailures(output string) []string {
	return names(pytestFailedTest, output)
}
