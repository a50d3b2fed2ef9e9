package parser

import "regexp"

var (
	phpunitOK       = regexp.MustCompile(`OK\s*\(\s*(\d+)\s+tests?`)
	phpunitTests    = regexp.MustCompile(`Tests:\s*(\d+)`)
	phpunitFailures = regexp.MustCompile(`Failures:\s*(\d+)`)
	phpunitErrors   = regexp.MustCompile(`Errors:\s*(\d+)`)

	// 1) Tests\Unit\UserTest::testCreateUser
	phpunitFailedTest = regexp.MustCompile(`(?m)^\d+\)\s+(\S+::\w+)`)
)

// PHPUnitParser parses PHPUnit test output
type PHPUnitParser struct{}

// NewPHPUnitParser creates a new PHPUnitParser
func NewPHPUnitParser() *PHPUnitParser {
	return &PHPUnitParser{}
}

// ParseTestCounts extracts passed and failed test case counts from PHPUnit output.
// If parsing fails, returns (1,0) for success or (0,1) for failure.
func (p *PHPUnitParser) ParseTestCounts(output string, success bool) (passed, failed int) {
	// OK (N tests, ...) - all passed
	if phpunitOK.MatchString(output) {
		return firstInt(phpunitOK, output), 0
	}

	// FAILURES! or ERRORS! - Tests: N, Assertions: ..., Failures: F, Errors: E
	total := firstInt(phpunitTests, output)
	failed = firstInt(phpunitFailures, output) + firstInt(phpunitErrors, output)
	if total >= failed {
		passed = total - failed
	}
	if passed > 0 || failed > 0 {
		return passed, failed
	}

	return fallbackCounts(success)
}

// ParseFailures returns the numbered test names of the failure report
func (p *PHPUnitParser) ParseFailures(output string) []string {
	return names(phpunitFailedTest, output)
}
