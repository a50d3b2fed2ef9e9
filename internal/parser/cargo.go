package parser

import "regexp"

var (
	// test result: FAILED. 3 passed; 1 failed; 0 ignored; ...
	cargoPassed = regexp.MustCompile(`test result: \w+\. (\d+) passed`)
	cargoFailed = regexp.MustCompile(`test result: \w+\. \d+ passed; (\d+) failed`)

	// test pickers::tester::tests::test_simple ... FAILED
	cargoFailedTest = regexp.MustCompile(`(?m)^test (\S+) \.\.\. FAILED`)
)

// CargoParser parses cargo test output
type CargoParser struct{}

// NewCargoParser creates a new CargoParser
func NewCargoParser() *CargoParser {
	return &CargoParser{}
}

// ParseTestCounts sums the result line of every test binary cargo ran
func (p *CargoParser) ParseTestCounts(output string, success bool) (passed, failed int) {
	passed = sumInts(cargoPassed, output)
	failed = sumInts(cargoFailed, output)
	if passed > 0 || failed > 0 {
		return passed, failed
	}
	return fallbackCounts(success)
}

func (p *CargoParser) ParseFailures(output string) []string {
	return names(cargoFailedTest, output)
}
