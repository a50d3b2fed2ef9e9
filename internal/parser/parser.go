package parser

import (
	"regexp"
	"strconv"

	"testpick/internal/domain"
)

// Parser extracts test counts and failing tests from runner output
type Parser interface {
	ParseTestCounts(output string, success bool) (passed, failed int)
	ParseFailures(output string) []string
}

// For returns the output parser of a language
func For(lang domain.Language) Parser {
	switch lang {
	case domain.LanguagePython:
		return NewPytestParser()
	case domain.LanguageRust:
		return NewCargoParser()
	case domain.LanguageGo:
		return NewGoTestParser()
	default:
		return NewPHPUnitParser()
	}
}

// Summarize parses the counts and failing tests of one run
func Summarize(lang domain.Language, output string, success bool) domain.RunSummary {
	p := For(lang)
	passed, failed := p.ParseTestCounts(output, success)
	return domain.RunSummary{
		Passed:   passed,
		Failed:   failed,
		Failures: p.ParseFailures(output),
	}
}

// fallbackCounts counts a whole run as a single test
func fallbackCounts(success bool) (passed, failed int) {
	if success {
		return 1, 0
	}
	return 0, 1
}

// firstInt returns the first capture of re in output, or 0
func firstInt(re *regexp.Regexp, output string) int {
	m := re.FindStringSubmatch(output)
	if len(m) < 2 {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// sumInts adds up the first capture of every match of re in output
func sumInts(re *regexp.Regexp, output string) int {
	total := 0
	for _, m := range re.FindAllStringSubmatch(output, -1) {
		n, _ := strconv.Atoi(m[1])
		total += n
	}
	return total
}

// names returns the first capture of every match of re, without duplicates
func names(re *regexp.Regexp, output string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range re.FindAllStringSubmatch(output, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}
