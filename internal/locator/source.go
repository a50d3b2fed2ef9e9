// Package locator finds the test declaration and enclosing namespaces around a
// line of source code using line-level regular expressions and indentation.
//
// Line numbers are 1-indexed throughout the package.
package locator

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"
)

// ReadLines reads the whole file and splits it into lines
func ReadLines(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return SplitLines(string(content)), nil
}

// SplitLines splits text on newlines, dropping carriage returns and the empty
// element that follows a trailing newline
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Indent returns the number of leading whitespace characters of a line
func Indent(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

// captures returns the full match followed by every capture group that took
// part in the match. Optional groups that did not match are left out, so the
// identifier group stays last. Returns nil when the line does not match.
func captures(re *regexp.Regexp, line string) []string {
	idx := re.FindStringSubmatchIndex(line)
	if idx == nil {
		return nil
	}
	groups := make([]string, 0, len(idx)/2)
	for i := 0; i+1 < len(idx); i += 2 {
		if idx[i] < 0 {
			continue
		}
		groups = append(groups, line[idx[i]:idx[i+1]])
	}
	return groups
}
