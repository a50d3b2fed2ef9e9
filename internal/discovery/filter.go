package discovery

import (
	"path/filepath"
	"strings"

	"testpick/internal/domain"
)

// Filter filters test files and tests by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters test files by their base name.
// Supports patterns like "*_test.go" or "*payment*".
func (f *Filter) FilterByName(files []string, pattern string) []string {
	if pattern == "" {
		return files
	}

	var filtered []string
	for _, file := range files {
		if Match(filepath.Base(file), pattern) {
			filtered = append(filtered, file)
		}
	}
	return filtered
}

// FilterEntries keeps the tests whose name or file name matches pattern
func (f *Filter) FilterEntries(entries []domain.TestEntry, pattern string) []domain.TestEntry {
	if pattern == "" {
		return entries
	}

	var filtered []domain.TestEntry
	for _, e := range entries {
		if Match(e.Name, pattern) || Match(filepath.Base(e.File), pattern) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Match reports whether name matches pattern. Patterns with wildcards are
// tried with filepath.Match first and then as an ordered list of substrings;
// plain patterns match as a substring.
func Match(name, pattern string) bool {
	if ok, err := filepath.Match(pattern, name); err == nil && ok {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}
	if !strings.Contains(pattern, "*") {
		return false
	}

	rest := name
	matchedAny := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		i := strings.Index(rest, part)
		if i < 0 {
			return false
		}
		rest = rest[i+len(part):]
		matchedAny = true
	}
	return matchedAny
}
