package locator

import (
	"os"
	"path/filepath"
	"regexp"

	"testpick/internal/domain"
)

// LocateNext returns the first line after start that matches pattern, or nil
// when the end of the file is reached first
func LocateNext(lines []string, pattern *regexp.Regexp, start int) *domain.LineMatch {
	for no := max(start+1, 1); no <= len(lines); no++ {
		if groups := captures(pattern, lines[no-1]); groups != nil {
			return &domain.LineMatch{Line: no, Groups: groups}
		}
	}
	return nil
}

// LocateRoot walks up from start until it finds a directory containing marker.
// When no such directory exists it returns the top-most directory reached.
func LocateRoot(start, marker string) string {
	dir := start
	if info, err := os.Stat(start); err != nil || !info.IsDir() {
		dir = filepath.Dir(start)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}

		dir = parent
	}
}
