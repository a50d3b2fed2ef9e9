package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scanner scans a directory tree for test files
type Scanner struct {
	skipDirs   map[string]bool
	isTestFile func(path string) bool
}

// NewScanner creates a new Scanner. Directories named in skipDirs are not
// entered; isTestFile decides which files are reported.
func NewScanner(skipDirs []string, isTestFile func(path string) bool) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap, isTestFile: isTestFile}
}

// Scan finds all test files in the given root directory, in lexical order
func (s *Scanner) Scan(root string) ([]string, error) {
	var testfiles []string

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if s.isTestFile(path) {
			testfiles = append(testfiles, path)
		}
		return nil
	})

	return testfiles, err
}
