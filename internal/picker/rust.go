package picker

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"testpick/internal/domain"
	"testpick/internal/locator"
)

var (
	// #[test], #[tokio::test]
	rustMarkerPattern = regexp.MustCompile(`^\s*#\[(?:\w+::)?test\]`)

	// #[cfg(test)]
	rustCfgPattern = regexp.MustCompile(`^\s*#\[cfg\(test\)\]`)

	rustModPattern = regexp.MustCompile(`^\s*(?:pub(?:\([\w:]+\))?\s+)?mod (\w+)`)
	rustFnPattern  = regexp.MustCompile(`^\s*(?:pub(?:\([\w:]+\))?\s+)?(?:async\s+)?fn (\w+)`)
)

// RustPicker renders cargo test filters from module paths
type RustPicker struct {
	runner string
}

// NewRustPicker creates a RustPicker using the given cargo binary
func NewRustPicker(runner string) *RustPicker {
	return &RustPicker{runner: runner}
}

func (p *RustPicker) Language() domain.Language { return domain.LanguageRust }

func (p *RustPicker) Handles(filename string) bool { return hasExt(filename, ".rs") }

func (p *RustPicker) IsTestFile(filename string) bool { return p.Handles(filename) }

func (p *RustPicker) Markers(lines []string) []int {
	return markerLines(lines, rustMarkerPattern)
}

// Resolve maps the cursor to file module, test module and test function.
// Attribute lines are located first, then the declarations that follow them.
func (p *RustPicker) Resolve(file string, lines []string, line int) (*domain.Selection, error) {
	loc, err := rustLocate(file)
	if err != nil {
		return nil, err
	}

	sel := &domain.Selection{File: file, Line: line, Scope: loc.module, Binary: loc.binary}

	tc := locator.LocateNearest(lines, rustMarkerPattern, rustCfgPattern, line, domain.Backward)
	if tc == nil {
		if len(loc.module) == 0 && loc.binary == "" {
			return nil, nil
		}
		return sel, nil
	}

	// integration test binaries declare their tests at the top level
	if len(tc.Namespaces) == 0 && loc.binary == "" {
		return nil, ErrNamespaceNotFound
	}
	for _, cfg := range tc.Namespaces {
		mod := locator.LocateNext(lines, rustModPattern, cfg.Line)
		if mod == nil {
			return nil, ErrNamespaceNotFound
		}
		sel.Scope = append(sel.Scope, mod.Ident())
		sel.Declared = mod.Line
	}

	if tc.Name != nil {
		fn := locator.LocateNext(lines, rustFnPattern, tc.Name.Line)
		if fn == nil {
			return nil, ErrTestFunctionNotFound
		}
		sel.Scope = append(sel.Scope, fn.Ident())
		sel.Declared = fn.Line
		sel.HasName = true
	}

	return sel, nil
}

func (p *RustPicker) Render(sel *domain.Selection, req domain.Request) (string, error) {
	base := p.runner + " test" + verboseFlag(req.Verbose, "-v")
	if req.Full {
		return base, nil
	}

	var loc rustLocation
	if sel != nil {
		loc = rustLocation{binary: sel.Binary, module: sel.Scope}
	} else {
		var err error
		if loc, err = rustLocate(req.File); err != nil {
			return "", err
		}
	}

	if loc.binary != "" {
		base += " --test " + loc.binary
	}
	if len(loc.module) == 0 {
		return base, nil
	}
	return fmt.Sprintf("%s %s", base, strings.Join(loc.module, "::")), nil
}

// rustLocation is the place of a file inside its crate
type rustLocation struct {
	binary string   // integration test binary, empty under src
	module []string // module path inside the crate or the binary
}

// rustLocate finds the module path of file inside its crate. Files under
// src belong to the crate itself; files under tests belong to the
// integration test binary named after the file or its directory.
func rustLocate(file string) (rustLocation, error) {
	root := locator.LocateRoot(file, "Cargo.toml")

	rel := file
	if r, err := filepath.Rel(root, file); err == nil && !strings.HasPrefix(r, "..") {
		rel = r
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	for i, part := range parts {
		if i == len(parts)-1 {
			break
		}
		switch part {
		case "src":
			return rustLocation{module: rustModules(parts[i+1:])}, nil
		case "tests":
			rest := parts[i+1:]
			if len(rest) == 1 {
				return rustLocation{binary: strings.TrimSuffix(rest[0], ".rs")}, nil
			}
			return rustLocation{binary: rest[0], module: rustModules(rest[1:])}, nil
		}
	}
	return rustLocation{}, fmt.Errorf("%w: %s", ErrNotInSource, file)
}

// rustModules converts the path segments below a crate or binary root into
// module names. mod.rs collapses into its directory and lib.rs or main.rs at
// the root is the root module itself.
func rustModules(parts []string) []string {
	module := slices.Clone(parts[:len(parts)-1])
	last := strings.TrimSuffix(parts[len(parts)-1], ".rs")

	switch {
	case last == "mod":
	case len(module) == 0 && (last == "lib" || last == "main"):
	default:
		module = append(module, last)
	}
	return module
}
