package locator

import (
	"math"
	"regexp"
	"slices"

	"testpick/internal/domain"
)

// scanRange returns the first line to visit and the number of lines to visit
// for a scan starting at anchor
func scanRange(total, anchor int, dir domain.Direction) (start, count int) {
	if dir == domain.Forward {
		start = max(anchor, 1)
		if start > total {
			return start, 0
		}
		return start, total - start + 1
	}

	start = min(anchor, total)
	if start < 1 {
		return 0, 0
	}
	return start, start
}

// absoluteLine converts a visit offset into the line number in the file
func absoluteLine(start, offset int, dir domain.Direction) int {
	if dir == domain.Forward {
		return start + offset
	}
	return start - offset
}

// LocateNearest walks away from anchor and returns the nearest line matching
// target together with the chain of enclosing lines matching namespace.
//
// A namespace only joins the chain when it is indented strictly less than
// everything recorded so far, so sibling scopes are skipped. Once a namespace
// is recorded no later target line can be inside it, so target matching stops.
// The walk ends once something at indentation 0 has been recorded. namespace
// may be nil.
//
// Backward visits the anchor line and the lines above it; Forward visits the
// anchor line and the lines below it. Returns nil when nothing matched.
func LocateNearest(lines []string, target, namespace *regexp.Regexp, anchor int, dir domain.Direction) *domain.TestCase {
	start, count := scanRange(len(lines), anchor, dir)

	var name *domain.LineMatch
	chain := make([]domain.LineMatch, 0)
	minIndent := math.MaxInt

	for i := 0; i < count; i++ {
		no := absoluteLine(start, i, dir)
		line := lines[no-1]

		if name == nil && len(chain) == 0 {
			if groups := captures(target, line); groups != nil {
				name = &domain.LineMatch{Line: no, Groups: groups}
				minIndent = min(minIndent, Indent(line))
				if minIndent == 0 {
					break
				}
				continue
			}
		}

		if namespace != nil {
			if groups := captures(namespace, line); groups != nil {
				indent := Indent(line)
				if indent < minIndent {
					minIndent = indent
					chain = append(chain, domain.LineMatch{Line: no, Groups: groups})
				}
			}
		}

		if minIndent == 0 {
			break
		}
	}

	if name == nil && len(chain) == 0 {
		return nil
	}

	// the chain was collected innermost first in both directions
	slices.Reverse(chain)

	return &domain.TestCase{Name: name, Namespaces: chain}
}
