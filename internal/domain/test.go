package domain

// Direction is the order in which a scope scan visits lines relative to its anchor
type Direction int

const (
	// Backward visits the anchor line and every line above it, closest first
	Backward Direction = iota
	// Forward visits the anchor line and every line below it
	Forward
)

func (d Direction) String() string {
	switch d {
	case Backward:
		return "backward"
	case Forward:
		return "forward"
	default:
		return "unknown"
	}
}

// LineMatch is a single regex match anchored to a line of the source file
type LineMatch struct {
	Line   int      // 1-indexed
	Groups []string // full match first, then every participating capture group
}

// Ident returns the last captured group, which patterns use for the identifier
func (m LineMatch) Ident() string {
	if len(m.Groups) == 0 {
		return ""
	}
	return m.Groups[len(m.Groups)-1]
}

// Group returns the i-th captured group or "" when it is out of range
func (m LineMatch) Group(i int) string {
	if i < 0 || i >= len(m.Groups) {
		return ""
	}
	return m.Groups[i]
}

// TestCase is the result of a scope scan
type TestCase struct {
	Name       *LineMatch  // nearest test declaration, nil when the cursor is only inside a namespace
	Namespaces []LineMatch // enclosing scopes, outermost first
}

// NamespaceNames returns the identifier of every namespace, outermost first
func (tc *TestCase) NamespaceNames() []string {
	names := make([]string, 0, len(tc.Namespaces))
	for _, ns := range tc.Namespaces {
		names = append(names, ns.Ident())
	}
	return names
}

// TestEntry represents a single test discovered in a file
type TestEntry struct {
	File          string   // Path to the file containing the test
	Line          int      // Line the test is declared on
	Name          string   // Test function or method name
	QualifiedName []string // Enclosing namespaces followed by the test name
	Command       string   // Command that runs only this test
}
