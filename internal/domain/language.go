package domain

// Language identifies a supported source language
type Language string

const (
	LanguagePython Language = "python"
	LanguageRust   Language = "rust"
	LanguageGo     Language = "go"
	LanguagePHP    Language = "php"
)

// Selection is what a picker resolved for one cursor position
type Selection struct {
	File     string
	Line     int      // Line the cursor was on
	Declared int      // Line of the innermost resolved declaration
	Scope    []string // Qualified path: namespaces, then the test name when HasName
	HasName  bool     // A test (not only a namespace) was resolved
	Suite    bool     // The test is a method of a suite type rather than a free function
	Binary   string   // Test binary the selection belongs to, empty for the default one
}

// Request is the input for rendering a test command
type Request struct {
	File    string
	Line    int // 0 when no line was given
	Full    bool
	Verbose bool
}
