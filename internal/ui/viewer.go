package ui

import "testpick/internal/domain"

// Viewer lets the user choose one test in an interactive TUI
type Viewer interface {
	Pick(title string, entries []domain.TestEntry) (*domain.TestEntry, error)
}
