package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"testpick/internal/domain"
)

// TestPicker displays the tests of a file in an interactive TUI
type TestPicker struct{}

// NewTestPicker creates a new TestPicker
func NewTestPicker() *TestPicker {
	return &TestPicker{}
}

// Pick shows entries and returns the one chosen with Enter, or nil when the
// user leaves without choosing
func (tp *TestPicker) Pick(title string, entries []domain.TestEntry) (*domain.TestEntry, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	var chosen *domain.TestEntry

	app := tview.NewApplication()

	// Tests on the left side
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	for i, e := range entries {
		list.AddItem(formatEntryItem(i, e), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" %s (%d tests) | Use ↑↓ to navigate, [yellow]Enter[white] to choose, → to view details, ← to go back, Esc to exit ", tview.Escape(title), len(entries)))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(entries) {
			statsView.SetText(formatEntryStats(entries[index]))
			detailsView.SetText(formatEntryDetails(entries[index]))
		}
	}

	list.SetSelectedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		chosen = &entries[index]
		app.Stop()
	})

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyEsc, tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})

	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return nil, fmt.Errorf("failed to run TUI: %w", err)
	}

	return chosen, nil
}

// formatEntryItem formats a list row using tview color tags
func formatEntryItem(index int, e domain.TestEntry) string {
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, tview.Escape(e.Name))
}

// formatEntryStats formats the header shown above the details of a test
func formatEntryStats(e domain.TestEntry) string {
	return fmt.Sprintf("[cyan]path:[white] [yellow]%s[white]:[yellow]%d[white]\n", tview.Escape(e.File), e.Line)
}

// formatEntryDetails formats a test for the details pane
func formatEntryDetails(e domain.TestEntry) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "[green]Test: %s[white]\n\n", tview.Escape(e.Name))
	if len(e.QualifiedName) > 1 {
		fmt.Fprintf(&builder, "[yellow]Scope:[white]\n")
		for depth, part := range e.QualifiedName {
			fmt.Fprintf(&builder, "%s%s\n", strings.Repeat("  ", depth+1), tview.Escape(part))
		}
		builder.WriteString("\n")
	}
	fmt.Fprintf(&builder, "[yellow]Command:[white]\n%s\n", tview.Escape(e.Command))

	return builder.String()
}
