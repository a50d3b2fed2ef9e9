package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar creates and manages progress bars
type ProgressBar struct {
	bar   *progressbar.ProgressBar
	label string
}

// NewProgressBar creates a progress bar for test runs
func NewProgressBar(count int) *ProgressBar {
	return newProgressBar(count, "Running tests: ", os.Stderr)
}

// NewIndexBar creates a progress bar for test discovery
func NewIndexBar(count int) *ProgressBar {
	return newProgressBar(count, "Indexing files: ", os.Stderr)
}

func newProgressBar(count int, label string, w io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(color.CyanString(label)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar, label: label}
}

// Set moves the bar to done
func (p *ProgressBar) Set(done int) {
	_ = p.bar.Set(done)
}

// Update moves the bar to done and shows the passed and failed test case counts
func (p *ProgressBar) Update(done, passedCount, failedCount int) {
	_ = p.bar.Set(done)
	p.bar.Describe(
		color.CyanString(p.label) +
			color.GreenString("[passed: %d", passedCount) +
			" | " +
			color.RedString("failed: %d]", failedCount),
	)
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	_ = p.bar.Finish()
}
