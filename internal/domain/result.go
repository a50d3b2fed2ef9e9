package domain

import "time"

// Invocation is a rendered command ready to be executed
type Invocation struct {
	Target   string   // FILE or FILE:LINE as given by the user
	Language Language // Language of the target file
	Command  string   // Shell command to execute
	Dir      string   // Working directory
}

// RunResult represents the result of executing one invocation
type RunResult struct {
	Invocation Invocation
	Success    bool          // Whether the command exited with status 0
	ExitCode   int           // Exit status, -1 when the command could not start
	Output     string        // Combined stdout and stderr
	Error      error         // Error if execution failed
	Duration   time.Duration // Time taken to execute
	Summary    RunSummary    // Counts parsed from Output
}

// RunSummary holds the test case counts parsed from runner output
type RunSummary struct {
	Passed   int      `json:"passed"`
	Failed   int      `json:"failed"`
	Failures []string `json:"failures,omitempty"` // Names of the failing tests, when the runner lists them
}

// HistoryEntry is one persisted run
type HistoryEntry struct {
	Target          string   `json:"target"`
	Language        Language `json:"language"`
	Command         string   `json:"command"`
	Dir             string   `json:"dir"`
	Success         bool     `json:"success"`
	ExitCode        int      `json:"exit_code"`
	Passed          int      `json:"passed"`
	Failed          int      `json:"failed"`
	Failures        []string `json:"failures,omitempty"`
	Duration        string   `json:"duration"`
	DurationSeconds float64  `json:"duration_seconds"`
	Timestamp       string   `json:"timestamp"`
}

// History is the on-disk structure of the run history
type History struct {
	Entries []HistoryEntry `json:"entries"`
}
