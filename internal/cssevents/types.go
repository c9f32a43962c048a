package cssevents

import (
	"github.com/yacobolo/cssevents/internal/cssparse"
	"github.com/yacobolo/cssevents/internal/stylesheet"
)

// Config holds batch check configuration
type Config struct {
	SourceDir        string   // "web/styles"
	Includes         []string // ["**/*.css"]
	RespectGitignore bool     // Skip files matched by <SourceDir>/.gitignore (default: true)
	Inline           bool     // Treat every file as a declaration block
	MaxNesting       int      // Block nesting limit (0 = unbounded)
	Verbose          bool     // Enable debug logging
	Strict           bool     // Warnings fail the check too

	// Output options
	PrintIssuedLines bool // Show source lines with issues
	PrintLinterName  bool // Show (cssparse) suffix on issues
	UseColors        bool // Force color output
}

// FileResult is the outcome of parsing one file
type FileResult struct {
	Path   string
	Events []cssparse.Event
	Counts stylesheet.Counts
	Failed bool // Parsing stopped at a syntax error
}

// Result contains batch check results
type Result struct {
	Files        []FileResult
	Issues       []Issue
	FilesScanned int
	FilesSkipped int // Files excluded by .gitignore
	Totals       stylesheet.Counts
	ErrorCount   int
	WarningCount int
}

// Failed reports whether the check should exit non-zero under config.
func (r *Result) Failed(config Config) bool {
	if config.Strict {
		return len(r.Issues) > 0
	}
	return r.ErrorCount > 0
}

// OutputFormat represents the check output format
type OutputFormat string

const (
	// OutputIssues shows only errors/warnings in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows per-file and total statistics
	OutputSummary OutputFormat = "summary"
	// OutputEvents prints the event stream of every file
	OutputEvents OutputFormat = "events"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
)
