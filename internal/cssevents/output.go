package cssevents

import "io"

// DefaultOutputFormat lists issues only, the way linters print in CI.
const DefaultOutputFormat = OutputIssues

// DetermineOutputFormat maps the --output-format flag to a format. With
// quiet set nothing is printed, so the flag is ignored.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	if quiet {
		return DefaultOutputFormat
	}
	switch f := OutputFormat(formatFlag); f {
	case OutputIssues, OutputSummary, OutputEvents, OutputJSON:
		return f
	}
	return DefaultOutputFormat
}

// WriteOutput renders result to w in format.
func WriteOutput(w io.Writer, result *Result, format OutputFormat, config Config) error {
	switch format {
	case OutputSummary:
		summary := NewSummaryReporter(w, shouldUseColors(config))
		summary.PrintStatistics(*result)
		summary.PrintFiles(*result)
	case OutputEvents:
		NewSummaryReporter(w, shouldUseColors(config)).PrintEvents(*result)
	case OutputJSON:
		return WriteJSON(w, result)
	default:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)
	}
	return nil
}
