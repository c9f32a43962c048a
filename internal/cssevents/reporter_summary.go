package cssevents

import (
	"fmt"
	"io"
)

// SummaryReporter prints statistics and event streams
type SummaryReporter struct {
	w         io.Writer
	useColors bool
}

// NewSummaryReporter creates a summary reporter
func NewSummaryReporter(w io.Writer, useColors bool) *SummaryReporter {
	return &SummaryReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs totals over every scanned file
func (r *SummaryReporter) PrintStatistics(result Result) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Stylesheet Statistics", r.useColors))
	fmt.Fprintln(r.w, "---------------------")

	fmt.Fprintf(r.w, "Files Scanned:  %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Files Skipped:  %d\n", result.FilesSkipped)
	fmt.Fprintf(r.w, "Rules:          %d\n", result.Totals.Rules)
	fmt.Fprintf(r.w, "Declarations:   %d\n", result.Totals.Declarations)
	fmt.Fprintf(r.w, "Imports:        %d\n", result.Totals.Imports)
	fmt.Fprintf(r.w, "Errors:         %d\n", result.ErrorCount)
	fmt.Fprintf(r.w, "Warnings:       %d\n", result.WarningCount)
}

// PrintFiles shows one line of counts per file
func (r *SummaryReporter) PrintFiles(result Result) {
	if len(result.Files) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Files", r.useColors))
	fmt.Fprintln(r.w, "-----")

	for _, f := range result.Files {
		status := RenderStyle(StyleGreen, "ok", r.useColors)
		if f.Failed {
			status = RenderStyle(StyleYellow, "failed", r.useColors)
		}
		fmt.Fprintf(r.w, "%s: %s, %s, %s (%s)\n",
			f.Path,
			pluralizeCount(f.Counts.Rules, "rule", "rules"),
			pluralizeCount(f.Counts.Declarations, "declaration", "declarations"),
			pluralizeCount(f.Counts.Imports, "import", "imports"),
			status)
	}
}

// PrintEvents prints the event stream of every file, one event per line
func (r *SummaryReporter) PrintEvents(result Result) {
	for i, f := range result.Files {
		if i > 0 {
			fmt.Fprintln(r.w, "")
		}
		fmt.Fprintln(r.w, RenderStyle(StyleCyan, f.Path+":", r.useColors))
		for _, e := range f.Events {
			fmt.Fprintf(r.w, "  %s\n", e)
		}
		if f.Failed {
			fmt.Fprintln(r.w, RenderStyle(StyleYellow, "  (stopped at syntax error)", r.useColors))
		}
	}
}
