package cssevents

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Reporter prints check issues as "file:line:col: text (linter)" lines,
// each optionally followed by its source line and a caret.
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

func NewReporter(w io.Writer, config Config) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       shouldUseColors(config),
		printLines:      config.PrintIssuedLines,
		printLinterName: config.PrintLinterName,
	}
}

// shouldUseColors honors --color, then FORCE_COLOR and GITHUB_ACTIONS,
// then falls back to whether stdout is a terminal.
func shouldUseColors(config Config) bool {
	switch {
	case config.UseColors:
		return true
	case os.Getenv("FORCE_COLOR") != "", os.Getenv("GITHUB_ACTIONS") == "true":
		return true
	}
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// sortedIssues orders issues by file and position without touching the
// caller's slice. Issues at the same position keep their order.
func sortedIssues(issues []Issue) []Issue {
	sorted := append([]Issue(nil), issues...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Pos, sorted[j].Pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return sorted
}

func (r *Reporter) PrintIssues(issues []Issue) {
	for _, issue := range sortedIssues(issues) {
		r.printIssue(issue)
	}
}

func (r *Reporter) printIssue(issue Issue) {
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	text := issue.Text
	switch issue.Severity {
	case SeverityError:
		text = RenderStyle(StyleRed, text, r.useColors)
	case SeverityWarning:
		text = RenderStyle(StyleYellow, text, r.useColors)
	}

	var linter string
	if r.printLinterName {
		linter = RenderStyle(StyleGray, " ("+issue.FromLinter+")", r.useColors)
	}
	fmt.Fprintf(r.w, "%s %s%s\n", RenderStyle(StyleCyan, location, r.useColors), text, linter)

	if !r.printLines || len(issue.SourceLines) == 0 {
		return
	}
	for _, line := range issue.SourceLines {
		fmt.Fprintf(r.w, "\t%s\n", line)
	}
	caret := r.buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
	fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
}

// buildCaretIndicator pads a "^" out to column, counted in runes. Tabs in
// the prefix stay tabs so the caret sits under the right character.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	runes := []rune(sourceLine)
	prefix := min(column-1, len(runes))

	var b strings.Builder
	for _, ch := range runes[:prefix] {
		if ch == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
	}
	b.WriteRune('^')
	return b.String()
}

// PrintSummary prints the issue totals and a per-linter breakdown.
func (r *Reporter) PrintSummary(result Result) {
	total := len(result.Issues)

	fmt.Fprintln(r.w)
	if result.ErrorCount > 0 && result.WarningCount > 0 {
		fmt.Fprintf(r.w, "%s (%s, %s):\n",
			pluralizeCount(total, "issue", "issues"),
			pluralizeCount(result.ErrorCount, "error", "errors"),
			pluralizeCount(result.WarningCount, "warning", "warnings"))
	} else {
		fmt.Fprintf(r.w, "%s:\n", pluralizeCount(total, "issue", "issues"))
	}

	byLinter := make(map[string]int)
	for _, issue := range result.Issues {
		byLinter[issue.FromLinter]++
	}
	linters := make([]string, 0, len(byLinter))
	for linter := range byLinter {
		linters = append(linters, linter)
	}
	sort.Strings(linters)
	for _, linter := range linters {
		fmt.Fprintf(r.w, "* %s: %d\n", linter, byLinter[linter])
	}

	if total > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Run with --output-format summary to see per-file statistics", r.useColors))
	}
}

func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
