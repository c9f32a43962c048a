package cssevents

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/yacobolo/cssevents/internal/cssparse"
	"github.com/yacobolo/cssevents/internal/stylesheet"
)

// Process scans config.Includes under config.SourceDir and parses every
// file. Syntax errors become issues; failing to read a file is an error.
func Process(config Config, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("check")

	// 1. Scan files
	files, stats, err := ScanFiles(config.SourceDir, config.Includes, config.RespectGitignore)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	log.Debug("scanned files",
		zap.Int("discovered", stats.FilesDiscovered),
		zap.Int("skipped", stats.FilesSkipped))

	result := &Result{
		FilesScanned: stats.FilesScanned,
		FilesSkipped: stats.FilesSkipped,
	}

	// 2. Parse each file
	parser := cssparse.New(cssparse.WithMaxNesting(config.MaxNesting))
	for _, path := range files {
		// #nosec G304 - paths come from the configured include globs
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		file, issues, err := processFile(parser, path, string(data), config.Inline)
		if err != nil {
			return nil, err
		}
		log.Debug("parsed file",
			zap.String("file", path),
			zap.Int("events", len(file.Events)),
			zap.Int("rules", file.Counts.Rules),
			zap.Bool("failed", file.Failed))

		result.Files = append(result.Files, file)
		result.Issues = append(result.Issues, issues...)
		result.Totals.Add(file.Counts)
	}

	// 3. Count by severity
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			result.ErrorCount++
		case SeverityWarning:
			result.WarningCount++
		}
	}

	return result, nil
}

// processFile parses one file's content and checks the rules it yields.
func processFile(parser *cssparse.Parser, path, content string, inline bool) (FileResult, []Issue, error) {
	var (
		rec cssparse.Recorder
		col stylesheet.Collector
	)
	file := FileResult{Path: path}

	err := parser.Parse(content, cssparse.MultiHandler(&rec, &col), inline)
	file.Events = rec.Events
	file.Counts = col.Sheet.Counts()

	var syntaxErr *cssparse.SyntaxError
	switch {
	case errors.As(err, &syntaxErr):
		file.Failed = true
		return file, []Issue{{
			FromLinter:  LinterParse,
			Text:        syntaxErr.Reason,
			Severity:    SeverityError,
			SourceLines: []string{sourceLine(content, syntaxErr.Line)},
			Pos: IssuePos{
				Filename: path,
				Line:     syntaxErr.Line,
				Column:   syntaxErr.Column,
			},
		}}, nil
	case err != nil:
		return file, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return file, checkRules(path, content, col.Sheet.Rules), nil
}

// checkRules warns about empty rules and properties repeated within a
// rule. Positions are found by searching content for the first selector
// and the property names, so they are best effort.
func checkRules(path, content string, rules []stylesheet.Rule) []Issue {
	var issues []Issue
	cursor := 0
	for _, rule := range rules {
		name := strings.Join(rule.Selectors, ", ")
		start := cursor
		if len(rule.Selectors) > 0 {
			first := strings.Fields(rule.Selectors[0])[0]
			if at, ok := locate(content, first, cursor); ok {
				start, cursor = at, at+len(first)
			}
		}

		if len(rule.Declarations) == 0 {
			issues = append(issues, newWarning(path, content, start, fmt.Sprintf(IssueEmptyRule, name)))
			continue
		}

		seen := make(map[string]bool, len(rule.Declarations))
		for _, d := range rule.Declarations {
			at := cursor
			if found, ok := locate(content, d.Property, cursor); ok {
				at, cursor = found, found+len(d.Property)
			}
			if seen[d.Property] {
				issues = append(issues, newWarning(path, content, at,
					fmt.Sprintf(IssueDuplicateProperty, d.Property, name)))
			}
			seen[d.Property] = true
		}
	}
	return issues
}

func newWarning(path, content string, offset int, text string) Issue {
	line, column := position(content, offset)
	return Issue{
		FromLinter:  LinterRules,
		Text:        text,
		Severity:    SeverityWarning,
		SourceLines: []string{sourceLine(content, line)},
		Pos:         IssuePos{Filename: path, Line: line, Column: column},
	}
}

// locate returns the offset of needle at or after from. Property names
// are also tried case-insensitively since the parser lower-cases them.
func locate(content, needle string, from int) (int, bool) {
	if needle == "" || from > len(content) {
		return 0, false
	}
	rest := content[from:]
	i := strings.Index(rest, needle)
	if i < 0 {
		i = strings.Index(strings.ToLower(rest), needle)
	}
	if i < 0 {
		return 0, false
	}
	return from + i, true
}

// position converts a byte offset into a 1-based line and rune column.
func position(content string, offset int) (int, int) {
	if offset > len(content) {
		offset = len(content)
	}
	prefix := content[:offset]
	line := strings.Count(prefix, "\n") + 1
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	return line, utf8.RuneCountInString(prefix[lineStart:]) + 1
}

// sourceLine returns the 1-based line of content, without its newline.
func sourceLine(content string, line int) string {
	lines := strings.Split(content, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}
