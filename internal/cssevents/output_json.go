package cssevents

import (
	"encoding/json"
	"io"
	"time"

	"github.com/yacobolo/cssevents/internal/cssparse"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Stats     JSONStats   `json:"stats"`
	Files     []JSONFile  `json:"files"`
	Issues    []JSONIssue `json:"issues"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	FilesScanned int `json:"files_scanned"`
	FilesSkipped int `json:"files_skipped"`
}

// JSONStats contains totals over every parsed file
type JSONStats struct {
	Rules        int `json:"rules"`
	Declarations int `json:"declarations"`
	Imports      int `json:"imports"`
}

// JSONFile is the outcome for one file, including its event stream
type JSONFile struct {
	File   string           `json:"file"`
	Failed bool             `json:"failed"`
	Stats  JSONStats        `json:"stats"`
	Events []cssparse.Event `json:"events"`
}

// JSONIssue represents a single issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"` // Optional source line
}

// WriteJSON writes the check result as JSON
func WriteJSON(w io.Writer, result *Result) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts Result to JSONOutput
func buildJSONOutput(result *Result) JSONOutput {
	jsonIssues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		jsonIssues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	jsonFiles := make([]JSONFile, len(result.Files))
	for i, f := range result.Files {
		events := f.Events
		if events == nil {
			events = []cssparse.Event{}
		}
		jsonFiles[i] = JSONFile{
			File:   f.Path,
			Failed: f.Failed,
			Stats: JSONStats{
				Rules:        f.Counts.Rules,
				Declarations: f.Counts.Declarations,
				Imports:      f.Counts.Imports,
			},
			Events: events,
		}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       result.ErrorCount,
			Warnings:     result.WarningCount,
			FilesScanned: result.FilesScanned,
			FilesSkipped: result.FilesSkipped,
		},
		Stats: JSONStats{
			Rules:        result.Totals.Rules,
			Declarations: result.Totals.Declarations,
			Imports:      result.Totals.Imports,
		},
		Files:  jsonFiles,
		Issues: jsonIssues,
	}
}
