package cssevents

// Issue represents a single problem in golangci-lint format
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "cssparse"
	Text        string   `json:"Text"`        // "unclosed comment"
	Severity    string   `json:"Severity"`    // "error", "warning"
	SourceLines []string `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"`
	Line     int    `json:"Line"`
	Column   int    `json:"Column"` // 1-based, in runes
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Linter names
const (
	LinterParse = "cssparse"
	LinterRules = "cssrules"
)

// Issue texts for warnings found in parsed rules
const (
	IssueEmptyRule         = "empty rule %q"
	IssueDuplicateProperty = "property %q set more than once in %q"
)
