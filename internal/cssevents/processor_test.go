package cssevents

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yacobolo/cssevents/internal/cssparse"
	"github.com/yacobolo/cssevents/internal/stylesheet"
)

func checkConfig(dir string) Config {
	return Config{
		SourceDir:        dir,
		Includes:         []string{"**/*.css"},
		RespectGitignore: true,
		MaxNesting:       cssparse.DefaultMaxNesting,
	}
}

func TestProcess(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"ok.css":     "@import url(base.css);\n.a .b{fill:#fff;}\ng, path{stroke:none}\n",
		"broken.css": "a{color:red}\n\nb{\n  color:blue\n",
	})

	result, err := Process(checkConfig(dir), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 2, result.FilesScanned)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, 0, result.WarningCount)
	assert.Equal(t, stylesheet.Counts{Rules: 4, Declarations: 4, Imports: 1}, result.Totals)

	byName := make(map[string]FileResult)
	for _, f := range result.Files {
		byName[filepath.Base(f.Path)] = f
	}

	ok := byName["ok.css"]
	assert.False(t, ok.Failed)
	assert.Equal(t, []cssparse.Event{
		{Kind: cssparse.EventImport, Text: "url(base.css)"},
		{Kind: cssparse.EventSelector, Text: ".a"},
		{Kind: cssparse.EventSelector, Text: ".b"},
		{Kind: cssparse.EventStartRule},
		{Kind: cssparse.EventProperty, Text: "fill"},
		{Kind: cssparse.EventValue, Text: "#fff"},
		{Kind: cssparse.EventEndRule},
		{Kind: cssparse.EventSelector, Text: "g,"},
		{Kind: cssparse.EventSelector, Text: "path"},
		{Kind: cssparse.EventStartRule},
		{Kind: cssparse.EventProperty, Text: "stroke"},
		{Kind: cssparse.EventValue, Text: "none"},
		{Kind: cssparse.EventEndRule},
	}, ok.Events)

	broken := byName["broken.css"]
	assert.True(t, broken.Failed)
	require.Len(t, result.Issues, 1)
	issue := result.Issues[0]
	assert.Equal(t, LinterParse, issue.FromLinter)
	assert.Equal(t, SeverityError, issue.Severity)
	assert.Equal(t, "unclosed block", issue.Text)
	assert.Equal(t, broken.Path, issue.Pos.Filename)
	assert.Equal(t, 5, issue.Pos.Line)
	assert.Equal(t, 1, issue.Pos.Column)
}

func TestProcessErrorPosition(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"paren.css": "a{fill:red}\n  b{fill:blue)}\n",
	})

	result, err := Process(checkConfig(dir), nil)
	require.NoError(t, err)
	require.Len(t, result.Issues, 1)

	issue := result.Issues[0]
	assert.Equal(t, "unexpected close in declaration block )", issue.Text)
	assert.Equal(t, 2, issue.Pos.Line)
	assert.Equal(t, 15, issue.Pos.Column)
	assert.Equal(t, []string{"  b{fill:blue)}"}, issue.SourceLines)
}

func TestProcessWarnings(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"rules.css": ".empty{}\n.twice{\n  fill:red;\n  FILL:blue;\n}\n",
	})

	result, err := Process(checkConfig(dir), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ErrorCount)
	assert.Equal(t, 2, result.WarningCount)
	require.Len(t, result.Issues, 2)

	empty := result.Issues[0]
	assert.Equal(t, LinterRules, empty.FromLinter)
	assert.Equal(t, `empty rule ".empty"`, empty.Text)
	assert.Equal(t, IssuePos{Filename: empty.Pos.Filename, Line: 1, Column: 1}, empty.Pos)

	dup := result.Issues[1]
	assert.Equal(t, `property "fill" set more than once in ".twice"`, dup.Text)
	assert.Equal(t, 4, dup.Pos.Line)
	assert.Equal(t, 3, dup.Pos.Column)
	assert.Equal(t, []string{"  FILL:blue;"}, dup.SourceLines)

	assert.False(t, result.Failed(Config{}))
	assert.True(t, result.Failed(Config{Strict: true}))
}

func TestProcessInline(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"style.css": "fill:red; stroke-width:2",
	})
	config := checkConfig(dir)
	config.Inline = true

	result, err := Process(config, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Issues)
	assert.Equal(t, stylesheet.Counts{Declarations: 2}, result.Totals)
}

func TestProcessMaxNesting(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"deep.css": "a{b:c} [[[[x]]]]",
	})
	config := checkConfig(dir)
	config.MaxNesting = 2

	result, err := Process(config, nil)
	require.NoError(t, err)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "blocks nested too deeply", result.Issues[0].Text)
	assert.True(t, result.Failed(config))
}

func TestProcessScanError(t *testing.T) {
	config := checkConfig(t.TempDir())
	config.Includes = []string{"[a-"}
	_, err := Process(config, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan failed")
}

func TestPosition(t *testing.T) {
	tests := []struct {
		content    string
		offset     int
		wantLine   int
		wantColumn int
	}{
		{content: "abc", offset: 0, wantLine: 1, wantColumn: 1},
		{content: "abc", offset: 2, wantLine: 1, wantColumn: 3},
		{content: "a\nbc", offset: 3, wantLine: 2, wantColumn: 2},
		{content: "é\nx", offset: 2, wantLine: 1, wantColumn: 2},
		{content: "ab", offset: 10, wantLine: 1, wantColumn: 3},
	}
	for _, tt := range tests {
		line, column := position(tt.content, tt.offset)
		assert.Equal(t, tt.wantLine, line, "%q@%d", tt.content, tt.offset)
		assert.Equal(t, tt.wantColumn, column, "%q@%d", tt.content, tt.offset)
	}
}

func TestSourceLine(t *testing.T) {
	content := "one\r\ntwo\nthree"
	assert.Equal(t, "one", sourceLine(content, 1))
	assert.Equal(t, "three", sourceLine(content, 3))
	assert.Equal(t, "", sourceLine(content, 0))
	assert.Equal(t, "", sourceLine(content, 4))
}
