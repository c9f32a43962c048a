package cssparse

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sel(text string) Event  { return Event{Kind: EventSelector, Text: text} }
func prop(text string) Event { return Event{Kind: EventProperty, Text: text} }
func val(text string) Event  { return Event{Kind: EventValue, Text: text} }
func imp(text string) Event  { return Event{Kind: EventImport, Text: text} }

var (
	start = Event{Kind: EventStartRule}
	end   = Event{Kind: EventEndRule}
)

func record(t *testing.T, css string, inline bool) []Event {
	t.Helper()
	rec := &Recorder{}
	require.NoError(t, Parse(css, rec, inline))
	return rec.Events
}

func TestParseEvents(t *testing.T) {
	tests := []struct {
		name   string
		css    string
		inline bool
		want   []Event
	}{
		{
			name: "descendant selector",
			css:  ".a .b{fill:#fff;}",
			want: []Event{sel(".a"), sel(".b"), start, prop("fill"), val("#fff"), end},
		},
		{
			name: "selector list keeps commas",
			css:  "g, path.a { stroke: none }",
			want: []Event{sel("g,"), sel("path.a"), start, prop("stroke"), val("none"), end},
		},
		{
			name: "multiple declarations",
			css:  "rect { fill: red; stroke-width: 2px; opacity: .5 }",
			want: []Event{
				sel("rect"), start,
				prop("fill"), val("red"),
				prop("stroke-width"), val("2px"),
				prop("opacity"), val(".5"),
				end,
			},
		},
		{
			name: "property names are lower-cased, values are not",
			css:  "a{FILL:Red;Stroke-Width:1PX}",
			want: []Event{sel("a"), start, prop("fill"), val("Red"), prop("stroke-width"), val("1PX"), end},
		},
		{
			name: "multi-token value joined with single spaces",
			css:  "a{font:  bold   12px\n serif;}",
			want: []Event{sel("a"), start, prop("font"), val("bold 12px serif"), end},
		},
		{
			name: "function value kept verbatim",
			css:  "a{fill:rgb(0, 128, 255)}",
			want: []Event{sel("a"), start, prop("fill"), val("rgb(0, 128, 255)"), end},
		},
		{
			name: "nested blocks in value",
			css:  "a{transform:translate(calc(1px + 2px), [x])}",
			want: []Event{sel("a"), start, prop("transform"), val("translate(calc(1px + 2px), [x])"), end},
		},
		{
			name: "quoted value drops quotes",
			css:  `a{font-family:"Open Sans", 'serif'}`,
			want: []Event{sel("a"), start, prop("font-family"), val("Open Sans, serif"), end},
		},
		{
			name: "quoted value may contain structural characters",
			css:  `a{content:"}{;x"}`,
			want: []Event{sel("a"), start, prop("content"), val("}{;x"), end},
		},
		{
			name: "blocks in property names are dropped",
			css:  "a{fi(x)ll:red}",
			want: []Event{sel("a"), start, prop("fill"), val("red"), end},
		},
		{
			name: "declaration without colon is ignored",
			css:  "a{color}",
			want: []Event{sel("a"), start, end},
		},
		{
			name: "quoted text ending in the terminator still ends the value",
			css:  `a{content:"x;"}`,
			want: []Event{sel("a"), start, prop("content"), val("x"), end},
		},
		{
			name: "empty rule",
			css:  "a{}",
			want: []Event{sel("a"), start, end},
		},
		{
			name: "attribute qualifier is consumed but not reported",
			css:  `rect[id="x"] .b{fill:red}`,
			want: []Event{sel("rect"), sel(".b"), start, prop("fill"), val("red"), end},
		},
		{
			name: "pseudo class with parens loses its argument",
			css:  "li:nth-child(2n){fill:red}",
			want: []Event{sel("li:nth-child"), start, prop("fill"), val("red"), end},
		},
		{
			name: "selector list without block produces no rule",
			css:  ".a .b",
			want: []Event{sel(".a"), sel(".b")},
		},
		{
			name: "stray top-level block is skipped",
			css:  "(a b) [c] {d} a{fill:red}",
			want: []Event{sel("a"), start, prop("fill"), val("red"), end},
		},
		{
			name: "at-rule with body is skipped",
			css:  "@media screen { a { fill: red } } b{fill:blue}",
			want: []Event{sel("b"), start, prop("fill"), val("blue"), end},
		},
		{
			name: "semicolon after at-rule body is swallowed",
			css:  "@font-face { src: x };b{fill:blue}",
			want: []Event{sel("b"), start, prop("fill"), val("blue"), end},
		},
		{
			name: "import before rule sets",
			css:  "@import url(x.css); a{color:red} @import url(y.css);",
			want: []Event{imp("url(x.css)"), sel("a"), start, prop("color"), val("red"), end},
		},
		{
			name: "import with quoted target and media list",
			css:  `@import "a.css" screen, print;`,
			want: []Event{imp("a.css screen, print")},
		},
		{
			name: "import at end of input without semicolon",
			css:  "@import x.css",
			want: []Event{imp("x.css")},
		},
		{
			name: "other at-rules are never reported",
			css:  "@charset \"utf-8\"; @namespace svg url(http://www.w3.org/2000/svg);",
			want: nil,
		},
		{
			name: "keyword must be exactly @import",
			css:  "@IMPORT x.css; @imports y.css;",
			want: nil,
		},
		{
			name:   "inline declarations",
			css:    "fill: red; stroke:#000",
			inline: true,
			want:   []Event{prop("fill"), val("red"), prop("stroke"), val("#000")},
		},
		{
			name:   "inline block ends at brace close",
			css:    "fill: red } stroke: blue",
			inline: true,
			want:   []Event{prop("fill"), val("red")},
		},
		{
			name:   "inline mode never reports rules or imports",
			css:    "@import x; a: b",
			inline: true,
			want:   []Event{prop("@import x; a"), val("b")},
		},
		{
			name: "empty input",
			css:  "  \n\t ",
			want: nil,
		},
		{
			name: "non-ascii text survives",
			css:  "текст{content:\"é—ü\"}",
			want: []Event{sel("текст"), start, prop("content"), val("é—ü"), end},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := record(t, tt.css, tt.inline)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommentsAreInvisible(t *testing.T) {
	plain := record(t, "a{color:red}", false)
	tests := []string{
		"a{/*c*/color:red}",
		"/* lead */a{color:red}",
		"a{color:/* in value */red}",
		"a{color:red/**/}",
		"a{color:red}/* trailing */",
		"a{color:red/* ** tricky * / */}",
	}
	for _, css := range tests {
		t.Run(css, func(t *testing.T) {
			assert.Equal(t, plain, record(t, css, false))
		})
	}
}

func TestCommentBetweenValueParts(t *testing.T) {
	got := record(t, "a{font:bold/*x*/ 12px}", false)
	assert.Equal(t, []Event{sel("a"), start, prop("font"), val("bold 12px"), end}, got)
}

func TestSlashWithoutStarIsLiteral(t *testing.T) {
	got := record(t, "a{font:12px/1.5 serif}", false)
	assert.Equal(t, []Event{sel("a"), start, prop("font"), val("12px/1.5 serif"), end}, got)
}

func TestHexEscapes(t *testing.T) {
	tests := []struct {
		name string
		css  string
		want string
	}{
		{name: "quoted", css: `a{content:"\41"}`, want: "A"},
		{name: "unquoted", css: `a{content:\41}`, want: "A"},
		{name: "unquoted followed by text", css: `a{content:\41 b}`, want: "A b"},
		{name: "four digits then literal digit", css: `a{content:"\00411"}`, want: "A1"},
		{name: "two escapes in a row", css: `a{content:"\41\42"}`, want: "AB"},
		{name: "escaped quote", css: `a{content:"x\"y"}`, want: `x"y`},
		{name: "escaped structural character", css: `a{content:x\{y}`, want: "x{y"},
		{name: "escaped semicolon does not end the value", css: `a{content:x\;y}`, want: "x;y"},
		{name: "escape ended by non-hex character", css: `a{content:"\41g"}`, want: "Ag"},
		{name: "four-digit cap", css: `a{content:"\0000411"}`, want: "\x00411"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := record(t, tt.css, false)
			require.Len(t, got, 5)
			assert.Equal(t, val(tt.want), got[3])
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		css    string
		inline bool
		reason string
	}{
		{name: "missing closing brace", css: "a{color:red", reason: "unclosed block"},
		{name: "unclosed paren in value", css: "a{fill:rgb(0,0,0}", reason: "unmatched block }"},
		{name: "mismatched close", css: "(a]", reason: "unmatched block ]"},
		{name: "unclosed top-level block", css: "[a", reason: "unclosed block"},
		{name: "top-level close", css: "} a{}", reason: "unexpected top-level close }"},
		{name: "close in selector", css: "a ) {}", reason: "unexpected close in selector )"},
		{name: "close in declaration block", css: "a{fill:red]}", reason: "unexpected close in declaration block ]"},
		{name: "close in at-rule", css: "@import x);", reason: "unexpected close in at-rule )"},
		{name: "unclosed string", css: `a{content:"abc}`, reason: `unclosed string "`},
		{name: "unclosed single-quoted string", css: `a{content:'abc}`, reason: `unclosed string '`},
		{name: "unclosed comment", css: "a{color:red/* never", reason: "unclosed comment"},
		{name: "unclosed comment ending in star", css: "a/* *", reason: "unclosed comment"},
		{name: "inline close paren", css: "fill: red)", inline: true, reason: "unexpected close in declaration block )"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &Recorder{}
			err := Parse(tt.css, rec, tt.inline)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))

			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tt.reason, syntaxErr.Reason)
			for _, ev := range rec.Events {
				assert.NotEqual(t, EventEndRule, ev.Kind, "no rule may end after a fatal error")
			}
		})
	}
}

func TestBlocksBalancedAfterParse(t *testing.T) {
	tests := []struct {
		name   string
		css    string
		inline bool
	}{
		{name: "empty", css: ""},
		{name: "plain rule", css: "a{fill:red}"},
		{name: "value blocks", css: "a{fill:rgb(1,(2),3);mask:url([x])}"},
		{name: "selector qualifiers", css: "a[href] b:not(.c){fill:red}"},
		{name: "at-rule body", css: "@media print { a{fill:red} };"},
		{name: "at-rule prelude block", css: "@supports (display:grid) { x{} }"},
		{name: "import", css: "@import url(a.css) screen;"},
		{name: "stray top-level blocks", css: "(a) [b] {c} a{}"},
		{name: "inline", css: "fill:rgb(1,2,3);stroke:red", inline: true},
		{name: "inline ending in brace", css: "fill:red}", inline: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New().newState(tt.css, &Recorder{})
			require.NoError(t, s.run(tt.inline))
			assert.Zero(t, s.blocks.depth())
		})
	}
}

func TestMissingBraceEmitsNoEndRule(t *testing.T) {
	rec := &Recorder{}
	err := Parse("a{color:red", rec, false)
	require.ErrorIs(t, err, ErrMalformed)
	assert.Equal(t, []Event{sel("a"), start, prop("color"), val("red")}, rec.Events)
}

func TestSyntaxErrorPosition(t *testing.T) {
	err := Parse("a{\n  fill: red;\n}\n)", &Recorder{}, false)
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, 4, syntaxErr.Line)
	assert.Equal(t, 2, syntaxErr.Column)
	assert.Equal(t, "malformed stylesheet fragment: unexpected top-level close ) at 4:2", err.Error())
}

func TestMaxNesting(t *testing.T) {
	deep := strings.Repeat("(", 10) + strings.Repeat(")", 10)

	p := New(WithMaxNesting(5))
	err := p.Parse(deep, &Recorder{}, false)
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "blocks nested too deeply", syntaxErr.Reason)

	require.NoError(t, New(WithMaxNesting(10)).Parse(deep, &Recorder{}, false))
	require.NoError(t, New(WithMaxNesting(0)).Parse(strings.Repeat("[", 5000)+strings.Repeat("]", 5000), &Recorder{}, false))
}

func TestRuleBodyCountsTowardsNesting(t *testing.T) {
	p := New(WithMaxNesting(1))
	err := p.Parse("a{fill:rgb(1,2,3)}", &Recorder{}, false)
	require.ErrorIs(t, err, ErrMalformed)

	require.NoError(t, p.Parse("fill:rgb(1,2,3)", &Recorder{}, true))
}

func TestParseIsRepeatable(t *testing.T) {
	css := `@import "base.css"; .a, .b > c { fill: url(#grad); stroke: #FFF } @media print { x{} }`
	p := New()
	first := &Recorder{}
	second := &Recorder{}
	require.NoError(t, p.Parse(css, first, false))
	require.NoError(t, p.Parse(css, second, false))
	assert.Equal(t, first.Events, second.Events)
	assert.NotEmpty(t, first.Events)
}

func TestImportGateIsPerCall(t *testing.T) {
	p := New()
	require.NoError(t, p.Parse("a{}", &Recorder{}, false))

	rec := &Recorder{}
	require.NoError(t, p.Parse("@import x.css;", rec, false))
	assert.Equal(t, []Event{imp("x.css")}, rec.Events)
}

func TestMultiHandler(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	require.NoError(t, Parse("@import i; a{b:c}", MultiHandler(a, b), false))
	assert.Equal(t, a.Events, b.Events)
	assert.Equal(t, []Event{imp("i"), sel("a"), start, prop("b"), val("c"), end}, a.Events)
}
