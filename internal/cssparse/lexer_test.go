package cssparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourcePushback(t *testing.T) {
	src := newSource("aé")

	r, ok := src.read()
	require.True(t, ok)
	assert.Equal(t, 'a', r)

	r, ok = src.read()
	require.True(t, ok)
	assert.Equal(t, 'é', r)
	assert.Equal(t, 3, src.offset())

	require.NoError(t, src.unread(r))
	assert.Equal(t, 1, src.offset())

	err := src.unread('x')
	require.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "cannot push back more than one character")

	r, ok = src.read()
	require.True(t, ok)
	assert.Equal(t, 'é', r)

	_, ok = src.read()
	assert.False(t, ok)
}

type lexed struct {
	kind  tokenKind
	text  string
	space bool
}

func lexAll(t *testing.T, input string, stop rune) []lexed {
	t.Helper()
	l := newLexer(input)
	var out []lexed
	for {
		kind, err := l.nextToken(stop)
		require.NoError(t, err)
		if kind == tokenEnd {
			return out
		}
		out = append(out, lexed{kind: kind, text: string(l.text), space: l.sawSpace})
	}
}

func TestLexerTokens(t *testing.T) {
	got := lexAll(t, `a  {b:c} ( [ 'q r' ) ]`, noStop)
	want := []lexed{
		{kind: tokenIdent, text: "a"},
		{kind: tokenBraceOpen, space: true},
		{kind: tokenIdent, text: "b:c"},
		{kind: tokenBraceClose},
		{kind: tokenParenOpen, space: true},
		{kind: tokenBracketOpen, space: true},
		{kind: tokenIdent, text: "q r", space: true},
		{kind: tokenParenClose, space: true},
		{kind: tokenBracketClose, space: true},
	}
	assert.Equal(t, want, got)
}

func TestLexerStopCharacter(t *testing.T) {
	got := lexAll(t, "fill:red", ':')
	require.Len(t, got, 2)
	assert.Equal(t, "fill:", got[0].text)
	assert.Equal(t, "red", got[1].text)
}

func TestLexerCommentMarksSpace(t *testing.T) {
	got := lexAll(t, "a/*x*/b", noStop)
	want := []lexed{
		{kind: tokenIdent, text: "a", space: true},
		{kind: tokenIdent, text: "b"},
	}
	assert.Equal(t, want, got)
}

func TestLexerQuoteEndsIdentifier(t *testing.T) {
	got := lexAll(t, `url"x"`, noStop)
	require.Len(t, got, 2)
	assert.Equal(t, "url", got[0].text)
	assert.Equal(t, "x", got[1].text)
}

func TestLexerNoBreakSpaceIsText(t *testing.T) {
	got := lexAll(t, "a\u00a0b", noStop)
	require.Len(t, got, 1)
	assert.Equal(t, "a\u00a0b", got[0].text)
}

func TestLexerSpaceSet(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []lexed
	}{
		{
			name:  "information separators are skipped",
			input: "\u001c\u001fa",
			want:  []lexed{{kind: tokenIdent, text: "a", space: true}},
		},
		{
			name:  "vertical tab and form feed are skipped",
			input: "\v\fa",
			want:  []lexed{{kind: tokenIdent, text: "a", space: true}},
		},
		{
			name:  "ideographic space is skipped",
			input: "\u3000a",
			want:  []lexed{{kind: tokenIdent, text: "a", space: true}},
		},
		{
			name:  "next line is text",
			input: "\u0085a",
			want:  []lexed{{kind: tokenIdent, text: "\u0085a"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lexAll(t, tt.input, noStop))
		})
	}
}

func TestTokenKindString(t *testing.T) {
	assert.Equal(t, "{", tokenBraceOpen.String())
	assert.Equal(t, "end", tokenEnd.String())
	assert.Equal(t, "unknown", tokenKind(99).String())
	assert.Equal(t, ']', tokenBracketClose.char())
	assert.True(t, tokenParenOpen.isOpen())
	assert.True(t, tokenBraceClose.isClose())
}

func TestBlockStack(t *testing.T) {
	var b blockStack
	assert.Zero(t, b.depth())
	assert.True(t, b.open(tokenBraceOpen))
	assert.True(t, b.open(tokenParenOpen))
	assert.False(t, b.close(tokenBraceClose), "mismatched close must be rejected")
	assert.True(t, b.close(tokenParenClose))
	assert.True(t, b.close(tokenBraceClose))
	assert.Zero(t, b.depth())
	assert.False(t, b.close(tokenBracketClose), "close on empty stack must be rejected")

	limited := blockStack{maxDepth: 1}
	assert.True(t, limited.open(tokenBracketOpen))
	assert.False(t, limited.open(tokenBracketOpen))
	assert.Equal(t, 1, limited.depth())
}
