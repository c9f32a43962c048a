package stylesheet

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// valueToken is a lexed piece of a value, copied out of the lexer buffer.
type valueToken struct {
	tt   css.TokenType
	data string
}

func lexValue(raw string) []valueToken {
	lexer := css.NewLexer(parse.NewInputString(raw))
	var toks []valueToken
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			return toks
		}
		toks = append(toks, valueToken{tt: tt, data: string(data)})
	}
}

// NewDeclaration builds a Declaration from a raw property value.
func NewDeclaration(property, raw string) Declaration {
	value, important := ParseValue(raw)
	return Declaration{Property: property, Value: value, Important: important}
}

// ParseValue trims a raw declaration value and splits off a trailing
// "!important" marker.
func ParseValue(raw string) (string, bool) {
	toks := lexValue(raw)

	// walk back over: [ws] ident(important) [ws] delim(!)
	i := lastSignificant(toks, len(toks))
	if i < 0 || toks[i].tt != css.IdentToken || !strings.EqualFold(toks[i].data, "important") {
		return strings.TrimSpace(raw), false
	}
	j := lastSignificant(toks, i)
	if j < 0 || toks[j].tt != css.DelimToken || toks[j].data != "!" {
		return strings.TrimSpace(raw), false
	}

	var b strings.Builder
	for _, t := range toks[:j] {
		b.WriteString(t.data)
	}
	return strings.TrimSpace(b.String()), true
}

// lastSignificant returns the index of the last non-whitespace,
// non-comment token before end, or -1.
func lastSignificant(toks []valueToken, end int) int {
	for i := end - 1; i >= 0; i-- {
		if toks[i].tt != css.WhitespaceToken && toks[i].tt != css.CommentToken {
			return i
		}
	}
	return -1
}

// ImportPath extracts the stylesheet location from the text of an @import
// ("url(a.css) screen", "a.css print", ...). It returns "" when there is
// no usable target.
func ImportPath(text string) string {
	toks := lexValue(text)

	i := 0
	for i < len(toks) && toks[i].tt == css.WhitespaceToken {
		i++
	}
	if i == len(toks) {
		return ""
	}

	switch first := toks[i]; first.tt {
	case css.URLToken:
		inner := strings.TrimSuffix(first.data[strings.IndexByte(first.data, '(')+1:], ")")
		return unquote(strings.TrimSpace(inner))
	case css.StringToken:
		return unquote(first.data)
	case css.FunctionToken:
		if !strings.EqualFold(first.data, "url(") {
			return ""
		}
		for _, t := range toks[i+1:] {
			if t.tt == css.StringToken {
				return unquote(t.data)
			}
		}
		return ""
	}

	// bare target: the quotes were already removed, so the path may
	// contain spaces. It runs up to the first comma or media keyword.
	var b strings.Builder
	for _, t := range toks[i:] {
		if t.tt == css.CommaToken {
			break
		}
		b.WriteString(t.data)
	}
	raw := strings.TrimSpace(b.String())
	pos := 0
	for n, w := range strings.Fields(raw) {
		at := pos + strings.Index(raw[pos:], w)
		if n > 0 && isMediaWord(w) {
			return strings.TrimSpace(raw[:at])
		}
		pos = at + len(w)
	}
	return raw
}

// isMediaWord reports whether w can start the media list of an @import.
func isMediaWord(w string) bool {
	if strings.HasPrefix(w, "(") {
		return true
	}
	w = strings.ToLower(w)
	if strings.HasPrefix(w, "layer") || strings.HasPrefix(w, "supports(") {
		return true
	}
	switch w {
	case "all", "print", "screen", "speech", "only", "not",
		"aural", "braille", "embossed", "handheld", "projection", "tty", "tv":
		return true
	}
	return false
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
