package cssparse

import "unicode"

// tokenKind is the lexer's whole alphabet. Punctuation such as ':' and ';'
// stays inside identifier text; the grammar finds it by looking at the
// last character of a run.
type tokenKind int

const (
	tokenEnd tokenKind = iota
	tokenIdent
	tokenBracketOpen
	tokenBracketClose
	tokenBraceOpen
	tokenBraceClose
	tokenParenOpen
	tokenParenClose
)

var tokenNames = [...]string{
	tokenEnd:          "end",
	tokenIdent:        "identifier",
	tokenBracketOpen:  "[",
	tokenBracketClose: "]",
	tokenBraceOpen:    "{",
	tokenBraceClose:   "}",
	tokenParenOpen:    "(",
	tokenParenClose:   ")",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "unknown"
	}
	return tokenNames[k]
}

// char is the literal bracket character of a structural token.
func (k tokenKind) char() rune {
	switch k {
	case tokenBracketOpen:
		return '['
	case tokenBracketClose:
		return ']'
	case tokenBraceOpen:
		return '{'
	case tokenBraceClose:
		return '}'
	case tokenParenOpen:
		return '('
	case tokenParenClose:
		return ')'
	}
	return 0
}

func (k tokenKind) isOpen() bool {
	return k == tokenBracketOpen || k == tokenBraceOpen || k == tokenParenOpen
}

func (k tokenKind) isClose() bool {
	return k == tokenBracketClose || k == tokenBraceClose || k == tokenParenClose
}

// noStop disables the extra stop character of nextToken.
const noStop rune = -1

// hexEscapeDigits caps how many hex digits one backslash escape consumes.
const hexEscapeDigits = 4

// lexer turns the rune stream into tokens. The text of the current
// identifier lives in text until the next call to nextToken.
type lexer struct {
	src  *source
	text []rune
	// sawSpace reports whether whitespace or a comment separated the
	// current token from the previous one.
	sawSpace bool
}

func newLexer(input string) *lexer {
	return &lexer{
		src:  newSource(input),
		text: make([]rune, 0, 80),
	}
}

// nextToken fetches the next token. An identifier run also ends after
// consuming stop, which stays as the run's last character.
func (l *lexer) nextToken(stop rune) (tokenKind, error) {
	l.sawSpace = false
	l.text = l.text[:0]

	c, ok := l.skipSpace()
	if !ok {
		return tokenEnd, nil
	}
	switch c {
	case '\'', '"':
		if err := l.readTill(c); err != nil {
			return tokenEnd, err
		}
		// drop the closing quote
		if len(l.text) > 0 {
			l.text = l.text[:len(l.text)-1]
		}
		return tokenIdent, nil
	case '[':
		return tokenBracketOpen, nil
	case ']':
		return tokenBracketClose, nil
	case '{':
		return tokenBraceOpen, nil
	case '}':
		return tokenBraceClose, nil
	case '(':
		return tokenParenOpen, nil
	case ')':
		return tokenParenClose, nil
	}
	if err := l.src.unread(c); err != nil {
		return tokenEnd, err
	}
	if _, err := l.readIdentifier(stop); err != nil {
		return tokenEnd, err
	}
	return tokenIdent, nil
}

// skipSpace consumes whitespace and returns the first other rune.
func (l *lexer) skipSpace() (rune, bool) {
	for {
		c, ok := l.src.read()
		if !ok {
			return 0, false
		}
		if !isSpace(c) {
			return c, true
		}
		l.sawSpace = true
	}
}

// escape accumulates the hex digits that follow a backslash.
type escape struct {
	active bool
	digits int
	value  rune
}

func (e *escape) start() {
	*e = escape{active: true}
}

// push adds one hex digit and reports whether the escape is complete.
func (e *escape) push(digit rune) bool {
	e.value = e.value*16 + digit
	e.digits++
	if e.digits == hexEscapeDigits {
		e.active = false
		return true
	}
	return false
}

// readTill reads a quoted body up to an unescaped stop, which is kept as
// the last character of text.
func (l *lexer) readTill(stop rune) error {
	var esc escape
	l.text = l.text[:0]
	for {
		c, ok := l.src.read()
		if !ok {
			return l.src.errorf("unclosed string " + string(stop))
		}
		digit, isHex := hexValue(c)
		switch {
		case esc.active && isHex:
			if esc.push(digit) {
				l.text = append(l.text, esc.value)
			}
		case esc.active && esc.digits > 0:
			l.text = append(l.text, esc.value)
			if c == '\\' {
				esc.start()
				continue
			}
			esc.active = false
			l.text = append(l.text, c)
			if c == stop {
				return nil
			}
		case esc.active:
			// backslash followed by a non-hex character: keep it literally
			esc.active = false
			l.text = append(l.text, c)
		case c == '\\':
			esc.start()
		default:
			l.text = append(l.text, c)
			if c == stop {
				return nil
			}
		}
	}
}

// readIdentifier reads an identifier-like run and reports whether it
// produced any text. Quotes, brackets and whitespace end the run without
// being consumed. A comment ends the run and counts as whitespace.
func (l *lexer) readIdentifier(stop rune) (bool, error) {
	var esc escape
	l.text = l.text[:0]
scan:
	for {
		c, ok := l.src.read()
		if esc.active {
			if digit, isHex := hexValue(c); ok && isHex {
				if esc.push(digit) {
					l.text = append(l.text, esc.value)
				}
				continue
			}
			esc.active = false
			switch {
			case esc.digits > 0:
				l.text = append(l.text, esc.value)
				if !ok {
					break scan
				}
				// reprocess the character that ended the escape
				if err := l.src.unread(c); err != nil {
					return false, err
				}
			case ok:
				l.text = append(l.text, c)
			default:
				break scan
			}
			continue
		}
		if !ok {
			break
		}
		switch {
		case c == '\\':
			esc.start()
		case isIdentifierBreak(c):
			if err := l.src.unread(c); err != nil {
				return false, err
			}
			break scan
		case c == '/':
			next, ok := l.src.read()
			if ok && next == '*' {
				if err := l.readComment(); err != nil {
					return false, err
				}
				l.sawSpace = true
				break scan
			}
			l.text = append(l.text, '/')
			if !ok {
				break scan
			}
			if err := l.src.unread(next); err != nil {
				return false, err
			}
		default:
			l.text = append(l.text, c)
			if c == stop {
				break scan
			}
		}
	}
	return len(l.text) > 0, nil
}

// readComment consumes the body of a comment whose "/*" has been read.
func (l *lexer) readComment() error {
	for {
		c, ok := l.src.read()
		if !ok {
			return l.src.errorf("unclosed comment")
		}
		if c != '*' {
			continue
		}
		next, ok := l.src.read()
		if !ok {
			return l.src.errorf("unclosed comment")
		}
		if next == '/' {
			return nil
		}
		if err := l.src.unread(next); err != nil {
			return err
		}
	}
}

func hexValue(c rune) (rune, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func isIdentifierBreak(c rune) bool {
	switch c {
	case '\'', '"', '[', ']', '{', '}', '(', ')', ' ', '\n', '\t', '\r':
		return true
	}
	return false
}

// isSpace reports ASCII control white space (including the information
// separators U+001C to U+001F) and the Unicode space, line and paragraph
// separators other than the no-break spaces. NEL (U+0085) is not space.
func isSpace(c rune) bool {
	switch c {
	case '\t', '\n', '\v', '\f', '\r', '\u001c', '\u001d', '\u001e', '\u001f':
		return true
	case '\u00a0', '\u2007', '\u202f':
		return false
	}
	return unicode.In(c, unicode.Zs, unicode.Zl, unicode.Zp)
}
