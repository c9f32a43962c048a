// Package cssparse turns stylesheet text into a flat stream of events
// (imports, selectors, rule boundaries, property/value pairs) without
// building a syntax tree.
//
// The grammar is deliberately loose:
//
//	stylesheet  (at-rule | ruleset | block)*
//	at-rule     @keyword (block | identifier)* (';' | braced block)
//	ruleset     selector* '{' declaration* '}'
//	declaration identifier* ending in ':' identifier* ending in ';'
//	block       balanced (), [] or {} captured verbatim
//
// Comments are stripped everywhere and count as whitespace. A malformed
// construct aborts the whole parse with a *SyntaxError; there is no
// recovery.
package cssparse

import "unicode"

// DefaultMaxNesting bounds how many blocks may be open at once.
const DefaultMaxNesting = 512

// Parser holds parse options. All per-call state is created inside Parse,
// so a Parser may be shared between goroutines.
type Parser struct {
	maxNesting int
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxNesting sets the block nesting limit. Zero or less removes it.
func WithMaxNesting(n int) Option {
	return func(p *Parser) {
		if n < 0 {
			n = 0
		}
		p.maxNesting = n
	}
}

// New returns a Parser with the given options applied.
func New(opts ...Option) *Parser {
	p := &Parser{maxNesting: DefaultMaxNesting}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = New()

// Parse parses text with the default options. See (*Parser).Parse.
func Parse(text string, h Handler, inDeclarationBlock bool) error {
	return defaultParser.Parse(text, h, inDeclarationBlock)
}

// Parse reports the structure of text to h. When inDeclarationBlock is
// true text is treated as the body of a rule (an inline style attribute),
// and only property and value events can occur.
func (p *Parser) Parse(text string, h Handler, inDeclarationBlock bool) error {
	return p.newState(text, h).run(inDeclarationBlock)
}

func (p *Parser) newState(text string, h Handler) *state {
	return &state{
		lex:    newLexer(text),
		h:      h,
		blocks: blockStack{maxDepth: p.maxNesting},
	}
}

// run parses the whole input. Every block opened along the way is closed
// again when it returns nil.
func (s *state) run(inDeclarationBlock bool) error {
	if inDeclarationBlock {
		_, err := s.parseDeclarationBlock()
		return err
	}
	for {
		more, err := s.nextStatement()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// state is everything one Parse call mutates.
type state struct {
	lex    *lexer
	h      Handler
	blocks blockStack
	// unit assembles the selector, property, value or at-rule prelude
	// currently being read.
	unit []rune
	// seenRuleSet turns off import reporting once a rule set appeared.
	seenRuleSet bool
}

func (s *state) fail(reason string) error {
	return s.lex.src.errorf(reason)
}

// joinSpace separates the next fragment from the unit with one space when
// the lexer skipped whitespace or a comment before it.
func (s *state) joinSpace() {
	if s.lex.sawSpace && len(s.unit) > 0 {
		s.unit = append(s.unit, ' ')
	}
}

func (s *state) appendText(text []rune) {
	if len(text) == 0 {
		return
	}
	s.joinSpace()
	s.unit = append(s.unit, text...)
}

// nextStatement parses one at-rule, rule set or stray block. It returns
// false at end of input.
func (s *state) nextStatement() (bool, error) {
	s.unit = s.unit[:0]

	tok, err := s.lex.nextToken(noStop)
	if err != nil {
		return false, err
	}
	switch {
	case tok == tokenIdent:
		if len(s.lex.text) == 0 {
			return true, nil
		}
		keyword := string(s.lex.text)
		if keyword[0] == '@' {
			return true, s.parseAtRule(keyword)
		}
		s.seenRuleSet = true
		return true, s.parseRuleSet(keyword)
	case tok.isOpen():
		return true, s.parseTillClosed(tok)
	case tok.isClose():
		return false, s.fail("unexpected top-level close " + tok.String())
	}
	return false, nil
}

// parseTillClosed copies tokens into the unit until the block opened by
// open is closed again. Nested blocks are tracked on the block stack
// rather than by recursion.
func (s *state) parseTillClosed(open tokenKind) error {
	base := s.blocks.depth()
	if !s.blocks.open(open) {
		return s.fail("blocks nested too deeply")
	}
	for {
		tok, err := s.lex.nextToken(noStop)
		if err != nil {
			return err
		}
		switch {
		case tok == tokenIdent:
			s.joinSpace()
			s.unit = append(s.unit, s.lex.text...)
		case tok.isOpen():
			s.joinSpace()
			s.unit = append(s.unit, tok.char())
			if !s.blocks.open(tok) {
				return s.fail("blocks nested too deeply")
			}
		case tok.isClose():
			s.joinSpace()
			s.unit = append(s.unit, tok.char())
			if !s.blocks.close(tok) {
				return s.fail("unmatched block " + tok.String())
			}
			if s.blocks.depth() == base {
				return nil
			}
		default:
			return s.fail("unclosed block")
		}
	}
}

// parseIdentifiers reads identifiers into the unit until one ends with
// extra, which is dropped, and then returns tokenIdent. Any close token
// or the end of input is returned to the caller. Blocks are captured
// verbatim when keepBlocks is set and skipped otherwise.
func (s *state) parseIdentifiers(extra rune, keepBlocks bool) (tokenKind, error) {
	s.unit = s.unit[:0]
	for {
		tok, err := s.lex.nextToken(extra)
		if err != nil {
			return tokenEnd, err
		}
		switch {
		case tok == tokenIdent:
			text := s.lex.text
			if n := len(text); n > 0 && text[n-1] == extra {
				s.appendText(text[:n-1])
				return tokenIdent, nil
			}
			s.appendText(text)
		case tok.isOpen():
			mark := len(s.unit)
			if keepBlocks {
				s.unit = append(s.unit, tok.char())
			}
			if err := s.parseTillClosed(tok); err != nil {
				return tokenEnd, err
			}
			if !keepBlocks {
				s.unit = s.unit[:mark]
			}
		default:
			return tok, nil
		}
	}
}

// parseDeclaration reads "name: value;" and returns the token that ended
// it. Anything other than tokenIdent means the block is over.
func (s *state) parseDeclaration() (tokenKind, error) {
	tok, err := s.parseIdentifiers(':', false)
	if err != nil || tok != tokenIdent {
		return tok, err
	}
	for i, r := range s.unit {
		s.unit[i] = unicode.ToLower(r)
	}
	s.h.HandleProperty(string(s.unit))

	tok, err = s.parseIdentifiers(';', true)
	if err != nil {
		return tok, err
	}
	s.h.HandleValue(string(s.unit))
	return tok, nil
}

// parseDeclarationBlock reads declarations until '}' or the end of input
// and returns which of the two ended the block.
func (s *state) parseDeclarationBlock() (tokenKind, error) {
	for {
		tok, err := s.parseDeclaration()
		if err != nil {
			return tok, err
		}
		switch tok {
		case tokenIdent:
		case tokenBraceClose, tokenEnd:
			return tok, nil
		default:
			return tok, s.fail("unexpected close in declaration block " + tok.String())
		}
	}
}

// parseRuleSet reads a selector list starting with first and, if it
// ends in '{', the declaration block that follows.
func (s *state) parseRuleSet(first string) error {
	found, err := s.parseSelectors(first)
	if err != nil || !found {
		return err
	}
	if !s.blocks.open(tokenBraceOpen) {
		return s.fail("blocks nested too deeply")
	}
	s.h.StartRule()
	tok, err := s.parseDeclarationBlock()
	if err != nil {
		return err
	}
	if tok == tokenEnd {
		return s.fail("unclosed block")
	}
	s.blocks.close(tokenBraceClose)
	s.h.EndRule()
	return nil
}

// parseSelectors reports selector fragments until '{'. Bracketed and
// parenthesized qualifiers are consumed for balance but not reported.
// It returns false if the input ends first.
func (s *state) parseSelectors(first string) (bool, error) {
	if first != "" {
		s.h.HandleSelector(first)
	}
	s.unit = s.unit[:0]
	for {
		tok, err := s.lex.nextToken(noStop)
		if err != nil {
			return false, err
		}
		switch {
		case tok == tokenIdent:
			if len(s.lex.text) > 0 {
				s.h.HandleSelector(string(s.lex.text))
			}
		case tok == tokenBraceOpen:
			return true, nil
		case tok.isOpen():
			if err := s.parseTillClosed(tok); err != nil {
				return false, err
			}
			s.unit = s.unit[:0]
		case tok.isClose():
			return false, s.fail("unexpected close in selector " + tok.String())
		default:
			return false, nil
		}
	}
}

// parseAtRule reads an at-rule up to ';' or the end of its braced body.
// Only an @import seen before any rule set is reported.
func (s *state) parseAtRule(keyword string) error {
	isImport := keyword == "@import"

	s.unit = s.unit[:0]
	for done := false; !done; {
		tok, err := s.lex.nextToken(';')
		if err != nil {
			return err
		}
		switch {
		case tok == tokenIdent:
			text := s.lex.text
			if n := len(text); n > 0 && text[n-1] == ';' {
				text = text[:n-1]
				done = true
			}
			s.appendText(text)
		case tok == tokenBraceOpen:
			s.joinSpace()
			s.unit = append(s.unit, tok.char())
			if err := s.parseTillClosed(tok); err != nil {
				return err
			}
			done = true
			// swallow a ';' directly after the body
			if c, ok := s.lex.skipSpace(); ok && c != ';' {
				if err := s.lex.src.unread(c); err != nil {
					return err
				}
			}
		case tok.isOpen():
			s.unit = append(s.unit, tok.char())
			if err := s.parseTillClosed(tok); err != nil {
				return err
			}
		case tok.isClose():
			return s.fail("unexpected close in at-rule " + tok.String())
		default:
			done = true
		}
	}
	if isImport && !s.seenRuleSet {
		s.h.HandleImport(string(s.unit))
	}
	return nil
}
