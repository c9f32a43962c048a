package cssparse

import "unicode/utf8"

// source hands out the input one rune at a time with a single rune of
// pushback. It is the only place the raw input is indexed.
type source struct {
	input  string
	pos    int // byte offset of the next rune to decode
	pushed bool
	last   rune
	lastSz int
}

func newSource(input string) *source {
	return &source{input: input}
}

// read returns the next rune, or false at end of input.
func (s *source) read() (rune, bool) {
	if s.pushed {
		s.pushed = false
		s.pos += s.lastSz
		return s.last, true
	}
	if s.pos >= len(s.input) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(s.input[s.pos:])
	s.pos += size
	s.last, s.lastSz = r, size
	return r, true
}

// unread pushes back the rune returned by the most recent read.
func (s *source) unread(r rune) error {
	if s.pushed {
		return s.errorf("cannot push back more than one character")
	}
	s.pushed = true
	s.last = r
	s.pos -= s.lastSz
	return nil
}

// offset is the byte position of the next rune read will return.
func (s *source) offset() int {
	return s.pos
}

func (s *source) errorf(reason string) *SyntaxError {
	return newSyntaxError(s.input, s.offset(), reason)
}
