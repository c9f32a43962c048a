package cssparse

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrMalformed is matched by every error Parse returns.
var ErrMalformed = errors.New("malformed stylesheet fragment")

// SyntaxError describes why a fragment was rejected and where.
// Line and Column are 1-based; Column counts runes.
type SyntaxError struct {
	Reason string
	Offset int // byte offset into the input
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s at %d:%d", ErrMalformed, e.Reason, e.Line, e.Column)
}

// Unwrap lets errors.Is(err, ErrMalformed) succeed.
func (e *SyntaxError) Unwrap() error {
	return ErrMalformed
}

// newSyntaxError resolves offset into a line and column of input.
func newSyntaxError(input string, offset int, reason string) *SyntaxError {
	if offset > len(input) {
		offset = len(input)
	}
	prefix := input[:offset]
	line := strings.Count(prefix, "\n") + 1
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	return &SyntaxError{
		Reason: reason,
		Offset: offset,
		Line:   line,
		Column: utf8.RuneCountInString(prefix[lineStart:]) + 1,
	}
}
