package cssparse

// blockStack tracks which brackets, braces and parens are still open.
// It carries no text; callers decide what to keep.
type blockStack struct {
	kinds    []tokenKind
	maxDepth int // 0 means unbounded
}

// open records an open token. It reports false when the nesting limit
// would be exceeded.
func (b *blockStack) open(kind tokenKind) bool {
	if b.maxDepth > 0 && len(b.kinds) >= b.maxDepth {
		return false
	}
	b.kinds = append(b.kinds, kind)
	return true
}

// close pops the entry matching a close token. It reports false when the
// top of the stack is not the matching open kind.
func (b *blockStack) close(kind tokenKind) bool {
	want := openerOf(kind)
	n := len(b.kinds)
	if n == 0 || b.kinds[n-1] != want {
		return false
	}
	b.kinds = b.kinds[:n-1]
	return true
}

func (b *blockStack) depth() int {
	return len(b.kinds)
}

func openerOf(kind tokenKind) tokenKind {
	switch kind {
	case tokenBracketClose:
		return tokenBracketOpen
	case tokenBraceClose:
		return tokenBraceOpen
	case tokenParenClose:
		return tokenParenOpen
	}
	return tokenEnd
}
