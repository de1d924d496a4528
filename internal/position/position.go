// Package position defines the source-range marker carried by every AST
// node. The control-flow core never inspects a marker's fields: it only
// stores, transfers, and clears sets of them as nodes absorb one another,
// so callers attach whatever locates a span in their own source text.
package position

import "fmt"

// Span is a half-open byte range [Start, End) in some caller-owned source
// text, plus the 1-based line/column of its start for human-readable
// output. Identity is by value: two markers with the same fields are
// interchangeable.
type Span struct {
	Line   int
	Column int
	Start  int
	End    int
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}
