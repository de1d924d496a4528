package ast

import "iter"

// ParentsOf lazily walks parent, parent.parent, ... starting just above n,
// stopping at the root sentinel. Ancestors are looked up one at a time as
// the caller ranges over the sequence; each call of the returned sequence
// starts again just above n.
func (idx *Index) ParentsOf(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		current, ok := idx.ParentOf(n)

		for ok && current != nil {
			if !yield(current) {
				return
			}

			current, ok = idx.ParentOf(current)
		}
	}
}

// FirstParentOfType returns the nearest enclosing ancestor assignable to T,
// or the zero value and false if none exists.
func FirstParentOfType[T Node](idx *Index, n Node) (T, bool) {
	for p := range idx.ParentsOf(n) {
		if t, ok := any(p).(T); ok {
			return t, true
		}
	}

	var zero T

	return zero, false
}

// ParentsOfType materializes every enclosing ancestor assignable to T, in
// innermost-first order. Only the try-catch chain comparison in Goto
// resolution needs the full list; everything else takes the first match.
func ParentsOfType[T Node](idx *Index, n Node) []T {
	var out []T

	for p := range idx.ParentsOf(n) {
		if t, ok := any(p).(T); ok {
			out = append(out, t)
		}
	}

	return out
}
