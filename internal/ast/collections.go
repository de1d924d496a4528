package ast

// FirstOrDefault returns the first element of s, or the zero value if s is
// empty.
func FirstOrDefault[T any](s []T) T {
	var zero T
	if len(s) == 0 {
		return zero
	}

	return s[0]
}

// LastOrDefault returns the last element of s, or the zero value if s is
// empty.
func LastOrDefault[T any](s []T) T {
	var zero T
	if len(s) == 0 {
		return zero
	}

	return s[len(s)-1]
}

// ToList materializes an iter.Seq into a slice. Only the try-catch chain
// comparison needs a materialized list; every other "find enclosing X"
// query takes the first match lazily.
func ToList[T any](seq func(yield func(T) bool)) []T {
	var out []T

	seq(func(v T) bool {
		out = append(out, v)
		return true
	})

	return out
}

// Collect walks root and every descendant depth-first, in document order,
// and returns every node (root included) assignable to T. It is the Go
// replacement for the self-and-children-recursive iteration the core needs
// before each sweep over Expressions, Blocks, Loops, Switches, and
// TryCatchBlocks.
func Collect[T Node](root Node) []T {
	var out []T

	var walk func(Node)

	walk = func(n Node) {
		if t, ok := any(n).(T); ok {
			out = append(out, t)
		}

		for _, child := range n.Children() {
			walk(child)
		}
	}

	walk(root)

	return out
}
