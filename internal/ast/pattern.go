package ast

// Match reports whether n is an *Expression with the given opcode.
func Match(n Node, code AstCode) bool {
	e, ok := n.(*Expression)
	return ok && e.Code == code
}

// MatchGetOperand reports whether n is an *Expression with the given
// opcode whose operand is of type T, and if so writes that operand into
// out. When it reports false, out is left unchanged.
func MatchGetOperand[T any](n Node, code AstCode, out *T) bool {
	e, ok := n.(*Expression)
	if !ok || e.Code != code {
		return false
	}

	v, ok := e.Operand.(T)
	if !ok {
		return false
	}

	*out = v

	return true
}

// MatchLast reports whether the last statement of block has the given
// opcode.
func MatchLast(body []Node, code AstCode) bool {
	last := LastOrDefault(body)
	return last != nil && Match(last, code)
}
