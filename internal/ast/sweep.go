package ast

// RemoveRedundantCode prunes the scaffolding a goto-removal pass leaves
// behind: dead labels, Nops, Leaves, a trailing loop continue, redundant
// switch-arm breaks and case blocks that hold only a break, a trailing
// empty return,
// and any return statement made unreachable by the cleanup. It needs no
// index — every step is a plain tree walk over root's current shape.
//
// If the unreachable-return step removes anything, the tree's shape has
// changed enough that a previously stuck goto might now simplify, so the
// whole core re-runs from scratch.
func RemoveRedundantCode(root *Block) error {
	purgeDeadScaffolding(root)
	removeTrailingLoopContinues(root)
	cleanUpSwitchArms(root)
	removeTrailingEmptyReturn(root)

	if removeUnreachableReturns(root) {
		return RemoveGotos(root)
	}

	return nil
}

// purgeDeadScaffolding removes Nop and Leave expressions outright, and any
// Label nothing branches to, from every block-shaped body in the tree.
func purgeDeadScaffolding(root Node) {
	liveLabels := computeLiveLabels(root)

	for _, bodyPtr := range collectBodies(root) {
		body := *bodyPtr
		kept := body[:0]

		for _, n := range body {
			if Match(n, CodeNop) || Match(n, CodeLeave) {
				continue
			}

			if lbl, ok := n.(*Label); ok {
				if _, live := liveLabels[lbl]; !live {
					continue
				}
			}

			kept = append(kept, n)
		}

		*bodyPtr = kept
	}
}

// computeLiveLabels returns every label some branch expression still
// targets, except a goto whose sole target is a try-finally's very first
// statement: that goto exists only to mark the implicit fall into the
// finally region and carries no information once that region is known, so
// it does not keep its target alive on its own.
func computeLiveLabels(root Node) map[*Label]struct{} {
	live := make(map[*Label]struct{})
	finallyHeads := make(map[*Label]struct{})

	for _, t := range Collect[*TryCatchBlock](root) {
		if t.FinallyBlock == nil {
			continue
		}

		if head, ok := FirstOrDefault(t.FinallyBlock.Body).(*Label); ok {
			finallyHeads[head] = struct{}{}
		}
	}

	for _, e := range Collect[*Expression](root) {
		if !e.IsBranch() {
			continue
		}

		if e.Code == CodeGoto {
			if target, ok := e.Operand.(*Label); ok {
				if _, isFinallyHead := finallyHeads[target]; isFinallyHead {
					continue
				}
			}
		}

		for _, t := range e.BranchTargets() {
			live[t] = struct{}{}
		}
	}

	return live
}

// collectBodies returns every block-shaped body in root, Block and
// CaseBlock alike, as mutable slice pointers, in document order. A
// CaseBlock embeds Block rather than extending it, so it needs its own
// case here to be reached by the body-rewriting passes above.
func collectBodies(root Node) []*[]Node {
	var out []*[]Node

	var walk func(Node)

	walk = func(n Node) {
		switch v := n.(type) {
		case *Block:
			out = append(out, &v.Body)
		case *CaseBlock:
			out = append(out, &v.Body)
		}

		for _, child := range n.Children() {
			walk(child)
		}
	}

	walk(root)

	return out
}

func removeTrailingLoopContinues(root Node) {
	for _, loop := range Collect[*Loop](root) {
		if MatchLast(loop.Body.Body, CodeLoopContinue) {
			loop.Body.Body = loop.Body.Body[:len(loop.Body.Body)-1]
		}
	}
}

func cleanUpSwitchArms(root Node) {
	for _, sw := range Collect[*Switch](root) {
		var defaultCase *CaseBlock

		for _, cb := range sw.Cases {
			if cb.IsDefault() {
				defaultCase = cb
			}

			body := cb.Body
			if len(body) >= 2 &&
				isUnconditionalControlFlow(body[len(body)-2]) &&
				Match(body[len(body)-1], CodeLoopOrSwitchBreak) {

				cb.Body = body[:len(body)-1]
			}
		}

		defaultIsBareBreak := defaultCase != nil &&
			len(defaultCase.Body) == 1 &&
			Match(defaultCase.Body[0], CodeLoopOrSwitchBreak)

		if defaultCase != nil && !defaultIsBareBreak {
			continue
		}

		kept := sw.Cases[:0]

		for _, cb := range sw.Cases {
			if len(cb.Body) == 1 && Match(cb.Body[0], CodeLoopOrSwitchBreak) {
				continue
			}

			kept = append(kept, cb)
		}

		sw.Cases = kept
	}
}

func removeTrailingEmptyReturn(root *Block) {
	last := LastOrDefault(root.Body)
	if last == nil {
		return
	}

	e, ok := last.(*Expression)
	if !ok || e.Code != CodeReturn || len(e.Arguments) != 0 {
		return
	}

	root.Body = root.Body[:len(root.Body)-1]
}

func removeUnreachableReturns(root Node) bool {
	modified := false

	for _, bodyPtr := range collectBodies(root) {
		body := *bodyPtr

		for i := 0; i < len(body)-1; i++ {
			if isUnconditionalControlFlow(body[i]) && Match(body[i+1], CodeReturn) {
				body = append(body[:i+1], body[i+2:]...)
				modified = true
				i--
			}
		}

		*bodyPtr = body
	}

	return modified
}

func isUnconditionalControlFlow(n Node) bool {
	e, ok := n.(*Expression)
	return ok && e.IsUnconditionalControlFlow()
}
