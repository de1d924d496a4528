package ast

// Simplify performs one sweep over every Goto in root, rewriting each one
// trySimplifyGoto can resolve to a fall-through Nop, an implicit-finally
// Nop, a structured break, or a structured continue, in that fixed order
// of preference. It reports whether any rewrite happened, so the caller
// can re-sweep to a fixpoint: simplifying one goto can make a previously
// unresolvable goto resolvable (its target's shape just changed).
func Simplify(idx *Index, root *Block) (bool, error) {
	modified := false

	for _, e := range Collect[*Expression](root) {
		if e.Code != CodeGoto {
			continue
		}

		did, err := trySimplifyGoto(idx, e)
		if err != nil {
			return modified, err
		}

		modified = modified || did
	}

	return modified, nil
}

func trySimplifyGoto(idx *Index, gotoExpr *Expression) (bool, error) {
	target, err := Enter(idx, gotoExpr, NewVisited())
	if err != nil {
		return false, err
	}

	if target == nil {
		return false, nil
	}

	// The goto itself is pre-marked visited in every simulated path below:
	// we are asking "what would happen if this goto weren't here", so the
	// simulation must never walk back through it. Each simulated path also
	// has to start in the same try block the goto is actually in, so that
	// the same finally blocks would run.

	visited := NewVisited(gotoExpr)

	next, err := Exit(idx, gotoExpr, visited)
	if err != nil {
		return false, err
	}

	if target == next {
		convertToNop(gotoExpr, target)
		return true, nil
	}

	visited = NewVisited(gotoExpr)

	for _, tryCatchBlock := range ParentsOfType[*TryCatchBlock](idx, gotoExpr) {
		if tryCatchBlock.FinallyBlock == nil {
			continue
		}

		entered, err := Enter(idx, tryCatchBlock.FinallyBlock, visited)
		if err != nil {
			return false, err
		}

		if target == entered {
			gotoExpr.Code = CodeNop
			gotoExpr.Operand = nil
			gotoExpr.Ranges().Clear()

			return true, nil
		}
	}

	breakBlock := firstLoopOrSwitchAncestor(idx, gotoExpr)

	visited = NewVisited(gotoExpr)

	if breakBlock != nil {
		left, err := Exit(idx, breakBlock, visited)
		if err != nil {
			return false, err
		}

		if target == left {
			gotoExpr.Code = CodeLoopOrSwitchBreak
			gotoExpr.Operand = nil

			return true, nil
		}
	}

	continueBlock, hasLoop := FirstParentOfType[*Loop](idx, gotoExpr)

	visited = NewVisited(gotoExpr)

	if hasLoop {
		entered, err := Enter(idx, continueBlock, visited)
		if err != nil {
			return false, err
		}

		if target == entered {
			gotoExpr.Code = CodeLoopContinue
			gotoExpr.Operand = nil

			return true, nil
		}
	}

	return false, nil
}

func convertToNop(gotoExpr *Expression, target Node) {
	gotoExpr.Code = CodeNop
	gotoExpr.Operand = nil

	if t, ok := target.(*Expression); ok {
		t.Ranges().Absorb(gotoExpr.Ranges())
	}

	gotoExpr.Ranges().Clear()
}

func firstLoopOrSwitchAncestor(idx *Index, n Node) Node {
	for p := range idx.ParentsOf(n) {
		switch p.(type) {
		case *Loop, *Switch:
			return p
		}
	}

	return nil
}
