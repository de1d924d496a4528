package ast

import "testing"

// TestRemoveGotosDirectFallThrough covers the simplest case: a goto whose
// target is exactly its own fall-through successor collapses to nothing and
// the now-dead label is swept away with it.
func TestRemoveGotosDirectFallThrough(t *testing.T) {
	label := NewLabel("L")
	gotoExpr := NewGoto(label)
	head := NewExpression("head")
	tail := NewExpression("tail")
	root := NewBlock(head, gotoExpr, label, tail)

	if err := RemoveGotos(root); err != nil {
		t.Fatalf("RemoveGotos: %v", err)
	}

	if len(root.Body) != 2 || root.Body[0] != Node(head) || root.Body[1] != Node(tail) {
		t.Fatalf("body = %v, want [head, tail] with the goto and label fully swept", root.Body)
	}
}

// TestRemoveGotosLoopBreak covers a goto out of a loop to the statement
// right after it, which becomes a structured break; the label it used to
// name is no longer referenced by anything once the rewrite lands, so it
// is purged, but the break expression itself is load-bearing and stays.
func TestRemoveGotosLoopBreak(t *testing.T) {
	label := NewLabel("after")
	gotoExpr := NewGoto(label)
	loop := NewLoop(NewExpression("cond"), NewBlock(NewExpression("body"), gotoExpr))
	after := NewExpression("after-stmt")
	root := NewBlock(loop, label, after)

	if err := RemoveGotos(root); err != nil {
		t.Fatalf("RemoveGotos: %v", err)
	}

	if gotoExpr.Code != CodeLoopOrSwitchBreak {
		t.Fatalf("goto code = %v, want LoopOrSwitchBreak", gotoExpr.Code)
	}

	if len(root.Body) != 2 || root.Body[0] != Node(loop) || root.Body[1] != Node(after) {
		t.Fatalf("body = %v, want [loop, after-stmt] with the dead label purged", root.Body)
	}
}

// TestRemoveGotosLoopContinue covers a goto that jumps to the tail of a
// loop's own body, rewritten as a structured continue. The label dies once
// the operand is cleared, but the continue isn't the body's last statement
// here, so removeTrailingLoopContinues has nothing to do.
func TestRemoveGotosLoopContinue(t *testing.T) {
	label := NewLabel("next-iteration")
	gotoExpr := NewGoto(label)
	work := NewExpression("work")
	loop := NewLoop(NewExpression("cond"), NewBlock(gotoExpr, work, label))
	root := NewBlock(loop)

	if err := RemoveGotos(root); err != nil {
		t.Fatalf("RemoveGotos: %v", err)
	}

	if gotoExpr.Code != CodeLoopContinue {
		t.Fatalf("goto code = %v, want LoopContinue", gotoExpr.Code)
	}

	if len(loop.Body.Body) != 2 || loop.Body.Body[0] != Node(gotoExpr) || loop.Body.Body[1] != Node(work) {
		t.Fatalf("loop body = %v, want [continue, work] with the dead label purged", loop.Body.Body)
	}
}

// TestRemoveGotosSwitchCaseBreakSurvivesCleanup covers a goto out of a
// switch arm to the statement right after the switch, rewritten as a
// break. The case it leaves isn't the switch's last arm and doesn't end in
// other unconditional control flow, so the break is load-bearing and
// cleanUpSwitchArms must leave it alone even while purging the dead label.
func TestRemoveGotosSwitchCaseBreakSurvivesCleanup(t *testing.T) {
	label := NewLabel("after")
	gotoExpr := NewGoto(label)
	work0 := NewExpression("work0")
	c0 := NewCaseBlock([]int64{0}, work0, gotoExpr)
	c1 := NewCaseBlock([]int64{1}, NewExpression("work1"))
	sw := NewSwitch(NewExpression("cond"), c0, c1)
	after := NewExpression("after-stmt")
	root := NewBlock(sw, label, after)

	if err := RemoveGotos(root); err != nil {
		t.Fatalf("RemoveGotos: %v", err)
	}

	if gotoExpr.Code != CodeLoopOrSwitchBreak {
		t.Fatalf("goto code = %v, want LoopOrSwitchBreak", gotoExpr.Code)
	}

	if len(root.Body) != 2 || root.Body[0] != Node(sw) || root.Body[1] != Node(after) {
		t.Fatalf("body = %v, want [switch, after-stmt] with the dead label purged", root.Body)
	}

	if len(c0.Body) != 2 || c0.Body[1] != Node(gotoExpr) {
		t.Fatalf("case 0 body = %v, want the break kept (it's not redundant here)", c0.Body)
	}
}

// TestRemoveGotosUnreachableReturnRemoved covers a return made unreachable
// by an unconditional return right before it; removeUnreachableReturns
// deletes it and RemoveRedundantCode re-enters RemoveGotos to re-settle.
func TestRemoveGotosUnreachableReturnRemoved(t *testing.T) {
	liveReturn := &Expression{Code: CodeReturn}
	deadReturn := &Expression{Code: CodeReturn}
	tail := NewExpression("tail")
	root := NewBlock(liveReturn, deadReturn, tail)

	if err := RemoveGotos(root); err != nil {
		t.Fatalf("RemoveGotos: %v", err)
	}

	if len(root.Body) != 2 || root.Body[0] != Node(liveReturn) || root.Body[1] != Node(tail) {
		t.Fatalf("body = %v, want [liveReturn, tail] with the unreachable return dropped", root.Body)
	}
}

// TestRemoveGotosRefusesJumpIntoTryMidBody covers a goto from outside a
// try block targeting a label that isn't the try's very first statement:
// the walker refuses to resolve it (a try region may only be entered at
// its head, where the tried-frames stack is well-defined), so the whole
// pipeline must leave the goto exactly as it found it.
func TestRemoveGotosRefusesJumpIntoTryMidBody(t *testing.T) {
	first := NewExpression("first")
	label := NewLabel("L")
	tryBody := NewBlock(first, label)
	tryBlock := NewTryCatchBlock(tryBody)
	gotoExpr := NewGoto(label)
	root := NewBlock(gotoExpr, tryBlock)

	if err := RemoveGotos(root); err != nil {
		t.Fatalf("RemoveGotos: %v", err)
	}

	if gotoExpr.Code != CodeGoto {
		t.Fatalf("goto code = %v, want it left untouched (unresolvable)", gotoExpr.Code)
	}

	if gotoExpr.Operand != Node(label) {
		t.Fatalf("goto operand = %v, want it still pointing at label", gotoExpr.Operand)
	}

	if len(root.Body) != 2 || root.Body[0] != Node(gotoExpr) || root.Body[1] != Node(tryBlock) {
		t.Fatalf("body = %v, want the unresolved goto and try block both still present", root.Body)
	}
}
