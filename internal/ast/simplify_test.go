package ast

import "testing"

func runSimplifyToFixpoint(t *testing.T, root *Block) *Index {
	t.Helper()

	idx, err := BuildIndex(root)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	for {
		modified, err := Simplify(idx, root)
		if err != nil {
			t.Fatalf("Simplify: %v", err)
		}

		if !modified {
			break
		}
	}

	return idx
}

func TestSimplifyFallThroughGotoBecomesNop(t *testing.T) {
	label := NewLabel("L")
	gotoExpr := NewGoto(label)
	tail := NewExpression("tail")
	root := NewBlock(NewExpression("head"), gotoExpr, label, tail)

	runSimplifyToFixpoint(t, root)

	if gotoExpr.Code != CodeNop {
		t.Fatalf("goto code = %v, want Nop", gotoExpr.Code)
	}

	if gotoExpr.Operand != nil {
		t.Fatalf("goto operand = %v, want nil", gotoExpr.Operand)
	}
}

func TestSimplifyLoopBreak(t *testing.T) {
	label := NewLabel("after")
	gotoExpr := NewGoto(label)
	loop := NewLoop(NewExpression("cond"), NewBlock(NewExpression("body"), gotoExpr))
	after := NewExpression("after-stmt")
	root := NewBlock(loop, label, after)

	runSimplifyToFixpoint(t, root)

	if gotoExpr.Code != CodeLoopOrSwitchBreak {
		t.Fatalf("goto code = %v, want LoopOrSwitchBreak", gotoExpr.Code)
	}
}

func TestSimplifyLoopContinue(t *testing.T) {
	// The label sits at the very end of the loop body, so entering it
	// resolves to exactly what entering the loop itself resolves to (its
	// condition): falling off the end of an iteration and re-testing the
	// condition are the same target.
	label := NewLabel("next-iteration")
	gotoExpr := NewGoto(label)
	work := NewExpression("work")
	loop := NewLoop(NewExpression("cond"), NewBlock(gotoExpr, work, label))
	root := NewBlock(loop)

	runSimplifyToFixpoint(t, root)

	if gotoExpr.Code != CodeLoopContinue {
		t.Fatalf("goto code = %v, want LoopContinue", gotoExpr.Code)
	}
}

func TestSimplifyImplicitFinallyGotoBecomesNop(t *testing.T) {
	finallyHead := NewExpression("finally-head")
	finallyBlock := NewBlock(finallyHead)

	gotoExpr := NewGoto(nil)
	tryBlock := NewTryCatchBlock(NewBlock(NewExpression("work"), gotoExpr))
	tryBlock.FinallyBlock = finallyBlock

	root := NewBlock(tryBlock)

	// Aim the goto at an ordinary label heading the finally block, so Enter
	// gives a concrete target (finallyHead). The implicit-finally rule then
	// matches because entering the finally block resolves to that same
	// node.
	label := NewLabel("finallyEntry")
	finallyBlock.Body = []Node{label, finallyHead}
	gotoExpr.Operand = label

	runSimplifyToFixpoint(t, root)

	if gotoExpr.Code != CodeNop {
		t.Fatalf("goto code = %v, want Nop (implicit finally)", gotoExpr.Code)
	}
}
