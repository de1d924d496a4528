package ast

import "testing"

func TestBuildIndexParentUniqueness(t *testing.T) {
	a := NewExpression("A")
	root := NewBlock(a)

	idx, err := BuildIndex(root)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	parent, ok := idx.ParentOf(a)
	if !ok || parent != root {
		t.Fatalf("ParentOf(a) = (%v, %v), want (root, true)", parent, ok)
	}

	rootParent, ok := idx.ParentOf(root)
	if !ok || rootParent != nil {
		t.Fatalf("ParentOf(root) = (%v, %v), want (nil, true)", rootParent, ok)
	}
}

func TestBuildIndexRejectsAliasedNode(t *testing.T) {
	shared := NewExpression("shared")
	root := NewBlock(
		NewCondition(NewExpression("cond"), NewBlock(shared), NewBlock(shared)),
	)

	if _, err := BuildIndex(root); err == nil {
		t.Fatal("BuildIndex: want error when a node is reachable through two parents")
	}
}

func TestBuildIndexSiblingsAndLabels(t *testing.T) {
	label := NewLabel("L")
	a := NewExpression("A")
	b := NewExpression("B")
	root := NewBlock(a, label, b)

	idx, err := BuildIndex(root)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	next, ok := idx.NextSibling(a)
	if !ok || next != Node(label) {
		t.Fatalf("NextSibling(a) = (%v, %v), want (label, true)", next, ok)
	}

	next, ok = idx.NextSibling(label)
	if !ok || next != Node(b) {
		t.Fatalf("NextSibling(label) = (%v, %v), want (b, true)", next, ok)
	}

	next, ok = idx.NextSibling(b)
	if !ok || next != nil {
		t.Fatalf("NextSibling(b) = (%v, %v), want (nil, true)", next, ok)
	}

	before, ok := idx.LabelBefore(b)
	if !ok || before != label {
		t.Fatalf("LabelBefore(b) = (%v, %v), want (label, true)", before, ok)
	}
}

func TestParentsOfType(t *testing.T) {
	inner := NewExpression("inner")
	tryBlock := NewTryCatchBlock(NewBlock(inner))
	root := NewBlock(tryBlock)

	idx, err := BuildIndex(root)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	got, ok := FirstParentOfType[*TryCatchBlock](idx, inner)
	if !ok || got != tryBlock {
		t.Fatalf("FirstParentOfType = (%v, %v), want (tryBlock, true)", got, ok)
	}

	chain := ParentsOfType[*TryCatchBlock](idx, inner)
	if len(chain) != 1 || chain[0] != tryBlock {
		t.Fatalf("ParentsOfType = %v, want [tryBlock]", chain)
	}
}
