// Package ast defines the structured, already-parsed method-body AST this
// module operates on and the control-flow reconstruction core that rewrites
// synthetic Goto expressions into structured break/continue/fall-through (or
// deletes them) and then prunes the dead scaffolding left behind.
//
// The tree is owned by the caller; every pass here mutates it in place.
// Source-range markers attached to nodes are merged, never copied, when one
// expression absorbs another.
package ast

import "github.com/strobel-go/ctrlflow/internal/position"

// Node is the common interface implemented by every variant in the data
// model: Block, Expression, Label, Condition, Loop, Switch, CaseBlock,
// TryCatchBlock, and CatchHandler. Identity, not value equality, is what the index maps key
// on — two structurally identical nodes are still distinct if they are
// different Go values.
type Node interface {
	isNode()

	// Ranges returns the mutable set of source-range markers carried by
	// this node.
	Ranges() *RangeSet

	// Children returns this node's structural children in order. It is
	// used both to build the parent/sibling/label indices and to recurse
	// generically over the tree; it never includes a branch target (a
	// Goto's operand Label is a reference, not a containment edge).
	Children() []Node
}

// RangeSet is an unordered set of source-range markers. When one expression
// is rewritten in place and absorbs another (for example a Goto folding
// into its fall-through successor), the absorbed node's ranges transfer to
// the survivor and the absorbed node's own ranges are cleared.
type RangeSet struct {
	spans []position.Span
}

// Add records a marker.
func (r *RangeSet) Add(s position.Span) {
	r.spans = append(r.spans, s)
}

// Absorb moves every marker from other into r, then clears other.
func (r *RangeSet) Absorb(other *RangeSet) {
	if other == nil {
		return
	}

	r.spans = append(r.spans, other.spans...)
	other.spans = nil
}

// Clear discards every marker.
func (r *RangeSet) Clear() {
	r.spans = nil
}

// List returns the markers currently recorded, in insertion order.
func (r *RangeSet) List() []position.Span {
	return r.spans
}

// base is embedded by every concrete node type to supply identity-agnostic
// range-marker storage. It carries no parent/sibling pointers of its own —
// those live in the Index built fresh for each core invocation.
type base struct {
	ranges RangeSet
}

func (*base) isNode() {}

func (b *base) Ranges() *RangeSet { return &b.ranges }
