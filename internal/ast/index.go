package ast

import (
	"fmt"

	cferrors "github.com/strobel-go/ctrlflow/internal/errors"
)

// Index holds the three auxiliary structures the core builds once at entry
// and discards on exit: a parent map, a next-sibling map, and a label
// index. All three are identity-keyed — two structurally identical nodes
// remain distinct keys.
//
// The root's parent is recorded as nil (present in the map, not merely
// absent) so ParentOf can distinguish "this is the method root" from "this
// node was never indexed".
type Index struct {
	parent  map[Node]Node
	next    map[Node]Node
	labelOf map[Node]*Label
}

// BuildIndex walks root depth-first and builds its parent map, sibling
// map, and label index. It fails with a *errors.StructuralError if any
// node is reachable through two distinct structural parents.
func BuildIndex(root *Block) (*Index, error) {
	idx := &Index{
		parent:  make(map[Node]Node),
		next:    make(map[Node]Node),
		labelOf: make(map[Node]*Label),
	}

	idx.parent[root] = nil

	if err := idx.visit(root); err != nil {
		return nil, err
	}

	return idx, nil
}

func (idx *Index) visit(n Node) error {
	children := n.Children()

	var previous Node

	for _, child := range children {
		if _, aliased := idx.parent[child]; aliased {
			return cferrors.AliasedNode(fmt.Sprintf("%T", child))
		}

		idx.parent[child] = n

		if previous != nil {
			if label, ok := previous.(*Label); ok {
				idx.labelOf[child] = label
			}

			idx.next[previous] = child
		}

		previous = child
	}

	if previous != nil {
		idx.next[previous] = nil
	}

	for _, child := range children {
		if err := idx.visit(child); err != nil {
			return err
		}
	}

	return nil
}

// ParentOf returns the structural parent of n, and whether n was indexed
// at all. The root itself is indexed with a nil parent.
func (idx *Index) ParentOf(n Node) (Node, bool) {
	p, ok := idx.parent[n]
	return p, ok
}

// NextSibling returns the sibling immediately following n inside its
// parent's ordered Children(), nil (with true) if n is last, and false if n
// was never indexed as a child (the root, or a node outside the tree).
func (idx *Index) NextSibling(n Node) (Node, bool) {
	p, ok := idx.next[n]
	return p, ok
}

// LabelBefore returns the Label immediately preceding n in its parent's
// body, if any.
func (idx *Index) LabelBefore(n Node) (*Label, bool) {
	l, ok := idx.labelOf[n]
	return l, ok
}
