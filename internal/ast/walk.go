package ast

import (
	"fmt"
	"slices"

	cferrors "github.com/strobel-go/ctrlflow/internal/errors"
)

// Visited tracks nodes already passed through Enter within one top-level
// enter/exit query, so a cyclic Goto chain terminates instead of recursing
// forever. Callers must seed a *fresh* Visited for each independent query —
// reusing one across unrelated queries would make unrelated paths look
// cyclic.
type Visited map[Node]struct{}

// NewVisited returns an empty visited set, optionally pre-seeded (the jump
// simplifier seeds it with the goto under test before walking).
func NewVisited(seed ...Node) Visited {
	v := make(Visited, len(seed))
	for _, n := range seed {
		v[n] = struct{}{}
	}

	return v
}

// Enter computes the first semantically meaningful node control reaches
// when n is entered, or (nil, nil) if the walk is unresolvable (a cycle,
// an unresolvable Goto, or falling off the method). It returns an error
// only for the two fatal, structural failures of spec.md §7.
func Enter(idx *Index, n Node, visited Visited) (Node, error) {
	if _, seen := visited[n]; seen {
		return nil, nil
	}

	visited[n] = struct{}{}

	switch v := n.(type) {
	case *Label:
		return Exit(idx, v, visited)
	case *Expression:
		if v.Code == CodeGoto {
			return enterGoto(idx, v, visited)
		}

		return v, nil
	case *Block:
		return enterBody(idx, v, v.EntryGoto, v.Body, visited)
	case *CaseBlock:
		// CaseBlock never carries an EntryGoto; it otherwise behaves
		// exactly like Block on entry.
		return enterBody(idx, v, nil, v.Body, visited)
	case *Condition:
		return v.Cond, nil
	case *Loop:
		if v.Cond != nil {
			return v.Cond, nil
		}

		return Enter(idx, v.Body, visited)
	case *TryCatchBlock:
		// Opaque: a try region can't be statically entered by a jump
		// from outside except at its very first statement; see
		// enterGoto.
		return v, nil
	case *Switch:
		return v.Cond, nil
	default:
		return nil, cferrors.UnsupportedNode(fmt.Sprintf("%T", n))
	}
}

func enterBody(idx *Index, self Node, entryGoto *Expression, body []Node, visited Visited) (Node, error) {
	if entryGoto != nil {
		return Enter(idx, entryGoto, visited)
	}

	if len(body) == 0 {
		return Exit(idx, self, visited)
	}

	return Enter(idx, body[0], visited)
}

// Exit computes the next node executed after n completes, or (nil, nil) if
// control leaves the method (or falls off a switch, which is never
// permitted implicitly).
func Exit(idx *Index, n Node, visited Visited) (Node, error) {
	parent, ok := idx.ParentOf(n)
	if !ok || parent == nil {
		return nil, nil
	}

	switch p := parent.(type) {
	case *Block:
		return exitViaSiblingOr(idx, n, p, visited)
	case *CaseBlock:
		return exitViaSiblingOr(idx, n, p, visited)
	case *Condition:
		return Exit(idx, p, visited)
	case *TryCatchBlock:
		// Finally blocks are ignored here: try regions cannot be
		// entered from outside, so this never masks a finally-head.
		return Exit(idx, p, visited)
	case *CatchHandler:
		// A catch body completes the same way the try region does.
		return Exit(idx, p, visited)
	case *Switch:
		return nil, nil
	case *Loop:
		return Enter(idx, p, visited)
	default:
		return nil, cferrors.UnsupportedNode(fmt.Sprintf("%T", parent))
	}
}

func exitViaSiblingOr(idx *Index, n, parent Node, visited Visited) (Node, error) {
	if next, ok := idx.NextSibling(n); ok && next != nil {
		return Enter(idx, next, visited)
	}

	return Exit(idx, parent, visited)
}

// enterGoto resolves a Goto's target, honoring the try/catch frontier: a
// jump may never statically enter a try region from outside except at its
// very first statement.
func enterGoto(idx *Index, g *Expression, visited Visited) (Node, error) {
	label, _ := g.Operand.(*Label)
	if label == nil {
		return nil, nil
	}

	srcTry, _ := FirstParentOfType[*TryCatchBlock](idx, g)
	tgtTry, _ := FirstParentOfType[*TryCatchBlock](idx, label)

	if srcTry == tgtTry {
		return Enter(idx, label, visited)
	}

	sourceChain := ParentsOfType[*TryCatchBlock](idx, g)
	targetChain := ParentsOfType[*TryCatchBlock](idx, label)
	slices.Reverse(sourceChain)
	slices.Reverse(targetChain)

	i := 0
	for i < len(sourceChain) && i < len(targetChain) && sourceChain[i] == targetChain[i] {
		i++
	}

	if i == len(targetChain) {
		// Target is already inside every try block the source is in.
		return Enter(idx, label, visited)
	}

	targetTry := targetChain[i]

	if _, ok := enterIntoTry(targetTry, label); ok {
		return targetTry, nil
	}

	return nil, nil
}

// enterIntoTry reports whether label appears at the entry position of
// start's try body — walking into nested try-bodies and skipping Nops,
// stopping at the first non-Nop/non-Label statement. A match at any
// nesting depth resolves to the outermost start block, matching the
// original decompiler's behavior: the goto is treated as arriving at the
// try region itself, not at the inner nested one.
func enterIntoTry(start *TryCatchBlock, label *Label) (*TryCatchBlock, bool) {
	current := start

	for current != nil {
		advanced := false

		for _, n := range current.TryBlock.Body {
			if l, ok := n.(*Label); ok {
				if l == label {
					return start, true
				}

				continue
			}

			if Match(n, CodeNop) {
				continue
			}

			if nested, ok := n.(*TryCatchBlock); ok {
				current = nested
			} else {
				current = nil
			}

			advanced = true

			break
		}

		if !advanced {
			return nil, false
		}
	}

	return nil, false
}
