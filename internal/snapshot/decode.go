package snapshot

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/strobel-go/ctrlflow/internal/ast"
)

// Load reads a JSON snapshot from r and reconstructs its method body,
// restoring every Goto/branch-target reference to point at the exact same
// *ast.Label value its source Block owns.
func Load(r io.Reader) (*ast.Block, error) {
	var f file

	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}

	if err := CheckCompatible(f.SchemaVersion); err != nil {
		return nil, err
	}

	if f.Root == nil {
		return nil, fmt.Errorf("snapshot: file has no root")
	}

	idToNode := make(map[int]ast.Node)

	var pending []*node

	root, err := decodeNode(f.Root, idToNode, &pending)
	if err != nil {
		return nil, err
	}

	rootBlock, ok := root.(*ast.Block)
	if !ok {
		return nil, fmt.Errorf("snapshot: root must decode to a Block, got %T", root)
	}

	for _, w := range pending {
		if err := resolveReferences(w, idToNode); err != nil {
			return nil, err
		}
	}

	return rootBlock, nil
}

func decodeNode(w *node, idToNode map[int]ast.Node, pending *[]*node) (ast.Node, error) {
	switch w.Type {
	case "Label":
		l := ast.NewLabel(w.LabelName)
		idToNode[w.ID] = l

		return l, nil

	case "Expression":
		code, err := wireToCode(w.Code)
		if err != nil {
			return nil, err
		}

		e := &ast.Expression{Code: code, Name: w.Name, Unconditional: w.Unconditional}
		idToNode[w.ID] = e

		for _, a := range w.Arguments {
			child, err := decodeNode(a, idToNode, pending)
			if err != nil {
				return nil, err
			}

			ce, ok := child.(*ast.Expression)
			if !ok {
				return nil, fmt.Errorf("snapshot: expression argument must be an Expression, got %T", child)
			}

			e.Arguments = append(e.Arguments, ce)
		}

		if w.OperandLabelID != nil || len(w.ExtraTargetIDs) > 0 {
			*pending = append(*pending, w)
		}

		return e, nil

	case "Block":
		b := &ast.Block{}
		idToNode[w.ID] = b

		if w.EntryGoto != nil {
			eg, err := decodeExpr(w.EntryGoto, idToNode, pending)
			if err != nil {
				return nil, err
			}

			b.EntryGoto = eg
		}

		for _, bn := range w.Body {
			child, err := decodeNode(bn, idToNode, pending)
			if err != nil {
				return nil, err
			}

			b.Body = append(b.Body, child)
		}

		return b, nil

	case "CaseBlock":
		cb := &ast.CaseBlock{Values: w.Values}
		idToNode[w.ID] = cb

		for _, bn := range w.Body {
			child, err := decodeNode(bn, idToNode, pending)
			if err != nil {
				return nil, err
			}

			cb.Body = append(cb.Body, child)
		}

		return cb, nil

	case "Condition":
		cond, err := decodeExpr(w.Cond, idToNode, pending)
		if err != nil {
			return nil, err
		}

		then, err := decodeBlock(w.Then, idToNode, pending)
		if err != nil {
			return nil, err
		}

		els, err := decodeBlock(w.Else, idToNode, pending)
		if err != nil {
			return nil, err
		}

		c := &ast.Condition{Cond: cond, Then: then, Else: els}
		idToNode[w.ID] = c

		return c, nil

	case "Loop":
		cond, err := decodeExpr(w.LoopCond, idToNode, pending)
		if err != nil {
			return nil, err
		}

		body, err := decodeBlock(w.LoopBody, idToNode, pending)
		if err != nil {
			return nil, err
		}

		l := &ast.Loop{Cond: cond, Body: body}
		idToNode[w.ID] = l

		return l, nil

	case "Switch":
		cond, err := decodeExpr(w.SwitchCond, idToNode, pending)
		if err != nil {
			return nil, err
		}

		s := &ast.Switch{Cond: cond}
		idToNode[w.ID] = s

		for _, cn := range w.Cases {
			child, err := decodeNode(cn, idToNode, pending)
			if err != nil {
				return nil, err
			}

			cb, ok := child.(*ast.CaseBlock)
			if !ok {
				return nil, fmt.Errorf("snapshot: switch case must be a CaseBlock, got %T", child)
			}

			s.Cases = append(s.Cases, cb)
		}

		return s, nil

	case "TryCatchBlock":
		tryBlk, err := decodeBlock(w.TryBlock, idToNode, pending)
		if err != nil {
			return nil, err
		}

		t := &ast.TryCatchBlock{TryBlock: tryBlk}
		idToNode[w.ID] = t

		for _, cn := range w.Catches {
			child, err := decodeNode(cn, idToNode, pending)
			if err != nil {
				return nil, err
			}

			ch, ok := child.(*ast.CatchHandler)
			if !ok {
				return nil, fmt.Errorf("snapshot: try-catch catches must be CatchHandler, got %T", child)
			}

			t.Catches = append(t.Catches, ch)
		}

		if w.FinallyBlock != nil {
			fb, err := decodeBlock(w.FinallyBlock, idToNode, pending)
			if err != nil {
				return nil, err
			}

			t.FinallyBlock = fb
		}

		return t, nil

	case "CatchHandler":
		body, err := decodeBlock(w.CatchBody, idToNode, pending)
		if err != nil {
			return nil, err
		}

		ch := &ast.CatchHandler{ExceptionType: w.ExceptionType, Body: body}
		idToNode[w.ID] = ch

		return ch, nil

	default:
		return nil, fmt.Errorf("snapshot: unknown node type %q", w.Type)
	}
}

func decodeExpr(w *node, idToNode map[int]ast.Node, pending *[]*node) (*ast.Expression, error) {
	if w == nil {
		return nil, nil
	}

	n, err := decodeNode(w, idToNode, pending)
	if err != nil {
		return nil, err
	}

	e, ok := n.(*ast.Expression)
	if !ok {
		return nil, fmt.Errorf("snapshot: expected an Expression, got %T", n)
	}

	return e, nil
}

func decodeBlock(w *node, idToNode map[int]ast.Node, pending *[]*node) (*ast.Block, error) {
	if w == nil {
		return nil, nil
	}

	n, err := decodeNode(w, idToNode, pending)
	if err != nil {
		return nil, err
	}

	b, ok := n.(*ast.Block)
	if !ok {
		return nil, fmt.Errorf("snapshot: expected a Block, got %T", n)
	}

	return b, nil
}

// resolveReferences fixes up the Operand/ExtraTargets of one pending
// Expression now that every Label in the file has a constructed
// counterpart in idToNode. It runs only after the whole tree is built, so
// a forward reference to a label appearing later in the file resolves
// correctly.
func resolveReferences(w *node, idToNode map[int]ast.Node) error {
	e, ok := idToNode[w.ID].(*ast.Expression)
	if !ok {
		return fmt.Errorf("snapshot: internal: pending reference on non-expression id %d", w.ID)
	}

	if w.OperandLabelID != nil {
		lbl, ok := idToNode[*w.OperandLabelID].(*ast.Label)
		if !ok {
			return fmt.Errorf("snapshot: operand_label_id %d does not refer to a label", *w.OperandLabelID)
		}

		e.Operand = lbl
	}

	for _, tid := range w.ExtraTargetIDs {
		lbl, ok := idToNode[tid].(*ast.Label)
		if !ok {
			return fmt.Errorf("snapshot: extra_target_ids %d does not refer to a label", tid)
		}

		e.ExtraTargets = append(e.ExtraTargets, lbl)
	}

	return nil
}
