package snapshot

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/strobel-go/ctrlflow/internal/ast"
)

// Save writes root to w as a self-describing JSON snapshot, stamped with
// this package's SchemaVersion.
func Save(w io.Writer, root *ast.Block) error {
	ids := assignIDs(root)

	wireRoot, err := encodeNode(root, ids)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(&file{
		SchemaVersion: SchemaVersion,
		Producer:      "ctrlflow",
		Root:          wireRoot,
	})
}

// assignIDs assigns every node reachable from root a distinct id in
// depth-first containment order (the order ast.Node.Children reports,
// which never follows a Goto's branch-target reference). Two calls to
// Children on the same node must always return the same nodes in the same
// order for this numbering to be meaningful, which every node in this
// package's data model guarantees.
func assignIDs(root ast.Node) map[ast.Node]int {
	ids := make(map[ast.Node]int)
	next := 0

	var walk func(ast.Node)

	walk = func(n ast.Node) {
		ids[n] = next
		next++

		for _, c := range n.Children() {
			walk(c)
		}
	}

	walk(root)

	return ids
}

func encodeNode(n ast.Node, ids map[ast.Node]int) (*node, error) {
	id := ids[n]

	switch v := n.(type) {
	case *ast.Label:
		return &node{ID: id, Type: "Label", LabelName: v.Name}, nil

	case *ast.Expression:
		w := &node{ID: id, Type: "Expression", Code: codeToWire(v.Code), Name: v.Name, Unconditional: v.Unconditional}

		if lbl, ok := v.Operand.(*ast.Label); ok {
			lid := ids[lbl]
			w.OperandLabelID = &lid
		}

		for _, a := range v.Arguments {
			child, err := encodeNode(a, ids)
			if err != nil {
				return nil, err
			}

			w.Arguments = append(w.Arguments, child)
		}

		for _, t := range v.ExtraTargets {
			w.ExtraTargetIDs = append(w.ExtraTargetIDs, ids[t])
		}

		return w, nil

	case *ast.Block:
		w := &node{ID: id, Type: "Block"}

		if v.EntryGoto != nil {
			eg, err := encodeNode(v.EntryGoto, ids)
			if err != nil {
				return nil, err
			}

			w.EntryGoto = eg
		}

		for _, b := range v.Body {
			child, err := encodeNode(b, ids)
			if err != nil {
				return nil, err
			}

			w.Body = append(w.Body, child)
		}

		return w, nil

	case *ast.CaseBlock:
		w := &node{ID: id, Type: "CaseBlock", Values: v.Values}

		for _, b := range v.Body {
			child, err := encodeNode(b, ids)
			if err != nil {
				return nil, err
			}

			w.Body = append(w.Body, child)
		}

		return w, nil

	case *ast.Condition:
		cond, err := encodeNode(v.Cond, ids)
		if err != nil {
			return nil, err
		}

		w := &node{ID: id, Type: "Condition", Cond: cond}

		if v.Then != nil {
			if w.Then, err = encodeNode(v.Then, ids); err != nil {
				return nil, err
			}
		}

		if v.Else != nil {
			if w.Else, err = encodeNode(v.Else, ids); err != nil {
				return nil, err
			}
		}

		return w, nil

	case *ast.Loop:
		body, err := encodeNode(v.Body, ids)
		if err != nil {
			return nil, err
		}

		w := &node{ID: id, Type: "Loop", LoopBody: body}

		if v.Cond != nil {
			if w.LoopCond, err = encodeNode(v.Cond, ids); err != nil {
				return nil, err
			}
		}

		return w, nil

	case *ast.Switch:
		cond, err := encodeNode(v.Cond, ids)
		if err != nil {
			return nil, err
		}

		w := &node{ID: id, Type: "Switch", SwitchCond: cond}

		for _, c := range v.Cases {
			child, err := encodeNode(c, ids)
			if err != nil {
				return nil, err
			}

			w.Cases = append(w.Cases, child)
		}

		return w, nil

	case *ast.TryCatchBlock:
		tryBlk, err := encodeNode(v.TryBlock, ids)
		if err != nil {
			return nil, err
		}

		w := &node{ID: id, Type: "TryCatchBlock", TryBlock: tryBlk}

		for _, c := range v.Catches {
			child, err := encodeNode(c, ids)
			if err != nil {
				return nil, err
			}

			w.Catches = append(w.Catches, child)
		}

		if v.FinallyBlock != nil {
			if w.FinallyBlock, err = encodeNode(v.FinallyBlock, ids); err != nil {
				return nil, err
			}
		}

		return w, nil

	case *ast.CatchHandler:
		body, err := encodeNode(v.Body, ids)
		if err != nil {
			return nil, err
		}

		return &node{ID: id, Type: "CatchHandler", ExceptionType: v.ExceptionType, CatchBody: body}, nil

	default:
		return nil, fmt.Errorf("snapshot: unsupported node type %T", n)
	}
}
