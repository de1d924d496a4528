package snapshot

import (
	"fmt"

	"github.com/strobel-go/ctrlflow/internal/ast"
)

// file is the top-level JSON document.
type file struct {
	SchemaVersion string `json:"schema_version"`
	Producer      string `json:"producer"`
	Root          *node  `json:"root"`
}

// node is the wire representation of a single ast.Node. Type discriminates
// which of the type-specific fields below are populated; id is assigned
// depth-first on write and is unique within one file. A Goto's target and
// an opaque expression's extra targets are recorded as label ids rather
// than nested nodes, since a Label lives exactly once in the tree (inside
// some Block's Body) but can be referenced from anywhere.
type node struct {
	ID   int    `json:"id"`
	Type string `json:"type"`

	// Expression
	Code           string `json:"code,omitempty"`
	Name           string `json:"name,omitempty"`
	OperandLabelID *int   `json:"operand_label_id,omitempty"`
	Arguments      []*node `json:"arguments,omitempty"`
	ExtraTargetIDs []int   `json:"extra_target_ids,omitempty"`
	Unconditional  bool    `json:"unconditional,omitempty"`

	// Label
	LabelName string `json:"label_name,omitempty"`

	// Block (and the Block half of CaseBlock)
	EntryGoto *node   `json:"entry_goto,omitempty"`
	Body      []*node `json:"body,omitempty"`

	// CaseBlock
	Values []int64 `json:"values,omitempty"`

	// Condition
	Cond *node `json:"cond,omitempty"`
	Then *node `json:"then,omitempty"`
	Else *node `json:"else,omitempty"`

	// Loop
	LoopCond *node `json:"loop_cond,omitempty"`
	LoopBody *node `json:"loop_body,omitempty"`

	// Switch
	SwitchCond *node   `json:"switch_cond,omitempty"`
	Cases      []*node `json:"cases,omitempty"`

	// TryCatchBlock / CatchHandler
	TryBlock      *node   `json:"try_block,omitempty"`
	Catches       []*node `json:"catches,omitempty"`
	FinallyBlock  *node   `json:"finally_block,omitempty"`
	ExceptionType string  `json:"exception_type,omitempty"`
	CatchBody     *node   `json:"catch_body,omitempty"`
}

var codeNames = map[ast.AstCode]string{
	ast.CodeGoto:              "Goto",
	ast.CodeNop:                "Nop",
	ast.CodeLeave:              "Leave",
	ast.CodeReturn:             "Return",
	ast.CodeLoopOrSwitchBreak:  "LoopOrSwitchBreak",
	ast.CodeLoopContinue:       "LoopContinue",
	ast.CodeOpaque:             "Opaque",
}

var namesToCode = func() map[string]ast.AstCode {
	out := make(map[string]ast.AstCode, len(codeNames))
	for code, name := range codeNames {
		out[name] = code
	}

	return out
}()

func codeToWire(c ast.AstCode) string {
	if name, ok := codeNames[c]; ok {
		return name
	}

	return "Opaque"
}

func wireToCode(s string) (ast.AstCode, error) {
	if c, ok := namesToCode[s]; ok {
		return c, nil
	}

	return 0, fmt.Errorf("snapshot: unknown expression code %q", s)
}
