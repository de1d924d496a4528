package ast

import "fmt"

// AstCode is the opcode of an Expression. The six values the core reasons
// about explicitly are listed below; every other opcode is opaque to this
// package and carried as CodeOpaque with a human-readable Name (the way a
// real bytecode opcode like "iadd" or "invokevirtual" would be represented
// upstream of this core).
type AstCode int

const (
	// CodeGoto is a synthetic unconditional jump whose Operand is always
	// a *Label. It is the only opcode the jump simplifier rewrites.
	CodeGoto AstCode = iota
	// CodeNop is a no-op; dead-code sweeping purges it outright.
	CodeNop
	// CodeLeave marks an exit from a protected region left over from
	// lower-level lowering; dead-code sweeping purges it outright.
	CodeLeave
	// CodeReturn returns from the method, optionally with an argument.
	CodeReturn
	// CodeLoopOrSwitchBreak exits the innermost enclosing Loop or Switch.
	CodeLoopOrSwitchBreak
	// CodeLoopContinue re-enters the innermost enclosing Loop.
	CodeLoopContinue
	// CodeOpaque is any opcode this core does not special-case.
	CodeOpaque
)

func (c AstCode) String() string {
	switch c {
	case CodeGoto:
		return "Goto"
	case CodeNop:
		return "Nop"
	case CodeLeave:
		return "Leave"
	case CodeReturn:
		return "Return"
	case CodeLoopOrSwitchBreak:
		return "LoopOrSwitchBreak"
	case CodeLoopContinue:
		return "LoopContinue"
	default:
		return "Opaque"
	}
}

// Expression is a single operation: an opcode, an optional operand (a
// *Label for CodeGoto; otherwise opaque to this core), and an ordered list
// of argument sub-expressions.
type Expression struct {
	base

	Code AstCode
	// Name labels an opaque expression for debugging/printing, e.g. "A"
	// for a bytecode mnemonic this core does not interpret.
	Name string
	// Operand is the Goto's target Label. Any other opcode's operand is
	// opaque to this core.
	Operand any
	// Arguments are nested sub-expressions, e.g. a Return's value or a
	// Call's actual parameters.
	Arguments []*Expression
	// ExtraTargets lets an opaque expression declare itself a multi-way
	// branch (e.g. a lowered jump table) without this core needing to
	// understand its opcode.
	ExtraTargets []*Label
	// Unconditional marks an opaque expression that never falls through
	// to its textual successor (e.g. a lowered throw).
	Unconditional bool
}

// NewExpression constructs an opaque expression, the shape used for nodes
// this core treats polymorphically (Op.A, Op.B, ... in test fixtures).
func NewExpression(name string, args ...*Expression) *Expression {
	return &Expression{Code: CodeOpaque, Name: name, Arguments: args}
}

// NewGoto constructs a Goto expression targeting label.
func NewGoto(label *Label) *Expression {
	return &Expression{Code: CodeGoto, Operand: label}
}

func (e *Expression) Children() []Node {
	out := make([]Node, 0, len(e.Arguments))
	for _, a := range e.Arguments {
		out = append(out, a)
	}

	return out
}

// IsBranch reports whether this expression carries one or more branch
// targets (Label operands reachable elsewhere in the method).
func (e *Expression) IsBranch() bool {
	return e.Code == CodeGoto || len(e.ExtraTargets) > 0
}

// BranchTargets returns every Label this expression can transfer control
// to. It is empty for non-branch expressions.
func (e *Expression) BranchTargets() []*Label {
	if e.Code == CodeGoto {
		if l, ok := e.Operand.(*Label); ok {
			return []*Label{l}
		}

		return nil
	}

	return e.ExtraTargets
}

// IsUnconditionalControlFlow reports whether this expression never falls
// through to its textual successor.
func (e *Expression) IsUnconditionalControlFlow() bool {
	switch e.Code {
	case CodeGoto, CodeReturn, CodeLoopOrSwitchBreak, CodeLoopContinue:
		return true
	default:
		return e.Unconditional
	}
}

func (e *Expression) String() string {
	if e.Code == CodeOpaque {
		return fmt.Sprintf("Expr(%s)", e.Name)
	}

	if e.Code == CodeGoto {
		if l, ok := e.Operand.(*Label); ok {
			return fmt.Sprintf("Goto(%s)", l.Name)
		}
	}

	return e.Code.String()
}

// Label is an identity-only marker; its position in a Block/CaseBlock body
// is the destination any Goto naming it resolves to.
type Label struct {
	base

	Name string
}

// NewLabel constructs a label, name is for debugging only.
func NewLabel(name string) *Label { return &Label{Name: name} }

func (l *Label) Children() []Node { return nil }
func (l *Label) String() string   { return l.Name }

// Block is an ordered list of statements. EntryGoto, when present, is the
// synthetic jump a lowering pass inserted to mark the block's real entry
// point; enter() follows it instead of falling into Body[0].
type Block struct {
	base

	EntryGoto *Expression
	Body      []Node
}

// NewBlock constructs a block from the given statements.
func NewBlock(body ...Node) *Block { return &Block{Body: body} }

func (b *Block) Children() []Node {
	if b.EntryGoto == nil {
		return append([]Node(nil), b.Body...)
	}

	return append([]Node{b.EntryGoto}, b.Body...)
}

// CaseBlock is a switch arm: a (possibly empty) set of case values and a
// body of statements. An empty Values list denotes the default arm.
//
// CaseBlock embeds Block so it is parented, indexed, and walked exactly
// like any other Block — the rule that a case may not fall off its end
// comes from CaseBlock's own exit() (its parent is a Switch), not from any
// special-casing of how its body is traversed.
type CaseBlock struct {
	Block

	Values []int64
}

// NewCaseBlock constructs a case arm; pass no values for the default case.
func NewCaseBlock(values []int64, body ...Node) *CaseBlock {
	return &CaseBlock{Block: Block{Body: body}, Values: values}
}

// IsDefault reports whether this is the switch's default arm.
func (c *CaseBlock) IsDefault() bool { return len(c.Values) == 0 }

// Condition is an if/else: a condition expression plus a then- and
// else-Block, both of which converge to the same successor on exit.
type Condition struct {
	base

	Cond *Expression
	Then *Block
	Else *Block
}

func NewCondition(cond *Expression, then, els *Block) *Condition {
	return &Condition{Cond: cond, Then: then, Else: els}
}

func (c *Condition) Children() []Node {
	out := []Node{c.Cond}
	if c.Then != nil {
		out = append(out, c.Then)
	}

	if c.Else != nil {
		out = append(out, c.Else)
	}

	return out
}

// Loop is a structured loop: an optional condition expression (nil for an
// unconditional loop, i.e. `loop { ... }`) and a body Block.
type Loop struct {
	base

	Cond *Expression
	Body *Block
}

func NewLoop(cond *Expression, body *Block) *Loop {
	return &Loop{Cond: cond, Body: body}
}

func (l *Loop) Children() []Node {
	out := make([]Node, 0, 2)
	if l.Cond != nil {
		out = append(out, l.Cond)
	}

	return append(out, l.Body)
}

// Switch is a condition expression plus an ordered list of case arms.
type Switch struct {
	base

	Cond  *Expression
	Cases []*CaseBlock
}

func NewSwitch(cond *Expression, cases ...*CaseBlock) *Switch {
	return &Switch{Cond: cond, Cases: cases}
}

func (s *Switch) Children() []Node {
	out := make([]Node, 0, 1+len(s.Cases))
	out = append(out, s.Cond)

	for _, c := range s.Cases {
		out = append(out, c)
	}

	return out
}

// CatchHandler is one catch clause of a TryCatchBlock.
type CatchHandler struct {
	base

	ExceptionType string
	Body          *Block
}

func (c *CatchHandler) Children() []Node { return []Node{c.Body} }

// TryCatchBlock is a try Block plus zero or more catch handlers and an
// optional finally Block. Per the walker's Goto-resolution rule, a try
// region can never be entered from outside except at its very first
// statement, because finally semantics require the tried-frames stack on
// entry to be well-defined.
type TryCatchBlock struct {
	base

	TryBlock     *Block
	Catches      []*CatchHandler
	FinallyBlock *Block
}

func NewTryCatchBlock(try *Block) *TryCatchBlock {
	return &TryCatchBlock{TryBlock: try}
}

func (t *TryCatchBlock) Children() []Node {
	out := make([]Node, 0, 2+len(t.Catches))
	out = append(out, t.TryBlock)

	for _, c := range t.Catches {
		out = append(out, c)
	}

	if t.FinallyBlock != nil {
		out = append(out, t.FinallyBlock)
	}

	return out
}
