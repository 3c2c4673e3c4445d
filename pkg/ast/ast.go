// Package ast defines the syntax tree produced by pkg/parser: the node
// set, structural types (Parameters, Arguments), and the visitor
// machinery used to walk it (pkg/visitors, pkg/runtime).
package ast

import "github.com/aaronc81/yascad-go/pkg/source"

// Node is any AST node: every node carries a span and accepts a Visitor.
type Node interface {
	Span() source.Span
	Accept(v Visitor) interface{}
}

// Expr is a node that evaluates to a runtime value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a node that appears in a statement list (a program or a body).
type Stmt interface {
	Node
	stmtNode()
}

// BinaryOperator enumerates the binary operators of §3/§4.2.
type BinaryOperator int

const (
	Add BinaryOperator = iota
	Subtract
	Multiply
	Divide
	Equal
	LessThan
	LessOrEqual
	GreaterThan
	GreaterOrEqual
)

func (op BinaryOperator) String() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Equal:
		return "=="
	case LessThan:
		return "<"
	case LessOrEqual:
		return "<="
	case GreaterThan:
		return ">"
	case GreaterOrEqual:
		return ">="
	default:
		return "?"
	}
}

// ---- Terminals ----

type Identifier struct {
	Pos  source.Span
	Name string
}

func (n *Identifier) Span() source.Span            { return n.Pos }
func (*Identifier) exprNode()                       {}
func (n *Identifier) Accept(v Visitor) interface{} { return v.VisitIdentifier(n) }

type Number struct {
	Pos   source.Span
	Value float64
}

func (n *Number) Span() source.Span            { return n.Pos }
func (*Number) exprNode()                       {}
func (n *Number) Accept(v Visitor) interface{} { return v.VisitNumber(n) }

type Boolean struct {
	Pos   source.Span
	Value bool
}

func (n *Boolean) Span() source.Span            { return n.Pos }
func (*Boolean) exprNode()                       {}
func (n *Boolean) Accept(v Visitor) interface{} { return v.VisitBoolean(n) }

// It is the reserved `it` reference (§3, §4.6).
type It struct {
	Pos source.Span
}

func (n *It) Span() source.Span            { return n.Pos }
func (*It) exprNode()                       {}
func (n *It) Accept(v Visitor) interface{} { return v.VisitIt(n) }

// ---- Vectors ----

type VectorLiteral struct {
	Pos      source.Span
	Elements []Expr
}

func (n *VectorLiteral) Span() source.Span            { return n.Pos }
func (*VectorLiteral) exprNode()                       {}
func (n *VectorLiteral) Accept(v Visitor) interface{} { return v.VisitVectorLiteral(n) }

// RangeLiteral is the inclusive integer range literal `[a:b]`.
type RangeLiteral struct {
	Pos   source.Span
	Start Expr
	End   Expr
}

func (n *RangeLiteral) Span() source.Span            { return n.Pos }
func (*RangeLiteral) exprNode()                       {}
func (n *RangeLiteral) Accept(v Visitor) interface{} { return v.VisitRangeLiteral(n) }

// ---- Access ----

type FieldAccess struct {
	Pos   source.Span
	Value Expr
	Name  string
}

func (n *FieldAccess) Span() source.Span            { return n.Pos }
func (*FieldAccess) exprNode()                       {}
func (n *FieldAccess) Accept(v Visitor) interface{} { return v.VisitFieldAccess(n) }

// ---- Arithmetic ----

type BinaryOp struct {
	Pos   source.Span
	Left  Expr
	Right Expr
	Op    BinaryOperator
}

func (n *BinaryOp) Span() source.Span            { return n.Pos }
func (*BinaryOp) exprNode()                       {}
func (n *BinaryOp) Accept(v Visitor) interface{} { return v.VisitBinaryOp(n) }

type UnaryNegate struct {
	Pos     source.Span
	Operand Expr
}

func (n *UnaryNegate) Span() source.Span            { return n.Pos }
func (*UnaryNegate) exprNode()                       {}
func (n *UnaryNegate) Accept(v Visitor) interface{} { return v.VisitUnaryNegate(n) }

// ---- Parameters / Arguments ----

// OptionalParameter is a `name = default-expr` parameter.
type OptionalParameter struct {
	Name    string
	Default Expr
}

// Parameters is the definition-side parameter list (§3): an ordered list
// of required names, then an ordered list of optional (name, default)
// pairs. Required parameters always precede optional ones in source
// order; the parser enforces this at parse time
// (RequiredParameterAfterOptionalParameter).
type Parameters struct {
	Required []string
	Optional []OptionalParameter
}

// NamedArgument is a `name = expr` argument at a call site.
type NamedArgument struct {
	Name  string
	Value Expr
}

// Arguments is the call-site argument list (§3): ordered positional
// expressions followed by ordered named arguments. Positional arguments
// always precede named ones in source order; the parser enforces this
// (PositionalArgumentAfterNamedArgument).
type Arguments struct {
	Positional []Expr
	Named      []NamedArgument
}

// ---- Call / operator application ----

type Call struct {
	Pos       source.Span
	Name      string
	Arguments *Arguments
}

func (n *Call) Span() source.Span            { return n.Pos }
func (*Call) exprNode()                       {}
func (n *Call) Accept(v Visitor) interface{} { return v.VisitCall(n) }

// OperatorApplication is `name(args) child` or `name(args) { children }`
// (§3, §4.2): a call promoted to an operator application because its
// closing `)` was immediately followed by another call/identifier
// expression or a brace block.
type OperatorApplication struct {
	Pos       source.Span
	Name      string
	Arguments *Arguments
	Children  []Stmt
	// BraceBody is true when Children came from a `{ ... }` block rather
	// than the single-child form `name(args) child`. The parser uses this
	// to decide whether a trailing statement terminator may be elided.
	BraceBody bool
}

func (n *OperatorApplication) Span() source.Span            { return n.Pos }
func (*OperatorApplication) exprNode()                       {}
func (n *OperatorApplication) Accept(v Visitor) interface{} { return v.VisitOperatorApplication(n) }

// ---- Statements ----

// ExprStmt is a bare expression used as a statement (e.g. `cube(1);`).
type ExprStmt struct {
	Pos  source.Span
	Expr Expr
}

func (n *ExprStmt) Span() source.Span            { return n.Pos }
func (*ExprStmt) stmtNode()                       {}
func (n *ExprStmt) Accept(v Visitor) interface{} { return v.VisitExprStmt(n) }

// Binding is `name = expr;` (§3, §4.6).
type Binding struct {
	Pos   source.Span
	Name  string
	Value Expr
}

func (n *Binding) Span() source.Span            { return n.Pos }
func (*Binding) stmtNode()                       {}
func (n *Binding) Accept(v Visitor) interface{} { return v.VisitBinding(n) }

// ModuleDef is a user `module name(params) { body }` definition.
type ModuleDef struct {
	Pos        source.Span
	Name       string
	Parameters *Parameters
	Body       []Stmt
}

func (n *ModuleDef) Span() source.Span            { return n.Pos }
func (*ModuleDef) stmtNode()                       {}
func (n *ModuleDef) Accept(v Visitor) interface{} { return v.VisitModuleDef(n) }

// OperatorDef is a user `operator name(params) { body }` definition.
type OperatorDef struct {
	Pos        source.Span
	Name       string
	Parameters *Parameters
	Body       []Stmt
}

func (n *OperatorDef) Span() source.Span            { return n.Pos }
func (*OperatorDef) stmtNode()                       {}
func (n *OperatorDef) Accept(v Visitor) interface{} { return v.VisitOperatorDef(n) }

// ForStmt is `for (name = source-expr) { body }`.
type ForStmt struct {
	Pos      source.Span
	Variable string
	Source   Expr
	Body     []Stmt
}

func (n *ForStmt) Span() source.Span            { return n.Pos }
func (*ForStmt) stmtNode()                       {}
func (n *ForStmt) Accept(v Visitor) interface{} { return v.VisitForStmt(n) }

// IfStmt is `if (cond) { then } [else { else } | else if ...]`. An
// "else if" is represented by Else containing exactly one *IfStmt.
type IfStmt struct {
	Pos       source.Span
	Condition Expr
	Then      []Stmt
	Else      []Stmt
}

func (n *IfStmt) Span() source.Span            { return n.Pos }
func (*IfStmt) stmtNode()                       {}
func (n *IfStmt) Accept(v Visitor) interface{} { return v.VisitIfStmt(n) }

// File is the root of a parsed program: its top-level statement list.
type File struct {
	Pos        source.Span
	Statements []Stmt
}

func (n *File) Span() source.Span            { return n.Pos }
func (n *File) Accept(v Visitor) interface{} { return v.VisitFile(n) }
