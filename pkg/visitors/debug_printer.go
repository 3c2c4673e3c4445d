// Package visitors provides AST visitor implementations for various compiler passes
package visitors

import (
	"fmt"
	"strings"

	"github.com/aaronc81/yascad-go/pkg/ast"
)

// DebugPrinter prints a formatted representation of the AST for debugging
type DebugPrinter struct {
	ast.BaseVisitor

	// Output buffer
	output strings.Builder

	// Current indentation level
	indent int
}

// NewDebugPrinter creates a new debug printer
func NewDebugPrinter() *DebugPrinter {
	return &DebugPrinter{
		indent: 0,
	}
}

// String returns the formatted output
func (d *DebugPrinter) String() string {
	return d.output.String()
}

// print writes indented output
func (d *DebugPrinter) print(format string, args ...interface{}) {
	d.output.WriteString(strings.Repeat("  ", d.indent))
	d.output.WriteString(fmt.Sprintf(format, args...))
	d.output.WriteString("\n")
}

// VisitFile prints the top-level statement list
func (d *DebugPrinter) VisitFile(node *ast.File) interface{} {
	d.print("File")
	d.indent++
	for _, stmt := range node.Statements {
		stmt.Accept(d)
	}
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitIdentifier(node *ast.Identifier) interface{} {
	d.print("Identifier %q", node.Name)
	return nil
}

func (d *DebugPrinter) VisitNumber(node *ast.Number) interface{} {
	d.print("Number %g", node.Value)
	return nil
}

func (d *DebugPrinter) VisitBoolean(node *ast.Boolean) interface{} {
	d.print("Boolean %t", node.Value)
	return nil
}

func (d *DebugPrinter) VisitIt(node *ast.It) interface{} {
	d.print("It")
	return nil
}

func (d *DebugPrinter) VisitVectorLiteral(node *ast.VectorLiteral) interface{} {
	d.print("VectorLiteral (%d elements)", len(node.Elements))
	d.indent++
	for _, e := range node.Elements {
		e.Accept(d)
	}
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitRangeLiteral(node *ast.RangeLiteral) interface{} {
	d.print("RangeLiteral")
	d.indent++
	d.print("start:")
	d.indent++
	node.Start.Accept(d)
	d.indent--
	d.print("end:")
	d.indent++
	node.End.Accept(d)
	d.indent--
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitFieldAccess(node *ast.FieldAccess) interface{} {
	d.print("FieldAccess .%s", node.Name)
	d.indent++
	node.Value.Accept(d)
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitBinaryOp(node *ast.BinaryOp) interface{} {
	d.print("BinaryOp %s", node.Op)
	d.indent++
	node.Left.Accept(d)
	node.Right.Accept(d)
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitUnaryNegate(node *ast.UnaryNegate) interface{} {
	d.print("UnaryNegate")
	d.indent++
	node.Operand.Accept(d)
	d.indent--
	return nil
}

// printArguments dumps a call site's positional then named arguments.
func (d *DebugPrinter) printArguments(args *ast.Arguments) {
	if args == nil {
		return
	}
	for _, e := range args.Positional {
		e.Accept(d)
	}
	for _, na := range args.Named {
		d.print("named %s =", na.Name)
		d.indent++
		na.Value.Accept(d)
		d.indent--
	}
}

func (d *DebugPrinter) VisitCall(node *ast.Call) interface{} {
	d.print("Call %s", node.Name)
	d.indent++
	d.printArguments(node.Arguments)
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitOperatorApplication(node *ast.OperatorApplication) interface{} {
	d.print("OperatorApplication %s (brace=%t)", node.Name, node.BraceBody)
	d.indent++
	d.printArguments(node.Arguments)
	d.print("children:")
	d.indent++
	for _, c := range node.Children {
		c.Accept(d)
	}
	d.indent--
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitExprStmt(node *ast.ExprStmt) interface{} {
	d.print("ExprStmt")
	d.indent++
	node.Expr.Accept(d)
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitBinding(node *ast.Binding) interface{} {
	d.print("Binding %s =", node.Name)
	d.indent++
	node.Value.Accept(d)
	d.indent--
	return nil
}

// printParameters dumps a definition's required then optional parameters.
func (d *DebugPrinter) printParameters(params *ast.Parameters) {
	if params == nil {
		return
	}
	for _, r := range params.Required {
		d.print("param %s", r)
	}
	for _, opt := range params.Optional {
		d.print("param %s =", opt.Name)
		if opt.Default != nil {
			d.indent++
			opt.Default.Accept(d)
			d.indent--
		}
	}
}

func (d *DebugPrinter) VisitModuleDef(node *ast.ModuleDef) interface{} {
	d.print("ModuleDef %s", node.Name)
	d.indent++
	d.printParameters(node.Parameters)
	for _, s := range node.Body {
		s.Accept(d)
	}
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitOperatorDef(node *ast.OperatorDef) interface{} {
	d.print("OperatorDef %s", node.Name)
	d.indent++
	d.printParameters(node.Parameters)
	for _, s := range node.Body {
		s.Accept(d)
	}
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitForStmt(node *ast.ForStmt) interface{} {
	d.print("ForStmt %s in", node.Variable)
	d.indent++
	node.Source.Accept(d)
	for _, s := range node.Body {
		s.Accept(d)
	}
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitIfStmt(node *ast.IfStmt) interface{} {
	d.print("IfStmt")
	d.indent++
	node.Condition.Accept(d)
	d.print("then:")
	d.indent++
	for _, s := range node.Then {
		s.Accept(d)
	}
	d.indent--
	if len(node.Else) > 0 {
		d.print("else:")
		d.indent++
		for _, s := range node.Else {
			s.Accept(d)
		}
		d.indent--
	}
	d.indent--
	return nil
}
