package parser

import (
	"testing"

	"github.com/aaronc81/yascad-go/pkg/ast"
	"github.com/aaronc81/yascad-go/pkg/source"
)

func parseOK(t *testing.T, text string) *ast.File {
	t.Helper()
	src := source.New("test.yascad", text)
	file, lexErrs, parseErrs := ParseSource(src)
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}
	return file
}

func TestParseCallWithPositionalArguments(t *testing.T) {
	file := parseOK(t, "cube(10, 20.5, 30);")
	if len(file.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(file.Statements))
	}
	stmt, ok := file.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", file.Statements[0])
	}
	call, ok := stmt.Expr.(*ast.Call)
	if !ok {
		t.Fatalf("expected Call, got %T", stmt.Expr)
	}
	if call.Name != "cube" {
		t.Errorf("expected name cube, got %s", call.Name)
	}
	if len(call.Arguments.Positional) != 3 {
		t.Fatalf("expected 3 positional args, got %d", len(call.Arguments.Positional))
	}
	// Invariant: a node's span strictly contains every descendant span.
	for _, arg := range call.Arguments.Positional {
		if arg.Span().Offset < call.Span().Offset || arg.Span().End() > call.Span().End() {
			t.Errorf("argument span %v not contained in call span %v", arg.Span(), call.Span())
		}
	}
}

func TestParseNamedArgumentsAfterPositional(t *testing.T) {
	file := parseOK(t, "cylinder(10, r=5, h=20);")
	call := file.Statements[0].(*ast.ExprStmt).Expr.(*ast.Call)
	if len(call.Arguments.Positional) != 1 {
		t.Fatalf("expected 1 positional arg, got %d", len(call.Arguments.Positional))
	}
	if len(call.Arguments.Named) != 2 {
		t.Fatalf("expected 2 named args, got %d", len(call.Arguments.Named))
	}
	if call.Arguments.Named[0].Name != "r" || call.Arguments.Named[1].Name != "h" {
		t.Errorf("unexpected named argument order: %+v", call.Arguments.Named)
	}
}

func TestPositionalArgumentAfterNamedArgumentIsAnError(t *testing.T) {
	src := source.New("test.yascad", "cube(r=5, 10);")
	_, _, errs := ParseSource(src)
	if len(errs) != 1 || errs[0].Kind != PositionalArgumentAfterNamedArgument {
		t.Fatalf("expected a single PositionalArgumentAfterNamedArgument error, got %+v", errs)
	}
}

func TestRequiredParameterAfterOptionalParameterIsAnError(t *testing.T) {
	src := source.New("test.yascad", "module thing(a = 1, b) { cube(a); }")
	_, _, errs := ParseSource(src)
	if len(errs) != 1 || errs[0].Kind != RequiredParameterAfterOptionalParameter {
		t.Fatalf("expected a single RequiredParameterAfterOptionalParameter error, got %+v", errs)
	}
}

func TestParsePrecedenceAdditiveOverMultiplicative(t *testing.T) {
	file := parseOK(t, "x = a + b * c;")
	binding := file.Statements[0].(*ast.Binding)
	top, ok := binding.Value.(*ast.BinaryOp)
	if !ok || top.Op != ast.Add {
		t.Fatalf("expected top-level Add, got %+v", binding.Value)
	}
	right, ok := top.Right.(*ast.BinaryOp)
	if !ok || right.Op != ast.Multiply {
		t.Fatalf("expected b*c to bind tighter than +, got %+v", top.Right)
	}
}

func TestParsePrecedenceComparisonOverAdditive(t *testing.T) {
	file := parseOK(t, "x = a == b + c;")
	binding := file.Statements[0].(*ast.Binding)
	top, ok := binding.Value.(*ast.BinaryOp)
	if !ok || top.Op != ast.Equal {
		t.Fatalf("expected top-level Equal, got %+v", binding.Value)
	}
	if _, ok := top.Right.(*ast.BinaryOp); !ok {
		t.Fatalf("expected b+c to bind tighter than ==, got %+v", top.Right)
	}
}

func TestParseUnaryNegateBindsTighterThanMultiply(t *testing.T) {
	// -a * b parses as (-a) * b, not -(a*b).
	file := parseOK(t, "x = -a * b;")
	binding := file.Statements[0].(*ast.Binding)
	top, ok := binding.Value.(*ast.BinaryOp)
	if !ok || top.Op != ast.Multiply {
		t.Fatalf("expected top-level Multiply, got %+v", binding.Value)
	}
	if _, ok := top.Left.(*ast.UnaryNegate); !ok {
		t.Fatalf("expected left operand to be UnaryNegate, got %+v", top.Left)
	}
}

func TestParseCallSingleChildPromotion(t *testing.T) {
	file := parseOK(t, "translate([1,2,3]) cube(1);")
	stmt := file.Statements[0].(*ast.ExprStmt)
	opApp, ok := stmt.Expr.(*ast.OperatorApplication)
	if !ok {
		t.Fatalf("expected OperatorApplication, got %T", stmt.Expr)
	}
	if opApp.BraceBody {
		t.Errorf("expected single-child form, not brace form")
	}
	if len(opApp.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(opApp.Children))
	}
}

func TestParseCallBraceChildrenPromotion(t *testing.T) {
	file := parseOK(t, "translate([1,2,3]) { cube(1); cube(2); }")
	stmt := file.Statements[0].(*ast.ExprStmt)
	opApp, ok := stmt.Expr.(*ast.OperatorApplication)
	if !ok {
		t.Fatalf("expected OperatorApplication, got %T", stmt.Expr)
	}
	if !opApp.BraceBody {
		t.Errorf("expected brace form")
	}
	if len(opApp.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(opApp.Children))
	}
}

func TestParsePlainCallIsNotPromoted(t *testing.T) {
	file := parseOK(t, "cube(1);")
	stmt := file.Statements[0].(*ast.ExprStmt)
	if _, ok := stmt.Expr.(*ast.Call); !ok {
		t.Fatalf("expected a plain Call, got %T", stmt.Expr)
	}
}

func TestParseBraceBodyElidesSemicolon(t *testing.T) {
	// No trailing `;` after the closing brace — this must still parse
	// cleanly since the statement ended with a brace block.
	file := parseOK(t, "union() { cube(1); cube(2); } translate([1,0,0]) cube(1);")
	if len(file.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(file.Statements))
	}
}

func TestParseRangeLiteral(t *testing.T) {
	file := parseOK(t, "x = [1:3];")
	binding := file.Statements[0].(*ast.Binding)
	rng, ok := binding.Value.(*ast.RangeLiteral)
	if !ok {
		t.Fatalf("expected RangeLiteral, got %T", binding.Value)
	}
	start, ok := rng.Start.(*ast.Number)
	if !ok || start.Value != 1 {
		t.Errorf("expected start 1, got %+v", rng.Start)
	}
	end, ok := rng.End.(*ast.Number)
	if !ok || end.Value != 3 {
		t.Errorf("expected end 3, got %+v", rng.End)
	}
}

func TestParseSingleElementVectorIsNotARange(t *testing.T) {
	file := parseOK(t, "x = [5];")
	binding := file.Statements[0].(*ast.Binding)
	vec, ok := binding.Value.(*ast.VectorLiteral)
	if !ok {
		t.Fatalf("expected VectorLiteral, got %T", binding.Value)
	}
	if len(vec.Elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(vec.Elements))
	}
}

func TestParseEmptyVectorLiteral(t *testing.T) {
	file := parseOK(t, "x = [];")
	binding := file.Statements[0].(*ast.Binding)
	vec, ok := binding.Value.(*ast.VectorLiteral)
	if !ok || len(vec.Elements) != 0 {
		t.Fatalf("expected empty VectorLiteral, got %+v", binding.Value)
	}
}

func TestParseFieldAccessChain(t *testing.T) {
	file := parseOK(t, "x = point.position.x;")
	binding := file.Statements[0].(*ast.Binding)
	outer, ok := binding.Value.(*ast.FieldAccess)
	if !ok || outer.Name != "x" {
		t.Fatalf("expected outer FieldAccess .x, got %+v", binding.Value)
	}
	inner, ok := outer.Value.(*ast.FieldAccess)
	if !ok || inner.Name != "position" {
		t.Fatalf("expected inner FieldAccess .position, got %+v", outer.Value)
	}
	if _, ok := inner.Value.(*ast.Identifier); !ok {
		t.Fatalf("expected base Identifier, got %+v", inner.Value)
	}
}

func TestParseModuleDefinitionWithOptionalParameters(t *testing.T) {
	file := parseOK(t, "module ring(r, h = 1) { cylinder(r=r, h=h); }")
	def, ok := file.Statements[0].(*ast.ModuleDef)
	if !ok {
		t.Fatalf("expected ModuleDef, got %T", file.Statements[0])
	}
	if def.Name != "ring" {
		t.Errorf("expected name ring, got %s", def.Name)
	}
	if len(def.Parameters.Required) != 1 || def.Parameters.Required[0] != "r" {
		t.Errorf("expected required param r, got %+v", def.Parameters.Required)
	}
	if len(def.Parameters.Optional) != 1 || def.Parameters.Optional[0].Name != "h" {
		t.Errorf("expected optional param h, got %+v", def.Parameters.Optional)
	}
}

func TestParseOperatorDefinition(t *testing.T) {
	file := parseOK(t, "operator twice() { children(); children(); }")
	def, ok := file.Statements[0].(*ast.OperatorDef)
	if !ok {
		t.Fatalf("expected OperatorDef, got %T", file.Statements[0])
	}
	if def.Name != "twice" {
		t.Errorf("expected name twice, got %s", def.Name)
	}
	if len(def.Body) != 2 {
		t.Fatalf("expected 2 body statements, got %d", len(def.Body))
	}
}

func TestParseForStatement(t *testing.T) {
	file := parseOK(t, "for (i = [0:3]) { cube(i); }")
	stmt, ok := file.Statements[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected ForStmt, got %T", file.Statements[0])
	}
	if stmt.Variable != "i" {
		t.Errorf("expected variable i, got %s", stmt.Variable)
	}
	if _, ok := stmt.Source.(*ast.RangeLiteral); !ok {
		t.Fatalf("expected RangeLiteral source, got %T", stmt.Source)
	}
}

func TestParseIfElseIfElse(t *testing.T) {
	file := parseOK(t, `
if (a == 1) {
	cube(1);
} else if (a == 2) {
	cube(2);
} else {
	cube(3);
}
`)
	outer, ok := file.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected IfStmt, got %T", file.Statements[0])
	}
	if len(outer.Else) != 1 {
		t.Fatalf("expected 1 else-branch statement (the else-if), got %d", len(outer.Else))
	}
	elseIf, ok := outer.Else[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected else-if to be an IfStmt, got %T", outer.Else[0])
	}
	if len(elseIf.Else) != 1 {
		t.Fatalf("expected final else branch, got %d statements", len(elseIf.Else))
	}
}

func TestParseBooleanAndIt(t *testing.T) {
	file := parseOK(t, "module m() { if (true) { cube(it); } }")
	def := file.Statements[0].(*ast.ModuleDef)
	ifStmt := def.Body[0].(*ast.IfStmt)
	if _, ok := ifStmt.Condition.(*ast.Boolean); !ok {
		t.Fatalf("expected Boolean condition, got %T", ifStmt.Condition)
	}
	call := ifStmt.Then[0].(*ast.ExprStmt).Expr.(*ast.Call)
	if _, ok := call.Arguments.Positional[0].(*ast.It); !ok {
		t.Fatalf("expected It argument, got %T", call.Arguments.Positional[0])
	}
}

func TestParseUnexpectedTokenRecoversAndContinues(t *testing.T) {
	// A malformed statement must not prevent the next one from parsing.
	src := source.New("test.yascad", "cube(1 2);\nsphere(5);")
	file, _, errs := ParseSource(src)
	if len(errs) == 0 {
		t.Fatalf("expected at least one parse error")
	}
	var sawSphere bool
	for _, stmt := range file.Statements {
		if es, ok := stmt.(*ast.ExprStmt); ok {
			if call, ok := es.Expr.(*ast.Call); ok && call.Name == "sphere" {
				sawSphere = true
			}
		}
	}
	if !sawSphere {
		t.Fatalf("expected recovery to still parse the sphere(5) statement, got %+v", file.Statements)
	}
}

func TestParseMissingSemicolonIsAnError(t *testing.T) {
	// A trailing number can't promote to an operator application (that
	// needs a following identifier/call or brace block), so this is a
	// plain Call statement missing its terminator.
	src := source.New("test.yascad", "cube(1) 5;")
	_, _, errs := ParseSource(src)
	if len(errs) == 0 {
		t.Fatalf("expected a missing-semicolon error")
	}
}
