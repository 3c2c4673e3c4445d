package runtime

import (
	"testing"

	"github.com/aaronc81/yascad-go/pkg/ast"
)

func numberExpr(v float64) ast.Expr { return &ast.Number{Value: v} }

func echoEval(e ast.Expr) (Object, error) {
	switch n := e.(type) {
	case *ast.Number:
		return NumberObject(n.Value), nil
	default:
		return NullObject(), nil
	}
}

func TestBindArgumentsPositionalFillsRequiredThenOptional(t *testing.T) {
	params := &ast.Parameters{
		Required: []string{"a"},
		Optional: []ast.OptionalParameter{{Name: "b", Default: numberExpr(9)}},
	}
	args := &ast.Arguments{Positional: []ast.Expr{numberExpr(1), numberExpr(2)}}

	bound, err := BindArguments(params, args, testSpan, echoEval)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, _ := bound["a"].AsNumber(testSpan); n != 1 {
		t.Fatalf("expected a=1, got %v", n)
	}
	if n, _ := bound["b"].AsNumber(testSpan); n != 2 {
		t.Fatalf("expected b=2, got %v", n)
	}
}

func TestBindArgumentsExcessPositionalFailsIncorrectArity(t *testing.T) {
	params := &ast.Parameters{Required: []string{"a"}}
	args := &ast.Arguments{Positional: []ast.Expr{numberExpr(1), numberExpr(2)}}

	_, err := BindArguments(params, args, testSpan, echoEval)
	if err == nil || err.(*RuntimeError).Kind != IncorrectArity {
		t.Fatalf("expected IncorrectArity, got %v", err)
	}
}

func TestBindArgumentsMissingRequiredFails(t *testing.T) {
	params := &ast.Parameters{Required: []string{"a", "b"}}
	args := &ast.Arguments{Positional: []ast.Expr{numberExpr(1)}}

	_, err := BindArguments(params, args, testSpan, echoEval)
	if err == nil || err.(*RuntimeError).Kind != MissingNamedArguments {
		t.Fatalf("expected MissingNamedArguments, got %v", err)
	}
}

func TestBindArgumentsUndefinedNamedArgumentFails(t *testing.T) {
	params := &ast.Parameters{Required: []string{"a"}}
	args := &ast.Arguments{Named: []ast.NamedArgument{{Name: "bogus", Value: numberExpr(1)}}}

	_, err := BindArguments(params, args, testSpan, echoEval)
	if err == nil || err.(*RuntimeError).Kind != UndefinedNamedArgument {
		t.Fatalf("expected UndefinedNamedArgument, got %v", err)
	}
}

func TestBindArgumentsNamedRepeatsPositionalFails(t *testing.T) {
	params := &ast.Parameters{Required: []string{"a"}}
	args := &ast.Arguments{
		Positional: []ast.Expr{numberExpr(1)},
		Named:      []ast.NamedArgument{{Name: "a", Value: numberExpr(2)}},
	}

	_, err := BindArguments(params, args, testSpan, echoEval)
	if err == nil || err.(*RuntimeError).Kind != NamedArgumentRepeatsPositional {
		t.Fatalf("expected NamedArgumentRepeatsPositional, got %v", err)
	}
}

func TestBindArgumentsDuplicateNamedArgumentFails(t *testing.T) {
	params := &ast.Parameters{Required: []string{"a"}}
	args := &ast.Arguments{
		Named: []ast.NamedArgument{
			{Name: "a", Value: numberExpr(1)},
			{Name: "a", Value: numberExpr(2)},
		},
	}

	_, err := BindArguments(params, args, testSpan, echoEval)
	if err == nil || err.(*RuntimeError).Kind != DuplicateNamedArgument {
		t.Fatalf("expected DuplicateNamedArgument, got %v", err)
	}
}

func TestBindArgumentsOptionalDefaultEvaluatedWhenUnbound(t *testing.T) {
	params := &ast.Parameters{Optional: []ast.OptionalParameter{{Name: "r", Default: numberExpr(7)}}}
	args := &ast.Arguments{}

	bound, err := BindArguments(params, args, testSpan, echoEval)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, _ := bound["r"].AsNumber(testSpan); n != 7 {
		t.Fatalf("expected default r=7, got %v", n)
	}
}
