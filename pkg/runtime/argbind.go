package runtime

import (
	"fmt"

	"github.com/aaronc81/yascad-go/pkg/ast"
	"github.com/aaronc81/yascad-go/pkg/source"
)

// evalExprFunc evaluates one expression against the call site's own
// context (scope, arguments, it/children state) — the closure passed
// in by the caller already has that context bound, so this file needs
// no dependency on the concrete Interpreter/evalContext types.
type evalExprFunc func(e ast.Expr) (Object, error)

// BindArguments implements §4.7: positional arguments fill required
// parameters, then optional ones, in definition order (excess is
// IncorrectArity); named arguments fill by name, rejecting a repeat of
// an already-filled position (NamedArgumentRepeatsPositional), a
// repeat of an already-named argument (DuplicateNamedArgument), or an
// unknown name (UndefinedNamedArgument); any required parameter left
// unbound is MissingNamedArguments; any optional parameter left
// unbound is bound to its default expression, evaluated via evalExpr
// (i.e. in the caller's own context) with the arguments bound so far
// NOT visible (§4.7 and DESIGN.md's Open Question decision).
func BindArguments(
	params *ast.Parameters,
	args *ast.Arguments,
	span source.Span,
	evalExpr evalExprFunc,
) (map[string]Object, error) {
	bound := make(map[string]Object)
	filledPosition := make(map[string]bool)

	order := append(append([]string{}, params.Required...), optionalNames(params)...)

	if len(args.Positional) > len(order) {
		return nil, &RuntimeError{
			Kind: IncorrectArity, Span: span,
			Expected: arityRange(len(params.Required), len(order)),
			Actual:   fmt.Sprint(len(args.Positional)),
		}
	}

	for i, expr := range args.Positional {
		v, err := evalExpr(expr)
		if err != nil {
			return nil, err
		}
		name := order[i]
		bound[name] = v
		filledPosition[name] = true
	}

	for _, na := range args.Named {
		if !isDeclaredParam(params, na.Name) {
			return nil, &RuntimeError{Kind: UndefinedNamedArgument, Span: na.Value.Span(), Name: na.Name}
		}
		if filledPosition[na.Name] {
			return nil, &RuntimeError{Kind: NamedArgumentRepeatsPositional, Span: na.Value.Span(), Name: na.Name}
		}
		if _, already := bound[na.Name]; already {
			return nil, &RuntimeError{Kind: DuplicateNamedArgument, Span: na.Value.Span(), Name: na.Name}
		}
		v, err := evalExpr(na.Value)
		if err != nil {
			return nil, err
		}
		bound[na.Name] = v
	}

	var missing []string
	for _, name := range params.Required {
		if _, ok := bound[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &RuntimeError{Kind: MissingNamedArguments, Span: span, MissingNames: missing}
	}

	for _, opt := range params.Optional {
		if _, ok := bound[opt.Name]; ok {
			continue
		}
		v, err := evalExpr(opt.Default)
		if err != nil {
			return nil, err
		}
		bound[opt.Name] = v
	}

	return bound, nil
}

func optionalNames(params *ast.Parameters) []string {
	names := make([]string, len(params.Optional))
	for i, o := range params.Optional {
		names[i] = o.Name
	}
	return names
}

func isDeclaredParam(params *ast.Parameters, name string) bool {
	for _, r := range params.Required {
		if r == name {
			return true
		}
	}
	for _, o := range params.Optional {
		if o.Name == name {
			return true
		}
	}
	return false
}

func arityRange(min, max int) string {
	if min == max {
		return fmt.Sprint(min)
	}
	return fmt.Sprintf("%d to %d", min, max)
}
