package runtime

import (
	"fmt"
	"math"

	"github.com/aaronc81/yascad-go/pkg/ast"
	"github.com/aaronc81/yascad-go/pkg/source"
)

// unsetRadius is the sentinel optional-parameter default for the `r`/`d`
// radius convention (§4.5): neither has a literal null to default to in
// source syntax (built-in parameter lists are constructed directly in
// Go, not parsed), so a NaN number default stands in for "not given".
func unsetRadius() ast.Expr { return &ast.Number{Value: math.NaN()} }

func isUnsetRadius(n float64) bool { return math.IsNaN(n) }

// resolveRadius implements the r/d convention (§4.5): exactly one of r
// and d must be given; d contributes d/2.
func resolveRadius(args map[string]Object, span source.Span) (float64, error) {
	r, err := args["r"].AsNumber(span)
	if err != nil {
		return 0, err
	}
	d, err := args["d"].AsNumber(span)
	if err != nil {
		return 0, err
	}
	rSet, dSet := !isUnsetRadius(r), !isUnsetRadius(d)
	switch {
	case rSet && dSet:
		return 0, &RuntimeError{Kind: IncorrectArity, Span: span, Expected: "exactly one of r, d", Actual: "both"}
	case rSet:
		return r, nil
	case dSet:
		return d / 2, nil
	default:
		return 0, &RuntimeError{Kind: IncorrectArity, Span: span, Expected: "exactly one of r, d", Actual: "neither"}
	}
}

// cubeDefinition takes 2 or 3 scalar positionals (x, y, and an optional
// z defaulting to 0), not a single `number|vec3` argument: §8's scenarios
// always call `cube` with 2-3 bare numbers (`cube(10, 20.5, 30)`,
// `cube(1,1,1)`), matching get_vec3_from_arguments's convention rather
// than the single-size form.
func cubeDefinition() ModuleDefinition {
	params := requiredParams("x", "y")
	params.Optional = []ast.OptionalParameter{{Name: "z", Default: &ast.Number{Value: 0}}}
	return ModuleDefinition{
		Parameters: params,
		Action: func(interp *Interpreter, args map[string]Object, ctx evalContext, span source.Span) (Object, error) {
			x, err := args["x"].AsNumber(span)
			if err != nil {
				return Object{}, err
			}
			y, err := args["y"].AsNumber(span)
			if err != nil {
				return Object{}, err
			}
			z, err := args["z"].AsNumber(span)
			if err != nil {
				return Object{}, err
			}
			m := interp.Kernel.Cube(x, y, z, true)
			return ManifoldObject(interp.Table.AddManifold(m, Physical)), nil
		},
	}
}

func cylinderDefinition() ModuleDefinition {
	params := requiredParams("h")
	params.Optional = []ast.OptionalParameter{
		{Name: "r", Default: unsetRadius()},
		{Name: "d", Default: unsetRadius()},
	}
	return ModuleDefinition{
		Parameters: params,
		Action: func(interp *Interpreter, args map[string]Object, ctx evalContext, span source.Span) (Object, error) {
			h, err := args["h"].AsNumber(span)
			if err != nil {
				return Object{}, err
			}
			r, err := resolveRadius(args, span)
			if err != nil {
				return Object{}, err
			}
			m := interp.Kernel.Cylinder(r, h, interp.Segments, true)
			return ManifoldObject(interp.Table.AddManifold(m, Physical)), nil
		},
	}
}

// squareDefinition takes 2 scalar positionals (x, y), the 2D analogue of
// cubeDefinition's convention.
func squareDefinition() ModuleDefinition {
	return ModuleDefinition{
		Parameters: requiredParams("x", "y"),
		Action: func(interp *Interpreter, args map[string]Object, ctx evalContext, span source.Span) (Object, error) {
			x, err := args["x"].AsNumber(span)
			if err != nil {
				return Object{}, err
			}
			y, err := args["y"].AsNumber(span)
			if err != nil {
				return Object{}, err
			}
			c := interp.Kernel.Square(x, y, true)
			return CrossSectionObject(interp.Table.AddCrossSection(c, Physical)), nil
		},
	}
}

func circleDefinition() ModuleDefinition {
	params := noParams()
	params.Optional = []ast.OptionalParameter{
		{Name: "r", Default: unsetRadius()},
		{Name: "d", Default: unsetRadius()},
	}
	return ModuleDefinition{
		Parameters: params,
		Action: func(interp *Interpreter, args map[string]Object, ctx evalContext, span source.Span) (Object, error) {
			r, err := resolveRadius(args, span)
			if err != nil {
				return Object{}, err
			}
			c := interp.Kernel.Circle(r, interp.Segments)
			return CrossSectionObject(interp.Table.AddCrossSection(c, Physical)), nil
		},
	}
}

func copyDefinition() ModuleDefinition {
	return ModuleDefinition{
		Parameters: requiredParams("source"),
		Action: func(interp *Interpreter, args map[string]Object, ctx evalContext, span source.Span) (Object, error) {
			src := args["source"]
			switch src.Kind {
			case ObjManifold:
				m, _ := interp.Table.Get(src.Handle)
				return ManifoldObject(interp.Table.AddManifold(m, Physical)), nil
			case ObjCrossSection:
				_, c := interp.Table.Get(src.Handle)
				return CrossSectionObject(interp.Table.AddCrossSection(c, Physical)), nil
			default:
				return Object{}, &RuntimeError{Kind: IncorrectType, Span: span, Expected: "manifold or cross-section", Actual: src.DescribeType()}
			}
		},
	}
}

func childrenDefinition() ModuleDefinition {
	return ModuleDefinition{
		Parameters: noParams(),
		Action: func(interp *Interpreter, args map[string]Object, ctx evalContext, span source.Span) (Object, error) {
			if !ctx.insideOperator {
				return Object{}, &RuntimeError{Kind: ChildrenInvalid, Span: span}
			}
			copies := make([]GeometryHandle, 0, len(ctx.children))
			for _, h := range ctx.children {
				m, c := interp.Table.Get(h)
				if m != nil {
					copies = append(copies, interp.Table.AddManifold(m, Physical))
				} else {
					copies = append(copies, interp.Table.AddCrossSection(c, Physical))
				}
			}
			entry, _, err := interp.Table.UnionMany(copies, span)
			if err != nil {
				return Object{}, err
			}
			if entry.manifold != nil {
				return ManifoldObject(interp.Table.AddManifold(entry.manifold, Physical)), nil
			}
			if entry.crossSection != nil {
				return CrossSectionObject(interp.Table.AddCrossSection(entry.crossSection, Physical)), nil
			}
			return NullObject(), nil
		},
	}
}

func debugDefinition() ModuleDefinition {
	return ModuleDefinition{
		Parameters: requiredParams("o"),
		Action: func(interp *Interpreter, args map[string]Object, ctx evalContext, span source.Span) (Object, error) {
			if interp.Debug != nil {
				fmt.Fprintf(interp.Debug, "%s\n", DescribeObject(args["o"], interp.Table))
			}
			return NullObject(), nil
		},
	}
}
