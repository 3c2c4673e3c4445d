package runtime

import (
	"github.com/aaronc81/yascad-go/pkg/ast"
	"github.com/aaronc81/yascad-go/pkg/source"
)

// ModuleDefinition is a built-in module (§4.5): a parameter list plus
// an action that produces a single Object, given its bound arguments
// and (only meaningful for children()) the virtual child handles of
// the innermost enclosing user-operator body. Grounded on
// original_source/lang/backend/src/builtin/modules.rs's
// ModuleDefinition; per spec.md §9 ("a table keyed by name ... do not
// bake the names into a giant pattern match") this is a record in a
// name-keyed table, not a branch of a switch.
type ModuleDefinition struct {
	Parameters *ast.Parameters
	Action     func(interp *Interpreter, args map[string]Object, ctx evalContext, span source.Span) (Object, error)
}

// OperatorDefinition is a built-in operator (§4.5): a parameter list
// plus an action that consumes its child handles (passed as evaluated,
// with their dispositions unchanged) and produces a fresh geometry entry
// plus its disposition. Grounded on
// original_source/lang/backend/src/builtin/operators.rs's
// OperatorDefinition.
type OperatorDefinition struct {
	Parameters *ast.Parameters
	Action     func(interp *Interpreter, args map[string]Object, children []GeometryHandle, span source.Span) (geometryTableEntry, GeometryDisposition, error)
}

var builtinModules = map[string]ModuleDefinition{
	"cube":     cubeDefinition(),
	"cylinder": cylinderDefinition(),
	"square":   squareDefinition(),
	"circle":   circleDefinition(),
	"copy":     copyDefinition(),
	"children": childrenDefinition(),
	"__debug":  debugDefinition(),
}

var builtinOperators = map[string]OperatorDefinition{
	"translate":      translateDefinition(),
	"rotate":         rotateDefinition(),
	"scale":          scaleDefinition(),
	"mirror":         mirrorDefinition(),
	"union":          unionDefinition(),
	"difference":     differenceDefinition(),
	"linear_extrude": linearExtrudeDefinition(),
	"buffer":         bufferDefinition(),
}

// GetBuiltinModule looks up a built-in module definition by name.
func GetBuiltinModule(name string) (ModuleDefinition, bool) {
	d, ok := builtinModules[name]
	return d, ok
}

// GetBuiltinOperator looks up a built-in operator definition by name.
func GetBuiltinOperator(name string) (OperatorDefinition, bool) {
	d, ok := builtinOperators[name]
	return d, ok
}

func requiredParams(names ...string) *ast.Parameters {
	return &ast.Parameters{Required: names}
}

func noParams() *ast.Parameters {
	return &ast.Parameters{}
}
