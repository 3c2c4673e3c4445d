package runtime

import (
	"io"

	"github.com/aaronc81/yascad-go/pkg/ast"
	"github.com/aaronc81/yascad-go/pkg/geom"
	"github.com/aaronc81/yascad-go/pkg/source"
)

// defaultCircleSegments is the tessellation used for circle/cylinder
// when no explicit segment count is configured (§6).
const defaultCircleSegments = 20

// finalAssemblyExtrusionHeight is the height a residual 2D cross-section
// is extruded to at final assembly (§4.6, §9 Open Question: named
// constant rather than a silent magic number).
const finalAssemblyExtrusionHeight = 0.01

// itState is the current evaluation context's view of `it` (§3, §4.6):
// unset (outside an operator's argument list, including its children and
// a user operator's body), unsupported (in the argument list of an
// operator applied to zero or more-than-one geometry children), or
// present (the handle of the operator's single child).
type itState int

const (
	itUnset itState = iota
	itUnsupported
	itPresent
)

// evalContext is the small, copied-by-value context threaded through
// evaluation (§3, §9): "derived via with-style copying, parents
// unchanged" — only the Scope field is shared heap structure, the rest
// is plain data copied at each call boundary.
type evalContext struct {
	scope           *Scope
	arguments       map[string]Object
	children        []GeometryHandle
	it              itState
	itHandle        GeometryHandle
	insideOperator  bool
}

func (c evalContext) withScope(s *Scope) evalContext {
	c.scope = s
	return c
}

func (c evalContext) withArguments(args map[string]Object) evalContext {
	c.arguments = args
	return c
}

func (c evalContext) withChildren(children []GeometryHandle, insideOperator bool) evalContext {
	c.children = children
	c.insideOperator = insideOperator
	return c
}

func (c evalContext) withIt(state itState, handle GeometryHandle) evalContext {
	c.it = state
	c.itHandle = handle
	return c
}

// Interpreter runs a parsed program against a geometry table and an
// external geometry Kernel. NewInterpreter -> Run follows a
// construct-then-drive-a-pipeline shape, including a deferred
// recover-as-error discipline around the whole run.
type Interpreter struct {
	Table    *GeometryTable
	Kernel   geom.Kernel
	Segments int
	Debug    io.Writer
}

// NewInterpreter constructs an interpreter with a fresh geometry table
// and the given kernel. Pass nil for kernel to use geom's in-process
// reference implementation.
func NewInterpreter(kernel geom.Kernel) *Interpreter {
	if kernel == nil {
		kernel = geom.NewReferenceKernel()
	}
	return &Interpreter{
		Table:    NewGeometryTable(),
		Kernel:   kernel,
		Segments: defaultCircleSegments,
	}
}

// Run evaluates every top-level statement in sequence against a fresh
// root scope, then performs final assembly (§4.6): union every
// remaining Physical entry, extruding residual 2D cross-sections to a
// thin 3D slab first, and return the combined Manifold3D. A nil result
// means nothing was emitted.
func (interp *Interpreter) Run(file *ast.File) (result geom.Manifold3D, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()

	root := NewRootScope()
	ctx := evalContext{scope: root}

	for _, stmt := range file.Statements {
		if _, err := interp.evalStmt(ctx, stmt); err != nil {
			return nil, err
		}
	}

	return interp.finalAssembly(file.Span())
}

// finalAssembly unions every Physical entry left in the table,
// extruding any cross-sections to finalAssemblyExtrusionHeight first so
// every operand is a Manifold3D.
func (interp *Interpreter) finalAssembly(span source.Span) (geom.Manifold3D, error) {
	var manifolds []geom.Manifold3D
	var handles []GeometryHandle

	interp.Table.Iter(func(h GeometryHandle, m geom.Manifold3D, c geom.CrossSection2D, d GeometryDisposition) {
		if d != Physical {
			return
		}
		handles = append(handles, h)
		if m != nil {
			manifolds = append(manifolds, m)
		} else {
			manifolds = append(manifolds, c.Extrude(finalAssemblyExtrusionHeight))
		}
	})

	for _, h := range handles {
		interp.Table.Remove(h)
	}

	if len(manifolds) == 0 {
		return nil, nil
	}

	result := manifolds[0]
	for _, m := range manifolds[1:] {
		result = result.Union(m)
	}
	return result, nil
}
