package runtime

import (
	"github.com/aaronc81/yascad-go/pkg/ast"
	"github.com/aaronc81/yascad-go/pkg/geom"
	"github.com/aaronc81/yascad-go/pkg/source"
)

// evalFunc closes over an evalContext so BindArguments (which knows
// nothing about Interpreter/evalContext) can still evaluate argument
// and default expressions against the right context.
func (interp *Interpreter) evalFunc(ctx evalContext) evalExprFunc {
	return func(e ast.Expr) (Object, error) { return interp.evalExpr(ctx, e) }
}

// evalStmt evaluates one statement (§4.6). An ExprStmt returns whatever
// its expression produced; for and if statements return the handle of
// the geometry their body emitted (null if none); every other statement
// kind returns null.
func (interp *Interpreter) evalStmt(ctx evalContext, stmt ast.Stmt) (Object, error) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		return interp.evalExpr(ctx, s.Expr)

	case *ast.Binding:
		v, err := interp.evalExpr(ctx, s.Value)
		if err != nil {
			return Object{}, err
		}
		if !ctx.scope.AddBinding(s.Name, v) {
			return Object{}, &RuntimeError{Kind: DuplicateName, Span: s.Pos, Name: s.Name}
		}
		return NullObject(), nil

	case *ast.ModuleDef:
		def := &userDefinition{Parameters: s.Parameters, Body: s.Body, Closure: ctx.scope}
		if !ctx.scope.AddModule(s.Name, def) {
			return Object{}, &RuntimeError{Kind: DuplicateName, Span: s.Pos, Name: s.Name}
		}
		return NullObject(), nil

	case *ast.OperatorDef:
		def := &userDefinition{Parameters: s.Parameters, Body: s.Body, Closure: ctx.scope}
		if !ctx.scope.AddOperator(s.Name, def) {
			return Object{}, &RuntimeError{Kind: DuplicateName, Span: s.Pos, Name: s.Name}
		}
		return NullObject(), nil

	case *ast.ForStmt:
		return interp.evalForStmt(ctx, s)

	case *ast.IfStmt:
		return interp.evalIfStmt(ctx, s)

	default:
		return NullObject(), nil
	}
}

// runBodyCollectingGeometry runs body against bodyCtx, then unions
// whatever Physical geometry the body emitted (by handle-range, since
// every handle minted during the run is new) into a single fresh
// Physical entry — the shared shape behind user module/operator
// calls, for loops, and if/else bodies (§4.6).
func (interp *Interpreter) runBodyCollectingGeometry(bodyCtx evalContext, body []ast.Stmt, span source.Span) (Object, error) {
	startHandle := interp.Table.next

	for _, stmt := range body {
		if _, err := interp.evalStmt(bodyCtx, stmt); err != nil {
			return Object{}, err
		}
	}

	var emitted []GeometryHandle
	interp.Table.Iter(func(h GeometryHandle, m geom.Manifold3D, c geom.CrossSection2D, d GeometryDisposition) {
		if h >= startHandle && d == Physical {
			emitted = append(emitted, h)
		}
	})

	entry, _, err := interp.Table.UnionMany(emitted, span)
	if err != nil {
		return Object{}, err
	}
	return interp.insertEntry(entry, Physical), nil
}

func (interp *Interpreter) evalForStmt(ctx evalContext, s *ast.ForStmt) (Object, error) {
	src, err := interp.evalExpr(ctx, s.Source)
	if err != nil {
		return Object{}, err
	}
	elems, err := src.AsVector(s.Source.Span())
	if err != nil {
		return Object{}, err
	}

	startHandle := interp.Table.next
	for _, e := range elems {
		iterScope := ctx.scope.NewChildScope()
		if !iterScope.AddBinding(s.Variable, e) {
			return Object{}, &RuntimeError{Kind: DuplicateName, Span: s.Pos, Name: s.Variable}
		}
		iterCtx := ctx.withScope(iterScope)
		for _, stmt := range s.Body {
			if _, err := interp.evalStmt(iterCtx, stmt); err != nil {
				return Object{}, err
			}
		}
	}

	var emitted []GeometryHandle
	interp.Table.Iter(func(h GeometryHandle, m geom.Manifold3D, c geom.CrossSection2D, d GeometryDisposition) {
		if h >= startHandle && d == Physical {
			emitted = append(emitted, h)
		}
	})
	entry, _, err := interp.Table.UnionMany(emitted, s.Pos)
	if err != nil {
		return Object{}, err
	}
	return interp.insertEntry(entry, Physical), nil
}

func (interp *Interpreter) evalIfStmt(ctx evalContext, s *ast.IfStmt) (Object, error) {
	cond, err := interp.evalExpr(ctx, s.Condition)
	if err != nil {
		return Object{}, err
	}
	taken, err := cond.AsBoolean(s.Condition.Span())
	if err != nil {
		return Object{}, err
	}
	branch := s.Else
	if taken {
		branch = s.Then
	}
	bodyCtx := ctx.withScope(ctx.scope.NewChildScope())
	return interp.runBodyCollectingGeometry(bodyCtx, branch, s.Pos)
}

// evalExpr evaluates one expression (§4.6).
func (interp *Interpreter) evalExpr(ctx evalContext, expr ast.Expr) (Object, error) {
	switch n := expr.(type) {
	case *ast.Identifier:
		return interp.resolveIdentifier(ctx, n)

	case *ast.Number:
		return NumberObject(n.Value), nil

	case *ast.Boolean:
		return BooleanObject(n.Value), nil

	case *ast.It:
		switch ctx.it {
		case itPresent:
			m, _ := interp.Table.Get(ctx.itHandle)
			if m != nil {
				return ManifoldObject(ctx.itHandle), nil
			}
			return CrossSectionObject(ctx.itHandle), nil
		case itUnsupported:
			return Object{}, &RuntimeError{Kind: ItReferenceUnsupportedNotOneChild, Span: n.Pos}
		default:
			return Object{}, &RuntimeError{Kind: ItReferenceInvalid, Span: n.Pos}
		}

	case *ast.VectorLiteral:
		elems := make([]Object, len(n.Elements))
		for i, e := range n.Elements {
			v, err := interp.evalExpr(ctx, e)
			if err != nil {
				return Object{}, err
			}
			elems[i] = v
		}
		return VectorObject(elems), nil

	case *ast.RangeLiteral:
		return interp.evalRangeLiteral(ctx, n)

	case *ast.FieldAccess:
		v, err := interp.evalExpr(ctx, n.Value)
		if err != nil {
			return Object{}, err
		}
		return v.GetField(n.Name, interp.Table, n.Pos)

	case *ast.BinaryOp:
		return interp.evalBinaryOp(ctx, n)

	case *ast.UnaryNegate:
		v, err := interp.evalExpr(ctx, n.Operand)
		if err != nil {
			return Object{}, err
		}
		num, err := v.AsNumber(n.Pos)
		if err != nil {
			return Object{}, err
		}
		return NumberObject(-num), nil

	case *ast.Call:
		return interp.evalCall(ctx, n)

	case *ast.OperatorApplication:
		return interp.evalOperatorApplication(ctx, n)

	default:
		return NullObject(), nil
	}
}

func (interp *Interpreter) evalRangeLiteral(ctx evalContext, n *ast.RangeLiteral) (Object, error) {
	startV, err := interp.evalExpr(ctx, n.Start)
	if err != nil {
		return Object{}, err
	}
	start, err := startV.AsNumber(n.Start.Span())
	if err != nil {
		return Object{}, err
	}
	endV, err := interp.evalExpr(ctx, n.End)
	if err != nil {
		return Object{}, err
	}
	end, err := endV.AsNumber(n.End.Span())
	if err != nil {
		return Object{}, err
	}
	if end < start {
		return Object{}, &RuntimeError{Kind: FlippedRange, Span: n.Pos}
	}
	var elems []Object
	for v := int(start); float64(v) <= end; v++ {
		elems = append(elems, NumberObject(float64(v)))
	}
	return VectorObject(elems), nil
}

func (interp *Interpreter) evalBinaryOp(ctx evalContext, n *ast.BinaryOp) (Object, error) {
	left, err := interp.evalExpr(ctx, n.Left)
	if err != nil {
		return Object{}, err
	}
	right, err := interp.evalExpr(ctx, n.Right)
	if err != nil {
		return Object{}, err
	}

	if n.Op == ast.Equal {
		return BooleanObject(left.Equal(right)), nil
	}

	lv, err := left.AsNumber(n.Left.Span())
	if err != nil {
		return Object{}, err
	}
	rv, err := right.AsNumber(n.Right.Span())
	if err != nil {
		return Object{}, err
	}

	switch n.Op {
	case ast.Add:
		return NumberObject(lv + rv), nil
	case ast.Subtract:
		return NumberObject(lv - rv), nil
	case ast.Multiply:
		return NumberObject(lv * rv), nil
	case ast.Divide:
		return NumberObject(lv / rv), nil
	case ast.LessThan:
		return BooleanObject(lv < rv), nil
	case ast.LessOrEqual:
		return BooleanObject(lv <= rv), nil
	case ast.GreaterThan:
		return BooleanObject(lv > rv), nil
	case ast.GreaterOrEqual:
		return BooleanObject(lv >= rv), nil
	default:
		return Object{}, &RuntimeError{Kind: IncorrectType, Span: n.Pos, Expected: "comparable operands", Actual: "?"}
	}
}

// resolveIdentifier implements the value half of §4.4's lookup order:
// active arguments of the enclosing user definition, then bindings
// walking parents. A name that instead resolves to a module or
// operator is a value-position use of a non-value name
// (InvalidIdentifier); anything else is UndefinedIdentifier.
func (interp *Interpreter) resolveIdentifier(ctx evalContext, n *ast.Identifier) (Object, error) {
	if ctx.arguments != nil {
		if v, ok := ctx.arguments[n.Name]; ok {
			return v, nil
		}
	}
	if v, ok := ctx.scope.GetBinding(n.Name); ok {
		return v, nil
	}
	if _, ok := GetBuiltinModule(n.Name); ok {
		return Object{}, &RuntimeError{Kind: InvalidIdentifier, Span: n.Pos, Name: n.Name, ResolvedKind: "module"}
	}
	if _, ok := ctx.scope.GetModule(n.Name); ok {
		return Object{}, &RuntimeError{Kind: InvalidIdentifier, Span: n.Pos, Name: n.Name, ResolvedKind: "module"}
	}
	if _, ok := GetBuiltinOperator(n.Name); ok {
		return Object{}, &RuntimeError{Kind: InvalidIdentifier, Span: n.Pos, Name: n.Name, ResolvedKind: "operator"}
	}
	if _, ok := ctx.scope.GetOperator(n.Name); ok {
		return Object{}, &RuntimeError{Kind: InvalidIdentifier, Span: n.Pos, Name: n.Name, ResolvedKind: "operator"}
	}
	return Object{}, &RuntimeError{Kind: UndefinedIdentifier, Span: n.Pos, Name: n.Name}
}

// evalCall implements §4.6 Call evaluation: resolve name as a module
// (built-in or user), bind arguments (§4.7), then either invoke the
// built-in action directly or run the user body in a fresh scope and
// collect its emitted Physical geometry into this call's result.
func (interp *Interpreter) evalCall(ctx evalContext, n *ast.Call) (Object, error) {
	if def, ok := GetBuiltinModule(n.Name); ok {
		bound, err := BindArguments(def.Parameters, n.Arguments, n.Pos, interp.evalFunc(ctx))
		if err != nil {
			return Object{}, err
		}
		return def.Action(interp, bound, ctx, n.Pos)
	}

	if userDef, ok := ctx.scope.GetModule(n.Name); ok {
		bound, err := BindArguments(userDef.Parameters, n.Arguments, n.Pos, interp.evalFunc(ctx))
		if err != nil {
			return Object{}, err
		}
		bodyCtx := evalContext{
			scope:     userDef.Closure.NewChildScope(),
			arguments: bound,
		}
		return interp.runBodyCollectingGeometry(bodyCtx, userDef.Body, n.Pos)
	}

	return Object{}, interp.nameNotAModuleError(ctx, n.Name, n.Pos)
}

func (interp *Interpreter) nameNotAModuleError(ctx evalContext, name string, span source.Span) error {
	if ctx.arguments != nil {
		if _, ok := ctx.arguments[name]; ok {
			return &RuntimeError{Kind: InvalidIdentifier, Span: span, Name: name, ResolvedKind: "argument"}
		}
	}
	if _, ok := ctx.scope.GetBinding(name); ok {
		return &RuntimeError{Kind: InvalidIdentifier, Span: span, Name: name, ResolvedKind: "binding"}
	}
	if _, ok := GetBuiltinOperator(name); ok {
		return &RuntimeError{Kind: InvalidIdentifier, Span: span, Name: name, ResolvedKind: "operator"}
	}
	if _, ok := ctx.scope.GetOperator(name); ok {
		return &RuntimeError{Kind: InvalidIdentifier, Span: span, Name: name, ResolvedKind: "operator"}
	}
	return &RuntimeError{Kind: UndefinedIdentifier, Span: span, Name: name}
}

// evalOperatorApplication implements §4.6 operator application
// evaluation: evaluate children with it unset (they run before this
// operator resolves, so a bare `it` there is outside any operator
// target argument entirely, and must raise ItReferenceInvalid rather
// than ItReferenceUnsupportedNotOneChild), keeping only geometry-typed
// results; determine it (Present iff exactly one); evaluate arguments
// with that it state; resolve the operator (built-in or user); for a
// user operator, downgrade every child to Virtual, run the body with
// those as its `children`, collect emitted Physical geometry, drop the
// (now-consumed) virtual children, and return the union as a new
// Physical handle; for a built-in, hand the child handles and bound
// arguments directly to its action.
func (interp *Interpreter) evalOperatorApplication(ctx evalContext, n *ast.OperatorApplication) (Object, error) {
	childCtx := ctx.withIt(itUnset, 0)
	var childHandles []GeometryHandle
	for _, stmt := range n.Children {
		v, err := interp.evalStmt(childCtx, stmt)
		if err != nil {
			return Object{}, err
		}
		switch v.Kind {
		case ObjManifold, ObjCrossSection:
			childHandles = append(childHandles, v.Handle)
		}
	}

	argCtx := ctx
	if len(childHandles) == 1 {
		argCtx = ctx.withIt(itPresent, childHandles[0])
	} else {
		argCtx = ctx.withIt(itUnsupported, 0)
	}

	if def, ok := GetBuiltinOperator(n.Name); ok {
		bound, err := BindArguments(def.Parameters, n.Arguments, n.Pos, interp.evalFunc(argCtx))
		if err != nil {
			return Object{}, err
		}
		entry, disposition, err := def.Action(interp, bound, childHandles, n.Pos)
		if err != nil {
			return Object{}, err
		}
		return interp.insertEntry(entry, disposition), nil
	}

	userDef, ok := ctx.scope.GetOperator(n.Name)
	if !ok {
		return Object{}, interp.nameNotAnOperatorError(ctx, n.Name, n.Pos)
	}
	bound, err := BindArguments(userDef.Parameters, n.Arguments, n.Pos, interp.evalFunc(argCtx))
	if err != nil {
		return Object{}, err
	}

	virtualChildren := make([]GeometryHandle, len(childHandles))
	for i, h := range childHandles {
		virtualChildren[i] = interp.downgradeToVirtual(h)
	}

	bodyCtx := evalContext{
		scope:          userDef.Closure.NewChildScope(),
		arguments:      bound,
		children:       virtualChildren,
		insideOperator: true,
	}
	result, err := interp.runBodyCollectingGeometry(bodyCtx, userDef.Body, n.Pos)
	if err != nil {
		return Object{}, err
	}
	for _, h := range virtualChildren {
		if interp.handleStillPresent(h) {
			interp.Table.Remove(h)
		}
	}
	return result, nil
}

// downgradeToVirtual re-inserts h's geometry under a fresh handle with
// Virtual disposition, consuming h (§4.6).
func (interp *Interpreter) downgradeToVirtual(h GeometryHandle) GeometryHandle {
	m, c, _ := interp.Table.Remove(h)
	if m != nil {
		return interp.Table.AddManifold(m, Virtual)
	}
	return interp.Table.AddCrossSection(c, Virtual)
}

func (interp *Interpreter) handleStillPresent(h GeometryHandle) bool {
	present := false
	interp.Table.Iter(func(candidate GeometryHandle, m geom.Manifold3D, c geom.CrossSection2D, d GeometryDisposition) {
		if candidate == h {
			present = true
		}
	})
	return present
}

func (interp *Interpreter) insertEntry(entry geometryTableEntry, disposition GeometryDisposition) Object {
	switch {
	case entry.manifold != nil:
		return ManifoldObject(interp.Table.AddManifold(entry.manifold, disposition))
	case entry.crossSection != nil:
		return CrossSectionObject(interp.Table.AddCrossSection(entry.crossSection, disposition))
	default:
		return NullObject()
	}
}

func (interp *Interpreter) nameNotAnOperatorError(ctx evalContext, name string, span source.Span) error {
	if _, ok := GetBuiltinModule(name); ok {
		return &RuntimeError{Kind: InvalidIdentifier, Span: span, Name: name, ResolvedKind: "module"}
	}
	if _, ok := ctx.scope.GetModule(name); ok {
		return &RuntimeError{Kind: InvalidIdentifier, Span: span, Name: name, ResolvedKind: "module"}
	}
	if _, ok := ctx.scope.GetBinding(name); ok {
		return &RuntimeError{Kind: InvalidIdentifier, Span: span, Name: name, ResolvedKind: "binding"}
	}
	return &RuntimeError{Kind: UndefinedIdentifier, Span: span, Name: name}
}
