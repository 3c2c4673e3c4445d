package ast

// BaseVisitor implements Visitor with a default depth-first traversal that
// visits every child and returns nil. The default traversal passes the
// BaseVisitor itself to each child's Accept, so a type that embeds it
// only sees its own overrides for the nodes it reaches through its own
// traversal; pkg/visitors' debug printer therefore overrides every method.
type BaseVisitor struct{}

var _ Visitor = (*BaseVisitor)(nil)

func (b *BaseVisitor) VisitFile(n *File) interface{} {
	for _, s := range n.Statements {
		s.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitIdentifier(n *Identifier) interface{} { return nil }
func (b *BaseVisitor) VisitNumber(n *Number) interface{}         { return nil }
func (b *BaseVisitor) VisitBoolean(n *Boolean) interface{}       { return nil }
func (b *BaseVisitor) VisitIt(n *It) interface{}                 { return nil }

func (b *BaseVisitor) VisitVectorLiteral(n *VectorLiteral) interface{} {
	for _, e := range n.Elements {
		e.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitRangeLiteral(n *RangeLiteral) interface{} {
	n.Start.Accept(b)
	n.End.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitFieldAccess(n *FieldAccess) interface{} {
	n.Value.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitBinaryOp(n *BinaryOp) interface{} {
	n.Left.Accept(b)
	n.Right.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitUnaryNegate(n *UnaryNegate) interface{} {
	n.Operand.Accept(b)
	return nil
}

func visitArguments(b Visitor, args *Arguments) {
	if args == nil {
		return
	}
	for _, e := range args.Positional {
		e.Accept(b)
	}
	for _, named := range args.Named {
		named.Value.Accept(b)
	}
}

func (b *BaseVisitor) VisitCall(n *Call) interface{} {
	visitArguments(b, n.Arguments)
	return nil
}

func (b *BaseVisitor) VisitOperatorApplication(n *OperatorApplication) interface{} {
	visitArguments(b, n.Arguments)
	for _, c := range n.Children {
		c.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitExprStmt(n *ExprStmt) interface{} {
	n.Expr.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitBinding(n *Binding) interface{} {
	n.Value.Accept(b)
	return nil
}

func visitParameters(b Visitor, params *Parameters) {
	if params == nil {
		return
	}
	for _, opt := range params.Optional {
		if opt.Default != nil {
			opt.Default.Accept(b)
		}
	}
}

func (b *BaseVisitor) VisitModuleDef(n *ModuleDef) interface{} {
	visitParameters(b, n.Parameters)
	for _, s := range n.Body {
		s.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitOperatorDef(n *OperatorDef) interface{} {
	visitParameters(b, n.Parameters)
	for _, s := range n.Body {
		s.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitForStmt(n *ForStmt) interface{} {
	n.Source.Accept(b)
	for _, s := range n.Body {
		s.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitIfStmt(n *IfStmt) interface{} {
	n.Condition.Accept(b)
	for _, s := range n.Then {
		s.Accept(b)
	}
	for _, s := range n.Else {
		s.Accept(b)
	}
	return nil
}
