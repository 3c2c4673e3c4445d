// Package parser turns a pkg/token.Token stream into a pkg/ast tree. The
// grammar is hand-written recursive descent with precedence climbing,
// supporting comparison operators, booleans, `it`, vector and range
// literals, for/if statements, and module/operator definitions. A
// declarative participle.Build grammar can't express the multi-error
// accumulation and statement-level recovery this parser needs, so only
// the stateful lexer rules carry over into pkg/lexer, not a grammar
// layer built on top of them.
package parser

import (
	"strconv"

	"github.com/aaronc81/yascad-go/pkg/ast"
	"github.com/aaronc81/yascad-go/pkg/lexer"
	"github.com/aaronc81/yascad-go/pkg/source"
	"github.com/aaronc81/yascad-go/pkg/token"
)

// Parser holds a fixed token slice (always ending in one token.EOF) and a
// cursor into it, plus the errors accumulated so far. Every sub-parse
// method reports (node, true) on success — possibly after recording an
// error and substituting a recovered placeholder — or (nil, false) once an
// error has already been recorded for this attempt.
type Parser struct {
	tokens []token.Token
	pos    int
	Errors []*Error
}

// New builds a Parser over an already-tokenized stream.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseSource lexes and parses src in one step, returning the lex errors
// and parse errors separately so a caller can label each by stage.
func ParseSource(src *source.Source) (*ast.File, []*lexer.Error, []*Error) {
	toks, lexErrs := lexer.Lex(src)
	p := New(toks)
	stmts := p.ParseStatements()
	return &ast.File{Pos: fileSpan(src, stmts), Statements: stmts}, lexErrs, p.Errors
}

func fileSpan(src *source.Source, stmts []ast.Stmt) source.Span {
	if len(stmts) == 0 {
		return source.EOFSpan(src)
	}
	return source.Union(stmts[0].Span(), stmts[len(stmts)-1].Span())
}

// ---- Cursor ----

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekIs(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) next() token.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) errorAt(kind ErrorKind, span source.Span) {
	p.Errors = append(p.Errors, &Error{Kind: kind, Span: span})
}

func (p *Parser) errorUnexpectedToken(tok token.Token) {
	p.Errors = append(p.Errors, &Error{Kind: UnexpectedToken, Span: tok.Span, Got: tok.Kind})
}

// expect consumes the next token, requiring it match kind. On a kind
// mismatch it still consumes the token (so the caller always makes
// progress) and records UnexpectedToken; at end of input it records
// UnexpectedEnd without consuming (there is nothing left to consume).
func (p *Parser) expect(kind token.Kind) (token.Token, bool) {
	tok := p.peek()
	if tok.Kind == token.EOF {
		p.errorAt(UnexpectedEnd, tok.Span)
		return tok, false
	}
	p.next()
	if tok.Kind != kind {
		p.errorUnexpectedToken(tok)
		return tok, false
	}
	return tok, true
}

// ---- Top level ----

// ParseStatements parses every top-level statement until end of input,
// resynchronizing at `;` or `}` after a failed statement so one error
// never aborts the whole parse (§4.2).
func (p *Parser) ParseStatements() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.atEnd() {
		if stmt, ok := p.parseStatement(); ok {
			stmts = append(stmts, stmt)
		} else {
			p.resyncStatement()
		}
	}
	return stmts
}

func (p *Parser) resyncStatement() {
	for {
		switch p.peek().Kind {
		case token.Semicolon:
			p.next()
			return
		case token.RBrace, token.EOF:
			return
		default:
			p.next()
		}
	}
}

func (p *Parser) parseBracedStatementList() ([]ast.Stmt, source.Span, bool) {
	open, ok := p.expect(token.LBrace)
	if !ok {
		return nil, open.Span, false
	}
	var stmts []ast.Stmt
	for {
		if p.peekIs(token.RBrace) {
			closeTok := p.next()
			return stmts, source.Union(open.Span, closeTok.Span), true
		}
		if p.atEnd() {
			p.errorAt(UnexpectedEnd, p.peek().Span)
			return stmts, open.Span, true
		}
		if stmt, ok := p.parseStatement(); ok {
			stmts = append(stmts, stmt)
		} else {
			p.resyncStatement()
		}
	}
}

// parseStatement dispatches in the checking order of §4.2: operator
// definition, module definition, for, if, then an expression statement
// optionally promoted to a binding.
func (p *Parser) parseStatement() (ast.Stmt, bool) {
	var stmt ast.Stmt
	var ok bool
	switch p.peek().Kind {
	case token.KwOperator:
		stmt, ok = p.parseOperatorDef()
	case token.KwModule:
		stmt, ok = p.parseModuleDef()
	case token.KwFor:
		stmt, ok = p.parseForStmt()
	case token.KwIf:
		stmt, ok = p.parseIfStmt()
	default:
		return p.parseExprOrBindingStmt()
	}
	// Definitions, for and if all end with a brace block, so a trailing
	// `;` after them is optional.
	if ok && p.peekIs(token.Semicolon) {
		p.next()
	}
	return stmt, ok
}

func (p *Parser) parseExprOrBindingStmt() (ast.Stmt, bool) {
	expr, ok := p.parseExpression()
	if !ok {
		return nil, false
	}

	var stmt ast.Stmt
	if id, isIdent := expr.(*ast.Identifier); isIdent && p.peekIs(token.Equals) {
		p.next()
		value, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		stmt = &ast.Binding{Pos: source.Union(id.Pos, value.Span()), Name: id.Name, Value: value}
	} else {
		stmt = &ast.ExprStmt{Pos: expr.Span(), Expr: expr}
	}

	// A statement whose expression ended with a `{ ... }` operator
	// application block may elide its terminator; every other statement
	// shape requires one (§4.2).
	if opApp, ok := trailingBraceOperatorApplication(stmt); ok && opApp.BraceBody {
		if p.peekIs(token.Semicolon) {
			p.next()
		}
		return stmt, true
	}
	p.expect(token.Semicolon)
	return stmt, true
}

func trailingBraceOperatorApplication(stmt ast.Stmt) (*ast.OperatorApplication, bool) {
	var expr ast.Expr
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		expr = s.Expr
	case *ast.Binding:
		expr = s.Value
	}
	opApp, ok := expr.(*ast.OperatorApplication)
	return opApp, ok
}

// ---- module / operator definitions ----

func (p *Parser) parseModuleDef() (ast.Stmt, bool) {
	kw := p.next()
	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		return nil, false
	}
	params, ok := p.parseParameters()
	if !ok {
		return nil, false
	}
	body, bodySpan, ok := p.parseBracedStatementList()
	if !ok {
		return nil, false
	}
	return &ast.ModuleDef{Pos: source.Union(kw.Span, bodySpan), Name: nameTok.Text(), Parameters: params, Body: body}, true
}

func (p *Parser) parseOperatorDef() (ast.Stmt, bool) {
	kw := p.next()
	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		return nil, false
	}
	params, ok := p.parseParameters()
	if !ok {
		return nil, false
	}
	body, bodySpan, ok := p.parseBracedStatementList()
	if !ok {
		return nil, false
	}
	return &ast.OperatorDef{Pos: source.Union(kw.Span, bodySpan), Name: nameTok.Text(), Parameters: params, Body: body}, true
}

// ---- for / if ----

func (p *Parser) parseForStmt() (ast.Stmt, bool) {
	kw := p.next()
	if _, ok := p.expect(token.LParen); !ok {
		return nil, false
	}
	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Equals); !ok {
		return nil, false
	}
	src, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen); !ok {
		return nil, false
	}
	body, bodySpan, ok := p.parseBracedStatementList()
	if !ok {
		return nil, false
	}
	return &ast.ForStmt{Pos: source.Union(kw.Span, bodySpan), Variable: nameTok.Text(), Source: src, Body: body}, true
}

func (p *Parser) parseIfStmt() (ast.Stmt, bool) {
	kw := p.next()
	if _, ok := p.expect(token.LParen); !ok {
		return nil, false
	}
	cond, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen); !ok {
		return nil, false
	}
	thenBody, thenSpan, ok := p.parseBracedStatementList()
	if !ok {
		return nil, false
	}
	endSpan := thenSpan

	var elseBody []ast.Stmt
	if p.peekIs(token.KwElse) {
		p.next()
		if p.peekIs(token.KwIf) {
			elseIf, ok := p.parseIfStmt()
			if !ok {
				return nil, false
			}
			elseBody = []ast.Stmt{elseIf}
			endSpan = source.Union(endSpan, elseIf.Span())
		} else {
			body, bodySpan, ok := p.parseBracedStatementList()
			if !ok {
				return nil, false
			}
			elseBody = body
			endSpan = source.Union(endSpan, bodySpan)
		}
	}

	return &ast.IfStmt{Pos: source.Union(kw.Span, endSpan), Condition: cond, Then: thenBody, Else: elseBody}, true
}

// ---- parameter / argument lists ----

// parseBracketedList drives the shared comma-list algorithm: an empty list
// special case, trailing-comma tolerance, and report-and-continue recovery
// on a bad separator. startSpan is the span of the already-consumed
// opening bracket.
func parseBracketedList[T any](p *Parser, startSpan source.Span, end token.Kind, parseItem func() (T, source.Span, bool)) ([]T, source.Span, bool) {
	if p.peekIs(end) {
		closeTok := p.next()
		return nil, source.Union(startSpan, closeTok.Span), true
	}

	var items []T
	spanAcc := startSpan
	for {
		item, itemSpan, ok := parseItem()
		if ok {
			items = append(items, item)
			spanAcc = source.Union(spanAcc, itemSpan)
		}

		sep := p.peek()
		if sep.Kind == token.EOF {
			p.errorAt(UnexpectedEnd, sep.Span)
			return items, spanAcc, false
		}
		if sep.Kind == token.Semicolon || sep.Kind == token.RBrace {
			// Leave statement terminators for statement-level recovery.
			p.errorUnexpectedToken(sep)
			return items, spanAcc, false
		}
		p.next()

		if sep.Kind == token.Comma {
			if p.peekIs(end) {
				closeTok := p.next()
				return items, source.Union(spanAcc, closeTok.Span), true
			}
			continue
		}
		if sep.Kind == end {
			return items, source.Union(spanAcc, sep.Span), true
		}
		p.errorUnexpectedToken(sep)
		// Forward progress is still guaranteed: parseItem always consumes
		// at least one token before failing or succeeding.
	}
}

type paramItem struct {
	Name       string
	Default    ast.Expr
	HasDefault bool
	Span       source.Span
}

func (p *Parser) parseParameterItem() (paramItem, source.Span, bool) {
	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		return paramItem{}, nameTok.Span, false
	}
	item := paramItem{Name: nameTok.Text(), Span: nameTok.Span}
	if p.peekIs(token.Equals) {
		p.next()
		def, ok := p.parseExpression()
		if !ok {
			return paramItem{}, item.Span, false
		}
		item.Default = def
		item.HasDefault = true
		item.Span = source.Union(item.Span, def.Span())
	}
	return item, item.Span, true
}

func (p *Parser) parseParameters() (*ast.Parameters, bool) {
	open, ok := p.expect(token.LParen)
	if !ok {
		return nil, false
	}
	items, _, ok := parseBracketedList(p, open.Span, token.RParen, p.parseParameterItem)

	params := &ast.Parameters{}
	seenOptional := false
	for _, it := range items {
		if it.HasDefault {
			seenOptional = true
			params.Optional = append(params.Optional, ast.OptionalParameter{Name: it.Name, Default: it.Default})
			continue
		}
		if seenOptional {
			p.errorAt(RequiredParameterAfterOptionalParameter, it.Span)
		}
		params.Required = append(params.Required, it.Name)
	}
	return params, ok
}

type argItem struct {
	Named bool
	Name  string
	Value ast.Expr
	Span  source.Span
}

func (p *Parser) parseArgumentItem() (argItem, source.Span, bool) {
	expr, ok := p.parseExpression()
	if !ok {
		return argItem{}, source.Span{}, false
	}
	if id, isIdent := expr.(*ast.Identifier); isIdent && p.peekIs(token.Equals) {
		p.next()
		val, ok := p.parseExpression()
		if !ok {
			return argItem{}, id.Pos, false
		}
		sp := source.Union(id.Pos, val.Span())
		return argItem{Named: true, Name: id.Name, Value: val, Span: sp}, sp, true
	}
	return argItem{Named: false, Value: expr, Span: expr.Span()}, expr.Span(), true
}

func (p *Parser) parseArgumentsAfterOpen(openSpan source.Span) (*ast.Arguments, source.Span, bool) {
	items, listSpan, ok := parseBracketedList(p, openSpan, token.RParen, p.parseArgumentItem)

	args := &ast.Arguments{}
	seenNamed := false
	for _, it := range items {
		if it.Named {
			seenNamed = true
			args.Named = append(args.Named, ast.NamedArgument{Name: it.Name, Value: it.Value})
			continue
		}
		if seenNamed {
			p.errorAt(PositionalArgumentAfterNamedArgument, it.Span)
		}
		args.Positional = append(args.Positional, it.Value)
	}
	return args, listSpan, ok
}

// ---- expressions ----
//
// Precedence ladder, tightest to loosest binding (§4.2): field access
// (postfix on identifier/call) binds tighter than unary negate, which binds
// tighter than multiplicative, which binds tighter than additive, which
// binds tighter than comparison.

func (p *Parser) parseExpression() (ast.Expr, bool) {
	return p.parseComparison()
}

func (p *Parser) parseComparison() (ast.Expr, bool) {
	left, ok := p.parseAdditive()
	if !ok {
		return nil, false
	}
	for {
		var op ast.BinaryOperator
		switch p.peek().Kind {
		case token.EqualEqual:
			op = ast.Equal
		case token.Less:
			op = ast.LessThan
		case token.LessEqual:
			op = ast.LessOrEqual
		case token.Greater:
			op = ast.GreaterThan
		case token.GreaterEqual:
			op = ast.GreaterOrEqual
		default:
			return left, true
		}
		p.next()
		right, ok := p.parseAdditive()
		if !ok {
			return nil, false
		}
		left = &ast.BinaryOp{Pos: source.Union(left.Span(), right.Span()), Left: left, Right: right, Op: op}
	}
}

func (p *Parser) parseAdditive() (ast.Expr, bool) {
	left, ok := p.parseMultiplicative()
	if !ok {
		return nil, false
	}
	for {
		var op ast.BinaryOperator
		switch p.peek().Kind {
		case token.Plus:
			op = ast.Add
		case token.Minus:
			op = ast.Subtract
		default:
			return left, true
		}
		p.next()
		right, ok := p.parseMultiplicative()
		if !ok {
			return nil, false
		}
		left = &ast.BinaryOp{Pos: source.Union(left.Span(), right.Span()), Left: left, Right: right, Op: op}
	}
}

func (p *Parser) parseMultiplicative() (ast.Expr, bool) {
	left, ok := p.parseBottomExpression()
	if !ok {
		return nil, false
	}
	for {
		var op ast.BinaryOperator
		switch p.peek().Kind {
		case token.Star:
			op = ast.Multiply
		case token.Slash:
			op = ast.Divide
		default:
			return left, true
		}
		p.next()
		right, ok := p.parseBottomExpression()
		if !ok {
			return nil, false
		}
		left = &ast.BinaryOp{Pos: source.Union(left.Span(), right.Span()), Left: left, Right: right, Op: op}
	}
}

// parseBottomExpression handles identifiers, calls, operator applications,
// literals, `it`, unary negate, parenthesized grouping, and vector/range
// literals. Call-vs-operator-application disambiguation mirrors
// original_source's parse_bottom_expression: after a call's `)`, a
// following identifier-shaped expression promotes to the single-child
// form, a following `{` promotes to the brace form, anything else leaves
// a plain call.
func (p *Parser) parseBottomExpression() (ast.Expr, bool) {
	tok := p.next()
	switch tok.Kind {
	case token.Identifier:
		return p.parseIdentifierOrCall(tok)

	case token.Number:
		val, err := strconv.ParseFloat(tok.Text(), 64)
		if err != nil {
			p.errorAt(InvalidNumber, tok.Span)
			return &ast.Number{Pos: tok.Span, Value: 0}, true
		}
		return &ast.Number{Pos: tok.Span, Value: val}, true

	case token.KwTrue:
		return &ast.Boolean{Pos: tok.Span, Value: true}, true
	case token.KwFalse:
		return &ast.Boolean{Pos: tok.Span, Value: false}, true
	case token.KwIt:
		return &ast.It{Pos: tok.Span}, true

	case token.LBracket:
		return p.parseVectorOrRange(tok.Span)

	case token.Minus:
		operand, ok := p.parseBottomExpression()
		if !ok {
			return nil, false
		}
		return &ast.UnaryNegate{Pos: source.Union(tok.Span, operand.Span()), Operand: operand}, true

	case token.LParen:
		inner, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		p.expect(token.RParen)
		return inner, true

	case token.EOF:
		p.errorAt(UnexpectedEnd, tok.Span)
		return nil, false

	default:
		p.errorUnexpectedToken(tok)
		return nil, false
	}
}

func (p *Parser) parseIdentifierOrCall(tok token.Token) (ast.Expr, bool) {
	name := tok.Text()
	if !p.peekIs(token.LParen) {
		return p.parseFieldAccessSuffixes(&ast.Identifier{Pos: tok.Span, Name: name}), true
	}

	open := p.next()
	args, argsSpan, ok := p.parseArgumentsAfterOpen(open.Span)
	if !ok {
		return nil, false
	}
	callSpan := source.Union(tok.Span, argsSpan)

	switch p.peek().Kind {
	case token.Identifier:
		child, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		childStmt := ast.Stmt(&ast.ExprStmt{Pos: child.Span(), Expr: child})
		return &ast.OperatorApplication{
			Pos: source.Union(callSpan, child.Span()), Name: name, Arguments: args,
			Children: []ast.Stmt{childStmt}, BraceBody: false,
		}, true

	case token.LBrace:
		children, bodySpan, ok := p.parseBracedStatementList()
		if !ok {
			return nil, false
		}
		return &ast.OperatorApplication{
			Pos: source.Union(callSpan, bodySpan), Name: name, Arguments: args,
			Children: children, BraceBody: true,
		}, true

	default:
		call := ast.Expr(&ast.Call{Pos: callSpan, Name: name, Arguments: args})
		return p.parseFieldAccessSuffixes(call), true
	}
}

func (p *Parser) parseFieldAccessSuffixes(value ast.Expr) ast.Expr {
	for p.peekIs(token.Dot) {
		dot := p.next()
		nameTok, ok := p.expect(token.Identifier)
		if !ok {
			break
		}
		value = &ast.FieldAccess{
			Pos: source.Union(value.Span(), dot.Span, nameTok.Span), Value: value, Name: nameTok.Text(),
		}
	}
	return value
}

// parseVectorOrRange dispatches on what follows the first element (§3,
// §4.2): `]` immediately → empty vector; one element then `]` → a
// single-element vector; one element then `:` → an inclusive range; one
// element then `,` → a multi-element vector.
func (p *Parser) parseVectorOrRange(openSpan source.Span) (ast.Expr, bool) {
	if p.peekIs(token.RBracket) {
		closeTok := p.next()
		return &ast.VectorLiteral{Pos: source.Union(openSpan, closeTok.Span)}, true
	}

	first, ok := p.parseExpression()
	if !ok {
		return nil, false
	}

	switch p.peek().Kind {
	case token.Colon:
		p.next()
		end, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		sp := source.Union(openSpan, end.Span())
		if closeTok, ok := p.expect(token.RBracket); ok {
			sp = source.Union(sp, closeTok.Span)
		}
		return &ast.RangeLiteral{Pos: sp, Start: first, End: end}, true

	case token.RBracket:
		closeTok := p.next()
		return &ast.VectorLiteral{Pos: source.Union(openSpan, closeTok.Span), Elements: []ast.Expr{first}}, true

	case token.Comma:
		elements := []ast.Expr{first}
		for {
			p.next() // consume comma
			if p.peekIs(token.RBracket) {
				closeTok := p.next()
				return &ast.VectorLiteral{Pos: source.Union(openSpan, closeTok.Span), Elements: elements}, true
			}
			el, ok := p.parseExpression()
			if ok {
				elements = append(elements, el)
			}
			switch p.peek().Kind {
			case token.Comma:
				continue
			case token.RBracket:
				closeTok := p.next()
				return &ast.VectorLiteral{Pos: source.Union(openSpan, closeTok.Span), Elements: elements}, true
			case token.EOF:
				tok := p.peek()
				p.errorAt(UnexpectedEnd, tok.Span)
				return &ast.VectorLiteral{Pos: openSpan, Elements: elements}, true
			default:
				p.errorUnexpectedToken(p.peek())
				p.next()
			}
		}

	case token.EOF:
		p.errorAt(UnexpectedEnd, p.peek().Span)
		return nil, false

	default:
		p.errorUnexpectedToken(p.peek())
		return nil, false
	}
}
