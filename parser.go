package main

// Parser is a recursive-descent, precedence-climbing parser over a finished
// token slice. It never recovers: the first malformed construct aborts the
// parse with a *SyntaxError naming the expected construct.
type Parser struct {
	tokens []Token
	pos    int
}

// Parse consumes a token stream (terminated by an EOF token) and returns the
// program AST.
func Parse(tokens []Token) (*Program, error) {
	return NewParser(tokens).ParseProgram()
}

// ParseSource scans and parses src in one step.
func ParseSource(src, source string) (*Program, error) {
	tokens, err := Scan(src, source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

func NewParser(tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
		tokens = append(tokens, Token{Kind: EOF})
	}
	return &Parser{tokens: tokens}
}

func (p *Parser) cur() Token {
	return p.tokens[p.pos]
}

// peek returns the token n positions ahead (peek(0) == cur).
func (p *Parser) peek(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) at(kind TokenKind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != EOF {
		p.pos++
	}
	return tok
}

// prevSpan returns the span of the most recently consumed token.
func (p *Parser) prevSpan() Span {
	if p.pos == 0 {
		return p.cur().Span
	}
	return p.tokens[p.pos-1].Span
}

// expect consumes a token of the given kind or fails, naming the expected
// construct.
func (p *Parser) expect(kind TokenKind, what string) (Token, error) {
	if !p.at(kind) {
		return Token{}, syntaxErrorf(p.cur().Span, "expected %s, found %q", what, p.cur().Lexeme)
	}
	return p.advance(), nil
}

// ParseProgram parses statements and declarations until EOF.
func (p *Parser) ParseProgram() (*Program, error) {
	start := p.cur().Span
	var stmts []Stmt
	for !p.at(EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &Program{Stmts: stmts, span: start.Merge(p.prevSpan())}, nil
}

// ----- Expressions -----

// precedenceOf returns the binding power of a binary operator token, or 0
// for non-operators. Lowest first: range, or, and, equality, relational,
// additive, multiplicative.
func precedenceOf(kind TokenKind) int {
	switch kind {
	case RANGE, RANGE_INCL:
		return 1
	case OR:
		return 2
	case AND:
		return 3
	case EQ, NOT_EQ:
		return 4
	case LT, GT, LE, GE:
		return 5
	case PLUS, MINUS:
		return 6
	case ASTERISK, SLASH, PERCENT:
		return 7
	}
	return 0
}

func (p *Parser) ParseExpression() (Expr, error) {
	return p.parseExpressionWithPrecedence(1)
}

// parseExpressionWithPrecedence implements precedence climbing. All binary
// operators are left-associative except the range operator, which is
// non-associative: chaining a..b..c is a syntax error.
func (p *Parser) parseExpressionWithPrecedence(minPrec int) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		op := p.cur()
		prec := precedenceOf(op.Kind)
		if prec == 0 || prec < minPrec {
			return left, nil
		}

		if op.Kind == RANGE || op.Kind == RANGE_INCL {
			if _, chained := left.(*RangeExpr); chained {
				return nil, syntaxErrorf(op.Span, "ranges cannot be chained")
			}
			p.advance()
			right, err := p.parseExpressionWithPrecedence(prec + 1)
			if err != nil {
				return nil, err
			}
			left = &RangeExpr{
				Start:     left,
				End:       right,
				Exclusive: op.Kind == RANGE,
				span:      left.Span().Merge(right.Span()),
			}
			continue
		}

		p.advance()
		right, err := p.parseExpressionWithPrecedence(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Op:    op.Lexeme,
			Left:  left,
			Right: right,
			span:  left.Span().Merge(right.Span()),
		}
	}
}

// parseUnary handles the right-associative prefix operators ! and -.
func (p *Parser) parseUnary() (Expr, error) {
	if p.at(BANG) || p.at(MINUS) {
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{
			Op:      op.Lexeme,
			Operand: operand,
			span:    op.Span.Merge(operand.Span()),
		}, nil
	}
	return p.parsePostfix()
}

// parsePostfix applies the postfix chain (call, index, member, method call)
// left to right, so arbitrary chains like a[0].b(1)[2] are supported.
func (p *Parser) parsePostfix() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.cur().Kind {
		case LPAREN:
			callee, ok := expr.(*Ident)
			if !ok {
				return nil, syntaxErrorf(p.cur().Span, "can only call functions")
			}
			p.advance()
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr = &CallExpr{
				Callee: callee,
				Args:   args,
				span:   callee.Span().Merge(p.prevSpan()),
			}

		case LBRACKET:
			p.advance()
			index, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RBRACKET, "']' after index"); err != nil {
				return nil, err
			}
			expr = &IndexExpr{
				Target: expr,
				Index:  index,
				span:   expr.Span().Merge(p.prevSpan()),
			}

		case DOT:
			p.advance()
			name, err := p.expect(IDENT, "member name after '.'")
			if err != nil {
				return nil, err
			}
			if p.at(LPAREN) {
				p.advance()
				args, err := p.parseArguments()
				if err != nil {
					return nil, err
				}
				expr = &MethodCallExpr{
					Target: expr,
					Name:   name.Lexeme,
					Args:   args,
					span:   expr.Span().Merge(p.prevSpan()),
				}
			} else {
				expr = &MemberExpr{
					Target: expr,
					Name:   name.Lexeme,
					span:   expr.Span().Merge(name.Span),
				}
			}

		default:
			return expr, nil
		}
	}
}

// parseArguments parses a comma-separated argument list; the opening '(' has
// already been consumed.
func (p *Parser) parseArguments() ([]Expr, error) {
	var args []Expr
	for !p.at(RPAREN) {
		arg, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.at(COMMA) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(RPAREN, "')' after arguments"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.cur()
	switch tok.Kind {
	case INT:
		p.advance()
		return &IntLit{Value: tok.Int, span: tok.Span}, nil

	case FLOAT:
		p.advance()
		return &FloatLit{Value: tok.Float, span: tok.Span}, nil

	case STRING:
		p.advance()
		return &StringLit{Value: tok.Str, span: tok.Span}, nil

	case TRUE, FALSE:
		p.advance()
		return &BoolLit{Value: tok.Kind == TRUE, span: tok.Span}, nil

	case IDENT:
		// A following '{' begins a struct-init expression only when the
		// bounded lookahead shows '{' IDENT ':'. Anything else leaves the
		// identifier alone so `for x in Foo { ... }` parses as a block.
		if p.peek(1).Kind == LBRACE && p.peek(2).Kind == IDENT && p.peek(3).Kind == COLON {
			return p.parseStructLit()
		}
		p.advance()
		return &Ident{Name: tok.Lexeme, span: tok.Span}, nil

	case LPAREN:
		p.advance()
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN, "')' after expression"); err != nil {
			return nil, err
		}
		return expr, nil

	case LBRACKET:
		return p.parseListLit()

	case LBRACE:
		return p.parseDictLit()

	default:
		// The primitive-type keywords act as call targets for casts:
		// int(x), str(x), and so on.
		if isTypeKeyword(tok.Kind) && p.peek(1).Kind == LPAREN {
			p.advance()
			return &Ident{Name: tok.Lexeme, span: tok.Span}, nil
		}
		return nil, syntaxErrorf(tok.Span, "expected expression, found %q", tok.Lexeme)
	}
}

func (p *Parser) parseListLit() (Expr, error) {
	start, err := p.expect(LBRACKET, "'['")
	if err != nil {
		return nil, err
	}
	var elems []Expr
	for !p.at(RBRACKET) {
		elem, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		if !p.at(COMMA) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(RBRACKET, "']' after list elements"); err != nil {
		return nil, err
	}
	return &ListLit{Elems: elems, span: start.Span.Merge(p.prevSpan())}, nil
}

func (p *Parser) parseDictLit() (Expr, error) {
	start, err := p.expect(LBRACE, "'{'")
	if err != nil {
		return nil, err
	}
	var entries []DictEntry
	for !p.at(RBRACE) {
		key, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(COLON, "':' after dict key"); err != nil {
			return nil, err
		}
		value, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		entries = append(entries, DictEntry{Key: key, Value: value})
		if !p.at(COMMA) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(RBRACE, "'}' after dict entries"); err != nil {
		return nil, err
	}
	return &DictLit{Entries: entries, span: start.Span.Merge(p.prevSpan())}, nil
}

func (p *Parser) parseStructLit() (Expr, error) {
	name, err := p.expect(IDENT, "struct name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LBRACE, "'{' after struct name"); err != nil {
		return nil, err
	}
	var fields []FieldInit
	for !p.at(RBRACE) {
		fieldName, err := p.expect(IDENT, "field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(COLON, "':' after field name"); err != nil {
			return nil, err
		}
		value, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		fields = append(fields, FieldInit{
			Name:  fieldName.Lexeme,
			Value: value,
			span:  fieldName.Span.Merge(value.Span()),
		})
		if !p.at(COMMA) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(RBRACE, "'}' after field initializers"); err != nil {
		return nil, err
	}
	return &StructLit{
		Name:   name.Lexeme,
		Fields: fields,
		span:   name.Span.Merge(p.prevSpan()),
	}, nil
}

// ----- Statements -----

func (p *Parser) parseStatement() (Stmt, error) {
	var stmt Stmt
	var err error

	switch p.cur().Kind {
	case LET, CONST:
		stmt, err = p.parseVarDecl()
	case FN:
		stmt, err = p.parseFuncDecl()
	case STRUCT:
		stmt, err = p.parseStructDecl()
	case ENUM:
		stmt, err = p.parseEnumDecl()
	case IMPORT:
		stmt, err = p.parseImport()
	case IF:
		stmt, err = p.parseIf()
	case WHILE:
		stmt, err = p.parseWhile()
	case FOR:
		stmt, err = p.parseFor()
	case RETURN:
		stmt, err = p.parseReturn()
	case BREAK:
		tok := p.advance()
		stmt = &Break{span: tok.Span}
	case CONTINUE:
		tok := p.advance()
		stmt = &Continue{span: tok.Span}
	case PRINT:
		stmt, err = p.parsePrint()
	case LBRACE:
		stmt, err = p.parseBlock()
	default:
		stmt, err = p.parseSimpleStatement()
	}
	if err != nil {
		return nil, err
	}

	// Statement terminators are optional.
	if p.at(SEMICOLON) {
		p.advance()
	}
	return stmt, nil
}

// parseSimpleStatement parses a full expression first, then decides between
// an assignment and an expression statement based on a following '='. The
// parsed expression must reduce to a valid assignment target.
func (p *Parser) parseSimpleStatement() (Stmt, error) {
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if !p.at(ASSIGN) {
		return &ExprStmt{X: expr, span: expr.Span()}, nil
	}

	assign := p.advance()
	value, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	span := expr.Span().Merge(value.Span())
	switch target := expr.(type) {
	case *Ident:
		return &Assign{Target: target, Value: value, span: span}, nil
	case *IndexExpr:
		return &IndexAssign{Target: target, Value: value, span: span}, nil
	case *MemberExpr:
		return &MemberAssign{Target: target, Value: value, span: span}, nil
	default:
		return nil, syntaxErrorf(assign.Span, "invalid assignment target")
	}
}

func (p *Parser) parseBlock() (*Block, error) {
	start, err := p.expect(LBRACE, "'{'")
	if err != nil {
		return nil, err
	}
	var stmts []Stmt
	for !p.at(RBRACE) && !p.at(EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(RBRACE, "'}' to close block"); err != nil {
		return nil, err
	}
	return &Block{Stmts: stmts, span: start.Span.Merge(p.prevSpan())}, nil
}

func (p *Parser) parseVarDecl() (Stmt, error) {
	kw := p.advance() // let or const
	name, err := p.expect(IDENT, "name after declaration keyword")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON, "':' and a type annotation"); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeExpr(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ASSIGN, "'=' and an initializer"); err != nil {
		return nil, err
	}
	value, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	ident := &Ident{Name: name.Lexeme, span: name.Span}
	span := kw.Span.Merge(value.Span())
	if kw.Kind == CONST {
		return &Const{Name: ident, Type: typ, Value: value, span: span}, nil
	}
	return &Let{Name: ident, Type: typ, Value: value, span: span}, nil
}

func (p *Parser) parseFuncDecl() (Stmt, error) {
	kw := p.advance() // fn
	name, err := p.expect(IDENT, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN, "'(' after function name"); err != nil {
		return nil, err
	}

	var params []Param
	for !p.at(RPAREN) {
		paramName, err := p.expect(IDENT, "parameter name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(COLON, "':' after parameter name"); err != nil {
			return nil, err
		}
		paramType, err := p.parseTypeExpr(false)
		if err != nil {
			return nil, err
		}
		params = append(params, Param{
			Name: &Ident{Name: paramName.Lexeme, span: paramName.Span},
			Type: paramType,
		})
		if !p.at(COMMA) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(RPAREN, "')' after parameters"); err != nil {
		return nil, err
	}

	// Return type defaults to void when omitted.
	var ret TypeExpr
	if p.at(COLON) {
		p.advance()
		ret, err = p.parseTypeExpr(true)
		if err != nil {
			return nil, err
		}
	} else {
		ret = &NamedType{Name: "void", span: p.cur().Span}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &FuncDecl{
		Name:   &Ident{Name: name.Lexeme, span: name.Span},
		Params: params,
		Ret:    ret,
		Body:   body,
		span:   kw.Span.Merge(body.Span()),
	}, nil
}

func (p *Parser) parseStructDecl() (Stmt, error) {
	kw := p.advance() // struct
	name, err := p.expect(IDENT, "struct name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LBRACE, "'{' after struct name"); err != nil {
		return nil, err
	}
	var fields []StructFieldDecl
	for !p.at(RBRACE) {
		fieldName, err := p.expect(IDENT, "field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(COLON, "':' after field name"); err != nil {
			return nil, err
		}
		fieldType, err := p.parseTypeExpr(false)
		if err != nil {
			return nil, err
		}
		fields = append(fields, StructFieldDecl{
			Name: &Ident{Name: fieldName.Lexeme, span: fieldName.Span},
			Type: fieldType,
		})
		if !p.at(COMMA) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(RBRACE, "'}' after struct fields"); err != nil {
		return nil, err
	}
	return &StructDecl{
		Name:   &Ident{Name: name.Lexeme, span: name.Span},
		Fields: fields,
		span:   kw.Span.Merge(p.prevSpan()),
	}, nil
}

func (p *Parser) parseEnumDecl() (Stmt, error) {
	kw := p.advance() // enum
	name, err := p.expect(IDENT, "enum name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LBRACE, "'{' after enum name"); err != nil {
		return nil, err
	}
	var variants []*Ident
	for !p.at(RBRACE) {
		variant, err := p.expect(IDENT, "variant name")
		if err != nil {
			return nil, err
		}
		variants = append(variants, &Ident{Name: variant.Lexeme, span: variant.Span})
		if !p.at(COMMA) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(RBRACE, "'}' after enum variants"); err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return nil, syntaxErrorf(p.prevSpan(), "enum must declare at least one variant")
	}
	return &EnumDecl{
		Name:     &Ident{Name: name.Lexeme, span: name.Span},
		Variants: variants,
		span:     kw.Span.Merge(p.prevSpan()),
	}, nil
}

func (p *Parser) parseImport() (Stmt, error) {
	kw := p.advance() // import
	name, err := p.expect(IDENT, "namespace name after 'import'")
	if err != nil {
		return nil, err
	}
	return &Import{
		Name: &Ident{Name: name.Lexeme, span: name.Span},
		span: kw.Span.Merge(name.Span),
	}, nil
}

func (p *Parser) parseIf() (Stmt, error) {
	kw := p.advance() // if
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseBlock *Block
	if p.at(ELSE) {
		p.advance()
		if p.at(IF) {
			// else-if chains nest as a single-statement else block.
			nested, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			elseBlock = &Block{Stmts: []Stmt{nested}, span: nested.Span()}
		} else {
			elseBlock, err = p.parseBlock()
			if err != nil {
				return nil, err
			}
		}
	}

	span := kw.Span.Merge(then.Span())
	if elseBlock != nil {
		span = span.Merge(elseBlock.Span())
	}
	return &If{Cond: cond, Then: then, Else: elseBlock, span: span}, nil
}

func (p *Parser) parseWhile() (Stmt, error) {
	kw := p.advance() // while
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &While{Cond: cond, Body: body, span: kw.Span.Merge(body.Span())}, nil
}

func (p *Parser) parseFor() (Stmt, error) {
	kw := p.advance() // for
	name, err := p.expect(IDENT, "loop variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(IN, "'in' after loop variable"); err != nil {
		return nil, err
	}
	iter, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &For{
		Var:  &Ident{Name: name.Lexeme, span: name.Span},
		Iter: iter,
		Body: body,
		span: kw.Span.Merge(body.Span()),
	}, nil
}

func (p *Parser) parseReturn() (Stmt, error) {
	kw := p.advance() // return
	if p.at(SEMICOLON) || p.at(RBRACE) || p.at(EOF) {
		return &Return{span: kw.Span}, nil
	}
	value, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &Return{Value: value, span: kw.Span.Merge(value.Span())}, nil
}

func (p *Parser) parsePrint() (Stmt, error) {
	kw := p.advance() // print
	if _, err := p.expect(LPAREN, "'(' after 'print'"); err != nil {
		return nil, err
	}

	stmt := &Print{}
	for !p.at(RPAREN) {
		// sep: and end: reuse the named-argument syntax and may appear in
		// any position, once each.
		if p.at(IDENT) && p.peek(1).Kind == COLON {
			name := p.cur()
			if name.Lexeme != "sep" && name.Lexeme != "end" {
				return nil, syntaxErrorf(name.Span, "expected 'sep' or 'end' as named argument")
			}
			p.advance()
			p.advance()
			value, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			if name.Lexeme == "sep" {
				if stmt.Sep != nil {
					return nil, syntaxErrorf(name.Span, "duplicate 'sep' argument")
				}
				stmt.Sep = value
			} else {
				if stmt.End != nil {
					return nil, syntaxErrorf(name.Span, "duplicate 'end' argument")
				}
				stmt.End = value
			}
		} else {
			arg, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			stmt.Args = append(stmt.Args, arg)
		}
		if !p.at(COMMA) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(RPAREN, "')' after print arguments"); err != nil {
		return nil, err
	}
	stmt.span = kw.Span.Merge(p.prevSpan())
	return stmt, nil
}

// ----- Type annotations -----

// parseTypeExpr parses a type annotation: a primitive keyword, a [elem]
// list, a {key: value} dict, or a bare identifier kept as a forward
// reference for the semantic analyzer to resolve. void is accepted only in
// return-type position.
func (p *Parser) parseTypeExpr(voidOK bool) (TypeExpr, error) {
	tok := p.cur()
	switch tok.Kind {
	case INT_TYPE, FLOAT_TYPE, BOOL_TYPE, STR_TYPE:
		p.advance()
		return &NamedType{Name: tok.Lexeme, span: tok.Span}, nil

	case VOID:
		if !voidOK {
			return nil, syntaxErrorf(tok.Span, "'void' is only valid as a return type")
		}
		p.advance()
		return &NamedType{Name: tok.Lexeme, span: tok.Span}, nil

	case IDENT:
		p.advance()
		return &NamedType{Name: tok.Lexeme, span: tok.Span}, nil

	case LBRACKET:
		p.advance()
		elem, err := p.parseTypeExpr(false)
		if err != nil {
			return nil, err
		}
		end, err := p.expect(RBRACKET, "']' after element type")
		if err != nil {
			return nil, err
		}
		return &ListType{Elem: elem, span: tok.Span.Merge(end.Span)}, nil

	case LBRACE:
		p.advance()
		key, err := p.parseTypeExpr(false)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(COLON, "':' after key type"); err != nil {
			return nil, err
		}
		value, err := p.parseTypeExpr(false)
		if err != nil {
			return nil, err
		}
		end, err := p.expect(RBRACE, "'}' after value type")
		if err != nil {
			return nil, err
		}
		return &DictType{Key: key, Value: value, span: tok.Span.Merge(end.Span)}, nil

	default:
		return nil, syntaxErrorf(tok.Span, "expected a type, found %q", tok.Lexeme)
	}
}
