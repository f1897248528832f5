package main

// Parsing works on a Lexer positioned at its first token: call NextToken
// once, then ParseProgram (or ParseStatement / ParseExpression).
//
// Statements that match no rule are not errors. They become NodeInvalid
// nodes holding the skipped source text, so the checker can warn about them
// and carry on with the next statement.

type parser struct {
	l     *Lexer
	start int // byte offset where the current statement began
}

// ParseProgram parses top-level declarations, functions, prototypes,
// assignments and expression statements until EOF.
func ParseProgram(l *Lexer) *ASTNode {
	p := &parser{l: l}
	program := &ASTNode{Kind: NodeProgram, Line: l.CurrLine}
	for l.CurrTokenType != EOF {
		if item := p.parseTopLevel(); item != nil {
			program.Children = append(program.Children, item)
		}
	}
	return program
}

// ParseStatement parses one function-body statement. It returns nil for an
// empty statement (a lone ';').
func ParseStatement(l *Lexer) *ASTNode {
	p := &parser{l: l}
	return p.parseStatement()
}

// ParseExpression parses one expression. If the tokens do not form an
// expression, the text consumed so far is returned as a NodeInvalid.
func ParseExpression(l *Lexer) *ASTNode {
	p := &parser{l: l, start: l.CurrStart}
	line := l.CurrLine
	if expr := p.parseExpression(); expr != nil {
		return expr
	}
	if l.CurrTokenType != EOF && l.CurrStart == p.start {
		l.NextToken()
	}
	return &ASTNode{Kind: NodeInvalid, Line: line, String: l.Text(p.start, l.CurrStart)}
}

func (p *parser) at(t TokenType) bool {
	return p.l.CurrTokenType == t
}

func (p *parser) advance() {
	p.l.NextToken()
}

func (p *parser) accept(t TokenType) bool {
	if p.l.CurrTokenType != t {
		return false
	}
	p.l.NextToken()
	return true
}

func (p *parser) parseTopLevel() *ASTNode {
	line := p.l.CurrLine
	p.start = p.l.CurrStart

	if p.accept(SEMICOLON) {
		return nil
	}

	if !p.at(KW_INT) && !p.at(KW_FLOAT) && !p.at(KW_VOID) && !p.at(RETURN) {
		if stmt := p.parseSimpleStatement(line); stmt != nil {
			return stmt
		}
	} else if typ, ok := typeFromToken(p.l.CurrTokenType); ok {
		p.advance()
		if p.at(IDENT) {
			name := p.l.CurrLiteral
			p.advance()
			if p.at(LPAREN) {
				if fn := p.parseFunction(typ, name, line); fn != nil {
					return fn
				}
			} else if typ != TypeVoid {
				if names, ok := p.parseNameList(name); ok {
					return &ASTNode{Kind: NodeDecl, Line: line, DeclType: typ, Names: names}
				}
			}
		}
	}

	p.skipTopLevel()
	return p.invalid(line)
}

// parseFunction parses the rest of a function header after its name. It
// returns nil if the header is malformed, leaving the caller to recover.
func (p *parser) parseFunction(ret Type, name string, line int) *ASTNode {
	p.advance() // skip '('
	params, ok := p.parseParams()
	if !ok {
		return nil
	}

	fn := &ASTNode{Kind: NodeFunc, Line: line, String: name, DeclType: ret, Params: params}
	if p.accept(SEMICOLON) {
		return fn
	}
	if !p.accept(LBRACE) {
		return nil
	}

	fn.HasBody = true
	for !p.at(RBRACE) && !p.at(EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			fn.Children = append(fn.Children, stmt)
		}
	}
	if !p.accept(RBRACE) {
		fn.Unclosed = true
	}
	return fn
}

// parseParams parses a parameter list up to and including ')'.
func (p *parser) parseParams() ([]Param, bool) {
	if p.accept(RPAREN) {
		return nil, true
	}
	if p.at(KW_VOID) && p.l.PeekToken() == RPAREN {
		p.advance()
		p.advance()
		return nil, true
	}

	var params []Param
	for {
		typ, ok := typeFromToken(p.l.CurrTokenType)
		if !ok || typ == TypeVoid {
			return nil, false
		}
		p.advance()

		param := Param{Type: typ}
		if p.at(IDENT) {
			param.Name = p.l.CurrLiteral
			p.advance()
		}
		params = append(params, param)

		if p.accept(COMMA) {
			continue
		}
		if p.accept(RPAREN) {
			return params, true
		}
		return nil, false
	}
}

// parseNameList parses `(',' IDENT)* ';'` after the first declared name.
func (p *parser) parseNameList(first string) ([]string, bool) {
	names := []string{first}
	for p.accept(COMMA) {
		if !p.at(IDENT) {
			return nil, false
		}
		names = append(names, p.l.CurrLiteral)
		p.advance()
	}
	if !p.accept(SEMICOLON) {
		return nil, false
	}
	return names, true
}

func (p *parser) parseStatement() *ASTNode {
	line := p.l.CurrLine
	p.start = p.l.CurrStart

	switch {
	case p.at(SEMICOLON):
		p.advance()
		return nil

	case p.at(KW_INT) || p.at(KW_FLOAT):
		typ, _ := typeFromToken(p.l.CurrTokenType)
		p.advance()
		if p.at(IDENT) {
			name := p.l.CurrLiteral
			p.advance()
			if names, ok := p.parseNameList(name); ok {
				return &ASTNode{Kind: NodeDecl, Line: line, DeclType: typ, Names: names}
			}
		}

	case p.at(RETURN):
		p.advance()
		if p.accept(SEMICOLON) {
			return &ASTNode{Kind: NodeReturn, Line: line}
		}
		if value := p.parseExpression(); value != nil && p.accept(SEMICOLON) {
			return &ASTNode{Kind: NodeReturn, Line: line, Children: []*ASTNode{value}}
		}

	default:
		if stmt := p.parseSimpleStatement(line); stmt != nil {
			return stmt
		}
	}

	p.skipStatement()
	return p.invalid(line)
}

// parseSimpleStatement parses `IDENT '=' expr ';'` or `expr ';'`. It
// returns nil if neither matches.
func (p *parser) parseSimpleStatement(line int) *ASTNode {
	if p.at(IDENT) && p.l.PeekToken() == ASSIGN {
		target := p.l.CurrLiteral
		p.advance()
		p.advance()
		if value := p.parseExpression(); value != nil && p.accept(SEMICOLON) {
			return &ASTNode{Kind: NodeAssign, Line: line, String: target, Children: []*ASTNode{value}}
		}
		return nil
	}
	if expr := p.parseExpression(); expr != nil && p.accept(SEMICOLON) {
		return &ASTNode{Kind: NodeExprStmt, Line: line, Children: []*ASTNode{expr}}
	}
	return nil
}

// parseExpression parses `primary ('+' primary)*`, building a left-leaning
// tree. It returns nil on a malformed expression.
func (p *parser) parseExpression() *ASTNode {
	left := p.parsePrimary()
	if left == nil {
		return nil
	}
	for p.at(PLUS) {
		line := p.l.CurrLine
		p.advance()
		right := p.parsePrimary()
		if right == nil {
			return nil
		}
		left = &ASTNode{Kind: NodeBinary, Line: line, Op: "+", Children: []*ASTNode{left, right}}
	}
	return left
}

func (p *parser) parsePrimary() *ASTNode {
	line := p.l.CurrLine
	lit := p.l.CurrLiteral

	switch p.l.CurrTokenType {
	case INT:
		p.advance()
		return &ASTNode{Kind: NodeInteger, Line: line, String: lit}
	case FLOAT:
		p.advance()
		return &ASTNode{Kind: NodeFloat, Line: line, String: lit}
	case IDENT:
		p.advance()
		if !p.accept(LPAREN) {
			return &ASTNode{Kind: NodeIdent, Line: line, String: lit}
		}
		call := &ASTNode{Kind: NodeCall, Line: line, String: lit}
		if p.accept(RPAREN) {
			return call
		}
		for {
			arg := p.parseExpression()
			if arg == nil {
				return nil
			}
			call.Children = append(call.Children, arg)
			if p.accept(COMMA) {
				continue
			}
			if p.accept(RPAREN) {
				return call
			}
			return nil
		}
	default:
		return nil
	}
}

// skipTopLevel skips to just past the next ';' outside braces, or past a
// balanced '{...}' group.
func (p *parser) skipTopLevel() {
	depth := 0
	for !p.at(EOF) {
		switch p.l.CurrTokenType {
		case LBRACE:
			depth++
			p.advance()
		case RBRACE:
			depth--
			p.advance()
			if depth <= 0 {
				return
			}
		case SEMICOLON:
			p.advance()
			if depth == 0 {
				return
			}
		default:
			p.advance()
		}
	}
}

// skipStatement is skipTopLevel for function bodies: a '}' that would close
// the body is left for the caller.
func (p *parser) skipStatement() {
	depth := 0
	for !p.at(EOF) {
		switch p.l.CurrTokenType {
		case LBRACE:
			depth++
			p.advance()
		case RBRACE:
			if depth == 0 {
				return
			}
			depth--
			p.advance()
			if depth == 0 {
				return
			}
		case SEMICOLON:
			p.advance()
			if depth == 0 {
				return
			}
		default:
			p.advance()
		}
	}
}

func (p *parser) invalid(line int) *ASTNode {
	return &ASTNode{Kind: NodeInvalid, Line: line, String: p.l.Text(p.start, p.l.CurrStart)}
}
