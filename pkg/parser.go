package soloman

// Tokenizer is the token source consumed by the Parser.
type Tokenizer interface {
	Next() (Token, error)
	GetFilename() string
}

// Parser is a recursive descent parser with one token of lookahead for
//
//	program    := statement* EOF
//	statement  := "print" expression ";"
//	expression := term ("+" term)*
//	term       := factor ("*" factor)*
//	factor     := Number
type Parser struct {
	filename  string
	tokenizer Tokenizer
	buf       *Token
}

func NewParser(tokenizer Tokenizer) *Parser {
	return &Parser{
		tokenizer: tokenizer,
		filename:  tokenizer.GetFilename(),
	}
}

func (p *Parser) GetFilename() string {
	return p.filename
}

// Run parses the whole token stream. The first lex or parse error aborts it.
func (p *Parser) Run() (*AST, error) {
	ast := &AST{Filename: p.filename}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		if tok.Typ == TokenEOF {
			return ast, nil
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		ast.Statements = append(ast.Statements, stmt)
	}
}

func (p *Parser) peek() (Token, error) {
	if p.buf == nil {
		tok, err := p.tokenizer.Next()
		if err != nil {
			return Token{}, err
		}

		p.buf = &tok
	}

	return *p.buf, nil
}

func (p *Parser) next() (Token, error) {
	tok, err := p.peek()
	if err != nil {
		return Token{}, err
	}

	// EOF stays buffered since no more tokens are expected
	if tok.Typ != TokenEOF {
		p.buf = nil
	}

	return tok, nil
}

func (p *Parser) check(typ TokenType) (bool, error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}

	return tok.Typ == typ, nil
}

func (p *Parser) expect(typ TokenType, what string) (Token, error) {
	tok, err := p.next()
	if err != nil {
		return Token{}, err
	}

	if tok.Typ != typ {
		return Token{}, p.unexpected(tok, what)
	}

	return tok, nil
}

func (p *Parser) unexpected(tok Token, expected string) error {
	kind := ParseUnexpectedToken
	if tok.Typ == TokenEOF {
		kind = ParseUnexpectedEndOfInput
	}

	return &ParseError{
		Kind:     kind,
		Expected: expected,
		Found:    tok,
		Loc:      tok.Loc,
	}
}

func (p *Parser) statement() (Stmt, error) {
	start, err := p.expect(TokenPrint, "'print'")
	if err != nil {
		return nil, err
	}

	expr, err := p.additiveExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon, "';'"); err != nil {
		return nil, err
	}

	return &PrintStmt{
		Expr: expr,
		Loc:  start.Loc,
	}, nil
}

func (p *Parser) additiveExpr() (Expr, error) {
	lhs, err := p.multiplicativeExpr()
	if err != nil {
		return nil, err
	}

	for {
		ok, err := p.check(TokenPlus)
		if err != nil {
			return nil, err
		}

		if !ok {
			return lhs, nil
		}

		// Chained operands (for example 1 + 2 + 3) nest to the left
		op, _ := p.next()

		rhs, err := p.multiplicativeExpr()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Operation: BinaryAddition,
			Op1:       lhs,
			Op2:       rhs,
			Loc:       op.Loc,
		}
	}
}

func (p *Parser) multiplicativeExpr() (Expr, error) {
	lhs, err := p.literal()
	if err != nil {
		return nil, err
	}

	for {
		ok, err := p.check(TokenMulti)
		if err != nil {
			return nil, err
		}

		if !ok {
			return lhs, nil
		}

		op, _ := p.next()

		rhs, err := p.literal()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Operation: BinaryMultiplication,
			Op1:       lhs,
			Op2:       rhs,
			Loc:       op.Loc,
		}
	}
}

func (p *Parser) literal() (Expr, error) {
	tok, err := p.expect(TokenNumber, "integer literal")
	if err != nil {
		return nil, err
	}

	v, err := tok.Int()
	if err != nil {
		return nil, &LexError{
			Kind: LexInvalidNumber,
			Text: tok.Value,
			Loc:  tok.Loc,
		}
	}

	return &LiteralExpr{
		Value: v,
		Loc:   tok.Loc,
	}, nil
}
