package expr

import "github.com/san-kum/tempsynth/internal/curve"

type parser struct {
	toks []token
	pos  int
}

func parse(src string) (node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return nil, syntaxErrorf(0, "empty equation")
	}
	n, err := p.expression()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, syntaxErrorf(tok.pos, "unexpected %s", describe(tok))
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

// expression := term (('+' | '-') term)*
func (p *parser) expression() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for k := p.peek().kind; k == tokPlus || k == tokMinus; k = p.peek().kind {
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: k, left: left, right: right}
	}
	return left, nil
}

// term := unary (('*' | '/') unary)*
func (p *parser) term() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for k := p.peek().kind; k == tokStar || k == tokSlash; k = p.peek().kind {
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: k, left: left, right: right}
	}
	return left, nil
}

// unary := ('+' | '-') unary | power
func (p *parser) unary() (node, error) {
	switch p.peek().kind {
	case tokPlus:
		p.next()
		return p.unary()
	case tokMinus:
		p.next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{neg: true, operand: operand}, nil
	}
	return p.power()
}

// power := primary ('^' unary)?
func (p *parser) power() (node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokPow {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &binaryNode{op: tokPow, left: base, right: exp}, nil
}

// primary := number | ident | ident '(' args ')' | '(' expression ')'
func (p *parser) primary() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		return numberNode(tok.num), nil
	case tokLParen:
		n, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return n, nil
	case tokIdent:
		if p.peek().kind == tokLParen {
			return p.call(tok)
		}
		if tok.text == Variable {
			return varNode{}, nil
		}
		if v, ok := constants[tok.text]; ok {
			return numberNode(v), nil
		}
		return nil, &identError{pos: tok.pos, name: tok.text, err: curve.ErrUnknownVariable}
	}
	return nil, syntaxErrorf(tok.pos, "unexpected %s", describe(tok))
}

func (p *parser) call(name token) (node, error) {
	fn, ok := functions[name.text]
	if !ok {
		return nil, &identError{pos: name.pos, name: name.text, err: curve.ErrUnknownFunction}
	}
	p.next() // '('
	var args []node
	if p.peek().kind != tokRParen {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	if len(args) != fn.Arity {
		return nil, &identError{pos: name.pos, name: name.text, err: curve.ErrArity}
	}
	return &callNode{fn: fn, args: args}, nil
}

func (p *parser) expect(kind tokenKind) error {
	tok := p.next()
	if tok.kind != kind {
		return syntaxErrorf(tok.pos, "expected %s, found %s", kind, describe(tok))
	}
	return nil
}

func describe(tok token) string {
	if tok.kind == tokEOF {
		return tok.kind.String()
	}
	return "'" + tok.text + "'"
}

type identError struct {
	pos  int
	name string
	err  error
}

func (e *identError) Error() string { return e.err.Error() + " " + e.name }

func (e *identError) Unwrap() error { return e.err }
