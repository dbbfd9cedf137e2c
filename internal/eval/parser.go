package eval

import "fmt"

// Node is the sealed interface for expression AST nodes.
// Only the node types in this file implement it.
type Node interface {
	node()
}

// Literal is a complex constant: a real or imaginary number literal,
// or the imaginary unit.
type Literal struct {
	Re float64
	Im float64
}

func (*Literal) node() {}

// Unary is a unary operation: '-' or a named call (inv, neg, conj).
type Unary struct {
	Op string // "-", "inv", "neg", "conj"
	X  Node
}

func (*Unary) node() {}

// Binary is a binary operation: '+', '-', '*' or '/'.
type Binary struct {
	Op   string
	L, R Node
}

func (*Binary) node() {}

// knownCalls lists the recognized function names.
var knownCalls = map[string]bool{
	"inv":  true,
	"neg":  true,
	"conj": true,
}

// Parse parses src into an AST. Returns a *ParseError on malformed input.
func Parse(src string) (Node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != tokEOF {
		t := p.peek()
		return nil, &ParseError{Pos: t.Pos, Message: fmt.Sprintf("unexpected %s after expression", t.Kind)}
	}
	return n, nil
}

type parser struct {
	toks []token
	idx  int
}

func (p *parser) peek() token {
	return p.toks[p.idx]
}

func (p *parser) next() token {
	t := p.toks[p.idx]
	if p.idx < len(p.toks)-1 {
		p.idx++
	}
	return t
}

// parseExpr = term { ("+" | "-") term }
func (p *parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case tokPlus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = &Binary{Op: "+", L: left, R: right}
		case tokMinus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = &Binary{Op: "-", L: left, R: right}
		default:
			return left, nil
		}
	}
}

// parseTerm = factor { ("*" | "/") factor }
func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case tokStar:
			p.next()
			right, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			left = &Binary{Op: "*", L: left, R: right}
		case tokSlash:
			p.next()
			right, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			left = &Binary{Op: "/", L: left, R: right}
		default:
			return left, nil
		}
	}
}

// parseFactor = ["-"] primary
func (p *parser) parseFactor() (Node, error) {
	if p.peek().Kind == tokMinus {
		p.next()
		x, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: "-", X: x}, nil
	}
	return p.parsePrimary()
}

// parsePrimary = number | "i" | call | "(" expr ")"
func (p *parser) parsePrimary() (Node, error) {
	t := p.next()
	switch t.Kind {
	case tokNumber:
		return &Literal{Re: t.Value}, nil

	case tokImagNumber:
		return &Literal{Im: t.Value}, nil

	case tokIdent:
		if t.Text == "i" {
			return &Literal{Im: 1}, nil
		}
		if !knownCalls[t.Text] {
			return nil, &ParseError{Pos: t.Pos, Message: fmt.Sprintf("unknown identifier %q", t.Text)}
		}
		if p.peek().Kind != tokLParen {
			return nil, &ParseError{Pos: p.peek().Pos, Message: fmt.Sprintf("expected '(' after %q", t.Text)}
		}
		p.next() // consume '('
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek().Kind != tokRParen {
			return nil, &ParseError{Pos: p.peek().Pos, Message: fmt.Sprintf("expected ')' to close %s call, found %s", t.Text, p.peek().Kind)}
		}
		p.next() // consume ')'
		return &Unary{Op: t.Text, X: arg}, nil

	case tokLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek().Kind != tokRParen {
			return nil, &ParseError{Pos: p.peek().Pos, Message: fmt.Sprintf("expected ')', found %s", p.peek().Kind)}
		}
		p.next()
		return inner, nil

	default:
		return nil, &ParseError{Pos: t.Pos, Message: fmt.Sprintf("expected expression, found %s", t.Kind)}
	}
}
