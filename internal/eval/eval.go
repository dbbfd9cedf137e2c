package eval

import (
	"fmt"

	"github.com/fieldlab/fieldlab/internal/cplx"
)

// Eval parses and evaluates src, returning the resulting value.
//
// Returns a *ParseError for malformed input and an *EvalError
// (wrapping a cplx.DomainError) when evaluation applies inv or
// division to a value with zero squared magnitude.
func Eval(src string) (cplx.Complex, error) {
	n, err := Parse(src)
	if err != nil {
		return cplx.Complex{}, err
	}
	v, err := evalNode(n)
	if err != nil {
		return cplx.Complex{}, &EvalError{Expr: src, Err: err}
	}
	return v, nil
}

// evalNode evaluates an AST node.
func evalNode(n Node) (cplx.Complex, error) {
	switch node := n.(type) {
	case *Literal:
		return cplx.Complex{Re: node.Re, Im: node.Im}, nil

	case *Unary:
		x, err := evalNode(node.X)
		if err != nil {
			return cplx.Complex{}, err
		}
		switch node.Op {
		case "-", "neg":
			return cplx.Neg(x), nil
		case "conj":
			return cplx.Conj(x), nil
		case "inv":
			return cplx.Inv(x)
		default:
			return cplx.Complex{}, fmt.Errorf("unknown unary operator %q", node.Op)
		}

	case *Binary:
		l, err := evalNode(node.L)
		if err != nil {
			return cplx.Complex{}, err
		}
		r, err := evalNode(node.R)
		if err != nil {
			return cplx.Complex{}, err
		}
		switch node.Op {
		case "+":
			return cplx.Add(l, r), nil
		case "-":
			return cplx.Sub(l, r), nil
		case "*":
			return cplx.Mul(l, r), nil
		case "/":
			return cplx.Div(l, r)
		default:
			return cplx.Complex{}, fmt.Errorf("unknown binary operator %q", node.Op)
		}

	default:
		return cplx.Complex{}, fmt.Errorf("unknown node type %T", n)
	}
}
