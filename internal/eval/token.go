package eval

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// tokenKind identifies a lexical token.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokImagNumber // number with "i" suffix, e.g. 2i
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokImagNumber:
		return "imaginary number"
	case tokIdent:
		return "identifier"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	default:
		return "unknown token"
	}
}

// token is a lexical token with its position in the input (byte offset).
type token struct {
	Kind  tokenKind
	Text  string
	Value float64 // set for tokNumber and tokImagNumber
	Pos   int
}

// lex tokenizes src. Returns a *ParseError on the first malformed token.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '+':
			toks = append(toks, token{Kind: tokPlus, Text: "+", Pos: i})
			i++
		case c == '-':
			toks = append(toks, token{Kind: tokMinus, Text: "-", Pos: i})
			i++
		case c == '*':
			toks = append(toks, token{Kind: tokStar, Text: "*", Pos: i})
			i++
		case c == '/':
			toks = append(toks, token{Kind: tokSlash, Text: "/", Pos: i})
			i++
		case c == '(':
			toks = append(toks, token{Kind: tokLParen, Text: "(", Pos: i})
			i++
		case c == ')':
			toks = append(toks, token{Kind: tokRParen, Text: ")", Pos: i})
			i++

		case c >= '0' && c <= '9' || c == '.':
			start := i
			for i < len(src) && (src[i] >= '0' && src[i] <= '9' || src[i] == '.') {
				i++
			}
			text := src[start:i]
			if strings.Count(text, ".") > 1 {
				return nil, &ParseError{Pos: start, Message: fmt.Sprintf("malformed number %q", text)}
			}
			val, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, &ParseError{Pos: start, Message: fmt.Sprintf("malformed number %q", text)}
			}
			kind := tokNumber
			if i < len(src) && src[i] == 'i' {
				// Imaginary suffix, but only when not part of a longer
				// identifier (2in is an error, not 2*in).
				if i+1 < len(src) && isIdentChar(rune(src[i+1])) {
					return nil, &ParseError{Pos: start, Message: fmt.Sprintf("malformed imaginary literal starting at %q", text)}
				}
				kind = tokImagNumber
				i++
			}
			toks = append(toks, token{Kind: kind, Text: src[start:i], Value: val, Pos: start})

		case isIdentStart(rune(c)):
			start := i
			for i < len(src) && isIdentChar(rune(src[i])) {
				i++
			}
			toks = append(toks, token{Kind: tokIdent, Text: src[start:i], Pos: start})

		default:
			return nil, &ParseError{Pos: i, Message: fmt.Sprintf("unexpected character %q", c)}
		}
	}

	toks = append(toks, token{Kind: tokEOF, Pos: len(src)})
	return toks, nil
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
