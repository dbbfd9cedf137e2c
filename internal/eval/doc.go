// Package eval parses and evaluates complex arithmetic expressions.
//
// The grammar is small and fixed:
//
//	expr   = term { ("+" | "-") term }
//	term   = factor { ("*" | "/") factor }
//	factor = ["-"] primary
//	primary = number | "i" | call | "(" expr ")"
//	call   = ident "(" expr ")"
//
// Numbers are decimal floats, optionally suffixed with "i" for an
// imaginary literal (2i, 3.5i). A bare "i" is the imaginary unit.
// Recognized calls are inv, neg, and conj.
//
// Division is multiplication by the inverse, so dividing by a value
// with zero squared magnitude surfaces the cplx.DomainError of the
// core rather than a NaN result.
package eval
