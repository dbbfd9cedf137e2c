package cplx

import "math"

// Complex is an immutable complex number in rectangular form.
// The zero value is the additive identity.
type Complex struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// Zero is the additive identity.
var Zero = Complex{}

// One is the multiplicative identity.
var One = Complex{Re: 1}

// I is the imaginary unit.
var I = Complex{Im: 1}

// New creates a Complex from rectangular components.
func New(re, im float64) Complex {
	return Complex{Re: re, Im: im}
}

// Add returns the component-wise sum a + b. Total.
func Add(a, b Complex) Complex {
	return Complex{Re: a.Re + b.Re, Im: a.Im + b.Im}
}

// Neg returns the component-wise negation -a. Total.
func Neg(a Complex) Complex {
	return Complex{Re: -a.Re, Im: -a.Im}
}

// Sub returns a - b, defined as Add(a, Neg(b)).
func Sub(a, b Complex) Complex {
	return Add(a, Neg(b))
}

// Mul returns the product a * b under the standard multiplication rule:
//
//	re = a.re*b.re - a.im*b.im
//	im = a.re*b.im + a.im*b.re
//
// Total.
func Mul(a, b Complex) Complex {
	return Complex{
		Re: a.Re*b.Re - a.Im*b.Im,
		Im: a.Re*b.Im + a.Im*b.Re,
	}
}

// Conj returns the complex conjugate of a.
func Conj(a Complex) Complex {
	return Complex{Re: a.Re, Im: -a.Im}
}

// SquaredMagnitude returns re² + im², the normalization denominator
// used by Inv.
func SquaredMagnitude(a Complex) float64 {
	return a.Re*a.Re + a.Im*a.Im
}

// Inv returns the multiplicative inverse of a:
//
//	re = a.re / n,  im = -a.im / n,  n = a.re² + a.im²
//
// Returns a *DomainError when n is exactly zero. The caller decides
// how to surface it; Inv never returns a NaN or Inf valued result for
// a zero operand.
func Inv(a Complex) (Complex, error) {
	n := SquaredMagnitude(a)
	if n == 0 {
		return Complex{}, NewZeroInverseError(a)
	}
	return Complex{Re: a.Re / n, Im: -a.Im / n}, nil
}

// Div returns a / b, defined as Mul(a, Inv(b)).
// Returns a *DomainError when b has zero squared magnitude.
func Div(a, b Complex) (Complex, error) {
	binv, err := Inv(b)
	if err != nil {
		return Complex{}, &DomainError{Code: ErrCodeZeroInverse, Op: "div", Operand: b}
	}
	return Mul(a, binv), nil
}

// ApproxEqual reports whether a and b agree component-wise within tol.
// Exact equality when tol is zero.
func ApproxEqual(a, b Complex, tol float64) bool {
	return math.Abs(a.Re-b.Re) <= tol && math.Abs(a.Im-b.Im) <= tol
}
