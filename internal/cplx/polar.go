package cplx

import "math"

// Polar is a complex number in polar form: an angle in radians and a
// radius.
type Polar struct {
	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`
}

// ToPolar converts c to polar form.
//
// The angle is computed with the single-argument arctangent of
// im/re, NOT the two-argument form. This loses quadrant information
// whenever c.Re < 0: ToPolar(Complex{-1, -1}) reports the same angle
// as ToPolar(Complex{1, 1}). The limitation is deliberate and kept
// visible; callers that need full quadrant recovery should not use
// this representation.
//
// When c.Re == 0 the ratio is ±Inf and math.Atan yields ±π/2, which
// is the correct angle for the positive imaginary axis.
func ToPolar(c Complex) Polar {
	return Polar{
		Angle:  math.Atan(c.Im / c.Re),
		Radius: math.Sqrt(SquaredMagnitude(c)),
	}
}

// FromPolar converts polar form to rectangular form:
//
//	re = radius * cos(angle),  im = radius * sin(angle)
//
// Total.
func FromPolar(p Polar) Complex {
	return Complex{
		Re: p.Radius * math.Cos(p.Angle),
		Im: p.Radius * math.Sin(p.Angle),
	}
}

// ApproxEqualPolar reports whether a and b agree component-wise within tol.
func ApproxEqualPolar(a, b Polar, tol float64) bool {
	return math.Abs(a.Angle-b.Angle) <= tol && math.Abs(a.Radius-b.Radius) <= tol
}

// RoundTrips reports whether ToPolar(FromPolar(p)) recovers p within
// tol. True only on the restricted domain: angle strictly inside
// (-π/2, π/2) and radius > 0. Outside that domain the round-trip is
// expected to diverge because of the single-argument arctangent in
// ToPolar; see that function's comment.
func RoundTrips(p Polar, tol float64) bool {
	return ApproxEqualPolar(ToPolar(FromPolar(p)), p, tol)
}
