// Package cplx implements the complex number field used throughout
// FieldLab: an immutable pair of float64 components with the standard
// field operations, a capability bundle (Field) for code that is
// generic over the carrier type, and conversions to and from polar
// coordinates.
//
// Values are plain structs with value-equality semantics. Every
// operation returns a new value; nothing is mutated in place.
//
// The only partial operation is Inv: the multiplicative inverse of a
// value with zero squared magnitude is undefined and reported as a
// *DomainError rather than a NaN- or Inf-valued result.
package cplx
