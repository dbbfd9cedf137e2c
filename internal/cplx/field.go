package cplx

// Field is a capability bundle: the operations of an algebraic field
// over carrier type T. Correctness of the field axioms (commutativity,
// associativity, distributivity, identities, inverses) is not checked
// by the runtime; implementations are expected to satisfy them and the
// test suite exercises them property-style over random values.
type Field[T any] interface {
	// Add returns a + b.
	Add(a, b T) T

	// Neg returns the additive inverse of a.
	Neg(a T) T

	// Mul returns a * b.
	Mul(a, b T) T

	// Inv returns the multiplicative inverse of a, or an error when
	// a has no inverse (the additive identity).
	Inv(a T) (T, error)

	// Zero returns the additive identity.
	Zero() T

	// One returns the multiplicative identity.
	One() T
}

// Numbers is the complex field instance.
var Numbers Field[Complex] = complexField{}

type complexField struct{}

func (complexField) Add(a, b Complex) Complex        { return Add(a, b) }
func (complexField) Neg(a Complex) Complex           { return Neg(a) }
func (complexField) Mul(a, b Complex) Complex        { return Mul(a, b) }
func (complexField) Inv(a Complex) (Complex, error)  { return Inv(a) }
func (complexField) Zero() Complex                   { return Zero }
func (complexField) One() Complex                    { return One }
