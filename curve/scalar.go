package curve

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// ScalarRing is the scalar ring Z_n backing witnesses, Shamir shares,
// and Lagrange coefficients, and for the Schnorr proofs' challenges and
// responses. The ring-NIZK proof's challenges and responses are
// deliberately NOT modeled as ScalarRing elements: the source computes
// them as raw, unreduced
// integers (e.g. the XOR-combined Fiat-Shamir challenge can exceed n)
// and relies on the fixed-base table's scalar multiplication — whose
// group has order n — to reduce implicitly. Those stay plain *big.Int.
type ScalarRing struct {
	n *big.Int
}

// NewScalarRing builds the ring Z_n.
func NewScalarRing(n *big.Int) *ScalarRing {
	return &ScalarRing{n: new(big.Int).Set(n)}
}

// N returns a copy of the ring's modulus.
func (r *ScalarRing) N() *big.Int { return new(big.Int).Set(r.n) }

// Scalar is an element of Z_n, always kept reduced into [0, n).
type Scalar struct {
	v *big.Int
}

func (r *ScalarRing) reduce(v *big.Int) Scalar {
	return Scalar{v: new(big.Int).Mod(v, r.n)}
}

func (r *ScalarRing) FromInt64(v int64) Scalar       { return r.reduce(big.NewInt(v)) }
func (r *ScalarRing) FromBigInt(v *big.Int) Scalar   { return r.reduce(v) }
func (r *ScalarRing) Zero() Scalar                   { return r.FromInt64(0) }
func (r *ScalarRing) One() Scalar                    { return r.FromInt64(1) }
func (s Scalar) Int() *big.Int                       { return new(big.Int).Set(s.v) }
func (s Scalar) Bytes() []byte                       { return s.v.Bytes() }
func (s Scalar) IsZero() bool                        { return s.v.Sign() == 0 }
func (s Scalar) Equal(o Scalar) bool                 { return s.v.Cmp(o.v) == 0 }
func (s Scalar) String() string                      { return s.v.String() }

// Random draws a uniformly random element of Z_n via crypto/rand, the
// "RandInt" operation of spec.md's Field & Curve Context.
func (r *ScalarRing) Random() (Scalar, error) {
	v, err := rand.Int(rand.Reader, r.n)
	if err != nil {
		return Scalar{}, fmt.Errorf("curve: sampling scalar: %w", err)
	}
	return Scalar{v: v}, nil
}

func (r *ScalarRing) Add(a, b Scalar) Scalar { return r.reduce(new(big.Int).Add(a.v, b.v)) }
func (r *ScalarRing) Sub(a, b Scalar) Scalar { return r.reduce(new(big.Int).Sub(a.v, b.v)) }
func (r *ScalarRing) Mul(a, b Scalar) Scalar { return r.reduce(new(big.Int).Mul(a.v, b.v)) }
func (r *ScalarRing) Neg(a Scalar) Scalar    { return r.reduce(new(big.Int).Neg(a.v)) }

// Inv returns a^-1 mod n. n is assumed prime (the scalar ring order of
// the spec's pairing-friendly subgroup).
func (r *ScalarRing) Inv(a Scalar) (Scalar, error) {
	if a.IsZero() {
		return Scalar{}, fmt.Errorf("curve: cannot invert zero scalar")
	}
	inv := new(big.Int).ModInverse(a.v, r.n)
	if inv == nil {
		return Scalar{}, fmt.Errorf("curve: %s has no inverse mod %s", a.v, r.n)
	}
	return Scalar{v: inv}, nil
}

// EvalPoly evaluates p(x) = coeffs[0] + coeffs[1]*x + ... mod n, used by
// the Shamir dealer to compute each share.
func (r *ScalarRing) EvalPoly(coeffs []Scalar, x Scalar) Scalar {
	acc := r.Zero()
	pow := r.One()
	for _, c := range coeffs {
		acc = r.Add(acc, r.Mul(c, pow))
		pow = r.Mul(pow, x)
	}
	return acc
}
