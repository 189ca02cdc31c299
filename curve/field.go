// Package curve implements the bilinear group Component A of the TARS
// crypto engine: the extension field F_{q^k}, the curve E over it,
// Frobenius-based trace maps, a Weil pairing, and the scalar ring Z_n.
//
// The field F_{q^k} is always F_q[x]/(x^k+x+1) — the irreducible chosen
// by the source. Unlike a fixed-curve library (gnark-crypto generates
// one Go type per hardcoded modulus) q and k are runtime parameters
// here, so elements are represented as degree-<k coefficient vectors
// over math/big rather than as generated fixed-width types.
package curve

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Field is F_{Q^K} = F_Q[x]/(x^K + x + 1).
type Field struct {
	Q *big.Int
	K int
}

// NewField constructs the field for a given base prime and extension
// degree. It does not verify that Q is prime or that x^K+x+1 is
// irreducible over F_Q — that is a property of the chosen curve
// parameters. params.CurveConfig.Validate does not check either one; it
// only checks that Q is positive.
func NewField(q *big.Int, k int) *Field {
	return &Field{Q: new(big.Int).Set(q), K: k}
}

// Elt is an element of a Field, stored as K coefficients low-degree
// first, each already reduced mod Q.
type Elt struct {
	c []*big.Int
}

// Coeffs returns the element's coefficient vector, low-degree first.
// Callers must not mutate the returned slice.
func (e Elt) Coeffs() []*big.Int { return e.c }

func (f *Field) elt(c []*big.Int) Elt {
	out := make([]*big.Int, f.K)
	for i := 0; i < f.K; i++ {
		if i < len(c) {
			out[i] = new(big.Int).Mod(c[i], f.Q)
		} else {
			out[i] = big.NewInt(0)
		}
	}
	return Elt{c: out}
}

// FromCoeffs builds a field element from up to K coefficients.
func (f *Field) FromCoeffs(c ...*big.Int) Elt { return f.elt(c) }

// FromInt builds the field element equal to the base-field integer v.
func (f *Field) FromInt(v int64) Elt { return f.elt([]*big.Int{big.NewInt(v)}) }

// FromBigInt builds the field element equal to the base-field integer v.
func (f *Field) FromBigInt(v *big.Int) Elt { return f.elt([]*big.Int{v}) }

func (f *Field) Zero() Elt { return f.elt(nil) }
func (f *Field) One() Elt  { return f.FromInt(1) }

func (f *Field) IsZero(a Elt) bool {
	for _, c := range a.c {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}

func (f *Field) Equal(a, b Elt) bool {
	for i := 0; i < f.K; i++ {
		if a.c[i].Cmp(b.c[i]) != 0 {
			return false
		}
	}
	return true
}

func (f *Field) Add(a, b Elt) Elt {
	out := make([]*big.Int, f.K)
	for i := 0; i < f.K; i++ {
		out[i] = new(big.Int).Add(a.c[i], b.c[i])
	}
	return f.elt(out)
}

func (f *Field) Sub(a, b Elt) Elt {
	out := make([]*big.Int, f.K)
	for i := 0; i < f.K; i++ {
		out[i] = new(big.Int).Sub(a.c[i], b.c[i])
	}
	return f.elt(out)
}

func (f *Field) Neg(a Elt) Elt {
	out := make([]*big.Int, f.K)
	for i := 0; i < f.K; i++ {
		out[i] = new(big.Int).Neg(a.c[i])
	}
	return f.elt(out)
}

// modulusPoly returns x^K + x + 1 as a coefficient vector of length K+1.
func (f *Field) modulusPoly() []*big.Int {
	m := make([]*big.Int, f.K+1)
	for i := range m {
		m[i] = big.NewInt(0)
	}
	m[0].SetInt64(1)
	if f.K >= 1 {
		m[1].Add(m[1], big.NewInt(1))
	}
	m[f.K].SetInt64(1)
	return m
}

// Mul multiplies two field elements, reducing the degree-(2K-2) raw
// product modulo x^K + x + 1 using the identity x^K = -x - 1.
func (f *Field) Mul(a, b Elt) Elt {
	raw := make([]*big.Int, 2*f.K-1)
	for i := range raw {
		raw[i] = big.NewInt(0)
	}
	for i, ai := range a.c {
		if ai.Sign() == 0 {
			continue
		}
		for j, bj := range b.c {
			if bj.Sign() == 0 {
				continue
			}
			raw[i+j].Add(raw[i+j], new(big.Int).Mul(ai, bj))
		}
	}
	for i := len(raw) - 1; i >= f.K; i-- {
		if raw[i].Sign() == 0 {
			continue
		}
		raw[i-f.K].Sub(raw[i-f.K], raw[i])
		raw[i-f.K+1].Sub(raw[i-f.K+1], raw[i])
		raw[i].SetInt64(0)
	}
	return f.elt(raw[:f.K])
}

// Exp computes a^e for a nonnegative exponent e via square-and-multiply.
// e may be arbitrarily large (used to implement Frobenius as a^(Q^i)).
func (f *Field) Exp(a Elt, e *big.Int) Elt {
	result := f.One()
	base := a
	for i := 0; i < e.BitLen(); i++ {
		if e.Bit(i) == 1 {
			result = f.Mul(result, base)
		}
		base = f.Mul(base, base)
	}
	return result
}

// Inv computes the multiplicative inverse of a nonzero element via the
// extended Euclidean algorithm against the fixed modulus x^K+x+1.
func (f *Field) Inv(a Elt) (Elt, error) {
	if f.IsZero(a) {
		return Elt{}, fmt.Errorf("curve: cannot invert the zero field element")
	}
	g, u, _ := polyExtGCD(f.Q, trimPoly(clonePoly(a.c)), f.modulusPoly())
	if polyDeg(g) != 0 {
		return Elt{}, fmt.Errorf("curve: element is not invertible (modulus not irreducible over F_%s?)", f.Q)
	}
	gInv := new(big.Int).ModInverse(g[0], f.Q)
	if gInv == nil {
		return Elt{}, fmt.Errorf("curve: gcd leading coefficient not invertible mod Q")
	}
	scaled := make([]*big.Int, len(u))
	for i, c := range u {
		scaled[i] = new(big.Int).Mod(new(big.Int).Mul(c, gInv), f.Q)
	}
	return f.elt(scaled), nil
}

// Order returns the field's cardinality Q^K.
func (f *Field) Order() *big.Int {
	return new(big.Int).Exp(f.Q, big.NewInt(int64(f.K)), nil)
}

// Sqrt returns a square root of a and true if one exists, using the
// Tonelli-Shanks algorithm generalized to any odd-characteristic finite
// field of order N=Q^K (it only relies on Field.Exp/Mul, never on the
// polynomial structure of the extension, so it needs no specialization
// for the x^k+x+1 modulus).
func (f *Field) Sqrt(a Elt) (Elt, bool) {
	if f.IsZero(a) {
		return f.Zero(), true
	}
	nMinus1 := new(big.Int).Sub(f.Order(), big.NewInt(1))
	half := new(big.Int).Rsh(nMinus1, 1)
	if !f.Equal(f.Exp(a, half), f.One()) {
		return Elt{}, false
	}

	s := new(big.Int).Set(nMinus1)
	e := 0
	for s.Bit(0) == 0 {
		s.Rsh(s, 1)
		e++
	}

	z := f.findNonResidue()
	c := f.Exp(z, s)
	t := f.Exp(a, s)
	sPlus1Half := new(big.Int).Rsh(new(big.Int).Add(s, big.NewInt(1)), 1)
	r := f.Exp(a, sPlus1Half)
	m := e

	for !f.Equal(t, f.One()) {
		i := 0
		tt := t
		for !f.Equal(tt, f.One()) {
			tt = f.Mul(tt, tt)
			i++
			if i >= m {
				return Elt{}, false
			}
		}
		b := f.Exp(c, new(big.Int).Lsh(big.NewInt(1), uint(m-i-1)))
		r = f.Mul(r, b)
		c = f.Mul(b, b)
		t = f.Mul(t, c)
		m = i
	}
	return r, true
}

// findNonResidue scans small base-field seeds for a quadratic
// non-residue. Used only inside Sqrt, which itself runs only on public
// candidate generators at Setup time, so determinism/variable time are
// both fine here.
func (f *Field) findNonResidue() Elt {
	half := new(big.Int).Rsh(new(big.Int).Sub(f.Order(), big.NewInt(1)), 1)
	for seed := int64(2); ; seed++ {
		cand := f.FromInt(seed)
		if f.IsZero(cand) {
			continue
		}
		if !f.Equal(f.Exp(cand, half), f.One()) {
			return cand
		}
	}
}

// RandomElt draws a uniformly random field element via crypto/rand.
func (f *Field) RandomElt() (Elt, error) {
	c := make([]*big.Int, f.K)
	for i := 0; i < f.K; i++ {
		v, err := rand.Int(rand.Reader, f.Q)
		if err != nil {
			return Elt{}, fmt.Errorf("curve: sampling field element: %w", err)
		}
		c[i] = v
	}
	return f.elt(c), nil
}
