package curve

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Point is an affine point on E: y^2 = x^3 + ax + b over F_{q^k}.
// Infinity is the distinguished identity; when Inf is true, X and Y are
// not meaningful and must not be read.
type Point struct {
	X, Y Point_coord
	Inf  bool
}

// Point_coord is a field element: a plain alias of Elt, naming the type
// of a point's coordinates.
type Point_coord = Elt

// Curve is E: y^2 = x^3 + ax + b over a Field.
type Curve struct {
	F    *Field
	A, B Elt
}

// NewCurve builds the curve y^2 = x^3 + ax + b over f, embedding the
// base-field integers a, b into F.
func NewCurve(f *Field, a, b *big.Int) *Curve {
	return &Curve{F: f, A: f.FromBigInt(a), B: f.FromBigInt(b)}
}

// Infinity returns the group identity.
func (c *Curve) Infinity() Point { return Point{Inf: true} }

func (c *Curve) Equal(p, q Point) bool {
	if p.Inf || q.Inf {
		return p.Inf == q.Inf
	}
	return c.F.Equal(p.X, q.X) && c.F.Equal(p.Y, q.Y)
}

// IsOnCurve checks y^2 == x^3+ax+b. Infinity is always on curve.
func (c *Curve) IsOnCurve(p Point) bool {
	if p.Inf {
		return true
	}
	f := c.F
	lhs := f.Mul(p.Y, p.Y)
	x2 := f.Mul(p.X, p.X)
	x3 := f.Mul(x2, p.X)
	rhs := f.Add(x3, f.Add(f.Mul(c.A, p.X), c.B))
	return f.Equal(lhs, rhs)
}

func (c *Curve) Neg(p Point) Point {
	if p.Inf {
		return p
	}
	return Point{X: p.X, Y: c.F.Neg(p.Y)}
}

// Double computes 2P.
func (c *Curve) Double(p Point) Point {
	if p.Inf || c.F.IsZero(p.Y) {
		return c.Infinity()
	}
	f := c.F
	num := f.Add(f.Mul(f.FromInt(3), f.Mul(p.X, p.X)), c.A)
	den := f.Mul(f.FromInt(2), p.Y)
	denInv, err := f.Inv(den)
	if err != nil {
		return c.Infinity()
	}
	lambda := f.Mul(num, denInv)
	x3 := f.Sub(f.Mul(lambda, lambda), f.Mul(f.FromInt(2), p.X))
	y3 := f.Sub(f.Mul(lambda, f.Sub(p.X, x3)), p.Y)
	return Point{X: x3, Y: y3}
}

// Add computes P+Q (complete enough for the affine cases TARS needs:
// either operand infinite, equal x with opposite y, doubling, or the
// generic chord case).
func (c *Curve) Add(p, q Point) Point {
	if p.Inf {
		return q
	}
	if q.Inf {
		return p
	}
	f := c.F
	if f.Equal(p.X, q.X) {
		if f.Equal(p.Y, q.Y) {
			return c.Double(p)
		}
		return c.Infinity()
	}
	num := f.Sub(q.Y, p.Y)
	den := f.Sub(q.X, p.X)
	denInv, err := f.Inv(den)
	if err != nil {
		return c.Infinity()
	}
	lambda := f.Mul(num, denInv)
	x3 := f.Sub(f.Sub(f.Mul(lambda, lambda), p.X), q.X)
	y3 := f.Sub(f.Mul(lambda, f.Sub(p.X, x3)), p.Y)
	return Point{X: x3, Y: y3}
}

// Sub computes P-Q.
func (c *Curve) Sub(p, q Point) Point {
	return c.Add(p, c.Neg(q))
}

// ScalarMul computes k*P by variable-time double-and-add. Used for
// public, non-fixed bases (g, candidate generators during Setup) and
// for Setup's one-time Q = s*g1, which multiplies the master secret;
// the other fixed-base, potentially-secret-scalar multiplications go
// through fixedbase.Table instead.
func (c *Curve) ScalarMul(p Point, k *big.Int) Point {
	if k.Sign() == 0 || p.Inf {
		return c.Infinity()
	}
	if k.Sign() < 0 {
		return c.ScalarMul(c.Neg(p), new(big.Int).Neg(k))
	}
	result := c.Infinity()
	addend := p
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			result = c.Add(result, addend)
		}
		addend = c.Double(addend)
	}
	return result
}

// RandomPoint samples a uniformly random point on the curve by
// rejection sampling over x-coordinates, using Field.Sqrt to test
// whether x^3+ax+b is a square.
func (c *Curve) RandomPoint() (Point, error) {
	f := c.F
	for attempts := 0; attempts < 10000; attempts++ {
		x, err := f.RandomElt()
		if err != nil {
			return Point{}, err
		}
		x2 := f.Mul(x, x)
		rhs := f.Add(f.Mul(x2, x), f.Add(f.Mul(c.A, x), c.B))
		y, ok := f.Sqrt(rhs)
		if !ok {
			continue
		}
		if coinFlip() {
			y = f.Neg(y)
		}
		return Point{X: x, Y: y}, nil
	}
	return Point{}, fmt.Errorf("curve: failed to sample a random point after many attempts")
}

func coinFlip() bool {
	b := make([]byte, 1)
	_, _ = rand.Read(b)
	return b[0]&1 == 1
}
