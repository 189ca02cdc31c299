package curve

import (
	"fmt"
	"math/big"
)

// Pairing evaluates the Weil pairing e(P, Q) of order r via two Miller
// loops, e(P,Q) = (-1)^r * f_{r,P}(Q) / f_{r,Q}(P). It is carried for
// extensibility (spec: "not used by sign/verify/trace") and is only
// correct on the generic, non-degenerate case where P, Q, and P-Q are
// all distinct and nonzero; callers needing the pairing on adversarial
// or degenerate input should consult a general-purpose pairing library
// instead of this reference implementation.
func (c *Curve) Pairing(p, q Point, r *big.Int) (Elt, error) {
	if p.Inf || q.Inf {
		return Elt{}, fmt.Errorf("curve: pairing is undefined at infinity")
	}
	if c.Equal(p, q) || c.Equal(p, c.Neg(q)) {
		return Elt{}, fmt.Errorf("curve: reference Weil pairing requires P, Q, -Q pairwise distinct")
	}
	fPQ, err := c.millerLoop(p, r, q)
	if err != nil {
		return Elt{}, err
	}
	fQP, err := c.millerLoop(q, r, p)
	if err != nil {
		return Elt{}, err
	}
	fQPInv, err := c.F.Inv(fQP)
	if err != nil {
		return Elt{}, fmt.Errorf("curve: pairing denominator vanished: %w", err)
	}
	ratio := c.F.Mul(fPQ, fQPInv)
	if r.Bit(0) == 1 {
		ratio = c.F.Neg(ratio)
	}
	return ratio, nil
}

// millerLoop evaluates f_{n,base}(at), the Miller function of base with
// divisor of order n, at the point `at`.
func (c *Curve) millerLoop(base Point, n *big.Int, at Point) (Elt, error) {
	f := c.F
	result := f.One()
	t := base
	for i := n.BitLen() - 2; i >= 0; i-- {
		line, err := c.lineEval(t, t, at)
		if err != nil {
			return Elt{}, err
		}
		result = f.Mul(f.Mul(result, result), line)
		t = c.Double(t)
		if n.Bit(i) == 1 {
			line, err := c.lineEval(t, base, at)
			if err != nil {
				return Elt{}, err
			}
			result = f.Mul(result, line)
			t = c.Add(t, base)
		}
	}
	return result, nil
}

// lineEval evaluates, at point `at`, the line through a and b (the
// tangent at a when a==b), the standard ingredient of Miller's
// algorithm.
func (c *Curve) lineEval(a, b, at Point) (Elt, error) {
	f := c.F
	if a.Inf || b.Inf {
		return f.One(), nil
	}
	if f.Equal(a.X, b.X) && !f.Equal(a.Y, b.Y) {
		// vertical line x = a.X
		return f.Sub(at.X, a.X), nil
	}
	var lambda Elt
	if f.Equal(a.X, b.X) && f.Equal(a.Y, b.Y) {
		if f.IsZero(a.Y) {
			return f.Sub(at.X, a.X), nil
		}
		num := f.Add(f.Mul(f.FromInt(3), f.Mul(a.X, a.X)), c.A)
		den := f.Mul(f.FromInt(2), a.Y)
		denInv, err := f.Inv(den)
		if err != nil {
			return Elt{}, err
		}
		lambda = f.Mul(num, denInv)
	} else {
		num := f.Sub(b.Y, a.Y)
		den := f.Sub(b.X, a.X)
		denInv, err := f.Inv(den)
		if err != nil {
			return Elt{}, err
		}
		lambda = f.Mul(num, denInv)
	}
	return f.Sub(f.Sub(at.Y, a.Y), f.Mul(lambda, f.Sub(at.X, a.X))), nil
}
