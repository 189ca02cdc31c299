package curve

import "math/big"

// Frobenius computes phi_i(P) = (x^(Q^i), y^(Q^i)), the i-th power of
// the Frobenius endomorphism of F_{Q^K}/F_Q applied coordinate-wise.
// i=0 is the identity map.
func (c *Curve) Frobenius(p Point, i int) Point {
	if p.Inf || i == 0 {
		return p
	}
	qi := new(big.Int).Exp(c.F.Q, big.NewInt(int64(i)), nil)
	return Point{X: c.F.Exp(p.X, qi), Y: c.F.Exp(p.Y, qi)}
}

// Trace computes Sum_{i=0}^{K-1} phi_i(P), projecting a generic curve
// point into the trace-zero-adjacent subgroup used to derive g1.
func (c *Curve) Trace(p Point) Point {
	result := p
	for i := 1; i < c.F.K; i++ {
		result = c.Add(result, c.Frobenius(p, i))
	}
	return result
}
