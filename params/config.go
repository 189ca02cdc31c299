// Package params implements Component C of the TARS crypto engine: the
// bilinear-group parameter and trace generator that derives the public
// parameters PP (g1, g2, Q and their fixed-base tables) from a curve
// configuration, per spec.md 4.C.
package params

import (
	"fmt"
	"math/big"
)

// CurveConfig holds the curve and protocol constants of spec.md 3's
// Public Parameters data model: (q, a, b, n, r, k), the threshold t and
// tracer count m, plus the curve's group cofactor.
//
// Computing #E(F_{q^k}) at runtime (Schoof/SEA) is out of scope for this
// engine — the source offloads it entirely to Sage's built-in
// EllipticCurve.order(). CurveConfig instead takes the cofactor as an
// already-known parameter, exactly as the source's own params.json pins
// q,a,b,n,r,k as mutually consistent values chosen once, out of band,
// when the curve was selected.
type CurveConfig struct {
	Q         *big.Int `json:"q"`
	A         *big.Int `json:"a"`
	B         *big.Int `json:"b"`
	N         *big.Int `json:"n"`
	R         *big.Int `json:"r"`
	K         int      `json:"k"`
	Cofactor  *big.Int `json:"cofactor"`
	Threshold int      `json:"threshold"`
	NumTracers int     `json:"num_tracers"`
}

// Validate checks the structural invariants spec.md assumes of a curve
// configuration before Setup ever samples a point.
func (c *CurveConfig) Validate() error {
	if c.Q == nil || c.Q.Sign() <= 0 {
		return fmt.Errorf("params: q must be a positive prime")
	}
	if c.N == nil || c.N.Sign() <= 0 {
		return fmt.Errorf("params: n must be positive")
	}
	if c.R == nil || c.R.Sign() <= 0 {
		return fmt.Errorf("params: r must be positive")
	}
	if c.K < 1 {
		return fmt.Errorf("params: k must be >= 1")
	}
	if c.Cofactor == nil || c.Cofactor.Sign() <= 0 {
		return fmt.Errorf("params: cofactor must be positive")
	}
	if c.Threshold < 1 || c.NumTracers < 1 || c.Threshold > c.NumTracers {
		return fmt.Errorf("params: need 1 <= threshold <= num_tracers, got t=%d m=%d", c.Threshold, c.NumTracers)
	}
	if c.A == nil || c.B == nil {
		return fmt.Errorf("params: curve coefficients a, b must be set")
	}
	return nil
}

// The struct tags above are sufficient for encoding; big.Int already
// implements json.Marshaler/Unmarshaler (as JSON numbers), so no custom
// method is needed here — matching spec.md 6's description of
// curve/protocol params without any file-persistence behavior attached
// (that stays explicitly out of scope).
