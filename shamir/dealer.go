// Package shamir implements Component D of the TARS crypto engine: the
// dealer that splits the master secret s into n_tracers Shamir shares
// under threshold t, per spec.md 4.D, and owns s's lifecycle (spec.md 3:
// "Destroyed after share distribution in production use").
package shamir

import (
	"github.com/tarsring/tars/curve"
	"github.com/tarsring/tars/fixedbase"
)

// Share is one tracer's key material: (i, x_i, d_i, D_i) from spec.md 3.
type Share struct {
	TracerID int         `json:"tracer_id"`
	X        curve.Scalar `json:"x_i"`
	D        curve.Scalar `json:"d_share"`
	PubShare curve.Point  `json:"pub_share"`
}

// Dealer owns the master secret until shares are issued, then seals it.
// Modeled on the source's KGC entity (original_source/core/entities/
// kgc.py), which bundles master-key generation and tracer-share
// issuance behind one object rather than passing the bare secret s
// around as a return value a caller could forget to destroy.
type Dealer struct {
	ring    *curve.ScalarRing
	g1Table *fixedbase.Table
	s       curve.Scalar
	t, m    int
	sealed  bool
}

// NewDealer wraps a freshly generated master secret s, ready to issue
// threshold-t shares to m tracers.
func NewDealer(ring *curve.ScalarRing, g1Table *fixedbase.Table, s curve.Scalar, t, m int) *Dealer {
	return &Dealer{ring: ring, g1Table: g1Table, s: s, t: t, m: m}
}

// Sealed reports whether the master secret has already been destroyed.
func (d *Dealer) Sealed() bool { return d.sealed }

// GenShares implements spec.md 4.D: samples t-1 random polynomial
// coefficients over s, evaluates the resulting degree-(t-1) polynomial
// at x_i = 1..m, and returns the m shares. It then seals the dealer,
// which drops the dealer's reference to s; the memory holding s is not
// overwritten (see seal).
func (d *Dealer) GenShares() ([]Share, error) {
	coeffs := make([]curve.Scalar, d.t)
	coeffs[0] = d.s
	for j := 1; j < d.t; j++ {
		r, err := d.ring.Random()
		if err != nil {
			return nil, err
		}
		coeffs[j] = r
	}

	shares := make([]Share, d.m)
	for i := 1; i <= d.m; i++ {
		x := d.ring.FromInt64(int64(i))
		di := d.ring.EvalPoly(coeffs, x)
		pub, err := d.g1Table.Multiply(di.Int())
		if err != nil {
			return nil, err
		}
		shares[i-1] = Share{TracerID: i, X: x, D: di, PubShare: pub}
	}

	d.seal()
	return shares, nil
}

// seal destroys the dealer's copy of s and the sampled polynomial by
// dropping the only reference to them; Go has no secure-wipe guarantee
// for big.Int-backed values, so this documents intent rather than
// physically zeroizing memory (the same limitation the source has, see
// spec.md 9's open question about s's lifecycle).
func (d *Dealer) seal() {
	d.s = curve.Scalar{}
	d.sealed = true
}

// PublicShare renders the tracer-facing half of a Share, mirroring the
// source's split between a tracer's private key file (tracer_id, x_i,
// d_share, pub_share) and its public record (tracer_id, x_i, pub_share
// only) in original_source/core/entities/kgc.py's save_tracer_keys.
type PublicShare struct {
	TracerID int          `json:"tracer_id"`
	X        curve.Scalar `json:"x_i"`
	PubShare curve.Point  `json:"pub_share"`
}

// Public strips the secret share value, returning only what a verifier
// combining partial decryptions needs to check a tracer's Schnorr proof
// against.
func (s Share) Public() PublicShare {
	return PublicShare{TracerID: s.TracerID, X: s.X, PubShare: s.PubShare}
}

// Tracer ids are assigned starting at 1, never 0: Lagrange recombination
// evaluates the polynomial at x=0, so no share's x_i may coincide with
// that point.
