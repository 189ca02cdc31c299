// Package tracer implements Component H of the TARS crypto engine:
// threshold partial decryption and Lagrange recombination of a ring
// signature's signer pid, per spec.md 4.H — with both corrections
// spec.md 9 flags applied rather than reproduced as bugs:
//
//  1. Combine's Lagrange numerator is accumulated via repeated
//     multiplication over j != i, not overwritten.
//  2. Each tracer's proof of knowledge binds the discrete-log equality
//     of (D_i, s_i) under bases (g1, C1), not D_i alone, closing the
//     substitution gap spec.md 9's Open Question 2 describes.
package tracer

import (
	"math/big"

	"github.com/tarsring/tars/curve"
	"github.com/tarsring/tars/fixedbase"
	"github.com/tarsring/tars/internal/xerrors"
	"github.com/tarsring/tars/schnorr"
	"github.com/tarsring/tars/shamir"
	"github.com/tarsring/tars/signer"
)

// PartialDecryption is one tracer's contribution to a Combine call:
// its index, its partial decryption s_i = d_i*C1, and a proof binding
// s_i and D_i to the same discrete log d_i.
type PartialDecryption struct {
	X     curve.Scalar
	S     curve.Point
	Proof schnorr.EqualityProof
}

// bindFields assembles the extra transcript fields spec.md 9's Open
// Question 3 calls for: binding the tracer's proof to (T, C1, D_i), not
// T alone.
func bindFields(ct signer.Ciphertext, d curve.Point) ([][]byte, error) {
	tEnc, err := curve.EncodeForHash(curve.EPoint{P: ct.T})
	if err != nil {
		return nil, err
	}
	c1Enc, err := curve.EncodeForHash(curve.EPoint{P: ct.C1})
	if err != nil {
		return nil, err
	}
	dEnc, err := curve.EncodeForHash(curve.EPoint{P: d})
	if err != nil {
		return nil, err
	}
	return [][]byte{tEnc, c1Enc, dEnc}, nil
}

// PartialDecrypt implements spec.md 4.H's PartialDecrypt: computes
// s_i = d_i*C1 and a proof of knowledge of d_i binding both D_i (the
// share's public commitment) and s_i to the ciphertext.
func PartialDecrypt(ring *curve.ScalarRing, ec *curve.Curve, g1Table *fixedbase.Table, share shamir.Share, ct signer.Ciphertext) (PartialDecryption, error) {
	c1Table := fixedbase.Build(ec, ct.C1, fixedbase.DefaultWindow, fixedbase.DefaultMaxBits)
	s, err := c1Table.Multiply(share.D.Int())
	if err != nil {
		return PartialDecryption{}, err
	}
	bind, err := bindFields(ct, share.PubShare)
	if err != nil {
		return PartialDecryption{}, err
	}
	proof, err := schnorr.ProveEquality(ring, g1Table, c1Table, share.D, bind...)
	if err != nil {
		return PartialDecryption{}, err
	}
	return PartialDecryption{X: share.X, S: s, Proof: proof}, nil
}

// Combine implements spec.md 4.H's Combine: verifies every tracer's
// equality proof, then reconstructs pid = C2 - S via Lagrange
// recombination at 0.
func Combine(ring *curve.ScalarRing, ec *curve.Curve, g1Table *fixedbase.Table, threshold int, shares []shamir.PublicShare, decs []PartialDecryption, ct signer.Ciphertext) (curve.Point, error) {
	if len(decs) < threshold {
		return curve.Point{}, xerrors.New(xerrors.TooFewShares, "fewer than threshold partial decryptions supplied")
	}
	if len(decs) != len(shares) {
		return curve.Point{}, xerrors.New(xerrors.InvalidParams, "shares and partial decryptions must correspond 1:1")
	}

	for i, dec := range decs {
		c1Table := fixedbase.Build(ec, ct.C1, fixedbase.DefaultWindow, fixedbase.DefaultMaxBits)
		bind, err := bindFields(ct, shares[i].PubShare)
		if err != nil {
			return curve.Point{}, err
		}
		if !schnorr.VerifyEquality(ring, ec, g1Table, c1Table, shares[i].PubShare, dec.S, dec.Proof, bind...) {
			return curve.Point{}, xerrors.New(xerrors.TraceProofInvalid, "tracer equality proof failed verification")
		}
	}

	n := ring.N()
	s := ec.Infinity()
	for i := range decs {
		lambda := lagrangeCoefficientAtZero(n, decs, i)
		contribution := ec.ScalarMul(decs[i].S, lambda)
		s = ec.Add(s, contribution)
	}
	return ec.Sub(ct.C2, s), nil
}

// lagrangeCoefficientAtZero computes lambda_i = prod_{j!=i} (-x_j) *
// (x_i - x_j)^-1 mod n. The numerator MUST accumulate the product over
// every j != i; spec.md 9 (Open Question 1) flags a version of this
// routine in the source that instead overwrites the accumulator on each
// iteration, silently discarding all but the last factor.
func lagrangeCoefficientAtZero(n *big.Int, decs []PartialDecryption, i int) *big.Int {
	xi := decs[i].X.Int()
	numerator := big.NewInt(1)
	denominator := big.NewInt(1)
	for j := range decs {
		if j == i {
			continue
		}
		xj := decs[j].X.Int()
		numerator.Mul(numerator, new(big.Int).Mod(new(big.Int).Neg(xj), n))
		numerator.Mod(numerator, n)
		diff := new(big.Int).Mod(new(big.Int).Sub(xi, xj), n)
		denominator.Mul(denominator, diff)
		denominator.Mod(denominator, n)
	}
	denInv := new(big.Int).ModInverse(denominator, n)
	return new(big.Int).Mod(new(big.Int).Mul(numerator, denInv), n)
}
