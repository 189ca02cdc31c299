// Package schnorr implements Component E of the TARS crypto engine: the
// base Schnorr proof of knowledge of a discrete log, its batch
// verifier, and a Chaum-Pedersen discrete-log-equality variant used by
// the tracer package to close the binding gap spec.md 9 (Open Question
// 2) flags in the source's partial-decryption proof.
package schnorr

import (
	"math/big"

	"github.com/tarsring/tars/curve"
	"github.com/tarsring/tars/fixedbase"
)

// Proof is a Schnorr proof of knowledge of d such that D = d*base, per
// spec.md 4.E.
type Proof struct {
	T curve.Point
	Z curve.Scalar
}

// Prove implements spec.md 4.E: sample r, commit T = r*base, challenge
// c = HashToScalar(T), response z = r + d*c.
func Prove(ring *curve.ScalarRing, base *fixedbase.Table, d curve.Scalar) (Proof, error) {
	r, err := ring.Random()
	if err != nil {
		return Proof{}, err
	}
	t, err := base.Multiply(r.Int())
	if err != nil {
		return Proof{}, err
	}
	c, err := ring.HashToScalar(curve.EPoint{P: t})
	if err != nil {
		return Proof{}, err
	}
	z := ring.Add(r, ring.Mul(d, c))
	return Proof{T: t, Z: z}, nil
}

// Verify checks z*base == T + c*D where c = HashToScalar(T).
func Verify(ring *curve.ScalarRing, ec *curve.Curve, base *fixedbase.Table, d curve.Point, p Proof) bool {
	c, err := ring.HashToScalar(curve.EPoint{P: p.T})
	if err != nil {
		return false
	}
	lhs, err := base.Multiply(p.Z.Int())
	if err != nil {
		return false
	}
	rhs := ec.Add(p.T, ec.ScalarMul(d, c.Int()))
	return ec.Equal(lhs, rhs)
}

// BatchVerify checks (sum z_i)*base == sum (T_i + c_i*D_i), per spec.md
// 4.E. Soundness holds because each c_i is an independent Fiat-Shamir
// hash of its own T_i.
func BatchVerify(ring *curve.ScalarRing, ec *curve.Curve, base *fixedbase.Table, ds []curve.Point, proofs []Proof) bool {
	if len(ds) != len(proofs) {
		return false
	}
	zSum := ring.Zero()
	rightSum := ec.Infinity()
	for i, p := range proofs {
		c, err := ring.HashToScalar(curve.EPoint{P: p.T})
		if err != nil {
			return false
		}
		zSum = ring.Add(zSum, p.Z)
		rightSum = ec.Add(rightSum, ec.Add(p.T, ec.ScalarMul(ds[i], c.Int())))
	}
	lhs, err := base.Multiply(zSum.Int())
	if err != nil {
		return false
	}
	return ec.Equal(lhs, rightSum)
}

// EqualityProof is a Chaum-Pedersen proof that D = d*g1 and S = d*C1
// share the same discrete log d, binding a tracer's partial decryption
// to its proof of knowledge (spec.md 9, Open Question 2: "a safer
// variant binds both... it is a one-line change to the challenge
// computation").
type EqualityProof struct {
	T1, T2 curve.Point
	Z      curve.Scalar
}

// ProveEquality proves knowledge of d with D = d*g1Table.Base() and
// S = d*c1Table.Base(), binding the Fiat-Shamir challenge to extra
// transcript fields (e.g. the ciphertext's T component and D itself, per
// spec.md 9 Open Question 3) so the proof cannot be replayed against a
// different (C1, D) pair.
func ProveEquality(ring *curve.ScalarRing, g1Table, c1Table *fixedbase.Table, d curve.Scalar, bind ...[]byte) (EqualityProof, error) {
	r, err := ring.Random()
	if err != nil {
		return EqualityProof{}, err
	}
	t1, err := g1Table.Multiply(r.Int())
	if err != nil {
		return EqualityProof{}, err
	}
	t2, err := c1Table.Multiply(r.Int())
	if err != nil {
		return EqualityProof{}, err
	}
	c, err := equalityChallenge(ring, t1, t2, bind...)
	if err != nil {
		return EqualityProof{}, err
	}
	z := ring.Add(r, ring.Mul(d, c))
	return EqualityProof{T1: t1, T2: t2, Z: z}, nil
}

// VerifyEquality checks the proof produced by ProveEquality against
// public points D (= d*g1) and S (= d*C1).
func VerifyEquality(ring *curve.ScalarRing, ec *curve.Curve, g1Table, c1Table *fixedbase.Table, d, s curve.Point, p EqualityProof, bind ...[]byte) bool {
	c, err := equalityChallenge(ring, p.T1, p.T2, bind...)
	if err != nil {
		return false
	}
	lhs1, err := g1Table.Multiply(p.Z.Int())
	if err != nil {
		return false
	}
	rhs1 := ec.Add(p.T1, ec.ScalarMul(d, c.Int()))
	if !ec.Equal(lhs1, rhs1) {
		return false
	}
	lhs2, err := c1Table.Multiply(p.Z.Int())
	if err != nil {
		return false
	}
	rhs2 := ec.Add(p.T2, ec.ScalarMul(s, c.Int()))
	return ec.Equal(lhs2, rhs2)
}

func equalityChallenge(ring *curve.ScalarRing, t1, t2 curve.Point, bind ...[]byte) (curve.Scalar, error) {
	e1, err := curve.EncodeForHash(curve.EPoint{P: t1})
	if err != nil {
		return curve.Scalar{}, err
	}
	e2, err := curve.EncodeForHash(curve.EPoint{P: t2})
	if err != nil {
		return curve.Scalar{}, err
	}
	fields := append([][]byte{e1, e2}, bind...)
	digest := curve.DomainSeparatedHash("tars/schnorr/equality", fields...)
	return ring.FromBigInt(new(big.Int).SetBytes(digest)), nil
}
