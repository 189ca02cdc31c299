// Package signer implements Components G (signer) and the linkable
// verifier of spec.md 4.G, wiring user keygen, ciphertext construction,
// and the ring NIZK of the ringnizk package into one signing/verifying
// surface.
package signer

import (
	"crypto/sha256"
	"math/big"

	"github.com/tarsring/tars/curve"
	"github.com/tarsring/tars/fixedbase"
	"github.com/tarsring/tars/internal/xerrors"
	"github.com/tarsring/tars/ringnizk"
)

// User is a signer's key material: sk, its g2-derived public key pk,
// and its ring pseudonym pid = sk*g1, per the source's key-record shape
// (user_id/sk/pk/pid).
type User struct {
	SK  curve.Scalar
	PK  curve.Point
	Pid curve.Point
}

// UserKeygen implements spec.md 6's user_keygen: sample sk, derive
// pk = sk*g2 and pid = sk*g1.
func UserKeygen(ring *curve.ScalarRing, g1Table, g2Table *fixedbase.Table) (*User, error) {
	sk, err := ring.Random()
	if err != nil {
		return nil, err
	}
	pk, err := g2Table.Multiply(sk.Int())
	if err != nil {
		return nil, err
	}
	pid, err := g1Table.Multiply(sk.Int())
	if err != nil {
		return nil, err
	}
	return &User{SK: sk, PK: pk, Pid: pid}, nil
}

// Ciphertext is the (C1, C2, T) triple attached to every ring
// signature: C1, C2 are an ElGamal-style encryption of the signer's
// pid under the tracer public key Q, and T is the event-linkage tag.
type Ciphertext struct {
	C1, C2, T curve.Point
}

// EventHash computes H_event = SHA-256(ev) as an unreduced big-endian
// integer, per spec.md 4.G step 1 and the design note in spec.md 9
// (Open Question 4): the 256-bit digest is used directly as a scalar
// multiplication exponent without reduction mod n.
func EventHash(event string) *big.Int {
	digest := sha256.Sum256([]byte(event))
	return new(big.Int).SetBytes(digest[:])
}

// Sign implements spec.md 4.G: builds the ciphertext and the ring NIZK
// proving knowledge of (sk, k) for the signer's position in ring.
func Sign(ring *curve.ScalarRing, ec *curve.Curve, g1Table, qTable *fixedbase.Table, r *ringnizk.Ring, u *User, message []byte, event string) (Ciphertext, *ringnizk.Proof, error) {
	idx := r.IndexOf(u.Pid)
	if idx == 0 {
		return Ciphertext{}, nil, xerrors.New(xerrors.SignerNotInRing, "signer's pid is not a member of the declared ring")
	}

	k, err := ring.Random()
	if err != nil {
		return Ciphertext{}, nil, err
	}
	c1, err := g1Table.Multiply(k.Int())
	if err != nil {
		return Ciphertext{}, nil, err
	}
	qk, err := qTable.Multiply(k.Int())
	if err != nil {
		return Ciphertext{}, nil, err
	}
	c2 := ec.Add(u.Pid, qk)
	t, err := g1Table.Multiply(EventHash(event))
	if err != nil {
		return Ciphertext{}, nil, err
	}

	proof, err := ringnizk.Prove(ring, ec, g1Table, qTable, r, idx, u.SK, k, message, c2)
	if err != nil {
		return Ciphertext{}, nil, err
	}
	return Ciphertext{C1: c1, C2: c2, T: t}, proof, nil
}

// Verify implements spec.md 6's verify: checks the event-linkage tag T
// against the declared event before delegating to the ring NIZK
// verifier, per spec.md 4.F step 5. It never returns an error.
func Verify(ring *curve.ScalarRing, ec *curve.Curve, g1Table, qTable *fixedbase.Table, r *ringnizk.Ring, message []byte, event string, ct Ciphertext, proof *ringnizk.Proof) bool {
	expectedT, err := g1Table.Multiply(EventHash(event))
	if err != nil {
		return false
	}
	if !ec.Equal(expectedT, ct.T) {
		return false
	}
	return ringnizk.Verify(ring, ec, g1Table, qTable, r, message, ct.C2, proof)
}

// Link implements spec.md 6's link: it reports whether the T components
// of two ciphertexts are equal. T = H_event*g1 depends only on the event
// tag, so any two signatures under the same event link, whichever ring
// members produced them.
func Link(ec *curve.Curve, a, b Ciphertext) bool {
	return ec.Equal(a.T, b.T)
}
