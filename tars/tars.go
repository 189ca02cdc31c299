// Package tars is the facade of the TARS crypto engine: it wires
// params, shamir, ringnizk, signer, and tracer into the external
// interface spec.md 6 names (setup, issue_shares, user_keygen, sign,
// verify, link, partial_decrypt, combine).
package tars

import (
	"github.com/tarsring/tars/curve"
	"github.com/tarsring/tars/params"
	"github.com/tarsring/tars/ringnizk"
	"github.com/tarsring/tars/schnorr"
	"github.com/tarsring/tars/shamir"
	"github.com/tarsring/tars/signer"
	"github.com/tarsring/tars/tracer"
)

// Re-exported so callers of this package don't need to reach into the
// component packages for the handful of types they exchange with it.
type (
	PP                 = params.PP
	CurveConfig        = params.CurveConfig
	Dealer             = shamir.Dealer
	Share              = shamir.Share
	PublicShare        = shamir.PublicShare
	Ring               = ringnizk.Ring
	RingProof          = ringnizk.Proof
	User               = signer.User
	Ciphertext         = signer.Ciphertext
	PartialDecryption  = tracer.PartialDecryption
	EqualityProof      = schnorr.EqualityProof
	Option             = params.Option
)

// Setup implements spec.md 6's setup: derives PP and a dealer holding
// the master secret, ready to issue tracer shares (it seals itself once
// it has issued them).
func Setup(cfg CurveConfig, opts ...Option) (*PP, *Dealer, error) {
	return params.Setup(cfg, opts...)
}

// IssueShares implements spec.md 6's issue_shares by delegating to the
// dealer Setup already produced.
func IssueShares(dealer *Dealer) ([]Share, error) {
	return dealer.GenShares()
}

// NewRing implements ring construction ahead of sign/verify, rejecting
// duplicate pids per spec.md 4.F.
func NewRing(pp *PP, pids []curve.Point) (*Ring, error) {
	return ringnizk.NewRing(pp.Curve, pids)
}

// UserKeygen implements spec.md 6's user_keygen.
func UserKeygen(pp *PP) (*User, error) {
	return signer.UserKeygen(pp.Ring, pp.G1Table, pp.G2Table)
}

// Sign implements spec.md 6's sign.
func Sign(pp *PP, u *User, ring *Ring, message []byte, event string) (Ciphertext, *RingProof, error) {
	return signer.Sign(pp.Ring, pp.Curve, pp.G1Table, pp.QTable, ring, u, message, event)
}

// Verify implements spec.md 6's verify. It never returns an error:
// malformed or invalid proofs simply verify to false.
func Verify(pp *PP, ring *Ring, message []byte, event string, ct Ciphertext, proof *RingProof) bool {
	return signer.Verify(pp.Ring, pp.Curve, pp.G1Table, pp.QTable, ring, message, event, ct, proof)
}

// Link implements spec.md 6's link.
func Link(pp *PP, a, b Ciphertext) bool {
	return signer.Link(pp.Curve, a, b)
}

// PartialDecrypt implements spec.md 6's partial_decrypt.
func PartialDecrypt(pp *PP, share Share, ct Ciphertext) (PartialDecryption, error) {
	return tracer.PartialDecrypt(pp.Ring, pp.Curve, pp.G1Table, share, ct)
}

// Combine implements spec.md 6's combine: reconstructs the signer's pid
// from at least `threshold` partial decryptions.
func Combine(pp *PP, threshold int, shares []PublicShare, decs []PartialDecryption, ct Ciphertext) (curve.Point, error) {
	return tracer.Combine(pp.Ring, pp.Curve, pp.G1Table, threshold, shares, decs, ct)
}
