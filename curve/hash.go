package curve

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	mimcNative "github.com/consensys/gnark-crypto/ecc/bw6-761/fr/mimc"
	"golang.org/x/crypto/sha3"
)

// coeffWidth is the fixed per-coefficient byte width used by the
// canonical point encoding (spec.md 4.A): "each coefficient as a
// 32-byte big-endian integer."
const coeffWidth = 32

// Encodable is the closed set of inputs HashToScalar accepts, replacing
// the source's runtime type dispatch (isinstance checks on tuple,
// EllipticCurvePoint, bytes, "other") with a compile-time-checked union.
type Encodable interface {
	encodeForHash() ([]byte, error)
}

// EPoint wraps a Point for hashing. The infinity point must never be
// wrapped (spec.md 4.A: "the infinity point must never be hashed
// (caller's responsibility)") — encodeForHash returns an error instead
// of silently hashing garbage coordinates.
type EPoint struct{ P Point }

// EBytes is a raw byte string, hashed as itself.
type EBytes []byte

// ETuple is an ordered sequence of Encodable values, concatenated in
// order.
type ETuple []Encodable

// EOther covers any value whose canonical form is the UTF-8 encoding of
// its decimal representation (spec.md: "Other -> UTF-8 of its canonical
// decimal representation"). EInt and EString cover integers and
// strings; the protocol code in this module hashes messages as EBytes
// and points as EPoint.
type EOther struct{ V fmt.Stringer }

// EString is a UTF-8 string, hashed as itself (falls under "byte
// string" once encoded).
type EString string

// EInt is an integer hashed via its canonical decimal representation.
type EInt struct{ V *big.Int }

func (e EPoint) encodeForHash() ([]byte, error) {
	if e.P.Inf {
		return nil, fmt.Errorf("curve: refusing to hash the infinity point")
	}
	var out []byte
	for _, coord := range [][]*big.Int{e.P.X.Coeffs(), e.P.Y.Coeffs()} {
		for _, c := range coord {
			out = append(out, encodeFieldCoeff(c)...)
		}
	}
	return out, nil
}

func encodeFieldCoeff(c *big.Int) []byte {
	b := c.Bytes()
	if len(b) > coeffWidth {
		// Should not happen for any curve whose base field fits in
		// coeffWidth bytes; truncation would silently corrupt the
		// transcript, so surface it loudly instead.
		panic(fmt.Sprintf("curve: field coefficient %s exceeds %d-byte canonical width", c, coeffWidth))
	}
	out := make([]byte, coeffWidth)
	copy(out[coeffWidth-len(b):], b)
	return out
}

func (e EBytes) encodeForHash() ([]byte, error) { return []byte(e), nil }
func (e EString) encodeForHash() ([]byte, error) { return []byte(e), nil }
func (e EInt) encodeForHash() ([]byte, error)    { return []byte(e.V.String()), nil }
func (e EOther) encodeForHash() ([]byte, error)  { return []byte(e.V.String()), nil }

func (e ETuple) encodeForHash() ([]byte, error) {
	var out []byte
	for _, item := range e {
		b, err := item.encodeForHash()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// EncodeForHash exposes an Encodable's canonical byte encoding to other
// packages (e.g. schnorr's equality-proof transcript), without widening
// the Encodable interface itself beyond HashToScalar's use.
func EncodeForHash(x Encodable) ([]byte, error) { return x.encodeForHash() }

// HashToScalar implements spec.md 4.A: SHA-224 of the canonical encoding
// of x, reduced mod the scalar ring's order.
func (r *ScalarRing) HashToScalar(x Encodable) (Scalar, error) {
	msg, err := x.encodeForHash()
	if err != nil {
		return Scalar{}, err
	}
	digest := sha256.Sum224(msg)
	return r.FromBigInt(new(big.Int).SetBytes(digest[:])), nil
}

// Xor treats a and b as nonnegative integers and returns their bitwise
// XOR, deliberately NOT reduced mod n. This reproduces the source's
// Fiat-Shamir transform bit-for-bit (spec.md 4.F step 6, and the design
// note in spec.md 9): ring-NIZK challenges legitimately exceed n, and
// are used unreduced as scalar-multiplication exponents, relying on the
// fixed-base table's support for exponents up to 2^450 and on the
// underlying group's order-n wraparound for correctness.
func Xor(a, b *big.Int) *big.Int {
	return new(big.Int).Xor(a, b)
}

// FingerprintLabel derives a short, stable hex label for logging
// purposes (never used as protocol-security-relevant input) by hashing
// a point's canonical encoding with MiMC, the hash the teacher's own
// codebase already depends on for exactly this kind of compact digest.
func FingerprintLabel(p Point) (string, error) {
	enc, err := (EPoint{P: p}).encodeForHash()
	if err != nil {
		return "", err
	}
	h := mimcNative.NewMiMC()
	h.Write(enc)
	sum := h.Sum(nil)
	if len(sum) > 8 {
		sum = sum[:8]
	}
	return fmt.Sprintf("%x", sum), nil
}

// DomainSeparatedHash derives a binding tag for a (domain, fields...)
// combination using SHA3-256, used by the tracer package to bind a
// partial-decryption proof to (T, C1, D_i) per the redesign flag in
// spec.md 9 (Open Question 3): "bind to (T, C1, D_i) for full
// Fiat-Shamir soundness."
func DomainSeparatedHash(domain string, fields ...[]byte) []byte {
	h := sha3.New256()
	h.Write([]byte(domain))
	for _, f := range fields {
		var lenPrefix [8]byte
		l := uint64(len(f))
		for i := 0; i < 8; i++ {
			lenPrefix[i] = byte(l >> (8 * (7 - i)))
		}
		h.Write(lenPrefix[:])
		h.Write(f)
	}
	return h.Sum(nil)
}
