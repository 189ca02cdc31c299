package ringnizk

import (
	"math/big"
	"testing"

	"github.com/tarsring/tars/curve"
	"github.com/tarsring/tars/fixedbase"
)

// p192Curve returns NIST P-192 (y^2 = x^3 - 3x + b over F_p, K=1), its
// standard base point, and the base point's prime order. Prove refuses
// to hash a commitment at infinity and NewRing rejects duplicate pids,
// so Prove/Verify need a group large enough that random scalars never
// produce either; the order-19 toy curve of ring_test.go is too small.
func p192Curve() (*curve.Curve, curve.Point, *big.Int) {
	hex := func(s string) *big.Int {
		v, _ := new(big.Int).SetString(s, 16)
		return v
	}
	f := curve.NewField(hex("fffffffffffffffffffffffffffffffeffffffffffffffff"), 1)
	c := curve.NewCurve(f, big.NewInt(-3), hex("64210519e59c80e70fa7e9ab72243049feb8deecc146b9b1"))
	g := curve.Point{
		X: f.FromBigInt(hex("188da80eb03090f67cbf20eb43a18800f4ff0afd82ff1012")),
		Y: f.FromBigInt(hex("07192b95ffc8da78631011ed6b24cdd573f977a11e794811")),
	}
	return c, g, hex("ffffffffffffffffffffffff99def836146bc9b1b4d22831")
}

// toyProtocolFixture builds a ring of n pids and the (g1, Q) tables
// needed to exercise Prove/Verify directly, over P-192.
func toyProtocolFixture(t *testing.T, n int) (*curve.ScalarRing, *curve.Curve, *fixedbase.Table, *fixedbase.Table, *Ring, []curve.Scalar) {
	t.Helper()
	c, g1, order := p192Curve()
	ring := curve.NewScalarRing(order)
	g1Table := fixedbase.BuildDefault(c, g1)
	s := ring.FromInt64(11)
	q := c.ScalarMul(g1, s.Int())
	qTable := fixedbase.BuildDefault(c, q)

	sks := make([]curve.Scalar, n)
	pids := make([]curve.Point, n)
	for i := 0; i < n; i++ {
		sk, err := ring.Random()
		if err != nil {
			t.Fatalf("sampling sk %d: %v", i, err)
		}
		pid, err := g1Table.Multiply(sk.Int())
		if err != nil {
			t.Fatalf("deriving pid %d: %v", i, err)
		}
		sks[i] = sk
		pids[i] = pid
	}
	r, err := NewRing(c, pids)
	if err != nil {
		t.Fatalf("building ring: %v", err)
	}
	return ring, c, g1Table, qTable, r, sks
}

func signAt(t *testing.T, ring *curve.ScalarRing, c *curve.Curve, g1Table, qTable *fixedbase.Table, r *Ring, idx int, sk curve.Scalar, message []byte) (curve.Point, *Proof) {
	t.Helper()
	k, err := ring.Random()
	if err != nil {
		t.Fatalf("sampling k: %v", err)
	}
	qk, err := qTable.Multiply(k.Int())
	if err != nil {
		t.Fatalf("computing k*Q: %v", err)
	}
	c2 := c.Add(r.Pids[idx-1], qk)
	p, err := Prove(ring, c, g1Table, qTable, r, idx, sk, k, message, c2)
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	return c2, p
}

func TestProveVerifyRoundTrip(t *testing.T) {
	ring, c, g1Table, qTable, r, sks := toyProtocolFixture(t, 5)
	message := []byte("ring proof payload")

	for idx := 1; idx <= r.Len(); idx++ {
		c2, p := signAt(t, ring, c, g1Table, qTable, r, idx, sks[idx-1], message)
		if !Verify(ring, c, g1Table, qTable, r, message, c2, p) {
			t.Fatalf("verify rejected a valid proof for signer at position %d", idx)
		}
	}
}

func TestVerifyRejectsTamperedChallengeEntry(t *testing.T) {
	ring, c, g1Table, qTable, r, sks := toyProtocolFixture(t, 4)
	message := []byte("payload")
	c2, p := signAt(t, ring, c, g1Table, qTable, r, 2, sks[1], message)

	tampered := *p
	tampered.Challenge = append([]*big.Int{}, p.Challenge...)
	tampered.Challenge[0] = new(big.Int).Xor(tampered.Challenge[0], big.NewInt(1))
	if Verify(ring, c, g1Table, qTable, r, message, c2, &tampered) {
		t.Fatalf("verify accepted a proof with a single tampered challenge entry")
	}
}

func TestVerifyRejectsTamperedResponseEntry(t *testing.T) {
	ring, c, g1Table, qTable, r, sks := toyProtocolFixture(t, 4)
	message := []byte("payload")
	c2, p := signAt(t, ring, c, g1Table, qTable, r, 3, sks[2], message)

	tampered := *p
	tampered.ResponseSchnorr = append([]*big.Int{}, p.ResponseSchnorr...)
	tampered.ResponseSchnorr[0] = new(big.Int).Add(tampered.ResponseSchnorr[0], big.NewInt(1))
	if Verify(ring, c, g1Table, qTable, r, message, c2, &tampered) {
		t.Fatalf("verify accepted a proof with a single tampered response entry")
	}
}

func TestVerifyRejectsWrongMessage(t *testing.T) {
	ring, c, g1Table, qTable, r, sks := toyProtocolFixture(t, 3)
	c2, p := signAt(t, ring, c, g1Table, qTable, r, 1, sks[0], []byte("original"))
	if Verify(ring, c, g1Table, qTable, r, []byte("different"), c2, p) {
		t.Fatalf("verify accepted a proof against a different message")
	}
}

func TestVerifyRejectsMalformedLengths(t *testing.T) {
	ring, c, g1Table, qTable, r, sks := toyProtocolFixture(t, 3)
	message := []byte("payload")
	c2, p := signAt(t, ring, c, g1Table, qTable, r, 1, sks[0], message)

	truncated := *p
	truncated.CommitSchnorr = p.CommitSchnorr[:len(p.CommitSchnorr)-1]
	if Verify(ring, c, g1Table, qTable, r, message, c2, &truncated) {
		t.Fatalf("verify accepted a proof with a truncated commitment list")
	}
}
