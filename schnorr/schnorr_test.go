package schnorr

import (
	"math/big"
	"testing"

	"github.com/tarsring/tars/curve"
	"github.com/tarsring/tars/fixedbase"
)

// p192Curve returns NIST P-192 (y^2 = x^3 - 3x + b over F_p, K=1), its
// standard base point, and the base point's prime order. Prove refuses
// to hash a commitment at infinity, and the tests below expect distinct
// binding contexts to give distinct challenges, so they need a group far
// larger than an order-19 toy curve.
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

func TestProveVerifyRoundTrip(t *testing.T) {
	c, g, n := p192Curve()
	ring := curve.NewScalarRing(n)
	table := fixedbase.BuildDefault(c, g)

	d, err := ring.Random()
	if err != nil {
		t.Fatalf("sampling witness: %v", err)
	}
	D, err := table.Multiply(d.Int())
	if err != nil {
		t.Fatalf("computing D: %v", err)
	}
	proof, err := Prove(ring, table, d)
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	if !Verify(ring, c, table, D, proof) {
		t.Fatalf("verify rejected a valid proof")
	}
	proof.Z = ring.Add(proof.Z, ring.One())
	if Verify(ring, c, table, D, proof) {
		t.Fatalf("verify accepted a proof with a tampered response")
	}
}

func TestBatchVerify(t *testing.T) {
	c, g, order := p192Curve()
	ring := curve.NewScalarRing(order)
	table := fixedbase.BuildDefault(c, g)

	n := 4
	ds := make([]curve.Point, n)
	proofs := make([]Proof, n)
	for i := 0; i < n; i++ {
		d, err := ring.Random()
		if err != nil {
			t.Fatalf("sampling witness %d: %v", i, err)
		}
		D, err := table.Multiply(d.Int())
		if err != nil {
			t.Fatalf("computing D %d: %v", i, err)
		}
		p, err := Prove(ring, table, d)
		if err != nil {
			t.Fatalf("prove %d: %v", i, err)
		}
		ds[i] = D
		proofs[i] = p
	}
	if !BatchVerify(ring, c, table, ds, proofs) {
		t.Fatalf("batch verify rejected an all-honest batch")
	}
	proofs[1].Z = ring.Add(proofs[1].Z, ring.One())
	if BatchVerify(ring, c, table, ds, proofs) {
		t.Fatalf("batch verify accepted a batch with one tampered proof")
	}
}

func TestEqualityProof(t *testing.T) {
	c, g, n := p192Curve()
	ring := curve.NewScalarRing(n)
	g1Table := fixedbase.BuildDefault(c, g)
	c1 := c.ScalarMul(g, big.NewInt(7))
	c1Table := fixedbase.BuildDefault(c, c1)

	d, err := ring.Random()
	if err != nil {
		t.Fatalf("sampling witness: %v", err)
	}
	D, err := g1Table.Multiply(d.Int())
	if err != nil {
		t.Fatalf("computing D: %v", err)
	}
	s, err := c1Table.Multiply(d.Int())
	if err != nil {
		t.Fatalf("computing S: %v", err)
	}
	bind := []byte("binding-context")
	proof, err := ProveEquality(ring, g1Table, c1Table, d, bind)
	if err != nil {
		t.Fatalf("prove equality: %v", err)
	}
	if !VerifyEquality(ring, c, g1Table, c1Table, D, s, proof, bind) {
		t.Fatalf("verify equality rejected a valid proof")
	}
	if VerifyEquality(ring, c, g1Table, c1Table, D, s, proof, []byte("different-context")) {
		t.Fatalf("verify equality accepted a proof against the wrong binding context")
	}
	// Substituting a different S with the same claimed D must fail:
	// this is exactly the binding gap the equality proof closes.
	otherS := c.ScalarMul(c1, new(big.Int).Add(d.Int(), big.NewInt(1)))
	if VerifyEquality(ring, c, g1Table, c1Table, D, otherS, proof, bind) {
		t.Fatalf("verify equality accepted a mismatched (D, S) pair")
	}
}
