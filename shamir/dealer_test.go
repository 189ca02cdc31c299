package shamir

import (
	"math/big"
	"testing"

	"github.com/tarsring/tars/curve"
	"github.com/tarsring/tars/fixedbase"
)

func toyCurve() (*curve.Curve, curve.Point) {
	f := curve.NewField(big.NewInt(17), 1)
	c := curve.NewCurve(f, big.NewInt(2), big.NewInt(2))
	g := curve.Point{X: f.FromInt(5), Y: f.FromInt(1)}
	return c, g
}

// lagrangeAtZero reconstructs p(0) from t of the shares, independent of
// the tracer package's point-domain Combine, to test GenShares in
// isolation.
func lagrangeAtZero(n *big.Int, shares []Share) *big.Int {
	acc := big.NewInt(0)
	for i, si := range shares {
		xi := si.X.Int()
		num := big.NewInt(1)
		den := big.NewInt(1)
		for j, sj := range shares {
			if i == j {
				continue
			}
			xj := sj.X.Int()
			num.Mul(num, new(big.Int).Mod(new(big.Int).Neg(xj), n))
			num.Mod(num, n)
			den.Mul(den, new(big.Int).Mod(new(big.Int).Sub(xi, xj), n))
			den.Mod(den, n)
		}
		denInv := new(big.Int).ModInverse(den, n)
		lambda := new(big.Int).Mod(new(big.Int).Mul(num, denInv), n)
		term := new(big.Int).Mod(new(big.Int).Mul(lambda, si.D.Int()), n)
		acc.Add(acc, term)
		acc.Mod(acc, n)
	}
	return acc
}

func TestGenSharesReconstructsSecret(t *testing.T) {
	c, g := toyCurve()
	ring := curve.NewScalarRing(big.NewInt(19))
	table := fixedbase.Build(c, g, 4, 16)
	s := ring.FromInt64(13)

	dealer := NewDealer(ring, table, s, 3, 5)
	shares, err := dealer.GenShares()
	if err != nil {
		t.Fatalf("gen shares: %v", err)
	}
	if len(shares) != 5 {
		t.Fatalf("expected 5 shares, got %d", len(shares))
	}
	if !dealer.Sealed() {
		t.Fatalf("dealer should be sealed after issuing shares")
	}

	got := lagrangeAtZero(big.NewInt(19), shares[:3])
	if got.Cmp(big.NewInt(13)) != 0 {
		t.Fatalf("reconstructed secret = %s, want 13", got)
	}
	// Any other subset of size t must also reconstruct the same secret.
	got2 := lagrangeAtZero(big.NewInt(19), shares[2:])
	if got2.Cmp(big.NewInt(13)) != 0 {
		t.Fatalf("reconstructed secret from a different subset = %s, want 13", got2)
	}

	for _, sh := range shares {
		want := c.ScalarMul(table.Base(), sh.D.Int())
		if !c.Equal(sh.PubShare, want) {
			t.Fatalf("tracer %d: pub_share != d_i*g1", sh.TracerID)
		}
	}
}
