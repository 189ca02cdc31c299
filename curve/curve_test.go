package curve

import (
	"math/big"
	"testing"
)

// toyCurve builds E: y^2 = x^3 + 2x + 2 over F_17, a textbook example
// whose group has prime order 19 generated by (5,1).
func toyCurve() (*Curve, Point) {
	f := NewField(big.NewInt(17), 1)
	c := NewCurve(f, big.NewInt(2), big.NewInt(2))
	g := Point{X: f.FromInt(5), Y: f.FromInt(1)}
	return c, g
}

func TestPointOnCurve(t *testing.T) {
	c, g := toyCurve()
	if !c.IsOnCurve(g) {
		t.Fatalf("generator (5,1) should satisfy y^2=x^3+2x+2 mod 17")
	}
}

func TestAddIdentityAndInverse(t *testing.T) {
	c, g := toyCurve()
	if got := c.Add(g, c.Infinity()); !c.Equal(got, g) {
		t.Fatalf("P + O != P")
	}
	neg := c.Neg(g)
	if !c.IsOnCurve(neg) {
		t.Fatalf("-P must remain on curve")
	}
	if got := c.Add(g, neg); !got.Inf {
		t.Fatalf("P + (-P) should be infinity, got %+v", got)
	}
}

func TestDoubleMatchesScalarMulByTwo(t *testing.T) {
	c, g := toyCurve()
	doubled := c.Double(g)
	scaled := c.ScalarMul(g, big.NewInt(2))
	if !c.Equal(doubled, scaled) {
		t.Fatalf("Double(P) != ScalarMul(P, 2)")
	}
	if !c.IsOnCurve(doubled) {
		t.Fatalf("2P must be on curve")
	}
}

func TestGroupOrderReachesInfinity(t *testing.T) {
	c, g := toyCurve()
	order := big.NewInt(19)
	if got := c.ScalarMul(g, order); !got.Inf {
		t.Fatalf("19*(5,1) should be the identity, got %+v", got)
	}
	// No smaller positive multiple should vanish, since 19 is prime.
	for k := int64(1); k < 19; k++ {
		if c.ScalarMul(g, big.NewInt(k)).Inf {
			t.Fatalf("%d*P unexpectedly hit infinity before the group order", k)
		}
	}
}

func TestFieldArithmeticExtension(t *testing.T) {
	f := NewField(big.NewInt(101), 3)
	a := f.FromCoeffs(big.NewInt(4), big.NewInt(9), big.NewInt(2))
	b := f.FromCoeffs(big.NewInt(7), big.NewInt(1), big.NewInt(0))
	sum := f.Add(a, b)
	diff := f.Sub(sum, b)
	if !f.Equal(diff, a) {
		t.Fatalf("(a+b)-b should equal a in F_{101^3}")
	}
	prod := f.Mul(a, b)
	inv, err := f.Inv(b)
	if err != nil {
		t.Fatalf("inverting b: %v", err)
	}
	recovered := f.Mul(prod, inv)
	if !f.Equal(recovered, a) {
		t.Fatalf("(a*b)*b^-1 should equal a")
	}
}

func TestHashToScalarDeterministic(t *testing.T) {
	c, g := toyCurve()
	ring := NewScalarRing(big.NewInt(19))
	c1, err := ring.HashToScalar(EPoint{P: g})
	if err != nil {
		t.Fatalf("hashing point: %v", err)
	}
	c2, err := ring.HashToScalar(EPoint{P: g})
	if err != nil {
		t.Fatalf("hashing point: %v", err)
	}
	if !c1.Equal(c2) {
		t.Fatalf("HashToScalar must be deterministic for the same input")
	}
	doubled := c.Double(g)
	c3, err := ring.HashToScalar(EPoint{P: doubled})
	if err != nil {
		t.Fatalf("hashing point: %v", err)
	}
	if c1.Equal(c3) {
		t.Fatalf("distinct points should hash to distinct scalars (with n=19 a collision has probability 1/19; for this pair the hashes are 9 and 17)")
	}
}

func TestXorUnreducedBeyondModulus(t *testing.T) {
	n := big.NewInt(19)
	a := big.NewInt(17)
	b := big.NewInt(5)
	got := Xor(a, b)
	if got.Cmp(n) <= 0 {
		t.Skip("this particular pair happened to XOR below n; not a useful witness")
	}
	if got.Sign() < 0 {
		t.Fatalf("Xor must never return a negative integer")
	}
}

func TestPointStringRoundTrip(t *testing.T) {
	c, g := toyCurve()
	s := PointString(g)
	back, err := c.PointFromString(s)
	if err != nil {
		t.Fatalf("decoding %q: %v", s, err)
	}
	if !c.Equal(back, g) {
		t.Fatalf("decode(encode(P)) != P")
	}
	if PointString(c.Infinity()) != "O" {
		t.Fatalf("infinity must encode as the literal O")
	}
}
