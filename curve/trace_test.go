package curve

import (
	"math/big"
	"testing"
)

func TestFrobeniusIdentityAtZero(t *testing.T) {
	c, g := toyCurve()
	if got := c.Frobenius(g, 0); !c.Equal(got, g) {
		t.Fatalf("phi_0 must be the identity map")
	}
}

func TestTraceTrivialForDegreeOneField(t *testing.T) {
	c, g := toyCurve()
	if got := c.Trace(g); !c.Equal(got, g) {
		t.Fatalf("Trace over a degree-1 extension should return its input unchanged, got %+v", got)
	}
}

func TestFieldExpFixesBaseFieldElements(t *testing.T) {
	f := NewField(big.NewInt(11), 2)
	// a^q = a for every a in the base field F_q, by Fermat's little
	// theorem; Frobenius relies on exactly this to fix base-field
	// coordinates.
	a := f.FromInt(7)
	got := f.Exp(a, f.Q)
	if !f.Equal(got, a) {
		t.Fatalf("a^q should fix a base-field element a, got %v want %v", got, a)
	}
}
