package ringnizk

import (
	"errors"
	"math/big"
	"testing"

	"github.com/tarsring/tars/curve"
	"github.com/tarsring/tars/internal/xerrors"
)

func toyCurve() (*curve.Curve, curve.Point) {
	f := curve.NewField(big.NewInt(17), 1)
	c := curve.NewCurve(f, big.NewInt(2), big.NewInt(2))
	g := curve.Point{X: f.FromInt(5), Y: f.FromInt(1)}
	return c, g
}

func TestNewRingIndexOf(t *testing.T) {
	c, g := toyCurve()
	pids := []curve.Point{
		c.ScalarMul(g, big.NewInt(3)),
		c.ScalarMul(g, big.NewInt(5)),
		c.ScalarMul(g, big.NewInt(7)),
	}
	r, err := NewRing(c, pids)
	if err != nil {
		t.Fatalf("building ring: %v", err)
	}
	if r.Len() != 3 {
		t.Fatalf("expected ring of size 3, got %d", r.Len())
	}
	if idx := r.IndexOf(pids[1]); idx != 2 {
		t.Fatalf("IndexOf second member = %d, want 2", idx)
	}
	outsider := c.ScalarMul(g, big.NewInt(11))
	if idx := r.IndexOf(outsider); idx != 0 {
		t.Fatalf("IndexOf for a non-member = %d, want 0", idx)
	}
}

func TestNewRingRejectsDuplicatePid(t *testing.T) {
	c, g := toyCurve()
	dup := c.ScalarMul(g, big.NewInt(5))
	pids := []curve.Point{
		c.ScalarMul(g, big.NewInt(3)),
		dup,
		c.ScalarMul(g, big.NewInt(7)),
		dup,
	}
	_, err := NewRing(c, pids)
	if err == nil {
		t.Fatalf("expected an error for a ring with a duplicate pid")
	}
	var xe *xerrors.Error
	if !errors.As(err, &xe) || xe.Kind() != xerrors.InvalidParams {
		t.Fatalf("expected invalid-params, got %v", err)
	}
}

func TestNewRingRejectsEmptyRing(t *testing.T) {
	c, _ := toyCurve()
	_, err := NewRing(c, nil)
	if err == nil {
		t.Fatalf("expected an error for an empty ring")
	}
	var xe *xerrors.Error
	if !errors.As(err, &xe) || xe.Kind() != xerrors.InvalidParams {
		t.Fatalf("expected invalid-params, got %v", err)
	}
}
