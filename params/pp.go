package params

import (
	"fmt"
	"math/big"

	"github.com/tarsring/tars/curve"
	"github.com/tarsring/tars/fixedbase"
	"github.com/tarsring/tars/internal/tlog"
	"github.com/tarsring/tars/internal/xerrors"
	"github.com/tarsring/tars/shamir"
)

// PP is the immutable public parameter set of spec.md 3: curve/field
// context, the scalar ring, the system points g1/g2/Q, and their fixed
// tables. Every other component takes a *PP rather than reaching for a
// process-wide singleton (spec.md 9: "there is no hidden singleton").
type PP struct {
	Config CurveConfig

	Field *curve.Field
	Curve *curve.Curve
	Ring  *curve.ScalarRing

	G1, G2, Q Point
	G1Table   *fixedbase.Table
	G2Table   *fixedbase.Table
	QTable    *fixedbase.Table
}

// Point is re-exported so callers of params don't need to import curve
// just to hold a PP's system points.
type Point = curve.Point

// Option configures optional ambient behavior of Setup.
type Option func(*options)

type options struct {
	logger tlog.Logger
}

// WithLogger attaches a structured logger to Setup, which logs one
// debug line on completion with g1's fingerprint and the (t, m) pair.
func WithLogger(l tlog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Setup implements spec.md 4.C: selects g1, g2 via trace-zero
// projection, samples the master secret s, computes Q = s*g1, and seals
// s into a shamir.Dealer ready to issue tracer shares.
func Setup(cfg CurveConfig, opts ...Option) (*PP, *shamir.Dealer, error) {
	o := &options{logger: tlog.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, xerrors.Wrap(xerrors.InvalidParams, err, "invalid curve configuration")
	}

	field := curve.NewField(cfg.Q, cfg.K)
	ec := curve.NewCurve(field, cfg.A, cfg.B)
	ring := curve.NewScalarRing(cfg.N)

	g1, g2, err := deriveGenerators(ec, cfg)
	if err != nil {
		return nil, nil, xerrors.Wrap(xerrors.DomainError, err, "deriving trace generators")
	}

	s, err := ring.Random()
	if err != nil {
		return nil, nil, xerrors.Wrap(xerrors.DomainError, err, "sampling master secret")
	}
	q := ec.ScalarMul(g1, s.Int())

	pp := &PP{
		Config:  cfg,
		Field:   field,
		Curve:   ec,
		Ring:    ring,
		G1:      g1,
		G2:      g2,
		Q:       q,
		G1Table: fixedbase.BuildDefault(ec, g1),
		G2Table: fixedbase.BuildDefault(ec, g2),
		QTable:  fixedbase.BuildDefault(ec, q),
	}

	if lbl, err := curve.FingerprintLabel(g1); err == nil {
		o.logger.Debug().Str("g1", lbl).Int("t", cfg.Threshold).Int("m", cfg.NumTracers).Msg("tars: setup complete")
	}

	dealer := shamir.NewDealer(ring, pp.G1Table, s, cfg.Threshold, cfg.NumTracers)
	return pp, dealer, nil
}

// deriveGenerators samples a random curve point, projects it through
// the cofactor and the trace map to get g1, then derives g2 = k*g - g1
// per spec.md 4.C steps 2-3.
func deriveGenerators(ec *curve.Curve, cfg CurveConfig) (g1, g2 curve.Point, err error) {
	for attempts := 0; attempts < 1000; attempts++ {
		raw, err := ec.RandomPoint()
		if err != nil {
			return curve.Point{}, curve.Point{}, err
		}
		g := ec.ScalarMul(raw, cfg.Cofactor)
		if g.Inf {
			continue
		}
		g1 = ec.Trace(g)
		if g1.Inf {
			continue
		}
		if !isInOrderNSubgroup(ec, g1, cfg.N) {
			continue
		}
		kg := ec.ScalarMul(g, big.NewInt(int64(cfg.K)))
		g2 = ec.Sub(kg, g1)
		return g1, g2, nil
	}
	return curve.Point{}, curve.Point{}, fmt.Errorf("params: failed to find a suitable generator after many attempts")
}

func isInOrderNSubgroup(ec *curve.Curve, p curve.Point, n *big.Int) bool {
	return ec.ScalarMul(p, n).Inf
}
