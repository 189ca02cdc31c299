// Package ringnizk implements Component F of the TARS crypto engine:
// the Schnorr+Okamoto double-commitment ring proof of spec.md 4.F, the
// "heart of the system" proving knowledge of (sk, k) for one ring
// member's pid without revealing which.
package ringnizk

import (
	"fmt"

	"github.com/tarsring/tars/curve"
	"github.com/tarsring/tars/fixedbase"
	"github.com/tarsring/tars/internal/xerrors"
)

// Ring is an ordered list of signer pseudonyms, each carrying its own
// fixed-base table since a ring is typically reused across many
// signatures (spec.md 5: "tables for public bases may be long-lived").
type Ring struct {
	Pids   []curve.Point
	tables []*fixedbase.Table
}

// NewRing builds a ring from an ordered list of pids, rejecting
// duplicates per spec.md 4.F's tie-break rule.
func NewRing(ec *curve.Curve, pids []curve.Point) (*Ring, error) {
	if len(pids) == 0 {
		return nil, xerrors.New(xerrors.InvalidParams, "ring must have at least one member")
	}
	seen := make(map[string]bool, len(pids))
	tables := make([]*fixedbase.Table, len(pids))
	for i, p := range pids {
		key := curve.PointString(p)
		if seen[key] {
			return nil, xerrors.New(xerrors.InvalidParams, fmt.Sprintf("ring contains duplicate pid at position %d", i+1))
		}
		seen[key] = true
		tables[i] = fixedbase.BuildDefault(ec, p)
	}
	return &Ring{Pids: pids, tables: tables}, nil
}

// Len returns the ring size l.
func (r *Ring) Len() int { return len(r.Pids) }

// IndexOf returns the 1-based position of pid in the ring, or 0 if
// absent (spec.md 4.G: signer-not-in-ring).
func (r *Ring) IndexOf(pid curve.Point) int {
	target := curve.PointString(pid)
	for i, p := range r.Pids {
		if curve.PointString(p) == target {
			return i + 1
		}
	}
	return 0
}
