// Package fixedbase implements Component B of the TARS crypto engine:
// windowed precomputation for fixed-base scalar multiplication, per
// spec.md 4.B.
package fixedbase

import (
	"fmt"
	"math/big"

	"github.com/tarsring/tars/curve"
)

const (
	// DefaultWindow is the window size w used throughout the protocol.
	DefaultWindow = 4
	// DefaultMaxBits is the maximal scalar bit-length B the table
	// supports, generous enough to cover both Z_n witnesses and the
	// unreduced XOR-combined ring-NIZK challenges (spec.md 9).
	DefaultMaxBits = 450
)

// Table is the precomputed block structure for a fixed base point,
// immutable once built.
type Table struct {
	curve  *curve.Curve
	base   curve.Point
	window int
	maxBit int
	blocks [][]curve.Point
}

// Build precomputes ceil(B/w) blocks of 2^w points each for base point
// P, per spec.md 4.B.
func Build(c *curve.Curve, p curve.Point, window, maxBits int) *Table {
	numBlocks := (maxBits + window - 1) / window
	blockSize := 1 << uint(window)
	blocks := make([][]curve.Point, numBlocks)

	current := p
	for i := 0; i < numBlocks; i++ {
		block := make([]curve.Point, blockSize)
		block[0] = c.Infinity()
		for j := 1; j < blockSize; j++ {
			block[j] = c.Add(block[j-1], current)
		}
		blocks[i] = block
		for s := 0; s < window; s++ {
			current = c.Double(current)
		}
	}
	return &Table{curve: c, base: p, window: window, maxBit: maxBits, blocks: blocks}
}

// BuildDefault builds a table with the protocol's default window and
// bit-length (w=4, B=450).
func BuildDefault(c *curve.Curve, p curve.Point) *Table {
	return Build(c, p, DefaultWindow, DefaultMaxBits)
}

// Base returns the table's originating base point.
func (t *Table) Base() curve.Point { return t.base }

// Multiply computes k*P using the precomputed blocks, decomposing k
// into base-2^w digits low-to-high as described in spec.md 4.B. k must
// satisfy 0 <= k < 2^maxBits; this is the contract the protocol relies
// on to let ring-NIZK challenges exceed n (see curve.Xor) without
// reducing first.
func (t *Table) Multiply(k *big.Int) (curve.Point, error) {
	if k.Sign() < 0 {
		return curve.Point{}, fmt.Errorf("fixedbase: scalar must be nonnegative")
	}
	if k.BitLen() > t.maxBit {
		return curve.Point{}, fmt.Errorf("fixedbase: scalar has %d bits, table supports at most %d", k.BitLen(), t.maxBit)
	}
	result := t.blocks[0][0]
	mask := (int64(1) << uint(t.window)) - 1
	numBlocks := (t.maxBit + t.window - 1) / t.window
	kk := new(big.Int).Set(k)
	for i := 0; i < numBlocks; i++ {
		digit := new(big.Int).And(kk, big.NewInt(mask)).Int64()
		if digit != 0 {
			result = t.curve.Add(result, t.blocks[i][digit])
		}
		kk.Rsh(kk, uint(t.window))
	}
	return result, nil
}
