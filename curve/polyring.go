package curve

import "math/big"

// A handful of generic polynomial helpers over F_q, used only to invert
// elements of F_{q^k} via the extended Euclidean algorithm against the
// fixed modulus x^k + x + 1. Coefficients are ordered low-degree first.
// These are intentionally minimal: TARS never needs polynomial GCDs
// outside of field inversion.

func clonePoly(p []*big.Int) []*big.Int {
	out := make([]*big.Int, len(p))
	for i, c := range p {
		out[i] = new(big.Int).Set(c)
	}
	return out
}

func polyDeg(p []*big.Int) int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Sign() != 0 {
			return i
		}
	}
	return -1
}

func trimPoly(p []*big.Int) []*big.Int {
	d := polyDeg(p)
	if d < 0 {
		return []*big.Int{big.NewInt(0)}
	}
	return p[:d+1]
}

func isZeroPoly(p []*big.Int) bool {
	return polyDeg(p) < 0
}

func polyAdd(q *big.Int, a, b []*big.Int) []*big.Int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		var av, bv *big.Int
		if i < len(a) {
			av = a[i]
		} else {
			av = big.NewInt(0)
		}
		if i < len(b) {
			bv = b[i]
		} else {
			bv = big.NewInt(0)
		}
		out[i] = new(big.Int).Mod(new(big.Int).Add(av, bv), q)
	}
	return trimPoly(out)
}

func polySub(q *big.Int, a, b []*big.Int) []*big.Int {
	negB := make([]*big.Int, len(b))
	for i, c := range b {
		negB[i] = new(big.Int).Neg(c)
	}
	return polyAdd(q, a, negB)
}

func polyMulMod(q *big.Int, a, b []*big.Int) []*big.Int {
	if isZeroPoly(a) || isZeroPoly(b) {
		return []*big.Int{big.NewInt(0)}
	}
	out := make([]*big.Int, len(a)+len(b)-1)
	for i := range out {
		out[i] = big.NewInt(0)
	}
	for i, ai := range a {
		if ai.Sign() == 0 {
			continue
		}
		for j, bj := range b {
			if bj.Sign() == 0 {
				continue
			}
			t := new(big.Int).Mul(ai, bj)
			out[i+j].Add(out[i+j], t)
		}
	}
	for i := range out {
		out[i].Mod(out[i], q)
	}
	return trimPoly(out)
}

// polyDivMod computes quotient and remainder of num / den over F_q.
func polyDivMod(q *big.Int, num, den []*big.Int) (quot, rem []*big.Int) {
	rem = clonePoly(trimPoly(num))
	den = trimPoly(den)
	denDeg := polyDeg(den)
	denLeadInv := new(big.Int).ModInverse(den[denDeg], q)

	quot = []*big.Int{big.NewInt(0)}
	for {
		rd := polyDeg(rem)
		if rd < 0 || rd < denDeg {
			break
		}
		shift := rd - denDeg
		coef := new(big.Int).Mod(new(big.Int).Mul(rem[rd], denLeadInv), q)

		term := make([]*big.Int, shift+1)
		for i := range term {
			term[i] = big.NewInt(0)
		}
		term[shift] = coef
		quot = polyAdd(q, quot, term)

		sub := polyMulMod(q, term, den)
		rem = polySub(q, rem, sub)
	}
	return quot, trimPoly(rem)
}

// polyExtGCD runs the extended Euclidean algorithm over F_q[x], returning
// g, u, v such that u*a + v*b = g.
func polyExtGCD(q *big.Int, a, b []*big.Int) (g, u, v []*big.Int) {
	oldR, r := trimPoly(clonePoly(a)), trimPoly(clonePoly(b))
	oldS, s := []*big.Int{big.NewInt(1)}, []*big.Int{big.NewInt(0)}
	oldT, t := []*big.Int{big.NewInt(0)}, []*big.Int{big.NewInt(1)}

	for !isZeroPoly(r) {
		quot, rem := polyDivMod(q, oldR, r)
		oldR, r = r, rem
		oldS, s = s, polySub(q, oldS, polyMulMod(q, quot, s))
		oldT, t = t, polySub(q, oldT, polyMulMod(q, quot, t))
	}
	return oldR, oldS, oldT
}
