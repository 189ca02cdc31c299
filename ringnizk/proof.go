package ringnizk

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/tarsring/tars/curve"
	"github.com/tarsring/tars/fixedbase"
)

// c2Window is the window size used for the ciphertext's per-session
// fixed-base table, per spec.md 4.F step 1 ("Build tbl(C2) with window
// size 2") — smaller than the protocol default since C2 is built once
// and used only within a single sign/verify call, not amortized across
// many multiplications the way g1/Q/pid tables are.
const c2Window = 2

// Proof is the ring signature's zero-knowledge component: per-index
// Schnorr and Okamoto commitments, the first l-1 Fiat-Shamir challenges
// (the l-th is always recomputable), and per-index responses.
//
// Challenge and response entries are raw, potentially-unreduced
// integers rather than curve.Scalar: the real signer's entry escapes
// Z_n via an XOR (spec.md 9), so the type must accommodate that even
// though every simulated entry happens to be a genuine ring element.
type Proof struct {
	CommitSchnorr []curve.Point
	CommitOkamoto []curve.Point
	Challenge     []*big.Int
	ResponseSchnorr []*big.Int
	ResponseOkamoto []*big.Int
}

// wireProof mirrors the source's serialized shape exactly:
// [(commit_schnorr, commit_okamoto), challenge[:-1], (response_schnorr, response_okamoto)],
// for interoperability with the persisted artifact layout of spec.md 6.
type wireProof struct {
	Commits   [2][]json.RawMessage `json:"commits"`
	Challenge []string             `json:"challenge"`
	Responses [2][]string          `json:"responses"`
}

// MarshalJSON renders the proof in the source's 3-field tuple layout.
func (p Proof) MarshalJSON() ([]byte, error) {
	commitSch := make([]json.RawMessage, len(p.CommitSchnorr))
	for i, pt := range p.CommitSchnorr {
		b, err := pt.MarshalJSON()
		if err != nil {
			return nil, err
		}
		commitSch[i] = b
	}
	commitOka := make([]json.RawMessage, len(p.CommitOkamoto))
	for i, pt := range p.CommitOkamoto {
		b, err := pt.MarshalJSON()
		if err != nil {
			return nil, err
		}
		commitOka[i] = b
	}
	challenge := make([]string, len(p.Challenge))
	for i, c := range p.Challenge {
		challenge[i] = c.String()
	}
	respSch := make([]string, len(p.ResponseSchnorr))
	for i, r := range p.ResponseSchnorr {
		respSch[i] = r.String()
	}
	respOka := make([]string, len(p.ResponseOkamoto))
	for i, r := range p.ResponseOkamoto {
		respOka[i] = r.String()
	}
	return json.Marshal(wireProof{
		Commits:   [2][]json.RawMessage{commitSch, commitOka},
		Challenge: challenge,
		Responses: [2][]string{respSch, respOka},
	})
}

// UnmarshalJSON parses a proof encoded by MarshalJSON, resolving points
// against the curve the ring was built over.
func (p *Proof) UnmarshalJSON(ec *curve.Curve, data []byte) error {
	var w wireProof
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	commitSch := make([]curve.Point, len(w.Commits[0]))
	for i, raw := range w.Commits[0] {
		pt, err := ec.PointFromJSON(raw)
		if err != nil {
			return err
		}
		commitSch[i] = pt
	}
	commitOka := make([]curve.Point, len(w.Commits[1]))
	for i, raw := range w.Commits[1] {
		pt, err := ec.PointFromJSON(raw)
		if err != nil {
			return err
		}
		commitOka[i] = pt
	}
	parseAll := func(ss []string) ([]*big.Int, bool) {
		out := make([]*big.Int, len(ss))
		for i, s := range ss {
			v, ok := new(big.Int).SetString(s, 10)
			if !ok {
				return nil, false
			}
			out[i] = v
		}
		return out, true
	}
	challenge, ok := parseAll(w.Challenge)
	if !ok {
		return fmt.Errorf("ringnizk: malformed challenge list")
	}
	respSch, ok := parseAll(w.Responses[0])
	if !ok {
		return fmt.Errorf("ringnizk: malformed schnorr responses")
	}
	respOka, ok := parseAll(w.Responses[1])
	if !ok {
		return fmt.Errorf("ringnizk: malformed okamoto responses")
	}
	p.CommitSchnorr = commitSch
	p.CommitOkamoto = commitOka
	p.Challenge = challenge
	p.ResponseSchnorr = respSch
	p.ResponseOkamoto = respOka
	return nil
}

// Prove implements spec.md 4.F's prover side for the signer at 1-based
// position idx in ring, with witness (sk, k) satisfying sk*g1 = pid_idx
// and C2 = pid_idx + k*Q.
func Prove(ring *curve.ScalarRing, ec *curve.Curve, g1Table, qTable *fixedbase.Table, r *Ring, idx int, sk, k curve.Scalar, message []byte, c2 curve.Point) (*Proof, error) {
	l := r.Len()
	c2Table := fixedbase.Build(ec, c2, c2Window, fixedbase.DefaultMaxBits)

	commitSch := make([]curve.Point, l)
	commitOka := make([]curve.Point, l)
	challengeScalar := make([]curve.Scalar, l)
	respSch := make([]*big.Int, l)
	respOka := make([]*big.Int, l)

	c, err := ring.HashToScalar(curve.EBytes(message))
	if err != nil {
		return nil, err
	}
	cXor := new(big.Int)

	for i := 0; i < l; i++ {
		if i == idx-1 {
			continue
		}
		ci, err := ring.Random()
		if err != nil {
			return nil, err
		}
		challengeScalar[i] = ci

		resSch, err := ring.Random()
		if err != nil {
			return nil, err
		}
		resOka, err := ring.Random()
		if err != nil {
			return nil, err
		}
		pidMulC, err := r.tables[i].Multiply(ci.Int())
		if err != nil {
			return nil, err
		}
		gResSch, err := g1Table.Multiply(resSch.Int())
		if err != nil {
			return nil, err
		}
		commitSch[i] = ec.Sub(gResSch, pidMulC)

		qResOka, err := qTable.Multiply(resOka.Int())
		if err != nil {
			return nil, err
		}
		c2MulC, err := c2Table.Multiply(ci.Int())
		if err != nil {
			return nil, err
		}
		commitOka[i] = ec.Add(ec.Sub(qResOka, c2MulC), pidMulC)

		respSch[i] = resSch.Int()
		respOka[i] = resOka.Int()

		cXor = curve.Xor(cXor, ci.Int())
		hs, err := ring.HashToScalar(curve.EPoint{P: commitSch[i]})
		if err != nil {
			return nil, err
		}
		ho, err := ring.HashToScalar(curve.EPoint{P: commitOka[i]})
		if err != nil {
			return nil, err
		}
		c = ring.Mul(c, ring.Mul(hs, ho))
	}

	u, err := ring.Random()
	if err != nil {
		return nil, err
	}
	commitSch[idx-1], err = g1Table.Multiply(u.Int())
	if err != nil {
		return nil, err
	}
	commitOka[idx-1], err = qTable.Multiply(u.Int())
	if err != nil {
		return nil, err
	}
	hs, err := ring.HashToScalar(curve.EPoint{P: commitSch[idx-1]})
	if err != nil {
		return nil, err
	}
	ho, err := ring.HashToScalar(curve.EPoint{P: commitOka[idx-1]})
	if err != nil {
		return nil, err
	}
	c = ring.Mul(c, ring.Mul(hs, ho))

	finalChallenge := curve.Xor(c.Int(), cXor)
	respSch[idx-1] = new(big.Int).Add(new(big.Int).Mul(sk.Int(), finalChallenge), u.Int())
	respOka[idx-1] = new(big.Int).Add(new(big.Int).Mul(k.Int(), finalChallenge), u.Int())

	// The invariant c == XOR of all l per-index challenges holds
	// globally (the real index's challenge is defined as c XOR the XOR
	// of every other index's), so the verifier can recover whichever
	// single entry is omitted from the wire format. The omitted entry
	// is always the last ring position, not necessarily idx: this
	// matches the wire layout of the source's ring_proof, whose
	// "challenge[:-1]" slices off array position l-1 unconditionally.
	fullChallenge := make([]*big.Int, l)
	for i := 0; i < l; i++ {
		if i == idx-1 {
			fullChallenge[i] = finalChallenge
			continue
		}
		fullChallenge[i] = challengeScalar[i].Int()
	}
	challenge := fullChallenge[:l-1]

	return &Proof{
		CommitSchnorr:   commitSch,
		CommitOkamoto:   commitOka,
		Challenge:       challenge,
		ResponseSchnorr: respSch,
		ResponseOkamoto: respOka,
	}, nil
}

// Verify implements spec.md 4.F's verifier side. It never returns an
// error: malformed input (wrong lengths) is treated as rejection, per
// spec.md 4.F's failure-mode contract ("never raise; always return a
// boolean").
func Verify(ring *curve.ScalarRing, ec *curve.Curve, g1Table, qTable *fixedbase.Table, r *Ring, message []byte, c2 curve.Point, p *Proof) bool {
	l := r.Len()
	if len(p.CommitSchnorr) != l || len(p.CommitOkamoto) != l ||
		len(p.Challenge) != l-1 || len(p.ResponseSchnorr) != l || len(p.ResponseOkamoto) != l {
		return false
	}

	c2Table := fixedbase.Build(ec, c2, c2Window, fixedbase.DefaultMaxBits)

	c, err := ring.HashToScalar(curve.EBytes(message))
	if err != nil {
		return false
	}
	for _, com := range p.CommitSchnorr {
		hs, err := ring.HashToScalar(curve.EPoint{P: com})
		if err != nil {
			return false
		}
		c = ring.Mul(c, hs)
	}
	for _, com := range p.CommitOkamoto {
		ho, err := ring.HashToScalar(curve.EPoint{P: com})
		if err != nil {
			return false
		}
		c = ring.Mul(c, ho)
	}

	cXor := new(big.Int)
	challengeSum := new(big.Int)
	fullChallenge := make([]*big.Int, l)
	for i, ch := range p.Challenge {
		fullChallenge[i] = ch
		cXor = curve.Xor(cXor, ch)
		challengeSum.Add(challengeSum, ch)
	}
	last := curve.Xor(c.Int(), cXor)
	fullChallenge[l-1] = last
	challengeSum.Add(challengeSum, last)

	resSchSum := new(big.Int)
	resOkaSum := new(big.Int)
	pidMulCSum := ec.Infinity()
	comSchSum := ec.Infinity()
	comOkaSum := ec.Infinity()
	for i := 0; i < l; i++ {
		pc, err := r.tables[i].Multiply(fullChallenge[i])
		if err != nil {
			return false
		}
		pidMulCSum = ec.Add(pidMulCSum, pc)
		comSchSum = ec.Add(comSchSum, p.CommitSchnorr[i])
		comOkaSum = ec.Add(comOkaSum, p.CommitOkamoto[i])
		resSchSum.Add(resSchSum, p.ResponseSchnorr[i])
		resOkaSum.Add(resOkaSum, p.ResponseOkamoto[i])
	}

	leftSch, err := g1Table.Multiply(resSchSum)
	if err != nil {
		return false
	}
	leftOka, err := qTable.Multiply(resOkaSum)
	if err != nil {
		return false
	}
	rightSch := ec.Add(pidMulCSum, comSchSum)

	c2MulSum, err := c2Table.Multiply(challengeSum)
	if err != nil {
		return false
	}
	rightOka := ec.Sub(ec.Add(c2MulSum, comOkaSum), pidMulCSum)

	return ec.Equal(leftSch, rightSch) && ec.Equal(leftOka, rightOka)
}
