package curve

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// PointString renders a point as "(x,y)" where x and y are each the
// colon-joined decimal coefficients of their polynomial representation
// over F_q, matching spec.md 6's persisted state layout: `"(x,y)"` where
// x,y are field elements in "the deterministic representation used by
// the chosen field library." Infinity renders as the literal "O".
func PointString(p Point) string {
	if p.Inf {
		return "O"
	}
	return fmt.Sprintf("(%s,%s)", coeffsToString(p.X.Coeffs()), coeffsToString(p.Y.Coeffs()))
}

func coeffsToString(c []*big.Int) string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = v.String()
	}
	return strings.Join(parts, ":")
}

// PointFromString parses the format produced by PointString.
func (curve *Curve) PointFromString(s string) (Point, error) {
	if s == "O" {
		return curve.Infinity(), nil
	}
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	coords := strings.SplitN(s, ",", 2)
	if len(coords) != 2 {
		return Point{}, fmt.Errorf("curve: malformed point string %q", s)
	}
	x, err := coeffsFromString(coords[0])
	if err != nil {
		return Point{}, fmt.Errorf("curve: parsing x coefficients: %w", err)
	}
	y, err := coeffsFromString(coords[1])
	if err != nil {
		return Point{}, fmt.Errorf("curve: parsing y coefficients: %w", err)
	}
	p := Point{X: curve.F.elt(x), Y: curve.F.elt(y)}
	if !curve.IsOnCurve(p) {
		return Point{}, fmt.Errorf("curve: decoded point is not on curve")
	}
	return p, nil
}

func coeffsFromString(s string) ([]*big.Int, error) {
	parts := strings.Split(s, ":")
	out := make([]*big.Int, len(parts))
	for i, p := range parts {
		v, ok := new(big.Int).SetString(p, 10)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", p)
		}
		out[i] = v
	}
	return out, nil
}

// jsonPoint is the wire shape for Point JSON encoding.
type jsonPoint struct {
	Repr string `json:"point"`
}

// MarshalJSON implements json.Marshaler using the PointString format.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonPoint{Repr: PointString(p)})
}

// PointFromJSON decodes a Point previously produced by Point.MarshalJSON.
func (curve *Curve) PointFromJSON(data []byte) (Point, error) {
	var jp jsonPoint
	if err := json.Unmarshal(data, &jp); err != nil {
		return Point{}, fmt.Errorf("curve: decoding point JSON: %w", err)
	}
	return curve.PointFromString(jp.Repr)
}
