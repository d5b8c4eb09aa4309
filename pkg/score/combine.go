package score

import "math"

// Precision controls how a combined score is rounded
type Precision int

// rounding rules for combined scores
const (
	PrecisionInteger Precision = iota // whole numbers, for the 1-100 scale
	PrecisionTenth                    // one decimal, for 0-10 style scales
)

// Combine blends a heuristic score with an optional AI score as the
// arithmetic mean of the two. A nil AI score leaves the heuristic value
// untouched except for rounding.
func Combine(heuristic float64, ai *float64, p Precision) float64 {
	v := heuristic
	if ai != nil {
		v = (heuristic + *ai) / 2
	}
	switch p {
	case PrecisionTenth:
		return math.Round(v*10) / 10
	default:
		return math.Round(v)
	}
}
