// Package weighting implements the probability normalizer: temperature
// scaling of a model's raw probability vector, and integer scaling of a
// normalized vector into a table of weights summing to a fixed total.
package weighting

import "math"

// Normalize applies temperature scaling to a probability vector and
// renormalizes it to sum to 1.0.
//
// As novelty (temperature) tends toward zero the result concentrates on the
// argmax entry; as it tends toward infinity the result tends toward uniform.
// A zero probability is treated as log(0) = -Inf, so it maps to exp(-Inf) = 0
// rather than causing a NaN.
func Normalize(p []float64, novelty float64) []float64 {
	scaled := make([]float64, len(p))
	for i, v := range p {
		scaled[i] = math.Log(v) / novelty
	}

	maxVal := math.Inf(-1)
	for _, v := range scaled {
		if v > maxVal {
			maxVal = v
		}
	}

	exps := make([]float64, len(scaled))
	var sum float64
	for i, v := range scaled {
		// Subtract maxVal for numerical stability; cancels out in the ratio.
		e := math.Exp(v - maxVal)
		exps[i] = e
		sum += e
	}

	out := make([]float64, len(exps))
	for i, e := range exps {
		out[i] = e / sum
	}
	return out
}

// Scale converts a probability vector (summing to ~1.0) into a vector of
// non-negative integers summing exactly to total, with every entry at least
// floor. Rounding slack is absorbed into the entry with the largest value;
// the smallest index wins ties, matching the reference scale() behavior.
func Scale(p []float64, total uint64, floor uint32) []uint32 {
	scaled := make([]uint64, len(p))
	var sum uint64
	maxIdx := 0
	for i, v := range p {
		s := uint64(math.Round(v * float64(total)))
		if s < uint64(floor) {
			s = uint64(floor)
		}
		scaled[i] = s
		sum += s
		if i == 0 || s > scaled[maxIdx] {
			maxIdx = i
		}
	}

	delta := int64(total) - int64(sum)
	scaled[maxIdx] = uint64(int64(scaled[maxIdx]) + delta)

	out := make([]uint32, len(scaled))
	for i, s := range scaled {
		out[i] = uint32(s)
	}
	return out
}
