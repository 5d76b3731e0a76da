// Package cluster groups normalized session metric vectors into behavioral
// clusters: quantile normalization, seeded k-means with silhouette-based
// model selection, centroid computation, a shared 2D principal-component
// projection, and representative selection.
package cluster

import (
	"errors"
	"sort"
)

// QuantileNormalizer maps each metric column to its empirical percentile rank
// in [0,1]. The uniform output maximizes visual spread on radar and scatter
// charts. It is fit exactly once over the full session population; the fitted
// state transforms any later vector into the same coordinate space.
type QuantileNormalizer struct {
	refs [][]float64 // per-column sorted reference values
}

// FitQuantile fits a normalizer on the row-per-session matrix.
func FitQuantile(x [][]float64) (*QuantileNormalizer, error) {
	if len(x) == 0 {
		return nil, errors.New("cannot fit quantile normalizer on empty population")
	}

	cols := len(x[0])
	refs := make([][]float64, cols)
	for c := 0; c < cols; c++ {
		column := make([]float64, len(x))
		for r := range x {
			column[r] = x[r][c]
		}
		sort.Float64s(column)
		refs[c] = column
	}

	return &QuantileNormalizer{refs: refs}, nil
}

// Transform maps every row into percentile-rank space. The input is not modified.
func (q *QuantileNormalizer) Transform(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for r := range x {
		out[r] = q.TransformVector(x[r])
	}
	return out
}

// TransformVector maps a single vector into percentile-rank space.
func (q *QuantileNormalizer) TransformVector(v []float64) []float64 {
	out := make([]float64, len(v))
	for c := range v {
		out[c] = q.transformValue(c, v[c])
	}
	return out
}

// transformValue maps one value to its empirical percentile in [0,1].
// Duplicate reference values share the mean of their rank positions, and
// values between references interpolate linearly, so the mapping is monotone
// non-decreasing by construction.
func (q *QuantileNormalizer) transformValue(col int, v float64) float64 {
	refs := q.refs[col]
	n := len(refs)
	if n == 1 {
		return 0.5
	}

	if refs[0] == refs[n-1] {
		// Constant column: every value sits at the median rank
		return 0.5
	}
	if v <= refs[0] {
		return 0
	}
	if v >= refs[n-1] {
		return 1
	}

	pos := func(i int) float64 { return float64(i) / float64(n-1) }

	lo := sort.SearchFloat64s(refs, v)
	hi := sort.Search(n, func(i int) bool { return refs[i] > v })

	if lo < hi {
		// Exact match: mean rank of the duplicate run
		return (pos(lo) + pos(hi-1)) / 2
	}

	// Between refs[lo-1] and refs[lo]
	r1, r2 := refs[lo-1], refs[lo]
	frac := (v - r1) / (r2 - r1)
	return pos(lo-1) + frac*(pos(lo)-pos(lo-1))
}
