package cluster

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Silhouette computes the mean silhouette coefficient of a labeling: for each
// session, cohesion is the mean distance to its own cluster and separation is
// the mean distance to the nearest other cluster. Members of singleton
// clusters score 0. Higher is better; the range is [-1, 1].
func Silhouette(x [][]float64, labels []int, k int) float64 {
	n := len(x)
	if n == 0 || k < 2 {
		return 0
	}

	sizes := make([]int, k)
	for _, label := range labels {
		sizes[label]++
	}

	total := 0.0
	sums := make([]float64, k)
	for i := range x {
		own := labels[i]
		if sizes[own] <= 1 {
			continue
		}

		for c := range sums {
			sums[c] = 0
		}
		for j := range x {
			if j == i {
				continue
			}
			sums[labels[j]] += floats.Distance(x[i], x[j], 2)
		}

		a := sums[own] / float64(sizes[own]-1)
		b := math.Inf(1)
		for c := 0; c < k; c++ {
			if c == own || sizes[c] == 0 {
				continue
			}
			if mean := sums[c] / float64(sizes[c]); mean < b {
				b = mean
			}
		}

		if denom := math.Max(a, b); denom > 0 {
			total += (b - a) / denom
		}
	}

	return total / float64(n)
}
