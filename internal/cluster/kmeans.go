package cluster

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// maxLloydIterations bounds a single k-means fit.
const maxLloydIterations = 300

// KMeansResult holds the outcome of one k-means fit.
type KMeansResult struct {
	K         int
	Labels    []int
	Centroids [][]float64
	Inertia   float64
}

// RunKMeans fits k-means with k-means++ seeding and the given number of random
// restarts, returning the fit with the lowest within-cluster sum of squared
// distances. All randomness comes from a source created from seed inside this
// call, so identical inputs and seed always produce identical assignments
// regardless of what ran before.
func RunKMeans(x [][]float64, k, restarts int, seed int64) (*KMeansResult, error) {
	n := len(x)
	if k < 1 {
		return nil, fmt.Errorf("cluster count must be >= 1, got %d", k)
	}
	if n < k {
		return nil, fmt.Errorf("population of %d sessions cannot form %d clusters", n, k)
	}

	rng := rand.New(rand.NewSource(seed))

	var best *KMeansResult
	for r := 0; r < restarts; r++ {
		result := lloyd(x, plusPlusInit(x, k, rng), k)
		if best == nil || result.Inertia < best.Inertia {
			best = result
		}
	}

	return best, nil
}

// plusPlusInit picks k initial centers with k-means++ seeding: each next
// center is sampled proportionally to squared distance from the nearest
// already-chosen center.
func plusPlusInit(x [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(x)
	centers := make([][]float64, 0, k)

	first := append([]float64(nil), x[rng.Intn(n)]...)
	centers = append(centers, first)

	d2 := make([]float64, n)
	for i := range x {
		d2[i] = sqDist(x[i], first)
	}

	for len(centers) < k {
		total := floats.Sum(d2)
		var next []float64
		if total == 0 {
			// All remaining points coincide with a center
			next = x[rng.Intn(n)]
		} else {
			target := rng.Float64() * total
			idx := n - 1
			cum := 0.0
			for i, d := range d2 {
				cum += d
				if cum >= target {
					idx = i
					break
				}
			}
			next = x[idx]
		}

		center := append([]float64(nil), next...)
		centers = append(centers, center)

		for i := range x {
			if d := sqDist(x[i], center); d < d2[i] {
				d2[i] = d
			}
		}
	}

	return centers
}

// lloyd iterates assignment and centroid updates until labels stabilize.
func lloyd(x [][]float64, centers [][]float64, k int) *KMeansResult {
	n := len(x)
	dims := len(x[0])
	labels := make([]int, n)

	for iter := 0; iter < maxLloydIterations; iter++ {
		changed := false
		sizes := make([]int, k)
		for i := range x {
			nearest := nearestCenter(x[i], centers)
			if nearest != labels[i] || iter == 0 {
				labels[i] = nearest
				changed = true
			}
			sizes[nearest]++
		}

		// Repair empty clusters by stealing the point farthest from its
		// assigned center, never from a singleton
		for c := 0; c < k; c++ {
			if sizes[c] > 0 {
				continue
			}
			idx := farthestPoint(x, labels, sizes, centers)
			sizes[labels[idx]]--
			labels[idx] = c
			sizes[c]++
			changed = true
		}

		sums := make([][]float64, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, label := range labels {
			floats.Add(sums[label], x[i])
		}
		for c := 0; c < k; c++ {
			floats.Scale(1/float64(sizes[c]), sums[c])
			centers[c] = sums[c]
		}

		if !changed {
			break
		}
	}

	inertia := 0.0
	for i, label := range labels {
		inertia += sqDist(x[i], centers[label])
	}

	return &KMeansResult{K: k, Labels: labels, Centroids: centers, Inertia: inertia}
}

// nearestCenter returns the index of the closest center, lowest index winning ties.
func nearestCenter(v []float64, centers [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c := range centers {
		if d := sqDist(v, centers[c]); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// farthestPoint returns the index of the point farthest from its assigned
// center, considering only clusters that would not become empty.
func farthestPoint(x [][]float64, labels []int, sizes []int, centers [][]float64) int {
	idx := 0
	maxDist := -1.0
	for i := range x {
		if sizes[labels[i]] <= 1 {
			continue
		}
		if d := sqDist(x[i], centers[labels[i]]); d > maxDist {
			maxDist = d
			idx = i
		}
	}
	return idx
}

// sqDist returns the squared Euclidean distance between two vectors.
func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}
