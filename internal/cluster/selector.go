package cluster

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Selection is the outcome of the cluster-count search: the winning fit plus
// the silhouette score of every candidate count, for reporting.
type Selection struct {
	K      int
	Labels []int
	Scores map[int]float64
}

// Select scores every candidate cluster count in [minK, maxK] with a full
// k-means fit and picks the count with the highest silhouette score, refitting
// at the winner. Ties go to the lower count. The same seed feeds every fit, so
// the refit reproduces the scored labeling exactly.
func Select(x [][]float64, minK, maxK, restarts int, seed int64) (*Selection, error) {
	if len(x) == 0 {
		return nil, errors.New("no sessions to cluster")
	}
	if minK < 2 {
		return nil, fmt.Errorf("cluster range must start at 2 or higher, got %d", minK)
	}
	if minK > maxK {
		return nil, fmt.Errorf("invalid cluster range [%d, %d]", minK, maxK)
	}
	if len(x) < maxK {
		return nil, fmt.Errorf("population of %d sessions cannot support %d clusters", len(x), maxK)
	}

	scores := make(map[int]float64, maxK-minK+1)
	bestK := minK
	bestScore := 0.0
	for k := minK; k <= maxK; k++ {
		result, err := RunKMeans(x, k, restarts, seed)
		if err != nil {
			return nil, err
		}
		score := Silhouette(x, result.Labels, k)
		scores[k] = score
		if k == minK || score > bestScore {
			bestK = k
			bestScore = score
		}
	}

	final, err := RunKMeans(x, bestK, restarts, seed)
	if err != nil {
		return nil, err
	}

	return &Selection{K: bestK, Labels: final.Labels, Scores: scores}, nil
}

// Centroids computes the per-cluster mean vector over the labeled rows,
// along with the member count of each cluster.
func Centroids(x [][]float64, labels []int, k int) ([][]float64, []int) {
	dims := 0
	if len(x) > 0 {
		dims = len(x[0])
	}

	centroids := make([][]float64, k)
	counts := make([]int, k)
	for c := range centroids {
		centroids[c] = make([]float64, dims)
	}

	for i, label := range labels {
		counts[label]++
		floats.Add(centroids[label], x[i])
	}
	for c := 0; c < k; c++ {
		if counts[c] > 0 {
			floats.Scale(1/float64(counts[c]), centroids[c])
		}
	}

	return centroids, counts
}
