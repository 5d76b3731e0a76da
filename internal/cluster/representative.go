package cluster

import "math"

// Representatives picks, for each cluster, the index of the member row
// closest to its centroid by Euclidean distance. Ties keep the earliest row,
// which is stable with respect to the session ordering fixed at parse time.
// Clusters with no members map to -1.
func Representatives(x [][]float64, labels []int, centroids [][]float64) []int {
	reps := make([]int, len(centroids))
	dists := make([]float64, len(centroids))
	for c := range reps {
		reps[c] = -1
		dists[c] = math.Inf(1)
	}

	for i, label := range labels {
		if d := sqDist(x[i], centroids[label]); d < dists[label] {
			dists[label] = d
			reps[label] = i
		}
	}

	return reps
}
