// Package persona characterizes behavioral clusters: z-score trait discovery
// against a population baseline, deterministic naming from distinguishing
// traits, persona profile assembly, and per-month re-aggregation.
package persona

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/harrison/personalens/internal/metrics"
)

// zEpsilon stabilizes z-score denominators so a zero-variance metric yields
// z = 0 instead of NaN or infinity.
const zEpsilon = 1e-6

// Trait is one distinguishing metric with its standardized deviation from the
// population baseline.
type Trait struct {
	Metric string  `json:"metric"`
	ZScore float64 `json:"z_score"`
}

// TraitLists holds the high and low distinguishing traits of a cluster.
type TraitLists struct {
	High []Trait `json:"high"`
	Low  []Trait `json:"low"`
}

// globalZThreshold is the |z| cutoff for global persona traits.
const globalZThreshold = 1.0

// monthlyZThreshold is the relaxed |z| cutoff used inside a single month's
// smaller population.
const monthlyZThreshold = 0.75

// PopulationStats computes the per-column mean and sample standard deviation
// of the row-per-session matrix. Columns of a population with fewer than two
// rows get a standard deviation of 0, which the z-score epsilon then absorbs.
func PopulationStats(x [][]float64) (mean, std []float64) {
	if len(x) == 0 {
		return nil, nil
	}

	cols := len(x[0])
	mean = make([]float64, cols)
	std = make([]float64, cols)

	column := make([]float64, len(x))
	for c := 0; c < cols; c++ {
		for r := range x {
			column[r] = x[r][c]
		}
		mean[c] = stat.Mean(column, nil)
		if len(x) > 1 {
			std[c] = stat.StdDev(column, nil)
		}
	}

	return mean, std
}

// ZScores standardizes a centroid against the population baseline.
func ZScores(centroid, mean, std []float64) map[string]float64 {
	z := make(map[string]float64, len(metrics.Columns))
	for c, col := range metrics.Columns {
		z[col] = (centroid[c] - mean[c]) / (std[c] + zEpsilon)
	}
	return z
}

// IdentifyTraits selects the distinguishing traits of a cluster from its
// z-scores. Metrics with z above threshold are high traits, below -threshold
// low traits; high traits sort descending and low traits ascending by z.
// maxPerSide truncates each list when positive. minPerSide pads each list
// from the ranked remainder so sparse months still show something.
func IdentifyTraits(zScores map[string]float64, threshold float64, maxPerSide, minPerSide int) TraitLists {
	all := make([]Trait, 0, len(metrics.Columns))
	for _, col := range metrics.Columns {
		all = append(all, Trait{Metric: col, ZScore: zScores[col]})
	}

	var high, low []Trait
	for _, t := range all {
		switch {
		case t.ZScore > threshold:
			high = append(high, t)
		case t.ZScore < -threshold:
			low = append(low, t)
		}
	}

	sort.SliceStable(high, func(i, j int) bool { return high[i].ZScore > high[j].ZScore })
	sort.SliceStable(low, func(i, j int) bool { return low[i].ZScore < low[j].ZScore })

	if maxPerSide > 0 && len(high) > maxPerSide {
		high = high[:maxPerSide]
	}
	if maxPerSide > 0 && len(low) > maxPerSide {
		low = low[:maxPerSide]
	}

	if minPerSide > 0 {
		high = padTraits(high, all, minPerSide, true)
		low = padTraits(low, all, minPerSide, false)
	}

	return TraitLists{High: emptyToSlice(high), Low: emptyToSlice(low)}
}

// padTraits fills a trait list up to min entries from the full ranking,
// skipping metrics already present.
func padTraits(traits []Trait, all []Trait, min int, descending bool) []Trait {
	if len(traits) >= min {
		return traits
	}

	ranked := append([]Trait(nil), all...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if descending {
			return ranked[i].ZScore > ranked[j].ZScore
		}
		return ranked[i].ZScore < ranked[j].ZScore
	})

	present := make(map[string]bool, len(traits))
	for _, t := range traits {
		present[t.Metric] = true
	}

	for _, t := range ranked {
		if len(traits) >= min {
			break
		}
		if present[t.Metric] {
			continue
		}
		traits = append(traits, t)
		present[t.Metric] = true
	}

	return traits
}

// emptyToSlice keeps JSON output as [] rather than null.
func emptyToSlice(traits []Trait) []Trait {
	if traits == nil {
		return []Trait{}
	}
	return traits
}
