package persona

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/harrison/personalens/internal/metrics"
)

// MonthlyCluster is one cluster's statistical snapshot within a single month.
// Its z-scores and traits are computed against that month's own population
// baseline, never against the global one, so month-to-month drift in the
// drift view is real and not an artifact of pooled statistics.
type MonthlyCluster struct {
	ClusterID            int                   `json:"cluster_id"`
	PCAX                 float64               `json:"pca_x"`
	PCAY                 float64               `json:"pca_y"`
	SessionCount         int                   `json:"session_count"`
	BehavioralMetrics    map[string]MetricStat `json:"behavioral_metrics"`
	DistinguishingTraits TraitLists            `json:"distinguishing_traits"`
}

// MonthlySnapshot holds every cluster present in a month plus the month's
// session total.
type MonthlySnapshot struct {
	TotalSessions int              `json:"total_sessions"`
	Clusters      []MonthlyCluster `json:"clusters"`
}

// AggregateByMonth partitions the globally-clustered sessions by month label
// and recomputes per-cluster means, z-scores, and traits inside each month.
// Cluster identities carry over from the global clustering; only the
// statistical characterization is month-local. Cluster positions are the mean
// projected coordinates of that month's members.
func AggregateByMonth(
	sessions []metrics.SessionMetrics,
	normalized [][]float64,
	labels []int,
	coords [][2]float64,
) map[string]MonthlySnapshot {
	byMonth := make(map[string][]int)
	for i := range sessions {
		byMonth[sessions[i].Month] = append(byMonth[sessions[i].Month], i)
	}

	result := make(map[string]MonthlySnapshot, len(byMonth))
	for month, indices := range byMonth {
		monthRows := make([][]float64, len(indices))
		for j, i := range indices {
			monthRows[j] = normalized[i]
		}
		monthMean, monthStd := PopulationStats(monthRows)

		byCluster := make(map[int][]int)
		for _, i := range indices {
			byCluster[labels[i]] = append(byCluster[labels[i]], i)
		}

		clusterIDs := make([]int, 0, len(byCluster))
		for id := range byCluster {
			clusterIDs = append(clusterIDs, id)
		}
		sort.Ints(clusterIDs)

		clusters := make([]MonthlyCluster, 0, len(clusterIDs))
		for _, id := range clusterIDs {
			members := byCluster[id]

			dims := len(metrics.Columns)
			meanVec := make([]float64, dims)
			var sumX, sumY float64
			for _, i := range members {
				floats.Add(meanVec, normalized[i])
				sumX += coords[i][0]
				sumY += coords[i][1]
			}
			size := float64(len(members))
			floats.Scale(1/size, meanVec)

			zScores := ZScores(meanVec, monthMean, monthStd)
			behavioral := make(map[string]MetricStat, dims)
			for c, col := range metrics.Columns {
				behavioral[col] = MetricStat{Value: meanVec[c], ZScore: zScores[col]}
			}

			clusters = append(clusters, MonthlyCluster{
				ClusterID:            id,
				PCAX:                 sumX / size,
				PCAY:                 sumY / size,
				SessionCount:         len(members),
				BehavioralMetrics:    behavioral,
				DistinguishingTraits: IdentifyTraits(zScores, monthlyZThreshold, 0, 2),
			})
		}

		result[month] = MonthlySnapshot{
			TotalSessions: len(indices),
			Clusters:      clusters,
		}
	}

	return result
}
