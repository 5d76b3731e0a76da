package persona

import (
	"github.com/harrison/personalens/internal/metrics"
)

// Position is a point in the shared 2D projection space.
type Position struct {
	X float64 `json:"pca_x"`
	Y float64 `json:"pca_y"`
}

// MetricStat pairs a cluster's metric value with its z-score against the
// relevant population baseline.
type MetricStat struct {
	Value  float64 `json:"value"`
	ZScore float64 `json:"z_score"`
}

// RepresentativeSession summarizes the session nearest a cluster's centroid.
// Duration and action count are the session's raw values, not normalized ones.
type RepresentativeSession struct {
	SessionID       string  `json:"session_id"`
	UserID          string  `json:"user_id"`
	Month           string  `json:"month"`
	DurationSeconds float64 `json:"duration_seconds"`
	ActionCount     int     `json:"action_count"`
}

// Persona is the complete profile of one behavioral cluster.
type Persona struct {
	ClusterID             int                   `json:"cluster_id"`
	Name                  string                `json:"name"`
	Description           string                `json:"description"`
	SessionCount          int                   `json:"session_count"`
	Centroid              Position              `json:"centroid"`
	BehavioralMetrics     map[string]MetricStat `json:"behavioral_metrics"`
	DistinguishingTraits  TraitLists            `json:"distinguishing_traits"`
	RepresentativeSession RepresentativeSession `json:"representative_session"`
}

// BuildPersonas assembles one profile per cluster from the global clustering:
// centroids and their projected positions, member counts, representative
// session indices, and the population baseline for z-scores. Output is
// ordered by ascending cluster id.
func BuildPersonas(
	sessions []metrics.SessionMetrics,
	centroids [][]float64,
	counts []int,
	centroidCoords [][2]float64,
	reps []int,
	mean, std []float64,
) []Persona {
	personas := make([]Persona, 0, len(centroids))

	for c := range centroids {
		zScores := ZScores(centroids[c], mean, std)
		traits := IdentifyTraits(zScores, globalZThreshold, 3, 0)
		name, description := Name(c, traits.High)

		behavioral := make(map[string]MetricStat, len(metrics.Columns))
		for i, col := range metrics.Columns {
			behavioral[col] = MetricStat{Value: centroids[c][i], ZScore: zScores[col]}
		}

		var rep RepresentativeSession
		if reps[c] >= 0 {
			s := sessions[reps[c]]
			rep = RepresentativeSession{
				SessionID:       s.SessionID,
				UserID:          s.UserID,
				Month:           s.Month,
				DurationSeconds: s.Values[0],
				ActionCount:     int(s.Values[2]),
			}
		}

		personas = append(personas, Persona{
			ClusterID:             c,
			Name:                  name,
			Description:           description,
			SessionCount:          counts[c],
			Centroid:              Position{X: centroidCoords[c][0], Y: centroidCoords[c][1]},
			BehavioralMetrics:     behavioral,
			DistinguishingTraits:  traits,
			RepresentativeSession: rep,
		})
	}

	return personas
}
