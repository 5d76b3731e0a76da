// Package pipeline orchestrates the batch persona run: load, parse, extract,
// normalize, cluster, characterize, aggregate, write. Each phase fully
// consumes its predecessor's output; per-row data-quality problems drop rows,
// population-level problems abort the run before anything is written.
package pipeline

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/personalens/internal/cluster"
	"github.com/harrison/personalens/internal/config"
	"github.com/harrison/personalens/internal/dataset"
	"github.com/harrison/personalens/internal/logger"
	"github.com/harrison/personalens/internal/metrics"
	"github.com/harrison/personalens/internal/output"
	"github.com/harrison/personalens/internal/persona"
)

// Pipeline runs the full batch recomputation for one configuration.
type Pipeline struct {
	cfg *config.Config
	log *logger.ConsoleLogger
}

// New creates a Pipeline. A nil logger discards all progress output.
func New(cfg *config.Config, log *logger.ConsoleLogger) *Pipeline {
	if log == nil {
		log = logger.NewConsoleLogger(nil, "")
	}
	return &Pipeline{cfg: cfg, log: log}
}

// Run executes every phase and returns the assembled artifacts without
// writing them. Use RunAndWrite for the complete batch job.
func (p *Pipeline) Run() (*output.Artifacts, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	start := time.Now()

	// Phase 1: data loading and timestamp parsing
	p.log.LogStep(1, "Loading datasets")
	tables, err := dataset.LoadTables(p.cfg.Data.SessionsCSV, p.cfg.Data.ActionsCSV, p.cfg.Data.UsersCSV)
	if err != nil {
		return nil, err
	}
	p.log.LogDetail("Sessions", fmt.Sprintf("%d rows", len(tables.Sessions)))
	p.log.LogDetail("Actions", fmt.Sprintf("%d rows", len(tables.Actions)))
	p.log.LogDetail("Users", fmt.Sprintf("%d rows", len(tables.Users)))

	sessions, droppedIDs := dataset.ParseSessionTimes(tables.Sessions)
	p.log.LogDetail("Valid sessions", fmt.Sprintf("%d/%d", len(sessions), len(tables.Sessions)))

	// Phase 2: behavioral metric extraction and normalization
	p.log.LogStep(2, "Calculating behavioral metrics")
	sessionMetrics := metrics.Extract(sessions, tables.Actions)
	if len(sessionMetrics) == 0 {
		return nil, errors.New("no valid sessions remain after filtering")
	}
	droppedRows := droppedIDs + (len(sessions) - len(sessionMetrics))
	p.log.LogSuccess(fmt.Sprintf("Computed metrics for %d sessions", len(sessionMetrics)))

	raw := metrics.Matrix(sessionMetrics)
	normalizer, err := cluster.FitQuantile(raw)
	if err != nil {
		return nil, err
	}
	normalized := normalizer.Transform(raw)

	// Phase 3: clustering and projection
	p.log.LogStep(3, "Clustering sessions")
	cc := p.cfg.Clustering
	selection, err := cluster.Select(normalized, cc.MinClusters, cc.MaxClusters, cc.Restarts, cc.Seed)
	if err != nil {
		return nil, err
	}
	for k := cc.MinClusters; k <= cc.MaxClusters; k++ {
		p.log.LogDetail(fmt.Sprintf("k=%d", k), fmt.Sprintf("silhouette=%.4f", selection.Scores[k]))
	}
	p.log.LogSuccess(fmt.Sprintf("Selected k=%d (silhouette=%.4f)", selection.K, selection.Scores[selection.K]))

	centroids, counts := cluster.Centroids(normalized, selection.Labels, selection.K)
	for c, size := range counts {
		p.log.LogDetail(fmt.Sprintf("Cluster %d", c), fmt.Sprintf("%d sessions", size))
	}

	projection, err := cluster.FitProjection(normalized)
	if err != nil {
		return nil, err
	}
	coords := projection.ProjectAll(normalized)
	centroidCoords := projection.ProjectAll(centroids)
	p.log.LogDetail("Explained variance", fmt.Sprintf("%.1f%%", projection.ExplainedVariance()*100))

	// Phase 4: persona construction
	p.log.LogStep(4, "Constructing personas")
	mean, std := persona.PopulationStats(normalized)
	reps := cluster.Representatives(normalized, selection.Labels, centroids)
	personas := persona.BuildPersonas(sessionMetrics, centroids, counts, centroidCoords, reps, mean, std)
	for _, pr := range personas {
		p.log.LogDetail(fmt.Sprintf("Cluster %d", pr.ClusterID), pr.Name)
	}

	// Phase 5: monthly aggregation
	p.log.LogStep(5, "Aggregating by month")
	monthly := persona.AggregateByMonth(sessionMetrics, normalized, selection.Labels, coords)
	p.log.LogDetail("Months", len(monthly))

	// Phase 6: artifact assembly
	p.log.LogStep(6, "Assembling output")
	records := make([]output.SessionRecord, len(sessionMetrics))
	for i := range sessionMetrics {
		normalizedMap := make(map[string]float64, len(metrics.Columns))
		for c, col := range metrics.Columns {
			normalizedMap[col] = normalized[i][c]
		}
		records[i] = output.SessionRecord{
			SessionID:         sessionMetrics[i].SessionID,
			UserID:            sessionMetrics[i].UserID,
			Month:             sessionMetrics[i].Month,
			ClusterID:         selection.Labels[i],
			PCAX:              coords[i][0],
			PCAY:              coords[i][1],
			BehavioralMetrics: normalizedMap,
		}
	}

	months := make([]string, 0, len(monthly))
	for month := range monthly {
		months = append(months, month)
	}
	sort.Strings(months)

	artifacts := &output.Artifacts{
		Personas:        personas,
		MonthlyClusters: monthly,
		Sessions:        records,
		Metadata: output.Metadata{
			GeneratedAt:   time.Now(),
			RunID:         uuid.NewString(),
			TotalSessions: len(sessionMetrics),
			TotalUsers:    len(tables.Users),
			TotalClusters: selection.K,
			Months:        months,
			MetricColumns: metrics.Columns,
			PCABounds:     paddedBounds(coords),
		},
	}

	p.log.LogSummary(len(sessionMetrics), droppedRows, time.Since(start))

	return artifacts, nil
}

// RunAndWrite executes the pipeline and writes all four JSON artifacts to the
// configured output directory.
func (p *Pipeline) RunAndWrite() error {
	artifacts, err := p.Run()
	if err != nil {
		return err
	}

	if err := output.Write(p.cfg.OutputDir, artifacts); err != nil {
		return err
	}
	p.log.LogSuccess(fmt.Sprintf("Wrote artifacts to %s", p.cfg.OutputDir))

	return nil
}

// paddedBounds computes projection-axis bounds padded by 10% of the observed
// range on each axis, keeping chart scaling stable across renders.
func paddedBounds(coords [][2]float64) output.Bounds {
	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, c := range coords {
		xMin = math.Min(xMin, c[0])
		xMax = math.Max(xMax, c[0])
		yMin = math.Min(yMin, c[1])
		yMax = math.Max(yMax, c[1])
	}

	xPad := (xMax - xMin) * 0.1
	yPad := (yMax - yMin) * 0.1

	return output.Bounds{
		XMin: xMin - xPad,
		XMax: xMax + xPad,
		YMin: yMin - yPad,
		YMax: yMax + yPad,
	}
}
