// Package output serializes the pipeline's results to the four flat JSON
// artifacts consumed by the dashboard.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harrison/personalens/internal/filelock"
	"github.com/harrison/personalens/internal/persona"
)

// Artifact file names within the output directory.
const (
	PersonasFile        = "personas.json"
	MonthlyClustersFile = "monthly_clusters.json"
	SessionsFile        = "sessions.json"
	MetadataFile        = "metadata.json"

	lockFile = ".personalens.lock"
)

// SessionRecord is one drill-down row in sessions.json: the session's cluster
// assignment, projected coordinates, and normalized metric map.
type SessionRecord struct {
	SessionID         string             `json:"session_id"`
	UserID            string             `json:"user_id"`
	Month             string             `json:"month"`
	ClusterID         int                `json:"cluster_id"`
	PCAX              float64            `json:"pca_x"`
	PCAY              float64            `json:"pca_y"`
	BehavioralMetrics map[string]float64 `json:"behavioral_metrics"`
}

// Bounds are padded projection-axis limits for stable chart scaling across
// separate renders.
type Bounds struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

// Metadata describes one pipeline run.
type Metadata struct {
	GeneratedAt   time.Time `json:"generated_at"`
	RunID         string    `json:"run_id"`
	TotalSessions int       `json:"total_sessions"`
	TotalUsers    int       `json:"total_users"`
	TotalClusters int       `json:"total_clusters"`
	Months        []string  `json:"months"`
	MetricColumns []string  `json:"bkm_columns"`
	PCABounds     Bounds    `json:"pca_bounds"`
}

// Artifacts is the complete output of one run. All four payloads are
// materialized before the first byte is written, so a failed run never leaves
// a partial artifact set behind.
type Artifacts struct {
	Personas        []persona.Persona
	MonthlyClusters map[string]persona.MonthlySnapshot
	Sessions        []SessionRecord
	Metadata        Metadata
}

// Write serializes all artifacts into dir. The directory is guarded by an
// advisory lock for the duration of the write; each file lands via an atomic
// rename. Returns an error without writing anything if another run holds the
// lock or any payload fails to marshal.
func Write(dir string, a *Artifacts) error {
	payloads := []struct {
		name string
		data interface{}
	}{
		{PersonasFile, a.Personas},
		{MonthlyClustersFile, a.MonthlyClusters},
		{SessionsFile, a.Sessions},
		{MetadataFile, a.Metadata},
	}

	encoded := make(map[string][]byte, len(payloads))
	for _, p := range payloads {
		data, err := json.MarshalIndent(p.data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", p.name, err)
		}
		encoded[p.name] = data
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	lock := filelock.New(filepath.Join(dir, lockFile))
	acquired, err := lock.TryLock()
	if err != nil {
		return err
	}
	if !acquired {
		return fmt.Errorf("output directory %s is locked by another run", dir)
	}
	defer lock.Unlock()

	for _, p := range payloads {
		if err := filelock.AtomicWrite(filepath.Join(dir, p.name), encoded[p.name]); err != nil {
			return err
		}
	}

	return nil
}
