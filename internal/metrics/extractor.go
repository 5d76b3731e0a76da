// Package metrics computes per-session behavioral metric vectors from raw
// action sequences. Each session with at least one action yields a fixed
// ten-dimensional vector; the nine ratio metrics are action-count fractions
// in [0,1] before any normalization.
package metrics

import (
	"math"
	"strings"
	"time"

	"github.com/harrison/personalens/internal/dataset"
)

// Columns lists the metric names in canonical vector order. Every matrix and
// per-metric map in the pipeline is aligned with this order.
var Columns = []string{
	"session_duration_seconds",
	"action_density",
	"total_action_count",
	"purchase_intent_ratio",
	"search_ratio",
	"product_exploration_ratio",
	"review_engagement_ratio",
	"filter_usage_ratio",
	"option_selection_ratio",
	"input_ratio",
}

// SessionMetrics is the behavioral metric vector for one session, with the
// identifying fields carried through for output records.
type SessionMetrics struct {
	SessionID string
	UserID    string
	Month     string
	Start     time.Time
	Values    []float64 // aligned with Columns
}

// Map returns the metric values keyed by column name.
func (sm *SessionMetrics) Map() map[string]float64 {
	m := make(map[string]float64, len(Columns))
	for i, col := range Columns {
		m[col] = sm.Values[i]
	}
	return m
}

// actionCounts tallies the per-session action categories that feed the
// ratio metrics. Matching is case-insensitive; empty values match nothing.
type actionCounts struct {
	total         int
	inputs        int
	purchase      int
	search        int
	productLink   int
	review        int
	filter        int
	productOption int
	quantity      int
}

func (c *actionCounts) add(row dataset.ActionRow) {
	c.total++

	if strings.EqualFold(row.ActionType, "input") {
		c.inputs++
	}

	switch strings.ToLower(row.ClickType) {
	case "purchase":
		c.purchase++
	case "search":
		c.search++
	case "product_link":
		c.productLink++
	case "review":
		c.review++
	case "filter":
		c.filter++
	case "product_option":
		c.productOption++
	case "quantity":
		c.quantity++
	}
}

// Extract computes a metric vector for every session that has at least one
// action. Sessions without actions are silently skipped, as are orphan action
// groups whose session id is absent from the session table. Output order
// follows the input session order.
func Extract(sessions []dataset.Session, actions []dataset.ActionRow) []SessionMetrics {
	counts := make(map[string]*actionCounts, len(sessions))
	for _, row := range actions {
		c, ok := counts[row.SessionID]
		if !ok {
			c = &actionCounts{}
			counts[row.SessionID] = c
		}
		c.add(row)
	}

	result := make([]SessionMetrics, 0, len(sessions))
	for _, session := range sessions {
		c, ok := counts[session.ID]
		if !ok || c.total == 0 {
			continue
		}

		total := float64(c.total)
		duration := session.DurationSeconds

		values := []float64{
			duration,
			total / math.Max(1, duration),
			total,
			float64(c.purchase) / total,
			float64(c.search) / total,
			float64(c.productLink) / total,
			float64(c.review) / total,
			float64(c.filter) / total,
			float64(c.productOption+c.quantity) / total,
			float64(c.inputs) / total,
		}

		result = append(result, SessionMetrics{
			SessionID: session.ID,
			UserID:    session.UserID,
			Month:     session.Month,
			Start:     session.Start,
			Values:    values,
		})
	}

	return result
}

// Matrix stacks the metric vectors into a row-per-session matrix.
func Matrix(sessions []SessionMetrics) [][]float64 {
	rows := make([][]float64, len(sessions))
	for i := range sessions {
		rows[i] = sessions[i].Values
	}
	return rows
}
