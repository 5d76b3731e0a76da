package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/harrison/personalens/internal/dataset"
)

func session(id, userID string, duration float64) dataset.Session {
	return dataset.Session{
		ID:              id,
		UserID:          userID,
		Start:           time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC),
		DurationSeconds: duration,
		Month:           "2024-01 (January)",
	}
}

func TestExtractScenario(t *testing.T) {
	// 5 actions: 2 search clicks, 1 purchase click, 2 text inputs, over 300s
	sessions := []dataset.Session{session("s1", "u1", 300)}
	actions := []dataset.ActionRow{
		{SessionID: "s1", ActionType: "click", ClickType: "search"},
		{SessionID: "s1", ActionType: "click", ClickType: "search"},
		{SessionID: "s1", ActionType: "click", ClickType: "purchase"},
		{SessionID: "s1", ActionType: "input", ClickType: ""},
		{SessionID: "s1", ActionType: "input", ClickType: ""},
	}

	result := Extract(sessions, actions)
	if len(result) != 1 {
		t.Fatalf("expected 1 vector, got %d", len(result))
	}

	m := result[0].Map()
	checks := map[string]float64{
		"session_duration_seconds":  300,
		"action_density":            5.0 / 300.0,
		"total_action_count":        5,
		"search_ratio":              0.4,
		"purchase_intent_ratio":     0.2,
		"input_ratio":               0.4,
		"product_exploration_ratio": 0,
		"review_engagement_ratio":   0,
		"filter_usage_ratio":        0,
		"option_selection_ratio":    0,
	}
	for col, want := range checks {
		if got := m[col]; math.Abs(got-want) > 1e-12 {
			t.Errorf("%s = %v, want %v", col, got, want)
		}
	}
}

func TestExtractCaseInsensitive(t *testing.T) {
	sessions := []dataset.Session{session("s1", "u1", 10)}
	actions := []dataset.ActionRow{
		{SessionID: "s1", ActionType: "CLICK", ClickType: "Purchase"},
		{SessionID: "s1", ActionType: "Input", ClickType: ""},
	}

	result := Extract(sessions, actions)
	m := result[0].Map()
	if m["purchase_intent_ratio"] != 0.5 {
		t.Errorf("purchase_intent_ratio = %v, want 0.5", m["purchase_intent_ratio"])
	}
	if m["input_ratio"] != 0.5 {
		t.Errorf("input_ratio = %v, want 0.5", m["input_ratio"])
	}
}

func TestExtractOptionSelectionCombinesSubtypes(t *testing.T) {
	sessions := []dataset.Session{session("s1", "u1", 10)}
	actions := []dataset.ActionRow{
		{SessionID: "s1", ActionType: "click", ClickType: "product_option"},
		{SessionID: "s1", ActionType: "click", ClickType: "quantity"},
		{SessionID: "s1", ActionType: "click", ClickType: "search"},
		{SessionID: "s1", ActionType: "click", ClickType: ""},
	}

	result := Extract(sessions, actions)
	if got := result[0].Map()["option_selection_ratio"]; got != 0.5 {
		t.Errorf("option_selection_ratio = %v, want 0.5", got)
	}
}

func TestExtractSkipsSessionsWithoutActions(t *testing.T) {
	sessions := []dataset.Session{
		session("s1", "u1", 10),
		session("s2", "u2", 10),
	}
	actions := []dataset.ActionRow{
		{SessionID: "s1", ActionType: "click", ClickType: "search"},
	}

	result := Extract(sessions, actions)
	if len(result) != 1 {
		t.Fatalf("expected 1 vector, got %d", len(result))
	}
	if result[0].SessionID != "s1" {
		t.Errorf("kept session = %q, want s1", result[0].SessionID)
	}
}

func TestExtractSkipsOrphanActionGroups(t *testing.T) {
	sessions := []dataset.Session{session("s1", "u1", 10)}
	actions := []dataset.ActionRow{
		{SessionID: "s1", ActionType: "click", ClickType: "search"},
		{SessionID: "ghost", ActionType: "click", ClickType: "purchase"},
	}

	result := Extract(sessions, actions)
	if len(result) != 1 {
		t.Fatalf("expected 1 vector, got %d", len(result))
	}
}

func TestExtractZeroDurationDensity(t *testing.T) {
	sessions := []dataset.Session{session("s1", "u1", 0)}
	actions := []dataset.ActionRow{
		{SessionID: "s1", ActionType: "click", ClickType: ""},
		{SessionID: "s1", ActionType: "click", ClickType: ""},
	}

	result := Extract(sessions, actions)
	// Denominator floors at 1 second
	if got := result[0].Map()["action_density"]; got != 2 {
		t.Errorf("action_density = %v, want 2", got)
	}
}

func TestExtractRatioBounds(t *testing.T) {
	sessions := []dataset.Session{session("s1", "u1", 42)}
	actions := []dataset.ActionRow{
		{SessionID: "s1", ActionType: "click", ClickType: "purchase"},
		{SessionID: "s1", ActionType: "click", ClickType: "purchase"},
		{SessionID: "s1", ActionType: "input", ClickType: "search"},
		{SessionID: "s1", ActionType: "terminate", ClickType: ""},
	}

	result := Extract(sessions, actions)
	m := result[0].Map()
	ratios := []string{
		"purchase_intent_ratio", "search_ratio", "product_exploration_ratio",
		"review_engagement_ratio", "filter_usage_ratio", "option_selection_ratio",
		"input_ratio",
	}
	for _, col := range ratios {
		if m[col] < 0 || m[col] > 1 {
			t.Errorf("%s = %v, outside [0,1]", col, m[col])
		}
	}
	if m["action_density"] < 0 || m["total_action_count"] < 0 {
		t.Error("density and count must be non-negative")
	}
}

func TestExtractPreservesSessionOrder(t *testing.T) {
	sessions := []dataset.Session{
		session("s1", "u1", 10),
		session("s2", "u2", 10),
		session("s3", "u3", 10),
	}
	actions := []dataset.ActionRow{
		{SessionID: "s3", ActionType: "click", ClickType: ""},
		{SessionID: "s1", ActionType: "click", ClickType: ""},
		{SessionID: "s2", ActionType: "click", ClickType: ""},
	}

	result := Extract(sessions, actions)
	want := []string{"s1", "s2", "s3"}
	for i, id := range want {
		if result[i].SessionID != id {
			t.Errorf("result[%d] = %q, want %q", i, result[i].SessionID, id)
		}
	}
}

func TestMatrixAlignsWithColumns(t *testing.T) {
	sessions := []dataset.Session{session("s1", "u1", 10)}
	actions := []dataset.ActionRow{{SessionID: "s1", ActionType: "click", ClickType: "search"}}

	rows := Matrix(Extract(sessions, actions))
	if len(rows) != 1 || len(rows[0]) != len(Columns) {
		t.Fatalf("matrix shape = %dx%d, want 1x%d", len(rows), len(rows[0]), len(Columns))
	}
}
