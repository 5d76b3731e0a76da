// Package dataset loads the raw session, action, and user tables and derives
// session timing from session identifiers.
package dataset

import "time"

// SessionRow is a raw row from the sessions table.
type SessionRow struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

// ActionRow is a raw row from the actions table. Free-text columns
// (input text, rationale, product blobs) are ignored at load time.
type ActionRow struct {
	SessionID  string `json:"session_id"`
	ActionType string `json:"action_type"`
	ClickType  string `json:"click_type"`
}

// UserRow is a raw row from the users table. Profile columns are carried
// as-is; this pipeline reads but never transforms them.
type UserRow map[string]string

// Tables holds the three loaded input tables.
type Tables struct {
	Sessions []SessionRow
	Actions  []ActionRow
	Users    []UserRow
}

// Session is a session with timing successfully derived from its identifier.
type Session struct {
	ID              string    `json:"session_id"`
	UserID          string    `json:"user_id"`
	Start           time.Time `json:"start_time"`
	End             time.Time `json:"end_time"`
	DurationSeconds float64   `json:"duration_seconds"`
	Month           string    `json:"month"`
}
