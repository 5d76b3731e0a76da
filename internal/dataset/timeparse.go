package dataset

import (
	"sort"
	"strings"
	"time"
)

// timestampLayouts are the accepted formats for the timestamp tokens embedded
// in session identifiers. Fractional seconds are accepted by time.Parse even
// when the layout omits them.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp attempts to parse a single timestamp token.
func parseTimestamp(token string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, token); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// splitSessionTimes extracts start and end timestamps from a session id whose
// last two underscore-delimited segments are timestamps. Returns ok=false for
// identifiers that do not carry two parsable timestamp tokens.
func splitSessionTimes(sessionID string) (start, end time.Time, ok bool) {
	parts := strings.Split(sessionID, "_")
	if len(parts) < 3 {
		return time.Time{}, time.Time{}, false
	}

	start, okStart := parseTimestamp(parts[len(parts)-2])
	end, okEnd := parseTimestamp(parts[len(parts)-1])
	if !okStart || !okEnd {
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}

// MonthLabel formats a timestamp as a "YYYY-MM (MonthName)" bucket label.
// The numeric prefix keeps labels sortable.
func MonthLabel(t time.Time) string {
	return t.Format("2006-01 (January)")
}

// ParseSessionTimes derives start/end timestamps, durations, and month labels
// for the session rows. Rows whose identifiers do not embed two parsable
// timestamps are silently dropped. The returned sessions are sorted ascending
// by start time, which fixes iteration order for every downstream phase.
// The second return value is the number of dropped rows.
func ParseSessionTimes(rows []SessionRow) ([]Session, int) {
	sessions := make([]Session, 0, len(rows))
	dropped := 0

	for _, row := range rows {
		start, end, ok := splitSessionTimes(row.SessionID)
		if !ok {
			dropped++
			continue
		}

		duration := end.Sub(start).Seconds()
		if duration < 0 {
			duration = 0
		}

		sessions = append(sessions, Session{
			ID:              row.SessionID,
			UserID:          row.UserID,
			Start:           start,
			End:             end,
			DurationSeconds: duration,
			Month:           MonthLabel(start),
		})
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Start.Before(sessions[j].Start)
	})

	return sessions, dropped
}
