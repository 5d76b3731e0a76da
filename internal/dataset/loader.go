package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// LoadTables reads the sessions, actions, and users CSV files into memory.
// A missing or headerless file is a fatal error; individual rows are taken
// as-is and validated downstream.
func LoadTables(sessionsPath, actionsPath, usersPath string) (*Tables, error) {
	sessions, err := loadSessions(sessionsPath)
	if err != nil {
		return nil, fmt.Errorf("loading sessions table: %w", err)
	}

	actions, err := loadActions(actionsPath)
	if err != nil {
		return nil, fmt.Errorf("loading actions table: %w", err)
	}

	users, err := loadUsers(usersPath)
	if err != nil {
		return nil, fmt.Errorf("loading users table: %w", err)
	}

	return &Tables{Sessions: sessions, Actions: actions, Users: users}, nil
}

// openCSV opens a CSV file and reads its header row, returning the reader,
// a column-name index, and a close function.
func openCSV(path string) (*csv.Reader, map[string]int, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // column count validated via the header index

	header, err := r.Read()
	if err != nil {
		f.Close()
		if err == io.EOF {
			return nil, nil, nil, fmt.Errorf("%s: missing header row", path)
		}
		return nil, nil, nil, fmt.Errorf("%s: reading header: %w", path, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	return r, index, f.Close, nil
}

// field returns the named column from a record, or "" when the column is
// missing or the record is short. Missing categorical values are treated as
// empty strings, never as a match for any category.
func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func loadSessions(path string) ([]SessionRow, error) {
	r, index, closeFn, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	if _, ok := index["session_id"]; !ok {
		return nil, fmt.Errorf("%s: missing required column session_id", path)
	}

	var rows []SessionRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		rows = append(rows, SessionRow{
			SessionID: field(record, index, "session_id"),
			UserID:    field(record, index, "user_id"),
		})
	}

	return rows, nil
}

func loadActions(path string) ([]ActionRow, error) {
	r, index, closeFn, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	if _, ok := index["session_id"]; !ok {
		return nil, fmt.Errorf("%s: missing required column session_id", path)
	}

	var rows []ActionRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		rows = append(rows, ActionRow{
			SessionID:  field(record, index, "session_id"),
			ActionType: field(record, index, "action_type"),
			ClickType:  field(record, index, "click_type"),
		})
	}

	return rows, nil
}

// loadUsers reads the users table with arbitrary profile columns preserved.
func loadUsers(path string) ([]UserRow, error) {
	r, index, closeFn, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}

	var rows []UserRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		row := make(UserRow, len(names))
		for _, name := range names {
			row[name] = field(record, index, name)
		}
		rows = append(rows, row)
	}

	return rows, nil
}
