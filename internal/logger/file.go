package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// OpenRunLog creates a timestamped log file under dir and points the
// latest.log symlink at it. The returned file is meant to be combined with
// os.Stdout via io.MultiWriter and handed to NewConsoleLogger, so a run's
// console output is preserved on disk.
//
// File naming: run-YYYYMMDD-HHMMSS.log.
func OpenRunLog(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	name := fmt.Sprintf("run-%s.log", time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log %s: %w", path, err)
	}

	// Best-effort symlink; filesystems without symlink support still get
	// the run log itself
	latest := filepath.Join(dir, "latest.log")
	os.Remove(latest)
	os.Symlink(name, latest)

	return f, nil
}
