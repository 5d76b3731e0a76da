package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenRunLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	f, err := OpenRunLog(dir)
	if err != nil {
		t.Fatalf("OpenRunLog: %v", err)
	}
	defer f.Close()

	if _, err := f.WriteString("run started\n"); err != nil {
		t.Fatalf("write: %v", err)
	}

	base := filepath.Base(f.Name())
	if !strings.HasPrefix(base, "run-") || !strings.HasSuffix(base, ".log") {
		t.Errorf("run log named %q, want run-*.log", base)
	}

	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "run started\n" {
		t.Errorf("run log contents = %q", data)
	}
}

func TestOpenRunLogLatestSymlink(t *testing.T) {
	dir := t.TempDir()

	f, err := OpenRunLog(dir)
	if err != nil {
		t.Fatalf("OpenRunLog: %v", err)
	}
	defer f.Close()

	target, err := os.Readlink(filepath.Join(dir, "latest.log"))
	if err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if target != filepath.Base(f.Name()) {
		t.Errorf("latest.log points at %q, want %q", target, filepath.Base(f.Name()))
	}
}
