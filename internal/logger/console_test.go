package logger

import (
	"bytes"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"
)

var linePattern = regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] \[(TRACE|DEBUG|INFO|WARN|ERROR)\] .+$`)

func TestLogFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, "trace")

	log.LogInfo("processing sessions")

	line := strings.TrimRight(buf.String(), "\n")
	if !linePattern.MatchString(line) {
		t.Errorf("line %q does not match [HH:MM:SS] [LEVEL] message", line)
	}
}

func TestLogLevelFiltering(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		emit       func(*ConsoleLogger)
		wantOutput bool
	}{
		{"debug below info", "info", func(l *ConsoleLogger) { l.LogDebug("x") }, false},
		{"info at info", "info", func(l *ConsoleLogger) { l.LogInfo("x") }, true},
		{"error above info", "info", func(l *ConsoleLogger) { l.LogError("x") }, true},
		{"info below warn", "warn", func(l *ConsoleLogger) { l.LogInfo("x") }, false},
		{"warn at warn", "warn", func(l *ConsoleLogger) { l.LogWarn("x") }, true},
		{"trace at trace", "trace", func(l *ConsoleLogger) { l.LogTrace("x") }, true},
		{"warn below error", "error", func(l *ConsoleLogger) { l.LogWarn("x") }, false},
		{"step suppressed above info", "error", func(l *ConsoleLogger) { l.LogStep(1, "x") }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewConsoleLogger(&buf, tc.configured)
			tc.emit(log)
			if got := buf.Len() > 0; got != tc.wantOutput {
				t.Errorf("output = %v, want %v", got, tc.wantOutput)
			}
		})
	}
}

func TestInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, "chatty")

	log.LogDebug("hidden")
	if buf.Len() != 0 {
		t.Error("debug message logged under defaulted info level")
	}

	log.LogInfo("visible")
	if buf.Len() == 0 {
		t.Error("info message dropped under defaulted info level")
	}
}

func TestNilWriterDiscards(t *testing.T) {
	log := NewConsoleLogger(nil, "info")

	// None of these may panic
	log.LogInfo("x")
	log.LogStep(1, "x")
	log.LogDetail("key", "value")
	log.LogSuccess("x")
	log.LogSummary(1, 0, time.Second)
}

func TestLogStepAndDetail(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, "info")

	log.LogStep(2, "Calculating behavioral metrics")
	log.LogDetail("Sessions", 240)
	log.LogSuccess("metrics computed")

	out := buf.String()
	if !strings.Contains(out, "[Step 2] Calculating behavioral metrics") {
		t.Errorf("missing step header in %q", out)
	}
	if !strings.Contains(out, "  Sessions: 240") {
		t.Errorf("missing detail line in %q", out)
	}
	if !strings.Contains(out, "[OK] metrics computed") {
		t.Errorf("missing success line in %q", out)
	}
}

func TestLogSummary(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, "info")

	log.LogSummary(240, 3, 1500*time.Millisecond)

	out := buf.String()
	for _, want := range []string{
		"=== Run Summary ===",
		"Sessions processed: 240",
		"Rows dropped: 3",
		"Duration: 1.5s",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q in %q", want, out)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{250 * time.Millisecond, "250ms"},
		{time.Second, "1s"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "1m30s"},
	}

	for _, tc := range tests {
		if got := formatDuration(tc.duration); got != tc.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tc.duration, got, tc.want)
		}
	}
}

func TestConcurrentLogging(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, "info")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.LogInfo("concurrent message")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 20 {
		t.Fatalf("got %d lines, want 20", len(lines))
	}
	for _, line := range lines {
		if !linePattern.MatchString(line) {
			t.Errorf("interleaved line %q", line)
		}
	}
}
