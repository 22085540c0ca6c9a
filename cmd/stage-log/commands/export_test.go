package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stagekit/stage-go/pkg/events"
	"github.com/stagekit/stage-go/pkg/log"
)

func createTestLogFile(t *testing.T, evs []log.Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.stlog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	for _, e := range evs {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func TestExportToJSONL(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	target := 50.0
	evs := []log.Event{
		{
			Timestamp: ts,
			SessionID: "abc12345",
			Type:      events.TypeMotionStarted,
			Category:  log.CategoryMotion,
			Motion: &log.MotionEvent{
				Op:     "absolute",
				Axis:   "X",
				Target: &target,
			},
		},
		{
			Timestamp: ts.Add(time.Second),
			SessionID: "abc12345",
			Type:      events.TypeMotionCompleted,
			Category:  log.CategoryMotion,
			Motion: &log.MotionEvent{
				Op: "move X",
			},
		},
	}

	path := createTestLogFile(t, evs)

	// Export to JSONL in memory (via temp file)
	outPath := filepath.Join(t.TempDir(), "out.jsonl")
	err := RunExport(path, "jsonl", outPath)
	if err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	// Read and verify
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 lines, got %d", len(lines))
	}

	// Parse first line
	var event1 map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &event1); err != nil {
		t.Errorf("failed to parse line 1: %v", err)
	}
	if event1["SessionID"] != "abc12345" {
		t.Errorf("expected SessionID abc12345, got %v", event1["SessionID"])
	}
}

func TestExportToCSV(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	target := 125.5
	evs := []log.Event{
		{
			Timestamp: ts,
			SessionID: "abc12345",
			Type:      events.TypeMotionStarted,
			Category:  log.CategoryMotion,
			Motion: &log.MotionEvent{
				Op:     "absolute",
				Axis:   "X",
				Target: &target,
			},
		},
	}

	path := createTestLogFile(t, evs)

	outPath := filepath.Join(t.TempDir(), "out.csv")
	err := RunExport(path, "csv", outPath)
	if err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	// Check header
	if !strings.HasPrefix(string(data), "timestamp,session_id,category,type") {
		t.Errorf("expected CSV header, got: %s", string(data[:50]))
	}

	// Check data row exists
	lines := strings.Split(string(data), "\n")
	if len(lines) < 2 {
		t.Errorf("expected header + data row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "125.500") {
		t.Errorf("expected target in data row, got: %s", lines[1])
	}
}

func TestExportWritesToStdout(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	evs := []log.Event{
		{
			Timestamp: ts,
			SessionID: "abc12345",
			Type:      events.TypePositionUpdated,
			Category:  log.CategoryPosition,
			Position:  &log.PositionEvent{X: 10, Y: 20, Z: 30},
		},
	}

	path := createTestLogFile(t, evs)

	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := RunExport(path, "jsonl", "") // empty output means stdout

	w.Close()
	os.Stdout = oldStdout

	if err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	var buf bytes.Buffer
	buf.ReadFrom(r)

	if buf.Len() == 0 {
		t.Error("expected output to stdout")
	}
}

func TestExportUnknownFormat(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	evs := []log.Event{
		{
			Timestamp: ts,
			SessionID: "abc12345",
			Type:      events.TypePositionUpdated,
			Category:  log.CategoryPosition,
			Position:  &log.PositionEvent{},
		},
	}

	path := createTestLogFile(t, evs)
	outPath := filepath.Join(t.TempDir(), "out.xml")

	err := RunExport(path, "xml", outPath)
	if err == nil {
		t.Error("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("expected 'unknown format' error, got: %v", err)
	}
}
