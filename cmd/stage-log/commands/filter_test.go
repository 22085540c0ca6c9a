package commands

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stagekit/stage-go/pkg/events"
	"github.com/stagekit/stage-go/pkg/log"
)

func TestFilterBySessionID(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	evs := []log.Event{
		{Timestamp: ts, SessionID: "session-1", Category: log.CategoryPosition},
		{Timestamp: ts, SessionID: "session-2", Category: log.CategoryPosition},
		{Timestamp: ts, SessionID: "session-1", Category: log.CategoryPosition},
	}

	path := createTestLogFile(t, evs)
	outPath := filepath.Join(t.TempDir(), "filtered.stlog")

	err := RunFilter(path, FilterOptions{
		Output:    outPath,
		SessionID: "session-1",
	})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	// Verify output
	reader, err := log.NewReader(outPath)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		if event.SessionID != "session-1" {
			t.Errorf("expected session-1, got %s", event.SessionID)
		}
		count++
	}

	if count != 2 {
		t.Errorf("expected 2 events, got %d", count)
	}
}

func TestFilterByTimeRange(t *testing.T) {
	base := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	evs := []log.Event{
		{Timestamp: base, SessionID: "session-1", Category: log.CategoryPosition},
		{Timestamp: base.Add(time.Hour), SessionID: "session-1", Category: log.CategoryPosition},
		{Timestamp: base.Add(2 * time.Hour), SessionID: "session-1", Category: log.CategoryPosition},
	}

	path := createTestLogFile(t, evs)
	outPath := filepath.Join(t.TempDir(), "filtered.stlog")

	err := RunFilter(path, FilterOptions{
		Output:    outPath,
		TimeStart: base.Add(30 * time.Minute).Format(time.RFC3339),
		TimeEnd:   base.Add(90 * time.Minute).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	// Verify output - should only have the 10:00 + 1hr event
	reader, err := log.NewReader(outPath)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		_, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		count++
	}

	if count != 1 {
		t.Errorf("expected 1 event, got %d", count)
	}
}

func TestFilterCommandByCategory(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	evs := []log.Event{
		{Timestamp: ts, Category: log.CategoryState, State: &log.StateEvent{Connection: "CONNECTED"}},
		{Timestamp: ts, Category: log.CategoryMotion, Motion: &log.MotionEvent{Op: "absolute", Axis: "X"}},
		{Timestamp: ts, Category: log.CategoryPosition, Position: &log.PositionEvent{}},
	}

	path := createTestLogFile(t, evs)
	outPath := filepath.Join(t.TempDir(), "filtered.stlog")

	err := RunFilter(path, FilterOptions{
		Output:   outPath,
		Category: "motion",
	})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	reader, err := log.NewReader(outPath)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		if event.Category != log.CategoryMotion {
			t.Errorf("expected motion category, got %v", event.Category)
		}
		count++
	}

	if count != 1 {
		t.Errorf("expected 1 event, got %d", count)
	}
}

func TestFilterCommandByAxis(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	evs := []log.Event{
		{Timestamp: ts, Category: log.CategoryMotion, Motion: &log.MotionEvent{Op: "absolute", Axis: "X"}},
		{Timestamp: ts, Category: log.CategoryMotion, Motion: &log.MotionEvent{Op: "absolute", Axis: "Z"}},
		{Timestamp: ts, Category: log.CategoryError, Error: &log.ErrorEventData{Axis: "Z", Message: "stall"}},
	}

	path := createTestLogFile(t, evs)
	outPath := filepath.Join(t.TempDir(), "filtered.stlog")

	err := RunFilter(path, FilterOptions{
		Output: outPath,
		Axis:   "z",
	})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	reader, err := log.NewReader(outPath)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		if event.AxisName() != "Z" {
			t.Errorf("expected axis Z, got %q", event.AxisName())
		}
		count++
	}

	if count != 2 {
		t.Errorf("expected 2 events, got %d", count)
	}
}

func TestFilterWritesCBOR(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	evs := []log.Event{
		{Timestamp: ts, SessionID: "session-1", Type: events.TypePositionUpdated, Category: log.CategoryPosition, Position: &log.PositionEvent{X: 1}},
	}

	path := createTestLogFile(t, evs)
	outPath := filepath.Join(t.TempDir(), "filtered.stlog")

	err := RunFilter(path, FilterOptions{
		Output: outPath,
	})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	// Verify it's readable as CBOR
	reader, err := log.NewReader(outPath)
	if err != nil {
		t.Fatalf("failed to open output as CBOR: %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != nil {
		t.Fatalf("failed to read event: %v", err)
	}

	if event.SessionID != "session-1" {
		t.Errorf("expected session-1, got %s", event.SessionID)
	}
}
