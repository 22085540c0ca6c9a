package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stagekit/stage-go/pkg/events"
)

func createTestLogFile(t *testing.T, evs []Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.stlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}

	for _, e := range evs {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func TestReaderIteratesEvents(t *testing.T) {
	evs := []Event{
		{Timestamp: time.Now(), SessionID: "session-1", Type: events.TypeConnectionStarted, Category: CategoryState},
		{Timestamp: time.Now(), SessionID: "session-2", Type: events.TypeMotionStarted, Category: CategoryMotion},
		{Timestamp: time.Now(), SessionID: "session-3", Type: events.TypePositionUpdated, Category: CategoryPosition},
	}

	path := createTestLogFile(t, evs)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}

	// Verify order
	if read[0].SessionID != "session-1" {
		t.Errorf("first event SessionID = %q, want %q", read[0].SessionID, "session-1")
	}
	if read[2].SessionID != "session-3" {
		t.Errorf("last event SessionID = %q, want %q", read[2].SessionID, "session-3")
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.stlog")

	// Create empty file
	logger, _ := NewFileLogger(path)
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != io.EOF {
		t.Errorf("expected io.EOF, got err=%v, event=%+v", err, event)
	}
}

func TestReaderHandlesTruncatedFile(t *testing.T) {
	evs := []Event{
		{Timestamp: time.Now(), SessionID: "session-1", Type: events.TypeConnectionStarted, Category: CategoryState},
	}

	path := createTestLogFile(t, evs)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	// Read first event
	_, err = reader.Next()
	if err != nil {
		t.Fatalf("first Next failed: %v", err)
	}

	// Second read should return EOF
	_, err = reader.Next()
	if err != io.EOF {
		t.Errorf("expected io.EOF after all events, got %v", err)
	}
}

func TestReaderFilterBySessionID(t *testing.T) {
	evs := []Event{
		{Timestamp: time.Now(), SessionID: "session-A", Type: events.TypeConnectionStarted, Category: CategoryState},
		{Timestamp: time.Now(), SessionID: "session-B", Type: events.TypeMotionStarted, Category: CategoryMotion},
		{Timestamp: time.Now(), SessionID: "session-A", Type: events.TypePositionUpdated, Category: CategoryPosition},
		{Timestamp: time.Now(), SessionID: "session-C", Type: events.TypeStateChanged, Category: CategoryState},
	}

	path := createTestLogFile(t, evs)

	filter := Filter{SessionID: "session-A"}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2", len(read))
	}

	for _, e := range read {
		if e.SessionID != "session-A" {
			t.Errorf("event has SessionID=%q, want %q", e.SessionID, "session-A")
		}
	}
}

func TestReaderFilterByCategory(t *testing.T) {
	evs := []Event{
		{Timestamp: time.Now(), SessionID: "session-1", Type: events.TypeConnectionStarted, Category: CategoryState},
		{Timestamp: time.Now(), SessionID: "session-2", Type: events.TypeMotionStarted, Category: CategoryMotion},
		{Timestamp: time.Now(), SessionID: "session-3", Type: events.TypeMotionCompleted, Category: CategoryMotion},
		{Timestamp: time.Now(), SessionID: "session-4", Type: events.TypePositionUpdated, Category: CategoryPosition},
	}

	path := createTestLogFile(t, evs)

	cat := CategoryMotion
	filter := Filter{Category: &cat}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2", len(read))
	}

	for _, e := range read {
		if e.Category != CategoryMotion {
			t.Errorf("event has Category=%v, want %v", e.Category, CategoryMotion)
		}
	}
}

func TestReaderFilterByType(t *testing.T) {
	evs := []Event{
		{Timestamp: time.Now(), SessionID: "session-1", Type: events.TypeMotionStarted, Category: CategoryMotion},
		{Timestamp: time.Now(), SessionID: "session-2", Type: events.TypeMotionCompleted, Category: CategoryMotion},
		{Timestamp: time.Now(), SessionID: "session-3", Type: events.TypeMotionStarted, Category: CategoryMotion},
		{Timestamp: time.Now(), SessionID: "session-4", Type: events.TypeMotionFailed, Category: CategoryMotion},
	}

	path := createTestLogFile(t, evs)

	typ := events.TypeMotionStarted
	filter := Filter{Type: &typ}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2", len(read))
	}

	for _, e := range read {
		if e.Type != events.TypeMotionStarted {
			t.Errorf("event has Type=%v, want %v", e.Type, events.TypeMotionStarted)
		}
	}
}

func TestReaderFilterByAxis(t *testing.T) {
	targetX := 50.0
	targetZ := 120.0
	evs := []Event{
		{Timestamp: time.Now(), SessionID: "s", Type: events.TypeMotionStarted, Category: CategoryMotion, Motion: &MotionEvent{Op: "absolute", Axis: "X", Target: &targetX}},
		{Timestamp: time.Now(), SessionID: "s", Type: events.TypeMotionStarted, Category: CategoryMotion, Motion: &MotionEvent{Op: "absolute", Axis: "Z", Target: &targetZ}},
		{Timestamp: time.Now(), SessionID: "s", Type: events.TypeErrorOccurred, Category: CategoryError, Error: &ErrorEventData{Kind: "MOTION", Axis: "X", Message: "stall"}},
		{Timestamp: time.Now(), SessionID: "s", Type: events.TypePositionUpdated, Category: CategoryPosition, Position: &PositionEvent{X: 1, Y: 2, Z: 3}},
	}

	path := createTestLogFile(t, evs)

	filter := Filter{Axis: "X"}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	// The X move and the X error match; the Z move and the
	// position sample (no axis) do not.
	if len(read) != 2 {
		t.Fatalf("got %d events, want 2", len(read))
	}

	for _, e := range read {
		if e.AxisName() != "X" {
			t.Errorf("event has axis %q, want %q", e.AxisName(), "X")
		}
	}
}

func TestReaderFilterByTimeRange(t *testing.T) {
	baseTime := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)

	evs := []Event{
		{Timestamp: baseTime.Add(-1 * time.Hour), SessionID: "session-1", Type: events.TypeConnectionStarted, Category: CategoryState},
		{Timestamp: baseTime, SessionID: "session-2", Type: events.TypeMotionStarted, Category: CategoryMotion},
		{Timestamp: baseTime.Add(30 * time.Minute), SessionID: "session-3", Type: events.TypePositionUpdated, Category: CategoryPosition},
		{Timestamp: baseTime.Add(2 * time.Hour), SessionID: "session-4", Type: events.TypeStateChanged, Category: CategoryState},
	}

	path := createTestLogFile(t, evs)

	start := baseTime.Add(-5 * time.Minute)
	end := baseTime.Add(1 * time.Hour)
	filter := Filter{
		TimeStart: &start,
		TimeEnd:   &end,
	}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2 (events within time range)", len(read))
	}

	// Verify it's the middle two events
	if read[0].SessionID != "session-2" {
		t.Errorf("first event SessionID = %q, want %q", read[0].SessionID, "session-2")
	}
	if read[1].SessionID != "session-3" {
		t.Errorf("second event SessionID = %q, want %q", read[1].SessionID, "session-3")
	}
}

func TestReaderCombinedFilters(t *testing.T) {
	target := 25.0
	evs := []Event{
		{Timestamp: time.Now(), SessionID: "session-A", Type: events.TypeConnectionStarted, Category: CategoryState},
		{Timestamp: time.Now(), SessionID: "session-A", Type: events.TypeMotionStarted, Category: CategoryMotion, Motion: &MotionEvent{Op: "absolute", Axis: "Y", Target: &target}},
		{Timestamp: time.Now(), SessionID: "session-B", Type: events.TypeMotionStarted, Category: CategoryMotion, Motion: &MotionEvent{Op: "absolute", Axis: "X", Target: &target}},
		{Timestamp: time.Now(), SessionID: "session-A", Type: events.TypeMotionStarted, Category: CategoryMotion, Motion: &MotionEvent{Op: "absolute", Axis: "X", Target: &target}},
	}

	path := createTestLogFile(t, evs)

	cat := CategoryMotion
	filter := Filter{
		SessionID: "session-A",
		Category:  &cat,
		Axis:      "X",
	}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	// Only the last event matches all criteria
	if len(read) != 1 {
		t.Fatalf("got %d events, want 1", len(read))
	}

	if read[0].SessionID != "session-A" || read[0].Category != CategoryMotion || read[0].AxisName() != "X" {
		t.Error("event doesn't match all filter criteria")
	}
}
