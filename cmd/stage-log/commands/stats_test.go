package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stagekit/stage-go/pkg/events"
	"github.com/stagekit/stage-go/pkg/log"
)

func TestIsMove(t *testing.T) {
	target := 50.0
	tests := []struct {
		name  string
		event log.Event
		want  bool
	}{
		{"absolute move", log.Event{Motion: &log.MotionEvent{Op: "absolute", Axis: "X", Target: &target}}, true},
		{"relative move", log.Event{Motion: &log.MotionEvent{Op: "relative", Axis: "Z", Target: &target}}, true},
		{"reference progress", log.Event{Motion: &log.MotionEvent{Op: "referenced", Axis: "Y"}}, false},
		{"job completion", log.Event{Motion: &log.MotionEvent{Op: "park"}}, false},
		{"no motion payload", log.Event{Position: &log.PositionEvent{}}, false},
	}

	for _, tt := range tests {
		if got := isMove(tt.event); got != tt.want {
			t.Errorf("%s: isMove = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRunStats(t *testing.T) {
	base := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	target := 50.0
	evs := []log.Event{
		{
			Timestamp: base,
			SessionID: "session-a",
			Type:      events.TypeStateChanged,
			Category:  log.CategoryState,
			State:     &log.StateEvent{Connection: "CONNECTED", Init: "NOT_INITIALIZED"},
		},
		{
			Timestamp: base.Add(1 * time.Second),
			SessionID: "session-a",
			Type:      events.TypeMotionStarted,
			Category:  log.CategoryMotion,
			Motion:    &log.MotionEvent{Op: "absolute", Axis: "X", Target: &target},
		},
		{
			Timestamp: base.Add(2 * time.Second),
			SessionID: "session-a",
			Type:      events.TypePositionUpdated,
			Category:  log.CategoryPosition,
			Position:  &log.PositionEvent{X: 50, Y: 0, Z: 0},
		},
		{
			Timestamp: base.Add(3 * time.Second),
			SessionID: "session-a",
			Type:      events.TypeErrorOccurred,
			Category:  log.CategoryError,
			Error:     &log.ErrorEventData{Kind: "MOTION", Axis: "X", Message: "stall"},
		},
	}
	path := createTestLogFile(t, evs)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	if !strings.Contains(output, "Total Events: 4") {
		t.Errorf("expected total of 4 events, got: %s", output)
	}
	if !strings.Contains(output, "Duration:   3s") {
		t.Errorf("expected 3s duration, got: %s", output)
	}
	if !strings.Contains(output, "MOTION_STARTED") {
		t.Errorf("expected per-type counts, got: %s", output)
	}
	if !strings.Contains(output, "Moves by Axis:") {
		t.Errorf("expected moves section, got: %s", output)
	}
	if !strings.Contains(output, "Sessions: 1") {
		t.Errorf("expected one session, got: %s", output)
	}
	if !strings.Contains(output, "[session-") {
		t.Errorf("expected session detail line, got: %s", output)
	}
	if !strings.Contains(output, "Errors: 1") {
		t.Errorf("expected error count, got: %s", output)
	}
}
