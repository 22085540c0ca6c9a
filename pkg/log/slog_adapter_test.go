package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stagekit/stage-go/pkg/events"
)

func TestSlogAdapterLogsMotionEvent(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	slogger := slog.New(handler)

	adapter := NewSlogAdapter(slogger)

	target := 125.5
	adapter.Log(Event{
		Timestamp: time.Now(),
		SessionID: "session-123",
		Type:      events.TypeMotionStarted,
		Category:  CategoryMotion,
		Motion: &MotionEvent{
			Op:     "absolute",
			Axis:   "X",
			Target: &target,
		},
	})

	output := buf.String()
	if output == "" {
		t.Fatal("no output produced")
	}

	// Parse JSON log entry
	var logEntry map[string]any
	if err := json.Unmarshal([]byte(output), &logEntry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}

	// Verify key fields
	if logEntry["session"] != "session-123" {
		t.Errorf("session: got %v, want %q", logEntry["session"], "session-123")
	}
	if logEntry["event"] != "MOTION_STARTED" {
		t.Errorf("event: got %v, want %q", logEntry["event"], "MOTION_STARTED")
	}
	if logEntry["category"] != "MOTION" {
		t.Errorf("category: got %v, want %q", logEntry["category"], "MOTION")
	}
	if logEntry["axis"] != "X" {
		t.Errorf("axis: got %v, want %q", logEntry["axis"], "X")
	}
	if logEntry["target"] != float64(125.5) {
		t.Errorf("target: got %v, want %v", logEntry["target"], 125.5)
	}
}

func TestSlogAdapterLogsStateEvent(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	slogger := slog.New(handler)

	adapter := NewSlogAdapter(slogger)

	adapter.Log(Event{
		Timestamp: time.Now(),
		SessionID: "session-456",
		Type:      events.TypeStateChanged,
		Category:  CategoryState,
		State: &StateEvent{
			Connection: "CONNECTED",
			Init:       "NOT_INITIALIZED",
		},
	})

	output := buf.String()
	if output == "" {
		t.Fatal("no output produced")
	}

	// Parse JSON log entry
	var logEntry map[string]any
	if err := json.Unmarshal([]byte(output), &logEntry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}

	// Verify state fields
	if logEntry["connection"] != "CONNECTED" {
		t.Errorf("connection: got %v, want %q", logEntry["connection"], "CONNECTED")
	}
	if logEntry["init"] != "NOT_INITIALIZED" {
		t.Errorf("init: got %v, want %q", logEntry["init"], "NOT_INITIALIZED")
	}
}

func TestSlogAdapterIncludesSessionID(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	slogger := slog.New(handler)

	adapter := NewSlogAdapter(slogger)

	adapter.Log(Event{
		Timestamp: time.Now(),
		SessionID: "abc12345-def6-7890",
		Type:      events.TypeErrorOccurred,
		Category:  CategoryError,
		Error: &ErrorEventData{
			Kind:    "MOTION",
			Message: "axis stalled",
		},
	})

	output := buf.String()
	if !strings.Contains(output, "abc12345-def6-7890") {
		t.Error("output does not contain session ID")
	}
	if !strings.Contains(output, "axis stalled") {
		t.Error("output does not contain error message")
	}
}

func TestSlogAdapterInterfaceSatisfaction(t *testing.T) {
	var _ Logger = (*SlogAdapter)(nil)
}
