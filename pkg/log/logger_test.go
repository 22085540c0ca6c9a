package log

import (
	"testing"
	"time"

	"github.com/stagekit/stage-go/pkg/events"
)

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}

	// Should not panic with any event type
	event := Event{
		Timestamp: time.Now(),
		SessionID: "test-session",
		Type:      events.TypeStateChanged,
		Category:  CategoryState,
	}

	// Test with nil payloads
	logger.Log(event)

	// Test with state payload
	event.State = &StateEvent{Connection: "CONNECTED", Init: "NOT_INITIALIZED"}
	logger.Log(event)

	// Test with motion payload
	event.State = nil
	target := 50.0
	event.Motion = &MotionEvent{Op: "absolute", Axis: "X", Target: &target}
	logger.Log(event)

	// Test with sequence payload
	event.Motion = nil
	event.Sequence = &SequenceEvent{Index: 1, Count: 2}
	logger.Log(event)

	// Test with position payload
	event.Sequence = nil
	event.Position = &PositionEvent{X: 10, Y: 20, Z: 30}
	logger.Log(event)

	// Test with error payload
	event.Position = nil
	event.Error = &ErrorEventData{Message: "test error"}
	logger.Log(event)
}

func TestLoggerInterfaceSatisfaction(t *testing.T) {
	// Compile-time check that NoopLogger satisfies Logger interface
	var _ Logger = NoopLogger{}
	var _ Logger = &NoopLogger{}
}

func TestNoopLoggerIsZeroValue(t *testing.T) {
	// NoopLogger should be usable as zero value
	var logger NoopLogger
	logger.Log(Event{})
}
