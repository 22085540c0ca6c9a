package log

import (
	"time"

	"github.com/stagekit/stage-go/pkg/events"
)

// Event represents one captured session log record.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event was captured (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the recording session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Type is the bus event type this record was captured from.
	Type events.Type `cbor:"3,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"4,keyasint"`

	// Type-specific payload (at most one of these will be set).
	State    *StateEvent     `cbor:"10,keyasint,omitempty"` // Lifecycle transition
	Motion   *MotionEvent    `cbor:"11,keyasint,omitempty"` // Motion job
	Sequence *SequenceEvent  `cbor:"12,keyasint,omitempty"` // Waypoint sequence
	Position *PositionEvent  `cbor:"13,keyasint,omitempty"` // Position sample
	Error    *ErrorEventData `cbor:"14,keyasint,omitempty"` // Failure detail
}

// AxisName returns the axis the event refers to, or "" when it is not
// axis-specific.
func (e Event) AxisName() string {
	switch {
	case e.Motion != nil:
		return e.Motion.Axis
	case e.Error != nil:
		return e.Error.Axis
	default:
		return ""
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState indicates a connection or initialization lifecycle event.
	CategoryState Category = 0
	// CategoryMotion indicates a motion job or sequence event.
	CategoryMotion Category = 1
	// CategoryPosition indicates a periodic position sample.
	CategoryPosition Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryMotion:
		return "MOTION"
	case CategoryPosition:
		return "POSITION"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// CategoryOf maps a bus event type to its log category.
func CategoryOf(t events.Type) Category {
	switch t {
	case events.TypeMotionStarted, events.TypeMotionProgress,
		events.TypeMotionCompleted, events.TypeMotionFailed:
		return CategoryMotion
	case events.TypePositionUpdated:
		return CategoryPosition
	case events.TypeErrorOccurred:
		return CategoryError
	default:
		return CategoryState
	}
}

// StateEvent captures one lifecycle transition with both state machines.
type StateEvent struct {
	// Connection is the connection state name.
	Connection string `cbor:"1,keyasint"`

	// Init is the initialization state name.
	Init string `cbor:"2,keyasint,omitempty"`
}

// MotionEvent captures a motion job event: a single-axis command, a
// reference progress step or a completed job.
type MotionEvent struct {
	// Op names the operation ("absolute", "relative", "referenced", or the
	// job name for completions).
	Op string `cbor:"1,keyasint,omitempty"`

	// Axis the command addressed, if any.
	Axis string `cbor:"2,keyasint,omitempty"`

	// Target of the command: absolute coordinate, or delta for relative
	// moves.
	Target *float64 `cbor:"3,keyasint,omitempty"`
}

// SequenceEvent captures waypoint sequence announcements and progress.
type SequenceEvent struct {
	// Index is the zero-based waypoint index (0 for announcements).
	Index int `cbor:"1,keyasint"`

	// Count is the total number of waypoints.
	Count int `cbor:"2,keyasint"`

	// Target coordinates of the waypoint (progress records only).
	X float64 `cbor:"3,keyasint,omitempty"`
	Y float64 `cbor:"4,keyasint,omitempty"`
	Z float64 `cbor:"5,keyasint,omitempty"`

	// Park indicates the sequence parks when complete (announcements only).
	Park bool `cbor:"6,keyasint,omitempty"`
}

// PositionEvent captures an all-axes position sample, in millimeters.
type PositionEvent struct {
	X float64 `cbor:"1,keyasint"`
	Y float64 `cbor:"2,keyasint"`
	Z float64 `cbor:"3,keyasint"`
}

// ErrorEventData captures a published failure.
type ErrorEventData struct {
	// Kind is the error classification name.
	Kind string `cbor:"1,keyasint,omitempty"`

	// Axis the failure belongs to, if any.
	Axis string `cbor:"2,keyasint,omitempty"`

	// Message is the full error message.
	Message string `cbor:"3,keyasint"`
}
