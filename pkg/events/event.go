package events

import "github.com/stagekit/stage-go/pkg/stage"

// Type identifies a bus event.
type Type uint8

const (
	// TypeConnectionStarted is published when a connect attempt begins.
	TypeConnectionStarted Type = iota + 1

	// TypeConnectionSucceeded is published when all axes are connected.
	TypeConnectionSucceeded

	// TypeConnectionFailed is published when a connect attempt fails.
	TypeConnectionFailed

	// TypeInitializationStarted is published when referencing begins.
	TypeInitializationStarted

	// TypeInitializationProgress is published once per referenced axis.
	TypeInitializationProgress

	// TypeInitializationSucceeded is published when all axes are referenced.
	TypeInitializationSucceeded

	// TypeInitializationFailed is published when referencing fails, or when
	// initialize is requested while not connected.
	TypeInitializationFailed

	// TypeMotionStarted is published when a motion job is submitted.
	TypeMotionStarted

	// TypeMotionProgress is published on move completion and per waypoint.
	TypeMotionProgress

	// TypeMotionCompleted is published when a motion job succeeds.
	TypeMotionCompleted

	// TypeMotionFailed is published when a motion job fails or is cancelled.
	TypeMotionFailed

	// TypePositionUpdated carries a periodic position snapshot.
	TypePositionUpdated

	// TypeStateChanged carries every connection/initialization transition.
	TypeStateChanged

	// TypeErrorOccurred carries error details for observers.
	TypeErrorOccurred
)

// String returns the event type name.
func (t Type) String() string {
	switch t {
	case TypeConnectionStarted:
		return "CONNECTION_STARTED"
	case TypeConnectionSucceeded:
		return "CONNECTION_SUCCEEDED"
	case TypeConnectionFailed:
		return "CONNECTION_FAILED"
	case TypeInitializationStarted:
		return "INITIALIZATION_STARTED"
	case TypeInitializationProgress:
		return "INITIALIZATION_PROGRESS"
	case TypeInitializationSucceeded:
		return "INITIALIZATION_SUCCEEDED"
	case TypeInitializationFailed:
		return "INITIALIZATION_FAILED"
	case TypeMotionStarted:
		return "MOTION_STARTED"
	case TypeMotionProgress:
		return "MOTION_PROGRESS"
	case TypeMotionCompleted:
		return "MOTION_COMPLETED"
	case TypeMotionFailed:
		return "MOTION_FAILED"
	case TypePositionUpdated:
		return "POSITION_UPDATED"
	case TypeStateChanged:
		return "STATE_CHANGED"
	case TypeErrorOccurred:
		return "ERROR_OCCURRED"
	default:
		return "UNKNOWN"
	}
}

// Types returns every event type, in declaration order.
func Types() []Type {
	return []Type{
		TypeConnectionStarted,
		TypeConnectionSucceeded,
		TypeConnectionFailed,
		TypeInitializationStarted,
		TypeInitializationProgress,
		TypeInitializationSucceeded,
		TypeInitializationFailed,
		TypeMotionStarted,
		TypeMotionProgress,
		TypeMotionCompleted,
		TypeMotionFailed,
		TypePositionUpdated,
		TypeStateChanged,
		TypeErrorOccurred,
	}
}

// Event is a tagged record delivered to subscribers. Data is nil, a
// free-form message string, or one of the payload types below.
type Event struct {
	Type Type
	Data any
}

// StateChange is the STATE_CHANGED payload.
type StateChange struct {
	Connection stage.ConnectionState
	Init       stage.InitState
}

// AxisMotion describes a single-axis motion operation. Target carries the
// clamped absolute target for absolute moves and the requested delta for
// relative moves.
type AxisMotion struct {
	Axis   stage.Axis
	Op     string
	Target float64
}

// SequenceStart is the MOTION_STARTED payload for waypoint runs.
type SequenceStart struct {
	Count int
	Park  bool
}

// SequenceProgress is the MOTION_PROGRESS payload during waypoint runs.
// Index is zero-based.
type SequenceProgress struct {
	Index    int
	Count    int
	Position stage.Position
}

// PositionUpdate is the POSITION_UPDATED payload.
type PositionUpdate struct {
	Position stage.Position
}

// AxisProgress is the INITIALIZATION_PROGRESS payload, published after the
// named axis has been referenced.
type AxisProgress struct {
	Axis stage.Axis
}

// ErrorInfo is the ERROR_OCCURRED payload. Axis is zero for system-level
// failures.
type ErrorInfo struct {
	Kind    stage.Kind
	Axis    stage.Axis
	Message string
}
