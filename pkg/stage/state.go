package stage

// ConnectionState is the session-level connection lifecycle state.
type ConnectionState uint8

const (
	// StateDisconnected means no controller link is open.
	StateDisconnected ConnectionState = iota

	// StateConnecting means a connect attempt is in flight.
	StateConnecting

	// StateConnected means all links are open but axes are not referenced.
	StateConnected

	// StateInitializing means the reference sequence is in flight.
	StateInitializing

	// StateReady means all axes are referenced and motion is allowed.
	StateReady

	// StateError means the last connect or initialize attempt failed.
	StateError
)

// String returns the state name.
func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateInitializing:
		return "INITIALIZING"
	case StateReady:
		return "READY"
	case StateError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// InitState tracks the axis reference (homing) lifecycle.
type InitState uint8

const (
	// InitNotInitialized means no reference sequence has run.
	InitNotInitialized InitState = iota

	// InitInitializing means the reference sequence is in flight.
	InitInitializing

	// InitInitialized means every axis is referenced.
	InitInitialized

	// InitFailed means the last reference sequence failed.
	InitFailed
)

// String returns the state name.
func (s InitState) String() string {
	switch s {
	case InitNotInitialized:
		return "NOT_INITIALIZED"
	case InitInitializing:
		return "INITIALIZING"
	case InitInitialized:
		return "INITIALIZED"
	case InitFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// SystemState is a read-only snapshot composed on demand for observers.
// It is never stored long-lived.
type SystemState struct {
	Connection      ConnectionState
	Init            InitState
	SequenceRunning bool
}
