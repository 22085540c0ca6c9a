package runner

// Action names accepted in scenario steps.
const (
	ActionConnect          = "connect"
	ActionInitialize       = "initialize"
	ActionDisconnect       = "disconnect"
	ActionMoveAxis         = "move_axis"
	ActionMoveRelative     = "move_relative"
	ActionMoveTo           = "move_to"
	ActionPark             = "park"
	ActionRunSequence      = "run_sequence"
	ActionRunSequenceAsync = "run_sequence_async"
	ActionCancelMotion     = "cancel_motion"
	ActionWaitMotion       = "wait_motion"
	ActionWait             = "wait"
	ActionSetVelocity      = "set_velocity"
	ActionReadPosition     = "read_position"
	ActionReadState        = "read_state"
	ActionReadEvents       = "read_events"
)

// Step parameter names.
const (
	ParamAxis         = "axis"
	ParamTarget       = "target"
	ParamDelta        = "delta"
	ParamX            = "x"
	ParamY            = "y"
	ParamZ            = "z"
	ParamDirect       = "direct"
	ParamWaypoints    = "waypoints"
	ParamHoldMs       = "hold_ms"
	ParamPark         = "park"
	ParamParkPosition = "park_position"
	ParamDurationMs   = "duration_ms"
	ParamVelocity     = "velocity"
	ParamAllowFailure = "allow_failure"
)

// Output keys produced by handlers.
const (
	KeyConnectionState = "connection_state"
	KeyInitState       = "init_state"
	KeySequenceRunning = "sequence_running"
	KeySequenceCount   = "sequence_count"
	KeyErrorKind       = "error_kind"

	// KeyPositionPrefix + lowercase axis name, e.g. "position_x".
	KeyPositionPrefix = "position_"

	// KeyVelocityPrefix + lowercase axis name, e.g. "velocity_x".
	KeyVelocityPrefix = "velocity_"

	// KeyEventPrefix + lowercase event type, e.g. "events_motion_started".
	KeyEventPrefix = "events_"
)

// customMotionHandle is the ExecutionState.Custom slot holding the job
// handle of a run_sequence_async step until wait_motion claims it.
const customMotionHandle = "motion_handle"
