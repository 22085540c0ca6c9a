package axis

import (
	"time"

	"github.com/stagekit/stage-go/pkg/stage"
)

// Controller is the contract a motorized axis implementation has to fulfil.
// All implementations are safe for concurrent use.
type Controller interface {
	// Axis reports which stage axis this controller drives.
	Axis() stage.Axis

	// Config returns the static configuration the controller was built with.
	Config() stage.AxisConfig

	// IsConnected reports whether the transport to the axis is open.
	IsConnected() bool

	// IsInitialized reports whether the axis finished its reference move.
	IsInitialized() bool

	// Connect opens the transport to the axis hardware.
	Connect() error

	// Disconnect closes the transport. The axis loses its initialized state.
	Disconnect() error

	// Initialize enables the servo and runs the reference move. Requires an
	// open connection.
	Initialize() error

	// MoveAbsolute commands a move to target, clamped to the travel range.
	// The call returns once the command was accepted; the move settles in
	// the background.
	MoveAbsolute(target float64) error

	// MoveRelative commands a move by delta from the current position,
	// clamped to the travel range.
	MoveRelative(delta float64) error

	// Position reads the current axis position.
	Position() (float64, error)

	// SetVelocity sets the closed-loop velocity, capped at the configured
	// maximum.
	SetVelocity(v float64) error

	// Velocity reports the last commanded closed-loop velocity.
	Velocity() float64

	// Stop halts any motion immediately.
	Stop() error

	// OnTarget reports whether the last commanded move has settled.
	OnTarget() (bool, error)

	// WaitForTarget blocks until the axis settles on its target. A zero
	// timeout waits indefinitely.
	WaitForTarget(timeout time.Duration) error
}
