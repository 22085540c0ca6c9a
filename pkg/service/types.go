package service

import (
	"errors"

	"github.com/stagekit/stage-go/pkg/events"
	"github.com/stagekit/stage-go/pkg/stage"
)

// Service errors.
var (
	// ErrSequenceRunning is returned when a waypoint sequence is requested
	// while another one is still executing.
	ErrSequenceRunning = errors.New("sequence already running")

	// ErrCancelled marks motion that was aborted through CancelMotion.
	ErrCancelled = errors.New("motion cancelled")
)

// errorInfo projects an error into the bus payload form, preserving the
// classification when the error is a stage error.
func errorInfo(err error) events.ErrorInfo {
	var se *stage.Error
	if errors.As(err, &se) {
		return events.ErrorInfo{Kind: se.Kind, Axis: se.Axis, Message: err.Error()}
	}
	return events.ErrorInfo{Message: err.Error()}
}
