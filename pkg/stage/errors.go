package stage

import (
	"errors"
	"fmt"
)

// Kind classifies stage errors.
type Kind uint8

const (
	// KindConfig marks invalid or inconsistent configuration.
	KindConfig Kind = iota + 1

	// KindConnection marks link establishment failures.
	KindConnection

	// KindInitialization marks reference failures and precondition
	// violations such as "not connected" or "not initialized".
	KindInitialization

	// KindMotion marks move and sequence failures, including cancellation
	// and "sequence already running".
	KindMotion

	// KindCommunication marks query or command faults on an open link.
	KindCommunication
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "CONFIG"
	case KindConnection:
		return "CONNECTION"
	case KindInitialization:
		return "INITIALIZATION"
	case KindMotion:
		return "MOTION"
	case KindCommunication:
		return "COMMUNICATION"
	default:
		return "UNKNOWN"
	}
}

// Error is a classified stage error with an optional axis and wrapped cause.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Axis is the failing axis, or zero when the error is not specific
	// to a single axis.
	Axis Axis

	// Msg describes the failure.
	Msg string

	// Err is the wrapped cause, if any.
	Err error
}

// Error returns "kind: axis X: msg: cause" with absent parts omitted.
func (e *Error) Error() string {
	s := e.Kind.String()
	if e.Axis != 0 {
		s += ": axis " + e.Axis.String()
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// ConfigErr returns a configuration-kind error.
func ConfigErr(msg string, cause error) *Error {
	return &Error{Kind: KindConfig, Msg: msg, Err: cause}
}

// ConnectionErr returns a connection-kind error for the given axis
// (zero axis for multi-axis failures).
func ConnectionErr(axis Axis, msg string, cause error) *Error {
	return &Error{Kind: KindConnection, Axis: axis, Msg: msg, Err: cause}
}

// InitializationErr returns an initialization-kind error.
func InitializationErr(axis Axis, msg string, cause error) *Error {
	return &Error{Kind: KindInitialization, Axis: axis, Msg: msg, Err: cause}
}

// MotionErr returns a motion-kind error.
func MotionErr(axis Axis, msg string, cause error) *Error {
	return &Error{Kind: KindMotion, Axis: axis, Msg: msg, Err: cause}
}

// CommunicationErr returns a communication-kind error.
func CommunicationErr(axis Axis, msg string, cause error) *Error {
	return &Error{Kind: KindCommunication, Axis: axis, Msg: msg, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or zero if
// there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Errorf is a convenience wrapper building a classified error with a
// formatted message.
func Errorf(kind Kind, axis Axis, format string, args ...any) *Error {
	return &Error{Kind: kind, Axis: axis, Msg: fmt.Sprintf(format, args...)}
}
