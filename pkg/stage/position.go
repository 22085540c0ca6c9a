package stage

import (
	"fmt"
	"time"
)

// Position is a snapshot of all three axis coordinates, in millimeters.
type Position struct {
	X float64
	Y float64
	Z float64
}

// Coord returns the coordinate of the given axis.
func (p Position) Coord(a Axis) float64 {
	switch a {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	case AxisZ:
		return p.Z
	default:
		return 0
	}
}

// WithAxis returns a copy of p with one axis coordinate replaced.
func (p Position) WithAxis(a Axis, v float64) Position {
	switch a {
	case AxisX:
		p.X = v
	case AxisY:
		p.Y = v
	case AxisZ:
		p.Z = v
	}
	return p
}

// String returns the position as "X=10.000 Y=5.000 Z=20.000".
func (p Position) String() string {
	return fmt.Sprintf("X=%.3f Y=%.3f Z=%.3f", p.X, p.Y, p.Z)
}

// Waypoint is one stop in a programmed motion sequence: a target position
// and an optional dwell time once the stage has settled there.
type Waypoint struct {
	Position Position
	Hold     time.Duration
}

// DefaultParkPosition is the conventional safe resting coordinate, applied
// to all three axes when parking.
const DefaultParkPosition = 200.0

// SequenceConfig describes a programmed waypoint run.
type SequenceConfig struct {
	// Waypoints are visited in order.
	Waypoints []Waypoint

	// ParkWhenComplete parks the stage after the last waypoint.
	ParkWhenComplete bool

	// ParkPosition is the coordinate used for parking all axes.
	ParkPosition float64
}

// DefaultSequenceConfig returns a sequence configuration with parking
// enabled at the default park position and no waypoints.
func DefaultSequenceConfig() SequenceConfig {
	return SequenceConfig{
		ParkWhenComplete: true,
		ParkPosition:     DefaultParkPosition,
	}
}
