// Package stage defines the core data model for the three-axis positioning
// stage: axis identity, travel ranges, per-axis configuration, positions,
// waypoints, lifecycle states, and the error taxonomy shared by every layer.
//
// # Axes
//
// The stage has exactly three linear axes, X, Y, and Z. The vertical axis Z
// must be referenced before the horizontal axes, so the fixed safety order
// for initialization is Z, X, Y (see ReferenceOrder).
//
// # Values
//
// TravelRange, AxisConfig, Position, Waypoint, and SequenceConfig are plain
// immutable-by-convention values. Position is a snapshot of all three axis
// coordinates at one instant; WithAxis returns a copy rather than mutating.
//
// # Errors
//
// Every failure crossing a package boundary is classified by Kind:
// configuration, connection, initialization, motion, or communication.
// Error wraps an optional cause and an optional axis, so callers can use
// errors.Is/errors.As as usual and observers can report the failing axis.
package stage
