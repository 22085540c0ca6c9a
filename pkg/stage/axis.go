package stage

import "fmt"

// Axis identifies one of the three linear motion channels.
// The zero value means "no axis" and is used in errors that are not
// specific to a single axis.
type Axis uint8

const (
	// AxisX is the first horizontal axis.
	AxisX Axis = iota + 1

	// AxisY is the second horizontal axis.
	AxisY

	// AxisZ is the vertical axis.
	AxisZ
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "UNKNOWN"
	}
}

// ParseAxis parses an axis name ("X", "Y", "Z", case-insensitive variants
// "x", "y", "z" included).
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "X", "x":
		return AxisX, nil
	case "Y", "y":
		return AxisY, nil
	case "Z", "z":
		return AxisZ, nil
	default:
		return 0, fmt.Errorf("unknown axis %q", s)
	}
}

// Axes returns the three axes in X, Y, Z order.
func Axes() []Axis {
	return []Axis{AxisX, AxisY, AxisZ}
}

// ReferenceOrder returns the fixed safety order for referencing: Z first so
// the vertical axis is clear before any horizontal motion, then X, then Y.
func ReferenceOrder() []Axis {
	return []Axis{AxisZ, AxisX, AxisY}
}
