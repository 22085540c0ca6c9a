package stage

import "fmt"

// TravelRange is the closed interval of reachable coordinates for one axis,
// in millimeters.
type TravelRange struct {
	Min float64
	Max float64
}

// Clamp bounds v to [Min, Max]. Clamp is idempotent.
func (r TravelRange) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Contains reports whether v lies in [Min, Max].
func (r TravelRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Validate checks that the range is ordered.
func (r TravelRange) Validate() error {
	if r.Min > r.Max {
		return fmt.Errorf("travel range min %.3f exceeds max %.3f", r.Min, r.Max)
	}
	return nil
}

// AxisConfig is the static per-axis configuration, created once at startup
// and immutable for the process lifetime. The identity fields (Serial, Port,
// Baud, Stage, RefMode) are opaque to the orchestration core; the hardware
// controller consumes them.
type AxisConfig struct {
	// Axis this configuration belongs to.
	Axis Axis

	// Serial is the controller serial number used to identify the device.
	Serial string

	// Port is the serial port the controller is attached to.
	Port string

	// Baud is the serial line rate.
	Baud int

	// Stage is the connected stage type, loaded into the controller on init.
	Stage string

	// RefMode selects the reference move (FRF, FPL, or FNL).
	RefMode string

	// Range is the reachable travel interval.
	Range TravelRange

	// DefaultVelocity is applied after a successful reference, in mm/s.
	DefaultVelocity float64

	// MaxVelocity caps every velocity command, in mm/s.
	MaxVelocity float64
}

// Validate checks the configuration for internal consistency.
func (c AxisConfig) Validate() error {
	if c.Axis == 0 {
		return fmt.Errorf("axis config: axis not set")
	}
	if err := c.Range.Validate(); err != nil {
		return fmt.Errorf("axis %s: %w", c.Axis, err)
	}
	if c.DefaultVelocity <= 0 {
		return fmt.Errorf("axis %s: default velocity %.3f must be positive", c.Axis, c.DefaultVelocity)
	}
	if c.MaxVelocity <= 0 {
		return fmt.Errorf("axis %s: max velocity %.3f must be positive", c.Axis, c.MaxVelocity)
	}
	if c.DefaultVelocity > c.MaxVelocity {
		return fmt.Errorf("axis %s: default velocity %.3f exceeds max %.3f", c.Axis, c.DefaultVelocity, c.MaxVelocity)
	}
	return nil
}
