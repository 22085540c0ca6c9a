package config

import (
	"fmt"
	"time"

	"github.com/stagekit/stage-go/pkg/stage"
)

// ControllerConfig identifies the hardware controller behind one axis.
type ControllerConfig struct {
	// Serial is the controller serial number, verified on connect.
	Serial string

	// Port is the serial port the controller is attached to.
	Port string

	// Baud is the serial line rate.
	Baud int
}

// MotionConfig carries the stage-wide motion parameters.
type MotionConfig struct {
	// DefaultVelocity is applied after referencing, in mm/s.
	DefaultVelocity float64

	// MaxVelocity caps every velocity command, in mm/s.
	MaxVelocity float64

	// ParkPosition is the safe resting coordinate for all axes.
	ParkPosition float64

	// StepSize is the jog increment used by the console, in mm.
	StepSize float64
}

// RuntimeConfig carries the tunables of the orchestration layer.
type RuntimeConfig struct {
	// PositionInterval paces the position monitor.
	PositionInterval time.Duration

	// Workers sizes the shared worker pool.
	Workers int

	// QueueSize bounds the worker pool backlog.
	QueueSize int
}

// Profile is a fully resolved stage configuration.
type Profile struct {
	// Stage is the stage type identifier loaded into each controller.
	Stage string

	// RefMode selects the reference move (FRF, FNL or FPL).
	RefMode string

	// Controllers maps each axis to its hardware controller.
	Controllers map[stage.Axis]ControllerConfig

	// Ranges maps each axis to its travel range.
	Ranges map[stage.Axis]stage.TravelRange

	// Motion carries the stage-wide motion parameters.
	Motion MotionConfig

	// ReferenceOrder is the axis order for initialization. It has to be a
	// permutation of the three axes.
	ReferenceOrder []stage.Axis

	// Runtime carries the orchestration tunables.
	Runtime RuntimeConfig

	// Sequence is the default programmed run.
	Sequence stage.SequenceConfig
}

// Default returns the profile of the reference setup. Load applies profile
// files on top of it.
func Default() *Profile {
	seq := stage.DefaultSequenceConfig()
	seq.Waypoints = []stage.Waypoint{
		{Position: stage.Position{X: 10, Y: 5, Z: 20}, Hold: time.Second},
		{Position: stage.Position{X: 25, Y: 15, Z: 30}, Hold: 2 * time.Second},
	}
	return &Profile{
		Stage:   "62309260",
		RefMode: "FPL",
		Controllers: map[stage.Axis]ControllerConfig{
			stage.AxisX: {Serial: "025550131", Port: "COM5", Baud: 115200},
			stage.AxisY: {Serial: "025550143", Port: "COM3", Baud: 115200},
			stage.AxisZ: {Serial: "025550149", Port: "COM4", Baud: 115200},
		},
		Ranges: map[stage.Axis]stage.TravelRange{
			stage.AxisX: {Min: 5, Max: 200},
			stage.AxisY: {Min: 0, Max: 200},
			stage.AxisZ: {Min: 15, Max: 200},
		},
		Motion: MotionConfig{
			DefaultVelocity: 10,
			MaxVelocity:     20,
			ParkPosition:    stage.DefaultParkPosition,
			StepSize:        1,
		},
		ReferenceOrder: stage.ReferenceOrder(),
		Runtime: RuntimeConfig{
			PositionInterval: 100 * time.Millisecond,
			Workers:          4,
			QueueSize:        64,
		},
		Sequence: seq,
	}
}

// AxisConfig assembles the full configuration of one axis from the profile.
func (p *Profile) AxisConfig(a stage.Axis) stage.AxisConfig {
	cc := p.Controllers[a]
	return stage.AxisConfig{
		Axis:            a,
		Serial:          cc.Serial,
		Port:            cc.Port,
		Baud:            cc.Baud,
		Stage:           p.Stage,
		RefMode:         p.RefMode,
		Range:           p.Ranges[a],
		DefaultVelocity: p.Motion.DefaultVelocity,
		MaxVelocity:     p.Motion.MaxVelocity,
	}
}

// AxisConfigs assembles the configurations of all three axes.
func (p *Profile) AxisConfigs() map[stage.Axis]stage.AxisConfig {
	out := make(map[stage.Axis]stage.AxisConfig, len(stage.Axes()))
	for _, a := range stage.Axes() {
		out[a] = p.AxisConfig(a)
	}
	return out
}

// Validate checks the profile for completeness and internal consistency.
func (p *Profile) Validate() error {
	switch p.RefMode {
	case "FRF", "FNL", "FPL":
	default:
		return stage.ConfigErr(fmt.Sprintf("unknown reference mode %q", p.RefMode), nil)
	}
	for _, a := range stage.Axes() {
		cc, ok := p.Controllers[a]
		if !ok {
			return stage.ConfigErr(fmt.Sprintf("no controller for axis %s", a), nil)
		}
		if cc.Port == "" {
			return stage.ConfigErr(fmt.Sprintf("axis %s: port not set", a), nil)
		}
		if cc.Baud <= 0 {
			return stage.ConfigErr(fmt.Sprintf("axis %s: baud rate %d must be positive", a, cc.Baud), nil)
		}
		if _, ok := p.Ranges[a]; !ok {
			return stage.ConfigErr(fmt.Sprintf("no travel range for axis %s", a), nil)
		}
		if err := p.AxisConfig(a).Validate(); err != nil {
			return stage.ConfigErr("axis config", err)
		}
	}
	if err := validateOrder(p.ReferenceOrder); err != nil {
		return err
	}
	if p.Motion.ParkPosition != p.Sequence.ParkPosition {
		return stage.ConfigErr(fmt.Sprintf("park position mismatch: motion %.3f, sequence %.3f",
			p.Motion.ParkPosition, p.Sequence.ParkPosition), nil)
	}
	if p.Motion.StepSize <= 0 {
		return stage.ConfigErr(fmt.Sprintf("step size %.3f must be positive", p.Motion.StepSize), nil)
	}
	if p.Runtime.PositionInterval <= 0 {
		return stage.ConfigErr("position interval must be positive", nil)
	}
	if p.Runtime.Workers <= 0 {
		return stage.ConfigErr(fmt.Sprintf("worker count %d must be positive", p.Runtime.Workers), nil)
	}
	for i, wp := range p.Sequence.Waypoints {
		if wp.Hold < 0 {
			return stage.ConfigErr(fmt.Sprintf("waypoint %d: negative hold", i), nil)
		}
		for _, a := range stage.Axes() {
			if v := wp.Position.Coord(a); !p.Ranges[a].Contains(v) {
				return stage.ConfigErr(fmt.Sprintf("waypoint %d: %s=%.3f outside travel range", i, a, v), nil)
			}
		}
	}
	return nil
}

// validateOrder checks that order is a permutation of the three axes.
func validateOrder(order []stage.Axis) error {
	if len(order) != len(stage.Axes()) {
		return stage.ConfigErr(fmt.Sprintf("reference order %v does not cover all axes", order), nil)
	}
	seen := make(map[stage.Axis]bool, len(order))
	for _, a := range order {
		if a != stage.AxisX && a != stage.AxisY && a != stage.AxisZ {
			return stage.ConfigErr(fmt.Sprintf("reference order contains unknown axis %d", a), nil)
		}
		if seen[a] {
			return stage.ConfigErr(fmt.Sprintf("reference order names axis %s twice", a), nil)
		}
		seen[a] = true
	}
	return nil
}
