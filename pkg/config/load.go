package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stagekit/stage-go/pkg/stage"
)

// OverridesName is the per-machine overrides file applied on top of a
// loaded profile when it sits in the same directory.
const OverridesName = "local.overrides.yaml"

// Duration unmarshals from Go duration strings such as "100ms" or "2s".
// Bare numbers are read as seconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}
	var n float64
	if err := value.Decode(&n); err == nil {
		*d = Duration(time.Duration(n * float64(time.Second)))
		return nil
	}
	return fmt.Errorf("invalid duration %q", value.Value)
}

// The raw types mirror the YAML document. Pointer fields distinguish
// "absent" from zero so partial profiles and overrides merge cleanly.
type rawProfile struct {
	Stage          *string                  `yaml:"stage"`
	ReferenceMode  *string                  `yaml:"reference_mode"`
	Controllers    map[string]rawController `yaml:"controllers"`
	TravelRanges   map[string]rawRange      `yaml:"travel_ranges"`
	Motion         *rawMotion               `yaml:"motion"`
	ReferenceOrder []string                 `yaml:"reference_order"`
	Runtime        *rawRuntime              `yaml:"runtime"`
	Sequence       *rawSequence             `yaml:"sequence"`
}

type rawController struct {
	Serial *string `yaml:"serial"`
	Port   *string `yaml:"port"`
	Baud   *int    `yaml:"baud"`
}

type rawRange struct {
	Min *float64 `yaml:"min"`
	Max *float64 `yaml:"max"`
}

type rawMotion struct {
	DefaultVelocity *float64 `yaml:"default_velocity"`
	MaxVelocity     *float64 `yaml:"max_velocity"`
	ParkPosition    *float64 `yaml:"park_position"`
	StepSize        *float64 `yaml:"step_size"`
}

type rawRuntime struct {
	PositionInterval *Duration `yaml:"position_interval"`
	Workers          *int      `yaml:"workers"`
	QueueSize        *int      `yaml:"queue_size"`
}

type rawSequence struct {
	ParkWhenComplete *bool         `yaml:"park_when_complete"`
	Waypoints        []rawWaypoint `yaml:"waypoints"`
}

type rawWaypoint struct {
	X    float64  `yaml:"x"`
	Y    float64  `yaml:"y"`
	Z    float64  `yaml:"z"`
	Hold Duration `yaml:"hold"`
}

// Parse reads a profile document on top of the built-in defaults and
// validates the result.
func Parse(data []byte) (*Profile, error) {
	p := Default()
	if err := applyYAML(p, data); err != nil {
		return nil, stage.ConfigErr("parse profile", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Load reads a profile file on top of the built-in defaults. A
// local.overrides.yaml next to the profile is applied last. The merged
// result is validated.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, stage.ConfigErr(fmt.Sprintf("read %s", path), err)
	}
	p := Default()
	if err := applyYAML(p, data); err != nil {
		return nil, stage.ConfigErr(fmt.Sprintf("parse %s", path), err)
	}

	ovPath := filepath.Join(filepath.Dir(path), OverridesName)
	ov, err := os.ReadFile(ovPath)
	switch {
	case err == nil:
		if err := applyYAML(p, ov); err != nil {
			return nil, stage.ConfigErr(fmt.Sprintf("parse %s", ovPath), err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, stage.ConfigErr(fmt.Sprintf("read %s", ovPath), err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// applyYAML decodes one document and applies its fields onto p. Unknown
// keys are rejected; an empty document applies nothing.
func applyYAML(p *Profile, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var raw rawProfile
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return apply(p, &raw)
}

func apply(p *Profile, raw *rawProfile) error {
	if raw.Stage != nil {
		p.Stage = *raw.Stage
	}
	if raw.ReferenceMode != nil {
		p.RefMode = *raw.ReferenceMode
	}
	for key, rc := range raw.Controllers {
		a, err := stage.ParseAxis(key)
		if err != nil {
			return err
		}
		cc := p.Controllers[a]
		if rc.Serial != nil {
			cc.Serial = *rc.Serial
		}
		if rc.Port != nil {
			cc.Port = *rc.Port
		}
		if rc.Baud != nil {
			cc.Baud = *rc.Baud
		}
		p.Controllers[a] = cc
	}
	for key, rr := range raw.TravelRanges {
		a, err := stage.ParseAxis(key)
		if err != nil {
			return err
		}
		tr := p.Ranges[a]
		if rr.Min != nil {
			tr.Min = *rr.Min
		}
		if rr.Max != nil {
			tr.Max = *rr.Max
		}
		p.Ranges[a] = tr
	}
	if raw.Motion != nil {
		if raw.Motion.DefaultVelocity != nil {
			p.Motion.DefaultVelocity = *raw.Motion.DefaultVelocity
		}
		if raw.Motion.MaxVelocity != nil {
			p.Motion.MaxVelocity = *raw.Motion.MaxVelocity
		}
		if raw.Motion.ParkPosition != nil {
			p.Motion.ParkPosition = *raw.Motion.ParkPosition
			p.Sequence.ParkPosition = *raw.Motion.ParkPosition
		}
		if raw.Motion.StepSize != nil {
			p.Motion.StepSize = *raw.Motion.StepSize
		}
	}
	if len(raw.ReferenceOrder) > 0 {
		order := make([]stage.Axis, 0, len(raw.ReferenceOrder))
		for _, s := range raw.ReferenceOrder {
			a, err := stage.ParseAxis(s)
			if err != nil {
				return err
			}
			order = append(order, a)
		}
		p.ReferenceOrder = order
	}
	if raw.Runtime != nil {
		if raw.Runtime.PositionInterval != nil {
			p.Runtime.PositionInterval = time.Duration(*raw.Runtime.PositionInterval)
		}
		if raw.Runtime.Workers != nil {
			p.Runtime.Workers = *raw.Runtime.Workers
		}
		if raw.Runtime.QueueSize != nil {
			p.Runtime.QueueSize = *raw.Runtime.QueueSize
		}
	}
	if raw.Sequence != nil {
		if raw.Sequence.ParkWhenComplete != nil {
			p.Sequence.ParkWhenComplete = *raw.Sequence.ParkWhenComplete
		}
		if raw.Sequence.Waypoints != nil {
			wps := make([]stage.Waypoint, 0, len(raw.Sequence.Waypoints))
			for _, rw := range raw.Sequence.Waypoints {
				wps = append(wps, stage.Waypoint{
					Position: stage.Position{X: rw.X, Y: rw.Y, Z: rw.Z},
					Hold:     time.Duration(rw.Hold),
				})
			}
			p.Sequence.Waypoints = wps
		}
	}
	return nil
}
