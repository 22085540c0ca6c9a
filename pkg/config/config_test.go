package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stagekit/stage-go/pkg/stage"
)

func TestDefault(t *testing.T) {
	p := Default()
	if err := p.Validate(); err != nil {
		t.Fatalf("default profile invalid: %v", err)
	}

	if p.Stage != "62309260" {
		t.Errorf("stage = %q", p.Stage)
	}
	if p.RefMode != "FPL" {
		t.Errorf("reference mode = %q", p.RefMode)
	}
	if got := p.Controllers[stage.AxisX].Port; got != "COM5" {
		t.Errorf("X port = %q, want COM5", got)
	}
	if got := p.Ranges[stage.AxisY].Min; got != 0 {
		t.Errorf("Y range min = %v, want 0", got)
	}
	if got := p.Ranges[stage.AxisZ].Min; got != 15 {
		t.Errorf("Z range min = %v, want 15", got)
	}
	wantOrder := []stage.Axis{stage.AxisZ, stage.AxisX, stage.AxisY}
	for i, a := range wantOrder {
		if p.ReferenceOrder[i] != a {
			t.Fatalf("reference order = %v, want %v", p.ReferenceOrder, wantOrder)
		}
	}
	if len(p.Sequence.Waypoints) != 2 {
		t.Fatalf("default waypoints = %d, want 2", len(p.Sequence.Waypoints))
	}
	if p.Sequence.Waypoints[1].Hold != 2*time.Second {
		t.Errorf("second waypoint hold = %v, want 2s", p.Sequence.Waypoints[1].Hold)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	p, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Stage != Default().Stage {
		t.Error("empty document changed defaults")
	}
}

func TestParse_PartialOverride(t *testing.T) {
	doc := `
controllers:
  y:
    port: COM9
motion:
  default_velocity: 5
`
	p, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := p.Controllers[stage.AxisY].Port; got != "COM9" {
		t.Errorf("Y port = %q, want COM9", got)
	}
	if got := p.Controllers[stage.AxisY].Serial; got != "025550143" {
		t.Errorf("Y serial = %q, want default kept", got)
	}
	if got := p.Controllers[stage.AxisX].Port; got != "COM5" {
		t.Errorf("X port = %q, want untouched default", got)
	}
	if p.Motion.DefaultVelocity != 5 {
		t.Errorf("default velocity = %v, want 5", p.Motion.DefaultVelocity)
	}
	if p.Motion.MaxVelocity != 20 {
		t.Errorf("max velocity = %v, want default kept", p.Motion.MaxVelocity)
	}
}

func TestParse_Durations(t *testing.T) {
	doc := `
runtime:
  position_interval: 250ms
sequence:
  waypoints:
    - {x: 10, y: 5, z: 20, hold: 1}
    - {x: 25, y: 15, z: 30, hold: 1500ms}
`
	p, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Runtime.PositionInterval != 250*time.Millisecond {
		t.Errorf("position interval = %v, want 250ms", p.Runtime.PositionInterval)
	}
	if p.Sequence.Waypoints[0].Hold != time.Second {
		t.Errorf("bare-number hold = %v, want 1s", p.Sequence.Waypoints[0].Hold)
	}
	if p.Sequence.Waypoints[1].Hold != 1500*time.Millisecond {
		t.Errorf("string hold = %v, want 1.5s", p.Sequence.Waypoints[1].Hold)
	}
}

func TestParse_ReferenceOrder(t *testing.T) {
	p, err := Parse([]byte("reference_order: [x, z, y]\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []stage.Axis{stage.AxisX, stage.AxisZ, stage.AxisY}
	for i, a := range want {
		if p.ReferenceOrder[i] != a {
			t.Fatalf("reference order = %v, want %v", p.ReferenceOrder, want)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "bogus: 1\n"},
		{"unknown axis", "controllers:\n  w:\n    port: COM1\n"},
		{"duplicate reference order", "reference_order: [z, z, y]\n"},
		{"short reference order", "reference_order: [z]\n"},
		{"unknown reference mode", "reference_mode: XXX\n"},
		{"inverted range", "travel_ranges:\n  x: {min: 100, max: 5}\n"},
		{"default velocity above max", "motion:\n  default_velocity: 50\n"},
		{"zero workers", "runtime:\n  workers: 0\n"},
		{"zero position interval", "runtime:\n  position_interval: 0s\n"},
		{"bad duration", "runtime:\n  position_interval: soon\n"},
		{"negative hold", "sequence:\n  waypoints:\n    - {x: 10, y: 5, z: 20, hold: -1s}\n"},
		{"waypoint outside range", "sequence:\n  waypoints:\n    - {x: 1, y: 5, z: 20, hold: 1s}\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.doc)); err == nil {
				t.Errorf("Parse accepted %q", tc.doc)
			}
		})
	}
}

func TestAxisConfigs(t *testing.T) {
	p := Default()
	cfgs := p.AxisConfigs()
	if len(cfgs) != 3 {
		t.Fatalf("AxisConfigs() returned %d entries", len(cfgs))
	}

	x := cfgs[stage.AxisX]
	if x.Axis != stage.AxisX {
		t.Errorf("axis = %v", x.Axis)
	}
	if x.Stage != "62309260" || x.RefMode != "FPL" {
		t.Errorf("stage/refmode not propagated: %+v", x)
	}
	if x.DefaultVelocity != 10 || x.MaxVelocity != 20 {
		t.Errorf("velocities not propagated: %+v", x)
	}
	if err := x.Validate(); err != nil {
		t.Errorf("assembled config invalid: %v", err)
	}
}

func TestLoad_WithOverrides(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "lab.yaml")
	if err := os.WriteFile(profile, []byte("controllers:\n  x:\n    port: COM9\nmotion:\n  step_size: 0.5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	overrides := filepath.Join(dir, OverridesName)
	if err := os.WriteFile(overrides, []byte("controllers:\n  x:\n    port: COM7\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := Load(profile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := p.Controllers[stage.AxisX].Port; got != "COM7" {
		t.Errorf("X port = %q, want override COM7", got)
	}
	if p.Motion.StepSize != 0.5 {
		t.Errorf("step size = %v, want profile value 0.5", p.Motion.StepSize)
	}
}

func TestLoad_NoOverridesFile(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "lab.yaml")
	if err := os.WriteFile(profile, []byte("stage: \"7000001\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := Load(profile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Stage != "7000001" {
		t.Errorf("stage = %q", p.Stage)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if stage.KindOf(err) != stage.KindConfig {
		t.Errorf("Load = %v, want configuration error", err)
	}
}
