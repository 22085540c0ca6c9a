package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stagekit/stage-go/internal/scenario/loader"
)

// TestParseBasic tests basic YAML scenario parsing.
func TestParseBasic(t *testing.T) {
	yaml := `
id: SEQ-001
name: Basic Move
description: A simple move scenario
steps:
  - action: move_axis
    params:
      axis: x
      target: 50
`
	s, err := loader.Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Failed to parse scenario: %v", err)
	}

	if s.ID != "SEQ-001" {
		t.Errorf("ID mismatch: expected SEQ-001, got %s", s.ID)
	}
	if s.Name != "Basic Move" {
		t.Errorf("Name mismatch: expected 'Basic Move', got %s", s.Name)
	}
	if len(s.Steps) != 1 {
		t.Fatalf("Expected 1 step, got %d", len(s.Steps))
	}
	if s.Steps[0].Action != "move_axis" {
		t.Errorf("Step action mismatch: expected move_axis, got %s", s.Steps[0].Action)
	}
	if s.Steps[0].Params["axis"] != "x" {
		t.Errorf("Param axis mismatch: got %v", s.Steps[0].Params["axis"])
	}
}

// TestParseSetupAndExpect tests setup actions and expectation parsing.
func TestParseSetupAndExpect(t *testing.T) {
	yaml := `
id: SEQ-002
name: Referenced Move
setup:
  - connect
  - initialize
steps:
  - action: move_axis
    params:
      axis: z
      target: 30
    expect:
      position_z: 30
    timeout: 5s
    description: Move Z to 30
`
	s, err := loader.Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Failed to parse scenario: %v", err)
	}

	if len(s.Setup) != 2 {
		t.Fatalf("Expected 2 setup actions, got %d", len(s.Setup))
	}
	if s.Setup[0] != "connect" || s.Setup[1] != "initialize" {
		t.Errorf("Setup mismatch: got %v", s.Setup)
	}

	step := s.Steps[0]
	if step.Expect["position_z"] != 30 {
		t.Errorf("Expect position_z mismatch: got %v", step.Expect["position_z"])
	}
	if step.Timeout != "5s" {
		t.Errorf("Step timeout mismatch: got %s", step.Timeout)
	}
	if step.Description != "Move Z to 30" {
		t.Errorf("Step description mismatch: got %s", step.Description)
	}
}

// TestParseSkip tests the skip flag.
func TestParseSkip(t *testing.T) {
	yaml := `
id: SEQ-003
name: Skipped
skip: true
skip_reason: hardware only
steps:
  - action: connect
`
	s, err := loader.Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Failed to parse scenario: %v", err)
	}

	if !s.Skip {
		t.Error("Expected Skip to be true")
	}
	if s.SkipReason != "hardware only" {
		t.Errorf("SkipReason mismatch: got %s", s.SkipReason)
	}
}

// TestParseMissingID tests that a missing ID is rejected.
func TestParseMissingID(t *testing.T) {
	yaml := `
name: No ID
steps:
  - action: connect
`
	_, err := loader.Parse([]byte(yaml))
	if err == nil {
		t.Fatal("Expected error for missing ID")
	}
}

// TestParseNoSteps tests that a scenario without steps is rejected.
func TestParseNoSteps(t *testing.T) {
	yaml := `
id: SEQ-004
name: Empty
`
	_, err := loader.Parse([]byte(yaml))
	if err == nil {
		t.Fatal("Expected error for missing steps")
	}
}

// TestParseStepWithoutAction tests that a step without an action is rejected.
func TestParseStepWithoutAction(t *testing.T) {
	yaml := `
id: SEQ-005
name: Bad Step
steps:
  - params:
      axis: x
`
	_, err := loader.Parse([]byte(yaml))
	if err == nil {
		t.Fatal("Expected error for step without action")
	}
}

// TestParseInvalidYAML tests malformed YAML handling.
func TestParseInvalidYAML(t *testing.T) {
	_, err := loader.Parse([]byte("id: [unclosed"))
	if err == nil {
		t.Fatal("Expected error for invalid YAML")
	}
}

// TestLoadFile tests loading a scenario from disk.
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seq.yaml")

	content := `
id: SEQ-FILE-001
name: From File
steps:
  - action: connect
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	s, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Failed to load scenario: %v", err)
	}
	if s.ID != "SEQ-FILE-001" {
		t.Errorf("ID mismatch: got %s", s.ID)
	}
}

// TestLoadFileNotFound tests that the file path is included in the error.
func TestLoadFileNotFound(t *testing.T) {
	_, err := loader.Load("/nonexistent/seq.yaml")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}

	le, ok := err.(*loader.LoadError)
	if !ok {
		t.Fatalf("Expected *LoadError, got %T", err)
	}
	if le.File != "/nonexistent/seq.yaml" {
		t.Errorf("LoadError file mismatch: got %s", le.File)
	}
}

// TestLoadDirectory tests loading all scenarios from a directory.
func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"01-connect.yaml": "id: A-001\nname: First\nsteps:\n  - action: connect\n",
		"02-move.yml":     "id: A-002\nname: Second\nsteps:\n  - action: move_axis\n",
		"notes.txt":       "not a scenario",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	scenarios, err := loader.LoadDirectory(dir)
	if err != nil {
		t.Fatalf("Failed to load directory: %v", err)
	}
	if len(scenarios) != 2 {
		t.Fatalf("Expected 2 scenarios, got %d", len(scenarios))
	}
	if scenarios[0].ID != "A-001" || scenarios[1].ID != "A-002" {
		t.Errorf("Order mismatch: got %s, %s", scenarios[0].ID, scenarios[1].ID)
	}
}

// TestFilter tests pattern filtering by ID and name.
func TestFilter(t *testing.T) {
	scenarios := []*loader.Scenario{
		{ID: "SEQ-001", Name: "Waypoint run"},
		{ID: "MOVE-001", Name: "Single axis"},
		{ID: "SEQ-002", Name: "Cancelled run"},
	}

	got := loader.Filter(scenarios, "seq")
	if len(got) != 2 {
		t.Fatalf("Filter(seq): expected 2, got %d", len(got))
	}

	got = loader.Filter(scenarios, "axis")
	if len(got) != 1 || got[0].ID != "MOVE-001" {
		t.Fatalf("Filter(axis): expected MOVE-001, got %v", got)
	}

	got = loader.Filter(scenarios, "")
	if len(got) != 3 {
		t.Fatalf("Filter(empty): expected all 3, got %d", len(got))
	}
}

// TestHasTag tests tag lookup.
func TestHasTag(t *testing.T) {
	s := &loader.Scenario{Tags: []string{"sequence", "smoke"}}
	if !s.HasTag("smoke") {
		t.Error("Expected HasTag(smoke) to be true")
	}
	if s.HasTag("hardware") {
		t.Error("Expected HasTag(hardware) to be false")
	}
}
