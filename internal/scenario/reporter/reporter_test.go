package reporter_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stagekit/stage-go/internal/scenario/engine"
	"github.com/stagekit/stage-go/internal/scenario/loader"
	"github.com/stagekit/stage-go/internal/scenario/reporter"
)

func sampleSuite() *engine.SuiteResult {
	passStep := &engine.StepResult{
		Step:      &loader.Step{Action: "move_axis"},
		StepIndex: 0,
		Passed:    true,
		Duration:  20 * time.Millisecond,
		ExpectResults: map[string]*engine.ExpectResult{
			"position_x": {Key: "position_x", Passed: true, Message: "position_x = 50"},
		},
		Output: map[string]interface{}{"position_x": 50.0},
	}

	pass := &engine.Result{
		Scenario:    &loader.Scenario{ID: "SC-MOVE", Name: "Single axis move"},
		Passed:      true,
		StepResults: []*engine.StepResult{passStep},
		Duration:    25 * time.Millisecond,
	}

	fail := &engine.Result{
		Scenario: &loader.Scenario{ID: "SC-LIMIT", Name: "Out of range move"},
		Passed:   false,
		Error:    errors.New("step 1 (move_axis): target outside limits"),
		Duration: 5 * time.Millisecond,
	}

	skip := &engine.Result{
		Scenario:   &loader.Scenario{ID: "SC-HW", Name: "Hardware only"},
		Skipped:    true,
		SkipReason: "hardware required",
	}

	return &engine.SuiteResult{
		SuiteName: "Stage Scenarios",
		Results:   []*engine.Result{pass, fail, skip},
		PassCount: 1,
		FailCount: 1,
		SkipCount: 1,
		Duration:  30 * time.Millisecond,
	}
}

// TestTextReporter tests the plain text output format.
func TestTextReporter(t *testing.T) {
	suite := sampleSuite()

	var buf bytes.Buffer
	r := reporter.NewTextReporter(&buf, false)

	for _, res := range suite.Results {
		r.ReportScenario(res)
	}
	r.ReportSummary(suite)

	out := buf.String()
	for _, want := range []string{
		"[PASS] SC-MOVE - Single axis move",
		"[FAIL] SC-LIMIT - Out of range move",
		"Error: step 1 (move_axis): target outside limits",
		"[SKIP] SC-HW - Hardware only",
		"Skip reason: hardware required",
		"--- Summary ---",
		"Passed:  1",
		"Failed:  1",
		"Skipped: 1",
		"Pass Rate: 50.0%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q\noutput:\n%s", want, out)
		}
	}
}

// TestTextReporterVerbose tests that verbose mode includes step details.
func TestTextReporterVerbose(t *testing.T) {
	suite := sampleSuite()

	var buf bytes.Buffer
	r := reporter.NewTextReporter(&buf, true)
	r.ReportScenario(suite.Results[0])

	out := buf.String()
	if !strings.Contains(out, "Step 1: move_axis") {
		t.Errorf("verbose output missing step line:\n%s", out)
	}
	if !strings.Contains(out, "[OK] position_x") {
		t.Errorf("verbose output missing expectation line:\n%s", out)
	}
}

// TestJSONReporter tests the JSON suite document.
func TestJSONReporter(t *testing.T) {
	suite := sampleSuite()

	var buf bytes.Buffer
	r := reporter.NewJSONReporter(&buf, false)

	// Streaming is a no-op for JSON
	r.ReportScenario(suite.Results[0])
	if buf.Len() != 0 {
		t.Error("ReportScenario should not write for JSON output")
	}

	r.ReportSummary(suite)

	var doc reporter.JSONSuiteResult
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if doc.SuiteName != "Stage Scenarios" {
		t.Errorf("suite_name = %q", doc.SuiteName)
	}
	if doc.Total != 3 || doc.Passed != 1 || doc.Failed != 1 || doc.Skipped != 1 {
		t.Errorf("counts = %d/%d/%d/%d", doc.Total, doc.Passed, doc.Failed, doc.Skipped)
	}
	if doc.PassRate != 50.0 {
		t.Errorf("pass_rate = %v, want 50", doc.PassRate)
	}
	if len(doc.Scenarios) != 3 {
		t.Fatalf("scenarios = %d, want 3", len(doc.Scenarios))
	}
	if doc.Scenarios[0].Status != "passed" || doc.Scenarios[1].Status != "failed" || doc.Scenarios[2].Status != "skipped" {
		t.Errorf("statuses = %s/%s/%s", doc.Scenarios[0].Status, doc.Scenarios[1].Status, doc.Scenarios[2].Status)
	}
	if doc.Scenarios[1].Error == "" {
		t.Error("failed scenario should carry its error")
	}
	if len(doc.Scenarios[0].Steps) != 1 {
		t.Errorf("passed scenario should carry step details, got %d", len(doc.Scenarios[0].Steps))
	}
}
