// Package engine executes stage scenarios step by step.
package engine

import (
	"context"
	"time"

	"github.com/stagekit/stage-go/internal/scenario/loader"
)

// Result represents the outcome of a single scenario.
type Result struct {
	// Scenario is the scenario that was executed.
	Scenario *loader.Scenario

	// Passed indicates if all steps passed.
	Passed bool

	// Error is the error that caused failure, if any.
	Error error

	// StepResults contains results for each executed step.
	StepResults []*StepResult

	// Duration is how long the scenario took.
	Duration time.Duration

	// StartTime when the scenario started.
	StartTime time.Time

	// EndTime when the scenario finished.
	EndTime time.Time

	// Skipped indicates if the scenario was skipped.
	Skipped bool

	// SkipReason explains why the scenario was skipped.
	SkipReason string
}

// StepResult represents the outcome of a single step.
type StepResult struct {
	// Step is the step that was executed.
	Step *loader.Step

	// StepIndex is the index of this step (0-based).
	StepIndex int

	// Passed indicates if the step passed.
	Passed bool

	// Error is the error that caused failure, if any.
	Error error

	// ExpectResults maps expectation keys to their assertion results.
	ExpectResults map[string]*ExpectResult

	// Duration is how long the step took.
	Duration time.Duration

	// Output contains any captured output from the step.
	Output map[string]interface{}
}

// ExpectResult represents the result of checking an expectation.
type ExpectResult struct {
	// Key is the expectation key (e.g., "position_x").
	Key string

	// Expected is the expected value.
	Expected interface{}

	// Actual is the actual value.
	Actual interface{}

	// Passed indicates if the expectation was met.
	Passed bool

	// Message describes the result.
	Message string
}

// SuiteResult represents the outcome of running a set of scenarios.
type SuiteResult struct {
	// SuiteName identifies the scenario suite.
	SuiteName string

	// Results contains results for each scenario.
	Results []*Result

	// PassCount is the number of passed scenarios.
	PassCount int

	// FailCount is the number of failed scenarios.
	FailCount int

	// SkipCount is the number of skipped scenarios.
	SkipCount int

	// Duration is the total time for all scenarios.
	Duration time.Duration
}

// ActionHandler processes a scenario step action.
// Returns outputs to make available for subsequent steps, and an error if
// the action failed.
type ActionHandler func(ctx context.Context, step *loader.Step, state *ExecutionState) (map[string]interface{}, error)

// ExpectChecker checks an expectation against actual results.
type ExpectChecker func(key string, expected interface{}, state *ExecutionState) *ExpectResult

// ExecutionState holds state during scenario execution.
type ExecutionState struct {
	// Outputs accumulated from previous steps.
	Outputs map[string]interface{}

	// Stage is the stage fixture under test (set by the runner's Setup).
	Stage interface{}

	// Context for cancellation.
	Context context.Context

	// Custom state that handlers can use (e.g., pending job handles).
	Custom map[string]interface{}
}

// NewExecutionState creates a new execution state.
func NewExecutionState(ctx context.Context) *ExecutionState {
	return &ExecutionState{
		Outputs: make(map[string]interface{}),
		Custom:  make(map[string]interface{}),
		Context: ctx,
	}
}

// Get retrieves a value from outputs, supporting "{{ key }}" references.
func (s *ExecutionState) Get(key string) (interface{}, bool) {
	if len(key) > 4 && key[:2] == "{{" && key[len(key)-2:] == "}}" {
		refKey := trimSpaces(key[2 : len(key)-2])
		v, ok := s.Outputs[refKey]
		return v, ok
	}
	v, ok := s.Outputs[key]
	return v, ok
}

// Set stores a value in outputs.
func (s *ExecutionState) Set(key string, value interface{}) {
	s.Outputs[key] = value
}

func trimSpaces(s string) string {
	start := 0
	end := len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}

// Config configures the scenario engine.
type Config struct {
	// DefaultTimeout is the default timeout for scenarios.
	DefaultTimeout time.Duration

	// StepTimeout is the default timeout for individual steps.
	StepTimeout time.Duration

	// StopOnFirstFailure stops suite execution after the first failure.
	StopOnFirstFailure bool

	// Setup prepares the execution state before a scenario runs; the
	// runner uses it to build a fresh stage fixture. It runs before the
	// scenario's own setup actions.
	Setup func(ctx context.Context, s *loader.Scenario, state *ExecutionState) error

	// OnScenarioComplete is called after each scenario in a suite run.
	OnScenarioComplete func(result *Result)
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultTimeout: 30 * time.Second,
		StepTimeout:    10 * time.Second,
	}
}
