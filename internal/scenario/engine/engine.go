package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stagekit/stage-go/internal/scenario/loader"
)

// Engine executes scenarios.
type Engine struct {
	config   *Config
	handlers map[string]ActionHandler
	checkers map[string]ExpectChecker
	mu       sync.RWMutex
}

// New creates a new scenario engine with default configuration.
func New() *Engine {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a new scenario engine with the given configuration.
func NewWithConfig(config *Config) *Engine {
	if config == nil {
		config = DefaultConfig()
	}

	e := &Engine{
		config:   config,
		handlers: make(map[string]ActionHandler),
		checkers: make(map[string]ExpectChecker),
	}

	// Register default checkers
	e.RegisterChecker(CheckerNameDefault, defaultChecker)
	e.RegisterChecker(CheckerNamePositionNear, CheckerPositionNear)
	e.RegisterChecker(CheckerNameValueInRange, CheckerValueInRange)
	e.RegisterChecker(CheckerNameValueAtLeast, CheckerValueAtLeast)
	e.RegisterChecker(CheckerNameValueAtMost, CheckerValueAtMost)
	e.RegisterChecker(CheckerNameErrorContains, CheckerErrorContains)

	return e
}

// RegisterHandler registers an action handler.
func (e *Engine) RegisterHandler(action string, handler ActionHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[action] = handler
}

// RegisterChecker registers an expectation checker.
func (e *Engine) RegisterChecker(key string, checker ExpectChecker) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkers[key] = checker
}

// Run executes a single scenario.
func (e *Engine) Run(ctx context.Context, s *loader.Scenario) *Result {
	result := &Result{
		Scenario:  s,
		StartTime: time.Now(),
	}
	defer func() {
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(result.StartTime)
	}()

	if s.Skip {
		result.Skipped = true
		result.SkipReason = s.SkipReason
		if result.SkipReason == "" {
			result.SkipReason = "skipped by scenario definition"
		}
		return result
	}

	timeout := e.config.DefaultTimeout
	if s.Timeout != "" {
		if d, err := time.ParseDuration(s.Timeout); err == nil {
			timeout = d
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	state := NewExecutionState(runCtx)

	if e.config.Setup != nil {
		if err := e.config.Setup(runCtx, s, state); err != nil {
			result.Passed = false
			result.Error = fmt.Errorf("scenario setup failed: %w", err)
			return result
		}
	}

	for _, action := range s.Setup {
		if err := e.runSetupAction(runCtx, action, state); err != nil {
			result.Passed = false
			result.Error = err
			return result
		}
	}

	for i := range s.Steps {
		step := &s.Steps[i]
		stepResult := e.executeStep(runCtx, step, i, state)
		result.StepResults = append(result.StepResults, stepResult)

		if !stepResult.Passed {
			result.Passed = false
			result.Error = stepResult.Error
			return result
		}
	}

	result.Passed = true
	return result
}

// runSetupAction executes a setup action with no params and no expectations.
func (e *Engine) runSetupAction(ctx context.Context, action string, state *ExecutionState) error {
	e.mu.RLock()
	handler, exists := e.handlers[action]
	e.mu.RUnlock()

	if !exists {
		return fmt.Errorf("unknown setup action: %s", action)
	}

	setupCtx, cancel := context.WithTimeout(ctx, e.config.StepTimeout)
	defer cancel()

	outputs, err := handler(setupCtx, &loader.Step{Action: action}, state)
	if err != nil {
		return fmt.Errorf("setup action %s: %w", action, err)
	}
	for k, v := range outputs {
		state.Set(k, v)
	}
	return nil
}

// executeStep executes a single step.
func (e *Engine) executeStep(ctx context.Context, step *loader.Step, index int, state *ExecutionState) *StepResult {
	result := &StepResult{
		Step:          step,
		StepIndex:     index,
		ExpectResults: make(map[string]*ExpectResult),
		Output:        make(map[string]interface{}),
	}

	startTime := time.Now()
	defer func() { result.Duration = time.Since(startTime) }()

	timeout := e.config.StepTimeout
	if step.Timeout != "" {
		if d, err := time.ParseDuration(step.Timeout); err == nil {
			timeout = d
		}
	}

	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	e.mu.RLock()
	handler, exists := e.handlers[step.Action]
	e.mu.RUnlock()

	if !exists {
		result.Passed = false
		result.Error = fmt.Errorf("unknown action: %s", step.Action)
		return result
	}

	outputs, err := handler(stepCtx, step, state)
	if err != nil {
		result.Passed = false
		result.Error = fmt.Errorf("step %d (%s): %w", index+1, step.Action, err)
		return result
	}

	for k, v := range outputs {
		state.Set(k, v)
		result.Output[k] = v
	}

	result.Passed = true
	for key, expected := range step.Expect {
		expectResult := e.checkExpectation(key, expected, state)
		result.ExpectResults[key] = expectResult
		if !expectResult.Passed {
			result.Passed = false
			result.Error = fmt.Errorf("step %d (%s): expectation %s failed: %s",
				index+1, step.Action, key, expectResult.Message)
		}
	}

	return result
}

// checkExpectation checks a single expectation, falling back to the default
// checker for keys with no registered checker.
func (e *Engine) checkExpectation(key string, expected interface{}, state *ExecutionState) *ExpectResult {
	e.mu.RLock()
	checker, exists := e.checkers[key]
	if !exists {
		checker = e.checkers[CheckerNameDefault]
	}
	e.mu.RUnlock()

	return checker(key, expected, state)
}

// defaultChecker compares an output key against the expected value. The
// string "present" passes for any existing output.
func defaultChecker(key string, expected interface{}, state *ExecutionState) *ExpectResult {
	actual, exists := state.Get(key)
	if !exists {
		return &ExpectResult{
			Key:      key,
			Expected: expected,
			Actual:   nil,
			Passed:   false,
			Message:  fmt.Sprintf("key %q not found in outputs", key),
		}
	}

	if expStr, ok := expected.(string); ok && expStr == "present" {
		return &ExpectResult{
			Key:      key,
			Expected: expected,
			Actual:   actual,
			Passed:   true,
			Message:  fmt.Sprintf("%s = %v", key, actual),
		}
	}

	passed := fmt.Sprintf("%v", expected) == fmt.Sprintf("%v", actual)
	result := &ExpectResult{
		Key:      key,
		Expected: expected,
		Actual:   actual,
		Passed:   passed,
	}

	if passed {
		result.Message = fmt.Sprintf("%s = %v", key, expected)
	} else {
		result.Message = fmt.Sprintf("expected %v, got %v", expected, actual)
	}

	return result
}

// RunSuite executes all scenarios in order.
func (e *Engine) RunSuite(ctx context.Context, scenarios []*loader.Scenario) *SuiteResult {
	result := &SuiteResult{
		SuiteName: "Stage Scenarios",
	}

	startTime := time.Now()
	defer func() { result.Duration = time.Since(startTime) }()

	for _, s := range scenarios {
		select {
		case <-ctx.Done():
			return result
		default:
		}

		scenarioResult := e.Run(ctx, s)
		result.Results = append(result.Results, scenarioResult)

		switch {
		case scenarioResult.Skipped:
			result.SkipCount++
		case scenarioResult.Passed:
			result.PassCount++
		default:
			result.FailCount++
		}

		if e.config.OnScenarioComplete != nil {
			e.config.OnScenarioComplete(scenarioResult)
		}

		if !scenarioResult.Passed && !scenarioResult.Skipped && e.config.StopOnFirstFailure {
			break
		}
	}

	return result
}
