// Package runner executes YAML motion scenarios against a simulated stage.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/stagekit/stage-go/internal/scenario/engine"
	"github.com/stagekit/stage-go/internal/scenario/loader"
	"github.com/stagekit/stage-go/internal/scenario/reporter"
	"github.com/stagekit/stage-go/pkg/config"
)

// Config configures the scenario runner.
type Config struct {
	// ScenarioDir is the directory containing scenario YAML files.
	ScenarioDir string

	// Pattern filters scenarios by ID or name substring.
	Pattern string

	// Tags includes only scenarios carrying at least one of these
	// comma-separated tags.
	Tags string

	// Timeout is the default per-scenario timeout (0 = engine default).
	Timeout time.Duration

	// MotionDelay is how long a simulated axis move takes to settle.
	MotionDelay time.Duration

	// StopOnFirstFailure aborts the suite after the first failed scenario.
	StopOnFirstFailure bool

	// Verbose enables per-step output in text reports.
	Verbose bool

	// Output is where results are written. Defaults to os.Stdout.
	Output io.Writer

	// OutputFormat is "text" or "json".
	OutputFormat string

	// Profile is the stage profile scenarios run against. Defaults to
	// config.Default().
	Profile *config.Profile

	// Logger is the optional logger for the simulated stack.
	Logger *slog.Logger
}

// Runner executes motion scenarios on a fresh simulated stage per scenario.
type Runner struct {
	config   *Config
	engine   *engine.Engine
	reporter reporter.Reporter
	fixture  *stageFixture
}

// New creates a scenario runner.
func New(cfg *Config) *Runner {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Profile == nil {
		cfg.Profile = config.Default()
	}

	engineConfig := engine.DefaultConfig()
	if cfg.Timeout > 0 {
		engineConfig.DefaultTimeout = cfg.Timeout
	}
	engineConfig.StopOnFirstFailure = cfg.StopOnFirstFailure

	r := &Runner{
		config: cfg,
		engine: engine.NewWithConfig(engineConfig),
	}

	// Every scenario starts on a fresh fixture.
	engineConfig.Setup = r.setupScenario

	switch cfg.OutputFormat {
	case "json":
		r.reporter = reporter.NewJSONReporter(cfg.Output, true)
	default:
		r.reporter = reporter.NewTextReporter(cfg.Output, cfg.Verbose)
	}

	// Stream each scenario result as it completes.
	engineConfig.OnScenarioComplete = func(result *engine.Result) {
		r.reporter.ReportScenario(result)
	}

	r.registerHandlers()

	return r
}

// setupScenario replaces the previous fixture with a fresh simulated stack
// and hands it to the execution state.
func (r *Runner) setupScenario(ctx context.Context, s *loader.Scenario, state *engine.ExecutionState) error {
	r.closeFixture()

	f, err := newStageFixture(r.config.Profile, r.config.MotionDelay, r.config.Logger)
	if err != nil {
		return fmt.Errorf("build stage fixture: %w", err)
	}
	r.fixture = f
	state.Stage = f
	return nil
}

func (r *Runner) closeFixture() {
	if r.fixture != nil {
		r.fixture.close()
		r.fixture = nil
	}
}

// Run loads, filters and executes all matching scenarios and returns the
// suite result.
func (r *Runner) Run(ctx context.Context) (*engine.SuiteResult, error) {
	if err := r.config.Profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	scenarios, err := loader.LoadDirectory(r.config.ScenarioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenarios: %w", err)
	}

	scenarios = loader.Filter(scenarios, r.config.Pattern)
	if r.config.Tags != "" {
		scenarios = filterByTags(scenarios, r.config.Tags)
	}

	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios found matching filters (pattern=%q, tags=%q)",
			r.config.Pattern, r.config.Tags)
	}

	result := r.engine.RunSuite(ctx, scenarios)
	result.SuiteName = fmt.Sprintf("Stage Scenarios (%s)", r.config.ScenarioDir)

	r.closeFixture()

	// Summary only; scenarios were streamed via OnScenarioComplete.
	r.reporter.ReportSummary(result)

	return result, nil
}

// Close releases the current fixture, if any.
func (r *Runner) Close() {
	r.closeFixture()
}

// filterByTags keeps scenarios carrying at least one of the comma-separated
// tags.
func filterByTags(scenarios []*loader.Scenario, tags string) []*loader.Scenario {
	var wanted []string
	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			wanted = append(wanted, t)
		}
	}
	if len(wanted) == 0 {
		return scenarios
	}

	var filtered []*loader.Scenario
	for _, s := range scenarios {
		for _, t := range wanted {
			if s.HasTag(t) {
				filtered = append(filtered, s)
				break
			}
		}
	}
	return filtered
}
