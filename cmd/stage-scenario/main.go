// Command stage-scenario runs YAML motion scenarios against a simulated
// three-axis stage.
//
// Scenarios describe orchestration sequences (connect, reference, move,
// run sequences, cancel) together with expected positions, states and
// errors. Every scenario runs on a fresh simulated stack, so the suite
// needs no hardware and leaves no state behind.
//
// Usage:
//
//	stage-scenario [flags] [scenario-pattern]
//
// Flags:
//
//	-scenarios string       Path to scenario directory (default "./testdata/scenarios")
//	-profile string         Path to a stage profile YAML (default: built-in profile)
//	-tags string            Run only scenarios carrying one of these comma-separated tags
//	-timeout duration       Per-scenario timeout (default 30s)
//	-motion-delay duration  Simulated settle time per axis move (default 20ms)
//	-verbose                Enable per-step output
//	-json                   Output results as JSON
//	-stop-on-failure        Abort the suite after the first failed scenario
//
// Examples:
//
//	# Run every scenario in the default directory
//	stage-scenario
//
//	# Run the sequence scenarios with per-step detail
//	stage-scenario -verbose "SC-SEQ"
//
//	# Run the smoke subset against a custom profile, as JSON
//	stage-scenario -profile bench.yaml -tags smoke -json
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/stagekit/stage-go/internal/scenario/runner"
	"github.com/stagekit/stage-go/pkg/config"
)

var (
	scenarios     = flag.String("scenarios", "./testdata/scenarios", "Path to scenario directory")
	profilePath   = flag.String("profile", "", "Path to a stage profile YAML (default: built-in profile)")
	tags          = flag.String("tags", "", "Run only scenarios carrying one of these comma-separated tags")
	timeout       = flag.Duration("timeout", 30*time.Second, "Per-scenario timeout")
	motionDelay   = flag.Duration("motion-delay", 20*time.Millisecond, "Simulated settle time per axis move")
	verbose       = flag.Bool("verbose", false, "Enable per-step output")
	jsonOut       = flag.Bool("json", false, "Output results as JSON")
	stopOnFailure = flag.Bool("stop-on-failure", false, "Abort the suite after the first failed scenario")
)

func main() {
	flag.Parse()

	// Get optional scenario pattern
	pattern := ""
	if flag.NArg() > 0 {
		pattern = flag.Arg(0)
	}

	profile := config.Default()
	if *profilePath != "" {
		var err error
		profile, err = config.Load(*profilePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// Determine output format
	outputFormat := "text"
	if *jsonOut {
		outputFormat = "json"
	}

	if outputFormat == "text" {
		log.SetFlags(log.Ltime)
		printBanner()
		log.Printf("Scenarios: %s", *scenarios)
		if *profilePath != "" {
			log.Printf("Profile: %s", *profilePath)
		}
		if pattern != "" {
			log.Printf("Pattern: %s", pattern)
		}
		if *tags != "" {
			log.Printf("Tags: %s", *tags)
		}
		log.Println()
	}

	cfg := &runner.Config{
		ScenarioDir:        *scenarios,
		Pattern:            pattern,
		Tags:               *tags,
		Timeout:            *timeout,
		MotionDelay:        *motionDelay,
		StopOnFirstFailure: *stopOnFailure,
		Verbose:            *verbose,
		Output:             os.Stdout,
		OutputFormat:       outputFormat,
		Profile:            profile,
	}

	r := runner.New(cfg)
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := r.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if result.FailCount > 0 {
		os.Exit(1)
	}
}

func printBanner() {
	fmt.Print(`
 ____   _____     _      ____  _____
/ ___| |_   _|   / \    / ___|| ____|
\___ \   | |    / _ \  | |  _ |  _|
 ___) |  | |   / ___ \ | |_| || |___
|____/   |_|  /_/   \_\ \____||_____|

Motion Scenario Runner
`)
}
