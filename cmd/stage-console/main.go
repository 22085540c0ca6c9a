// Command stage-console is the interactive operator console for a
// three-axis positioning stage.
//
// The console drives the full orchestration layer:
//   - Connection lifecycle (connect, reference, disconnect)
//   - Single-axis and coordinated motion with travel clamping
//   - Waypoint sequences with cancellation
//   - Periodic position monitoring
//   - Optional CBOR session recording and Prometheus counters
//
// Usage:
//
//	stage-console [flags]
//
// Flags:
//
//	-config string          Profile file path (built-in defaults when empty)
//	-sim                    Use simulated controllers instead of serial hardware (default true)
//	-motion-delay duration  Simulated time per move (default 50ms)
//	-record string          Record session events to this CBOR log file
//	-log-level string       Log level: debug, info, warn, error (default "info")
//	-workers int            Worker pool size override (0 keeps the profile value)
//
// Examples:
//
//	# Drive a simulated stage
//	stage-console
//
//	# Slow the simulation down and record the session
//	stage-console -motion-delay 250ms -record session.stlog
//
//	# Drive real controllers from a profile
//	stage-console -config stage.yaml -sim=false
//
// Interactive Commands:
//
//	connect          - Connect all axis controllers
//	init             - Reference all axes (Z first, then X, Y)
//	pos              - Show current position
//	move <axis> <mm> - Move one axis to an absolute target
//	goto <x> <y> <z> - Move to a position with the Z axis raised first
//	seq run          - Execute the configured waypoint sequence
//	park             - Drive all axes to the park position
//	status           - Show connection and motion state
//	quit             - Exit the console
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stagekit/stage-go/cmd/stage-console/interactive"
	"github.com/stagekit/stage-go/pkg/axis"
	"github.com/stagekit/stage-go/pkg/config"
	"github.com/stagekit/stage-go/pkg/events"
	"github.com/stagekit/stage-go/pkg/gcs"
	"github.com/stagekit/stage-go/pkg/jobs"
	stagelog "github.com/stagekit/stage-go/pkg/log"
	"github.com/stagekit/stage-go/pkg/service"
	"github.com/stagekit/stage-go/pkg/stage"
	"github.com/stagekit/stage-go/pkg/stats"
)

// Config holds the console configuration.
type Config struct {
	ConfigFile  string
	Sim         bool
	MotionDelay time.Duration
	Record      string
	LogLevel    string
	Workers     int
}

var opts Config

func init() {
	flag.StringVar(&opts.ConfigFile, "config", "", "Profile file path (built-in defaults when empty)")
	flag.BoolVar(&opts.Sim, "sim", true, "Use simulated controllers instead of serial hardware")
	flag.DurationVar(&opts.MotionDelay, "motion-delay", 50*time.Millisecond, "Simulated time per move")
	flag.StringVar(&opts.Record, "record", "", "Record session events to this CBOR log file")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.IntVar(&opts.Workers, "workers", 0, "Worker pool size override (0 keeps the profile value)")
}

func main() {
	flag.Parse()

	logger := setupLogging(opts.LogLevel)

	log.Println("Stage Console")
	log.Println("=============")

	profile, err := loadProfile(opts.ConfigFile)
	if err != nil {
		log.Fatalf("Failed to load profile: %v", err)
	}
	if opts.Workers > 0 {
		profile.Runtime.Workers = opts.Workers
	}
	if err := profile.Validate(); err != nil {
		log.Fatalf("Invalid profile: %v", err)
	}
	log.Printf("Stage: %s (reference mode: %s)", profile.Stage, profile.RefMode)
	if opts.Sim {
		log.Printf("Controllers: simulated (motion delay %s)", opts.MotionDelay)
	} else {
		log.Println("Controllers: serial")
	}

	manager, err := axis.NewManager(axis.ManagerConfig{
		ReferenceOrder: profile.ReferenceOrder,
		Logger:         logger,
	}, buildControllers(profile, logger)...)
	if err != nil {
		log.Fatalf("Failed to create axis manager: %v", err)
	}

	bus := events.NewBus()
	bus.SetLogger(logger)

	pool := jobs.NewPool(jobs.Config{
		Workers:   profile.Runtime.Workers,
		QueueSize: profile.Runtime.QueueSize,
		Logger:    logger,
	})

	conn := service.NewConnectionService(manager, bus, service.ConnectionConfig{
		Pool:   pool,
		Logger: logger,
	})

	motion, err := service.NewMotionService(manager, bus, pool, service.MotionConfig{
		ParkPosition: profile.Motion.ParkPosition,
		Logger:       logger,
	})
	if err != nil {
		log.Fatalf("Failed to create motion service: %v", err)
	}

	monitor := service.NewPositionMonitor(manager, bus, service.MonitorConfig{
		Interval: profile.Runtime.PositionInterval,
		Ready:    conn.IsReady,
		Logger:   logger,
	})

	if opts.Record != "" {
		fileLogger, err := stagelog.NewFileLogger(opts.Record)
		if err != nil {
			log.Fatalf("Failed to open session log: %v", err)
		}
		recorder := stagelog.NewRecorder(bus, fileLogger)
		defer fileLogger.Close()
		defer recorder.Close()
		log.Printf("Recording session %s to %s", recorder.Session(), opts.Record)
	}

	registry := prometheus.NewRegistry()
	collector := stats.New(registry, bus)
	defer collector.Close()

	monitor.Start()

	console, err := interactive.New(interactive.Services{
		Conn:    conn,
		Motion:  motion,
		Monitor: monitor,
		Manager: manager,
		Bus:     bus,
		Profile: profile,
		Metrics: registry,
	})
	if err != nil {
		log.Fatalf("Failed to create console: %v", err)
	}

	// Redirect log output through readline to avoid interfering with input
	log.SetOutput(console.Stdout())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go console.Run(ctx, cancel)

	// Wait for shutdown signal or context cancellation
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal: %v", sig)
	case <-ctx.Done():
		// Context was cancelled by the quit command
	}

	log.SetOutput(os.Stderr)
	log.Println("Shutting down...")

	motion.CancelMotion()
	monitor.Stop()
	if err := conn.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	pool.Shutdown()

	log.Println("Goodbye!")
}

// loadProfile returns the built-in profile when no path is given.
func loadProfile(path string) (*config.Profile, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// buildControllers creates one controller per axis, simulated or serial
// depending on the -sim flag.
func buildControllers(profile *config.Profile, logger *slog.Logger) []axis.Controller {
	controllers := make([]axis.Controller, 0, len(stage.Axes()))
	for _, a := range stage.Axes() {
		cfg := profile.AxisConfig(a)
		if opts.Sim {
			controllers = append(controllers, axis.NewSim(cfg, axis.SimOptions{MotionDelay: opts.MotionDelay}))
			continue
		}
		gcsOpts := gcs.DefaultOptions()
		gcsOpts.Logger = logger
		controllers = append(controllers, gcs.NewController(cfg, gcsOpts))
	}
	return controllers
}

func setupLogging(level string) *slog.Logger {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	slogLevel := slog.LevelInfo
	switch level {
	case "debug":
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
		slogLevel = slog.LevelDebug
	case "warn":
		log.SetFlags(log.Ltime)
		slogLevel = slog.LevelWarn
	case "error":
		log.SetFlags(log.Ltime)
		slogLevel = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(logOutput{}, &slog.HandlerOptions{Level: slogLevel}))
}

// logOutput writes through the standard logger's current destination, so a
// later log.SetOutput (the console redirects output through readline)
// applies to structured logs as well.
type logOutput struct{}

func (logOutput) Write(p []byte) (int, error) {
	return log.Writer().Write(p)
}
