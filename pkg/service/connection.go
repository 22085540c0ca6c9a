package service

import (
	"log/slog"
	"sync"

	"github.com/stagekit/stage-go/pkg/axis"
	"github.com/stagekit/stage-go/pkg/events"
	"github.com/stagekit/stage-go/pkg/jobs"
	"github.com/stagekit/stage-go/pkg/stage"
)

// ConnectionConfig holds configuration for a ConnectionService.
type ConnectionConfig struct {
	// Pool is the worker pool used for connect and initialize jobs. When
	// nil the service creates its own pool and shuts it down on Shutdown.
	Pool *jobs.Pool

	// Logger is the optional logger for debug output.
	Logger *slog.Logger
}

// ConnectionService drives the connection and initialization lifecycle of
// the whole stage and publishes every transition on the event bus.
type ConnectionService struct {
	manager  *axis.Manager
	bus      *events.Bus
	pool     *jobs.Pool
	ownsPool bool
	logger   *slog.Logger

	mu        sync.Mutex
	connState stage.ConnectionState
	initState stage.InitState
}

// NewConnectionService creates a connection service over manager that
// reports on bus.
func NewConnectionService(manager *axis.Manager, bus *events.Bus, cfg ConnectionConfig) *ConnectionService {
	s := &ConnectionService{
		manager:   manager,
		bus:       bus,
		pool:      cfg.Pool,
		logger:    cfg.Logger,
		connState: stage.StateDisconnected,
		initState: stage.InitNotInitialized,
	}

	if s.pool == nil {
		s.pool = jobs.NewPool(jobs.Config{Logger: cfg.Logger})
		s.ownsPool = true
	}

	return s
}

// Pool returns the worker pool the service submits its jobs to.
func (s *ConnectionService) Pool() *jobs.Pool { return s.pool }

// ConnectionState returns the current connection state.
func (s *ConnectionService) ConnectionState() stage.ConnectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connState
}

// InitState returns the current initialization state.
func (s *ConnectionService) InitState() stage.InitState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initState
}

// IsReady reports whether the system is connected and initialized.
func (s *ConnectionService) IsReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connState == stage.StateReady
}

// State returns the combined system state for status displays.
func (s *ConnectionService) State() stage.SystemState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stage.SystemState{Connection: s.connState, Init: s.initState}
}

// Connect opens the links to all axis controllers on the worker pool.
// There is no state guard: a connect request always restarts the
// connecting transition, so a retry after a failed attempt needs no reset
// call in between.
func (s *ConnectionService) Connect() *jobs.Handle {
	s.setStates(stage.StateConnecting, s.InitState())
	s.publish(events.TypeConnectionStarted, nil)
	s.publishStateChanged()

	h, err := s.pool.Submit("connect", func() error {
		if err := s.manager.ConnectAll(); err != nil {
			werr := connectionFailure(err)
			s.failConnect(werr)
			return werr
		}

		s.setStates(stage.StateConnected, stage.InitNotInitialized)
		s.publish(events.TypeConnectionSucceeded, nil)
		s.publishStateChanged()
		s.debugLog("all axes connected")
		return nil
	})
	if err != nil {
		werr := stage.ConnectionErr(0, "connect rejected", err)
		s.failConnect(werr)
		return jobs.Completed("connect", werr)
	}
	return h
}

// Initialize references all axes and applies their default velocities on
// the worker pool. The system must be connected; otherwise an
// INITIALIZATION_FAILED event is published and the error is returned
// without any state change.
func (s *ConnectionService) Initialize() (*jobs.Handle, error) {
	if s.ConnectionState() != stage.StateConnected {
		err := stage.InitializationErr(0, "system is not connected", nil)
		s.publish(events.TypeInitializationFailed, errorInfo(err))
		return nil, err
	}

	s.setStates(stage.StateInitializing, stage.InitInitializing)
	s.publish(events.TypeInitializationStarted, nil)
	s.publishStateChanged()

	h, err := s.pool.Submit("initialize", func() error {
		progress := func(a stage.Axis) {
			s.publish(events.TypeInitializationProgress, events.AxisProgress{Axis: a})
		}
		if err := s.manager.InitializeAll(progress); err != nil {
			werr := initializationFailure(err)
			s.failInitialize(werr)
			return werr
		}

		s.setStates(stage.StateReady, stage.InitInitialized)
		s.publish(events.TypeInitializationSucceeded, nil)
		s.publishStateChanged()
		s.debugLog("all axes initialized")
		return nil
	})
	if err != nil {
		werr := stage.InitializationErr(0, "initialize rejected", err)
		s.failInitialize(werr)
		return nil, werr
	}
	return h, nil
}

// Disconnect closes every axis link. The state always ends up
// DISCONNECTED, even when some links fail to close; the combined close
// error is returned.
func (s *ConnectionService) Disconnect() error {
	err := s.manager.DisconnectAll()

	s.setStates(stage.StateDisconnected, stage.InitNotInitialized)
	s.publishStateChanged()

	if err != nil {
		s.debugLog("disconnect reported errors", "err", err)
		return err
	}
	s.debugLog("all axes disconnected")
	return nil
}

// Shutdown disconnects all axes and, when the service owns its worker
// pool, shuts the pool down after in-flight jobs finish.
func (s *ConnectionService) Shutdown() error {
	err := s.Disconnect()
	if s.ownsPool {
		s.pool.Shutdown()
	}
	return err
}

// setStates updates both lifecycle states under the lock without
// publishing; pair it with publishStateChanged.
func (s *ConnectionService) setStates(conn stage.ConnectionState, init stage.InitState) {
	s.mu.Lock()
	s.connState = conn
	s.initState = init
	s.mu.Unlock()
}

// publishStateChanged emits exactly one STATE_CHANGED for the current
// state pair.
func (s *ConnectionService) publishStateChanged() {
	s.mu.Lock()
	change := events.StateChange{Connection: s.connState, Init: s.initState}
	s.mu.Unlock()
	s.publish(events.TypeStateChanged, change)
}

func (s *ConnectionService) failConnect(err error) {
	s.setStates(stage.StateError, s.InitState())
	info := errorInfo(err)
	s.publish(events.TypeConnectionFailed, info)
	s.publishStateChanged()
	s.publish(events.TypeErrorOccurred, info)
	s.debugLog("connect failed", "err", err)
}

func (s *ConnectionService) failInitialize(err error) {
	s.setStates(stage.StateError, stage.InitFailed)
	info := errorInfo(err)
	s.publish(events.TypeInitializationFailed, info)
	s.publishStateChanged()
	s.publish(events.TypeErrorOccurred, info)
	s.debugLog("initialize failed", "err", err)
}

func (s *ConnectionService) publish(t events.Type, data any) {
	s.bus.Publish(events.Event{Type: t, Data: data})
}

func (s *ConnectionService) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

// connectionFailure keeps connection-classified errors intact and wraps
// everything else.
func connectionFailure(err error) error {
	if stage.KindOf(err) == stage.KindConnection {
		return err
	}
	return stage.ConnectionErr(0, "connect failed", err)
}

// initializationFailure keeps initialization-classified errors intact and
// wraps everything else.
func initializationFailure(err error) error {
	if stage.KindOf(err) == stage.KindInitialization {
		return err
	}
	return stage.InitializationErr(0, "initialization failed", err)
}
