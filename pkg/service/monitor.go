package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/stagekit/stage-go/pkg/axis"
	"github.com/stagekit/stage-go/pkg/events"
)

// DefaultPositionInterval is the sampling interval used when none is
// configured.
const DefaultPositionInterval = 100 * time.Millisecond

// MonitorConfig holds configuration for a PositionMonitor.
type MonitorConfig struct {
	// Interval is the sampling interval. Zero selects
	// DefaultPositionInterval.
	Interval time.Duration

	// Ready gates sampling. Ticks are skipped while it returns false, so
	// the monitor can run across the whole session without querying axes
	// that are not initialized yet. Nil means always sample.
	Ready func() bool

	// Logger is the optional logger for debug output.
	Logger *slog.Logger
}

// PositionMonitor periodically samples all axis positions and publishes
// them as POSITION_UPDATED events.
type PositionMonitor struct {
	manager  *axis.Manager
	bus      *events.Bus
	interval time.Duration
	ready    func() bool
	logger   *slog.Logger

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewPositionMonitor creates a monitor over manager that reports on bus.
func NewPositionMonitor(manager *axis.Manager, bus *events.Bus, cfg MonitorConfig) *PositionMonitor {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultPositionInterval
	}
	return &PositionMonitor{
		manager:  manager,
		bus:      bus,
		interval: interval,
		ready:    cfg.Ready,
		logger:   cfg.Logger,
	}
}

// Running reports whether the monitor loop is active.
func (m *PositionMonitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop != nil
}

// Start launches the sampling loop. Starting a running monitor is a no-op.
func (m *PositionMonitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stop != nil {
		return
	}
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	go m.run(m.stop, m.done)
}

// Stop halts the sampling loop and waits for it to exit. Stopping a
// stopped monitor is a no-op.
func (m *PositionMonitor) Stop() {
	m.mu.Lock()
	stop, done := m.stop, m.done
	m.stop, m.done = nil, nil
	m.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (m *PositionMonitor) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.sample()
		}
	}
}

// sample reads one position snapshot and publishes it. Read failures are
// logged and the tick is skipped; the monitor itself keeps running.
func (m *PositionMonitor) sample() {
	if m.ready != nil && !m.ready() {
		return
	}

	pos, err := m.manager.PositionSnapshot()
	if err != nil {
		if m.logger != nil {
			m.logger.Debug("position sample failed", "err", err)
		}
		return
	}

	m.bus.Publish(events.Event{
		Type: events.TypePositionUpdated,
		Data: events.PositionUpdate{Position: pos},
	})
}
