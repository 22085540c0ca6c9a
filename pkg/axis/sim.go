package axis

import (
	"sync"
	"time"

	"github.com/stagekit/stage-go/pkg/stage"
)

const (
	defaultMotionDelay = 20 * time.Millisecond
	settlePollInterval = 2 * time.Millisecond
)

// SimOptions tunes a simulated controller.
type SimOptions struct {
	// MotionDelay is how long a commanded move takes to settle. Zero
	// selects a small default; moves never settle instantly.
	MotionDelay time.Duration

	// FailConnect makes Connect fail with a connection error.
	FailConnect bool

	// FailInitialize makes Initialize fail with an initialization error.
	FailInitialize bool
}

// Sim is an in-memory Controller. It mirrors the behavior of the hardware
// controller closely enough for service level tests: moves are accepted
// immediately, settle after MotionDelay and land exactly on the clamped
// target.
type Sim struct {
	cfg  stage.AxisConfig
	opts SimOptions

	mu          sync.Mutex
	connected   bool
	initialized bool
	position    float64
	target      float64
	velocity    float64
	moving      bool
	settledAt   time.Time
}

var _ Controller = (*Sim)(nil)

// NewSim builds a simulated controller for the given axis configuration.
func NewSim(cfg stage.AxisConfig, opts SimOptions) *Sim {
	if opts.MotionDelay <= 0 {
		opts.MotionDelay = defaultMotionDelay
	}
	return &Sim{cfg: cfg, opts: opts}
}

func (s *Sim) Axis() stage.Axis { return s.cfg.Axis }

func (s *Sim) Config() stage.AxisConfig { return s.cfg }

func (s *Sim) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *Sim) IsInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

func (s *Sim) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opts.FailConnect {
		return stage.ConnectionErr(s.cfg.Axis, "simulated connection failure", nil)
	}
	s.connected = true
	return nil
}

func (s *Sim) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	s.initialized = false
	s.moving = false
	return nil
}

// Initialize puts the axis at the lower end of its travel range, where the
// reference switch of the real hardware sits.
func (s *Sim) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return stage.InitializationErr(s.cfg.Axis, "not connected", nil)
	}
	if s.opts.FailInitialize {
		return stage.InitializationErr(s.cfg.Axis, "simulated reference failure", nil)
	}
	s.initialized = true
	s.position = s.cfg.Range.Min
	s.target = s.cfg.Range.Min
	s.velocity = s.cfg.DefaultVelocity
	return nil
}

func (s *Sim) MoveAbsolute(target float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return err
	}
	s.settleLocked()
	s.startMoveLocked(s.cfg.Range.Clamp(target))
	return nil
}

func (s *Sim) MoveRelative(delta float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return err
	}
	s.settleLocked()
	s.startMoveLocked(s.cfg.Range.Clamp(s.position + delta))
	return nil
}

// Position reports the last settled position. A move in flight does not
// update it until the move completes.
func (s *Sim) Position() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return 0, stage.CommunicationErr(s.cfg.Axis, "not connected", nil)
	}
	s.settleLocked()
	return s.position, nil
}

func (s *Sim) SetVelocity(v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return stage.CommunicationErr(s.cfg.Axis, "not connected", nil)
	}
	if v > s.cfg.MaxVelocity {
		v = s.cfg.MaxVelocity
	}
	s.velocity = v
	return nil
}

// Velocity reports the currently configured closed-loop velocity.
func (s *Sim) Velocity() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.velocity
}

// Stop halts a move in flight. The simulation completes the move at its
// target rather than at an intermediate point. Stop never fails; stopping
// a disconnected or idle axis is a no-op.
func (s *Sim) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.moving {
		s.position = s.target
		s.moving = false
	}
	return nil
}

func (s *Sim) OnTarget() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return false, stage.CommunicationErr(s.cfg.Axis, "not connected", nil)
	}
	s.settleLocked()
	return !s.moving, nil
}

func (s *Sim) WaitForTarget(timeout time.Duration) error {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	for {
		on, err := s.OnTarget()
		if err != nil {
			return err
		}
		if on {
			return nil
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return stage.MotionErr(s.cfg.Axis, "timed out waiting for target", nil)
		}
		time.Sleep(settlePollInterval)
	}
}

func (s *Sim) startMoveLocked(target float64) {
	s.target = target
	s.moving = true
	s.settledAt = time.Now().Add(s.opts.MotionDelay)
}

func (s *Sim) settleLocked() {
	if s.moving && !time.Now().Before(s.settledAt) {
		s.position = s.target
		s.moving = false
	}
}

func (s *Sim) readyLocked() error {
	if !s.connected {
		return stage.InitializationErr(s.cfg.Axis, "not connected", nil)
	}
	if !s.initialized {
		return stage.InitializationErr(s.cfg.Axis, "axis not referenced", nil)
	}
	return nil
}
