package service

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stagekit/stage-go/pkg/axis"
	"github.com/stagekit/stage-go/pkg/events"
	"github.com/stagekit/stage-go/pkg/jobs"
	"github.com/stagekit/stage-go/pkg/stage"
)

// DefaultHoldSlice is the wake-up interval used while dwelling at a
// waypoint, so cancellation takes effect quickly even during long holds.
const DefaultHoldSlice = 50 * time.Millisecond

// MotionConfig holds configuration for a MotionService.
type MotionConfig struct {
	// ParkPosition is the coordinate ParkAll drives every axis to.
	// Zero selects stage.DefaultParkPosition.
	ParkPosition float64

	// HoldSlice bounds how long a waypoint hold sleeps between
	// cancellation checks. Zero selects DefaultHoldSlice.
	HoldSlice time.Duration

	// Logger is the optional logger for debug output.
	Logger *slog.Logger
}

// MotionService executes motion commands on the worker pool and publishes
// their progress on the event bus. Waypoint sequences are serialized: only
// one can run at a time.
type MotionService struct {
	manager *axis.Manager
	bus     *events.Bus
	pool    *jobs.Pool
	park    float64
	slice   time.Duration
	logger  *slog.Logger

	mu          sync.Mutex
	sequenceRun bool

	cancel atomic.Bool
}

// NewMotionService creates a motion service over manager that submits its
// jobs to pool, typically the pool shared with the connection service.
func NewMotionService(manager *axis.Manager, bus *events.Bus, pool *jobs.Pool, cfg MotionConfig) (*MotionService, error) {
	if pool == nil {
		return nil, stage.ConfigErr("motion service requires a worker pool", nil)
	}
	if cfg.ParkPosition == 0 {
		cfg.ParkPosition = stage.DefaultParkPosition
	}
	if cfg.HoldSlice <= 0 {
		cfg.HoldSlice = DefaultHoldSlice
	}
	return &MotionService{
		manager: manager,
		bus:     bus,
		pool:    pool,
		park:    cfg.ParkPosition,
		slice:   cfg.HoldSlice,
		logger:  cfg.Logger,
	}, nil
}

// SequenceRunning reports whether a waypoint sequence is executing.
func (s *MotionService) SequenceRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sequenceRun
}

// MoveAxisAbsolute moves one axis to target and waits for it to settle.
// The target is clamped to the axis travel range before the move starts.
func (s *MotionService) MoveAxisAbsolute(a stage.Axis, target float64) (*jobs.Handle, error) {
	c, err := s.manager.Controller(a)
	if err != nil {
		return nil, err
	}
	clamped := c.Config().Range.Clamp(target)

	name := fmt.Sprintf("move %s", a)
	start := events.AxisMotion{Axis: a, Op: "absolute", Target: clamped}
	return s.submitMotion(name, start, func() error {
		if err := c.MoveAbsolute(clamped); err != nil {
			return err
		}
		if err := s.manager.WaitAxes([]stage.Axis{a}); err != nil {
			return err
		}
		s.publish(events.TypeMotionProgress, events.AxisMotion{Axis: a, Op: "absolute", Target: clamped})
		return nil
	})
}

// MoveAxisRelative moves one axis by delta and waits for it to settle. The
// resulting target is clamped to the axis travel range.
func (s *MotionService) MoveAxisRelative(a stage.Axis, delta float64) (*jobs.Handle, error) {
	c, err := s.manager.Controller(a)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("step %s", a)
	start := events.AxisMotion{Axis: a, Op: "relative", Target: delta}
	return s.submitMotion(name, start, func() error {
		if err := c.MoveRelative(delta); err != nil {
			return err
		}
		if err := s.manager.WaitAxes([]stage.Axis{a}); err != nil {
			return err
		}
		pos, err := c.Position()
		if err != nil {
			return err
		}
		s.publish(events.TypeMotionProgress, events.AxisMotion{Axis: a, Op: "relative", Target: pos})
		return nil
	})
}

// MoveToPosition commands all three axes towards pos together. With wait
// set the job blocks until every axis settled and then reports the settled
// position; otherwise it returns right after the commands went out.
func (s *MotionService) MoveToPosition(pos stage.Position, wait bool) (*jobs.Handle, error) {
	return s.submitMotion("move to position", events.PositionUpdate{Position: pos}, func() error {
		if err := s.manager.MoveAxes(stage.Axes(), pos, wait); err != nil {
			return err
		}
		if !wait {
			return nil
		}
		return s.publishSettled()
	})
}

// MoveToPositionSafeZ moves to pos with collision-safe ordering. A
// retracting Z (target above current) travels first so the following
// horizontal motion happens at the safer height; a descending Z travels
// last for the same reason. At equal heights all axes travel together.
func (s *MotionService) MoveToPositionSafeZ(pos stage.Position) (*jobs.Handle, error) {
	zc, err := s.manager.Controller(stage.AxisZ)
	if err != nil {
		return nil, err
	}
	targetZ := zc.Config().Range.Clamp(pos.Z)

	return s.submitMotion("move safe-z", events.PositionUpdate{Position: pos}, func() error {
		current, err := zc.Position()
		if err != nil {
			return err
		}

		switch {
		case targetZ > current:
			if err := s.manager.MoveAxes([]stage.Axis{stage.AxisZ}, pos, true); err != nil {
				return err
			}
			if err := s.manager.MoveAxes([]stage.Axis{stage.AxisX, stage.AxisY}, pos, true); err != nil {
				return err
			}
		case targetZ < current:
			if err := s.manager.MoveAxes([]stage.Axis{stage.AxisX, stage.AxisY}, pos, true); err != nil {
				return err
			}
			if err := s.manager.MoveAxes([]stage.Axis{stage.AxisZ}, pos, true); err != nil {
				return err
			}
		default:
			if err := s.manager.MoveAxes(stage.Axes(), pos, true); err != nil {
				return err
			}
		}
		return s.publishSettled()
	})
}

// ParkAll retracts the stage to the park coordinate at full velocity, Z
// first.
func (s *MotionService) ParkAll() (*jobs.Handle, error) {
	target := stage.Position{X: s.park, Y: s.park, Z: s.park}
	return s.submitMotion("park", events.PositionUpdate{Position: target}, func() error {
		if err := s.manager.ParkAll(s.park); err != nil {
			return err
		}
		return s.publishSettled()
	})
}

// ExecuteSequence runs a waypoint sequence: per waypoint a progress event,
// a combined move, then the hold dwell. Cancellation is honored between
// waypoints and during holds. A second sequence while one is running is
// rejected with ErrSequenceRunning.
func (s *MotionService) ExecuteSequence(cfg stage.SequenceConfig) (*jobs.Handle, error) {
	s.mu.Lock()
	if s.sequenceRun {
		s.mu.Unlock()
		return nil, stage.MotionErr(0, "sequence rejected", ErrSequenceRunning)
	}
	s.sequenceRun = true
	s.mu.Unlock()

	s.cancel.Store(false)

	start := events.SequenceStart{Count: len(cfg.Waypoints), Park: cfg.ParkWhenComplete}
	h, err := s.submitMotion("sequence", start, func() error {
		defer func() {
			s.mu.Lock()
			s.sequenceRun = false
			s.mu.Unlock()
		}()
		return s.runSequence(cfg)
	})
	if err != nil {
		s.mu.Lock()
		s.sequenceRun = false
		s.mu.Unlock()
		return nil, err
	}
	return h, nil
}

func (s *MotionService) runSequence(cfg stage.SequenceConfig) error {
	count := len(cfg.Waypoints)
	for i, wp := range cfg.Waypoints {
		if s.cancel.Load() {
			return stage.MotionErr(0, "sequence aborted", ErrCancelled)
		}

		s.publish(events.TypeMotionProgress, events.SequenceProgress{
			Index:    i,
			Count:    count,
			Position: wp.Position,
		})
		s.debugLog("sequence waypoint", "index", i, "count", count, "target", wp.Position.String())

		if err := s.manager.MoveAxes(stage.Axes(), wp.Position, true); err != nil {
			return err
		}
		if s.cancel.Load() {
			return stage.MotionErr(0, "sequence aborted", ErrCancelled)
		}
		if err := s.holdAt(wp.Hold); err != nil {
			return err
		}
	}

	if cfg.ParkWhenComplete {
		if s.cancel.Load() {
			return stage.MotionErr(0, "sequence aborted", ErrCancelled)
		}
		park := cfg.ParkPosition
		if park == 0 {
			park = s.park
		}
		s.debugLog("sequence complete, parking", "park", park)
		return s.manager.ParkAll(park)
	}
	return nil
}

// holdAt dwells at the current waypoint, waking every hold slice so a
// cancellation does not have to wait out the full dwell.
func (s *MotionService) holdAt(d time.Duration) error {
	deadline := time.Now().Add(d)
	for {
		if s.cancel.Load() {
			return stage.MotionErr(0, "sequence aborted", ErrCancelled)
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil
		}
		if remaining > s.slice {
			remaining = s.slice
		}
		time.Sleep(remaining)
	}
}

// CancelMotion requests cancellation of the running sequence, stops every
// axis and publishes the MOTION_FAILED acknowledgement immediately.
func (s *MotionService) CancelMotion() {
	s.cancel.Store(true)
	if err := s.manager.StopAll(); err != nil {
		s.debugLog("stop all failed", "err", err)
	}
	s.publish(events.TypeMotionFailed, events.ErrorInfo{
		Kind:    stage.KindMotion,
		Message: "cancelled",
	})
}

// submitMotion publishes MOTION_STARTED, runs fn on the pool and publishes
// the outcome: MOTION_COMPLETED on success, MOTION_FAILED plus
// ERROR_OCCURRED on failure. Motion and initialization errors pass through
// unchanged; anything else is wrapped as a motion error.
func (s *MotionService) submitMotion(name string, start any, fn func() error) (*jobs.Handle, error) {
	s.publish(events.TypeMotionStarted, start)

	h, err := s.pool.Submit(name, func() error {
		if err := fn(); err != nil {
			werr := motionFailure(err)
			s.failMotion(name, werr)
			return werr
		}
		s.publish(events.TypeMotionCompleted, name)
		s.debugLog("motion complete", "job", name)
		return nil
	})
	if err != nil {
		werr := stage.MotionErr(0, fmt.Sprintf("%s rejected", name), err)
		s.failMotion(name, werr)
		return nil, werr
	}
	return h, nil
}

func (s *MotionService) failMotion(name string, err error) {
	info := errorInfo(err)
	s.publish(events.TypeMotionFailed, info)
	s.publish(events.TypeErrorOccurred, info)
	s.debugLog("motion failed", "job", name, "err", err)
}

// publishSettled reads the settled position and reports it as progress.
func (s *MotionService) publishSettled() error {
	snap, err := s.manager.PositionSnapshot()
	if err != nil {
		return err
	}
	s.publish(events.TypeMotionProgress, events.PositionUpdate{Position: snap})
	return nil
}

func (s *MotionService) publish(t events.Type, data any) {
	s.bus.Publish(events.Event{Type: t, Data: data})
}

func (s *MotionService) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

// motionFailure keeps motion and initialization classifications intact and
// wraps everything else as a motion error.
func motionFailure(err error) error {
	switch stage.KindOf(err) {
	case stage.KindMotion, stage.KindInitialization:
		return err
	default:
		return stage.MotionErr(0, "motion failed", err)
	}
}
