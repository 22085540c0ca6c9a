package axis

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/stagekit/stage-go/pkg/stage"
)

// DefaultWaitTimeout bounds how long the manager waits for an axis to
// settle before the wait fails.
const DefaultWaitTimeout = 60 * time.Second

// ManagerConfig carries the tunables for a Manager.
type ManagerConfig struct {
	// WaitTimeout bounds every settle wait the manager issues. Zero
	// selects DefaultWaitTimeout.
	WaitTimeout time.Duration

	// ReferenceOrder overrides the order InitializeAll references the
	// axes in. It has to name every axis exactly once. Nil selects the
	// fixed Z, X, Y safety order.
	ReferenceOrder []stage.Axis

	// Logger receives debug output. No logging when nil.
	Logger *slog.Logger
}

// DefaultManagerConfig returns the manager defaults.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{WaitTimeout: DefaultWaitTimeout}
}

// Manager coordinates the three axis controllers of a stage. It owns no
// state beyond the controller set; connection and motion state live on the
// controllers themselves.
type Manager struct {
	controllers map[stage.Axis]Controller
	refOrder    []stage.Axis
	waitTimeout time.Duration
	logger      *slog.Logger
}

// NewManager builds a manager over the given controllers. Exactly one
// controller per stage axis is required.
func NewManager(cfg ManagerConfig, controllers ...Controller) (*Manager, error) {
	byAxis := make(map[stage.Axis]Controller, len(controllers))
	for _, c := range controllers {
		a := c.Axis()
		if _, ok := byAxis[a]; ok {
			return nil, stage.ConfigErr(fmt.Sprintf("duplicate controller for axis %s", a), nil)
		}
		byAxis[a] = c
	}
	for _, a := range stage.Axes() {
		if _, ok := byAxis[a]; !ok {
			return nil, stage.ConfigErr(fmt.Sprintf("missing controller for axis %s", a), nil)
		}
	}
	if len(byAxis) != len(stage.Axes()) {
		return nil, stage.ConfigErr("controller for unknown axis", nil)
	}
	order := cfg.ReferenceOrder
	if order == nil {
		order = stage.ReferenceOrder()
	} else if err := validateOrder(order); err != nil {
		return nil, err
	}
	timeout := cfg.WaitTimeout
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	return &Manager{
		controllers: byAxis,
		refOrder:    order,
		waitTimeout: timeout,
		logger:      cfg.Logger,
	}, nil
}

// validateOrder checks that order is a permutation of the three axes.
func validateOrder(order []stage.Axis) error {
	if len(order) != len(stage.Axes()) {
		return stage.ConfigErr(fmt.Sprintf("reference order %v does not cover all axes", order), nil)
	}
	seen := make(map[stage.Axis]bool, len(order))
	for _, a := range order {
		if a != stage.AxisX && a != stage.AxisY && a != stage.AxisZ {
			return stage.ConfigErr(fmt.Sprintf("reference order contains unknown axis %d", a), nil)
		}
		if seen[a] {
			return stage.ConfigErr(fmt.Sprintf("reference order names axis %s twice", a), nil)
		}
		seen[a] = true
	}
	return nil
}

func (m *Manager) debugLog(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Debug(msg, args...)
	}
}

// Controller returns the controller driving the given axis.
func (m *Manager) Controller(a stage.Axis) (Controller, error) {
	c, ok := m.controllers[a]
	if !ok {
		return nil, stage.ConfigErr(fmt.Sprintf("no controller for axis %s", a), nil)
	}
	return c, nil
}

// ConnectAll opens every axis in X, Y, Z order. When one axis fails, the
// already opened ones are disconnected again before the error is returned.
func (m *Manager) ConnectAll() error {
	var opened []Controller
	for _, a := range stage.Axes() {
		c := m.controllers[a]
		if err := c.Connect(); err != nil {
			for _, o := range opened {
				_ = o.Disconnect()
			}
			return err
		}
		m.debugLog("axis connected", "axis", a.String())
		opened = append(opened, c)
	}
	return nil
}

// DisconnectAll closes every axis and keeps going on failure. The combined
// error carries every individual failure.
func (m *Manager) DisconnectAll() error {
	var errs []error
	for _, a := range stage.Axes() {
		if err := m.controllers[a].Disconnect(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// InitializeAll runs the reference moves in the configured order, Z, X, Y
// by default. progress, when non-nil, is invoked after each axis finished
// referencing.
func (m *Manager) InitializeAll(progress func(stage.Axis)) error {
	for _, a := range m.refOrder {
		m.debugLog("referencing axis", "axis", a.String())
		if err := m.controllers[a].Initialize(); err != nil {
			return err
		}
		if progress != nil {
			progress(a)
		}
	}
	return nil
}

// AllConnected reports whether every axis has an open connection.
func (m *Manager) AllConnected() bool {
	for _, c := range m.controllers {
		if !c.IsConnected() {
			return false
		}
	}
	return true
}

// AllInitialized reports whether every axis finished its reference move.
func (m *Manager) AllInitialized() bool {
	for _, c := range m.controllers {
		if !c.IsInitialized() {
			return false
		}
	}
	return true
}

// PositionSnapshot reads all three axis positions.
func (m *Manager) PositionSnapshot() (stage.Position, error) {
	var pos stage.Position
	for _, a := range stage.Axes() {
		v, err := m.controllers[a].Position()
		if err != nil {
			return stage.Position{}, err
		}
		pos = pos.WithAxis(a, v)
	}
	return pos, nil
}

// MoveAxes commands every listed axis towards its coordinate in target.
// All commands are issued before any wait starts, so the axes travel
// together. With wait set the call blocks until every axis settled.
func (m *Manager) MoveAxes(axes []stage.Axis, target stage.Position, wait bool) error {
	for _, a := range axes {
		c, err := m.Controller(a)
		if err != nil {
			return err
		}
		if err := c.MoveAbsolute(target.Coord(a)); err != nil {
			return err
		}
	}
	if !wait {
		return nil
	}
	return m.WaitAxes(axes)
}

// WaitAxes blocks until every listed axis reports on-target. The axes are
// awaited concurrently and every failure is collected.
func (m *Manager) WaitAxes(axes []stage.Axis) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, a := range axes {
		c, err := m.Controller(a)
		if err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.WaitForTarget(m.waitTimeout); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}

// StopAll halts motion on every axis and keeps going on failure.
func (m *Manager) StopAll() error {
	var errs []error
	for _, a := range stage.Axes() {
		if err := m.controllers[a].Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MaxVelocities raises every axis to its configured velocity limit.
func (m *Manager) MaxVelocities() error {
	for _, a := range stage.Axes() {
		c := m.controllers[a]
		if err := c.SetVelocity(c.Config().MaxVelocity); err != nil {
			return err
		}
	}
	return nil
}

// ParkAll drives every axis to the park coordinate at full velocity. Z
// retracts first; X and Y follow together once Z settled.
func (m *Manager) ParkAll(park float64) error {
	if err := m.MaxVelocities(); err != nil {
		return err
	}
	target := stage.Position{X: park, Y: park, Z: park}
	m.debugLog("parking stage", "park", park)
	if err := m.MoveAxes([]stage.Axis{stage.AxisZ}, target, true); err != nil {
		return err
	}
	return m.MoveAxes([]stage.Axis{stage.AxisX, stage.AxisY}, target, true)
}
