package axis

import (
	"testing"
	"time"

	"github.com/stagekit/stage-go/pkg/stage"
)

func testSims(opts map[stage.Axis]SimOptions) (*Sim, *Sim, *Sim) {
	mk := func(a stage.Axis) *Sim {
		o := SimOptions{MotionDelay: time.Millisecond}
		if opts != nil {
			if custom, ok := opts[a]; ok {
				if custom.MotionDelay <= 0 {
					custom.MotionDelay = time.Millisecond
				}
				o = custom
			}
		}
		return NewSim(simConfig(a), o)
	}
	return mk(stage.AxisX), mk(stage.AxisY), mk(stage.AxisZ)
}

func testManager(t *testing.T, opts map[stage.Axis]SimOptions) (*Manager, *Sim, *Sim, *Sim) {
	t.Helper()
	x, y, z := testSims(opts)
	m, err := NewManager(DefaultManagerConfig(), x, y, z)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m, x, y, z
}

func readyManager(t *testing.T) (*Manager, *Sim, *Sim, *Sim) {
	t.Helper()
	m, x, y, z := testManager(t, nil)
	if err := m.ConnectAll(); err != nil {
		t.Fatalf("ConnectAll: %v", err)
	}
	if err := m.InitializeAll(nil); err != nil {
		t.Fatalf("InitializeAll: %v", err)
	}
	return m, x, y, z
}

func TestNewManager_RequiresAllAxes(t *testing.T) {
	x, y, _ := testSims(nil)

	_, err := NewManager(DefaultManagerConfig(), x, y)
	if stage.KindOf(err) != stage.KindConfig {
		t.Errorf("NewManager with missing axis = %v, want configuration error", err)
	}
}

func TestNewManager_ReferenceOrder(t *testing.T) {
	tests := []struct {
		name    string
		order   []stage.Axis
		wantErr bool
	}{
		{"default", nil, false},
		{"custom permutation", []stage.Axis{stage.AxisX, stage.AxisZ, stage.AxisY}, false},
		{"too short", []stage.Axis{stage.AxisZ}, true},
		{"repeated axis", []stage.Axis{stage.AxisZ, stage.AxisZ, stage.AxisY}, true},
		{"unknown axis", []stage.Axis{stage.AxisZ, stage.AxisX, stage.Axis(9)}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, z := testSims(nil)
			cfg := DefaultManagerConfig()
			cfg.ReferenceOrder = tc.order
			_, err := NewManager(cfg, x, y, z)
			if tc.wantErr {
				if stage.KindOf(err) != stage.KindConfig {
					t.Errorf("NewManager = %v, want configuration error", err)
				}
				return
			}
			if err != nil {
				t.Errorf("NewManager: %v", err)
			}
		})
	}
}

func TestManager_InitializeAllCustomOrder(t *testing.T) {
	x, y, z := testSims(nil)
	cfg := DefaultManagerConfig()
	cfg.ReferenceOrder = []stage.Axis{stage.AxisY, stage.AxisZ, stage.AxisX}
	m, err := NewManager(cfg, x, y, z)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if err := m.ConnectAll(); err != nil {
		t.Fatalf("ConnectAll: %v", err)
	}

	var order []stage.Axis
	if err := m.InitializeAll(func(a stage.Axis) { order = append(order, a) }); err != nil {
		t.Fatalf("InitializeAll: %v", err)
	}
	want := []stage.Axis{stage.AxisY, stage.AxisZ, stage.AxisX}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("reference order = %v, want %v", order, want)
		}
	}
}

func TestNewManager_RejectsDuplicateAxis(t *testing.T) {
	x, y, z := testSims(nil)
	x2 := NewSim(simConfig(stage.AxisX), SimOptions{})

	_, err := NewManager(DefaultManagerConfig(), x, y, z, x2)
	if stage.KindOf(err) != stage.KindConfig {
		t.Errorf("NewManager with duplicate axis = %v, want configuration error", err)
	}
}

func TestManager_Controller(t *testing.T) {
	m, _, y, _ := testManager(t, nil)

	c, err := m.Controller(stage.AxisY)
	if err != nil {
		t.Fatalf("Controller: %v", err)
	}
	if c != Controller(y) {
		t.Error("Controller(Y) returned a different controller")
	}
	if _, err := m.Controller(stage.Axis(0)); stage.KindOf(err) != stage.KindConfig {
		t.Errorf("Controller(unknown) = %v, want configuration error", err)
	}
}

func TestManager_ConnectAll(t *testing.T) {
	m, x, y, z := testManager(t, nil)

	if err := m.ConnectAll(); err != nil {
		t.Fatalf("ConnectAll: %v", err)
	}
	for _, s := range []*Sim{x, y, z} {
		if !s.IsConnected() {
			t.Errorf("axis %s not connected", s.Axis())
		}
	}
	if !m.AllConnected() {
		t.Error("AllConnected() = false")
	}
}

func TestManager_ConnectAllRollsBackOnFailure(t *testing.T) {
	m, x, _, z := testManager(t, map[stage.Axis]SimOptions{
		stage.AxisY: {FailConnect: true},
	})

	err := m.ConnectAll()
	if stage.KindOf(err) != stage.KindConnection {
		t.Fatalf("ConnectAll = %v, want connection error", err)
	}
	if x.IsConnected() {
		t.Error("X left connected after rollback")
	}
	if z.IsConnected() {
		t.Error("Z connected despite earlier failure")
	}
	if m.AllConnected() {
		t.Error("AllConnected() = true after failed ConnectAll")
	}
}

func TestManager_InitializeAllOrder(t *testing.T) {
	m, _, _, _ := testManager(t, nil)
	if err := m.ConnectAll(); err != nil {
		t.Fatalf("ConnectAll: %v", err)
	}

	var order []stage.Axis
	if err := m.InitializeAll(func(a stage.Axis) { order = append(order, a) }); err != nil {
		t.Fatalf("InitializeAll: %v", err)
	}

	want := []stage.Axis{stage.AxisZ, stage.AxisX, stage.AxisY}
	if len(order) != len(want) {
		t.Fatalf("progress calls = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("reference order = %v, want %v", order, want)
		}
	}
	if !m.AllInitialized() {
		t.Error("AllInitialized() = false")
	}
}

func TestManager_InitializeAllStopsOnFailure(t *testing.T) {
	m, _, y, z := testManager(t, map[stage.Axis]SimOptions{
		stage.AxisX: {FailInitialize: true},
	})
	if err := m.ConnectAll(); err != nil {
		t.Fatalf("ConnectAll: %v", err)
	}

	var order []stage.Axis
	err := m.InitializeAll(func(a stage.Axis) { order = append(order, a) })
	if stage.KindOf(err) != stage.KindInitialization {
		t.Fatalf("InitializeAll = %v, want initialization error", err)
	}
	if len(order) != 1 || order[0] != stage.AxisZ {
		t.Errorf("progress calls = %v, want only Z before the X failure", order)
	}
	if !z.IsInitialized() {
		t.Error("Z not initialized")
	}
	if y.IsInitialized() {
		t.Error("Y initialized despite earlier failure")
	}
}

func TestManager_PositionSnapshot(t *testing.T) {
	m, _, _, _ := readyManager(t)

	pos, err := m.PositionSnapshot()
	if err != nil {
		t.Fatalf("PositionSnapshot: %v", err)
	}
	want := stage.Position{X: 5, Y: 0, Z: 15}
	if pos != want {
		t.Errorf("snapshot = %+v, want range minima %+v", pos, want)
	}
}

func TestManager_MoveAxes(t *testing.T) {
	m, _, _, _ := readyManager(t)

	target := stage.Position{X: 40, Y: 50, Z: 60}
	if err := m.MoveAxes(stage.Axes(), target, true); err != nil {
		t.Fatalf("MoveAxes: %v", err)
	}
	pos, err := m.PositionSnapshot()
	if err != nil {
		t.Fatalf("PositionSnapshot: %v", err)
	}
	if pos != target {
		t.Errorf("position = %+v, want %+v", pos, target)
	}
}

func TestManager_MoveAxesNoWait(t *testing.T) {
	m, x, _, _ := testManager(t, map[stage.Axis]SimOptions{
		stage.AxisX: {MotionDelay: 50 * time.Millisecond},
	})
	if err := m.ConnectAll(); err != nil {
		t.Fatalf("ConnectAll: %v", err)
	}
	if err := m.InitializeAll(nil); err != nil {
		t.Fatalf("InitializeAll: %v", err)
	}

	if err := m.MoveAxes([]stage.Axis{stage.AxisX}, stage.Position{X: 80}, false); err != nil {
		t.Fatalf("MoveAxes: %v", err)
	}
	on, err := x.OnTarget()
	if err != nil {
		t.Fatalf("OnTarget: %v", err)
	}
	if on {
		t.Error("axis on target immediately after a no-wait move")
	}
	if err := m.WaitAxes([]stage.Axis{stage.AxisX}); err != nil {
		t.Fatalf("WaitAxes: %v", err)
	}
}

func TestManager_ParkAll(t *testing.T) {
	m, x, y, z := readyManager(t)

	if err := m.ParkAll(stage.DefaultParkPosition); err != nil {
		t.Fatalf("ParkAll: %v", err)
	}
	pos, err := m.PositionSnapshot()
	if err != nil {
		t.Fatalf("PositionSnapshot: %v", err)
	}
	want := stage.Position{X: 200, Y: 200, Z: 200}
	if pos != want {
		t.Errorf("parked position = %+v, want %+v", pos, want)
	}
	for _, s := range []*Sim{x, y, z} {
		if got := s.Velocity(); got != s.Config().MaxVelocity {
			t.Errorf("axis %s velocity = %v, want max %v", s.Axis(), got, s.Config().MaxVelocity)
		}
	}
}

func TestManager_StopAll(t *testing.T) {
	m, x, _, _ := testManager(t, map[stage.Axis]SimOptions{
		stage.AxisX: {MotionDelay: time.Hour},
	})
	if err := m.ConnectAll(); err != nil {
		t.Fatalf("ConnectAll: %v", err)
	}
	if err := m.InitializeAll(nil); err != nil {
		t.Fatalf("InitializeAll: %v", err)
	}

	if err := m.MoveAxes([]stage.Axis{stage.AxisX}, stage.Position{X: 100}, false); err != nil {
		t.Fatalf("MoveAxes: %v", err)
	}
	if err := m.StopAll(); err != nil {
		t.Fatalf("StopAll: %v", err)
	}
	on, err := x.OnTarget()
	if err != nil {
		t.Fatalf("OnTarget: %v", err)
	}
	if !on {
		t.Error("axis still moving after StopAll")
	}
}

func TestManager_DisconnectAll(t *testing.T) {
	m, _, _, _ := readyManager(t)

	if err := m.DisconnectAll(); err != nil {
		t.Fatalf("DisconnectAll: %v", err)
	}
	if m.AllConnected() {
		t.Error("AllConnected() = true after DisconnectAll")
	}
	if m.AllInitialized() {
		t.Error("AllInitialized() = true after DisconnectAll")
	}
}
