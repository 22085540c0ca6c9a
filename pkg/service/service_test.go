package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stagekit/stage-go/pkg/axis"
	"github.com/stagekit/stage-go/pkg/events"
	"github.com/stagekit/stage-go/pkg/jobs"
	"github.com/stagekit/stage-go/pkg/stage"
)

// recorder collects every published event for assertions.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func newRecorder(bus *events.Bus) *recorder {
	r := &recorder{}
	bus.SubscribeAll(r.record)
	return r
}

func (r *recorder) record(ev events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) ofType(t events.Type) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, ev := range r.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func (r *recorder) count(t events.Type) int {
	return len(r.ofType(t))
}

// types returns the type of every recorded event, in publish order.
func (r *recorder) types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Type, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

// waitFor blocks until at least n events of the given type arrived.
func (r *recorder) waitFor(t *testing.T, typ events.Type, n int) []events.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if evs := r.ofType(typ); len(evs) >= n {
			return evs
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d %s events, have %d", n, typ, r.count(typ))
	return nil
}

func simAxisConfig(a stage.Axis) stage.AxisConfig {
	min := 5.0
	switch a {
	case stage.AxisY:
		min = 0
	case stage.AxisZ:
		min = 15
	}
	return stage.AxisConfig{
		Axis:            a,
		Serial:          "025550131",
		Port:            "sim",
		Baud:            115200,
		Stage:           "62309260",
		RefMode:         "FPL",
		Range:           stage.TravelRange{Min: min, Max: 200},
		DefaultVelocity: 10,
		MaxVelocity:     20,
	}
}

// testStack builds a manager over three fast simulated axes plus a bus with
// a recorder attached.
func testStack(t *testing.T, opts map[stage.Axis]axis.SimOptions) (*axis.Manager, map[stage.Axis]*axis.Sim, *events.Bus, *recorder) {
	t.Helper()

	sims := make(map[stage.Axis]*axis.Sim, 3)
	var controllers []axis.Controller
	for _, a := range stage.Axes() {
		o := opts[a]
		if o.MotionDelay == 0 {
			o.MotionDelay = 2 * time.Millisecond
		}
		s := axis.NewSim(simAxisConfig(a), o)
		sims[a] = s
		controllers = append(controllers, s)
	}

	mgr, err := axis.NewManager(axis.ManagerConfig{WaitTimeout: time.Second}, controllers...)
	require.NoError(t, err)

	bus := events.NewBus()
	return mgr, sims, bus, newRecorder(bus)
}

// readyStack builds a stack and brings it to READY through the connection
// service, sharing one pool for all services.
func readyStack(t *testing.T) (*axis.Manager, map[stage.Axis]*axis.Sim, *events.Bus, *recorder, *jobs.Pool) {
	t.Helper()

	mgr, sims, bus, rec := testStack(t, nil)
	pool := jobs.NewPool(jobs.Config{Workers: 2})
	t.Cleanup(pool.Shutdown)

	conn := NewConnectionService(mgr, bus, ConnectionConfig{Pool: pool})
	require.NoError(t, conn.Connect().Wait())

	h, err := conn.Initialize()
	require.NoError(t, err)
	require.NoError(t, h.Wait())
	require.True(t, conn.IsReady())

	return mgr, sims, bus, rec, pool
}
