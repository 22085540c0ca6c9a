package runner

import (
	"log/slog"
	"sync"
	"time"

	"github.com/stagekit/stage-go/pkg/axis"
	"github.com/stagekit/stage-go/pkg/config"
	"github.com/stagekit/stage-go/pkg/events"
	"github.com/stagekit/stage-go/pkg/jobs"
	"github.com/stagekit/stage-go/pkg/service"
	"github.com/stagekit/stage-go/pkg/stage"
)

// stageFixture is a complete simulated stage stack built fresh for every
// scenario, so state never leaks from one scenario into the next.
type stageFixture struct {
	profile *config.Profile
	sims    map[stage.Axis]*axis.Sim
	manager *axis.Manager
	bus     *events.Bus
	pool    *jobs.Pool
	conn    *service.ConnectionService
	motion  *service.MotionService

	mu          sync.Mutex
	eventCounts map[events.Type]int
	tokens      []events.Token
}

// newStageFixture builds the simulated stack from the profile. Every axis
// gets its own simulator with the given motion delay.
func newStageFixture(profile *config.Profile, motionDelay time.Duration, logger *slog.Logger) (*stageFixture, error) {
	f := &stageFixture{
		profile:     profile,
		sims:        make(map[stage.Axis]*axis.Sim),
		eventCounts: make(map[events.Type]int),
	}

	controllers := make([]axis.Controller, 0, len(stage.Axes()))
	for _, a := range stage.Axes() {
		sim := axis.NewSim(profile.AxisConfig(a), axis.SimOptions{MotionDelay: motionDelay})
		f.sims[a] = sim
		controllers = append(controllers, sim)
	}

	manager, err := axis.NewManager(axis.ManagerConfig{
		ReferenceOrder: profile.ReferenceOrder,
		Logger:         logger,
	}, controllers...)
	if err != nil {
		return nil, err
	}
	f.manager = manager

	f.bus = events.NewBus()
	f.bus.SetLogger(logger)
	f.tokens = f.bus.SubscribeAll(f.countEvent)

	f.pool = jobs.NewPool(jobs.Config{
		Workers:   profile.Runtime.Workers,
		QueueSize: profile.Runtime.QueueSize,
		Logger:    logger,
	})

	f.conn = service.NewConnectionService(manager, f.bus, service.ConnectionConfig{
		Pool:   f.pool,
		Logger: logger,
	})

	motion, err := service.NewMotionService(manager, f.bus, f.pool, service.MotionConfig{
		ParkPosition: profile.Motion.ParkPosition,
		Logger:       logger,
	})
	if err != nil {
		f.close()
		return nil, err
	}
	f.motion = motion

	return f, nil
}

// countEvent tallies every published event by type.
func (f *stageFixture) countEvent(ev events.Event) {
	f.mu.Lock()
	f.eventCounts[ev.Type]++
	f.mu.Unlock()
}

// eventCount returns how many events of type t were published so far.
func (f *stageFixture) eventCount(t events.Type) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.eventCounts[t]
}

// close tears the fixture down: any running motion is cancelled, the stage
// disconnected and the pool drained.
func (f *stageFixture) close() {
	if f.motion != nil {
		f.motion.CancelMotion()
	}
	if f.conn != nil {
		_ = f.conn.Shutdown()
	}
	if f.pool != nil {
		f.pool.Shutdown()
	}
	for _, token := range f.tokens {
		f.bus.Unsubscribe(token)
	}
	f.tokens = nil
}
