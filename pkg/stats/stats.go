// Package stats feeds Prometheus metrics from stage bus events.
//
// A Collector subscribes to every bus event type and keeps counters for
// motion activity and errors plus gauges for the connection state and the
// last known axis positions. Metrics are registered on the Registerer
// passed to New, so callers control exposition; nothing in this package
// opens an HTTP endpoint.
package stats

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/stagekit/stage-go/pkg/events"
	"github.com/stagekit/stage-go/pkg/stage"
)

// Collector translates bus events into Prometheus metrics.
type Collector struct {
	bus    *events.Bus
	tokens []events.Token

	movesStarted   *prometheus.CounterVec
	movesCompleted prometheus.Counter
	movesFailed    prometheus.Counter
	cancellations  prometheus.Counter

	sequencesStarted   prometheus.Counter
	sequencesCompleted prometheus.Counter
	waypointsReached   prometheus.Counter

	axesReferenced prometheus.Counter
	errorsTotal    *prometheus.CounterVec

	connectionState prometheus.Gauge
	initState       prometheus.Gauge
	axisPosition    *prometheus.GaugeVec
}

// New creates a Collector, registers its metrics on reg and subscribes it
// to the bus. A nil reg falls back to the default registerer. Call Close
// to detach from the bus.
func New(reg prometheus.Registerer, bus *events.Bus) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		bus: bus,
		movesStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stage_moves_started_total",
			Help: "Total motion jobs submitted, by axis (ALL for multi-axis moves)",
		}, []string{"axis"}),
		movesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stage_moves_completed_total",
			Help: "Total motion jobs that finished successfully, sequences excluded",
		}),
		movesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stage_moves_failed_total",
			Help: "Total MOTION_FAILED events published",
		}),
		cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stage_motion_cancellations_total",
			Help: "Total cancellation acknowledgements",
		}),
		sequencesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stage_sequences_started_total",
			Help: "Total waypoint sequences submitted",
		}),
		sequencesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stage_sequences_completed_total",
			Help: "Total waypoint sequences that ran to completion",
		}),
		waypointsReached: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stage_sequence_waypoints_total",
			Help: "Total waypoints reached across all sequences",
		}),
		axesReferenced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stage_axes_referenced_total",
			Help: "Total per-axis reference moves completed during initialization",
		}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stage_errors_total",
			Help: "Total ERROR_OCCURRED events, by error kind",
		}, []string{"kind"}),
		connectionState: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stage_connection_state",
			Help: "Connection state code (0=disconnected 1=connecting 2=connected 3=initializing 4=ready 5=error)",
		}),
		initState: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stage_init_state",
			Help: "Initialization state code (0=not initialized 1=initializing 2=initialized 3=failed)",
		}),
		axisPosition: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stage_axis_position_mm",
			Help: "Last known axis position in millimeters",
		}, []string{"axis"}),
	}

	reg.MustRegister(
		c.movesStarted,
		c.movesCompleted,
		c.movesFailed,
		c.cancellations,
		c.sequencesStarted,
		c.sequencesCompleted,
		c.waypointsReached,
		c.axesReferenced,
		c.errorsTotal,
		c.connectionState,
		c.initState,
		c.axisPosition,
	)

	c.tokens = bus.SubscribeAll(c.handle)
	return c
}

// Close detaches the collector from the bus. Registered metrics keep
// their last values.
func (c *Collector) Close() {
	for _, token := range c.tokens {
		c.bus.Unsubscribe(token)
	}
	c.tokens = nil
}

// handle updates metrics for one bus event.
func (c *Collector) handle(ev events.Event) {
	switch ev.Type {
	case events.TypeMotionStarted:
		switch d := ev.Data.(type) {
		case events.SequenceStart:
			c.sequencesStarted.Inc()
		case events.AxisMotion:
			c.movesStarted.WithLabelValues(d.Axis.String()).Inc()
		default:
			c.movesStarted.WithLabelValues("ALL").Inc()
		}

	case events.TypeMotionCompleted:
		if name, ok := ev.Data.(string); ok && name == "sequence" {
			c.sequencesCompleted.Inc()
			return
		}
		c.movesCompleted.Inc()

	case events.TypeMotionFailed:
		c.movesFailed.Inc()
		if info, ok := ev.Data.(events.ErrorInfo); ok && info.Message == "cancelled" {
			c.cancellations.Inc()
		}

	case events.TypeMotionProgress:
		switch d := ev.Data.(type) {
		case events.SequenceProgress:
			c.waypointsReached.Inc()
		case events.AxisMotion:
			c.axisPosition.WithLabelValues(d.Axis.String()).Set(d.Target)
		case events.PositionUpdate:
			c.setPositions(d.Position)
		}

	case events.TypePositionUpdated:
		if d, ok := ev.Data.(events.PositionUpdate); ok {
			c.setPositions(d.Position)
		}

	case events.TypeInitializationProgress:
		if _, ok := ev.Data.(events.AxisProgress); ok {
			c.axesReferenced.Inc()
		}

	case events.TypeStateChanged:
		if d, ok := ev.Data.(events.StateChange); ok {
			c.connectionState.Set(float64(d.Connection))
			c.initState.Set(float64(d.Init))
		}

	case events.TypeErrorOccurred:
		kind := ""
		if info, ok := ev.Data.(events.ErrorInfo); ok {
			kind = info.Kind.String()
		}
		c.errorsTotal.WithLabelValues(kind).Inc()
	}
}

// setPositions updates the position gauge for all three axes.
func (c *Collector) setPositions(pos stage.Position) {
	c.axisPosition.WithLabelValues(stage.AxisX.String()).Set(pos.X)
	c.axisPosition.WithLabelValues(stage.AxisY.String()).Set(pos.Y)
	c.axisPosition.WithLabelValues(stage.AxisZ.String()).Set(pos.Z)
}
