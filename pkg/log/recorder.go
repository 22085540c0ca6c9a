package log

import (
	"time"

	"github.com/google/uuid"

	"github.com/stagekit/stage-go/pkg/events"
	"github.com/stagekit/stage-go/pkg/stage"
)

// Recorder subscribes to an event bus and forwards every published event
// to a Logger, stamped with the capture time and a session id. Close
// detaches it from the bus; the Logger is not closed.
type Recorder struct {
	bus     *events.Bus
	logger  Logger
	session string
	tokens  []events.Token
}

// NewRecorder attaches a recorder to bus. A fresh session id is generated
// per recorder.
func NewRecorder(bus *events.Bus, logger Logger) *Recorder {
	r := &Recorder{
		bus:     bus,
		logger:  logger,
		session: uuid.NewString(),
	}
	r.tokens = bus.SubscribeAll(r.capture)
	return r
}

// Session returns the recorder's session id.
func (r *Recorder) Session() string { return r.session }

// Close detaches the recorder from the bus.
func (r *Recorder) Close() {
	for _, token := range r.tokens {
		r.bus.Unsubscribe(token)
	}
	r.tokens = nil
}

func (r *Recorder) capture(ev events.Event) {
	r.logger.Log(Capture(r.session, time.Now(), ev))
}

// Capture converts one bus event into a log event.
func Capture(session string, ts time.Time, ev events.Event) Event {
	out := Event{
		Timestamp: ts,
		SessionID: session,
		Type:      ev.Type,
		Category:  CategoryOf(ev.Type),
	}

	switch d := ev.Data.(type) {
	case events.StateChange:
		out.State = &StateEvent{
			Connection: d.Connection.String(),
			Init:       d.Init.String(),
		}
	case events.AxisMotion:
		target := d.Target
		out.Motion = &MotionEvent{
			Op:     d.Op,
			Axis:   d.Axis.String(),
			Target: &target,
		}
	case events.AxisProgress:
		out.Motion = &MotionEvent{
			Op:   "referenced",
			Axis: d.Axis.String(),
		}
	case events.SequenceStart:
		out.Sequence = &SequenceEvent{
			Count: d.Count,
			Park:  d.Park,
		}
	case events.SequenceProgress:
		out.Sequence = &SequenceEvent{
			Index: d.Index,
			Count: d.Count,
			X:     d.Position.X,
			Y:     d.Position.Y,
			Z:     d.Position.Z,
		}
	case events.PositionUpdate:
		out.Position = &PositionEvent{
			X: d.Position.X,
			Y: d.Position.Y,
			Z: d.Position.Z,
		}
	case events.ErrorInfo:
		out.Error = &ErrorEventData{
			Kind:    kindName(d.Kind),
			Axis:    axisName(d.Axis),
			Message: d.Message,
		}
	case string:
		// Completion records carry the job name.
		out.Motion = &MotionEvent{Op: d}
	}

	return out
}

func axisName(a stage.Axis) string {
	if a == 0 {
		return ""
	}
	return a.String()
}

func kindName(k stage.Kind) string {
	if k == 0 {
		return ""
	}
	return k.String()
}
