package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes session events to an slog.Logger.
// Useful for development when you want to see bus traffic in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given
// slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("event", event.Type.String()),
		slog.String("category", event.Category.String()),
	}

	switch {
	case event.State != nil:
		attrs = append(attrs,
			slog.String("connection", event.State.Connection),
			slog.String("init", event.State.Init),
		)
	case event.Motion != nil:
		if event.Motion.Op != "" {
			attrs = append(attrs, slog.String("op", event.Motion.Op))
		}
		if event.Motion.Axis != "" {
			attrs = append(attrs, slog.String("axis", event.Motion.Axis))
		}
		if event.Motion.Target != nil {
			attrs = append(attrs, slog.Float64("target", *event.Motion.Target))
		}
	case event.Sequence != nil:
		attrs = append(attrs,
			slog.Int("waypoint", event.Sequence.Index),
			slog.Int("count", event.Sequence.Count),
		)
	case event.Position != nil:
		attrs = append(attrs,
			slog.Float64("x", event.Position.X),
			slog.Float64("y", event.Position.Y),
			slog.Float64("z", event.Position.Z),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("kind", event.Error.Kind),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Axis != "" {
			attrs = append(attrs, slog.String("axis", event.Error.Axis))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "session", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
