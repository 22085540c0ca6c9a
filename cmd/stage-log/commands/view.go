// Package commands implements the stage-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/stagekit/stage-go/pkg/events"
	"github.com/stagekit/stage-go/pkg/log"
	"github.com/stagekit/stage-go/pkg/stage"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Category  *log.Category
	Type      *events.Type
	Axis      string
	SessionID string
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session] CATEGORY TYPE
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	session := shortenSessionID(event.SessionID)

	fmt.Fprintf(w, "%s [%s] %-8s %s\n", ts, session, event.Category.String(), event.Type.String())

	// Type-specific details
	switch {
	case event.State != nil:
		formatStateDetails(w, event.State)
	case event.Motion != nil:
		formatMotionDetails(w, event.Motion)
	case event.Sequence != nil:
		formatSequenceDetails(w, event.Type, event.Sequence)
	case event.Position != nil:
		formatPositionDetails(w, event.Position)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatStateDetails writes lifecycle transition details.
func formatStateDetails(w io.Writer, sc *log.StateEvent) {
	fmt.Fprintf(w, "  Connection: %s\n", sc.Connection)
	if sc.Init != "" {
		fmt.Fprintf(w, "  Init: %s\n", sc.Init)
	}
}

// formatMotionDetails writes motion job details.
func formatMotionDetails(w io.Writer, m *log.MotionEvent) {
	if m.Op != "" {
		fmt.Fprintf(w, "  Op: %s\n", m.Op)
	}
	if m.Axis != "" {
		fmt.Fprintf(w, "  Axis: %s\n", m.Axis)
	}
	if m.Target != nil {
		fmt.Fprintf(w, "  Target: %.3f\n", *m.Target)
	}
}

// formatSequenceDetails writes waypoint sequence details. Announcements
// carry the waypoint count, progress records carry the waypoint target.
func formatSequenceDetails(w io.Writer, t events.Type, seq *log.SequenceEvent) {
	if t == events.TypeMotionStarted {
		fmt.Fprintf(w, "  Waypoints: %d\n", seq.Count)
		if seq.Park {
			fmt.Fprintln(w, "  Park: on completion")
		}
		return
	}
	fmt.Fprintf(w, "  Waypoint: %d/%d\n", seq.Index+1, seq.Count)
	fmt.Fprintf(w, "  Target: X=%.3f Y=%.3f Z=%.3f\n", seq.X, seq.Y, seq.Z)
}

// formatPositionDetails writes a position sample.
func formatPositionDetails(w io.Writer, p *log.PositionEvent) {
	fmt.Fprintf(w, "  X=%.3f Y=%.3f Z=%.3f\n", p.X, p.Y, p.Z)
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, e *log.ErrorEventData) {
	if e.Kind != "" {
		fmt.Fprintf(w, "  Kind: %s\n", e.Kind)
	}
	if e.Axis != "" {
		fmt.Fprintf(w, "  Axis: %s\n", e.Axis)
	}
	fmt.Fprintf(w, "  Message: %s\n", e.Message)
}

// filterEvents returns events matching the filter criteria.
func filterEvents(evs []log.Event, filter ViewFilter) []log.Event {
	var result []log.Event
	for _, e := range evs {
		if filter.Category != nil && e.Category != *filter.Category {
			continue
		}
		if filter.Type != nil && e.Type != *filter.Type {
			continue
		}
		if filter.Axis != "" && e.AxisName() != filter.Axis {
			continue
		}
		if filter.SessionID != "" && e.SessionID != filter.SessionID {
			continue
		}
		result = append(result, e)
	}
	return result
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "state":
		return log.CategoryState, nil
	case "motion":
		return log.CategoryMotion, nil
	case "position":
		return log.CategoryPosition, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be state, motion, position, or error)", s)
	}
}

// ParseTypeFlag parses an event type name from command-line flag (case-insensitive).
func ParseTypeFlag(s string) (events.Type, error) {
	return parseType(s)
}

// parseType parses an event type name (case-insensitive).
func parseType(s string) (events.Type, error) {
	for _, t := range events.Types() {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("invalid event type: %s (e.g. MOTION_STARTED, STATE_CHANGED)", s)
}

// ParseAxisFlag parses an axis name from command-line flag (case-insensitive).
func ParseAxisFlag(s string) (string, error) {
	return parseAxis(s)
}

// parseAxis parses an axis name (case-insensitive) into the canonical form
// used in log records.
func parseAxis(s string) (string, error) {
	a, err := stage.ParseAxis(s)
	if err != nil {
		return "", fmt.Errorf("invalid axis: %s (must be x, y, or z)", s)
	}
	return a.String(), nil
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		// Apply filter
		if filter.Category != nil && event.Category != *filter.Category {
			continue
		}
		if filter.Type != nil && event.Type != *filter.Type {
			continue
		}
		if filter.Axis != "" && event.AxisName() != filter.Axis {
			continue
		}
		if filter.SessionID != "" && event.SessionID != filter.SessionID {
			continue
		}

		formatEvent(output, event)
	}

	return nil
}
