// Package interactive provides the interactive command-line interface
// for the stage console.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/stagekit/stage-go/pkg/axis"
	"github.com/stagekit/stage-go/pkg/config"
	"github.com/stagekit/stage-go/pkg/events"
	"github.com/stagekit/stage-go/pkg/jobs"
	"github.com/stagekit/stage-go/pkg/service"
	"github.com/stagekit/stage-go/pkg/stage"
)

// Services bundles the orchestration components the console drives.
type Services struct {
	Conn    *service.ConnectionService
	Motion  *service.MotionService
	Monitor *service.PositionMonitor
	Manager *axis.Manager
	Bus     *events.Bus
	Profile *config.Profile

	// Metrics is optional; nil disables the metrics command.
	Metrics prometheus.Gatherer
}

// Console handles interactive mode for stage-console.
type Console struct {
	s  Services
	rl *readline.Instance

	// Async event display
	eventsOn    bool
	eventTokens []events.Token
}

// New creates a new interactive console handler. Async event display starts
// enabled.
func New(s Services) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "stage> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	c := &Console{
		s:  s,
		rl: rl,
	}
	c.enableEvents()

	return c, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (c *Console) Stderr() io.Writer {
	return c.rl.Stderr()
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			c.printHelp()

		case "status", "st":
			c.cmdStatus()

		case "connect":
			c.cmdConnect()

		case "init":
			c.cmdInit()

		case "disconnect":
			c.cmdDisconnect()

		case "pos", "p":
			c.cmdPos()

		case "move", "m":
			c.cmdMove(args)

		case "jog", "j":
			c.cmdJog(args)

		case "goto", "g":
			c.cmdGoto(args)

		case "velocity", "vel":
			c.cmdVelocity(args)

		case "park":
			c.cmdPark()

		case "seq":
			c.cmdSeq(args)

		case "metrics":
			c.cmdMetrics()

		case "events":
			c.cmdEvents(args)

		case "quit", "exit", "q":
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(c.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.rl.Stdout(), `
Stage Console Commands:
  Lifecycle:
    connect              - Connect all axis controllers
    init                 - Reference all axes (Z first, then X, Y)
    disconnect           - Disconnect all controllers
    status               - Show connection and motion state

  Motion:
    pos                  - Show current position
    move <axis> <mm>     - Move one axis to an absolute target
    jog <axis> [mm]      - Move one axis by a delta (default: profile step)
    goto <x> <y> <z>     - Move to a position with Z raised first (-direct skips the Z hop)
    velocity [axis mm/s] - Show or set axis velocity
    park                 - Drive all axes to the park position

  Sequence:
    seq                  - Show the configured waypoint sequence
    seq run              - Execute the configured sequence
    seq cancel           - Cancel the running motion

  Observability:
    metrics              - Print a metrics snapshot
    events on|off        - Toggle async event display

  General:
    help                 - Show this help
    quit                 - Exit console`)
}

// cmdStatus shows the stage status.
func (c *Console) cmdStatus() {
	fmt.Fprintln(c.rl.Stdout(), "\nStage Status")
	fmt.Fprintln(c.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(c.rl.Stdout(), "  Connection:  %s\n", c.s.Conn.ConnectionState())
	fmt.Fprintf(c.rl.Stdout(), "  Init:        %s\n", c.s.Conn.InitState())

	seqStatus := "idle"
	if c.s.Motion.SequenceRunning() {
		seqStatus = "running"
	}
	fmt.Fprintf(c.rl.Stdout(), "  Sequence:    %s\n", seqStatus)

	monStatus := "stopped"
	if c.s.Monitor.Running() {
		monStatus = "running"
	}
	fmt.Fprintf(c.rl.Stdout(), "  Monitor:     %s\n", monStatus)
	fmt.Fprintf(c.rl.Stdout(), "  Workers:     %d\n", c.s.Conn.Pool().Workers())

	if c.s.Conn.IsReady() {
		if pos, err := c.s.Manager.PositionSnapshot(); err == nil {
			fmt.Fprintf(c.rl.Stdout(), "  Position:    %s\n", pos)
		}
	}

	fmt.Fprintln(c.rl.Stdout())
}

// cmdConnect connects all controllers and waits for the result.
func (c *Console) cmdConnect() {
	fmt.Fprintln(c.rl.Stdout(), "Connecting...")
	if err := c.s.Conn.Connect().Wait(); err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Connect failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.rl.Stdout(), "Connected (state: %s)\n", c.s.Conn.ConnectionState())
}

// cmdInit references all axes and waits for the result.
func (c *Console) cmdInit() {
	h, err := c.s.Conn.Initialize()
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Initialize rejected: %v\n", err)
		return
	}

	fmt.Fprintln(c.rl.Stdout(), "Referencing axes (Z first)...")
	if err := h.Wait(); err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Initialize failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.rl.Stdout(), "Stage ready (state: %s)\n", c.s.Conn.ConnectionState())
}

// cmdDisconnect disconnects all controllers.
func (c *Console) cmdDisconnect() {
	if err := c.s.Conn.Disconnect(); err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Disconnect finished with errors: %v\n", err)
		return
	}
	fmt.Fprintln(c.rl.Stdout(), "Disconnected")
}

// cmdPos shows the current position of all axes.
func (c *Console) cmdPos() {
	pos, err := c.s.Manager.PositionSnapshot()
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Position query failed: %v\n", err)
		return
	}
	fmt.Fprintln(c.rl.Stdout(), pos.String())
}

// cmdMove moves one axis to an absolute target and waits for completion.
func (c *Console) cmdMove(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: move <axis> <mm>")
		fmt.Fprintln(c.rl.Stdout(), "  Example: move x 125.5")
		return
	}

	a, err := stage.ParseAxis(args[0])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid axis: %v\n", err)
		return
	}

	target, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid target: %v\n", err)
		return
	}

	h, err := c.s.Motion.MoveAxisAbsolute(a, target)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Move rejected: %v\n", err)
		return
	}
	c.waitMotion(h)
}

// cmdJog moves one axis by a delta. Without an explicit delta the profile's
// step size is used.
func (c *Console) cmdJog(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: jog <axis> [mm]")
		fmt.Fprintf(c.rl.Stdout(), "  Default step: %.3f mm (negative values move back)\n", c.s.Profile.Motion.StepSize)
		return
	}

	a, err := stage.ParseAxis(args[0])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid axis: %v\n", err)
		return
	}

	delta := c.s.Profile.Motion.StepSize
	if len(args) >= 2 {
		delta, err = strconv.ParseFloat(args[1], 64)
		if err != nil {
			fmt.Fprintf(c.rl.Stdout(), "Invalid delta: %v\n", err)
			return
		}
	}

	h, err := c.s.Motion.MoveAxisRelative(a, delta)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Jog rejected: %v\n", err)
		return
	}
	c.waitMotion(h)
}

// cmdGoto moves all axes to a target position. The Z axis is raised to the
// safe height first unless -direct is given.
func (c *Console) cmdGoto(args []string) {
	direct := false
	coords := make([]float64, 0, 3)
	for _, arg := range args {
		if arg == "-direct" || arg == "--direct" {
			direct = true
			continue
		}
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			fmt.Fprintf(c.rl.Stdout(), "Invalid coordinate %q: %v\n", arg, err)
			return
		}
		coords = append(coords, v)
	}

	if len(coords) != 3 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: goto <x> <y> <z> [-direct]")
		return
	}

	pos := stage.Position{X: coords[0], Y: coords[1], Z: coords[2]}

	var (
		h   *jobs.Handle
		err error
	)
	if direct {
		h, err = c.s.Motion.MoveToPosition(pos, true)
	} else {
		h, err = c.s.Motion.MoveToPositionSafeZ(pos)
	}
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Move rejected: %v\n", err)
		return
	}
	c.waitMotion(h)
}

// cmdVelocity shows all axis velocities, or sets one.
func (c *Console) cmdVelocity(args []string) {
	if len(args) == 0 {
		for _, a := range stage.Axes() {
			ctrl, err := c.s.Manager.Controller(a)
			if err != nil {
				continue
			}
			fmt.Fprintf(c.rl.Stdout(), "  %s: %.3f mm/s\n", a, ctrl.Velocity())
		}
		return
	}

	if len(args) < 2 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: velocity [<axis> <mm/s>]")
		return
	}

	a, err := stage.ParseAxis(args[0])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid axis: %v\n", err)
		return
	}

	v, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid velocity: %v\n", err)
		return
	}

	ctrl, err := c.s.Manager.Controller(a)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Error: %v\n", err)
		return
	}
	if err := ctrl.SetVelocity(v); err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Set velocity failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.rl.Stdout(), "Velocity of %s set to %.3f mm/s\n", a, ctrl.Velocity())
}

// cmdPark drives all axes to the park position and waits for completion.
func (c *Console) cmdPark() {
	h, err := c.s.Motion.ParkAll()
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Park rejected: %v\n", err)
		return
	}
	c.waitMotion(h)
}

// cmdSeq shows, runs or cancels the configured waypoint sequence.
func (c *Console) cmdSeq(args []string) {
	if len(args) == 0 {
		c.showSequence()
		return
	}

	switch strings.ToLower(args[0]) {
	case "run":
		seq := c.s.Profile.Sequence
		if len(seq.Waypoints) == 0 {
			fmt.Fprintln(c.rl.Stdout(), "No sequence configured")
			return
		}
		if _, err := c.s.Motion.ExecuteSequence(seq); err != nil {
			fmt.Fprintf(c.rl.Stdout(), "Sequence rejected: %v\n", err)
			return
		}
		fmt.Fprintf(c.rl.Stdout(), "Sequence started (%d waypoints), 'seq cancel' aborts\n", len(seq.Waypoints))

	case "cancel":
		c.s.Motion.CancelMotion()
		fmt.Fprintln(c.rl.Stdout(), "Cancel requested")

	default:
		fmt.Fprintln(c.rl.Stdout(), "Usage: seq [run|cancel]")
	}
}

// showSequence prints the configured waypoint sequence.
func (c *Console) showSequence() {
	seq := c.s.Profile.Sequence
	if len(seq.Waypoints) == 0 {
		fmt.Fprintln(c.rl.Stdout(), "No sequence configured")
		return
	}

	fmt.Fprintf(c.rl.Stdout(), "\nConfigured sequence (%d waypoints):\n", len(seq.Waypoints))
	for i, wp := range seq.Waypoints {
		if wp.Hold > 0 {
			fmt.Fprintf(c.rl.Stdout(), "  %2d: %s  hold %s\n", i+1, wp.Position, wp.Hold)
		} else {
			fmt.Fprintf(c.rl.Stdout(), "  %2d: %s\n", i+1, wp.Position)
		}
	}
	if seq.ParkWhenComplete {
		fmt.Fprintf(c.rl.Stdout(), "  park at %.1f when complete\n", seq.ParkPosition)
	}
	fmt.Fprintln(c.rl.Stdout())
}

// cmdMetrics prints a snapshot of all registered metrics in the Prometheus
// text exposition format.
func (c *Console) cmdMetrics() {
	if c.s.Metrics == nil {
		fmt.Fprintln(c.rl.Stdout(), "Metrics not enabled")
		return
	}

	mfs, err := c.s.Metrics.Gather()
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Gather failed: %v\n", err)
		return
	}

	enc := expfmt.NewEncoder(c.rl.Stdout(), expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			fmt.Fprintf(c.rl.Stdout(), "Encode failed: %v\n", err)
			return
		}
	}
}

// cmdEvents toggles the async event display.
func (c *Console) cmdEvents(args []string) {
	if len(args) == 0 {
		state := "off"
		if c.eventsOn {
			state = "on"
		}
		fmt.Fprintf(c.rl.Stdout(), "Event display: %s\n", state)
		return
	}

	switch strings.ToLower(args[0]) {
	case "on":
		c.enableEvents()
		fmt.Fprintln(c.rl.Stdout(), "Event display on")
	case "off":
		c.disableEvents()
		fmt.Fprintln(c.rl.Stdout(), "Event display off")
	default:
		fmt.Fprintln(c.rl.Stdout(), "Usage: events on|off")
	}
}

// waitMotion waits for a motion job and prints the outcome.
func (c *Console) waitMotion(h *jobs.Handle) {
	if err := h.Wait(); err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Motion failed: %v\n", err)
		return
	}
	if pos, err := c.s.Manager.PositionSnapshot(); err == nil {
		fmt.Fprintf(c.rl.Stdout(), "OK, %s\n", pos)
	} else {
		fmt.Fprintln(c.rl.Stdout(), "OK")
	}
}

// enableEvents subscribes the display callback to every event type except
// POSITION_UPDATED, which fires on every monitor tick and would flood the
// prompt.
func (c *Console) enableEvents() {
	if c.eventsOn {
		return
	}
	for _, t := range events.Types() {
		if t == events.TypePositionUpdated {
			continue
		}
		c.eventTokens = append(c.eventTokens, c.s.Bus.Subscribe(t, c.displayEvent))
	}
	c.eventsOn = true
}

// disableEvents removes the display subscriptions.
func (c *Console) disableEvents() {
	if !c.eventsOn {
		return
	}
	for _, tok := range c.eventTokens {
		c.s.Bus.Unsubscribe(tok)
	}
	c.eventTokens = nil
	c.eventsOn = false
}

// displayEvent prints a bus event above the prompt.
func (c *Console) displayEvent(ev events.Event) {
	fmt.Fprintf(c.rl.Stdout(), "\n[%s] %s%s\n", time.Now().Format("15:04:05"), ev.Type, describeEvent(ev))
	c.rl.Refresh()
}

// describeEvent renders the event payload as a short suffix for display.
func describeEvent(ev events.Event) string {
	switch d := ev.Data.(type) {
	case events.StateChange:
		return fmt.Sprintf(": %s / %s", d.Connection, d.Init)
	case events.AxisMotion:
		return fmt.Sprintf(": %s %s %.3f", d.Axis, d.Op, d.Target)
	case events.SequenceStart:
		if d.Park {
			return fmt.Sprintf(": %d waypoints, park when complete", d.Count)
		}
		return fmt.Sprintf(": %d waypoints", d.Count)
	case events.SequenceProgress:
		return fmt.Sprintf(": waypoint %d/%d at %s", d.Index+1, d.Count, d.Position)
	case events.AxisProgress:
		return fmt.Sprintf(": axis %s referenced", d.Axis)
	case events.PositionUpdate:
		return ": " + d.Position.String()
	case events.ErrorInfo:
		if d.Axis != 0 {
			return fmt.Sprintf(": %s on %s: %s", d.Kind, d.Axis, d.Message)
		}
		return fmt.Sprintf(": %s: %s", d.Kind, d.Message)
	case string:
		if d == "" {
			return ""
		}
		return ": " + d
	default:
		return ""
	}
}
