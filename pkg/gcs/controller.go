package gcs

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/stagekit/stage-go/pkg/axis"
	"github.com/stagekit/stage-go/pkg/stage"
)

// The single-axis controllers this package targets address their one axis
// as "1" on the wire.
const axisID = "1"

// codeStopped is the error register value a deliberate STP leaves behind.
const codeStopped = 10

const (
	DefaultReadTimeout      = 500 * time.Millisecond
	DefaultReferenceTimeout = 120 * time.Second
	DefaultPollInterval     = 10 * time.Millisecond
)

// Options tunes a Controller.
type Options struct {
	// ReadTimeout is applied to the serial port.
	ReadTimeout time.Duration

	// ReferenceTimeout bounds the reference move during Initialize.
	ReferenceTimeout time.Duration

	// PollInterval paces on-target and reference polls.
	PollInterval time.Duration

	// Dial opens the transport. The default dials the configured serial
	// port; tests inject an in-memory transport here.
	Dial func(port string, baud int, readTimeout time.Duration) (*Conn, error)

	// Logger receives debug output. No logging when nil.
	Logger *slog.Logger
}

// DefaultOptions returns the controller defaults.
func DefaultOptions() Options {
	return Options{
		ReadTimeout:      DefaultReadTimeout,
		ReferenceTimeout: DefaultReferenceTimeout,
		PollInterval:     DefaultPollInterval,
	}
}

// Controller drives one stage axis over GCS.
type Controller struct {
	cfg  stage.AxisConfig
	opts Options

	mu          sync.Mutex
	conn        *Conn
	idn         string
	initialized bool
	velocity    float64
}

var _ axis.Controller = (*Controller)(nil)

// NewController builds a controller for the given axis configuration. The
// connection is not opened until Connect.
func NewController(cfg stage.AxisConfig, opts Options) *Controller {
	def := DefaultOptions()
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = def.ReadTimeout
	}
	if opts.ReferenceTimeout <= 0 {
		opts.ReferenceTimeout = def.ReferenceTimeout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = def.PollInterval
	}
	if opts.Dial == nil {
		opts.Dial = Open
	}
	return &Controller{cfg: cfg, opts: opts, velocity: cfg.DefaultVelocity}
}

func (c *Controller) Axis() stage.Axis { return c.cfg.Axis }

func (c *Controller) Config() stage.AxisConfig { return c.cfg }

func (c *Controller) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *Controller) IsInitialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// Identification returns the *IDN? response of the connected controller.
func (c *Controller) Identification() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idn
}

// Connect dials the configured port and verifies that the controller on the
// other end carries the expected serial number. Connecting an already
// connected controller is a no-op.
func (c *Controller) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return nil
	}
	conn, err := c.opts.Dial(c.cfg.Port, c.cfg.Baud, c.opts.ReadTimeout)
	if err != nil {
		return stage.ConnectionErr(c.cfg.Axis, fmt.Sprintf("dial %s", c.cfg.Port), err)
	}
	idn, err := conn.Query("*IDN?")
	if err != nil {
		_ = conn.Close()
		return stage.ConnectionErr(c.cfg.Axis, "identification query failed", err)
	}
	if c.cfg.Serial != "" && !strings.Contains(idn, c.cfg.Serial) {
		_ = conn.Close()
		return stage.ConnectionErr(c.cfg.Axis,
			fmt.Sprintf("controller on %s reports %q, want serial %s", c.cfg.Port, idn, c.cfg.Serial), nil)
	}
	c.conn = conn
	c.idn = idn
	c.debugLog("controller connected", "axis", c.cfg.Axis.String(), "port", c.cfg.Port, "idn", idn)
	return nil
}

// Disconnect closes the serial link. The axis has to be initialized again
// after a reconnect.
func (c *Controller) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.initialized = false
	if err != nil {
		return stage.ConnectionErr(c.cfg.Axis, "close failed", err)
	}
	return nil
}

// Initialize loads the configured stage type, enables the servo, runs the
// configured reference move and restores the default velocity. The axis sits
// at its reference switch afterwards.
func (c *Controller) Initialize() error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return stage.InitializationErr(c.cfg.Axis, "not connected", nil)
	}
	refCmd, err := referenceCommand(c.cfg.RefMode)
	if err != nil {
		return err
	}
	if c.cfg.Stage != "" {
		if err := c.command(conn, "CST %s %s", axisID, c.cfg.Stage); err != nil {
			return stage.InitializationErr(c.cfg.Axis, "stage type load failed", err)
		}
	}
	if err := c.command(conn, "SVO %s 1", axisID); err != nil {
		return stage.InitializationErr(c.cfg.Axis, "servo enable failed", err)
	}
	c.debugLog("referencing", "axis", c.cfg.Axis.String(), "mode", refCmd)
	if err := c.command(conn, "%s %s", refCmd, axisID); err != nil {
		return stage.InitializationErr(c.cfg.Axis, "reference move rejected", err)
	}
	if err := c.waitReferenced(conn); err != nil {
		return err
	}
	if err := c.command(conn, "VEL %s %.6f", axisID, c.cfg.DefaultVelocity); err != nil {
		return stage.InitializationErr(c.cfg.Axis, "velocity restore failed", err)
	}
	c.mu.Lock()
	c.initialized = true
	c.velocity = c.cfg.DefaultVelocity
	c.mu.Unlock()
	return nil
}

// MoveAbsolute commands a move to target, clamped to the travel range. The
// call returns once the controller accepted the command.
func (c *Controller) MoveAbsolute(target float64) error {
	conn, err := c.ready()
	if err != nil {
		return err
	}
	clamped := c.cfg.Range.Clamp(target)
	if err := c.command(conn, "MOV %s %.6f", axisID, clamped); err != nil {
		return stage.MotionErr(c.cfg.Axis, fmt.Sprintf("move to %.3f rejected", clamped), err)
	}
	return nil
}

// MoveRelative commands a move by delta from the current position, clamped
// to the travel range.
func (c *Controller) MoveRelative(delta float64) error {
	conn, err := c.ready()
	if err != nil {
		return err
	}
	pos, err := c.queryFloat(conn, "POS? %s", axisID)
	if err != nil {
		return err
	}
	clamped := c.cfg.Range.Clamp(pos + delta)
	if err := c.command(conn, "MOV %s %.6f", axisID, clamped); err != nil {
		return stage.MotionErr(c.cfg.Axis, fmt.Sprintf("move to %.3f rejected", clamped), err)
	}
	return nil
}

func (c *Controller) Position() (float64, error) {
	conn, err := c.online()
	if err != nil {
		return 0, err
	}
	return c.queryFloat(conn, "POS? %s", axisID)
}

// SetVelocity sets the closed-loop velocity, capped at the configured
// maximum.
func (c *Controller) SetVelocity(v float64) error {
	conn, err := c.online()
	if err != nil {
		return err
	}
	if v > c.cfg.MaxVelocity {
		v = c.cfg.MaxVelocity
	}
	if err := c.command(conn, "VEL %s %.6f", axisID, v); err != nil {
		return stage.CommunicationErr(c.cfg.Axis, fmt.Sprintf("set velocity %.3f", v), err)
	}
	c.mu.Lock()
	c.velocity = v
	c.mu.Unlock()
	return nil
}

// Velocity reports the last commanded closed-loop velocity.
func (c *Controller) Velocity() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.velocity
}

// Stop halts motion immediately. The controller flags a deliberate stop in
// its error register; that code is swallowed here.
func (c *Controller) Stop() error {
	conn, err := c.online()
	if err != nil {
		return err
	}
	err = c.command(conn, "STP")
	var ce *ControllerError
	if errors.As(err, &ce) && ce.Code == codeStopped {
		return nil
	}
	if err != nil {
		return stage.CommunicationErr(c.cfg.Axis, "stop failed", err)
	}
	return nil
}

func (c *Controller) OnTarget() (bool, error) {
	conn, err := c.online()
	if err != nil {
		return false, err
	}
	line, err := conn.Query(fmt.Sprintf("ONT? %s", axisID))
	if err != nil {
		return false, stage.CommunicationErr(c.cfg.Axis, "on-target query failed", err)
	}
	on, err := parseBool(line)
	if err != nil {
		return false, stage.CommunicationErr(c.cfg.Axis, "on-target query", err)
	}
	return on, nil
}

// WaitForTarget polls the on-target flag until the axis settles. A zero
// timeout waits indefinitely.
func (c *Controller) WaitForTarget(timeout time.Duration) error {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	for {
		on, err := c.OnTarget()
		if err != nil {
			return err
		}
		if on {
			return nil
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return stage.MotionErr(c.cfg.Axis, "timed out waiting for target", nil)
		}
		time.Sleep(c.opts.PollInterval)
	}
}

// online returns the connection when the link is open.
func (c *Controller) online() (*Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil, stage.CommunicationErr(c.cfg.Axis, "not connected", nil)
	}
	return c.conn, nil
}

// ready returns the connection when the axis is connected and referenced.
func (c *Controller) ready() (*Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil, stage.InitializationErr(c.cfg.Axis, "not connected", nil)
	}
	if !c.initialized {
		return nil, stage.InitializationErr(c.cfg.Axis, "axis not referenced", nil)
	}
	return c.conn, nil
}

// command sends a mutating command and checks the error register.
func (c *Controller) command(conn *Conn, format string, args ...any) error {
	if err := conn.Send(fmt.Sprintf(format, args...)); err != nil {
		return err
	}
	return checkErr(conn)
}

func (c *Controller) queryFloat(conn *Conn, format string, args ...any) (float64, error) {
	line, err := conn.Query(fmt.Sprintf(format, args...))
	if err != nil {
		return 0, stage.CommunicationErr(c.cfg.Axis, "query failed", err)
	}
	v, err := parseFloat(line)
	if err != nil {
		return 0, stage.CommunicationErr(c.cfg.Axis, "query", err)
	}
	return v, nil
}

func (c *Controller) waitReferenced(conn *Conn) error {
	deadline := time.Now().Add(c.opts.ReferenceTimeout)
	for {
		line, err := conn.Query(fmt.Sprintf("FRF? %s", axisID))
		if err != nil {
			return stage.InitializationErr(c.cfg.Axis, "reference status query failed", err)
		}
		done, err := parseBool(line)
		if err != nil {
			return stage.InitializationErr(c.cfg.Axis, "reference status", err)
		}
		if done {
			return nil
		}
		if time.Now().After(deadline) {
			return stage.InitializationErr(c.cfg.Axis, "reference move timed out", nil)
		}
		time.Sleep(c.opts.PollInterval)
	}
}

func (c *Controller) debugLog(msg string, args ...any) {
	if c.opts.Logger != nil {
		c.opts.Logger.Debug(msg, args...)
	}
}

// checkErr reads and clears the controller error register.
func checkErr(conn *Conn) error {
	line, err := conn.Query("ERR?")
	if err != nil {
		return err
	}
	code, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return fmt.Errorf("malformed error register %q", line)
	}
	if code != 0 {
		return &ControllerError{Code: code}
	}
	return nil
}

// referenceCommand maps a configured reference mode onto its GCS command.
func referenceCommand(mode string) (string, error) {
	switch strings.ToUpper(mode) {
	case "FRF":
		return "FRF", nil
	case "FNL":
		return "FNL", nil
	case "FPL":
		return "FPL", nil
	default:
		return "", stage.ConfigErr(fmt.Sprintf("unknown reference mode %q", mode), nil)
	}
}

// ControllerError is a non-zero GCS error register value.
type ControllerError struct {
	Code int
}

func (e *ControllerError) Error() string {
	if msg, ok := errorMessages[e.Code]; ok {
		return fmt.Sprintf("controller error %d: %s", e.Code, msg)
	}
	return fmt.Sprintf("controller error %d", e.Code)
}

// The subset of GCS error codes seen in practice on this hardware.
var errorMessages = map[int]string{
	1:   "parameter syntax error",
	2:   "unknown command",
	5:   "servo off, move not allowed",
	7:   "position out of limits",
	10:  "controller was stopped",
	15:  "invalid axis identifier",
	17:  "parameter out of range",
	23:  "illegal axis",
	301: "send buffer overflow",
}
