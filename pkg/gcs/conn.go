package gcs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tarm/serial"
)

// Conn is a line-oriented GCS connection. Commands and queries are
// serialized; a Conn is safe for concurrent use.
type Conn struct {
	mu sync.Mutex
	rw io.ReadWriteCloser
	r  *bufio.Reader
}

// Open dials the serial port of a controller.
func Open(port string, baud int, readTimeout time.Duration) (*Conn, error) {
	p, err := serial.OpenPort(&serial.Config{Name: port, Baud: baud, ReadTimeout: readTimeout})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", port, err)
	}
	return NewConn(p), nil
}

// NewConn wraps an existing transport.
func NewConn(rw io.ReadWriteCloser) *Conn {
	return &Conn{rw: rw, r: bufio.NewReader(rw)}
}

// Send issues a command that produces no response.
func (c *Conn) Send(cmd string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeLocked(cmd)
}

// Query issues a command and reads one response line, with trailing line
// endings stripped.
func (c *Conn) Query(cmd string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writeLocked(cmd); err != nil {
		return "", err
	}
	line, err := c.r.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read response to %q: %w", cmd, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Conn) writeLocked(cmd string) error {
	if _, err := io.WriteString(c.rw, cmd+"\n"); err != nil {
		return fmt.Errorf("write %q: %w", cmd, err)
	}
	return nil
}

// Close shuts the transport down.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rw.Close()
}

// parseAxisValue splits a "<axis>=<value>" response line.
func parseAxisValue(line string) (string, string, error) {
	id, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", fmt.Errorf("malformed response %q", line)
	}
	return strings.TrimSpace(id), strings.TrimSpace(value), nil
}

// parseFloat reads the value part of a "<axis>=<value>" response.
func parseFloat(line string) (float64, error) {
	_, value, err := parseAxisValue(line)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed value in %q: %w", line, err)
	}
	return v, nil
}

// parseBool reads the value part of a "<axis>=<0|1>" response.
func parseBool(line string) (bool, error) {
	_, value, err := parseAxisValue(line)
	if err != nil {
		return false, err
	}
	switch value {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("malformed flag in %q", line)
	}
}
