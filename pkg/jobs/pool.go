package jobs

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Pool errors.
var (
	// ErrPoolClosed is returned by Submit after Shutdown.
	ErrPoolClosed = errors.New("worker pool is shut down")
)

// Defaults.
const (
	// DefaultWorkers is the worker count used when none is configured.
	DefaultWorkers = 4

	// DefaultQueueSize is the task queue capacity used when none is
	// configured. Submit blocks while the queue is full.
	DefaultQueueSize = 64
)

// Config holds pool configuration.
type Config struct {
	// Workers is the fixed number of worker goroutines.
	Workers int

	// QueueSize is the task queue capacity.
	QueueSize int

	// Logger is the optional logger for debug output.
	Logger *slog.Logger
}

// DefaultConfig returns the default pool configuration.
func DefaultConfig() Config {
	return Config{
		Workers:   DefaultWorkers,
		QueueSize: DefaultQueueSize,
	}
}

type task struct {
	fn     func() error
	handle *Handle
}

// Pool is a fixed-size worker pool over a bounded task queue.
type Pool struct {
	mu     sync.RWMutex
	closed bool

	tasks  chan task
	wg     sync.WaitGroup
	logger *slog.Logger

	workers int
}

// NewPool creates and starts a pool with cfg. Zero or negative values fall
// back to the defaults.
func NewPool(cfg Config) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}

	p := &Pool{
		tasks:   make(chan task, cfg.QueueSize),
		logger:  cfg.Logger,
		workers: cfg.Workers,
	}

	p.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go p.worker(i)
	}

	return p
}

// Workers returns the fixed worker count.
func (p *Pool) Workers() int { return p.workers }

// Submit queues fn for execution and returns its handle. It blocks while
// the queue is full and returns ErrPoolClosed after Shutdown.
func (p *Pool) Submit(name string, fn func() error) (*Handle, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, ErrPoolClosed
	}

	h := newHandle(name)
	p.tasks <- task{fn: fn, handle: h}
	return h, nil
}

// Shutdown stops intake, lets queued and in-flight jobs finish, and waits
// for the workers to exit. It is idempotent.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for t := range p.tasks {
		p.run(id, t)
	}
}

// run executes one task, converting a panic into the handle's error so a
// misbehaving job cannot kill the worker.
func (p *Pool) run(id int, t task) {
	defer func() {
		if rec := recover(); rec != nil {
			if p.logger != nil {
				p.logger.Error("job panicked",
					"worker", id,
					"job", t.handle.Name(),
					"panic", rec)
			}
			t.handle.complete(fmt.Errorf("job %s panicked: %v", t.handle.Name(), rec))
		}
	}()

	if p.logger != nil {
		p.logger.Debug("job start", "worker", id, "job", t.handle.Name())
	}
	t.handle.complete(t.fn())
}
