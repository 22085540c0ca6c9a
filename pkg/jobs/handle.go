package jobs

import (
	"sync"
	"time"
)

// Handle is the asynchronous result of a submitted job. It resolves exactly
// once, when the job finishes.
type Handle struct {
	name string
	done chan struct{}
	once sync.Once

	mu  sync.Mutex
	err error
}

func newHandle(name string) *Handle {
	return &Handle{
		name: name,
		done: make(chan struct{}),
	}
}

// Name returns the job name given at submit time.
func (h *Handle) Name() string { return h.name }

// Done returns a channel closed when the job has finished.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Err returns the job's error. It is only meaningful after Done is closed;
// before that it returns nil.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Wait blocks until the job finishes and returns its error.
func (h *Handle) Wait() error {
	<-h.done
	return h.Err()
}

// WaitTimeout blocks up to d for the job to finish. ok reports whether it
// finished; err is only meaningful when ok is true.
func (h *Handle) WaitTimeout(d time.Duration) (err error, ok bool) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-h.done:
		return h.Err(), true
	case <-timer.C:
		return nil, false
	}
}

// complete resolves the handle. Extra calls are ignored.
func (h *Handle) complete(err error) {
	h.once.Do(func() {
		h.mu.Lock()
		h.err = err
		h.mu.Unlock()
		close(h.done)
	})
}

// Completed returns an already-resolved handle carrying err. Useful for
// synchronous failure paths that still return a Handle.
func Completed(name string, err error) *Handle {
	h := newHandle(name)
	h.complete(err)
	return h
}
