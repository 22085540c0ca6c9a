package events

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Callback receives published events. Callbacks run synchronously on the
// publishing goroutine and must not block.
type Callback func(Event)

// Token identifies one subscription for later removal.
type Token struct {
	id        string
	eventType Type
}

// ID returns the unique subscription id.
func (t Token) ID() string { return t.id }

// EventType returns the subscribed event type.
func (t Token) EventType() Type { return t.eventType }

// registration pairs a token id with its callback.
type registration struct {
	id       string
	callback Callback
}

// Bus is a thread-safe publish/subscribe registry keyed by event Type.
type Bus struct {
	mu          sync.Mutex
	subscribers map[Type][]registration
	logger      *slog.Logger
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[Type][]registration),
	}
}

// SetLogger sets an optional logger used to report recovered callback
// panics and debug delivery.
func (b *Bus) SetLogger(logger *slog.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logger = logger
}

// Subscribe registers a callback for one event type and returns a token
// for unsubscribing.
func (b *Bus) Subscribe(t Type, cb Callback) Token {
	token := Token{id: uuid.NewString(), eventType: t}

	b.mu.Lock()
	b.subscribers[t] = append(b.subscribers[t], registration{id: token.id, callback: cb})
	b.mu.Unlock()

	return token
}

// SubscribeAll registers the callback for every event type and returns the
// tokens in Types() order.
func (b *Bus) SubscribeAll(cb Callback) []Token {
	types := Types()
	tokens := make([]Token, 0, len(types))
	for _, t := range types {
		tokens = append(tokens, b.Subscribe(t, cb))
	}
	return tokens
}

// Unsubscribe removes the registration identified by token. Unknown tokens
// are ignored.
func (b *Bus) Unsubscribe(token Token) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.subscribers[token.eventType]
	for i, r := range regs {
		if r.id == token.id {
			b.subscribers[token.eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish delivers the event to every subscriber of its type, in
// subscription order, synchronously on the calling goroutine. The
// subscriber list is snapshotted under the lock and callbacks run outside
// it, so callbacks may subscribe or unsubscribe freely.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	regs := b.subscribers[ev.Type]
	snapshot := make([]registration, len(regs))
	copy(snapshot, regs)
	logger := b.logger
	b.mu.Unlock()

	for _, r := range snapshot {
		b.deliver(r, ev, logger)
	}
}

// deliver invokes one callback, recovering a panic so the remaining
// subscribers still receive the event.
func (b *Bus) deliver(r registration, ev Event, logger *slog.Logger) {
	defer func() {
		if rec := recover(); rec != nil && logger != nil {
			logger.Error("event callback panicked",
				"type", ev.Type.String(),
				"subscription", r.id,
				"panic", rec)
		}
	}()
	r.callback(ev)
}

// Clear removes every subscription.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = make(map[Type][]registration)
}

// SubscriberCount returns the number of registrations for one event type.
func (b *Bus) SubscriberCount(t Type) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers[t])
}
