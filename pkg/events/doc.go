// Package events implements the in-process event bus that decouples the
// stage orchestration services from their observers (console, tests, log
// recorder, metrics).
//
// # Delivery Semantics
//
// Publish takes a snapshot of the subscriber list for the event's type under
// a short-lived lock and then invokes every callback synchronously, in the
// publishing goroutine, outside the lock. A callback that subscribes or
// unsubscribes during delivery does not affect the in-flight delivery and
// cannot deadlock. A callback that panics is recovered and logged; delivery
// to the remaining subscribers continues.
//
// Because callbacks run on the publisher's goroutine (commonly a worker-pool
// goroutine that is also driving motion), subscribers must not block. UI
// observers are responsible for marshaling to their own thread.
//
// # Tokens
//
// Subscribe returns an opaque Token; Unsubscribe removes exactly that
// registration and is a no-op for unknown tokens. Clear removes every
// subscription and is intended for teardown.
package events
