// Package jobs provides the shared bounded worker pool that executes all
// blocking hardware work, and the asynchronous Handle callers wait on.
//
// # Pool
//
// A Pool runs a fixed number of workers (default 4) over a bounded task
// queue. The connection and motion services submit to the same pool, so
// connects, referencing, jogs, and sequence runs interleave subject only to
// pool capacity. Submit returns a Handle immediately; Shutdown stops intake,
// drains queued jobs, and waits for in-flight work.
//
// # Handle
//
// A Handle resolves exactly once, to nil on success or to the job's error.
// Wait blocks until resolution; Done exposes the completion channel for
// select loops. A panicking job resolves its handle to an error instead of
// killing the worker.
package jobs
