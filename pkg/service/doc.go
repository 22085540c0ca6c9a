// Package service implements the orchestration layer on top of the axis
// manager: connection lifecycle, motion execution and position monitoring.
//
// # Services
//
// ConnectionService owns the system state machine. Connect and Initialize
// run on the worker pool and report through the event bus; Disconnect and
// Shutdown are synchronous. MotionService submits motion jobs to the same
// pool and serializes waypoint sequences. PositionMonitor samples axis
// positions on a fixed interval while the system is ready.
//
// # Events
//
// Every state transition publishes exactly one STATE_CHANGED carrying both
// the connection and initialization states. Job outcomes publish the
// matching SUCCEEDED/FAILED pair, and failures additionally publish
// ERROR_OCCURRED so a single subscription sees every fault.
//
// # Blocking
//
// No service method blocks on hardware. Asynchronous operations return a
// jobs.Handle the caller may Wait on; fire-and-forget callers just drop
// the handle and watch the bus.
package service
