// Package axis provides the controller abstraction for a single motorized
// axis and the manager that coordinates the three axes of a stage.
//
// # Controllers
//
// A Controller drives one linear axis. The package ships two
// implementations: Sim, an in-memory controller for tests and hardware-free
// bring-up, and the GCS-backed controller in pkg/gcs for real PI hardware.
// Moves are non-blocking. A move command returns once it was accepted and
// the axis settles in the background; OnTarget and WaitForTarget observe
// completion.
//
// # Ordering
//
// The Manager enforces the mechanically safe ordering of multi-axis
// operations. Reference moves run Z first, then X, then Y, so a raised
// sample never collides with the optics. Parking retracts Z before X and Y
// travel to their park coordinate.
package axis
