// Package log provides structured session logging for stage runs.
//
// This package defines the Logger interface and Event types for capturing
// bus events as a machine-readable trace. It is separate from operational
// logging (slog) - a session log is a complete replayable record of what
// the stage did: state transitions, motion jobs, position samples and
// errors.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	logger := log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	logger, _ := log.NewFileLogger("run.stlog")
//
//	// Both: use MultiLogger
//	logger := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// A Recorder bridges the event bus into a Logger, stamping each event with
// the capture time and a session id.
//
// # File Format
//
// Log files use CBOR encoding with .stlog extension. The stage-log CLI
// tool provides viewing, filtering, and export capabilities.
package log
