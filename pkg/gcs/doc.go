// Package gcs drives PI motion controllers over their ASCII General Command
// Set. It provides the serial line transport and an axis.Controller
// implementation on top of it.
//
// # Protocol
//
// GCS is line oriented. Commands like "MOV 1 10.5" produce no response;
// queries end in '?' and return a single line, typically "<axis>=<value>".
// The controller error register is read with "ERR?" and cleared by reading
// it. Every mutating command issued by this package is followed by an error
// register check.
//
// # Transport
//
// Conn wraps any io.ReadWriteCloser and serializes access. Open dials a
// real serial port; tests inject an in-memory transport through the Dial
// option.
package gcs
