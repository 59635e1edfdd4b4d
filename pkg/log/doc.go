// Package log records SNMP protocol traces.
//
// Every request an adapter sends and every answer it receives can be
// captured as an Event. Traces are separate from operational logging
// (slog): they are a complete, machine-readable record of what was asked
// of a device and what it answered.
//
//	// Console, while developing
//	trace := log.NewSlogAdapter(slog.Default())
//
//	// File, for later inspection with snmp-orm-trace
//	file, _ := log.NewFileLogger("switch.strace")
//
//	// Both
//	trace = log.NewMultiLogger(trace, file)
//
// # File Format
//
// Trace files are a stream of CBOR-encoded events with integer keys.
// Reader iterates them, optionally through a Filter; Summarize aggregates
// them per operation.
package log
