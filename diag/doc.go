// Package diag carries the write-only diagnostic stream of the search engine.
//
// Every frontier entry a lattice search pops, and every item a pass filter
// looks at, can be reported as a Record: the queue it was seen in, its
// combination id, its total and the Reason it was accepted or rejected.
// Sinks are purely observational and never influence control flow.
//
// Sinks provided here:
//
//   - Nop        – discards everything (the default everywhere).
//   - Collector  – writes one human-readable line per record to an io.Writer
//     and keeps per-reason counters.
//   - LogSink    – emits records as structured logrus entries.
//   - SinkFunc   – adapts a plain function.
//   - Multi      – fans a record out to several sinks.
package diag
