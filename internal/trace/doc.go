// Package trace records structured events about what climb is doing.
//
// It is the logging layer of the tool: the driver opens a span per file,
// passes (parse, eval) open nested spans, and the evaluator emits a point
// event per node at debug level.
//
//	climb batch ./exprs --trace=- --trace-level=phase
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for a post-mortem dump
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits driver and pass events, LevelDetail adds per-file
// events, LevelDebug adds per-node events. LevelError emits nothing while
// running; the ring is dumped only when a command fails.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
