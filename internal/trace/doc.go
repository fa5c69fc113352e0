// Package trace records what the compiler is doing while it runs.
//
// Spans mark CLI commands, compilation units and passes; point events mark
// single inlined calls. Events go to a stream (stderr or a file), to an
// in-memory ring for post-mortem dumps, or both:
//
//	reduxc build --trace=- --trace-level=detail bot.redux
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Ring only, dumped when a command fails
//   - LevelPhase: Driver and unit boundaries
//   - LevelDetail: Plus every pass
//   - LevelDebug: Plus every inlined call
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, session.Tracer())
//	ctx, span := trace.Start(ctx, trace.ScopeUnit, "unit:bot.redux")
//	defer span.End("")
//
// Ring mode keeps the last --trace-ring-size events and writes them to the
// trace output when the session closes; in both mode the ring is written
// only when the command fails.
package trace
