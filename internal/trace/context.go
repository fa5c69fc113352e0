package trace

import "context"

type ctxKey struct{}

// binding is what a context carries: the tracer and the span that new spans
// nest under.
type binding struct {
	tracer Tracer
	parent uint64
}

func bindingOf(ctx context.Context) binding {
	if ctx != nil {
		if b, ok := ctx.Value(ctxKey{}).(binding); ok {
			return b
		}
	}
	return binding{tracer: Nop}
}

// FromContext returns the tracer of ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return bindingOf(ctx).tracer
}

// WithTracer installs t; spans started from the result are roots.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, binding{tracer: t})
}

// Parent returns the ID of the span new spans started from ctx nest under.
func Parent(ctx context.Context) uint64 {
	return bindingOf(ctx).parent
}

// Start begins a span under the parent carried by ctx and returns a context
// in which the new span is the parent. A span filtered out by the level is
// not a parent: its children attach to the nearest emitted ancestor, so a
// pass traced at detail level still points at its unit when the command
// span is the only one above it.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	b := bindingOf(ctx)
	sp := Begin(b.tracer, scope, name, b.parent)
	if sp.ID() == 0 || ctx == nil {
		return ctx, sp
	}
	b.parent = sp.ID()
	return context.WithValue(ctx, ctxKey{}, b), sp
}
