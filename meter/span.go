package meter

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/monitorkit/progress"
)

// spanEventStep is the percentage interval between recorded span events.
// Recording every update would bloat traces for large totals.
const spanEventStep = 10.0

// Span is a monitor that records progress milestones as OpenTelemetry
// span events on the span carried by Options.Context. It is the backend
// behind the "otel" preset and produces no terminal output at all, which
// makes it useful for services where progress belongs in traces rather
// than on a console.
//
// With a known total, an event is recorded at the first update and each
// time completion crosses a 10% boundary. The span itself is owned by the
// caller: Close records a final event but never ends the span.
type Span struct {
	mu       sync.Mutex
	span     trace.Span
	desc     string
	n        int64
	total    int64
	lastPct  float64
	reported bool
	closed   bool
}

// NewSpan creates a span-event monitor. It has the progress.Factory
// signature; the active span is taken from Options.Context, so resolving
// with progress.WithContext(ctx) inside a traced operation is the typical
// wiring. Without a context (or without a span on it) every recording is
// a no-op on the OpenTelemetry no-op span.
func NewSpan(total int64, opts progress.Options) (progress.Monitor, error) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return &Span{
		span:  trace.SpanFromContext(ctx),
		desc:  opts.Desc,
		n:     opts.Initial,
		total: total,
	}, nil
}

// Update advances the position by delta units, recording a span event
// when a milestone is crossed.
func (s *Span) Update(delta int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n += delta
	s.maybeRecord()
}

// MoveTo sets the position to an absolute value, recording a span event
// when a milestone is crossed.
func (s *Span) MoveTo(n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n = n
	s.maybeRecord()
}

// N returns the current position.
func (s *Span) N() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

// Total returns the expected total, negative when unknown.
func (s *Span) Total() int64 {
	return s.total
}

// Close records a final "progress.done" event with the closing position.
// Idempotent; never fails. The underlying span is left open for its
// owner.
func (s *Span) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.span.AddEvent("progress.done", trace.WithAttributes(s.attributes()...))
	return nil
}

// maybeRecord adds a span event at the first update and on each
// spanEventStep percent crossing. Callers hold s.mu.
func (s *Span) maybeRecord() {
	if s.closed {
		return
	}
	if s.total > 0 {
		pct := float64(s.n) / float64(s.total) * 100.0
		if s.reported && pct < s.lastPct+spanEventStep {
			return
		}
		s.lastPct = pct
	} else if s.reported {
		// Unknown total: only the first update and Close are recorded.
		return
	}
	s.reported = true
	s.span.AddEvent("progress", trace.WithAttributes(s.attributes()...))
}

func (s *Span) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Int64("progress.n", s.n),
	}
	if s.desc != "" {
		attrs = append(attrs, attribute.String("progress.desc", s.desc))
	}
	if s.total > 0 {
		attrs = append(attrs,
			attribute.Int64("progress.total", s.total),
			attribute.Float64("progress.percent", float64(s.n)/float64(s.total)*100.0),
		)
	}
	return attrs
}
