// Package metertest provides monitor implementations and helpers for
// testing code that reports progress.
//
// Recorder is a monitor that renders nothing but tracks every position
// change, the options it was built with, and how it was closed, so tests
// can assert that a function drove the progress protocol correctly.
// Capture wraps any configuration so the monitors it creates remain
// reachable after the function under test returns.
package metertest

import (
	"fmt"
	"sync"

	"github.com/monitorkit/progress"
)

// Recorder is a progress monitor for tests. It records updates and close
// calls, and checks the discipline the real backends are too forgiving to
// enforce: moving a closed monitor, moving to a negative position, moving
// past the total, or decrementing when the "allow_decrement" extra option
// is false. Violations are collected for assertion rather than panicking,
// so a test can drive an entire scenario and inspect the damage at the
// end.
type Recorder struct {
	mu         sync.Mutex
	n          int64
	total      int64
	opts       progress.Options
	deltas     []int64
	closeCount int
	violations []string

	allowDecrement bool
}

// NewRecorder creates a Recorder. It has the progress.Factory signature
// (with a nil error) so it can be registered or passed as a factory;
// Build exposes it as a progress.Builder for the monitor-type argument
// shape.
func NewRecorder(total int64, opts progress.Options) *Recorder {
	allowDecrement := true
	if v, ok := opts.Extra["allow_decrement"].(bool); ok {
		allowDecrement = v
	}
	return &Recorder{
		n:              opts.Initial,
		total:          total,
		opts:           opts,
		allowDecrement: allowDecrement,
	}
}

// Factory adapts NewRecorder to the progress.Factory signature.
func Factory(total int64, opts progress.Options) (progress.Monitor, error) {
	return NewRecorder(total, opts), nil
}

// Update advances the position by delta, recording the delta.
func (r *Recorder) Update(delta int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deltas = append(r.deltas, delta)
	r.moveTo(r.n + delta)
}

// MoveTo sets the position to an absolute value.
func (r *Recorder) MoveTo(n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moveTo(n)
}

// moveTo applies validation before accepting a move. Callers hold r.mu.
func (r *Recorder) moveTo(n int64) {
	switch {
	case r.closeCount > 0:
		r.violations = append(r.violations, fmt.Sprintf("moved closed monitor to %d", n))
	case n < 0:
		r.violations = append(r.violations, fmt.Sprintf("moved to negative position %d", n))
	case r.total >= 0 && n > r.total:
		r.violations = append(r.violations, fmt.Sprintf("moved to %d past total %d", n, r.total))
	case !r.allowDecrement && n < r.n:
		r.violations = append(r.violations, fmt.Sprintf("decremented from %d to %d", r.n, n))
	default:
		r.n = n
	}
}

// Close marks the recorder closed. Always idempotent and error-free; the
// number of calls is available through CloseCount.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closeCount++
	return nil
}

// N returns the current position.
func (r *Recorder) N() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

// Total returns the total the recorder was created with.
func (r *Recorder) Total() int64 {
	return r.total
}

// Options returns the merged options the recorder was built with.
func (r *Recorder) Options() progress.Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts
}

// Closed reports whether Close was called at least once.
func (r *Recorder) Closed() bool {
	return r.CloseCount() > 0
}

// CloseCount returns how many times Close was called.
func (r *Recorder) CloseCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closeCount
}

// Updates returns the deltas passed to Update, in order.
func (r *Recorder) Updates() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64{}, r.deltas...)
}

// Violations returns the protocol violations observed so far. An empty
// result means the monitor was driven correctly.
func (r *Recorder) Violations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.violations...)
}

// Builder creates Recorders and retains every one it builds. It
// implements progress.Builder, so a *Builder can be passed directly as a
// progress argument to exercise the monitor-type shape:
//
//	b := &metertest.Builder{}
//	err := functionUnderTest(items, b)
//	rec := b.Recorders()[0]
//	require.True(t, rec.Closed())
type Builder struct {
	mu        sync.Mutex
	recorders []*Recorder
}

// Build implements progress.Builder.
func (b *Builder) Build(total int64, opts progress.Options) (progress.Monitor, error) {
	rec := NewRecorder(total, opts)
	b.mu.Lock()
	b.recorders = append(b.recorders, rec)
	b.mu.Unlock()
	return rec, nil
}

// Recorders returns every recorder built so far, in creation order.
func (b *Builder) Recorders() []*Recorder {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Recorder{}, b.recorders...)
}

// Captured holds the monitors created through a configuration returned by
// Capture.
type Captured struct {
	mu       sync.Mutex
	monitors []progress.Monitor
}

func (c *Captured) add(mon progress.Monitor) {
	c.mu.Lock()
	c.monitors = append(c.monitors, mon)
	c.mu.Unlock()
}

// Monitors returns the captured monitors in creation order.
func (c *Captured) Monitors() []progress.Monitor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]progress.Monitor{}, c.monitors...)
}

// Capture wraps cfg so that every monitor its factory creates is retained
// for inspection. Functions under test often build their monitors
// internally, where a test cannot reach them; passing the wrapped
// configuration as the progress argument keeps each created instance
// accessible:
//
//	cfg, captured := metertest.Capture(progress.NewConfig(metertest.Factory))
//	err := functionUnderTest(items, cfg)
//	mon := captured.Monitors()[0].(*metertest.Recorder)
func Capture(cfg progress.Config) (progress.Config, *Captured) {
	captured := &Captured{}
	wrapped := cfg.WrapFactory(func(f progress.Factory) progress.Factory {
		return func(total int64, opts progress.Options) (progress.Monitor, error) {
			mon, err := f(total, opts)
			if err != nil {
				return nil, err
			}
			captured.add(mon)
			return mon, nil
		}
	})
	return wrapped, captured
}
