package meter

import (
	"sync"
	"time"

	"github.com/monitorkit/progress"
)

// throttled rate-limits position changes in front of another monitor.
//
// Hot loops can update a monitor far faster than any backend can usefully
// render. throttled accumulates position changes and forwards the
// absolute position (via MoveTo) at most once per interval, with two
// exceptions: the very first change is always forwarded so something
// appears immediately, and Close flushes the final position so the last
// state is never lost.
type throttled struct {
	mu        sync.Mutex
	mon       progress.Monitor
	interval  time.Duration
	n         int64
	forwarded bool
	lastFlush time.Time
	closeOnce sync.Once
}

// Throttle wraps mon so that position changes reach it at most once per
// interval. The first change and the final position at Close always get
// through. Closing the returned monitor closes mon.
func Throttle(mon progress.Monitor, interval time.Duration) progress.Monitor {
	return &throttled{mon: mon, interval: interval}
}

// Throttled lifts Throttle to the factory level, so a throttled backend
// can take part in configuration resolution:
//
//	cfg, err := progress.Resolve(meter.Throttled(200*time.Millisecond, meter.NewText))
func Throttled(interval time.Duration, f progress.Factory) progress.Factory {
	return func(total int64, opts progress.Options) (progress.Monitor, error) {
		mon, err := f(total, opts)
		if err != nil {
			return nil, err
		}
		t := Throttle(mon, interval).(*throttled)
		t.n = opts.Initial
		return t, nil
	}
}

// Update advances the position; the wrapped monitor sees it when the
// throttle window allows.
func (t *throttled) Update(delta int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.n += delta
	t.maybeFlush()
}

// MoveTo sets the position; the wrapped monitor sees it when the throttle
// window allows.
func (t *throttled) MoveTo(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.n = n
	t.maybeFlush()
}

// N returns the current (not necessarily forwarded) position.
func (t *throttled) N() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.n
}

// Total returns the wrapped monitor's total when it exposes one, or -1.
func (t *throttled) Total() int64 {
	if c, ok := t.mon.(progress.Counter); ok {
		return c.Total()
	}
	return -1
}

// Close flushes the final position to the wrapped monitor, then closes
// it. The first call returns the wrapped monitor's close error; later
// calls are no-ops.
func (t *throttled) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.mu.Lock()
		if t.forwarded {
			t.mon.MoveTo(t.n)
		}
		t.mu.Unlock()
		err = t.mon.Close()
	})
	return err
}

// maybeFlush forwards the current position when the throttle allows.
// Callers hold t.mu.
func (t *throttled) maybeFlush() {
	now := time.Now()
	if t.forwarded && now.Sub(t.lastFlush) < t.interval {
		return
	}
	t.forwarded = true
	t.lastFlush = now
	t.mon.MoveTo(t.n)
}
