package progress

// Monitor is the contract implemented by every progress backend.
//
// A monitor tracks a single unit-counted operation. The total and initial
// position are fixed when the monitor is constructed (see Factory); Update
// and MoveTo only change the current position.
//
// Monitors do not validate positions against the total: advancing past the
// declared total is the producer's mistake, and implementations must absorb
// it without panicking or failing. Monitors are owned by a single logical
// caller and, unless a backend documents otherwise, are not safe for
// concurrent use.
type Monitor interface {
	// Update advances the monitor's position by delta units.
	Update(delta int64)

	// MoveTo sets the monitor's position to an absolute value.
	MoveTo(n int64)

	// Close releases whatever resource the backend holds (terminal line,
	// channel, span). Close is idempotent: the second and later calls do
	// nothing and return nil, even if the first call failed. It is safe to
	// close a monitor that was never updated.
	Close() error
}

// Counter is an optional interface for monitors that track their position.
//
// Backends that maintain a current count and total expose them through
// Counter so callers (and tests) can inspect progress state:
//
//	if c, ok := mon.(progress.Counter); ok {
//	    fmt.Printf("%d/%d\n", c.N(), c.Total())
//	}
type Counter interface {
	// N returns the current position.
	N() int64

	// Total returns the expected total, or a negative value when unknown.
	Total() int64
}

// NullMonitor is a no-op implementation of Monitor that discards all
// progress.
//
// This is the backend used whenever reporting is disabled (a nil or false
// progress argument), ensuring library code can drive the progress protocol
// unconditionally with zero observable side effects.
type NullMonitor struct{}

// NewNullMonitor creates a new no-op monitor.
func NewNullMonitor() *NullMonitor {
	return &NullMonitor{}
}

// Update discards the delta.
func (*NullMonitor) Update(delta int64) {}

// MoveTo discards the position.
func (*NullMonitor) MoveTo(n int64) {}

// Close does nothing and never fails. Safe to call any number of times.
func (*NullMonitor) Close() error {
	return nil
}

// nullFactory backs the disabled cases of Resolve.
func nullFactory(total int64, opts Options) (Monitor, error) {
	return NewNullMonitor(), nil
}
