package progress

import (
	"iter"
	"slices"
	"sync"
)

// New resolves arg and builds a monitor for an operation of total units.
//
// total is the expected unit count, or negative when unknown. opts are
// instantiation-time options and win over any resolution-time options
// already carried by arg. All resolution and construction failures are
// returned here, synchronously; a monitor obtained from New never reports
// them later through Update or Close.
//
// The returned monitor is owned by the caller until Close:
//
//	mon, err := progress.New(arg, total, progress.WithDesc("syncing"))
//	if err != nil {
//	    return err
//	}
//	defer mon.Close()
func New(arg any, total int64, opts ...Option) (Monitor, error) {
	cfg, err := Resolve(arg)
	if err != nil {
		return nil, err
	}
	return cfg.Create(total, opts...)
}

// Iter wraps a slice in a sequence that advances a monitor by one for each
// consumed element. The slice length is used as the monitor's total.
//
// The monitor is created before Iter returns, so resolution and
// construction failures surface here. The sequence is single-pass: ranging
// over it a second time yields nothing. The monitor is closed exactly once
// when iteration ends, whether the loop runs to completion, breaks early,
// or unwinds with a panic.
func Iter[E any](items []E, arg any, opts ...Option) (iter.Seq[E], error) {
	return IterSeq(slices.Values(items), int64(len(items)), arg, opts...)
}

// IterSeq is Iter for an arbitrary sequence whose length cannot be
// queried; the caller supplies the expected total (negative when unknown).
// The input sequence is consumed at most once.
func IterSeq[E any](seq iter.Seq[E], total int64, arg any, opts ...Option) (iter.Seq[E], error) {
	mon, err := New(arg, total, opts...)
	if err != nil {
		return nil, err
	}
	return watch(seq, mon), nil
}

// watch binds a monitor to a sequence: one Update(1) per consumed element,
// and a close guaranteed on every exit path. The update for an element
// happens after its loop body returns, so an element the consumer breaks
// on is not counted.
func watch[E any](seq iter.Seq[E], mon Monitor) iter.Seq[E] {
	var (
		consumed  bool
		closeOnce sync.Once
	)
	closeMonitor := func() {
		closeOnce.Do(func() {
			// Iteration has no error path to surface a close failure on.
			_ = mon.Close()
		})
	}
	return func(yield func(E) bool) {
		if consumed {
			closeMonitor()
			return
		}
		consumed = true
		defer closeMonitor()
		for v := range seq {
			if !yield(v) {
				return
			}
			mon.Update(1)
		}
	}
}
