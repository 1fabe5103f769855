// Package progress provides a uniform way for library code to report the
// progress of long-running, unit-counted operations without knowing how (or
// whether) that progress is displayed.
//
// The package includes:
//
//   - Monitor interface for pluggable progress backends
//   - NullMonitor for zero-overhead disabled reporting
//   - Config, an immutable description of how to build a monitor
//   - Resolve, which normalizes a flexible "progress" argument into a Config
//   - A process-wide preset registry keyed by string
//   - New and Iter entry points for scoped monitor use
//
// # Basic Usage
//
// API functions accept a single polymorphic progress argument and resolve it
// internally, so the caller decides the backend while the function decides
// the total:
//
//	func LoadRecords(records []Record, progressArg any) error {
//	    mon, err := progress.New(progressArg, int64(len(records)))
//	    if err != nil {
//	        return err
//	    }
//	    defer mon.Close()
//
//	    for _, rec := range records {
//	        process(rec)
//	        mon.Update(1)
//	    }
//	    return nil
//	}
//
// Callers may pass nil (disabled), true (default preset), a preset key such
// as "tqdm" or "click", a Config, a Builder, or a raw Factory. See Resolve
// for the exact precedence order.
//
// # Presets
//
// Built-in backends live in the meter subpackage and register themselves on
// import, in the manner of database/sql drivers:
//
//	import _ "github.com/monitorkit/progress/meter"
//
//	mon, err := progress.New("tqdm", 100)
//
// A preset key that was never registered (because the backend package was
// not imported, or its registration probe failed) resolves to an
// *UnknownPresetError. Downstream packages can add their own presets with
// Register.
//
// # Iteration
//
// Iter wraps a slice so that each consumed element advances a monitor by
// one, and guarantees the monitor is closed exactly once whether the loop
// finishes, breaks early, or panics:
//
//	seq, err := progress.Iter(items, "click", progress.WithDesc("indexing"))
//	if err != nil {
//	    return err
//	}
//	for item := range seq {
//	    index(item)
//	}
//
// # Thread Safety
//
// The registry is safe for concurrent lookups; registration is expected to
// happen during single-threaded startup. Monitor instances are owned by a
// single logical caller and are not safe for concurrent use unless a
// backend documents otherwise.
package progress
