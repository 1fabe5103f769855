package progress

import "slices"

// Factory builds a Monitor bound to a total and a merged set of options.
//
// total is the expected number of units, or negative when unknown. Errors
// returned by a factory are construction failures of the concrete backend
// and propagate to the caller unchanged.
type Factory func(total int64, opts Options) (Monitor, error)

// Builder is implemented by backend types that know how to construct their
// own monitor instances. It is the typed rendering of "pass the monitor
// type itself" as a progress argument: Resolve wraps the Build method as
// the configuration's factory.
type Builder interface {
	Build(total int64, opts Options) (Monitor, error)
}

// Config is an immutable description of how to build a monitor: a resolved
// factory plus the options captured at resolution time.
//
// A Config is produced once per Resolve call (or reused as-is when the
// caller already holds one), owns no external resource, and may be copied
// freely. Create consumes it to produce a monitor; the Config itself is
// unchanged and can be used again.
//
// The zero Config is valid and builds NullMonitor instances.
type Config struct {
	factory Factory
	opts    []Option
}

// NewConfig creates a Config from a factory and resolution-time options.
func NewConfig(factory Factory, opts ...Option) Config {
	return Config{factory: factory, opts: slices.Clip(slices.Clone(opts))}
}

// Create invokes the configuration's factory exactly once and returns its
// result unchanged.
//
// The factory receives the stored resolution-time options overlaid with
// opts, so an instantiation-time setting wins over a resolution-time one
// for the same field.
func (c Config) Create(total int64, opts ...Option) (Monitor, error) {
	f := c.factory
	if f == nil {
		f = nullFactory
	}
	return f(total, NewOptions(slices.Concat(c.opts, opts)...))
}

// With returns a derived Config whose stored options are extended by opts.
// The receiver is unchanged.
func (c Config) With(opts ...Option) Config {
	if len(opts) == 0 {
		return c
	}
	return Config{factory: c.factory, opts: slices.Concat(c.opts, opts)}
}

// WrapFactory returns a derived Config whose factory is replaced by
// wrap(factory); stored options are preserved. This is the hook used by
// combinators that decorate monitor construction, such as throttling
// wrappers and test capture helpers.
func (c Config) WrapFactory(wrap func(Factory) Factory) Config {
	f := c.factory
	if f == nil {
		f = nullFactory
	}
	return Config{factory: wrap(f), opts: c.opts}
}
