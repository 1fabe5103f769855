package progress

import (
	"context"
	"io"

	"github.com/go-logr/logr"
)

// Options carries the construction-time settings handed to a Factory.
//
// A Factory receives a fully merged Options value: resolution-time options
// stored on a Config are applied first, instantiation-time options second,
// so later settings win. Backends read the fields they understand and
// ignore the rest.
type Options struct {
	// Initial is the starting position of the monitor. Defaults to 0.
	Initial int64

	// Desc is a short label describing the tracked operation.
	Desc string

	// Writer is the destination for rendering backends. Backends default
	// to os.Stderr when nil.
	Writer io.Writer

	// Context carries cancellation and ambient values (e.g. a trace span)
	// to backends that use them. May be nil.
	Context context.Context

	// Logger is used by backends that log internal conditions, such as
	// dropped events. Defaults to a discard logger.
	Logger logr.Logger

	// Extra holds backend-specific settings that have no dedicated field.
	Extra map[string]any
}

// Option configures an Options value. Options are applied in order, so a
// later Option overrides an earlier one for the same setting.
type Option func(*Options)

// WithInitial sets the monitor's starting position.
func WithInitial(n int64) Option {
	return func(o *Options) {
		o.Initial = n
	}
}

// WithDesc sets the description label displayed by rendering backends.
func WithDesc(desc string) Option {
	return func(o *Options) {
		o.Desc = desc
	}
}

// WithWriter sets the output destination for rendering backends.
func WithWriter(w io.Writer) Option {
	return func(o *Options) {
		o.Writer = w
	}
}

// WithContext attaches a context for backends that honor cancellation or
// read ambient values such as the active trace span.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		o.Context = ctx
	}
}

// WithLogger sets the logger backends use for internal conditions.
func WithLogger(log logr.Logger) Option {
	return func(o *Options) {
		o.Logger = log
	}
}

// WithExtra stores a backend-specific setting under key. Later writes to
// the same key win.
func WithExtra(key string, value any) Option {
	return func(o *Options) {
		if o.Extra == nil {
			o.Extra = map[string]any{}
		}
		o.Extra[key] = value
	}
}

// NewOptions builds an Options value by applying opts in order over the
// defaults. Backends with their own constructors use this to accept the
// same option set as the resolution entry points.
func NewOptions(opts ...Option) Options {
	o := Options{Logger: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
