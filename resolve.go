package progress

import "reflect"

// argKind tags the accepted shapes of a progress argument. Classification
// and resolution are split so the precedence order lives in exactly one
// place (classify) and resolution is a single exhaustive switch.
type argKind int

const (
	// kindAbsent covers nil and typed-nil arguments: reporting disabled.
	kindAbsent argKind = iota

	// kindFlag covers booleans: false disables, true selects the default
	// preset.
	kindFlag

	// kindPreset covers string keys looked up in the registry.
	kindPreset

	// kindConfig covers already-resolved Config values: identity
	// passthrough.
	kindConfig

	// kindBuilder covers backend types whose Build method becomes the
	// factory.
	kindBuilder

	// kindFactory covers raw factory callables.
	kindFactory

	// kindInvalid covers everything else.
	kindInvalid
)

// argVariant is the tagged union produced by classify. Only the field
// matching kind is set.
type argVariant struct {
	kind    argKind
	enabled bool
	key     string
	cfg     Config
	builder Builder
	factory Factory
}

// classify maps an arbitrary progress argument onto the variant it
// resolves as. The case order is the documented precedence:
//
//  1. nil (including a nil *Config)
//  2. bool
//  3. string preset key (named string types included)
//  4. Config / *Config
//  5. Builder
//  6. Factory, or any func with the Factory signature
//
// A named type whose underlying kind is string but which also implements
// Builder classifies as a Builder: Go's nominal typing makes the interface
// satisfaction the stronger claim. Plain strings always classify as preset
// keys.
func classify(arg any) argVariant {
	switch v := arg.(type) {
	case nil:
		return argVariant{kind: kindAbsent}
	case bool:
		return argVariant{kind: kindFlag, enabled: v}
	case string:
		return argVariant{kind: kindPreset, key: v}
	case Config:
		return argVariant{kind: kindConfig, cfg: v}
	case *Config:
		if v == nil {
			return argVariant{kind: kindAbsent}
		}
		return argVariant{kind: kindConfig, cfg: *v}
	case Builder:
		return argVariant{kind: kindBuilder, builder: v}
	case Factory:
		return argVariant{kind: kindFactory, factory: v}
	case func(total int64, opts Options) (Monitor, error):
		return argVariant{kind: kindFactory, factory: v}
	}

	// Named string types reach here when they implement no recognized
	// interface; treat them as preset keys like their underlying value.
	if rv := reflect.ValueOf(arg); rv.Kind() == reflect.String {
		return argVariant{kind: kindPreset, key: rv.String()}
	}

	return argVariant{kind: kindInvalid}
}

// Resolve normalizes a flexible progress argument into a Config using the
// default registry. See Registry.Resolve for the accepted shapes.
func Resolve(arg any, opts ...Option) (Config, error) {
	return DefaultRegistry.Resolve(arg, opts...)
}

// Resolve normalizes a flexible progress argument into a Config.
//
// Accepted shapes, in precedence order:
//
//   - nil or false: reporting disabled, resolves to the NullMonitor factory
//   - true: the default preset (DefaultPreset), or the configured fallback
//     when the default is not registered; *ConfigurationError when neither
//     is available
//   - string: registry lookup; *UnknownPresetError when the key is absent
//   - Config or non-nil *Config: used as-is; opts, when given, produce a
//     derived Config without re-resolution
//   - Builder: its Build method becomes the factory
//   - Factory (or any func(int64, Options) (Monitor, error)): used directly
//
// Any other argument fails with a *ConfigurationError naming the offending
// type. Resolution is pure apart from the read-only registry lookups; no
// monitor is constructed.
func (r *Registry) Resolve(arg any, opts ...Option) (Config, error) {
	v := classify(arg)
	switch v.kind {
	case kindAbsent:
		return NewConfig(nullFactory, opts...), nil
	case kindFlag:
		if !v.enabled {
			return NewConfig(nullFactory, opts...), nil
		}
		cfg, err := r.defaultConfig()
		if err != nil {
			return Config{}, err
		}
		return cfg.With(opts...), nil
	case kindPreset:
		cfg, err := r.Lookup(v.key)
		if err != nil {
			return Config{}, err
		}
		return cfg.With(opts...), nil
	case kindConfig:
		return v.cfg.With(opts...), nil
	case kindBuilder:
		return NewConfig(v.builder.Build, opts...), nil
	case kindFactory:
		return NewConfig(v.factory, opts...), nil
	default:
		return Config{}, &ConfigurationError{Value: arg}
	}
}
