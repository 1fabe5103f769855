package progress

import (
	"sort"
	"sync"
)

// DefaultPreset is the registry key consulted when the progress argument is
// the boolean true.
const DefaultPreset = "tqdm"

// Registry is a mapping from string keys to monitor configurations.
//
// A registry is read far more often than it is written: backends and
// downstream packages register presets during startup, and lookups happen
// on every string-argument resolution afterwards. Lookups are safe for
// concurrent use; callers should confine registration to a single-threaded
// startup phase rather than racing registrations at runtime.
type Registry struct {
	mu       sync.RWMutex
	presets  map[string]Config
	fallback *Config
}

// NewRegistry creates an empty preset registry.
func NewRegistry() *Registry {
	return &Registry{presets: map[string]Config{}}
}

// Register resolves arg (any shape accepted by Resolve) and stores the
// resulting configuration under key. The last registration for a given key
// wins; keys are case-sensitive and never removed.
func (r *Registry) Register(key string, arg any, opts ...Option) error {
	cfg, err := r.Resolve(arg, opts...)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.presets[key] = cfg
	r.mu.Unlock()
	return nil
}

// Lookup returns the configuration registered under key. The match is an
// exact, case-sensitive string comparison; a missing key fails with
// *UnknownPresetError.
func (r *Registry) Lookup(key string) (Config, error) {
	r.mu.RLock()
	cfg, ok := r.presets[key]
	r.mu.RUnlock()
	if !ok {
		return Config{}, &UnknownPresetError{Key: key}
	}
	return cfg, nil
}

// Keys returns the registered preset keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	keys := make([]string, 0, len(r.presets))
	for key := range r.presets {
		keys = append(keys, key)
	}
	r.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// SetFallback resolves arg and stores it as the configuration used when
// the boolean-true argument is given but DefaultPreset is not registered.
func (r *Registry) SetFallback(arg any, opts ...Option) error {
	cfg, err := r.Resolve(arg, opts...)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.fallback = &cfg
	r.mu.Unlock()
	return nil
}

// defaultConfig resolves the boolean-true argument: the default preset if
// registered, otherwise the configured fallback, otherwise a
// *ConfigurationError.
func (r *Registry) defaultConfig() (Config, error) {
	cfg, err := r.Lookup(DefaultPreset)
	if err == nil {
		return cfg, nil
	}
	r.mu.RLock()
	fb := r.fallback
	r.mu.RUnlock()
	if fb != nil {
		return *fb, nil
	}
	return Config{}, &ConfigurationError{
		Reason: "default preset " + DefaultPreset + " is not registered and no fallback is configured",
	}
}

// DefaultRegistry is the process-wide registry used by the package-level
// functions. Built-in backends in the meter subpackage register themselves
// here on import.
var DefaultRegistry = NewRegistry()

// Register stores a preset in DefaultRegistry. See Registry.Register.
func Register(key string, arg any, opts ...Option) error {
	return DefaultRegistry.Register(key, arg, opts...)
}

// MustRegister is like Register but panics on a resolution failure. It is
// intended for registrations from package init functions with known-good
// arguments.
func MustRegister(key string, arg any, opts ...Option) {
	if err := Register(key, arg, opts...); err != nil {
		panic(err)
	}
}

// LookupPreset looks a key up in DefaultRegistry. See Registry.Lookup.
func LookupPreset(key string) (Config, error) {
	return DefaultRegistry.Lookup(key)
}

// SetFallback configures DefaultRegistry's boolean-true fallback. See
// Registry.SetFallback.
func SetFallback(arg any, opts ...Option) error {
	return DefaultRegistry.SetFallback(arg, opts...)
}
