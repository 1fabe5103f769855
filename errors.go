package progress

import "fmt"

// UnknownPresetError is returned when a string progress argument does not
// match any key in the registry.
//
// Because built-in presets register themselves best-effort at import time,
// this error also covers the case of a backend whose registration probe
// failed or whose package was never imported; the resolver does not
// distinguish "never implemented" from "unavailable in this environment".
type UnknownPresetError struct {
	// Key is the preset key that was looked up.
	Key string
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("progress: no preset registered under key %q", e.Key)
}

// ConfigurationError is returned when a progress argument cannot be
// resolved to a configuration: either its type matches none of the
// accepted shapes, or the default preset was requested but is unavailable
// and no fallback is configured.
type ConfigurationError struct {
	// Value is the offending progress argument, when the failure is an
	// unsupported argument shape.
	Value any

	// Reason overrides the default message when set.
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return "progress: " + e.Reason
	}
	return fmt.Sprintf("progress: unsupported progress argument of type %T", e.Value)
}
