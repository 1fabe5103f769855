// Package meter provides the built-in progress monitor backends.
//
// Importing the package registers the backends that pass their
// availability probe as presets in progress.DefaultRegistry, in the manner
// of database/sql drivers:
//
//	import _ "github.com/monitorkit/progress/meter"
//
// Built-in presets:
//
//   - "tqdm": interactive terminal bar backed by schollz/progressbar
//   - "click": command-line bar rendered in place with ANSI carriage
//     returns, with a plain-line fallback for non-terminal writers
//   - "text": timestamped line-per-update output for logs and CI
//   - "json": newline-delimited JSON events for machine consumption
//   - "otel": progress milestones recorded as OpenTelemetry span events
//
// Registration is best-effort: a preset whose probe fails is skipped, not
// fatal, so the registry's content is environment-dependent and a missing
// backend surfaces as *progress.UnknownPresetError at resolution time.
//
// The package also provides building blocks that are not presets:
// ChannelMeter for programmatic event consumption and Throttle for rate
// limiting a chatty producer in front of any other monitor.
package meter
