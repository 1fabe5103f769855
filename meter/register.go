package meter

import (
	"io"

	"github.com/monitorkit/progress"
)

// builtins maps preset keys to their availability probes. A probe either
// returns the backend's factory or an error meaning the backend cannot
// run in this environment.
var builtins = map[string]func() (progress.Factory, error){
	"tqdm":  probeBar,
	"click": probe(NewCLI),
	"text":  probe(NewText),
	"json":  probe(NewJSON),
	"otel":  probe(NewSpan),
}

// Registration is best-effort: a preset whose probe fails is simply not
// registered, so resolving its key later yields the same
// *progress.UnknownPresetError as a key that never existed.
func init() {
	for key, probeFn := range builtins {
		factory, err := probeFn()
		if err != nil {
			continue
		}
		progress.MustRegister(key, factory)
	}
}

// probe wraps an always-available factory as a passing probe.
func probe(f progress.Factory) func() (progress.Factory, error) {
	return func() (progress.Factory, error) {
		return f, nil
	}
}

// probeBar verifies the terminal-bar backend end to end by constructing
// and closing a throwaway bar against a discarded writer.
func probeBar() (progress.Factory, error) {
	mon, err := NewBar(1, progress.Options{Writer: io.Discard})
	if err != nil {
		return nil, err
	}
	if err := mon.Close(); err != nil {
		return nil, err
	}
	return NewBar, nil
}
