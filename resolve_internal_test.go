package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// builderFunc adapts a function to the Builder interface for tests.
type builderFunc func(total int64, opts Options) (Monitor, error)

func (f builderFunc) Build(total int64, opts Options) (Monitor, error) {
	return f(total, opts)
}

// keyString is a named string type with no Builder implementation; it
// should classify like its underlying string.
type keyString string

// builderKey is a named string type that also implements Builder; the
// interface satisfaction wins over the underlying string kind.
type builderKey string

func (builderKey) Build(total int64, opts Options) (Monitor, error) {
	return NewNullMonitor(), nil
}

func TestClassifyPrecedence(t *testing.T) {
	factory := Factory(nullFactory)
	builder := builderFunc(nullFactory)

	tests := []struct {
		name string
		arg  any
		want argKind
	}{
		{name: "nil", arg: nil, want: kindAbsent},
		{name: "typed nil config pointer", arg: (*Config)(nil), want: kindAbsent},
		{name: "false", arg: false, want: kindFlag},
		{name: "true", arg: true, want: kindFlag},
		{name: "string", arg: "tqdm", want: kindPreset},
		{name: "named string", arg: keyString("tqdm"), want: kindPreset},
		{name: "config value", arg: Config{}, want: kindConfig},
		{name: "config pointer", arg: &Config{}, want: kindConfig},
		{name: "builder", arg: builder, want: kindBuilder},
		{name: "named string builder", arg: builderKey("tqdm"), want: kindBuilder},
		{name: "factory type", arg: factory, want: kindFactory},
		{name: "factory func literal", arg: nullFactory, want: kindFactory},
		{name: "unsupported int", arg: 42, want: kindInvalid},
		{name: "unsupported struct", arg: struct{}{}, want: kindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.arg).kind)
		})
	}
}

func TestClassifyFlagValue(t *testing.T) {
	assert.True(t, classify(true).enabled)
	assert.False(t, classify(false).enabled)
}

func TestClassifyNamedStringKeepsValue(t *testing.T) {
	v := classify(keyString("custom-preset"))
	require.Equal(t, kindPreset, v.kind)
	assert.Equal(t, "custom-preset", v.key)
}

func TestConfigZeroValueCreatesNullMonitor(t *testing.T) {
	var cfg Config
	mon, err := cfg.Create(10)
	require.NoError(t, err)
	assert.IsType(t, &NullMonitor{}, mon)
}
