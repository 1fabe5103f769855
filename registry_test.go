package progress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monitorkit/progress"
	"github.com/monitorkit/progress/metertest"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := progress.NewRegistry()
	require.NoError(t, r.Register("rec", metertest.Factory, progress.WithDesc("registered")))

	cfg, err := r.Lookup("rec")
	require.NoError(t, err)

	mon, err := cfg.Create(10)
	require.NoError(t, err)

	rec := mon.(*metertest.Recorder)
	assert.Equal(t, int64(10), rec.Total())
	assert.Zero(t, rec.Options().Initial)
	assert.Equal(t, "registered", rec.Options().Desc)
}

func TestRegistryLookupMiss(t *testing.T) {
	r := progress.NewRegistry()

	_, err := r.Lookup("missing")
	var unknownErr *progress.UnknownPresetError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "missing", unknownErr.Key)
}

func TestRegistryLookupIsCaseSensitive(t *testing.T) {
	r := progress.NewRegistry()
	require.NoError(t, r.Register("rec", metertest.Factory))

	_, err := r.Lookup("Rec")
	require.Error(t, err)
	_, err = r.Lookup("REC")
	require.Error(t, err)
	_, err = r.Lookup("rec")
	require.NoError(t, err)
}

func TestRegistryLastRegistrationWins(t *testing.T) {
	r := progress.NewRegistry()
	require.NoError(t, r.Register("rec", metertest.Factory, progress.WithDesc("first")))
	require.NoError(t, r.Register("rec", metertest.Factory, progress.WithDesc("second")))

	cfg, err := r.Lookup("rec")
	require.NoError(t, err)

	mon, err := cfg.Create(1)
	require.NoError(t, err)
	assert.Equal(t, "second", mon.(*metertest.Recorder).Options().Desc)
}

func TestRegistryRegisterRejectsInvalidArg(t *testing.T) {
	r := progress.NewRegistry()

	err := r.Register("bad", 42)
	var cfgErr *progress.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)

	_, err = r.Lookup("bad")
	assert.Error(t, err, "a failed registration must not create the key")
}

func TestRegistryRegisterAcceptsAnyResolvableShape(t *testing.T) {
	r := progress.NewRegistry()

	cfg, err := r.Resolve(metertest.Factory)
	require.NoError(t, err)

	require.NoError(t, r.Register("from-config", cfg))
	require.NoError(t, r.Register("from-builder", &metertest.Builder{}))
	require.NoError(t, r.Register("disabled", nil))

	assert.Equal(t, []string{"disabled", "from-builder", "from-config"}, r.Keys())
}

func TestRegistryKeysSorted(t *testing.T) {
	r := progress.NewRegistry()
	for _, key := range []string{"zeta", "alpha", "mike"} {
		require.NoError(t, r.Register(key, metertest.Factory))
	}
	assert.Equal(t, []string{"alpha", "mike", "zeta"}, r.Keys())
}

func TestDefaultRegistryPackageLevelFuncs(t *testing.T) {
	require.NoError(t, progress.Register("registry-test-preset", metertest.Factory))

	cfg, err := progress.LookupPreset("registry-test-preset")
	require.NoError(t, err)

	mon, err := cfg.Create(2)
	require.NoError(t, err)
	assert.IsType(t, &metertest.Recorder{}, mon)

	mon, err = progress.New("registry-test-preset", 2)
	require.NoError(t, err)
	assert.IsType(t, &metertest.Recorder{}, mon)
}

func TestMustRegisterPanicsOnInvalidArg(t *testing.T) {
	assert.Panics(t, func() {
		progress.MustRegister("registry-test-bad", struct{}{})
	})
}
