package progress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monitorkit/progress"
	"github.com/monitorkit/progress/metertest"
)

func TestNewDisabledMonitorIsInert(t *testing.T) {
	for _, arg := range []any{nil, false} {
		mon, err := progress.New(arg, 10)
		require.NoError(t, err)
		require.IsType(t, &progress.NullMonitor{}, mon)

		// Any call sequence must be side-effect free and never panic.
		mon.Update(1)
		mon.Update(0)
		mon.MoveTo(500)
		require.NoError(t, mon.Close())
		require.NoError(t, mon.Close())
		mon.Update(1)
	}
}

func TestNewInvokesFactoryOnceUnchanged(t *testing.T) {
	var (
		calls int
		rec   *metertest.Recorder
	)
	f := func(total int64, opts progress.Options) (progress.Monitor, error) {
		calls++
		rec = metertest.NewRecorder(total, opts)
		return rec, nil
	}

	mon, err := progress.New(f, 5, progress.WithInitial(2))
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Same(t, rec, mon, "factory result must be returned unchanged")
	assert.Equal(t, int64(5), rec.Total())
	assert.Equal(t, int64(2), rec.Options().Initial)
	assert.Equal(t, int64(2), rec.N())
}

func TestNewMergesExtraOptions(t *testing.T) {
	mon, err := progress.New(metertest.Factory, 5,
		progress.WithInitial(2),
		progress.WithDesc("loading"),
		progress.WithExtra("color", "green"),
	)
	require.NoError(t, err)

	opts := mon.(*metertest.Recorder).Options()
	assert.Equal(t, int64(2), opts.Initial)
	assert.Equal(t, "loading", opts.Desc)
	assert.Equal(t, "green", opts.Extra["color"])
}

func TestInstantiationOptionsWinOverResolutionOptions(t *testing.T) {
	cfg, err := progress.Resolve(metertest.Factory,
		progress.WithDesc("A"),
		progress.WithExtra("k", "resolution"),
	)
	require.NoError(t, err)

	mon, err := progress.New(cfg, 10,
		progress.WithDesc("B"),
		progress.WithExtra("k", "instantiation"),
	)
	require.NoError(t, err)

	opts := mon.(*metertest.Recorder).Options()
	assert.Equal(t, "B", opts.Desc)
	assert.Equal(t, "instantiation", opts.Extra["k"])
}

func TestConfigIsImmutable(t *testing.T) {
	base, err := progress.Resolve(metertest.Factory, progress.WithDesc("base"))
	require.NoError(t, err)

	derived := base.With(progress.WithDesc("derived"))

	monBase, err := base.Create(10)
	require.NoError(t, err)
	monDerived, err := derived.Create(10)
	require.NoError(t, err)

	assert.Equal(t, "base", monBase.(*metertest.Recorder).Options().Desc)
	assert.Equal(t, "derived", monDerived.(*metertest.Recorder).Options().Desc)
}

func TestConfigIsReusable(t *testing.T) {
	cfg, err := progress.Resolve(metertest.Factory)
	require.NoError(t, err)

	first, err := cfg.Create(3)
	require.NoError(t, err)
	second, err := cfg.Create(4)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, int64(3), first.(*metertest.Recorder).Total())
	assert.Equal(t, int64(4), second.(*metertest.Recorder).Total())
}

func TestBackendConstructionErrorPropagatesUnchanged(t *testing.T) {
	constructionErr := assert.AnError
	f := func(total int64, opts progress.Options) (progress.Monitor, error) {
		return nil, constructionErr
	}

	mon, err := progress.New(f, 10)
	assert.Nil(t, mon)
	assert.Equal(t, constructionErr, err)
}
