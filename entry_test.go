package progress_test

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monitorkit/progress"
	"github.com/monitorkit/progress/metertest"
)

func collect[E any](seq iter.Seq[E]) []E {
	var out []E
	for v := range seq {
		out = append(out, v)
	}
	return out
}

func TestIterYieldsInOrder(t *testing.T) {
	seq, err := progress.Iter([]string{"a", "b", "c"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, collect(seq))
}

func TestIterIsSinglePass(t *testing.T) {
	seq, err := progress.Iter([]string{"a", "b", "c"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, collect(seq))
	assert.Empty(t, collect(seq), "a second pass must never replay elements")
}

func TestIterDrivesMonitor(t *testing.T) {
	b := &metertest.Builder{}

	seq, err := progress.Iter([]int{10, 20, 30}, b, progress.WithDesc("crunching"))
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30}, collect(seq))

	require.Len(t, b.Recorders(), 1)
	rec := b.Recorders()[0]
	assert.Equal(t, int64(3), rec.Total(), "slice length becomes the total")
	assert.Equal(t, []int64{1, 1, 1}, rec.Updates())
	assert.Equal(t, int64(3), rec.N())
	assert.Equal(t, 1, rec.CloseCount())
	assert.Empty(t, rec.Violations())
	assert.Equal(t, "crunching", rec.Options().Desc)
}

func TestIterClosesOnceOnEarlyBreak(t *testing.T) {
	b := &metertest.Builder{}

	seq, err := progress.Iter([]int{1, 2, 3, 4}, b)
	require.NoError(t, err)

	var got []int
	for v := range seq {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, got)

	rec := b.Recorders()[0]
	assert.Equal(t, 1, rec.CloseCount())
	// The element the consumer broke on is not counted.
	assert.Equal(t, int64(1), rec.N())

	// Resuming after a break must not replay or double-close.
	assert.Empty(t, collect(seq))
	assert.Equal(t, 1, rec.CloseCount())
}

func TestIterClosesOnceOnPanic(t *testing.T) {
	b := &metertest.Builder{}

	seq, err := progress.Iter([]int{1, 2, 3}, b)
	require.NoError(t, err)

	require.Panics(t, func() {
		for v := range seq {
			if v == 2 {
				panic("worker failure")
			}
		}
	})

	rec := b.Recorders()[0]
	assert.Equal(t, 1, rec.CloseCount())
}

func TestIterEmptySlice(t *testing.T) {
	b := &metertest.Builder{}

	seq, err := progress.Iter([]int{}, b)
	require.NoError(t, err)
	assert.Empty(t, collect(seq))

	rec := b.Recorders()[0]
	assert.Equal(t, int64(0), rec.Total())
	assert.Empty(t, rec.Updates())
	assert.Equal(t, 1, rec.CloseCount())
}

func TestIterResolutionErrorIsSynchronous(t *testing.T) {
	seq, err := progress.Iter([]int{1, 2, 3}, "not-a-real-preset")
	assert.Nil(t, seq)

	var unknownErr *progress.UnknownPresetError
	require.ErrorAs(t, err, &unknownErr)
}

func TestIterSeqUsesExplicitTotal(t *testing.T) {
	b := &metertest.Builder{}

	src := func(yield func(int) bool) {
		for i := range 5 {
			if !yield(i) {
				return
			}
		}
	}

	seq, err := progress.IterSeq(src, 5, b)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, collect(seq))

	rec := b.Recorders()[0]
	assert.Equal(t, int64(5), rec.Total())
	assert.Equal(t, int64(5), rec.N())
	assert.Equal(t, 1, rec.CloseCount())
}

func TestIterSeqUnknownTotal(t *testing.T) {
	b := &metertest.Builder{}

	seq, err := progress.IterSeq(func(yield func(int) bool) {
		yield(1)
	}, -1, b)
	require.NoError(t, err)
	collect(seq)

	rec := b.Recorders()[0]
	assert.Equal(t, int64(-1), rec.Total())
	assert.Empty(t, rec.Violations())
}
