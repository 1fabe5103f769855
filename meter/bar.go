package meter

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/schollz/progressbar/v3"

	"github.com/monitorkit/progress"
)

// Bar is an interactive terminal monitor backed by schollz/progressbar.
// It is the backend behind the "tqdm" preset: a dynamic, in-place bar for
// TTY sessions, degrading to a spinner when the total is unknown.
type Bar struct {
	bar       *progressbar.ProgressBar
	n         atomic.Int64
	total     int64
	closeOnce sync.Once
}

// NewBar creates a terminal bar monitor. It has the progress.Factory
// signature and honors Desc, Writer, and Initial; a negative total renders
// a spinner instead of a bar. The writer defaults to os.Stderr.
func NewBar(total int64, opts progress.Options) (progress.Monitor, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(opts.Desc),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
	)

	b := &Bar{bar: bar, total: total}
	if opts.Initial > 0 {
		if err := bar.Set64(opts.Initial); err != nil {
			return nil, err
		}
		b.n.Store(opts.Initial)
	}
	return b, nil
}

// Update advances the bar by delta units.
func (b *Bar) Update(delta int64) {
	b.n.Add(delta)
	_ = b.bar.Add64(delta)
}

// MoveTo sets the bar to an absolute position.
func (b *Bar) MoveTo(n int64) {
	b.n.Store(n)
	_ = b.bar.Set64(n)
}

// N returns the bar's current position.
func (b *Bar) N() int64 {
	return b.n.Load()
}

// Total returns the total the bar was created with.
func (b *Bar) Total() int64 {
	return b.total
}

// Close stops rendering, leaving the bar at its current position. The
// first call returns any terminal cleanup error; later calls are no-ops.
func (b *Bar) Close() error {
	var err error
	b.closeOnce.Do(func() {
		err = b.bar.Exit()
	})
	return err
}
