package meter

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/monitorkit/progress"
)

// Text is a monitor that writes one timestamped, human-readable line per
// position change. It is the backend behind the "text" preset and the
// right choice for log files and CI output where in-place rendering is
// useless.
//
// Example output:
//
//	[17:06:22] indexing: 1/10 (10.0%)
//	[17:06:24] indexing: 2/10 (20.0%)
//
// Text is safe for concurrent use.
type Text struct {
	mu     sync.Mutex
	writer io.Writer
	desc   string
	n      int64
	total  int64
	closed bool
}

// NewText creates a line-per-update text monitor. It has the
// progress.Factory signature and honors Desc, Writer, and Initial. The
// writer defaults to os.Stderr.
func NewText(total int64, opts progress.Options) (progress.Monitor, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	return &Text{
		writer: w,
		desc:   opts.Desc,
		n:      opts.Initial,
		total:  total,
	}, nil
}

// Update advances the position by delta units and writes a line.
func (t *Text) Update(delta int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.n += delta
	t.writeLine()
}

// MoveTo sets the position to an absolute value and writes a line.
func (t *Text) MoveTo(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.n = n
	t.writeLine()
}

// N returns the current position.
func (t *Text) N() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.n
}

// Total returns the expected total, negative when unknown.
func (t *Text) Total() int64 {
	return t.total
}

// Close stops output. Idempotent; never fails.
func (t *Text) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

func (t *Text) writeLine() {
	if t.closed {
		return
	}
	event := Event{Desc: t.desc, N: t.n, Total: t.total}
	event.normalize()

	label := event.Desc
	if label == "" {
		label = "progress"
	}

	var output string
	if event.Total > 0 {
		output = fmt.Sprintf("[%s] %s: %d/%d (%.1f%%)\n",
			event.Timestamp.Format("15:04:05"),
			label,
			event.N,
			event.Total,
			event.Percent)
	} else {
		output = fmt.Sprintf("[%s] %s: %d\n",
			event.Timestamp.Format("15:04:05"),
			label,
			event.N)
	}
	t.writer.Write([]byte(output))
}
