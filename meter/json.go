package meter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/monitorkit/progress"
)

// JSON is a monitor that writes each position change as a single line of
// JSON (NDJSON). It is the backend behind the "json" preset and suits log
// aggregation systems, external monitoring tools, and pipelines that
// parse progress programmatically. Each line is a complete JSON object
// that can be decoded independently.
//
// Example output:
//
//	{"timestamp":"2026-08-31T17:06:22Z","desc":"indexing","n":1,"total":10,"percent":10}
//	{"timestamp":"2026-08-31T17:06:24Z","desc":"indexing","n":2,"total":10,"percent":20}
//	{"timestamp":"2026-08-31T17:06:41Z","desc":"indexing","n":10,"total":10,"percent":100,"closed":true}
//
// JSON is safe for concurrent use; a mutex keeps each line atomic.
type JSON struct {
	mu     sync.Mutex
	writer io.Writer
	desc   string
	n      int64
	total  int64
	closed bool
}

// NewJSON creates an NDJSON monitor. It has the progress.Factory
// signature and honors Desc, Writer, and Initial. The writer defaults to
// os.Stderr.
func NewJSON(total int64, opts progress.Options) (progress.Monitor, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	return &JSON{
		writer: w,
		desc:   opts.Desc,
		n:      opts.Initial,
		total:  total,
	}, nil
}

// Update advances the position by delta units and emits an event line.
func (j *JSON) Update(delta int64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.n += delta
	j.writeEvent(false)
}

// MoveTo sets the position to an absolute value and emits an event line.
func (j *JSON) MoveTo(n int64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.n = n
	j.writeEvent(false)
}

// N returns the current position.
func (j *JSON) N() int64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.n
}

// Total returns the expected total, negative when unknown.
func (j *JSON) Total() int64 {
	return j.total
}

// Close emits one final event with "closed":true. Idempotent: later calls
// emit nothing. Never fails; a marshal or write problem on the final
// event is discarded like any other event's.
func (j *JSON) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.writeEvent(true)
	j.closed = true
	return nil
}

func (j *JSON) writeEvent(closed bool) {
	if j.closed {
		return
	}
	event := Event{Desc: j.desc, N: j.n, Total: j.total, Closed: closed}
	event.normalize()

	data, err := json.Marshal(event)
	if err != nil {
		// Event fields are all plain values; this should not happen.
		return
	}
	fmt.Fprintf(j.writer, "%s\n", data)
}
