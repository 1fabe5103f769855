package meter

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"

	"github.com/monitorkit/progress"
)

// defaultChannelBuffer is the event channel capacity when no "buffer"
// extra option is given.
const defaultChannelBuffer = 100

// ChannelMeter is a monitor that sends an Event to a Go channel on every
// position change, for building custom UIs, dashboards, or tests that
// consume progress programmatically.
//
// Sends are non-blocking: when the consumer falls behind and the buffer
// fills, events are dropped rather than slowing the producing operation
// down. Dropped events are counted and logged at verbosity 1.
//
// The meter closes its channel when Close is called or when the
// constructor's context is cancelled, whichever happens first.
//
// Example:
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	cm := meter.NewChannelMeter(ctx, 100, progress.WithDesc("crawl"))
//
//	go func() {
//	    for event := range cm.Events() {
//	        fmt.Printf("%d%%\n", int(event.Percent))
//	    }
//	}()
//
// ChannelMeter is safe for concurrent use.
type ChannelMeter struct {
	events  chan Event
	mu      sync.RWMutex
	closed  bool
	n       atomic.Int64
	total   int64
	desc    string
	dropped atomic.Uint64
	log     logr.Logger
}

// NewChannelMeter creates a channel-backed monitor for an operation of
// total units. The channel buffer defaults to 100 events and can be tuned
// with progress.WithExtra("buffer", n). The meter honors Desc, Initial,
// and Logger; cancelling ctx closes the event channel.
func NewChannelMeter(ctx context.Context, total int64, opts ...progress.Option) *ChannelMeter {
	o := progress.NewOptions(opts...)

	buffer := defaultChannelBuffer
	if b, ok := o.Extra["buffer"].(int); ok && b > 0 {
		buffer = b
	}

	c := &ChannelMeter{
		events: make(chan Event, buffer),
		total:  total,
		desc:   o.Desc,
		log:    o.Logger,
	}
	c.n.Store(o.Initial)

	if ctx != nil {
		go func() {
			<-ctx.Done()
			c.Close()
		}()
	}

	return c
}

// Update advances the position by delta units and emits an event.
func (c *ChannelMeter) Update(delta int64) {
	c.send(c.n.Add(delta), false)
}

// MoveTo sets the position to an absolute value and emits an event.
func (c *ChannelMeter) MoveTo(n int64) {
	c.n.Store(n)
	c.send(n, false)
}

// N returns the current position.
func (c *ChannelMeter) N() int64 {
	return c.n.Load()
}

// Total returns the expected total, negative when unknown.
func (c *ChannelMeter) Total() int64 {
	return c.total
}

// Events returns the read-only channel of progress events. The channel is
// closed by Close (or context cancellation), so consumers can simply
// range over it.
func (c *ChannelMeter) Events() <-chan Event {
	return c.events
}

// DroppedEvents returns how many events were discarded because the
// channel buffer was full. A high number means the consumer is not
// keeping up; consider a larger buffer or a throttled producer.
func (c *ChannelMeter) DroppedEvents() uint64 {
	return c.dropped.Load()
}

// Close emits a final event with Closed set and closes the event channel.
// Idempotent; never fails.
func (c *ChannelMeter) Close() error {
	c.send(c.n.Load(), true)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.events)
	}
	return nil
}

// send delivers an event without blocking. The read lock spans the whole
// send so Close cannot close the channel mid-send.
func (c *ChannelMeter) send(n int64, closed bool) {
	event := Event{Desc: c.desc, N: n, Total: c.total, Closed: closed}
	event.normalize()

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return
	}

	select {
	case c.events <- event:
	default:
		// Buffer full: drop rather than block the tracked operation.
		dropped := c.dropped.Add(1)
		c.log.V(1).Info("progress event dropped due to slow consumer",
			"desc", c.desc,
			"n", n,
			"total_dropped", dropped,
		)
	}
}
