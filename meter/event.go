package meter

import "time"

// Event is a snapshot of a monitor's state at a point in time. The JSON
// and channel backends emit one Event per position change.
type Event struct {
	// Timestamp is when the snapshot was taken. Filled in automatically
	// when zero.
	Timestamp time.Time `json:"timestamp"`

	// Desc is the monitor's description label, when one was configured.
	Desc string `json:"desc,omitempty"`

	// N is the current position.
	N int64 `json:"n"`

	// Total is the expected total. Omitted when unknown.
	Total int64 `json:"total,omitempty"`

	// Percent is the completion percentage (0-100), calculated from N and
	// Total when not set.
	Percent float64 `json:"percent,omitempty"`

	// Closed marks the final event emitted when the monitor closes.
	Closed bool `json:"closed,omitempty"`
}

// normalize fills in derived fields: the timestamp when zero, and the
// percentage when a total is known.
func (e *Event) normalize() {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	if e.Percent == 0.0 && e.Total > 0 {
		e.Percent = float64(e.N) / float64(e.Total) * 100.0
	}
}
