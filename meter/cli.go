package meter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/monitorkit/progress"
)

// CLI is a command-line monitor that renders a visual bar updated in
// place, in the style of command-line framework progress bars. It is the
// backend behind the "click" preset.
//
// On a terminal the bar redraws the same line using carriage returns:
//
//	syncing  42% |██████████░░░░░░░░░░░░░░░| 99/235
//
// When the writer is not a terminal (pipes, files, CI logs) the in-place
// ANSI control characters would only produce garbage, so each render is
// written as a plain line instead.
//
// CLI is safe for concurrent use; a mutex keeps line updates atomic.
type CLI struct {
	mu          sync.Mutex
	writer      io.Writer
	desc        string
	n           int64
	total       int64
	barWidth    int
	lastLineLen int
	tty         bool
	closed      bool
}

// NewCLI creates a command-line bar monitor. It has the progress.Factory
// signature and honors Desc, Writer, and Initial. The writer defaults to
// os.Stderr; terminal detection decides between in-place and line output.
func NewCLI(total int64, opts progress.Options) (progress.Monitor, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	c := &CLI{
		writer:   w,
		desc:     opts.Desc,
		n:        opts.Initial,
		total:    total,
		barWidth: 25,
		tty:      tty,
	}
	return c, nil
}

// Update advances the bar by delta units and redraws it.
func (c *CLI) Update(delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n += delta
	c.render()
}

// MoveTo sets the bar to an absolute position and redraws it.
func (c *CLI) MoveTo(n int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n = n
	c.render()
}

// N returns the current position.
func (c *CLI) N() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// Total returns the expected total, negative when unknown.
func (c *CLI) Total() int64 {
	return c.total
}

// Close finishes the bar's line so later output starts on a fresh one.
// Idempotent; never fails.
func (c *CLI) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.tty && c.lastLineLen > 0 {
		fmt.Fprint(c.writer, "\n")
		c.lastLineLen = 0
	}
	return nil
}

// render draws the current state. In terminal mode the previous line is
// cleared with spaces and overwritten; otherwise a full line is printed.
func (c *CLI) render() {
	if c.closed {
		return
	}
	line := c.buildLine()
	if !c.tty {
		fmt.Fprintf(c.writer, "%s\n", line)
		return
	}

	if c.lastLineLen > 0 {
		fmt.Fprint(c.writer, "\r")
		fmt.Fprint(c.writer, strings.Repeat(" ", c.lastLineLen))
		fmt.Fprint(c.writer, "\r")
	}
	fmt.Fprint(c.writer, line)
	c.lastLineLen = utf8.RuneCountInString(line)

	if c.total > 0 && c.n >= c.total {
		fmt.Fprint(c.writer, "\n")
		c.lastLineLen = 0
	}
}

// buildLine assembles the bar string for the current position.
//
// With a known total: "desc  42% |██████████░░░░░░░░░░░░░░░| 99/235".
// Without one, only the description and raw count are shown.
func (c *CLI) buildLine() string {
	if c.total <= 0 {
		if c.desc != "" {
			return fmt.Sprintf("%s %d", c.desc, c.n)
		}
		return fmt.Sprintf("%d", c.n)
	}

	percent := float64(c.n) / float64(c.total) * 100.0
	filledWidth := int(float64(c.barWidth) * percent / 100.0)
	// Overshooting the total is allowed; pin the bar at full.
	if filledWidth > c.barWidth {
		filledWidth = c.barWidth
	}
	if filledWidth < 0 {
		filledWidth = 0
	}
	emptyWidth := c.barWidth - filledWidth

	visualBar := fmt.Sprintf("|%s%s|",
		strings.Repeat("█", filledWidth),
		strings.Repeat("░", emptyWidth))
	percentStr := fmt.Sprintf("%3d%%", int(percent))
	countStr := fmt.Sprintf("%d/%d", c.n, c.total)

	if c.desc != "" {
		return fmt.Sprintf("%s %s %s %s", c.desc, percentStr, visualBar, countStr)
	}
	return fmt.Sprintf("%s %s %s", percentStr, visualBar, countStr)
}
