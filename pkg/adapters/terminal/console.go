// Package terminal implements the adapter ports for a line-oriented
// terminal. Targets are shown by name in a popover box, navigation is
// announced as a route change and confirmations are answered with y/n.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
)

var (
	_ ports.NavigationBridge   = (*Console)(nil)
	_ ports.Renderer           = (*Console)(nil)
	_ ports.InteractionToggler = (*Console)(nil)
	_ ports.ConfirmationGate   = (*Console)(nil)
)

// ContentRenderer transforms step descriptions before printing, for
// instance to turn inline emphasis into ANSI styles.
type ContentRenderer func(string) (string, error)

// Console drives a tour from a reader and a writer.
// Output is serialized; ReadLine must be called from one goroutine at a time.
type Console struct {
	mu       sync.Mutex
	w        io.Writer
	render   ContentRenderer
	width    int
	route    string
	disabled map[domain.Locator]bool

	reader    *bufio.Reader
	requests  chan struct{}
	lines     chan line
	reading   bool
	startOnce sync.Once
}

type line struct {
	text string
	err  error
}

// Option configures a Console.
type Option func(*Console)

// WithRenderer sets the description renderer.
func WithRenderer(r ContentRenderer) Option {
	return func(c *Console) {
		c.render = r
	}
}

// WithWidth sets the popover width in columns.
func WithWidth(width int) Option {
	return func(c *Console) {
		c.width = width
	}
}

// New creates a console reading commands from r and printing to w.
func New(r io.Reader, w io.Writer, opts ...Option) *Console {
	c := &Console{
		w:        w,
		width:    60,
		disabled: make(map[domain.Locator]bool),
		reader:   bufio.NewReader(r),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReadLine returns the next trimmed line of input, or io.EOF when the
// input is exhausted. Input is read only on request, so other readers of the
// same terminal (such as a PromptGate) are not starved. If ctx is done first,
// the line being read is delivered to the next call.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	c.startOnce.Do(c.pump)
	if !c.reading {
		c.requests <- struct{}{}
		c.reading = true
	}
	select {
	case l := <-c.lines:
		c.reading = false
		return l.text, l.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *Console) pump() {
	c.requests = make(chan struct{})
	c.lines = make(chan line, 1)
	go func() {
		for range c.requests {
			text, err := c.reader.ReadString('\n')
			if err == io.EOF && text != "" {
				err = nil
			}
			c.lines <- line{text: strings.TrimSpace(text), err: err}
		}
	}()
}

// Println writes a line of output.
func (c *Console) Println(a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, a...)
}
