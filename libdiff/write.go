package libdiff

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"
)

type writeOpts struct {
	context int
	colors  bool
}

type WriteOption func(*writeOpts)

// WriteContext sets how many unchanged lines surround each change.
func WriteContext(n int) WriteOption {
	return func(o *writeOpts) { o.context = n }
}

func WriteColors(v bool) WriteOption {
	return func(o *writeOpts) { o.colors = v }
}

type painter func(string, ...any) string

func plain(s string, _ ...any) string { return s }

func paint(c *color.Color) painter {
	c.EnableColor()
	f := c.SprintFunc()
	return func(s string, _ ...any) string { return f(s) }
}

// Write renders hunks with a marker column.  Runs of unchanged lines
// longer than twice the context are elided.
func Write(w io.Writer, hunks []Hunk, opts ...WriteOption) error {
	o := &writeOpts{context: 3}
	for _, opt := range opts {
		opt(o)
	}
	add, del, skip := painter(plain), painter(plain), painter(plain)
	if o.colors {
		add = paint(color.New(color.FgGreen))
		del = paint(color.New(color.FgRed))
		skip = paint(color.New(color.FgCyan))
	}
	bw := bufio.NewWriter(w)
	for i, h := range hunks {
		switch h.Op {
		case Insert:
			for _, l := range h.Lines {
				fmt.Fprintln(bw, add("+ "+l))
			}
		case Delete:
			for _, l := range h.Lines {
				fmt.Fprintln(bw, del("- "+l))
			}
		default:
			head, tail := o.context, o.context
			if i == 0 {
				head = 0
			}
			if i == len(hunks)-1 {
				tail = 0
			}
			if len(h.Lines) <= head+tail {
				for _, l := range h.Lines {
					fmt.Fprintln(bw, "  "+l)
				}
				continue
			}
			for _, l := range h.Lines[:head] {
				fmt.Fprintln(bw, "  "+l)
			}
			fmt.Fprintln(bw, skip(fmt.Sprintf("@@ %d unchanged lines @@", len(h.Lines)-head-tail)))
			for _, l := range h.Lines[len(h.Lines)-tail:] {
				fmt.Fprintln(bw, "  "+l)
			}
		}
	}
	return bw.Flush()
}
