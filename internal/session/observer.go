// Package session runs the interactive assistant loop.
//
// The loop talks to the user only through an Observer, so tests drive it
// with a scripted fake and the CLI with a Console bound to stdin/stdout.
package session

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// MaxLineBytes is the longest input line a Console accepts.
const MaxLineBytes = 1 << 20

// ErrLineTooLong is returned by Input for a line over the Console limit.
// The line is consumed; the next Input reads the line after it.
var ErrLineTooLong = errors.New("input line too long")

// Observer is the user-facing I/O capability.
type Observer interface {
	// Display shows one message.
	Display(message string)

	// Input shows prompt and reads one line without its trailing newline.
	// Returns io.EOF when no more input is available and ctx.Err() if ctx
	// is done first.
	Input(ctx context.Context, prompt string) (string, error)
}

type lineResult struct {
	line string
	err  error
}

// Console is an Observer over a reader and a writer.
//
// Reads happen on a background goroutine, one line per Input call, so a
// cancelled context unblocks Input even while the reader is blocked. A line
// that arrives after cancellation is returned by the next Input.
// Input must not be called concurrently.
type Console struct {
	in      *bufio.Reader
	out     io.Writer
	maxLine int

	start   sync.Once
	want    chan struct{}
	lines   chan lineResult
	pending bool
}

var _ Observer = (*Console)(nil)

// NewConsole reads lines from in and writes messages to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:      bufio.NewReader(in),
		out:     out,
		maxLine: MaxLineBytes,
		want:    make(chan struct{}, 1),
		lines:   make(chan lineResult, 1),
	}
}

// Display writes message followed by a newline.
func (c *Console) Display(message string) {
	fmt.Fprintln(c.out, message)
}

// Input writes prompt and waits for the next line or for ctx to be done.
func (c *Console) Input(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)

	c.start.Do(func() { go c.readLoop() })
	if !c.pending {
		c.want <- struct{}{}
		c.pending = true
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-c.lines:
		c.pending = false
		return r.line, r.err
	}
}

func (c *Console) readLoop() {
	for range c.want {
		line, err := readLine(c.in, c.maxLine)
		c.lines <- lineResult{line: line, err: err}
	}
}

// readLine reads up to the next newline. Bytes beyond max are discarded and
// the line is reported as ErrLineTooLong.
func readLine(r *bufio.Reader, max int) (string, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, err := r.ReadSlice('\n')
		if !tooLong {
			buf = append(buf, chunk...)
			// +2 leaves room for a trailing "\r\n".
			if len(buf) > max+2 {
				tooLong, buf = true, nil
			}
		}

		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if tooLong {
				return "", ErrLineTooLong
			}
			if len(buf) == 0 {
				return "", io.EOF
			}
		case err != nil:
			return "", err
		}

		if tooLong {
			return "", ErrLineTooLong
		}
		line := bytes.TrimSuffix(bytes.TrimSuffix(buf, []byte("\n")), []byte("\r"))
		if len(line) > max {
			return "", ErrLineTooLong
		}
		return string(line), nil
	}
}
