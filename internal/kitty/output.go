package kitty

import (
	"bufio"
	"io"

	"github.com/charmbracelet/x/ansi"
)

// Output is where escape sequences go. MoveTo positions the cursor at a
// 0-based cell before the next write.
type Output interface {
	io.Writer
	MoveTo(col, row int) error
}

type flusher interface {
	Flush() error
}

// TermOutput queues cursor moves and graphics sequences for a terminal.
type TermOutput struct {
	w *bufio.Writer
}

// NewTermOutput returns an Output writing to w. Nothing reaches w until
// Flush is called or the internal buffer fills.
func NewTermOutput(w io.Writer) *TermOutput {
	return &TermOutput{w: bufio.NewWriterSize(w, 64*1024)}
}

// MoveTo queues a CUP sequence. Terminal coordinates are 1-based.
func (o *TermOutput) MoveTo(col, row int) error {
	_, err := o.w.WriteString(ansi.CursorPosition(col+1, row+1))
	return err
}

func (o *TermOutput) Write(p []byte) (int, error) {
	return o.w.Write(p)
}

// Flush writes queued bytes to the underlying writer.
func (o *TermOutput) Flush() error {
	return o.w.Flush()
}

func flush(out Output) error {
	if f, ok := out.(flusher); ok {
		return f.Flush()
	}
	return nil
}
