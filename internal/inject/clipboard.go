package inject

import (
	"context"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
)

// Clipboard copies the text instead of typing it.
type Clipboard struct {
	write     func(string) error
	supported func() bool
}

// NewClipboard returns a clipboard backend using the system clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{
		write:     clipboard.WriteAll,
		supported: func() bool { return !clipboard.Unsupported },
	}
}

// Name implements Injector.
func (c *Clipboard) Name() string { return "clipboard" }

// Inject implements Injector.
func (c *Clipboard) Inject(_ context.Context, text string) error {
	if !c.supported() {
		return unavailable(c.Name(), "no clipboard utility found")
	}
	if err := c.write(text); err != nil {
		return rejected(c.Name(), err.Error())
	}
	return nil
}

// Writer prints the text, for scripts that pipe the selection elsewhere.
type Writer struct {
	w io.Writer
}

// NewWriter returns a backend writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Name implements Injector.
func (w *Writer) Name() string { return "stdout" }

// Inject implements Injector.
func (w *Writer) Inject(_ context.Context, text string) error {
	if _, err := fmt.Fprintln(w.w, text); err != nil {
		return rejected(w.Name(), err.Error())
	}
	return nil
}
