package render

import (
	"fmt"

	"github.com/Geddart/linearcal/pkg/grid"
)

// Backend is a drawing surface supporting one instanced draw per frame.
//
// DrawInstances consumes the whole packed buffer in a single call — the
// Go-side analog of an instanced draw with per-instance attribute divisors.
// Backends must not be reused after an error.
type Backend interface {
	// Begin prepares a frame of the given size in device pixels.
	Begin(width, height float64) error
	// DrawInstances draws every instance in the buffer in one call.
	DrawInstances(buf *Buffer) error
	// DrawGrid draws the scheduled gridlines and their labels.
	DrawGrid(lines []grid.Line) error
	// Flush finalizes the frame and writes any output.
	Flush() error
}

// BackendError is a renderer resource failure: surface creation, encoding,
// or output I/O. Unlike range degradation or capacity truncation it is fatal
// to the renderer — no partial rendering is possible afterwards.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("render backend %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
