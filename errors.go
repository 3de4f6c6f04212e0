package iconbadge

import (
	"errors"
	"fmt"
)

// The rendering failures. Every one of them is local to a single icon:
// the batch driver reports the failed icon and moves on to the next one.
var (
	// ErrOutlineUnavailable is returned when the outline could not be retrieved or read.
	ErrOutlineUnavailable = errors.New("outline unavailable")
	// ErrMalformedOutline is returned when the outline document or its path data cannot be parsed.
	ErrMalformedOutline = errors.New("malformed outline")
	// ErrUnsupportedCommand is returned for path verbs the flattener cannot interpret.
	ErrUnsupportedCommand = errors.New("unsupported path command")
	// ErrInvalidBoundingBox is returned for a viewBox with zero or negative width or height.
	ErrInvalidBoundingBox = errors.New("invalid bounding box")
)

// PathError records a path data decoding failure and the byte offset where it occurred.
type PathError struct {
	Pos int
	Cmd byte
	Err error
	msg string
}

func (e *PathError) Error() string {
	if e.Cmd != 0 {
		return fmt.Sprintf("%v: %s (command %q at position %d)", e.Err, e.msg, e.Cmd, e.Pos)
	}
	return fmt.Sprintf("%v: %s (position %d)", e.Err, e.msg, e.Pos)
}

func (e *PathError) Unwrap() error { return e.Err }
