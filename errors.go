package ovarint

import (
	"io"

	"github.com/pkg/errors"
)

var (
	// ErrOutOfRange is returned when a value is outside the encodable range.
	ErrOutOfRange = errors.New("ovarint: value out of encodable range")

	// ErrOverflow is returned when a value does not fit the requested width.
	ErrOverflow = errors.New("ovarint: value overflows target type")

	// ErrTrailingBytes is returned when unmarshaling leaves bytes unused.
	ErrTrailingBytes = errors.New("ovarint: trailing bytes after value")
)

func readErr(err error, partial bool) error {
	if partial && errors.Is(err, io.EOF) {
		return errors.WithStack(io.ErrUnexpectedEOF)
	}
	return errors.WithStack(err)
}
