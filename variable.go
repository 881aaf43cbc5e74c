// Package ovarint encodes integers into variable-length byte strings that
// sort in the same order as the numbers they hold.
package ovarint

import (
	"io"
)

// Variable is implemented by values with an order-preserving
// variable-length encoding.
type Variable interface {
	// EncodeVariable writes the encoded value to w and returns the number
	// of bytes written.
	EncodeVariable(w io.Writer) (int, error)
	AppendVariable(dst []byte) ([]byte, error)
	// VariableBytes returns the encoded value in a newly allocated slice.
	VariableBytes() ([]byte, error)
}

type VariableDecoder interface {
	DecodeVariable(r io.Reader) error
}

func EncodeUint[T UnsignedInt](w io.Writer, v T) (int, error) {
	return writeFull(w, AppendUint(make([]byte, 0, 16), v))
}

// AppendUint never fails: every built-in unsigned width is in range.
func AppendUint[T UnsignedInt](dst []byte, v T) []byte {
	return appendUnsigned(dst, UnsignedOf(v).bytes())
}

func DecodeUint[T UnsignedInt](r io.Reader) (T, error) {
	u, err := DecodeUnsigned(r)
	if err != nil {
		return 0, err
	}
	return UnsignedTo[T](u)
}

func ParseUint[T UnsignedInt](b []byte) (T, int, error) {
	u, n, err := ParseUnsigned(b)
	if err != nil {
		return 0, 0, err
	}
	v, err := UnsignedTo[T](u)
	if err != nil {
		return 0, 0, err
	}
	return v, n, nil
}

func EncodeInt[T SignedInt](w io.Writer, v T) (int, error) {
	return writeFull(w, AppendInt(make([]byte, 0, 16), v))
}

// AppendInt never fails: every built-in signed width is in range.
func AppendInt[T SignedInt](dst []byte, v T) []byte {
	return appendSigned(dst, SignedOf(v).bytes())
}

func DecodeInt[T SignedInt](r io.Reader) (T, error) {
	s, err := DecodeSigned(r)
	if err != nil {
		return 0, err
	}
	return SignedTo[T](s)
}

func ParseInt[T SignedInt](b []byte) (T, int, error) {
	s, n, err := ParseSigned(b)
	if err != nil {
		return 0, 0, err
	}
	v, err := SignedTo[T](s)
	if err != nil {
		return 0, 0, err
	}
	return v, n, nil
}
