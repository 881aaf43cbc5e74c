package ovarint

import (
	"io"
)

// Writer encodes a sequence of values, such as the parts of a composite
// key. The first error is kept and every later call becomes a no-op.
type Writer struct {
	w   io.Writer
	n   int
	err error
	buf []byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, buf: make([]byte, 0, 16)}
}

func (w *Writer) write(b []byte, err error) {
	if err != nil {
		w.err = err
		return
	}
	n, err := writeFull(w.w, b)
	w.n += n
	w.err = err
}

func (w *Writer) Unsigned(v Unsigned) {
	if w.err != nil {
		return
	}
	w.write(v.AppendVariable(w.buf[:0]))
}

func (w *Writer) Signed(v Signed) {
	if w.err != nil {
		return
	}
	w.write(v.AppendVariable(w.buf[:0]))
}

func (w *Writer) Uint64(v uint64) {
	w.Unsigned(UnsignedOf(v))
}

func (w *Writer) Int64(v int64) {
	w.Signed(SignedOf(v))
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.n
}

func (w *Writer) Err() error {
	return w.err
}

// Reader decodes a sequence of values written by Writer. The first error
// is kept and every later call returns a zero value.
type Reader struct {
	r   io.Reader
	err error
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (r *Reader) Unsigned() Unsigned {
	if r.err != nil {
		return Unsigned{}
	}
	v, err := DecodeUnsigned(r.r)
	r.err = err
	return v
}

func (r *Reader) Signed() Signed {
	if r.err != nil {
		return Signed{}
	}
	v, err := DecodeSigned(r.r)
	r.err = err
	return v
}

func (r *Reader) Uint64() uint64 {
	u := r.Unsigned()
	if r.err != nil {
		return 0
	}
	v, err := u.Uint64()
	r.err = err
	return v
}

func (r *Reader) Int64() int64 {
	s := r.Signed()
	if r.err != nil {
		return 0
	}
	v, err := s.Int64()
	r.err = err
	return v
}

func (r *Reader) Err() error {
	return r.err
}
