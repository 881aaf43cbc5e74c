package ovarint

import (
	"encoding/binary"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// Unsigned is an unsigned integer of up to 128 bits.
//
// The encoded form uses the high nibble of the first byte as the number of
// extra bytes (0..15). The low nibble of the first byte and the extra bytes
// hold the value in big-endian order, which limits the range to 0..2^124-1.
type Unsigned struct {
	hi, lo uint64
}

var (
	_ Variable        = Unsigned{}
	_ VariableDecoder = (*Unsigned)(nil)
)

func UnsignedOf[T UnsignedInt](v T) Unsigned {
	return Unsigned{lo: uint64(v)}
}

func NewUnsigned128(hi, lo uint64) Unsigned {
	return Unsigned{hi: hi, lo: lo}
}

// UnsignedFromBig returns ErrOverflow when x is negative or wider than 128 bits.
func UnsignedFromBig(x *big.Int) (Unsigned, error) {
	if x.Sign() < 0 || 128 < x.BitLen() {
		return Unsigned{}, errors.Wrapf(ErrOverflow, "unsigned from %s", x)
	}
	hi, lo := splitBig(x)
	return Unsigned{hi: hi, lo: lo}, nil
}

// UnsignedTo narrows u to T, returning ErrOverflow when it does not fit.
func UnsignedTo[T UnsignedInt](u Unsigned) (T, error) {
	v := T(u.lo)
	if u.hi != 0 || uint64(v) != u.lo {
		return 0, errors.Wrapf(ErrOverflow, "unsigned %s to %T", u, v)
	}
	return v, nil
}

func (u Unsigned) Hi() uint64 {
	return u.hi
}

func (u Unsigned) Lo() uint64 {
	return u.lo
}

func (u Unsigned) IsZero() bool {
	return u.hi == 0 && u.lo == 0
}

func (u Unsigned) Uint64() (uint64, error) {
	return UnsignedTo[uint64](u)
}

// Cmp returns -1, 0 or +1 as u is less than, equal to or greater than o.
func (u Unsigned) Cmp(o Unsigned) int {
	switch {
	case u.hi < o.hi:
		return -1
	case o.hi < u.hi:
		return 1
	case u.lo < o.lo:
		return -1
	case o.lo < u.lo:
		return 1
	}
	return 0
}

func (u Unsigned) BigInt() *big.Int {
	return joinBig(u.hi, u.lo)
}

func (u Unsigned) String() string {
	if u.hi == 0 {
		return new(big.Int).SetUint64(u.lo).String()
	}
	return u.BigInt().String()
}

func (u Unsigned) bytes() [16]byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], u.hi)
	binary.BigEndian.PutUint64(b[8:], u.lo)
	return b
}

func unsignedFromBytes(b [16]byte) Unsigned {
	return Unsigned{
		hi: binary.BigEndian.Uint64(b[:8]),
		lo: binary.BigEndian.Uint64(b[8:]),
	}
}

// EncodedLen returns the number of bytes EncodeVariable would write.
func (u Unsigned) EncodedLen() (int, error) {
	be := u.bytes()
	if be[0]>>4 != 0 {
		return 0, errors.Wrapf(ErrOutOfRange, "unsigned %s", u)
	}
	return unsignedExtra(be) + 1, nil
}

func (u Unsigned) AppendVariable(dst []byte) ([]byte, error) {
	be := u.bytes()
	if be[0]>>4 != 0 {
		return dst, errors.Wrapf(ErrOutOfRange, "unsigned %s", u)
	}
	return appendUnsigned(dst, be), nil
}

func (u Unsigned) EncodeVariable(w io.Writer) (int, error) {
	var buf [16]byte
	b, err := u.AppendVariable(buf[:0])
	if err != nil {
		return 0, err
	}
	return writeFull(w, b)
}

func (u Unsigned) VariableBytes() ([]byte, error) {
	return u.AppendVariable(make([]byte, 0, 16))
}

func (u Unsigned) MarshalBinary() ([]byte, error) {
	return u.VariableBytes()
}

func (u *Unsigned) UnmarshalBinary(data []byte) error {
	v, n, err := ParseUnsigned(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return errors.Wrapf(ErrTrailingBytes, "%d of %d bytes used", n, len(data))
	}
	*u = v
	return nil
}

func (u *Unsigned) DecodeVariable(r io.Reader) error {
	v, err := DecodeUnsigned(r)
	if err != nil {
		return err
	}
	*u = v
	return nil
}

func DecodeUnsigned(r io.Reader) (Unsigned, error) {
	var head [1]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return Unsigned{}, readErr(err, false)
	}
	var rest [15]byte
	tail := rest[:head[0]>>4]
	if _, err := io.ReadFull(r, tail); err != nil {
		return Unsigned{}, readErr(err, true)
	}
	return unsignedFromParts(head[0], tail), nil
}

// ParseUnsigned decodes the value at the start of b and returns it together
// with the number of bytes it occupied.
func ParseUnsigned(b []byte) (Unsigned, int, error) {
	if len(b) < 1 {
		return Unsigned{}, 0, errors.WithStack(io.EOF)
	}
	n := 1 + int(b[0]>>4)
	if len(b) < n {
		return Unsigned{}, 0, errors.WithStack(io.ErrUnexpectedEOF)
	}
	return unsignedFromParts(b[0], b[1:n]), n, nil
}

// unsignedExtra is the number of bytes following the header byte.
func unsignedExtra(be [16]byte) int {
	i := 0
	for i < 15 && be[i] == 0 {
		i += 1
	}
	extra := 15 - i
	if 0x10 <= be[i] {
		// no room left in the low nibble
		extra += 1
	}
	return extra
}

// appendUnsigned expects the top nibble of be to be zero.
func appendUnsigned(dst []byte, be [16]byte) []byte {
	extra := unsignedExtra(be)
	head := len(dst)
	dst = append(dst, be[15-extra:]...)
	dst[head] |= byte(extra) << 4
	return dst
}

func unsignedFromParts(head byte, tail []byte) Unsigned {
	var be [16]byte
	n := len(tail)
	copy(be[16-n:], tail)
	be[15-n] = head & 0x0f
	return unsignedFromBytes(be)
}

func writeFull(w io.Writer, b []byte) (int, error) {
	n, err := w.Write(b)
	if err != nil {
		return n, errors.WithStack(err)
	}
	if n != len(b) {
		return n, errors.WithStack(io.ErrShortWrite)
	}
	return n, nil
}

var mask64 = new(big.Int).SetUint64(^uint64(0))

func splitBig(x *big.Int) (uint64, uint64) {
	lo := new(big.Int).And(x, mask64).Uint64()
	hi := new(big.Int).And(new(big.Int).Rsh(x, 64), mask64).Uint64()
	return hi, lo
}

func joinBig(hi, lo uint64) *big.Int {
	v := new(big.Int).SetUint64(hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(lo))
}
