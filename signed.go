package ovarint

import (
	"encoding/binary"
	"io"
	"math/big"
	"strconv"

	"github.com/pkg/errors"
)

// Signed is a two's complement signed integer of up to 128 bits.
//
// The top 5 bits of the first byte hold a biased length: 16+n for
// non-negative values and 15-n for negative ones, where n (0..15) is the
// number of extra bytes. The remaining 3 bits and the extra bytes hold the
// value in big-endian order, giving a range of -2^123..2^123-1. Negative
// values therefore always sort before non-negative ones, and longer
// negative encodings sort before shorter ones.
type Signed struct {
	hi, lo uint64
}

var (
	_ Variable        = Signed{}
	_ VariableDecoder = (*Signed)(nil)
)

var (
	two128    = new(big.Int).Lsh(big.NewInt(1), 128)
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

func SignedOf[T SignedInt](v T) Signed {
	x := int64(v)
	return Signed{hi: uint64(x >> 63), lo: uint64(x)}
}

func NewSigned128(hi int64, lo uint64) Signed {
	return Signed{hi: uint64(hi), lo: lo}
}

// SignedFromBig returns ErrOverflow when x is outside -2^127..2^127-1.
func SignedFromBig(x *big.Int) (Signed, error) {
	if 0 <= x.Sign() {
		if 127 < x.BitLen() {
			return Signed{}, errors.Wrapf(ErrOverflow, "signed from %s", x)
		}
		hi, lo := splitBig(x)
		return Signed{hi: hi, lo: lo}, nil
	}
	if x.Cmp(minInt128) < 0 {
		return Signed{}, errors.Wrapf(ErrOverflow, "signed from %s", x)
	}
	hi, lo := splitBig(new(big.Int).Add(x, two128))
	return Signed{hi: hi, lo: lo}, nil
}

// SignedTo narrows s to T, returning ErrOverflow when it does not fit.
func SignedTo[T SignedInt](s Signed) (T, error) {
	x := int64(s.lo)
	v := T(x)
	if s.hi != uint64(x>>63) || int64(v) != x {
		return 0, errors.Wrapf(ErrOverflow, "signed %s to %T", s.BigInt(), v)
	}
	return v, nil
}

func (s Signed) Hi() int64 {
	return int64(s.hi)
}

func (s Signed) Lo() uint64 {
	return s.lo
}

func (s Signed) IsZero() bool {
	return s.hi == 0 && s.lo == 0
}

// Sign returns -1, 0 or +1 depending on the sign of s.
func (s Signed) Sign() int {
	switch {
	case int64(s.hi) < 0:
		return -1
	case s.IsZero():
		return 0
	}
	return 1
}

func (s Signed) Int64() (int64, error) {
	return SignedTo[int64](s)
}

// Cmp returns -1, 0 or +1 as s is less than, equal to or greater than o.
func (s Signed) Cmp(o Signed) int {
	switch {
	case int64(s.hi) < int64(o.hi):
		return -1
	case int64(o.hi) < int64(s.hi):
		return 1
	case s.lo < o.lo:
		return -1
	case o.lo < s.lo:
		return 1
	}
	return 0
}

func (s Signed) BigInt() *big.Int {
	v := joinBig(s.hi, s.lo)
	if int64(s.hi) < 0 {
		v.Sub(v, two128)
	}
	return v
}

func (s Signed) String() string {
	if x := int64(s.lo); s.hi == uint64(x>>63) {
		return strconv.FormatInt(x, 10)
	}
	return s.BigInt().String()
}

func (s Signed) bytes() [16]byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], s.hi)
	binary.BigEndian.PutUint64(b[8:], s.lo)
	return b
}

func signedFromBytes(b [16]byte) Signed {
	return Signed{
		hi: binary.BigEndian.Uint64(b[:8]),
		lo: binary.BigEndian.Uint64(b[8:]),
	}
}

// signExtension is the byte that repeats in front of a value of this sign.
func signExtension(be [16]byte) byte {
	if be[0]&0x80 != 0 {
		return 0xff
	}
	return 0x00
}

func signedInRange(be [16]byte) bool {
	return be[0]>>3 == signExtension(be)>>3
}

func (s Signed) EncodedLen() (int, error) {
	be := s.bytes()
	if !signedInRange(be) {
		return 0, errors.Wrapf(ErrOutOfRange, "signed %s", s)
	}
	return signedExtra(be) + 1, nil
}

func (s Signed) AppendVariable(dst []byte) ([]byte, error) {
	be := s.bytes()
	if !signedInRange(be) {
		return dst, errors.Wrapf(ErrOutOfRange, "signed %s", s)
	}
	return appendSigned(dst, be), nil
}

func (s Signed) EncodeVariable(w io.Writer) (int, error) {
	var buf [16]byte
	b, err := s.AppendVariable(buf[:0])
	if err != nil {
		return 0, err
	}
	return writeFull(w, b)
}

func (s Signed) VariableBytes() ([]byte, error) {
	return s.AppendVariable(make([]byte, 0, 16))
}

func (s Signed) MarshalBinary() ([]byte, error) {
	return s.VariableBytes()
}

func (s *Signed) UnmarshalBinary(data []byte) error {
	v, n, err := ParseSigned(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return errors.Wrapf(ErrTrailingBytes, "%d of %d bytes used", n, len(data))
	}
	*s = v
	return nil
}

func (s *Signed) DecodeVariable(r io.Reader) error {
	v, err := DecodeSigned(r)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func DecodeSigned(r io.Reader) (Signed, error) {
	var head [1]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return Signed{}, readErr(err, false)
	}
	var rest [15]byte
	tail := rest[:signedTailLen(head[0])]
	if _, err := io.ReadFull(r, tail); err != nil {
		return Signed{}, readErr(err, true)
	}
	return signedFromParts(head[0], tail), nil
}

// ParseSigned decodes the value at the start of b and returns it together
// with the number of bytes it occupied.
func ParseSigned(b []byte) (Signed, int, error) {
	if len(b) < 1 {
		return Signed{}, 0, errors.WithStack(io.EOF)
	}
	n := 1 + signedTailLen(b[0])
	if len(b) < n {
		return Signed{}, 0, errors.WithStack(io.ErrUnexpectedEOF)
	}
	return signedFromParts(b[0], b[1:n]), n, nil
}

func signedTailLen(head byte) int {
	l := int(head >> 3)
	if 16 <= l {
		return l - 16
	}
	return 15 - l
}

func signedExtra(be [16]byte) int {
	ext := signExtension(be)
	i := 0
	for i < 15 && be[i] == ext {
		i += 1
	}
	extra := 15 - i
	if be[i]>>3 != ext>>3 {
		// top bits carry data, the header needs its own byte
		extra += 1
	}
	return extra
}

// appendSigned expects be to be within the encodable range.
func appendSigned(dst []byte, be [16]byte) []byte {
	extra := signedExtra(be)
	length := 16 + extra
	if signExtension(be) != 0 {
		length = 15 - extra
	}
	head := len(dst)
	dst = append(dst, be[15-extra:]...)
	dst[head] = (dst[head] & 0x07) | byte(length)<<3
	return dst
}

func signedFromParts(head byte, tail []byte) Signed {
	var be [16]byte
	n := len(tail)
	top := head & 0x07
	if head>>3 < 16 {
		for i := 0; i < 15-n; i += 1 {
			be[i] = 0xff
		}
		top |= 0xf8
	}
	be[15-n] = top
	copy(be[16-n:], tail)
	return signedFromBytes(be)
}
