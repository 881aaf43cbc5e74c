package ovarint

import (
	"golang.org/x/exp/constraints"
)

type UnsignedInt interface {
	constraints.Unsigned
}

type SignedInt interface {
	constraints.Signed
}
