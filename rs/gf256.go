package rs

import (
	"sync"

	"github.com/galoisfield/rscodec/field"
)

// gf256Poly/gf256Generator are the CCITT/QR-code field x^8 + x^4 + x^3 +
// x^2 + 1 (0x11d, low 8 bits 0x1d) with generator 2.
const (
	gf256Poly      = 0x1d
	gf256Generator = 2
)

var (
	gf256Field     *field.Field
	gf256FieldOnce sync.Once
)

func sharedGF256Field() *field.Field {
	gf256FieldOnce.Do(func() {
		f, err := field.New(8, gf256Poly, gf256Generator)
		if err != nil {
			panic("rs: built-in GF(2^8) field failed to construct: " + err.Error())
		}
		gf256Field = f
	})
	return gf256Field
}

// ByteCodec is a Codec bound to the built-in GF(2^8) field, operating
// directly on []byte instead of []field.Element -- the convenience
// surface every worked scenario in spec.md's testable properties uses.
type ByteCodec struct {
	*Codec
}

// NewGF256 constructs a byte-oriented Reed-Solomon codec with the given
// message and parity lengths over the shared GF(2^8) field.
func NewGF256(data, ecc int) (*ByteCodec, error) {
	c, err := New(sharedGF256Field(), data, ecc)
	if err != nil {
		return nil, err
	}
	return &ByteCodec{Codec: c}, nil
}

func bytesToElements(b []byte) []field.Element {
	out := make([]field.Element, len(b))
	for i, v := range b {
		out[i] = field.Element(v)
	}
	return out
}

func elementsToBytes(e []field.Element, into []byte) {
	for i, v := range e {
		into[i] = byte(v)
	}
}

// Encode computes parity for buf in place, operating on bytes directly.
func (bc *ByteCodec) Encode(buf []byte) error {
	els := bytesToElements(buf)
	if err := bc.Codec.Encode(els); err != nil {
		return err
	}
	elementsToBytes(els, buf)
	return nil
}

// IsCorrect reports whether buf's syndromes are all zero.
func (bc *ByteCodec) IsCorrect(buf []byte) bool {
	return bc.Codec.IsCorrect(bytesToElements(buf))
}

// CorrectErasures repairs buf at the given known-bad byte positions.
func (bc *ByteCodec) CorrectErasures(buf []byte, positions []int) (int, error) {
	els := bytesToElements(buf)
	n, err := bc.Codec.CorrectErasures(els, positions)
	elementsToBytes(els, buf)
	return n, err
}

// CorrectErrors locates and repairs errors at unknown byte positions.
func (bc *ByteCodec) CorrectErrors(buf []byte) (int, error) {
	els := bytesToElements(buf)
	n, err := bc.Codec.CorrectErrors(els)
	elementsToBytes(els, buf)
	return n, err
}

// Correct repairs buf given known erasure positions plus any number of
// additional unknown errors.
func (bc *ByteCodec) Correct(buf []byte, positions []int) (int, error) {
	els := bytesToElements(buf)
	n, err := bc.Codec.Correct(els, positions)
	elementsToBytes(els, buf)
	return n, err
}
