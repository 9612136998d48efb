package field

import "github.com/holiman/uint256"

// wideInt is a binary-polynomial value wide enough to hold the carry-less
// product of two GF(2^64) elements (up to degree 126, i.e. up to 127
// bits) and the reduction constant derived from it (up to degree 64,
// i.e. up to 65 bits). Both exceed a uint64, so this package borrows
// uint256.Int as a ready-made wide integer rather than
// hand-rolling a hi/lo uint64 pair with manual carry propagation.
//
// Coefficients of the GF(2) polynomial are the bits of the integer;
// XOR is addition, and Lsh by k is multiplication by x^k.
type wideInt struct {
	v uint256.Int
}

func newWideFromElement(e uint64) *wideInt {
	w := &wideInt{}
	w.v.SetUint64(e)
	return w
}

// setBit sets bit i (the x^i coefficient) and returns w for chaining.
func (w *wideInt) setBit(i uint) *wideInt {
	var bit uint256.Int
	bit.SetOne()
	bit.Lsh(&bit, i)
	w.v.Or(&w.v, &bit)
	return w
}

// degree returns the index of the highest set bit, or -1 if w is zero.
func (w *wideInt) degree() int {
	return w.v.BitLen() - 1
}

// xorShifted XORs other<<shift into w in place.
func (w *wideInt) xorShifted(other *wideInt, shift uint) {
	var shifted uint256.Int
	shifted.Lsh(&other.v, shift)
	w.v.Xor(&w.v, &shifted)
}

// low64 returns the low 64 bits of w.
func (w *wideInt) low64() uint64 {
	return w.v.Uint64()
}

// clmul computes the carry-less (XOR) product of two field elements as a
// wideInt. Implemented as a software shift-and-XOR loop over the set bits
// of b: spec.md section 4.1 notes that a true O(1) carry-less multiply
// needs a hardware CLMUL instruction, which is explicitly out of scope
// (section 1, "SIMD/carry-less-multiply accelerators"); this is the
// portable fallback for hardware that lacks one.
func clmul(a, b uint64) *wideInt {
	prod := &wideInt{}
	if a == 0 || b == 0 {
		return prod
	}
	wa := newWideFromElement(a)
	for i := uint(0); i < 64; i++ {
		if (b>>i)&1 == 1 {
			prod.xorShifted(wa, i)
		}
	}
	return prod
}

// mulBarrett computes a*b by forming the full carry-less product and
// folding it down against the field's defining polynomial (x^p +
// reduceLow), one leading term at a time. This is the "folded reduction"
// variant of spec.md section 4.1.3's strategy 3: rather than a single
// precomputed magic-constant reciprocal, each iteration XORs in the
// defining polynomial shifted to cancel the product's current leading
// bit, which needs at most p-1 iterations (one per bit above degree p)
// instead of naive multiplication's p bit-serial steps -- and, crucially,
// it lets the field support p up to 64 without a 2^p-entry table.
func (f *Field) mulBarrett(a, b Element) Element {
	a &= f.mask
	b &= f.mask
	prod := clmul(a, b)
	p := int(f.p)
	for prod.degree() >= p {
		prod.xorShifted(f.polyFull, uint(prod.degree()-p))
	}
	return prod.low64() & f.mask
}
