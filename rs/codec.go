// Package rs implements a systematic Reed-Solomon codec over any
// field.Field: encode, detect (IsCorrect), and three decode paths
// (CorrectErasures, CorrectErrors, and the mixed Correct) built from
// generator-polynomial division, syndrome computation, Berlekamp-Massey,
// Chien search, and Forney's formula.
//
// A buffer is a []field.Element of length n in [ecc+1, data+ecc]. The
// first n-ecc positions hold the message; the last ecc positions hold
// parity. Shorter-than-block buffers are shortened codes: conceptually a
// full block-length codeword with implicit leading zero message symbols,
// which is why every position-to-exponent mapping in this package uses
// the buffer's own length n rather than the codec's fixed block length --
// the two are algebraically equivalent (a shortened codeword's leading
// zero symbols never change a syndrome or locator evaluation) and using n
// directly means shortening never needs special-casing.
package rs

import (
	"github.com/galoisfield/rscodec/field"
	"github.com/galoisfield/rscodec/polynomial"
)

// Codec is a Reed-Solomon encoder/decoder bound to one field.Field and one
// (data, ecc) configuration. A Codec is safe for concurrent use: Encode
// and the Correct* methods mutate only the caller-supplied buffer, never
// the Codec's own state (metrics counters aside, which are mutex-guarded).
type Codec struct {
	f       *field.Field
	data    int
	ecc     int
	block   int
	genPoly polynomial.Poly
	metrics *codecMetrics
}

// New constructs a Codec with the given message length and parity length.
// The generator polynomial, with roots at f.ExpGenerator(0) ..
// f.ExpGenerator(ecc-1), is computed once here and reused by every Encode
// call.
func New(f *field.Field, data, ecc int) (*Codec, error) {
	if data < 0 || ecc <= 0 {
		return nil, ErrInvalidConfig
	}
	block := data + ecc
	if uint64(block) > f.Order() {
		return nil, ErrInvalidConfig
	}
	roots := make([]field.Element, ecc)
	for i := 0; i < ecc; i++ {
		roots[i] = f.ExpGenerator(int64(i))
	}
	return &Codec{
		f:       f,
		data:    data,
		ecc:     ecc,
		block:   block,
		genPoly: polynomial.FromRoots(f, roots),
		metrics: newCodecMetrics(),
	}, nil
}

// Data returns the codec's configured message length.
func (c *Codec) Data() int { return c.data }

// ECC returns the codec's configured parity length.
func (c *Codec) ECC() int { return c.ecc }

// Block returns the codec's maximum (unshortened) buffer length.
func (c *Codec) Block() int { return c.block }

// Shortened reports the erasure and error correction capacity available
// for a buffer of length n: up to the first return value's worth of
// erasure positions, or up to the second return value's worth of
// independent errors, can be corrected regardless of how far n falls
// below Block() -- shortening trades away message capacity, not parity
// strength, since GENERATOR_POLY's degree (and therefore the number of
// syndromes) never depends on n.
func (c *Codec) Shortened(n int) (erasureCapacity, errorCapacity int) {
	return c.ecc, c.ecc / 2
}

func (c *Codec) checkLen(n int) error {
	if n < c.ecc+1 || n > c.block {
		return ErrInvalidBufferLength
	}
	return nil
}

func validatePositions(positions []int, n int) error {
	seen := make(map[int]bool, len(positions))
	for _, j := range positions {
		if j < 0 || j >= n {
			return ErrInvalidErasurePosition
		}
		if seen[j] {
			return ErrDuplicateErasure
		}
		seen[j] = true
	}
	return nil
}

// bufToPoly reinterprets buf (index 0 = highest-degree message symbol,
// index n-1 = lowest-degree parity symbol) as an ascending-degree
// polynomial.Poly, the representation polynomial.Eval/Mod/Mul expect.
func bufToPoly(buf []field.Element) polynomial.Poly {
	n := len(buf)
	p := make(polynomial.Poly, n)
	for i, v := range buf {
		p[n-1-i] = v
	}
	return p
}

// Encode computes the parity for buf in place: buf[:len(buf)-ecc] is
// treated as the message and buf[len(buf)-ecc:] is overwritten with the
// remainder of (message shifted by x^ecc) divided by GENERATOR_POLY.
func (c *Codec) Encode(buf []field.Element) error {
	n := len(buf)
	if err := c.checkLen(n); err != nil {
		return err
	}
	msgLen := n - c.ecc
	for i := msgLen; i < n; i++ {
		buf[i] = 0
	}
	shifted := bufToPoly(buf)
	rem := polynomial.Mod(c.f, shifted, c.genPoly)

	for k := 0; k < c.ecc; k++ {
		var v field.Element
		if k < len(rem) {
			v = rem[k]
		}
		buf[n-1-k] = v
	}
	c.metrics.recordEncode()
	return nil
}

// syndromes computes S_i = C(generator^i) for i in [0, ecc), where C is
// buf reinterpreted as a polynomial via bufToPoly. All ecc syndromes are
// zero exactly when buf is a valid codeword.
func (c *Codec) syndromes(buf []field.Element) polynomial.Poly {
	p := bufToPoly(buf)
	s := make(polynomial.Poly, c.ecc)
	for i := 0; i < c.ecc; i++ {
		s[i] = polynomial.Eval(c.f, p, c.f.ExpGenerator(int64(i)))
	}
	return s
}

func allZero(p polynomial.Poly) bool {
	for _, v := range p {
		if v != 0 {
			return false
		}
	}
	return true
}

// IsCorrect reports whether buf's syndromes are all zero. A buffer whose
// length is invalid is reported as not correct rather than panicking.
func (c *Codec) IsCorrect(buf []field.Element) bool {
	if err := c.checkLen(len(buf)); err != nil {
		return false
	}
	ok := allZero(c.syndromes(buf))
	c.metrics.recordDetect(ok)
	return ok
}

// locatorXs returns, for each position j in positions, X_j =
// generator^(n-1-j): the evaluation point Forney's formula and the
// erasure/error locator polynomials are built from.
func (c *Codec) locatorXs(positions []int, n int) []field.Element {
	xs := make([]field.Element, len(positions))
	for i, j := range positions {
		xs[i] = c.f.ExpGenerator(int64(n - 1 - j))
	}
	return xs
}

// erasureLocator builds Lambda(x) = product(1 + X_j*x) over the given
// evaluation points -- the locator polynomial whose roots are exactly
// 1/X_j for each known erasure position.
func erasureLocator(f *field.Field, xs []field.Element) polynomial.Poly {
	lambda := polynomial.Poly{1}
	for _, x := range xs {
		lambda = polynomial.Mul(f, lambda, polynomial.Poly{1, x})
	}
	return lambda
}

// chienSearch finds every position j in [0, n) at which lambda has a root
// at X_j^-1, returning the matched positions and their X_j values in
// parallel slices.
func chienSearch(f *field.Field, lambda polynomial.Poly, n int) (positions []int, xs []field.Element) {
	for j := 0; j < n; j++ {
		xj := f.ExpGenerator(int64(n - 1 - j))
		if polynomial.Eval(f, lambda, f.Inverse(xj)) == 0 {
			positions = append(positions, j)
			xs = append(xs, xj)
		}
	}
	return positions, xs
}

// applyForney computes the error evaluator Omega = (syn*lambda) mod
// x^ecc and Lambda', then XORs Y_j = X_j * Omega(X_j^-1) / Lambda'(X_j^-1)
// into buf[j] for each (position, X) pair. The X_j factor comes from the
// syndromes starting at generator^0.
func (c *Codec) applyForney(buf []field.Element, syn, lambda polynomial.Poly, positions []int, xs []field.Element) error {
	omega := polynomial.TruncatedMul(c.f, syn, lambda, c.ecc)
	lambdaPrime := polynomial.Derivative(lambda)
	for i, j := range positions {
		xInv := c.f.Inverse(xs[i])
		lpVal := polynomial.Eval(c.f, lambdaPrime, xInv)
		if lpVal == 0 {
			return ErrInconsistentResult
		}
		omegaVal := polynomial.Eval(c.f, omega, xInv)
		y := c.f.Mul(xs[i], c.f.Mul(omegaVal, c.f.Inverse(lpVal)))
		buf[j] = c.f.Add(buf[j], y)
	}
	return nil
}

// CorrectErasures repairs buf at the given known-bad positions using only
// the erasure locator and Forney's formula -- no Berlekamp-Massey search
// is needed because the positions are already known. Succeeds whenever
// len(positions) <= ecc and the buffer was otherwise undamaged.
func (c *Codec) CorrectErasures(buf []field.Element, positions []int) (count int, err error) {
	n := len(buf)
	if err := c.checkLen(n); err != nil {
		return 0, err
	}
	if len(positions) > c.ecc {
		c.metrics.recordCorrect(decodeErasures, 0, ErrTooManyErasures)
		return 0, ErrTooManyErasures
	}
	if err := validatePositions(positions, n); err != nil {
		return 0, err
	}

	syn := c.syndromes(buf)
	xs := c.locatorXs(positions, n)
	lambda := erasureLocator(c.f, xs)

	if err := c.applyForney(buf, syn, lambda, positions, xs); err != nil {
		c.metrics.recordCorrect(decodeErasures, 0, err)
		return 0, err
	}
	if !c.IsCorrect(buf) {
		c.metrics.recordCorrect(decodeErasures, 0, ErrInconsistentResult)
		return 0, ErrInconsistentResult
	}
	c.metrics.recordCorrect(decodeErasures, len(positions), nil)
	return len(positions), nil
}

// CorrectErrors locates and repairs up to ecc/2 errors at unknown
// positions via Berlekamp-Massey, Chien search, and Forney's formula.
// Returns the number of errors found and corrected.
func (c *Codec) CorrectErrors(buf []field.Element) (count int, err error) {
	n := len(buf)
	if err := c.checkLen(n); err != nil {
		return 0, err
	}
	syn := c.syndromes(buf)
	if allZero(syn) {
		return 0, nil
	}

	lambda := berlekampMassey(c.f, syn)
	e := polynomial.Degree(lambda)
	if e < 0 {
		e = 0
	}
	if e > c.ecc/2 {
		c.metrics.recordCorrect(decodeErrors, 0, ErrTooManyErrors)
		return 0, ErrTooManyErrors
	}

	positions, xs := chienSearch(c.f, lambda, n)
	if len(positions) != e {
		c.metrics.recordCorrect(decodeErrors, 0, ErrTooManyErrors)
		return 0, ErrTooManyErrors
	}

	if err := c.applyForney(buf, syn, lambda, positions, xs); err != nil {
		c.metrics.recordCorrect(decodeErrors, 0, err)
		return 0, err
	}
	if !c.IsCorrect(buf) {
		c.metrics.recordCorrect(decodeErrors, 0, ErrInconsistentResult)
		return 0, ErrInconsistentResult
	}
	c.metrics.recordCorrect(decodeErrors, e, nil)
	return e, nil
}

// Correct repairs buf given a set of known erasure positions plus any
// number of additional unknown errors, as long as 2*errors +
// len(positions) <= ecc. It seeds Berlekamp-Massey with the erasure
// locator and the Forney-modified syndromes (the erasure contribution
// divided out), then combines the resulting error-only locator with the
// erasure locator before running Chien search and Forney correction over
// the full position set.
func (c *Codec) Correct(buf []field.Element, positions []int) (count int, err error) {
	n := len(buf)
	if err := c.checkLen(n); err != nil {
		return 0, err
	}
	s := len(positions)
	if s > c.ecc {
		c.metrics.recordCorrect(decodeMixed, 0, ErrTooManyErasures)
		return 0, ErrTooManyErasures
	}
	if err := validatePositions(positions, n); err != nil {
		return 0, err
	}

	syn := c.syndromes(buf)
	xs := c.locatorXs(positions, n)
	lambdaErasure := erasureLocator(c.f, xs)

	forneySyn := forneyModifiedSyndromes(c.f, syn, lambdaErasure, s, c.ecc)

	lambdaError := berlekampMassey(c.f, forneySyn)
	e := polynomial.Degree(lambdaError)
	if e < 0 {
		e = 0
	}
	if e > (c.ecc-s)/2 {
		c.metrics.recordCorrect(decodeMixed, 0, ErrTooManyErrors)
		return 0, ErrTooManyErrors
	}

	lambdaTotal := polynomial.Mul(c.f, lambdaErasure, lambdaError)
	allPositions, allXs := chienSearch(c.f, lambdaTotal, n)
	if len(allPositions) != s+e {
		c.metrics.recordCorrect(decodeMixed, 0, ErrTooManyErrors)
		return 0, ErrTooManyErrors
	}

	if err := c.applyForney(buf, syn, lambdaTotal, allPositions, allXs); err != nil {
		c.metrics.recordCorrect(decodeMixed, 0, err)
		return 0, err
	}
	if !c.IsCorrect(buf) {
		c.metrics.recordCorrect(decodeMixed, 0, ErrInconsistentResult)
		return 0, ErrInconsistentResult
	}
	c.metrics.recordCorrect(decodeMixed, len(allPositions), nil)
	return len(allPositions), nil
}

// forneyModifiedSyndromes returns the ecc-s coefficients that an
// error-only locator must satisfy: T(x) = (lambdaErasure*syn) mod x^ecc,
// with its low s coefficients (the known-erasure contribution) dropped.
func forneyModifiedSyndromes(f *field.Field, syn, lambdaErasure polynomial.Poly, s, ecc int) polynomial.Poly {
	t := polynomial.TruncatedMul(f, lambdaErasure, syn, ecc)
	out := make(polynomial.Poly, ecc-s)
	for i := range out {
		if i+s < len(t) {
			out[i] = t[i+s]
		}
	}
	return out
}
