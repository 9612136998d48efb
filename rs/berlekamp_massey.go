package rs

import (
	"github.com/galoisfield/rscodec/field"
	"github.com/galoisfield/rscodec/polynomial"
)

// berlekampMassey finds the shortest linear feedback shift register that
// generates the given syndrome sequence, i.e. the minimal-degree error
// (or, when seeded via the mixed path's Forney-modified syndromes,
// error-only) locator polynomial consistent with it. This is the
// textbook formulation of the Berlekamp-Massey algorithm, parameterized
// over a field.Field instead of a fixed GF(2^8).
func berlekampMassey(f *field.Field, syndromes polynomial.Poly) polynomial.Poly {
	lambda := polynomial.Poly{1}
	b := polynomial.Poly{1}
	l := 0
	m := 1
	deltaPrev := field.Element(1)

	for i := 0; i < len(syndromes); i++ {
		delta := syndromes[i]
		for j := 1; j <= l && j < len(lambda); j++ {
			delta = f.Add(delta, f.Mul(lambda[j], syndromes[i-j]))
		}

		if delta == 0 {
			m++
			continue
		}

		scale := f.Mul(delta, f.Inverse(deltaPrev))
		correction := shiftPoly(polynomial.Scale(f, b, scale), m)

		if 2*l <= i {
			prevLambda := lambda
			lambda = polynomial.Add(f, lambda, correction)
			l = i + 1 - l
			b = prevLambda
			deltaPrev = delta
			m = 1
		} else {
			lambda = polynomial.Add(f, lambda, correction)
			m++
		}
	}
	return polynomial.Normalize(lambda)
}

// shiftPoly returns p multiplied by x^m (m leading zero coefficients
// prepended in ascending-degree order).
func shiftPoly(p polynomial.Poly, m int) polynomial.Poly {
	out := make(polynomial.Poly, len(p)+m)
	copy(out[m:], p)
	return out
}
