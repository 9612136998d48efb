// Package polynomial implements value-like polynomial operations over a
// field.Field: evaluation, addition, multiplication, scaling, long
// division, the formal derivative, and the handful of helpers the rs
// package's Reed-Solomon pipeline builds on (root construction, GCD,
// Vandermonde rows). Coefficients are stored in ascending degree order
// (index i holds the coefficient of x^i). Every function returns
// a new slice; none mutate their inputs.
package polynomial

import "github.com/galoisfield/rscodec/field"

// Poly is a polynomial over a field.Field, coefficients in ascending
// degree order: p[i] is the coefficient of x^i.
type Poly []field.Element

// Degree returns the index of the highest non-zero coefficient, or -1
// for the zero polynomial (including an empty Poly).
func Degree(p Poly) int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] != 0 {
			return i
		}
	}
	return -1
}

// Normalize trims trailing zero coefficients (i.e. leading zero terms in
// descending-degree terms) so the polynomial has no unnecessary
// high-order zeros. The zero polynomial normalizes to Poly{0}.
func Normalize(p Poly) Poly {
	deg := Degree(p)
	if deg < 0 {
		return Poly{0}
	}
	out := make(Poly, deg+1)
	copy(out, p[:deg+1])
	return out
}

// Eval evaluates p(x) at x via Horner's rule, O(deg p).
func Eval(f *field.Field, p Poly, x field.Element) field.Element {
	if len(p) == 0 {
		return 0
	}
	result := p[len(p)-1]
	for i := len(p) - 2; i >= 0; i-- {
		result = f.Add(f.Mul(result, x), p[i])
	}
	return result
}

// Add returns p + q, extended to the longer operand's length. Addition
// over GF(2^p) is coefficient-wise XOR.
func Add(f *field.Field, p, q Poly) Poly {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	out := make(Poly, n)
	for i := 0; i < len(p); i++ {
		out[i] = f.Add(out[i], p[i])
	}
	for i := 0; i < len(q); i++ {
		out[i] = f.Add(out[i], q[i])
	}
	return out
}

// Mul returns p * q via schoolbook multiplication, O(deg p * deg q).
func Mul(f *field.Field, p, q Poly) Poly {
	if len(p) == 0 || len(q) == 0 {
		return nil
	}
	out := make(Poly, len(p)+len(q)-1)
	for i, a := range p {
		if a == 0 {
			continue
		}
		for j, b := range q {
			out[i+j] = f.Add(out[i+j], f.Mul(a, b))
		}
	}
	return out
}

// Scale returns c * p, every coefficient of p multiplied by the scalar c.
func Scale(f *field.Field, p Poly, c field.Element) Poly {
	out := make(Poly, len(p))
	for i, a := range p {
		out[i] = f.Mul(a, c)
	}
	return out
}

// TruncatedMul returns p*q truncated to its low maxLen coefficients
// (i.e. (p*q) mod x^maxLen). Used to compute the error evaluator
// polynomial Omega(x) = S(x)*Lambda(x) mod x^ECC without materializing
// the full product.
func TruncatedMul(f *field.Field, p, q Poly, maxLen int) Poly {
	full := Mul(f, p, q)
	if len(full) > maxLen {
		return full[:maxLen]
	}
	return full
}

// Div divides a by b, returning (quotient, remainder) such that
// a == quotient*b + remainder and deg(remainder) < deg(b). b must not be
// the zero polynomial.
func Div(f *field.Field, a, b Poly) (quotient, remainder Poly) {
	bDeg := Degree(b)
	if bDeg < 0 {
		return nil, nil
	}
	aDeg := Degree(a)
	if aDeg < bDeg {
		rem := make(Poly, len(a))
		copy(rem, a)
		return Poly{0}, Normalize(rem)
	}

	rem := make(Poly, len(a))
	copy(rem, a)
	quot := make(Poly, aDeg-bDeg+1)
	bLead := b[bDeg]
	bLeadInv := f.Inverse(bLead)

	for i := aDeg; i >= bDeg; i-- {
		if rem[i] == 0 {
			continue
		}
		coeff := f.Mul(rem[i], bLeadInv)
		quot[i-bDeg] = coeff
		for j := 0; j <= bDeg; j++ {
			rem[i-bDeg+j] = f.Add(rem[i-bDeg+j], f.Mul(coeff, b[j]))
		}
	}
	return quot, Normalize(rem[:bDeg+1])
}

// Mod returns a mod b (the remainder of Div), computed directly without
// allocating a quotient slice. Used by systematic encoding, where only
// the remainder (the parity symbols) is needed.
func Mod(f *field.Field, a, b Poly) Poly {
	bDeg := Degree(b)
	if bDeg < 0 {
		return nil
	}
	rem := make(Poly, len(a))
	copy(rem, a)
	bLead := b[bDeg]
	bLeadInv := f.Inverse(bLead)

	remDeg := Degree(rem)
	for remDeg >= bDeg {
		coeff := f.Mul(rem[remDeg], bLeadInv)
		for j := 0; j <= bDeg; j++ {
			rem[remDeg-bDeg+j] = f.Add(rem[remDeg-bDeg+j], f.Mul(coeff, b[j]))
		}
		remDeg = Degree(rem)
	}
	if bDeg > len(rem) {
		return rem
	}
	return rem[:bDeg]
}

// GCD returns the greatest common divisor of a and b via the Euclidean
// algorithm.
func GCD(f *field.Field, a, b Poly) Poly {
	a = Normalize(a)
	b = Normalize(b)
	for Degree(b) >= 0 && !(len(b) == 1 && b[0] == 0) {
		_, r := Div(f, a, b)
		a, b = b, r
	}
	return Normalize(a)
}

// Derivative computes the formal derivative of p. Over GF(2^p) the
// characteristic is 2, so d/dx(a_i x^i) is a_i x^(i-1) when i is odd and
// 0 when i is even -- odd-degree terms survive, even-degree terms
// vanish, since "i * a_i" means XOR-ing a_i with itself i times.
func Derivative(p Poly) Poly {
	if len(p) <= 1 {
		return nil
	}
	out := make(Poly, len(p)-1)
	for i := 1; i < len(p); i++ {
		if i%2 == 1 {
			out[i-1] = p[i]
		}
	}
	return Normalize(out)
}

// FromRoots constructs the monic polynomial (x - r0)(x - r1)...(x -
// r_{n-1}) with the given roots. Subtraction equals addition over
// GF(2^p), so each factor is represented as {r_i, 1}.
func FromRoots(f *field.Field, roots []field.Element) Poly {
	if len(roots) == 0 {
		return Poly{1}
	}
	p := Poly{roots[0], 1}
	for _, r := range roots[1:] {
		p = Mul(f, p, Poly{r, 1})
	}
	return p
}

// VandermondeRow returns [1, x, x^2, ..., x^(n-1)].
func VandermondeRow(f *field.Field, x field.Element, n int) []field.Element {
	if n <= 0 {
		return nil
	}
	row := make([]field.Element, n)
	row[0] = 1
	for i := 1; i < n; i++ {
		row[i] = f.Mul(row[i-1], x)
	}
	return row
}
