package polynomial

import (
	"reflect"
	"testing"

	"github.com/galoisfield/rscodec/field"
)

func testField(t *testing.T) *field.Field {
	t.Helper()
	f, err := field.New(8, 0x1d, 2)
	if err != nil {
		t.Fatalf("field.New failed: %v", err)
	}
	return f
}

func TestDegree(t *testing.T) {
	cases := []struct {
		p    Poly
		want int
	}{
		{nil, -1},
		{Poly{0}, -1},
		{Poly{0, 0, 0}, -1},
		{Poly{1}, 0},
		{Poly{0, 1}, 1},
		{Poly{5, 0, 3, 0}, 2},
	}
	for _, c := range cases {
		if got := Degree(c.p); got != c.want {
			t.Errorf("Degree(%v) = %d, want %d", c.p, got, c.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got, want := Normalize(Poly{1, 2, 0, 0}), (Poly{1, 2}); !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize = %v, want %v", got, want)
	}
	if got, want := Normalize(Poly{0, 0, 0}), (Poly{0}); !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize(zero) = %v, want %v", got, want)
	}
}

func TestEval(t *testing.T) {
	f := testField(t)
	// p(x) = 1 + x, evaluated at x=1 gives 1 XOR 1 = 0.
	p := Poly{1, 1}
	if got := Eval(f, p, 1); got != 0 {
		t.Errorf("Eval(1+x, 1) = %d, want 0", got)
	}
	// p(x) = 1 (constant), evaluates to 1 everywhere.
	if got := Eval(f, Poly{1}, 200); got != 1 {
		t.Errorf("Eval(const 1, 200) = %d, want 1", got)
	}
	if got := Eval(f, nil, 5); got != 0 {
		t.Errorf("Eval(nil, 5) = %d, want 0", got)
	}
}

func TestAdd(t *testing.T) {
	f := testField(t)
	got := Add(f, Poly{1, 2, 3}, Poly{4, 5})
	want := Poly{1 ^ 4, 2 ^ 5, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Add = %v, want %v", got, want)
	}
}

func TestMulAgainstEval(t *testing.T) {
	f := testField(t)
	p := Poly{3, 1} // 3 + x
	q := Poly{5, 0, 2}
	prod := Mul(f, p, q)
	for _, x := range []field.Element{0, 1, 7, 200} {
		got := Eval(f, prod, x)
		want := f.Mul(Eval(f, p, x), Eval(f, q, x))
		if got != want {
			t.Errorf("Eval(Mul(p,q), %d) = %d, want %d", x, got, want)
		}
	}
}

func TestScale(t *testing.T) {
	f := testField(t)
	p := Poly{1, 2, 3}
	c := field.Element(9)
	got := Scale(f, p, c)
	for i, v := range p {
		if got[i] != f.Mul(v, c) {
			t.Errorf("Scale coefficient %d = %d, want %d", i, got[i], f.Mul(v, c))
		}
	}
}

func TestDivReconstructsDividend(t *testing.T) {
	f := testField(t)
	a := Poly{7, 200, 9, 1, 55}
	b := Poly{1, 1, 1} // x^2 + x + 1

	quot, rem := Div(f, a, b)
	if Degree(rem) >= Degree(b) {
		t.Fatalf("remainder degree %d not < divisor degree %d", Degree(rem), Degree(b))
	}
	reconstructed := Add(f, Mul(f, quot, b), rem)
	if got, want := Normalize(reconstructed), Normalize(a); !reflect.DeepEqual(got, want) {
		t.Errorf("quotient*divisor + remainder = %v, want %v", got, want)
	}
}

func TestDivDividendSmallerThanDivisor(t *testing.T) {
	f := testField(t)
	a := Poly{9}
	b := Poly{1, 1, 1}
	quot, rem := Div(f, a, b)
	if Degree(quot) != -1 && !(len(quot) == 1 && quot[0] == 0) {
		t.Errorf("quotient = %v, want zero polynomial", quot)
	}
	if got, want := Normalize(rem), Normalize(a); !reflect.DeepEqual(got, want) {
		t.Errorf("remainder = %v, want %v", got, want)
	}
}

func TestModMatchesDivRemainder(t *testing.T) {
	f := testField(t)
	a := Poly{7, 200, 9, 1, 55, 3}
	b := Poly{2, 0, 1, 1}
	_, remFromDiv := Div(f, a, b)
	remFromMod := Mod(f, a, b)
	if got, want := Normalize(remFromMod), Normalize(remFromDiv); !reflect.DeepEqual(got, want) {
		t.Errorf("Mod = %v, want %v (from Div)", got, want)
	}
}

func TestTruncatedMul(t *testing.T) {
	f := testField(t)
	p := Poly{1, 2, 3}
	q := Poly{4, 5, 6}
	full := Mul(f, p, q)
	got := TruncatedMul(f, p, q, 3)
	if !reflect.DeepEqual(got, full[:3]) {
		t.Errorf("TruncatedMul = %v, want %v", got, full[:3])
	}
}

func TestDerivative(t *testing.T) {
	// p(x) = c0 + c1*x + c2*x^2 + c3*x^3 + c4*x^4
	// d/dx: c1 survives (odd index 1), c2 vanishes (even), c3 survives, c4 vanishes.
	p := Poly{9, 1, 2, 3, 4}
	got := Derivative(p)
	want := Poly{1, 0, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Derivative(%v) = %v, want %v", p, got, want)
	}
	if got := Derivative(Poly{5}); got != nil {
		t.Errorf("Derivative(constant) = %v, want nil", got)
	}
}

func TestFromRootsEvaluatesToZeroAtEachRoot(t *testing.T) {
	f := testField(t)
	roots := []field.Element{1, 7, 200, 55}
	p := FromRoots(f, roots)
	if Degree(p) != len(roots) {
		t.Fatalf("Degree(FromRoots) = %d, want %d", Degree(p), len(roots))
	}
	for _, r := range roots {
		if got := Eval(f, p, r); got != 0 {
			t.Errorf("Eval(FromRoots(roots), %d) = %d, want 0", r, got)
		}
	}
	if got := Eval(f, p, 2); got == 0 {
		t.Error("polynomial unexpectedly vanished at a non-root")
	}
}

func TestFromRootsEmpty(t *testing.T) {
	f := testField(t)
	p := FromRoots(f, nil)
	if !reflect.DeepEqual(p, Poly{1}) {
		t.Errorf("FromRoots(nil) = %v, want {1}", p)
	}
}

func TestGCDOfCoprimeIsUnit(t *testing.T) {
	f := testField(t)
	a := FromRoots(f, []field.Element{1, 2})
	b := FromRoots(f, []field.Element{3, 4})
	g := GCD(f, a, b)
	if Degree(g) != 0 {
		t.Errorf("GCD of coprime polynomials has degree %d, want 0", Degree(g))
	}
}

func TestGCDWithSharedRoot(t *testing.T) {
	f := testField(t)
	shared := FromRoots(f, []field.Element{9})
	a := Mul(f, shared, FromRoots(f, []field.Element{1, 2}))
	b := Mul(f, shared, FromRoots(f, []field.Element{3}))
	g := GCD(f, a, b)
	if Degree(g) != 1 {
		t.Fatalf("GCD degree = %d, want 1", Degree(g))
	}
	if got := Eval(f, g, 9); got != 0 {
		t.Errorf("shared root 9 does not evaluate to 0 on GCD: got %d", got)
	}
}

func TestVandermondeRow(t *testing.T) {
	f := testField(t)
	row := VandermondeRow(f, 3, 4)
	want := []field.Element{1, 3, f.Mul(3, 3), f.Mul(f.Mul(3, 3), 3)}
	if !reflect.DeepEqual(row, want) {
		t.Errorf("VandermondeRow = %v, want %v", row, want)
	}
	if VandermondeRow(f, 3, 0) != nil {
		t.Error("VandermondeRow with n=0 should be nil")
	}
}
