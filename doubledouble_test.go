// Copyright (c) 2026 ktnk. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.23
//

package godatum_test

import (
	"math"
	"testing"

	m "github.com/ktnk/godatum"
)

func TestDecimalErrorTerm(t *testing.T) {
	// 0.5 is exact in binary: no error term.
	if d := m.Decimal(0.5); d.E != 0 {
		t.Errorf("Decimal(0.5).E = %v, want 0", d.E)
	}
	// 0.1 is not: the error term recovers the decimal value.
	d := m.Decimal(0.1)
	if d.E == 0 {
		t.Fatalf("Decimal(0.1).E = 0, want a non-zero correction")
	}
	if math.Abs(d.E) >= math.Nextafter(0.1, 1)-0.1 {
		t.Errorf("Decimal(0.1).E = %v, want less than one ulp", d.E)
	}
	if d := m.Decimal(0); d.V != 0 || d.E != 0 {
		t.Errorf("Decimal(0) = %+v, want zero", d)
	}
}

func TestAddRecoversDecimalSum(t *testing.T) {
	// 0.1 + 0.1 + 0.1 in plain float64 misses 0.3; in double-double with
	// decimal error terms the sum rounds back to float64(0.3).
	x := m.Decimal(0.1)
	got := x.Add(x).Add(x).Float()
	if got != 0.3 {
		t.Errorf("0.1+0.1+0.1 = %v, want %v", got, 0.3)
	}
	f := 0.1
	if s := f + f + f; s == 0.3 {
		t.Fatalf("float64 sum unexpectedly exact; test is vacuous")
	}
}

func TestMulRecoversDecimalProduct(t *testing.T) {
	got := m.Decimal(0.1).Mul(m.Decimal(0.1)).Float()
	if got != 0.01 {
		t.Errorf("0.1*0.1 = %v, want %v", got, 0.01)
	}
}

func TestDivMulRoundTrip(t *testing.T) {
	third := m.NewDD(1).Div(m.NewDD(3))
	got := third.Mul(m.NewDD(3)).Float()
	if math.Abs(got-1) > 1e-15 {
		t.Errorf("(1/3)*3 = %v, want 1", got)
	}
}

func TestSqrt(t *testing.T) {
	r := m.NewDD(2).Sqrt()
	if r.V != math.Sqrt2 {
		t.Errorf("sqrt(2).V = %v, want %v", r.V, math.Sqrt2)
	}
	back := r.Square().Float()
	if math.Abs(back-2) > 1e-15 {
		t.Errorf("sqrt(2)^2 = %v, want 2", back)
	}
	if r := m.NewDD(0).Sqrt(); !r.IsZero() {
		t.Errorf("sqrt(0) = %+v, want zero", r)
	}
}

func TestScalbNeg(t *testing.T) {
	d := m.Decimal(0.1).Scalb(1)
	if d.V != 0.2 {
		t.Errorf("Scalb(0.1, 1).V = %v, want 0.2", d.V)
	}
	n := d.Neg()
	if n.V != -0.2 || n.E != -d.E {
		t.Errorf("Neg = %+v, want negated %+v", n, d)
	}
}
