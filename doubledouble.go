// Copyright (c) 2026 ktnk. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.23
//

package godatum

import (
	"math"
	"math/big"
	"strconv"
)

//---- DD ----

// DD is a double-double number: an unevaluated sum of two float64 where E is
// the rounding error of V, giving roughly 106 bits of significand.
// Algorithms follow Hida, Li and Bailey, "Library for Double-Double and
// Quad-Double Arithmetic" (2007), with products computed through math.FMA.
type DD struct {
	V float64 // Main value
	E float64 // Error term to be added to V
}

func NewDD(v float64) DD {
	return DD{V: v}
}

// Decimal returns v with the error term inferred from its shortest decimal
// representation. Values written in base 10 (definitional constants, published
// parameter values) are presumed exact in base 10, so the error is the
// difference between that decimal value and its float64 rounding.
func Decimal(v float64) DD {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return DD{V: v}
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	f, _, err := big.ParseFloat(s, 10, 120, big.ToNearestEven)
	if err != nil {
		return DD{V: v}
	}
	e, _ := new(big.Float).Sub(f, big.NewFloat(v)).Float64()
	return DD{V: v, E: e}
}

// ddSecToRad is the arc-seconds to radians factor in double-double precision.
var ddSecToRad = DD{V: SecToRad, E: SecToRadErr}

var ddOne = DD{V: 1}

// quickSum is the error-free transform for |a| >= |b|.
func quickSum(a, b float64) DD {
	v := a + b
	return DD{V: v, E: b - (v - a)}
}

// ddSum is the error-free sum of two arbitrary float64.
func ddSum(a, b float64) DD {
	v := a + b
	t := v - a
	return DD{V: v, E: (a - (v - t)) + (b - t)}
}

// ddProduct is the error-free product of two float64.
func ddProduct(a, b float64) DD {
	v := a * b
	return DD{V: v, E: math.FMA(a, b, -v)}
}

func (d DD) Float() float64 {
	return d.V + d.E
}

func (d DD) IsZero() bool {
	return d.V == 0 && d.E == 0
}

func (d DD) Neg() DD {
	return DD{V: -d.V, E: -d.E}
}

func (d DD) Scalb(n int) DD {
	return DD{V: math.Ldexp(d.V, n), E: math.Ldexp(d.E, n)}
}

func (d DD) Add(o DD) DD {
	s := ddSum(d.V, o.V)
	s.E += d.E + o.E
	return quickSum(s.V, s.E)
}

func (d DD) Sub(o DD) DD {
	return d.Add(o.Neg())
}

func (d DD) Mul(o DD) DD {
	v := d.V * o.V
	e := math.FMA(d.V, o.V, -v)
	e = math.FMA(o.E, d.V, e)
	e = math.FMA(o.V, d.E, e)
	return quickSum(v, e)
}

func (d DD) Square() DD {
	return d.Mul(d)
}

func (d DD) Div(o DD) DD {
	q := d.V / o.V
	pe := math.FMA(q, o.V, -d.V)
	pe = math.FMA(q, o.E, pe)
	pv := d.V + pe
	s := d.V - pv
	pe += s
	v := s - d.V
	e := (d.V - (s - v)) - (pv + v) + (d.E - pe)
	return quickSum(q, (s+e)/o.V)
}

// Sqrt uses one Newton step on the float64 square root:
// sqrt(d) ~ r + (d - r*r) / (2r) with r = sqrt(d.V).
func (d DD) Sqrt() DD {
	if d.V == 0 {
		return DD{}
	}
	r := math.Sqrt(d.V)
	t := ddProduct(r, r)
	t = d.Sub(t)
	t = t.Div(DD{V: 2 * r})
	return quickSum(r, t.V+t.E)
}
