// Copyright (c) 2026 ktnk. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.23
//

package godatum

//---- LinearUnit ----

// LinearUnit is a unit of length described by its name and the factor to
// metres. Units with the same factor are interchangeable.
type LinearUnit struct {
	Name    string
	ToMetre float64
}

var (
	Metre        = LinearUnit{"metre", 1}
	Kilometre    = LinearUnit{"kilometre", 1000}
	Foot         = LinearUnit{"foot", 0.3048}
	USSurveyFoot = LinearUnit{"US survey foot", 12.0 / 39.37}
	ClarkeFoot   = LinearUnit{"Clarke's foot", 0.3047972654}
)

// Factor returns the multiplier converting values in u to values in to.
func (u LinearUnit) Factor(to LinearUnit) float64 {
	if u.ToMetre == to.ToMetre {
		return 1
	}
	return u.ToMetre / to.ToMetre
}

// Convert converts v expressed in u into the target unit.
// Identity conversions return v unchanged, without rounding.
func (u LinearUnit) Convert(v float64, to LinearUnit) float64 {
	f := u.Factor(to)
	if f == 1 {
		return v
	}
	return v * f
}

// Equivalent reports whether two units represent the same length.
func (u LinearUnit) Equivalent(o LinearUnit) bool {
	return u.ToMetre == o.ToMetre
}
