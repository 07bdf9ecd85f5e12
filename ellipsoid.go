// Copyright (c) 2026 ktnk. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.23
//

package godatum

import (
	"fmt"
	"math"
)

//---- Ellipsoid ----

// Ellipsoid is a reference ellipsoid defined either by its two axis lengths
// or by the semi-major axis and inverse flattening. Whichever pair was given
// at construction is the defining one; the other value is derived and kept
// for fast access. Immutable after construction.
type Ellipsoid struct {
	name          string
	semiMajor     float64
	semiMinor     float64
	inverseFlat   float64
	ivfDefinitive bool
	unit          LinearUnit
}

// NewEllipsoid creates an ellipsoid from its axis lengths. The inverse
// flattening is derived (infinite for a sphere).
func NewEllipsoid(name string, semiMajor, semiMinor float64, unit LinearUnit) (*Ellipsoid, error) {
	if !(semiMajor > 0) || math.IsInf(semiMajor, 0) {
		return nil, fmt.Errorf("semi-major axis is %v, want a positive finite value", semiMajor)
	}
	if !(semiMinor > 0) || math.IsInf(semiMinor, 0) {
		return nil, fmt.Errorf("semi-minor axis is %v, want a positive finite value", semiMinor)
	}
	if semiMinor > semiMajor {
		return nil, fmt.Errorf("semi-minor axis %v exceeds semi-major axis %v", semiMinor, semiMajor)
	}
	ivf := math.Inf(1)
	if semiMajor != semiMinor {
		ivf = semiMajor / (semiMajor - semiMinor)
	}
	return &Ellipsoid{
		name:        name,
		semiMajor:   semiMajor,
		semiMinor:   semiMinor,
		inverseFlat: ivf,
		unit:        unit,
	}, nil
}

// NewFlattenedSphere creates an ellipsoid from the semi-major axis and the
// inverse flattening. An infinite inverse flattening gives a sphere.
func NewFlattenedSphere(name string, semiMajor, inverseFlat float64, unit LinearUnit) (*Ellipsoid, error) {
	if !(semiMajor > 0) || math.IsInf(semiMajor, 0) {
		return nil, fmt.Errorf("semi-major axis is %v, want a positive finite value", semiMajor)
	}
	if !(inverseFlat >= 1) {
		return nil, fmt.Errorf("inverse flattening is %v, want a value >= 1", inverseFlat)
	}
	semiMinor := semiMajor
	if !math.IsInf(inverseFlat, 1) {
		semiMinor = semiMajor * (1 - 1/inverseFlat)
	}
	return &Ellipsoid{
		name:          name,
		semiMajor:     semiMajor,
		semiMinor:     semiMinor,
		inverseFlat:   inverseFlat,
		ivfDefinitive: true,
		unit:          unit,
	}, nil
}

// NewSphere creates a sphere of the given radius.
func NewSphere(name string, radius float64, unit LinearUnit) (*Ellipsoid, error) {
	return NewEllipsoid(name, radius, radius, unit)
}

func (e *Ellipsoid) Name() string           { return e.name }
func (e *Ellipsoid) SemiMajorAxis() float64 { return e.semiMajor }
func (e *Ellipsoid) SemiMinorAxis() float64 { return e.semiMinor }
func (e *Ellipsoid) AxisUnit() LinearUnit   { return e.unit }
func (e *Ellipsoid) IsIvfDefinitive() bool  { return e.ivfDefinitive }
func (e *Ellipsoid) IsSphere() bool         { return e.semiMajor == e.semiMinor }

// InverseFlattening returns 1/f, infinite for a sphere.
func (e *Ellipsoid) InverseFlattening() float64 {
	return e.inverseFlat
}

// flattening computes f from the defining parameter in double-double
// precision. Published values are decimal-definitive.
func (e *Ellipsoid) flattening() DD {
	if e.ivfDefinitive {
		return ddOne.Div(Decimal(e.inverseFlat))
	}
	a := Decimal(e.semiMajor)
	return a.Sub(Decimal(e.semiMinor)).Div(a)
}

// Flattening returns (a-b)/a derived from the defining parameter.
func (e *Ellipsoid) Flattening() float64 {
	return e.flattening().Float()
}

// EccentricitySquared returns the first eccentricity squared, 2f - f².
func (e *Ellipsoid) EccentricitySquared() float64 {
	f := e.flattening()
	return f.Scalb(1).Sub(f.Square()).Float()
}

// Eccentricity returns the first eccentricity, sqrt(2f - f²).
func (e *Ellipsoid) Eccentricity() float64 {
	f := e.flattening()
	return f.Scalb(1).Sub(f.Square()).Sqrt().Float()
}

// AuthalicRadius returns the radius of the sphere having the same surface
// area as this ellipsoid, in the axis unit.
func (e *Ellipsoid) AuthalicRadius() float64 {
	a := e.semiMajor
	b := e.semiMinor
	if a == b {
		return a
	}
	f := 1 - b/a
	ecc := math.Sqrt(f * (2 - f))
	return math.Sqrt(0.5 * (a*a + b*b*math.Atanh(ecc)/ecc))
}

// GeocentricRadius returns the distance from the centre to the surface at
// the given geodetic latitude [deg], in the axis unit. Exact at the equator
// and at the poles; NaN latitude gives NaN.
func (e *Ellipsoid) GeocentricRadius(latDeg float64) float64 {
	if math.IsNaN(latDeg) {
		return math.NaN()
	}
	switch latDeg {
	case 0:
		return e.semiMajor
	case 90, -90:
		return e.semiMinor
	}
	phi := ToRad(latDeg)
	a2 := SQ(e.semiMajor)
	b2 := SQ(e.semiMinor)
	c2 := SQ(math.Cos(phi))
	s2 := SQ(math.Sin(phi))
	return math.Sqrt((SQ(a2)*c2 + SQ(b2)*s2) / (a2*c2 + b2*s2))
}

// SemiMajorAxisDifference returns other.a - e.a in e's axis unit, computed
// in double-double precision.
func (e *Ellipsoid) SemiMajorAxisDifference(other *Ellipsoid) float64 {
	oa := other.unit.Convert(other.semiMajor, e.unit)
	return Decimal(oa).Sub(Decimal(e.semiMajor)).Float()
}

// FlatteningDifference returns other.f - e.f (dimensionless).
func (e *Ellipsoid) FlatteningDifference(other *Ellipsoid) float64 {
	return other.flattening().Sub(e.flattening()).Float()
}

// ConvertTo returns this ellipsoid with axes expressed in the target unit.
// Returns the receiver unchanged when the units are equivalent.
func (e *Ellipsoid) ConvertTo(unit LinearUnit) *Ellipsoid {
	if e.unit.Equivalent(unit) {
		return e
	}
	c := *e
	c.semiMajor = e.unit.Convert(e.semiMajor, unit)
	c.semiMinor = e.unit.Convert(e.semiMinor, unit)
	c.unit = unit
	return &c
}

// Equals compares two ellipsoids in the given mode. In modes ignoring
// metadata only the inverse flattening and the axis lengths (unit aware)
// matter; approximate mode allows up to LinearTol metres on the axes.
func (e *Ellipsoid) Equals(other *Ellipsoid, mode ComparisonMode) bool {
	if e == other {
		return true
	}
	if other == nil {
		return false
	}
	switch mode {
	case Strict:
		return e.name == other.name &&
			sameFloat(e.semiMajor, other.semiMajor) &&
			sameFloat(e.semiMinor, other.semiMinor) &&
			sameFloat(e.inverseFlat, other.inverseFlat) &&
			e.ivfDefinitive == other.ivfDefinitive &&
			e.unit == other.unit
	case ByContract:
		// The published properties include the name.
		if e.name != other.name || e.ivfDefinitive != other.ivfDefinitive {
			return false
		}
	}
	if !mode.IsApproximate() {
		if !sameFloat(e.inverseFlat, other.inverseFlat) {
			PrintD(2, "ellipsoid mismatch: inverse flattening %v != %v\n", e.inverseFlat, other.inverseFlat)
			return false
		}
		if !sameFloat(e.semiMajor, other.unit.Convert(other.semiMajor, e.unit)) ||
			!sameFloat(e.semiMinor, other.unit.Convert(other.semiMinor, e.unit)) {
			PrintD(2, "ellipsoid mismatch: axes (%v, %v) != (%v, %v)\n",
				e.semiMajor, e.semiMinor, other.semiMajor, other.semiMinor)
			return false
		}
		return true
	}
	// Approximate comparison in metres.
	am := e.unit.Convert(e.semiMajor, Metre)
	bm := e.unit.Convert(e.semiMinor, Metre)
	oam := other.unit.Convert(other.semiMajor, Metre)
	obm := other.unit.Convert(other.semiMinor, Metre)
	if math.Abs(am-oam) > LinearTol || math.Abs(bm-obm) > LinearTol {
		PrintD(2, "ellipsoid mismatch beyond %v m: (%v, %v) != (%v, %v)\n",
			LinearTol, am, bm, oam, obm)
		return false
	}
	return true
}

func (e *Ellipsoid) String() string {
	return fmt.Sprintf("%s (a=%v, 1/f=%v, %s)", e.name, e.semiMajor, e.inverseFlat, e.unit.Name)
}
