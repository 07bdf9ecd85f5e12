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
	"time"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

//---- DatumShift ----

// DatumShift is a set of parameters transforming geocentric coordinates from
// one geodetic datum to another. Implemented by BursaWolfParameters and
// TimeDependentParameters.
type DatumShift interface {
	// PositionVector builds the 4x4 affine transformation matrix for the
	// given time. Implementations without time dependence ignore t.
	PositionVector(t time.Time) *mat.Dense
	// TargetDatum is the datum the parameters transform toward, or nil.
	TargetDatum() *GeodeticDatum
	// DomainOfValidity is the area where the parameters are valid, or nil.
	DomainOfValidity() *Extent
	// Validate checks the parameter values against the given prime meridian.
	Validate(pm PrimeMeridian) error
	// Values returns the parameter values in the shortest conventional form.
	Values() []float64
	// Clone returns a deep copy.
	Clone() DatumShift
	// IsIdentity reports whether the transformation changes nothing.
	IsIdentity() bool
}

//---- BursaWolfParameters ----

// BursaWolfParameters is the 7-parameter Helmert transformation between two
// geocentric frames, with the Position-Vector rotation sign convention
// (EPSG operation method 9606): a positive RZ rotates the position vector
// counter-clockwise seen from above the north pole.
type BursaWolfParameters struct {
	TX float64 // X translation [m]
	TY float64 // Y translation [m]
	TZ float64 // Z translation [m]
	RX float64 // X rotation [arc-second]
	RY float64 // Y rotation [arc-second]
	RZ float64 // Z rotation [arc-second]
	DS float64 // Scale difference [ppm]

	target *GeodeticDatum
	domain *Extent
}

// NewBursaWolf creates zero-valued parameters toward the given target datum,
// valid in the given domain. Both may be nil. Set the parameter fields
// directly or through SetValues.
func NewBursaWolf(target *GeodeticDatum, domain *Extent) *BursaWolfParameters {
	return &BursaWolfParameters{target: target, domain: domain}
}

func (p *BursaWolfParameters) TargetDatum() *GeodeticDatum {
	return p.target
}

func (p *BursaWolfParameters) DomainOfValidity() *Extent {
	return p.domain
}

// Validate checks that all parameter values are finite, that the scale
// difference keeps the scale factor positive, and that the target datum's
// prime meridian is the owning datum's meridian pm or Greenwich. A rotation
// between the two meridians would make it ambiguous whether the longitude
// rotation applies before or after the shift; a Greenwich target means the
// shift applies in a coordinate system with Greenwich as the meridian.
func (p *BursaWolfParameters) Validate(pm PrimeMeridian) error {
	if p.target != nil {
		tpm := p.target.PrimeMeridian()
		if tpm.GreenwichLongitude != 0 && !tpm.Equals(pm, IgnoreMetadata) {
			return fmt.Errorf("target prime meridian %q does not match %q", tpm.Name, pm.Name)
		}
	}
	for _, v := range []float64{p.TX, p.TY, p.TZ, p.RX, p.RY, p.RZ} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("parameter value %v is not finite", v)
		}
	}
	if !(math.Abs(p.DS) < PPM) {
		return fmt.Errorf("scale difference %v ppm is out of range (-1e6, 1e6)", p.DS)
	}
	return nil
}

// IsIdentity reports whether all parameters are zero.
func (p *BursaWolfParameters) IsIdentity() bool {
	return p.TX == 0 && p.TY == 0 && p.TZ == 0 && p.IsTranslation()
}

// IsTranslation reports whether the rotation and scale terms are zero.
func (p *BursaWolfParameters) IsTranslation() bool {
	return p.RX == 0 && p.RY == 0 && p.RZ == 0 && p.DS == 0
}

// IsToWGS84 reports whether the target datum name matches WGS 84, which is
// the assumption behind the legacy TOWGS84 encoding.
func (p *BursaWolfParameters) IsToWGS84() bool {
	return p.target != nil && p.target.IsHeuristicMatchForName("WGS84")
}

// Values returns the parameters in the shortest of the conventional forms:
// 3 values for a translation, 6 when only the scale is zero, 7 otherwise.
func (p *BursaWolfParameters) Values() []float64 {
	switch {
	case p.DS != 0:
		return []float64{p.TX, p.TY, p.TZ, p.RX, p.RY, p.RZ, p.DS}
	case p.RX != 0 || p.RY != 0 || p.RZ != 0:
		return []float64{p.TX, p.TY, p.TZ, p.RX, p.RY, p.RZ}
	default:
		return []float64{p.TX, p.TY, p.TZ}
	}
}

// SetValues assigns the parameters from a truncated value list, in the same
// order as Values. Omitted trailing parameters keep their current value.
func (p *BursaWolfParameters) SetValues(v ...float64) {
	if len(v) > 6 {
		p.DS = v[6]
	}
	if len(v) > 5 {
		p.RZ = v[5]
	}
	if len(v) > 4 {
		p.RY = v[4]
	}
	if len(v) > 3 {
		p.RX = v[3]
	}
	if len(v) > 2 {
		p.TZ = v[2]
	}
	if len(v) > 1 {
		p.TY = v[1]
	}
	if len(v) > 0 {
		p.TX = v[0]
	}
}

// Invert approximates the reverse transformation by negating all parameter
// values. Exact for pure translations; for rotation and scale terms the
// result neglects their second-order products, which is the usual practice
// for the small values found in datum shifts.
func (p *BursaWolfParameters) Invert() {
	v := p.Values()
	for i := range v {
		v[i] = -v[i]
	}
	p.SetValues(v...)
}

// ReverseRotation flips the rotation signs, converting between the
// Position-Vector and Coordinate-Frame conventions.
func (p *BursaWolfParameters) ReverseRotation() {
	p.RX = -p.RX
	p.RY = -p.RY
	p.RZ = -p.RZ
}

// Clone returns a deep copy.
func (p *BursaWolfParameters) Clone() DatumShift {
	c := *p
	return &c
}

// Equals reports whether o carries the same parameter values toward the
// same target.
func (p *BursaWolfParameters) Equals(o DatumShift) bool {
	q, ok := o.(*BursaWolfParameters)
	if !ok {
		return false
	}
	return slices.Equal(p.Values(), q.Values()) && p.target == q.target && p.domain == q.domain
}

// PositionVector builds the 4x4 affine matrix of the transformation. The
// time argument is ignored; it exists so that time-dependent parameters can
// share the interface.
func (p *BursaWolfParameters) PositionVector(_ time.Time) *mat.Dense {
	return p.positionVector(DD{}, false, nil)
}

// positionVector assembles the matrix, optionally applying per-year rates
// scaled by the elapsed period [tropical years]. Rate indices 0-5 are in
// mm/yr and mas/yr and are divided by 1000; the scale rate is in ppm/yr.
func (p *BursaWolfParameters) positionVector(period DD, hasPeriod bool, rates *[7]float64) *mat.Dense {
	if !hasPeriod && p.IsTranslation() {
		return mat.NewDense(4, 4, []float64{
			1, 0, 0, p.TX,
			0, 1, 0, p.TY,
			0, 0, 1, p.TZ,
			0, 0, 0, 1,
		})
	}
	values := [7]float64{p.TX, p.TY, p.TZ, p.RX, p.RY, p.RZ, p.DS}
	param := func(i int) DD {
		v := Decimal(values[i])
		if hasPeriod && rates != nil {
			f := period
			if i < 6 {
				f = f.Div(DD{V: 1000})
			}
			v = v.Add(Decimal(rates[i]).Mul(f))
		}
		return v
	}
	S := param(6).Div(DD{V: PPM}).Add(ddOne)
	RS := ddSecToRad.Mul(S)
	pX := param(3).Mul(RS)
	pY := param(4).Mul(RS)
	pZ := param(5).Mul(RS)
	s := S.Float()
	return mat.NewDense(4, 4, []float64{
		s, -pZ.Float(), pY.Float(), param(0).Float(),
		pZ.Float(), s, -pX.Float(), param(1).Float(),
		-pY.Float(), pX.Float(), s, param(2).Float(),
		0, 0, 0, 1,
	})
}

// SetPositionVector decomposes a 4x4 affine matrix built by PositionVector
// (or close to one) back into the seven parameters. The tolerance bounds
// the non-uniformity of the scale [ppm] and the asymmetry of the rotation
// terms [arc-second].
func (p *BursaWolfParameters) SetPositionVector(m mat.Matrix, tol float64) error {
	r, c := m.Dims()
	if r != 4 || c != 4 {
		return fmt.Errorf("matrix size is %dx%d, want 4x4", r, c)
	}
	if m.At(3, 0) != 0 || m.At(3, 1) != 0 || m.At(3, 2) != 0 || m.At(3, 3) != 1 {
		return fmt.Errorf("matrix is not an affine transform")
	}
	p.TX = m.At(0, 3)
	p.TY = m.At(1, 3)
	p.TZ = m.At(2, 3)
	if m.At(0, 0) == 1 && m.At(1, 1) == 1 && m.At(2, 2) == 1 &&
		m.At(0, 1) == 0 && m.At(0, 2) == 0 && m.At(1, 0) == 0 &&
		m.At(1, 2) == 0 && m.At(2, 0) == 0 && m.At(2, 1) == 0 {
		p.RX = 0
		p.RY = 0
		p.RZ = 0
		p.DS = 0
		return nil
	}
	// Scale factor from the average of the diagonal.
	S := Decimal(m.At(0, 0)).Add(Decimal(m.At(1, 1))).Add(Decimal(m.At(2, 2))).Div(DD{V: 3})
	p.DS = S.Sub(ddOne).Mul(DD{V: PPM}).Float()
	RS := ddSecToRad.Mul(S)
	for j := 0; j < 3; j++ {
		if math.Abs((m.At(j, j)-1)*PPM-p.DS) > tol {
			return fmt.Errorf("matrix scale is not uniform: element (%d,%d) is %v", j, j, m.At(j, j))
		}
		for i := j + 1; i < 3; i++ {
			mr := Decimal(m.At(j, i)).Div(RS) // Minus rotation term
			pr := Decimal(m.At(i, j)).Div(RS) // Plus rotation term
			if math.Abs(pr.V+mr.V) > 2*tol {
				return fmt.Errorf("matrix is not skew-symmetric: elements (%d,%d) and (%d,%d)", j, i, i, j)
			}
			v := pr.Sub(mr).Scalb(-1).Float()
			switch j*4 + i {
			case 1:
				p.RZ = v
			case 2:
				p.RY = -v
			case 6:
				p.RX = v
			}
		}
	}
	return nil
}

func (p *BursaWolfParameters) String() string {
	return fmt.Sprintf("TOWGS84[%v]", p.Values())
}
