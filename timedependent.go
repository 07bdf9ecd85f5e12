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

	"gonum.org/v1/gonum/mat"
)

//---- TimeDependentParameters ----

// TimeDependentParameters is the 14-parameter Helmert transformation
// (EPSG operation method 1053): Bursa-Wolf parameters valid at a reference
// epoch plus their rates of change. Parameter values at time t are
// value + rate * (t - epoch), with the elapsed time in tropical years.
type TimeDependentParameters struct {
	BursaWolfParameters
	DTX float64 // Rate of TX [mm/year]
	DTY float64 // Rate of TY [mm/year]
	DTZ float64 // Rate of TZ [mm/year]
	DRX float64 // Rate of RX [milli-arc-second/year]
	DRY float64 // Rate of RY [milli-arc-second/year]
	DRZ float64 // Rate of RZ [milli-arc-second/year]
	DDS float64 // Rate of DS [ppm/year]

	RefEpoch Epoch // Epoch at which the base parameters are valid
}

// NewTimeDependent creates zero-valued time-dependent parameters toward the
// given target datum, valid at the given reference epoch.
func NewTimeDependent(target *GeodeticDatum, domain *Extent, epoch Epoch) *TimeDependentParameters {
	return &TimeDependentParameters{
		BursaWolfParameters: BursaWolfParameters{target: target, domain: domain},
		RefEpoch:            epoch,
	}
}

// period returns the elapsed time from the reference epoch to t in tropical
// years, or false when t is unspecified or coincides with the epoch, in
// which case no rate correction applies.
func (p *TimeDependentParameters) period(t time.Time) (DD, bool) {
	if t.IsZero() {
		return DD{}, false
	}
	years := p.RefEpoch.TropicalYearsTo(t)
	if years == 0 {
		return DD{}, false
	}
	return DD{V: years}, true
}

// PositionVector builds the 4x4 affine matrix for the given time. A zero
// time evaluates the parameters at the reference epoch.
func (p *TimeDependentParameters) PositionVector(t time.Time) *mat.Dense {
	period, ok := p.period(t)
	if !ok {
		return p.BursaWolfParameters.PositionVector(t)
	}
	rates := [7]float64{p.DTX, p.DTY, p.DTZ, p.DRX, p.DRY, p.DRZ, p.DDS}
	return p.positionVector(period, true, &rates)
}

// Values returns all 14 values: the seven parameters followed by their
// rates, regardless of which ones are zero.
func (p *TimeDependentParameters) Values() []float64 {
	return []float64{
		p.TX, p.TY, p.TZ, p.RX, p.RY, p.RZ, p.DS,
		p.DTX, p.DTY, p.DTZ, p.DRX, p.DRY, p.DRZ, p.DDS,
	}
}

// SetValues assigns the parameters and rates from a truncated value list in
// the same order as Values.
func (p *TimeDependentParameters) SetValues(v ...float64) {
	if len(v) > 13 {
		p.DDS = v[13]
	}
	if len(v) > 12 {
		p.DRZ = v[12]
	}
	if len(v) > 11 {
		p.DRY = v[11]
	}
	if len(v) > 10 {
		p.DRX = v[10]
	}
	if len(v) > 9 {
		p.DTZ = v[9]
	}
	if len(v) > 8 {
		p.DTY = v[8]
	}
	if len(v) > 7 {
		p.DTX = v[7]
	}
	p.BursaWolfParameters.SetValues(v...)
}

// Invert negates all parameter values and rates (approximate, as for the
// 7-parameter case).
func (p *TimeDependentParameters) Invert() {
	v := p.Values()
	for i := range v {
		v[i] = -v[i]
	}
	p.SetValues(v...)
}

// ReverseRotation flips the signs of the rotations and their rates.
func (p *TimeDependentParameters) ReverseRotation() {
	p.BursaWolfParameters.ReverseRotation()
	p.DRX = -p.DRX
	p.DRY = -p.DRY
	p.DRZ = -p.DRZ
}

// Validate additionally checks that the rates are finite and that a
// reference epoch was given.
func (p *TimeDependentParameters) Validate(pm PrimeMeridian) error {
	if err := p.BursaWolfParameters.Validate(pm); err != nil {
		return err
	}
	for _, v := range []float64{p.DTX, p.DTY, p.DTZ, p.DRX, p.DRY, p.DRZ, p.DDS} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("parameter rate %v is not finite", v)
		}
	}
	if p.RefEpoch.IsZero() {
		return fmt.Errorf("time-dependent parameters require a reference epoch")
	}
	return nil
}

// Clone returns a deep copy.
func (p *TimeDependentParameters) Clone() DatumShift {
	c := *p
	return &c
}

// Equals reports whether o carries the same values, rates and epoch toward
// the same target.
func (p *TimeDependentParameters) Equals(o DatumShift) bool {
	q, ok := o.(*TimeDependentParameters)
	if !ok {
		return false
	}
	return *p == *q
}

func (p *TimeDependentParameters) String() string {
	return fmt.Sprintf("TOWGS84[%v] at %s", p.Values(), (&p.RefEpoch).String())
}
