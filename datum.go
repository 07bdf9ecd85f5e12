// Copyright (c) 2026 ktnk. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.23
//

package godatum

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

//---- Identifier ----

// Identifier is a code assigned to a reference object by an authority,
// e.g. {"EPSG", "6326"}.
type Identifier struct {
	Authority string
	Code      string
}

//---- PrimeMeridian ----

// PrimeMeridian is the meridian of zero longitude.
type PrimeMeridian struct {
	Name               string
	GreenwichLongitude float64 // Longitude relative to Greenwich [deg], positive east
}

var Greenwich = PrimeMeridian{Name: "Greenwich"}

// Equals compares two prime meridians. Modes ignoring metadata compare the
// longitude only.
func (pm PrimeMeridian) Equals(o PrimeMeridian, mode ComparisonMode) bool {
	if mode.IgnoresMetadata() {
		return sameFloat(pm.GreenwichLongitude, o.GreenwichLongitude)
	}
	return pm.Name == o.Name && sameFloat(pm.GreenwichLongitude, o.GreenwichLongitude)
}

//---- Datum ----

// Datum ties a coordinate system to the Earth (or to an engineering or
// parametric reference). Concrete types are *GeodeticDatum, *VerticalDatum,
// *TemporalDatum, *EngineeringDatum, *ParametricDatum and the *PseudoDatum
// view of an ensemble.
type Datum interface {
	// Base gives access to the identification metadata.
	Base() *DatumBase
	// EqualsIgnoreMetadata compares only the properties relevant to
	// coordinate transformations.
	EqualsIgnoreMetadata(other Datum) bool
	// asEnsemble returns the wrapped ensemble for pseudo-datums, nil
	// otherwise.
	asEnsemble() *Ensemble
}

//---- DatumBase ----

// DatumBase is the identification metadata shared by all datum types.
type DatumBase struct {
	Name             string
	Aliases          []string
	Identifiers      []Identifier
	AnchorDefinition string    // Description of the anchor point or survey
	AnchorEpoch      Epoch     // Epoch at which the anchor was fixed
	PublicationDate  time.Time // Date the definition was published
	ConventionalRS   string    // Name of the conventional reference system
}

// normalizeName folds case and drops everything but letters and digits, so
// that "WGS 84", "WGS84" and "WGS_84" compare equal.
func normalizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// matchesName reports whether the given name heuristically matches the
// primary name or one of the aliases.
func (b *DatumBase) matchesName(name string) bool {
	n := normalizeName(name)
	if normalizeName(b.Name) == n {
		return true
	}
	for _, a := range b.Aliases {
		if normalizeName(a) == n {
			return true
		}
	}
	return false
}

// commonIdentifier compares the identifier lists: (true, true) when a code
// is shared, (false, true) when both sides have identifiers but none match,
// and ok=false when either side has no identifiers to compare.
func commonIdentifier(a, b []Identifier) (match, ok bool) {
	if len(a) == 0 || len(b) == 0 {
		return false, false
	}
	for _, ia := range a {
		if slices.Contains(b, ia) {
			return true, true
		}
	}
	return false, true
}

// equalsMetadata compares the full metadata, for the strict modes.
func (b *DatumBase) equalsMetadata(o *DatumBase) bool {
	return b.Name == o.Name &&
		slices.Equal(b.Aliases, o.Aliases) &&
		slices.Equal(b.Identifiers, o.Identifiers) &&
		b.AnchorDefinition == o.AnchorDefinition &&
		b.AnchorEpoch == o.AnchorEpoch &&
		b.PublicationDate.Equal(o.PublicationDate) &&
		b.ConventionalRS == o.ConventionalRS
}

//---- GeodeticDatum ----

// GeodeticDatum defines the position of an ellipsoid relative to the Earth,
// optionally with Bursa-Wolf parameter sets toward other datums. Dynamic
// reference frames additionally carry a frame reference epoch.
type GeodeticDatum struct {
	base          DatumBase
	ellipsoid     *Ellipsoid
	primeMeridian PrimeMeridian
	bursaWolf     []DatumShift
	frameEpoch    Epoch // Zero for static frames
}

// NewGeodeticDatum creates a static geodetic datum. Every Bursa-Wolf set is
// validated against the prime meridian and defensively copied.
func NewGeodeticDatum(base DatumBase, e *Ellipsoid, pm PrimeMeridian, shifts ...DatumShift) (*GeodeticDatum, error) {
	return newGeodeticDatum(base, e, pm, 0, shifts)
}

// NewDynamicGeodeticDatum creates a dynamic reference frame with the given
// frame reference epoch.
func NewDynamicGeodeticDatum(base DatumBase, e *Ellipsoid, pm PrimeMeridian, epoch Epoch, shifts ...DatumShift) (*GeodeticDatum, error) {
	if epoch.IsZero() {
		return nil, fmt.Errorf("dynamic datum %q requires a frame reference epoch", base.Name)
	}
	return newGeodeticDatum(base, e, pm, epoch, shifts)
}

func newGeodeticDatum(base DatumBase, e *Ellipsoid, pm PrimeMeridian, epoch Epoch, shifts []DatumShift) (*GeodeticDatum, error) {
	if e == nil {
		return nil, fmt.Errorf("geodetic datum %q requires an ellipsoid", base.Name)
	}
	var bw []DatumShift
	for _, s := range shifts {
		if err := s.Validate(pm); err != nil {
			return nil, fmt.Errorf("datum %q: %w", base.Name, err)
		}
		bw = append(bw, s.Clone())
	}
	return &GeodeticDatum{
		base:          base,
		ellipsoid:     e,
		primeMeridian: pm,
		bursaWolf:     bw,
		frameEpoch:    epoch,
	}, nil
}

func (d *GeodeticDatum) Base() *DatumBase             { return &d.base }
func (d *GeodeticDatum) Ellipsoid() *Ellipsoid        { return d.ellipsoid }
func (d *GeodeticDatum) PrimeMeridian() PrimeMeridian { return d.primeMeridian }
func (d *GeodeticDatum) asEnsemble() *Ensemble        { return nil }

// FrameReferenceEpoch returns the frame reference epoch of a dynamic
// reference frame, or false for a static datum.
func (d *GeodeticDatum) FrameReferenceEpoch() (Epoch, bool) {
	return d.frameEpoch, !d.frameEpoch.IsZero()
}

// BursaWolfParameters returns copies of the datum's parameter sets, in
// declaration order.
func (d *GeodeticDatum) BursaWolfParameters() []DatumShift {
	out := make([]DatumShift, len(d.bursaWolf))
	for i, s := range d.bursaWolf {
		out[i] = s.Clone()
	}
	return out
}

// IsHeuristicMatchForName reports whether the name matches the datum name
// or an alias after normalization.
func (d *GeodeticDatum) IsHeuristicMatchForName(name string) bool {
	return d.base.matchesName(name)
}

// EqualsIgnoreMetadata compares the ellipsoid and prime meridian only.
// Bursa-Wolf parameter sets are metadata for this purpose: they describe
// relations to other datums, not this datum's definition.
func (d *GeodeticDatum) EqualsIgnoreMetadata(other Datum) bool {
	return d.Equals(other, IgnoreMetadata)
}

// Equals compares two datums in the given mode.
func (d *GeodeticDatum) Equals(other Datum, mode ComparisonMode) bool {
	if d == other {
		return true
	}
	if other == nil {
		return false
	}
	if ps := other.asEnsemble(); ps != nil && mode.IgnoresMetadata() {
		return other.EqualsIgnoreMetadata(d)
	}
	o, ok := other.(*GeodeticDatum)
	if !ok {
		return false
	}
	if !mode.IgnoresMetadata() {
		if !d.base.equalsMetadata(&o.base) {
			return false
		}
		if len(d.bursaWolf) != len(o.bursaWolf) {
			return false
		}
		for i := range d.bursaWolf {
			if !slices.Equal(d.bursaWolf[i].Values(), o.bursaWolf[i].Values()) {
				return false
			}
		}
		if d.frameEpoch != o.frameEpoch {
			return false
		}
	}
	return d.ellipsoid.Equals(o.ellipsoid, mode) && d.primeMeridian.Equals(o.primeMeridian, mode)
}

//---- Transformation ----

// Transformation is the result of a datum shift search: the 4x4 affine
// matrix on geocentric coordinates, and whether it was composed through an
// intermediate datum rather than declared directly.
type Transformation struct {
	Matrix   *mat.Dense
	Indirect bool
}

// transformTime picks the time at which time-dependent parameters are
// evaluated: the frame reference epoch of either datum when one is dynamic,
// else the midpoint of the area of interest's time interval.
func transformTime(d, target *GeodeticDatum, aoi *Extent) time.Time {
	if ep, ok := d.FrameReferenceEpoch(); ok {
		return ep.Time()
	}
	if ep, ok := target.FrameReferenceEpoch(); ok {
		return ep.Time()
	}
	if t, ok := aoi.TimeMidpoint(); ok {
		return t
	}
	return time.Time{}
}

// domainOK reports whether a domain of validity is usable for the area of
// interest under the given constraints. Unspecified domains always pass.
func domainOK(domain, aoi *Extent, useBBox, useTime bool) bool {
	if aoi == nil || domain == nil {
		return true
	}
	if useTime && aoi.HasTime() && domain.HasTime() && !aoi.timeIntersects(domain) {
		return false
	}
	if useBBox && aoi.HasBoundingBox() && domain.HasBoundingBox() &&
		aoi.bbox.Intersection(domain.bbox).IsEmpty() {
		return false
	}
	return true
}

// selectToward returns the datum's parameter set toward the given target
// whose domain best covers the area of interest, or nil.
func (d *GeodeticDatum) selectToward(target *GeodeticDatum, aoi *Extent) DatumShift {
	sel := newExtentSelector(aoi, true, true)
	for _, s := range d.bursaWolf {
		t := s.TargetDatum()
		if t == nil || !(t == target || t.EqualsIgnoreMetadata(target)) {
			continue
		}
		sel.offer(s.DomainOfValidity(), s)
	}
	return sel.best
}

// PositionVectorTransformation searches for a transformation from this
// datum to the target, preferring the parameter set whose domain of
// validity best covers the area of interest. The search order is: the
// datum's own sets toward the target; the target's sets toward this datum,
// inverted; a composition through a shared intermediate datum, flagged
// Indirect, relaxing first the spatial then the temporal constraint.
// Returns false when no path exists.
func (d *GeodeticDatum) PositionVectorTransformation(target *GeodeticDatum, aoi *Extent) (*Transformation, bool) {
	t := transformTime(d, target, aoi)
	if s := d.selectToward(target, aoi); s != nil {
		return &Transformation{Matrix: s.PositionVector(t)}, true
	}
	if s := target.selectToward(d, aoi); s != nil {
		var inv mat.Dense
		if err := inv.Inverse(s.PositionVector(t)); err == nil {
			return &Transformation{Matrix: &inv}, true
		} else {
			PrintE(fmt.Errorf("transformation %q to %q is not invertible: %w",
				target.base.Name, d.base.Name, err))
		}
	}
	for pass := 0; pass < 3; pass++ {
		useBBox := pass == 0
		useTime := pass < 2
		for _, s1 := range d.bursaWolf {
			pivot := s1.TargetDatum()
			if pivot == nil || !domainOK(s1.DomainOfValidity(), aoi, useBBox, useTime) {
				continue
			}
			for _, s2 := range target.bursaWolf {
				p2 := s2.TargetDatum()
				if p2 == nil || !(p2 == pivot || p2.EqualsIgnoreMetadata(pivot)) {
					continue
				}
				if !domainOK(s2.DomainOfValidity(), aoi, useBBox, useTime) {
					continue
				}
				var inv mat.Dense
				if err := inv.Inverse(s2.PositionVector(t)); err != nil {
					PrintE(fmt.Errorf("transformation %q to %q is not invertible: %w",
						target.base.Name, p2.base.Name, err))
					continue
				}
				var out mat.Dense
				out.Mul(&inv, s1.PositionVector(t))
				return &Transformation{Matrix: &out, Indirect: true}, true
			}
		}
	}
	return nil, false
}

//---- VerticalDatum ----

// RealizationMethod describes how a vertical reference frame is realized.
type RealizationMethod string

const (
	Levelling RealizationMethod = "levelling"
	Geoid     RealizationMethod = "geoid"
	Tidal     RealizationMethod = "tidal"
)

// VerticalDatum is the origin of gravity-related heights or depths.
type VerticalDatum struct {
	base        DatumBase
	realization RealizationMethod
}

func NewVerticalDatum(base DatumBase, method RealizationMethod) *VerticalDatum {
	return &VerticalDatum{base: base, realization: method}
}

func (d *VerticalDatum) Base() *DatumBase                     { return &d.base }
func (d *VerticalDatum) RealizationMethod() RealizationMethod { return d.realization }
func (d *VerticalDatum) asEnsemble() *Ensemble                { return nil }

func (d *VerticalDatum) EqualsIgnoreMetadata(other Datum) bool {
	if ps := other.asEnsemble(); ps != nil {
		return other.EqualsIgnoreMetadata(d)
	}
	o, ok := other.(*VerticalDatum)
	return ok && d.realization == o.realization
}

//---- TemporalDatum ----

// TemporalDatum is the origin of a temporal coordinate system.
type TemporalDatum struct {
	base   DatumBase
	origin time.Time
}

func NewTemporalDatum(base DatumBase, origin time.Time) *TemporalDatum {
	return &TemporalDatum{base: base, origin: origin}
}

func (d *TemporalDatum) Base() *DatumBase      { return &d.base }
func (d *TemporalDatum) Origin() time.Time     { return d.origin }
func (d *TemporalDatum) asEnsemble() *Ensemble { return nil }

func (d *TemporalDatum) EqualsIgnoreMetadata(other Datum) bool {
	if ps := other.asEnsemble(); ps != nil {
		return other.EqualsIgnoreMetadata(d)
	}
	o, ok := other.(*TemporalDatum)
	return ok && d.origin.Equal(o.origin)
}

//---- EngineeringDatum ----

// EngineeringDatum ties coordinates to a local, non-Earth reference such as
// a construction site or a vehicle.
type EngineeringDatum struct {
	base DatumBase
}

func NewEngineeringDatum(base DatumBase) *EngineeringDatum {
	return &EngineeringDatum{base: base}
}

func (d *EngineeringDatum) Base() *DatumBase      { return &d.base }
func (d *EngineeringDatum) asEnsemble() *Ensemble { return nil }

// EqualsIgnoreMetadata: engineering datums carry nothing but metadata, so
// any two compare equal in this mode.
func (d *EngineeringDatum) EqualsIgnoreMetadata(other Datum) bool {
	if ps := other.asEnsemble(); ps != nil {
		return other.EqualsIgnoreMetadata(d)
	}
	_, ok := other.(*EngineeringDatum)
	return ok
}

//---- ParametricDatum ----

// ParametricDatum is the origin of a parametric coordinate system (e.g.
// pressure in meteorological applications).
type ParametricDatum struct {
	base DatumBase
}

func NewParametricDatum(base DatumBase) *ParametricDatum {
	return &ParametricDatum{base: base}
}

func (d *ParametricDatum) Base() *DatumBase      { return &d.base }
func (d *ParametricDatum) asEnsemble() *Ensemble { return nil }

func (d *ParametricDatum) EqualsIgnoreMetadata(other Datum) bool {
	if ps := other.asEnsemble(); ps != nil {
		return other.EqualsIgnoreMetadata(d)
	}
	_, ok := other.(*ParametricDatum)
	return ok
}
