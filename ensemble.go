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

//---- Ensemble ----

// Ensemble is a collection of datums which, for coordinates within a stated
// positional accuracy, may be used interchangeably. Members are ordered as
// declared. Immutable after construction.
type Ensemble struct {
	base     DatumBase
	members  []Datum
	accuracy float64 // Positional accuracy within which members are interchangeable [m]
}

// NewEnsemble creates an ensemble. The accuracy is mandatory and positive.
// Members must be concrete datums (no nested ensembles) and must agree on
// the conventional reference system when they declare one.
func NewEnsemble(base DatumBase, accuracyMetre float64, members ...Datum) (*Ensemble, error) {
	if !(accuracyMetre > 0) || math.IsInf(accuracyMetre, 0) {
		return nil, fmt.Errorf("ensemble %q: accuracy is %v, want a positive finite value", base.Name, accuracyMetre)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("ensemble %q has no members", base.Name)
	}
	rs := ""
	for _, m := range members {
		if m.asEnsemble() != nil {
			return nil, fmt.Errorf("ensemble %q: member %q is itself an ensemble", base.Name, m.Base().Name)
		}
		if v := m.Base().ConventionalRS; v != "" {
			if rs == "" {
				rs = v
			} else if rs != v {
				return nil, fmt.Errorf("ensemble %q: members disagree on conventional reference system (%q vs %q)", base.Name, rs, v)
			}
		}
	}
	e := &Ensemble{base: base, accuracy: accuracyMetre}
	e.members = append(e.members, members...)
	return e, nil
}

func (e *Ensemble) Base() *DatumBase { return &e.base }

// Accuracy is the positional accuracy in metres.
func (e *Ensemble) Accuracy() float64 { return e.accuracy }

// Members returns the member datums in declaration order.
func (e *Ensemble) Members() []Datum {
	out := make([]Datum, len(e.members))
	copy(out, e.members)
	return out
}

// Contains reports whether d matches one of the members, ignoring metadata.
func (e *Ensemble) Contains(d Datum) bool {
	for _, m := range e.members {
		if m == d || m.EqualsIgnoreMetadata(d) {
			return true
		}
	}
	return false
}

// AsDatum wraps the ensemble as a datum for use where the API requires one.
func (e *Ensemble) AsDatum() *PseudoDatum {
	return &PseudoDatum{base: e.base, ensemble: e}
}

//---- PseudoDatum ----

// PseudoDatum presents an ensemble as a read-only datum. Property accessors
// succeed only when all members agree on the requested property.
type PseudoDatum struct {
	base     DatumBase
	ensemble *Ensemble
}

func (p *PseudoDatum) Base() *DatumBase      { return &p.base }
func (p *PseudoDatum) Ensemble() *Ensemble   { return p.ensemble }
func (p *PseudoDatum) asEnsemble() *Ensemble { return p.ensemble }

// Ellipsoid returns the ellipsoid shared by all members, or an error when a
// member is not geodetic or members disagree.
func (p *PseudoDatum) Ellipsoid() (*Ellipsoid, error) {
	var ref *Ellipsoid
	for _, m := range p.ensemble.members {
		g, ok := m.(*GeodeticDatum)
		if !ok {
			return nil, fmt.Errorf("ensemble %q: member %q is not a geodetic datum", p.base.Name, m.Base().Name)
		}
		if ref == nil {
			ref = g.Ellipsoid()
		} else if !ref.Equals(g.Ellipsoid(), IgnoreMetadata) {
			return nil, fmt.Errorf("ensemble %q members do not share a single ellipsoid", p.base.Name)
		}
	}
	return ref, nil
}

// PrimeMeridian returns the prime meridian shared by all members, or an
// error when members disagree.
func (p *PseudoDatum) PrimeMeridian() (PrimeMeridian, error) {
	var ref PrimeMeridian
	for i, m := range p.ensemble.members {
		g, ok := m.(*GeodeticDatum)
		if !ok {
			return PrimeMeridian{}, fmt.Errorf("ensemble %q: member %q is not a geodetic datum", p.base.Name, m.Base().Name)
		}
		if i == 0 {
			ref = g.PrimeMeridian()
		} else if !ref.Equals(g.PrimeMeridian(), IgnoreMetadata) {
			return PrimeMeridian{}, fmt.Errorf("ensemble %q members do not share a prime meridian", p.base.Name)
		}
	}
	return ref, nil
}

// EqualsIgnoreMetadata: a pseudo-datum equals another pseudo-datum wrapping
// an equivalent ensemble, and equals a concrete datum when every member
// does.
func (p *PseudoDatum) EqualsIgnoreMetadata(other Datum) bool {
	if o := other.asEnsemble(); o != nil {
		if o == p.ensemble {
			return true
		}
		if len(o.members) != len(p.ensemble.members) {
			return false
		}
		for i, m := range p.ensemble.members {
			if !m.EqualsIgnoreMetadata(o.members[i]) {
				return false
			}
		}
		return true
	}
	for _, m := range p.ensemble.members {
		if !m.EqualsIgnoreMetadata(other) {
			return false
		}
	}
	return true
}
