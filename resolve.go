// Copyright (c) 2026 ktnk. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.23
//

package godatum

import (
	"strings"

	"golang.org/x/exp/slices"
)

//---- CRS ----

// CRS is a minimal coordinate reference system view: a name and either a
// datum or a datum ensemble.
type CRS struct {
	Name     string
	Datum    Datum
	Ensemble *Ensemble
}

// datum returns the CRS datum, wrapping the ensemble as a pseudo-datum when
// no concrete datum was given.
func (c *CRS) datum() Datum {
	if c == nil {
		return nil
	}
	if c.Datum != nil {
		return c.Datum
	}
	if c.Ensemble != nil {
		return c.Ensemble.AsDatum()
	}
	return nil
}

// EnsembleAccuracy returns the positional accuracy [m] of the CRS ensemble,
// or false when the CRS is backed by a single datum.
func (c *CRS) EnsembleAccuracy() (float64, bool) {
	if c == nil || c.Ensemble == nil {
		return 0, false
	}
	return c.Ensemble.Accuracy(), true
}

//---- Resolver ----

// ResolveTargetDatum decides whether a datum shift between two coordinate
// reference systems may safely be ignored. It returns the datum or wrapped
// ensemble to use as the common reference, or false when the two systems
// have no such common basis. Member equality throughout ignores metadata.
func ResolveTargetDatum(source, target *CRS) (Datum, bool) {
	sd := source.datum()
	td := target.datum()
	if sd == nil || td == nil {
		return nil, false
	}
	// Equal datums: no shift needed.
	if sd == td || sd.EqualsIgnoreMetadata(td) {
		return td, true
	}
	// One side's ensemble contains the other side's datum as a member.
	if target.Ensemble != nil && source.Datum != nil && target.Ensemble.Contains(source.Datum) {
		return target.Ensemble.AsDatum(), true
	}
	if source.Ensemble != nil && target.Datum != nil && source.Ensemble.Contains(target.Datum) {
		return source.Ensemble.AsDatum(), true
	}
	if source.Ensemble != nil && target.Ensemble != nil {
		if source.Ensemble == target.Ensemble {
			return target.Ensemble.AsDatum(), true
		}
		// One ensemble's members a multiset subset of the other's: the
		// larger ensemble carries the more conservative accuracy bound.
		small, large := source.Ensemble, target.Ensemble
		if len(small.members) > len(large.members) {
			small, large = large, small
		}
		if containsAllMembers(large, small) {
			return large.AsDatum(), true
		}
	}
	return nil, false
}

// containsAllMembers reports whether every member of small matches a
// distinct member of large, ignoring metadata. Each member of large may be
// consumed at most once.
func containsAllMembers(large, small *Ensemble) bool {
	toFind := small.Members()
	for _, m := range large.members {
		i := slices.IndexFunc(toFind, func(d Datum) bool {
			return d == m || d.EqualsIgnoreMetadata(m)
		})
		if i >= 0 {
			toFind = slices.Delete(toFind, i, i+1)
			if len(toFind) == 0 {
				return true
			}
		}
	}
	return false
}

// IsLegacyDatum detects whether a standalone datum (e.g. WGS 84 defined as
// a plain datum before ensembles existed) is the historical equivalent of a
// modern ensemble. Properties absent on the datum side count as compatible;
// a shared identifier decides when present on both sides; otherwise names
// are matched heuristically, with a trailing "ensemble" suffix stripped
// from the ensemble name.
func IsLegacyDatum(e *Ensemble, d Datum, mode ComparisonMode) bool {
	if e == nil || d == nil {
		return false
	}
	if d.asEnsemble() == e {
		return true
	}
	if !legacyPropertiesCompatible(e, d, mode) {
		return false
	}
	if match, ok := commonIdentifier(e.base.Identifiers, d.Base().Identifiers); ok {
		return match
	}
	if d.Base().matchesName(e.base.Name) {
		return true
	}
	name := strings.TrimSpace(e.base.Name)
	if n := len(name); n >= 8 && strings.EqualFold(name[n-8:], "ensemble") {
		name = strings.TrimSpace(name[:n-8])
	}
	return name != "" && d.Base().matchesName(name)
}

// legacyPropertiesCompatible compares the transformation-relevant
// properties of the datum against every ensemble member.
func legacyPropertiesCompatible(e *Ensemble, d Datum, mode ComparisonMode) bool {
	switch d := d.(type) {
	case *GeodeticDatum:
		for _, m := range e.members {
			g, ok := m.(*GeodeticDatum)
			if !ok {
				return false
			}
			if !g.Ellipsoid().Equals(d.Ellipsoid(), mode) {
				return false
			}
			if !g.PrimeMeridian().Equals(d.PrimeMeridian(), mode) {
				return false
			}
		}
	case *VerticalDatum:
		for _, m := range e.members {
			v, ok := m.(*VerticalDatum)
			if !ok {
				return false
			}
			if d.RealizationMethod() != "" && v.RealizationMethod() != "" &&
				d.RealizationMethod() != v.RealizationMethod() {
				return false
			}
		}
	}
	return true
}
