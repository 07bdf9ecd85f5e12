// Copyright (c) 2026 ktnk. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.23
//

package godatum_test

import (
	"testing"

	m "github.com/ktnk/godatum"
)

func realization(t *testing.T, name, rs string, e *m.Ellipsoid) *m.GeodeticDatum {
	t.Helper()
	d, err := m.NewGeodeticDatum(m.DatumBase{Name: name, ConventionalRS: rs}, e, m.Greenwich)
	if err != nil {
		t.Fatalf("NewGeodeticDatum(%s): %v", name, err)
	}
	return d
}

func TestEnsembleValidation(t *testing.T) {
	d := realization(t, "WGS 84 (G730)", "", m.WGS84Ellipsoid)

	if _, err := m.NewEnsemble(m.DatumBase{Name: "bad"}, 0, d); err == nil {
		t.Errorf("zero accuracy accepted")
	}
	if _, err := m.NewEnsemble(m.DatumBase{Name: "bad"}, 2); err == nil {
		t.Errorf("empty member list accepted")
	}

	inner, err := m.NewEnsemble(m.DatumBase{Name: "inner"}, 2, d)
	if err != nil {
		t.Fatalf("NewEnsemble: %v", err)
	}
	if _, err := m.NewEnsemble(m.DatumBase{Name: "nested"}, 2, inner.AsDatum()); err == nil {
		t.Errorf("pseudo-datum member accepted")
	}

	a := realization(t, "A", "ITRS", m.WGS84Ellipsoid)
	b := realization(t, "B", "ETRS89", m.WGS84Ellipsoid)
	if _, err := m.NewEnsemble(m.DatumBase{Name: "mixed"}, 2, a, b); err == nil {
		t.Errorf("members with conflicting conventional reference systems accepted")
	}
	// One declared, one absent: compatible.
	c := realization(t, "C", "", m.WGS84Ellipsoid)
	if _, err := m.NewEnsemble(m.DatumBase{Name: "ok"}, 2, a, c); err != nil {
		t.Errorf("absent conventional reference system rejected: %v", err)
	}
}

func TestEnsembleAccessors(t *testing.T) {
	g730 := realization(t, "WGS 84 (G730)", "", m.WGS84Ellipsoid)
	g1762 := realization(t, "WGS 84 (G1762)", "", m.WGS84Ellipsoid)
	e, err := m.NewEnsemble(m.DatumBase{Name: "World Geodetic System 1984 ensemble"}, 2, g730, g1762)
	if err != nil {
		t.Fatalf("NewEnsemble: %v", err)
	}
	if e.Accuracy() != 2 {
		t.Errorf("Accuracy = %v, want 2", e.Accuracy())
	}
	members := e.Members()
	if len(members) != 2 || members[0] != m.Datum(g730) {
		t.Errorf("Members order or content wrong")
	}
	members[0] = nil // Must not affect the ensemble.
	if e.Members()[0] == nil {
		t.Errorf("Members exposes internal slice")
	}
	if !e.Contains(g730) {
		t.Errorf("Contains misses a member")
	}
}

func TestPseudoDatumProperties(t *testing.T) {
	g730 := realization(t, "WGS 84 (G730)", "", m.WGS84Ellipsoid)
	g1762 := realization(t, "WGS 84 (G1762)", "", m.WGS84Ellipsoid)
	e, err := m.NewEnsemble(m.DatumBase{Name: "WGS 84 ensemble"}, 2, g730, g1762)
	if err != nil {
		t.Fatalf("NewEnsemble: %v", err)
	}
	pd := e.AsDatum()
	if pd.Base().Name != "WGS 84 ensemble" {
		t.Errorf("pseudo-datum name = %q", pd.Base().Name)
	}
	el, err := pd.Ellipsoid()
	if err != nil {
		t.Fatalf("Ellipsoid: %v", err)
	}
	if !el.Equals(m.WGS84Ellipsoid, m.IgnoreMetadata) {
		t.Errorf("common ellipsoid is not WGS84's")
	}
	if _, err := pd.PrimeMeridian(); err != nil {
		t.Errorf("PrimeMeridian: %v", err)
	}

	// Members on different ellipsoids have no common ellipsoid: that is a
	// query-time error, not a construction error.
	other := realization(t, "old realization", "", m.Intl1924Ellipsoid)
	mixed, err := m.NewEnsemble(m.DatumBase{Name: "mixed"}, 3, g730, other)
	if err != nil {
		t.Fatalf("NewEnsemble: %v", err)
	}
	if _, err := mixed.AsDatum().Ellipsoid(); err == nil {
		t.Errorf("disagreeing members produced a common ellipsoid")
	}
}

func TestPseudoDatumEquality(t *testing.T) {
	g730 := realization(t, "WGS 84 (G730)", "", m.WGS84Ellipsoid)
	g1762 := realization(t, "WGS 84 (G1762)", "", m.WGS84Ellipsoid)
	e, _ := m.NewEnsemble(m.DatumBase{Name: "ens"}, 2, g730, g1762)
	pd := e.AsDatum()

	if !pd.EqualsIgnoreMetadata(e.AsDatum()) {
		t.Errorf("two views of the same ensemble unequal")
	}
	// Every member is definition-equal to g730, so the pseudo-datum equals
	// the plain datum ignoring metadata.
	if !pd.EqualsIgnoreMetadata(g730) {
		t.Errorf("pseudo-datum != agreeing concrete datum")
	}
	odd := realization(t, "odd", "", m.Intl1924Ellipsoid)
	if pd.EqualsIgnoreMetadata(odd) {
		t.Errorf("pseudo-datum == datum on a different ellipsoid")
	}
}
