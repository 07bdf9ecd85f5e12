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

// Distinct ellipsoids keep the ignore-metadata member matching meaningful.
func resolverFixtures(t *testing.T) (d1, d2, d3 *m.GeodeticDatum, small, large *m.Ensemble) {
	t.Helper()
	d1 = realization(t, "d1", "", m.Bessel1841)
	d2 = realization(t, "d2", "", m.Krassowsky1940)
	d3 = realization(t, "d3", "", m.Clarke1866)
	var err error
	small, err = m.NewEnsemble(m.DatumBase{Name: "A"}, 2, d1, d2)
	if err != nil {
		t.Fatalf("NewEnsemble(A): %v", err)
	}
	large, err = m.NewEnsemble(m.DatumBase{Name: "B"}, 5, d1, d2, d3)
	if err != nil {
		t.Fatalf("NewEnsemble(B): %v", err)
	}
	return
}

func TestResolveEqualDatums(t *testing.T) {
	d1, _, _, _, _ := resolverFixtures(t)
	same := realization(t, "same definition", "", m.Bessel1841)
	got, ok := m.ResolveTargetDatum(
		&m.CRS{Name: "src", Datum: d1},
		&m.CRS{Name: "dst", Datum: same},
	)
	if !ok {
		t.Fatalf("equal datums not resolved")
	}
	if got != m.Datum(same) {
		t.Errorf("resolved %v, want the target datum", got.Base().Name)
	}
}

func TestResolveMemberOfEnsemble(t *testing.T) {
	d1, _, d3, _, large := resolverFixtures(t)

	got, ok := m.ResolveTargetDatum(
		&m.CRS{Name: "src", Datum: d1},
		&m.CRS{Name: "dst", Ensemble: large},
	)
	if !ok {
		t.Fatalf("member datum vs ensemble not resolved")
	}
	if got.Base().Name != "B" {
		t.Errorf("resolved %q, want the ensemble B", got.Base().Name)
	}

	// Symmetric case: the source holds the ensemble.
	got, ok = m.ResolveTargetDatum(
		&m.CRS{Name: "src", Ensemble: large},
		&m.CRS{Name: "dst", Datum: d3},
	)
	if !ok || got.Base().Name != "B" {
		t.Errorf("ensemble vs member datum not resolved to B")
	}
}

func TestResolveSubsetEnsembles(t *testing.T) {
	_, _, _, small, large := resolverFixtures(t)

	// A's members are a subset of B's: the larger ensemble wins, in either
	// direction.
	for _, pair := range [][2]*m.Ensemble{{small, large}, {large, small}} {
		got, ok := m.ResolveTargetDatum(
			&m.CRS{Name: "src", Ensemble: pair[0]},
			&m.CRS{Name: "dst", Ensemble: pair[1]},
		)
		if !ok {
			t.Fatalf("subset ensembles not resolved")
		}
		if got.Base().Name != "B" {
			t.Errorf("resolved %q, want the larger ensemble B", got.Base().Name)
		}
	}
}

func TestResolveSharedEnsemble(t *testing.T) {
	_, _, _, _, large := resolverFixtures(t)
	got, ok := m.ResolveTargetDatum(
		&m.CRS{Name: "src", Ensemble: large},
		&m.CRS{Name: "dst", Ensemble: large},
	)
	if !ok || got.Base().Name != "B" {
		t.Errorf("shared ensemble not resolved")
	}
}

func TestResolveMultisetMatching(t *testing.T) {
	// Duplicate-looking members may each be matched only once: {d1, d1}
	// is not a subset of {d1, d2}.
	d1 := realization(t, "d1", "", m.Bessel1841)
	d1bis := realization(t, "d1 again", "", m.Bessel1841)
	d2 := realization(t, "d2", "", m.Krassowsky1940)
	dup, err := m.NewEnsemble(m.DatumBase{Name: "dup"}, 2, d1, d1bis)
	if err != nil {
		t.Fatalf("NewEnsemble: %v", err)
	}
	other, err := m.NewEnsemble(m.DatumBase{Name: "other"}, 2, d1, d2)
	if err != nil {
		t.Fatalf("NewEnsemble: %v", err)
	}
	if _, ok := m.ResolveTargetDatum(
		&m.CRS{Name: "src", Ensemble: dup},
		&m.CRS{Name: "dst", Ensemble: other},
	); ok {
		t.Errorf("duplicate member matched twice")
	}
}

func TestResolveNoCommonBasis(t *testing.T) {
	d1, d2, _, _, _ := resolverFixtures(t)
	if _, ok := m.ResolveTargetDatum(
		&m.CRS{Name: "src", Datum: d1},
		&m.CRS{Name: "dst", Datum: d2},
	); ok {
		t.Errorf("unrelated datums resolved")
	}
}

func TestEnsembleAccuracyAccessor(t *testing.T) {
	_, _, _, small, _ := resolverFixtures(t)
	crs := &m.CRS{Name: "c", Ensemble: small}
	if acc, ok := crs.EnsembleAccuracy(); !ok || acc != 2 {
		t.Errorf("EnsembleAccuracy = (%v, %v), want (2, true)", acc, ok)
	}
	plain := &m.CRS{Name: "p", Datum: realization(t, "p", "", m.Bessel1841)}
	if _, ok := plain.EnsembleAccuracy(); ok {
		t.Errorf("datum-backed CRS reports an ensemble accuracy")
	}
}

func TestIsLegacyDatum(t *testing.T) {
	g730 := realization(t, "WGS 84 (G730)", "", m.WGS84Ellipsoid)
	g1762 := realization(t, "WGS 84 (G1762)", "", m.WGS84Ellipsoid)

	// Shared identifier decides.
	withID, err := m.NewEnsemble(m.DatumBase{
		Name:        "World Geodetic System 1984 ensemble",
		Identifiers: []m.Identifier{{Authority: "EPSG", Code: "6326"}},
	}, 2, g730, g1762)
	if err != nil {
		t.Fatalf("NewEnsemble: %v", err)
	}
	if !m.IsLegacyDatum(withID, m.WGS84, m.IgnoreMetadata) {
		t.Errorf("shared EPSG code not recognized")
	}

	// No identifiers: the name with its "ensemble" suffix stripped matches
	// the datum's aliases.
	byName, err := m.NewEnsemble(m.DatumBase{Name: "WGS 84 ensemble"}, 2, g730, g1762)
	if err != nil {
		t.Fatalf("NewEnsemble: %v", err)
	}
	if !m.IsLegacyDatum(byName, m.WGS84, m.IgnoreMetadata) {
		t.Errorf("suffix-stripped name match failed")
	}

	// Incompatible ellipsoid blocks the match regardless of names.
	old := realization(t, "WGS 84", "", m.Intl1924Ellipsoid)
	if m.IsLegacyDatum(byName, old, m.IgnoreMetadata) {
		t.Errorf("matched despite a different ellipsoid")
	}

	// Both sides carry identifiers but none match: identifiers decide
	// negatively, names are not consulted.
	otherID, err := m.NewEnsemble(m.DatumBase{
		Name:        "WGS 84 ensemble",
		Identifiers: []m.Identifier{{Authority: "EPSG", Code: "9999"}},
	}, 2, g730, g1762)
	if err != nil {
		t.Fatalf("NewEnsemble: %v", err)
	}
	if m.IsLegacyDatum(otherID, m.WGS84, m.IgnoreMetadata) {
		t.Errorf("conflicting identifiers did not block the match")
	}
}
