// Copyright (c) 2026 ktnk. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.23
//

package godatum_test

import (
	"math"
	"testing"

	m "github.com/ktnk/godatum"
)

func TestEllipsoidDuality(t *testing.T) {
	// The same ellipsoid defined by both parameter pairs must agree on the
	// derived parameter.
	byFlat := m.WGS84Ellipsoid
	byAxes, err := m.NewEllipsoid("WGS 84", byFlat.SemiMajorAxis(), byFlat.SemiMinorAxis(), m.Metre)
	if err != nil {
		t.Fatalf("NewEllipsoid: %v", err)
	}
	if byAxes.IsIvfDefinitive() {
		t.Errorf("axis-defined ellipsoid reports ivf definitive")
	}
	if !byFlat.IsIvfDefinitive() {
		t.Errorf("flattening-defined ellipsoid does not report ivf definitive")
	}
	if d := math.Abs(byAxes.InverseFlattening() - 298.257223563); d > 1e-8 {
		t.Errorf("derived inverse flattening off by %v", d)
	}
	if d := math.Abs(byFlat.Flattening() - byAxes.Flattening()); d > 1e-14 {
		t.Errorf("flattening disagrees by %v", d)
	}
}

func TestEllipsoidValidation(t *testing.T) {
	if _, err := m.NewEllipsoid("bad", -1, 1, m.Metre); err == nil {
		t.Errorf("negative semi-major accepted")
	}
	if _, err := m.NewEllipsoid("bad", 1, math.NaN(), m.Metre); err == nil {
		t.Errorf("NaN semi-minor accepted")
	}
	if _, err := m.NewEllipsoid("bad", 6356752, 6378137, m.Metre); err == nil {
		t.Errorf("semi-minor > semi-major accepted")
	}
	if _, err := m.NewFlattenedSphere("bad", 6378137, 0.5, m.Metre); err == nil {
		t.Errorf("inverse flattening < 1 accepted")
	}
}

func TestSphere(t *testing.T) {
	s, err := m.NewSphere("authalic sphere", 6371007, m.Metre)
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	if !s.IsSphere() {
		t.Errorf("IsSphere = false")
	}
	if !math.IsInf(s.InverseFlattening(), 1) {
		t.Errorf("sphere inverse flattening = %v, want +Inf", s.InverseFlattening())
	}
	if s.Eccentricity() != 0 {
		t.Errorf("sphere eccentricity = %v, want 0", s.Eccentricity())
	}
	if r := s.AuthalicRadius(); r != 6371007 {
		t.Errorf("sphere authalic radius = %v, want 6371007", r)
	}
	if r := s.GeocentricRadius(37.5); r != 6371007 {
		t.Errorf("sphere geocentric radius = %v, want 6371007", r)
	}
	// A sphere may also be defined through an infinite inverse flattening.
	s2, err := m.NewFlattenedSphere("sphere", 6371007, math.Inf(1), m.Metre)
	if err != nil {
		t.Fatalf("NewFlattenedSphere(inf): %v", err)
	}
	if !s2.IsSphere() {
		t.Errorf("infinite ivf did not give a sphere")
	}
}

func TestEccentricity(t *testing.T) {
	e := m.WGS84Ellipsoid
	if d := math.Abs(e.EccentricitySquared() - 0.0066943799901413165); d > 1e-13 {
		t.Errorf("e^2 off by %v", d)
	}
	if d := math.Abs(e.Eccentricity() - 0.0818191908426215); d > 1e-12 {
		t.Errorf("e off by %v", d)
	}
}

func TestAuthalicRadius(t *testing.T) {
	if d := math.Abs(m.WGS84Ellipsoid.AuthalicRadius() - 6371007.1809); d > 1e-3 {
		t.Errorf("WGS84 authalic radius off by %v m", d)
	}
}

func TestGeocentricRadius(t *testing.T) {
	e := m.WGS84Ellipsoid
	if r := e.GeocentricRadius(0); r != e.SemiMajorAxis() {
		t.Errorf("radius at equator = %v, want exactly a", r)
	}
	if r := e.GeocentricRadius(90); r != e.SemiMinorAxis() {
		t.Errorf("radius at north pole = %v, want exactly b", r)
	}
	if r := e.GeocentricRadius(-90); r != e.SemiMinorAxis() {
		t.Errorf("radius at south pole = %v, want exactly b", r)
	}
	if r := e.GeocentricRadius(math.NaN()); !math.IsNaN(r) {
		t.Errorf("radius at NaN = %v, want NaN", r)
	}
	r := e.GeocentricRadius(45)
	if !(r > e.SemiMinorAxis() && r < e.SemiMajorAxis()) {
		t.Errorf("radius at 45 deg = %v, want between b and a", r)
	}
}

func TestAxisDifferences(t *testing.T) {
	if d := m.WGS84Ellipsoid.SemiMajorAxisDifference(m.Intl1924Ellipsoid); d != 251 {
		t.Errorf("semi-major difference WGS84 to International 1924 = %v, want 251", d)
	}
	if d := math.Abs(m.WGS84Ellipsoid.FlatteningDifference(m.Intl1924Ellipsoid) - 1.41927e-5); d > 1e-9 {
		t.Errorf("flattening difference off by %v", d)
	}
}

func TestConvertTo(t *testing.T) {
	e := m.WGS84Ellipsoid
	if e.ConvertTo(m.Metre) != e {
		t.Errorf("identity conversion did not return the same instance")
	}
	ft := e.ConvertTo(m.Foot)
	if d := math.Abs(ft.SemiMajorAxis() - 6378137/0.3048); d > 1e-6 {
		t.Errorf("semi-major in feet off by %v", d)
	}
	if !ft.Equals(e, m.Compatibility) {
		t.Errorf("converted ellipsoid not compatibility-equal to original")
	}
}

func TestEllipsoidEquals(t *testing.T) {
	wgs := m.WGS84Ellipsoid
	grs := m.GRS80Ellipsoid
	if wgs.Equals(grs, m.IgnoreMetadata) {
		t.Errorf("WGS84 == GRS80 ignoring metadata; inverse flattening differs")
	}
	// The axes differ by about 0.1 mm, well under the 1 cm tolerance.
	if !wgs.Equals(grs, m.Compatibility) {
		t.Errorf("WGS84 != GRS80 in compatibility mode")
	}
	renamed, _ := m.NewFlattenedSphere("another name", 6378137, 298.257223563, m.Metre)
	if wgs.Equals(renamed, m.Strict) {
		t.Errorf("strict equality ignored the name")
	}
	// By-contract equality covers the published properties, the name among
	// them; ignore-metadata does not.
	if wgs.Equals(renamed, m.ByContract) {
		t.Errorf("by-contract equality ignored the name")
	}
	if !wgs.Equals(renamed, m.IgnoreMetadata) {
		t.Errorf("ignore-metadata equality depends on the name")
	}
	sameName, _ := m.NewFlattenedSphere("WGS 84", 6378137, 298.257223563, m.Metre)
	if !wgs.Equals(sameName, m.ByContract) {
		t.Errorf("identically published ellipsoids not by-contract equal")
	}
}
