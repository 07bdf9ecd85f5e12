// Copyright (c) 2026 ktnk. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.23
//

package godatum

//---- Predefined reference objects ----

// Commonly used ellipsoids. All EPSG-published values are decimal and
// metre-based except Clarke 1866, which is defined by its axis lengths.
var (
	WGS84Ellipsoid    = mustFlattenedSphere("WGS 84", 6378137, 298.257223563)
	GRS80Ellipsoid    = mustFlattenedSphere("GRS 1980", 6378137, 298.257222101)
	Intl1924Ellipsoid = mustFlattenedSphere("International 1924", 6378388, 297)
	Bessel1841        = mustFlattenedSphere("Bessel 1841", 6377397.155, 299.1528128)
	Krassowsky1940    = mustFlattenedSphere("Krassowsky 1940", 6378245, 298.3)
	Clarke1866        = mustEllipsoid("Clarke 1866", 6378206.4, 6356583.8)
)

// WGS84 is the World Geodetic System 1984 datum. Its name aliases make it
// the recognized target of legacy TOWGS84 parameter sets.
var WGS84 = mustGeodeticDatum(DatumBase{
	Name:        "World Geodetic System 1984",
	Aliases:     []string{"WGS 84", "WGS84"},
	Identifiers: []Identifier{{"EPSG", "6326"}},
}, WGS84Ellipsoid)

// ETRS89 is the European Terrestrial Reference System 1989 datum.
var ETRS89 = mustGeodeticDatum(DatumBase{
	Name:        "European Terrestrial Reference System 1989",
	Aliases:     []string{"ETRS89"},
	Identifiers: []Identifier{{"EPSG", "6258"}},
}, GRS80Ellipsoid)

func mustFlattenedSphere(name string, a, ivf float64) *Ellipsoid {
	e, err := NewFlattenedSphere(name, a, ivf, Metre)
	if err != nil {
		panic(err)
	}
	return e
}

func mustEllipsoid(name string, a, b float64) *Ellipsoid {
	e, err := NewEllipsoid(name, a, b, Metre)
	if err != nil {
		panic(err)
	}
	return e
}

func mustGeodeticDatum(base DatumBase, e *Ellipsoid, shifts ...DatumShift) *GeodeticDatum {
	d, err := NewGeodeticDatum(base, e, Greenwich, shifts...)
	if err != nil {
		panic(err)
	}
	return d
}
