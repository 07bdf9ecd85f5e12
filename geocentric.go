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
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//-------------------------------------------------------------------
// PosLLH
//-------------------------------------------------------------------

// PosLLH is a geodetic position: latitude and longitude in radians, height
// above the ellipsoid in the ellipsoid's axis unit.
type PosLLH struct {
	Lat float64
	Lon float64
	Hei float64
}

func NewPosLLH(lat, lon, hei float64) *PosLLH {
	return &PosLLH{
		Lat: lat,
		Lon: lon,
		Hei: hei,
	}
}

// Read from string (lat lon in degrees, height in metres)
func (llh *PosLLH) Set(s string) error {
	f := strings.Fields(s)
	if len(f) < 3 {
		return fmt.Errorf("position %q needs 3 fields (lat lon hei)", s)
	}
	var err error
	llh.Lat, err = strconv.ParseFloat(f[0], 64)
	if err != nil {
		return err
	}
	llh.Lon, err = strconv.ParseFloat(f[1], 64)
	if err != nil {
		return err
	}
	llh.Hei, err = strconv.ParseFloat(f[2], 64)
	if err != nil {
		return err
	}
	llh.Lat = ToRad(llh.Lat)
	llh.Lon = ToRad(llh.Lon)
	return nil
}

// Convert to string (degrees, metres)
func (llh *PosLLH) String() string {
	return fmt.Sprintf("%.9f %.9f %.4f", ToDeg(llh.Lat), ToDeg(llh.Lon), llh.Hei)
}

//-------------------------------------------------------------------
// PosXYZ
//-------------------------------------------------------------------

// PosXYZ is a geocentric Cartesian position: X through the prime meridian,
// Z through the north pole.
type PosXYZ struct {
	X float64
	Y float64
	Z float64
}

func NewPosXYZ(x, y, z float64) *PosXYZ {
	return &PosXYZ{
		X: x,
		Y: y,
		Z: z,
	}
}

// Transform applies a 4x4 affine transformation matrix to the position.
func (pos *PosXYZ) Transform(m mat.Matrix) PosXYZ {
	v := mat.NewVecDense(4, []float64{pos.X, pos.Y, pos.Z, 1})
	var out mat.VecDense
	out.MulVec(m, v)
	return PosXYZ{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

//-------------------------------------------------------------------
// Conversion on an ellipsoid
//-------------------------------------------------------------------

// ToGeocentric converts a geodetic position on this ellipsoid to geocentric
// Cartesian coordinates, in the axis unit.
func (el *Ellipsoid) ToGeocentric(llh PosLLH) PosXYZ {
	a := el.semiMajor
	e2 := el.EccentricitySquared()

	n := a / math.Sqrt(1-e2*SQ(math.Sin(llh.Lat))) // Radius of curvature in the prime vertical
	return PosXYZ{
		X: (n + llh.Hei) * math.Cos(llh.Lat) * math.Cos(llh.Lon),
		Y: (n + llh.Hei) * math.Cos(llh.Lat) * math.Sin(llh.Lon),
		Z: (n*(1-e2) + llh.Hei) * math.Sin(llh.Lat),
	}
}

// ToGeodetic converts geocentric Cartesian coordinates to a geodetic
// position on this ellipsoid, using Bowring's closed formula.
func (el *Ellipsoid) ToGeodetic(pos PosXYZ) PosLLH {
	// In case of origin
	if pos.X == 0 && pos.Y == 0 && pos.Z == 0 {
		return PosLLH{Lat: 0, Lon: 0, Hei: -el.semiMajor}
	}

	a := el.semiMajor
	b := el.semiMinor
	e2 := el.EccentricitySquared()

	h := a*a - b*b
	p := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y)
	t := math.Atan2(pos.Z*a, p*b)
	sint := math.Sin(t)
	cost := math.Cos(t)

	lat := math.Atan2(pos.Z+h/b*sint*sint*sint, p-h/a*cost*cost*cost)
	lon := math.Atan2(pos.Y, pos.X)
	n := a / math.Sqrt(1-e2*SQ(math.Sin(lat)))
	var hei float64
	if c := math.Cos(lat); math.Abs(c) > 1e-12 {
		hei = p/c - n
	} else {
		hei = math.Abs(pos.Z) - b // At the poles
	}
	return PosLLH{Lat: lat, Lon: lon, Hei: hei}
}
